// carbib-crm/internal/handlers/excel_handler.go
package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/clovis-4458/Carbib/config"
	"github.com/clovis-4458/Carbib/models"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

const exportSheetName = "Candidates"

// candidateExportRow — денормализованная строка выгрузки.
type candidateExportRow struct {
	FullName       string
	Gender         string
	PhoneNumber    string
	PassportNumber string
	JobApplied     string
	ReferredBy     string
}

// ExportExcelHandler выгружает всех кандидатов одним листом "Candidates".
func ExportExcelHandler(c *gin.Context) {
	var rows []candidateExportRow

	query := config.DB.Table("candidates").
		Select(`
            candidates.full_name,
            candidates.gender,
            candidates.phone_number,
            candidates.passport_number,
            COALESCE(jobs.title, '') as job_applied,
            COALESCE(agents.full_name, '') as referred_by
        `).
		Joins("LEFT JOIN jobs ON jobs.id = candidates.job_applied_id AND jobs.deleted_at IS NULL").
		Joins("LEFT JOIN agents ON agents.id = candidates.referral_info_id AND agents.deleted_at IS NULL").
		Where("candidates.deleted_at IS NULL").
		Order("candidates.id")

	if err := query.Scan(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch data for export"})
		return
	}

	f := excelize.NewFile()
	f.SetSheetName("Sheet1", exportSheetName)

	headers := []string{"Full Name", "Gender", "Phone Number", "Passport Number", "Job Applied", "Referred By"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(exportSheetName, cell, header)
	}

	for i, r := range rows {
		row := i + 2
		f.SetCellValue(exportSheetName, fmt.Sprintf("A%d", row), r.FullName)
		f.SetCellValue(exportSheetName, fmt.Sprintf("B%d", row), r.Gender)
		f.SetCellValue(exportSheetName, fmt.Sprintf("C%d", row), r.PhoneNumber)
		f.SetCellValue(exportSheetName, fmt.Sprintf("D%d", row), r.PassportNumber)
		f.SetCellValue(exportSheetName, fmt.Sprintf("E%d", row), r.JobApplied)
		f.SetCellValue(exportSheetName, fmt.Sprintf("F%d", row), r.ReferredBy)
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="candidates.xlsx"`)
	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
	}
}

// ImportExcelHandler загружает таблицу кандидатов и создает записи пачкой.
// Строка пропускается, если не хватает обязательных полей или паспорт уже
// известен. Ошибка сохранения любой строки прерывает весь импорт.
func ImportExcelHandler(c *gin.Context) {
	file, _, err := c.Request.FormFile("excel_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded."})
		return
	}
	defer file.Close()

	f, err := excelize.OpenReader(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Import failed: " + err.Error()})
		return
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Import failed: workbook has no sheets"})
		return
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Import failed: " + err.Error()})
		return
	}
	if len(rows) == 0 {
		c.JSON(http.StatusOK, gin.H{"created": 0, "skipped": 0, "messages": []string{}})
		return
	}

	colIndex := normalizeHeaders(rows[0])

	// Нормализованные индексы для поиска без повторных case-insensitive сканов.
	jobIndex, err := loadJobIndex()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Import failed: " + err.Error()})
		return
	}
	agentIndex, err := loadAgentIndex()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Import failed: " + err.Error()})
		return
	}
	knownPassports, err := loadPassportSet()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Import failed: " + err.Error()})
		return
	}

	createdCount, skippedCount := 0, 0

	for _, row := range rows[1:] {
		cell := func(name string) string {
			idx, ok := colIndex[name]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		fullName := cell("full_name")
		passportNumber := cell("passport_number")
		jobTitle := cell("job_applied_title")
		referralName := cell("referral_full_name")

		if fullName == "" || passportNumber == "" || jobTitle == "" || referralName == "" {
			skippedCount++
			continue
		}
		if knownPassports[passportNumber] {
			skippedCount++
			continue
		}

		jobKey := strings.ToLower(jobTitle)
		jobID, ok := jobIndex[jobKey]
		if !ok {
			closing := time.Now().AddDate(0, 0, 30)
			job := models.Job{
				Title:            jobTitle,
				Description:      "Imported job - no description provided.",
				Location:         "Not specified",
				Salary:           0,
				ClosingDate:      &closing,
				Responsibilities: "Imported job - responsibilities not specified.",
				Status:           models.JobStatusOpen,
			}
			if err := config.DB.Create(&job).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Import failed: " + err.Error()})
				return
			}
			jobID = job.ID
			jobIndex[jobKey] = jobID
		}

		agentKey := strings.ToLower(referralName)
		agentID, ok := agentIndex[agentKey]
		if !ok {
			agent := models.Agent{FullName: referralName}
			if err := config.DB.Create(&agent).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Import failed: " + err.Error()})
				return
			}
			agentID = agent.ID
			agentIndex[agentKey] = agentID
		}

		candidate := models.Candidate{
			FullName:       fullName,
			Gender:         cell("gender"),
			PhoneNumber:    cell("phone_number"),
			PassportNumber: passportNumber,
			DateOfBirth:    parseImportDate(cell("date_of_birth")),
			JobAppliedID:   &jobID,
			ReferralInfoID: &agentID,
		}
		if err := config.DB.Create(&candidate).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Import failed: " + err.Error()})
			return
		}
		knownPassports[passportNumber] = true
		createdCount++
	}

	messages := make([]string, 0, 2)
	if createdCount > 0 {
		messages = append(messages, fmt.Sprintf("%d candidate(s) imported successfully.", createdCount))
	}
	if skippedCount > 0 {
		messages = append(messages, fmt.Sprintf("%d row(s) skipped (duplicates/missing).", skippedCount))
	}

	c.JSON(http.StatusOK, gin.H{
		"created":  createdCount,
		"skipped":  skippedCount,
		"messages": messages,
	})
}

// --- Вспомогательные функции импорта ---

// normalizeHeaders приводит заголовки к виду snake_case:
// обрезает пробелы, переводит в нижний регистр, заменяет пробелы на подчеркивания.
func normalizeHeaders(headerRow []string) map[string]int {
	colIndex := make(map[string]int, len(headerRow))
	for i, h := range headerRow {
		name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(h)), " ", "_")
		if name == "" {
			continue
		}
		if _, exists := colIndex[name]; !exists {
			colIndex[name] = i
		}
	}
	return colIndex
}

// importDateLayouts — форматы дат, встречающиеся в выгрузках Excel.
var importDateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"02.01.2006",
	"01-02-06",
	"1/2/2006",
	"1/2/06",
	"02/01/2006",
}

// parseImportDate терпимо разбирает дату рождения из ячейки.
// Нечитаемое значение дает отсутствующую дату, а не ошибку импорта.
func parseImportDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	for _, layout := range importDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &t
		}
	}
	// Excel может отдать дату числом (дни с эпохи 1900 года).
	if serial, err := strconv.ParseFloat(value, 64); err == nil {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return &t
		}
	}
	return nil
}

func loadJobIndex() (map[string]uint, error) {
	var jobs []models.Job
	if err := config.DB.Select("id, title").Find(&jobs).Error; err != nil {
		return nil, err
	}
	index := make(map[string]uint, len(jobs))
	for _, j := range jobs {
		key := strings.ToLower(strings.TrimSpace(j.Title))
		if _, exists := index[key]; !exists {
			index[key] = j.ID
		}
	}
	return index, nil
}

func loadAgentIndex() (map[string]uint, error) {
	var agents []models.Agent
	if err := config.DB.Select("id, full_name").Find(&agents).Error; err != nil {
		return nil, err
	}
	index := make(map[string]uint, len(agents))
	for _, a := range agents {
		key := strings.ToLower(strings.TrimSpace(a.FullName))
		if _, exists := index[key]; !exists {
			index[key] = a.ID
		}
	}
	return index, nil
}

func loadPassportSet() (map[string]bool, error) {
	var passports []string
	if err := config.DB.Model(&models.Candidate{}).
		Where("passport_number <> ''").
		Pluck("passport_number", &passports).Error; err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(passports))
	for _, p := range passports {
		set[p] = true
	}
	return set, nil
}
