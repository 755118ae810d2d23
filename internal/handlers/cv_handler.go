// carbib-crm/internal/handlers/cv_handler.go
package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/clovis-4458/Carbib/config"
	"github.com/clovis-4458/Carbib/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const cvCompanyName = "CARBIB"

// cvField — одна строка таблицы резюме.
type cvField struct {
	Label string
	Value string
}

// cvTemplateData — данные общего HTML-шаблона резюме.
type cvTemplateData struct {
	Company         string
	TodayDate       string
	ApplicantNumber uint
	FullName        string
	Fields          []cvField
	FullPhoto       string
	PassportCopy    string
}

// Общий шаблон резюме: таблица фиксированных полей плюс страницы с фото.
var cvTemplate = template.Must(template.New("cv").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: Helvetica, Arial, sans-serif; font-size: 12px; }
  h1 { text-align: center; }
  table { width: 100%; border-collapse: collapse; margin-top: 12px; }
  td { border: 1px solid #444; padding: 6px; }
  td.label { width: 35%; font-weight: bold; }
  .photo-page { page-break-before: always; text-align: center; }
  .photo-page img { max-width: 60%; }
</style>
</head>
<body>
  <h1>CURRICULUM VITAE</h1>
  <p>Company: {{.Company}}</p>
  <p>Date: {{.TodayDate}}</p>
  <p>Applicant No: {{.ApplicantNumber}}</p>
  <table>
    {{range .Fields}}<tr><td class="label">{{.Label}}</td><td>{{.Value}}</td></tr>
    {{end}}
  </table>
  {{if .FullPhoto}}<div class="photo-page"><h2>Full Photo</h2><img src="{{.FullPhoto}}"></div>{{end}}
  {{if .PassportCopy}}<div class="photo-page"><h2>Passport Copy</h2><img src="{{.PassportCopy}}"></div>{{end}}
</body>
</html>
`))

// DownloadCVPDFHandler отдает резюме кандидата в PDF.
// HTML-шаблон рендерится и конвертируется внешним сервисом Gotenberg.
func DownloadCVPDFHandler(c *gin.Context) {
	candidate, ok := fetchCandidateForCV(c)
	if !ok {
		return
	}

	data := cvTemplateData{
		Company:         cvCompanyName,
		TodayDate:       time.Now().Format("2006-01-02"),
		ApplicantNumber: candidate.ID,
		FullName:        candidate.FullName,
		Fields:          buildCVFields(candidate),
	}

	assets := make(map[string][]byte)
	if img, err := readStoredFile(candidate.FullPhoto); err == nil {
		assets["full_photo.img"] = img
		data.FullPhoto = "full_photo.img"
	}
	if img, err := readStoredFile(candidate.PassportCopy); err == nil {
		assets["passport_copy.img"] = img
		data.PassportCopy = "passport_copy.img"
	}

	var html bytes.Buffer
	if err := cvTemplate.Execute(&html, data); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error generating PDF."})
		return
	}

	pdfBytes, err := convertHTMLToPDF(html.Bytes(), assets)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error generating PDF: " + err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="CV_%s.pdf"`, candidate.FullName))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// DownloadCVWordHandler отдает резюме кандидата в формате Word.
// Документ собирается напрямую, без шаблона (см. docx_builder.go).
func DownloadCVWordHandler(c *gin.Context) {
	candidate, ok := fetchCandidateForCV(c)
	if !ok {
		return
	}

	doc := newDocxBuilder()
	doc.AddHeading("CURRICULUM VITAE", 0)
	doc.AddParagraph("Company: " + cvCompanyName)
	doc.AddParagraph("Date: " + time.Now().Format("2006-01-02"))
	doc.AddParagraph(fmt.Sprintf("Applicant No: %d", candidate.ID))

	jobTitle := "N/A"
	if candidate.JobApplied != nil {
		jobTitle = candidate.JobApplied.Title
	}
	dob := "N/A"
	if candidate.DateOfBirth != nil {
		dob = candidate.DateOfBirth.Format("2006-01-02")
	}
	doc.AddTable([][2]string{
		{"Job Applied For", jobTitle},
		{"Full Name", candidate.FullName},
		{"Gender", candidate.Gender},
		{"Phone", candidate.PhoneNumber},
		{"Passport Number", candidate.PassportNumber},
		{"Date of Birth", dob},
	})

	doc.AddHeading("Personal Details", 1)
	doc.AddParagraph("Marital Status: " + orNA(candidate.MaritalStatus))
	doc.AddParagraph("Education Level: " + orNA(candidate.EducationLevel))

	doc.AddHeading("Work Experience", 1)
	doc.AddParagraph(orNA(candidate.WorkingExperience))

	doc.AddHeading("Skills", 1)
	doc.AddParagraph(orNA(candidate.Skills))

	// Страницы с фото добавляются только при наличии самих файлов.
	if img, err := readStoredFile(candidate.FullPhoto); err == nil {
		doc.AddPageBreak()
		doc.AddHeading("Full Photo", 1)
		doc.AddPicture(img, 2.5)
	}
	if img, err := readStoredFile(candidate.PassportCopy); err == nil {
		doc.AddPageBreak()
		doc.AddHeading("Passport Copy", 1)
		doc.AddPicture(img, 2.5)
	}

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error generating Word document: " + err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="CV_%s.docx"`, candidate.FullName))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", buf.Bytes())
}

// --- Вспомогательные функции ---

func fetchCandidateForCV(c *gin.Context) (*models.Candidate, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid candidate ID"})
		return nil, false
	}

	var candidate models.Candidate
	if err := config.DB.Preload("JobApplied").First(&candidate, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Candidate not found"})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch candidate: " + err.Error()})
		return nil, false
	}
	return &candidate, true
}

// buildCVFields собирает фиксированный набор полей резюме.
// Пустые необязательные поля заменяются на "N/A".
func buildCVFields(candidate *models.Candidate) []cvField {
	jobTitle := "N/A"
	if candidate.JobApplied != nil {
		jobTitle = candidate.JobApplied.Title
	}
	dob := "N/A"
	if candidate.DateOfBirth != nil {
		dob = candidate.DateOfBirth.Format("2006-01-02")
	}
	return []cvField{
		{"Job Applied For", jobTitle},
		{"Full Name", candidate.FullName},
		{"Gender", orNA(candidate.Gender)},
		{"Phone", orNA(candidate.PhoneNumber)},
		{"Passport Number", orNA(candidate.PassportNumber)},
		{"Date of Birth", dob},
		{"Marital Status", orNA(candidate.MaritalStatus)},
		{"Education Level", orNA(candidate.EducationLevel)},
		{"Work Experience", orNA(candidate.WorkingExperience)},
		{"Skills", orNA(candidate.Skills)},
	}
}

func orNA(value string) string {
	if strings.TrimSpace(value) == "" {
		return "N/A"
	}
	return value
}

// readStoredFile читает ранее загруженный документ по его URL-пути.
func readStoredFile(storedPath string) ([]byte, error) {
	p := strings.TrimPrefix(storedPath, "/")
	if !fileExists(p) {
		return nil, os.ErrNotExist
	}
	return os.ReadFile(p)
}

// convertHTMLToPDF конвертирует HTML в PDF через Gotenberg (маршрут Chromium).
// Вложенные файлы (фото) передаются той же multipart-формой.
func convertHTMLToPDF(htmlBytes []byte, assets map[string][]byte) ([]byte, error) {
	gotenbergURL := config.GotenbergURL() + "/forms/chromium/convert/html"
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("files", "index.html")
	if err != nil {
		return nil, fmt.Errorf("ошибка создания части формы для файла: %w", err)
	}
	if _, err := part.Write(htmlBytes); err != nil {
		return nil, fmt.Errorf("ошибка записи HTML в часть формы: %w", err)
	}
	for name, data := range assets {
		assetPart, err := writer.CreateFormFile("files", name)
		if err != nil {
			return nil, fmt.Errorf("ошибка создания части формы для %s: %w", name, err)
		}
		if _, err := assetPart.Write(data); err != nil {
			return nil, fmt.Errorf("ошибка записи %s в часть формы: %w", name, err)
		}
	}
	writer.Close()

	req, err := http.NewRequest("POST", gotenbergURL, body)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса к Gotenberg: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка отправки запроса к Gotenberg: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("ошибка конвертации HTML в PDF через Gotenberg: статус %d, ответ: %s", resp.StatusCode, string(respBody))
	}

	pdfBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения PDF ответа от Gotenberg: %w", err)
	}
	return pdfBytes, nil
}
