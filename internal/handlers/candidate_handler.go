// carbib-crm/internal/handlers/candidate_handler.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/clovis-4458/Carbib/config"
	"github.com/clovis-4458/Carbib/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// --- Структуры ответов по КАНДИДАТАМ ---

// CandidateDetailResponse — карточка кандидата с вычисленным возрастом.
type CandidateDetailResponse struct {
	models.Candidate
	Age *int `json:"age"`
}

// documentFields перечисляет файловые поля анкеты и их директории в MEDIA_ROOT.
// Порядок совпадает с порядком секций формы.
var documentFields = []struct {
	Field  string
	SubDir string
}{
	{"cv", "cvs"},
	{"profile_picture", "profile_pics"},
	{"passport_copy", "passport_copies"},
	{"full_photo", "full_photos"},
	{"medical_copy", "medical_copies"},
	{"interpol", "interpol"},
}

// --- Обработчики для КАНДИДАТОВ ---

// ShowApplicationFormHandler отдает данные для выпадающих списков формы анкеты:
// открытые вакансии, страны и агентов.
func ShowApplicationFormHandler(c *gin.Context) {
	var jobs []models.Job
	if err := config.DB.Where("status = ?", models.JobStatusOpen).Order("date_posted desc").Find(&jobs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch jobs"})
		return
	}
	var countries []models.Country
	if err := config.DB.Order("name asc").Find(&countries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch countries"})
		return
	}
	var agents []models.Agent
	if err := config.DB.Order("full_name asc").Find(&agents).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch agents"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"jobs": jobs, "countries": countries, "agents": agents})
}

// AddCandidateHandler принимает заполненную анкету кандидата (multipart-форма).
func AddCandidateHandler(c *gin.Context) {
	var candidate models.Candidate
	if fieldErrors := bindCandidateFormData(c, &candidate); len(fieldErrors) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please correct the errors below.", "fields": fieldErrors})
		return
	}

	// Проверка на уникальность номера паспорта перед созданием
	if candidate.PassportNumber != "" {
		var existing models.Candidate
		if err := config.DB.Where("passport_number = ?", candidate.PassportNumber).First(&existing).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "A candidate with this passport number already exists."})
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check passport number: " + err.Error()})
			return
		}
	}

	for _, doc := range documentFields {
		path, err := saveUploadedFile(c, doc.Field, doc.SubDir)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save uploaded file: " + err.Error()})
			return
		}
		if path != "" {
			setCandidateDocument(&candidate, doc.Field, path)
		}
	}

	if err := config.DB.Create(&candidate).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create candidate: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Application submitted successfully!", "candidate": candidate})
}

// ViewClientsHandler возвращает все четыре справочника одним ответом,
// как их отдает страница списка кандидатов.
func ViewClientsHandler(c *gin.Context) {
	var candidates []models.Candidate
	if err := config.DB.Preload("JobApplied").Preload("JobLocation").Preload("ReferralInfo").
		Order("candidates.id").Find(&candidates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch candidates"})
		return
	}
	var jobs []models.Job
	config.DB.Order("id").Find(&jobs)
	var countries []models.Country
	config.DB.Order("id").Find(&countries)
	var agents []models.Agent
	config.DB.Order("id").Find(&agents)

	c.JSON(http.StatusOK, gin.H{
		"candidates": candidates,
		"jobs":       jobs,
		"countries":  countries,
		"agents":     agents,
	})
}

// ViewCandidateHandler возвращает карточку одного кандидата.
func ViewCandidateHandler(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid candidate ID"})
		return
	}

	var candidate models.Candidate
	if err := config.DB.Preload("JobApplied").Preload("JobLocation").Preload("ReferralInfo").
		First(&candidate, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Candidate not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch candidate: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, CandidateDetailResponse{
		Candidate: candidate,
		Age:       candidate.Age(),
	})
}

// UpdateCandidatesHandler — массовое обновление: одна форма несет
// поля вида `<field>_<id>` для каждого существующего кандидата.
// Записи сохраняются по одной, без общей транзакции: сбой на середине
// оставляет уже сохраненные изменения в силе.
func UpdateCandidatesHandler(c *gin.Context) {
	var candidates []models.Candidate
	if err := config.DB.Order("candidates.id").Find(&candidates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch candidates"})
		return
	}

	for i := range candidates {
		candidate := &candidates[i]
		id := candidate.ID

		candidate.FullName = postFormDefault(c, fmt.Sprintf("full_name_%d", id), candidate.FullName)
		candidate.Gender = postFormDefault(c, fmt.Sprintf("gender_%d", id), candidate.Gender)
		candidate.PhoneNumber = postFormDefault(c, fmt.Sprintf("phone_number_%d", id), candidate.PhoneNumber)
		candidate.PassportNumber = postFormDefault(c, fmt.Sprintf("passport_number_%d", id), candidate.PassportNumber)

		// Дата рождения перезаписывается только непустым значением.
		if dob := parseFormDate(c.PostForm(fmt.Sprintf("date_of_birth_%d", id))); dob != nil {
			candidate.DateOfBirth = dob
		}

		// Внешние ключи перепривязываются только при непустом id.
		if jobID := parseFormUint(c.PostForm(fmt.Sprintf("job_applied_%d", id))); jobID != nil {
			candidate.JobAppliedID = jobID
		}
		if locationID := parseFormUint(c.PostForm(fmt.Sprintf("job_location_%d", id))); locationID != nil {
			candidate.JobLocationID = locationID
		}
		if agentID := parseFormUint(c.PostForm(fmt.Sprintf("agent_%d", id))); agentID != nil {
			candidate.ReferralInfoID = agentID
		}

		// Файлы заменяются только если под ключом кандидата пришел новый файл.
		for _, doc := range documentFields {
			if doc.Field == "cv" {
				continue
			}
			key := fmt.Sprintf("%s_%d", doc.Field, id)
			path, err := saveUploadedFile(c, key, doc.SubDir)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save uploaded file: " + err.Error()})
				return
			}
			if path != "" {
				setCandidateDocument(candidate, doc.Field, path)
			}
		}

		if err := config.DB.Save(candidate).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to update candidate %d: %v", id, err)})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "All candidates updated successfully."})
}

// --- Вспомогательные функции ---

// postFormDefault возвращает значение поля формы либо текущее значение,
// если поле в запросе отсутствует. Присланное пустое значение — это
// намеренная очистка поля, оно перезаписывает текущее.
func postFormDefault(c *gin.Context, key, current string) string {
	if v, ok := c.GetPostForm(key); ok {
		return v
	}
	return current
}

func parseFormUint(value string) *uint {
	if value == "" {
		return nil
	}
	if val, err := strconv.ParseUint(value, 10, 64); err == nil {
		v := uint(val)
		return &v
	}
	return nil
}

func setCandidateDocument(candidate *models.Candidate, field, path string) {
	switch field {
	case "cv":
		candidate.CV = path
	case "profile_picture":
		candidate.ProfilePicture = path
	case "passport_copy":
		candidate.PassportCopy = path
	case "full_photo":
		candidate.FullPhoto = path
	case "medical_copy":
		candidate.MedicalCopy = path
	case "interpol":
		candidate.Interpol = path
	}
}

// bindCandidateFormData заполняет модель из полей анкеты и возвращает
// карту ошибок по обязательным полям.
func bindCandidateFormData(c *gin.Context, candidate *models.Candidate) map[string]string {
	fieldErrors := make(map[string]string)

	required := func(key string) string {
		v := c.PostForm(key)
		if v == "" {
			fieldErrors[key] = "This field is required."
		}
		return v
	}

	candidate.FullName = required("full_name")
	candidate.NINNumber = required("nin_number")
	candidate.PassportNumber = required("passport_number")
	candidate.Gender = required("gender")
	candidate.MaritalStatus = c.PostForm("marital_status")

	dobStr := required("date_of_birth")
	if dobStr != "" {
		if dob := parseFormDate(dobStr); dob != nil {
			candidate.DateOfBirth = dob
		} else {
			fieldErrors["date_of_birth"] = "Enter a valid date."
		}
	}

	candidate.PhoneNumber = c.PostForm("phone_number")
	candidate.Email = c.PostForm("email")
	candidate.Religion = c.PostForm("religion")
	candidate.Tribe = c.PostForm("tribe")
	candidate.Clan = c.PostForm("clan")
	candidate.WorkingExperience = c.PostForm("working_experience")
	candidate.Skills = c.PostForm("skills")
	candidate.CountryWorked = c.PostForm("country_worked")
	candidate.EducationLevel = c.PostForm("education_level")

	if v := c.PostForm("no_of_children"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			candidate.NoOfChildren = n
		} else {
			fieldErrors["no_of_children"] = "Enter a whole number."
		}
	}

	candidate.PlaceOfOriginVillage = c.PostForm("place_of_origin_village")
	candidate.PlaceOfOriginParish = c.PostForm("place_of_origin_parish")
	candidate.PlaceOfOriginSubcounty = c.PostForm("place_of_origin_subcounty")
	candidate.PlaceOfOriginCounty = c.PostForm("place_of_origin_county")
	candidate.PlaceOfOriginDistrict = c.PostForm("place_of_origin_district")

	candidate.PresentAddressVillage = c.PostForm("present_address_village")
	candidate.PresentAddressParish = c.PostForm("present_address_parish")
	candidate.PresentAddressSubcounty = c.PostForm("present_address_subcounty")
	candidate.PresentAddressCounty = c.PostForm("present_address_county")
	candidate.PresentAddressDistrict = c.PostForm("present_address_district")

	candidate.FatherName = c.PostForm("father_name")
	candidate.FatherDOB = parseFormDate(c.PostForm("father_dob"))
	candidate.FatherTel = c.PostForm("father_tel")
	candidate.FatherNIN = c.PostForm("father_nin")
	candidate.FatherDistrict = c.PostForm("father_district")
	candidate.FatherTribe = c.PostForm("father_tribe")
	candidate.FatherStatus = c.PostForm("father_status")

	candidate.MotherName = c.PostForm("mother_name")
	candidate.MotherDOB = parseFormDate(c.PostForm("mother_dob"))
	candidate.MotherTel = c.PostForm("mother_tel")
	candidate.MotherNIN = c.PostForm("mother_nin")
	candidate.MotherDistrict = c.PostForm("mother_district")
	candidate.MotherTribe = c.PostForm("mother_tribe")
	candidate.MotherStatus = c.PostForm("mother_status")

	candidate.NextOfKinName = c.PostForm("next_of_kin_name")
	candidate.NextOfKinRelationship = c.PostForm("next_of_kin_relationship")
	candidate.NextOfKinContact = c.PostForm("next_of_kin_contact")
	candidate.NextOfKinAddress = c.PostForm("next_of_kin_address")

	candidate.JobAppliedID = parseFormUint(c.PostForm("job_applied"))
	if candidate.JobAppliedID == nil {
		fieldErrors["job_applied"] = "This field is required."
	}
	candidate.JobLocationID = parseFormUint(c.PostForm("job_location"))
	candidate.ReferralInfoID = parseFormUint(c.PostForm("referral_info"))

	if v := c.PostForm("candidate_status"); v != "" {
		candidate.CandidateStatus = v
	}

	return fieldErrors
}
