// FILE: internal/handlers/job_handler.go
// Описание: обработчики CRUD-операций над вакансиями.
package handlers

import (
	"net/http"

	"github.com/clovis-4458/Carbib/config"
	"github.com/clovis-4458/Carbib/models"

	"github.com/gin-gonic/gin"
)

// JobInput определяет структуру для создания/обновления вакансии.
type JobInput struct {
	Title            string  `json:"title" binding:"required"`
	Description      string  `json:"description"`
	Location         string  `json:"location"`
	Salary           float64 `json:"salary"`
	ClosingDate      string  `json:"closingDate"`
	Responsibilities string  `json:"responsibilities"`
	Status           string  `json:"status"`
}

func applyJobInput(job *models.Job, input *JobInput) {
	job.Title = input.Title
	if input.Description != "" {
		job.Description = input.Description
	}
	if input.Location != "" {
		job.Location = input.Location
	}
	job.Salary = input.Salary
	if input.ClosingDate != "" {
		job.ClosingDate = parseFormDate(input.ClosingDate)
	}
	if input.Responsibilities != "" {
		job.Responsibilities = input.Responsibilities
	}
	if input.Status == models.JobStatusOpen || input.Status == models.JobStatusClosed {
		job.Status = input.Status
	}
}

// ListJobsHandler возвращает список вакансий.
// Supports `?all=true` for dropdowns (только открытые, свежие первыми).
func ListJobsHandler(c *gin.Context) {
	var jobs []models.Job

	if c.Query("all") == "true" {
		if err := config.DB.Where("status = ?", models.JobStatusOpen).
			Order("date_posted desc").Find(&jobs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch jobs"})
			return
		}
		c.JSON(http.StatusOK, jobs)
		return
	}

	var totalRows int64
	config.DB.Model(&models.Job{}).Count(&totalRows)

	if err := config.DB.Order("date_posted desc").Scopes(Paginate(c)).Find(&jobs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch jobs"})
		return
	}

	if jobs == nil {
		jobs = make([]models.Job, 0)
	}

	paginatedResponse := CreatePaginatedResponse(c, jobs, totalRows)
	c.JSON(http.StatusOK, paginatedResponse)
}

// GetJobHandler получает одну вакансию по ID.
func GetJobHandler(c *gin.Context) {
	id := c.Param("id")
	var job models.Job
	if err := config.DB.First(&job, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}
	c.JSON(http.StatusOK, job)
}

// CreateJobHandler создает новую вакансию.
func CreateJobHandler(c *gin.Context) {
	var input JobInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var job models.Job
	applyJobInput(&job, &input)
	if err := config.DB.Create(&job).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create job"})
		return
	}
	c.JSON(http.StatusCreated, job)
}

// UpdateJobHandler обновляет существующую вакансию.
func UpdateJobHandler(c *gin.Context) {
	id := c.Param("id")
	var job models.Job
	if err := config.DB.First(&job, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}
	var input JobInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	applyJobInput(&job, &input)
	if err := config.DB.Save(&job).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update job"})
		return
	}
	c.JSON(http.StatusOK, job)
}

// DeleteJobHandler удаляет вакансию.
// Ссылки кандидатов на неё обнуляются (SET NULL), анкеты не удаляются.
func DeleteJobHandler(c *gin.Context) {
	id := c.Param("id")
	if err := config.DB.Delete(&models.Job{}, id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete job"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job deleted successfully"})
}
