// FILE: internal/handlers/agent_handler.go
// Описание: обработчики CRUD-операций над агентами (рефералами).
package handlers

import (
	"net/http"

	"github.com/clovis-4458/Carbib/config"
	"github.com/clovis-4458/Carbib/models"

	"github.com/gin-gonic/gin"
)

// ListAgentsHandler возвращает список агентов.
// Supports `?all=true` for dropdowns.
func ListAgentsHandler(c *gin.Context) {
	var agents []models.Agent
	query := config.DB.Order("full_name asc")

	if c.Query("all") == "true" {
		if err := query.Find(&agents).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch agents"})
			return
		}
		c.JSON(http.StatusOK, agents)
		return
	}

	var totalRows int64
	config.DB.Model(&models.Agent{}).Count(&totalRows)

	if err := query.Scopes(Paginate(c)).Find(&agents).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch agents"})
		return
	}

	if agents == nil {
		agents = make([]models.Agent, 0)
	}

	paginatedResponse := CreatePaginatedResponse(c, agents, totalRows)
	c.JSON(http.StatusOK, paginatedResponse)
}

// GetAgentHandler получает одного агента по ID.
func GetAgentHandler(c *gin.Context) {
	id := c.Param("id")
	var agent models.Agent
	if err := config.DB.First(&agent, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Agent not found"})
		return
	}
	c.JSON(http.StatusOK, agent)
}

// CreateAgentHandler создает нового агента (multipart-форма, фото опционально).
func CreateAgentHandler(c *gin.Context) {
	agent := models.Agent{
		FullName:    c.PostForm("full_name"),
		Gender:      c.PostForm("gender"),
		PhoneNumber: c.PostForm("phone_number"),
		Email:       c.PostForm("email"),
		Address:     c.PostForm("address"),
	}
	if agent.FullName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Full name is required"})
		return
	}

	photoURL, err := saveUploadedFile(c, "photo", "agents_photos")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save photo: " + err.Error()})
		return
	}
	agent.Photo = photoURL

	if err := config.DB.Create(&agent).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create agent"})
		return
	}
	c.JSON(http.StatusCreated, agent)
}

// UpdateAgentHandler обновляет существующего агента.
func UpdateAgentHandler(c *gin.Context) {
	id := c.Param("id")
	var agent models.Agent
	if err := config.DB.First(&agent, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Agent not found"})
		return
	}

	agent.FullName = postFormDefault(c, "full_name", agent.FullName)
	agent.Gender = postFormDefault(c, "gender", agent.Gender)
	agent.PhoneNumber = postFormDefault(c, "phone_number", agent.PhoneNumber)
	agent.Email = postFormDefault(c, "email", agent.Email)
	agent.Address = postFormDefault(c, "address", agent.Address)

	photoURL, err := saveUploadedFile(c, "photo", "agents_photos")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save photo: " + err.Error()})
		return
	}
	if photoURL != "" {
		agent.Photo = photoURL
	}

	if err := config.DB.Save(&agent).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update agent"})
		return
	}
	c.JSON(http.StatusOK, agent)
}

// DeleteAgentHandler удаляет агента; ссылки кандидатов обнуляются (SET NULL).
func DeleteAgentHandler(c *gin.Context) {
	id := c.Param("id")
	if err := config.DB.Delete(&models.Agent{}, id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete agent"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Agent deleted successfully"})
}
