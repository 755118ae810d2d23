// FILE: internal/handlers/country_handler.go
// Описание: обработчики CRUD-операций над странами трудоустройства.
package handlers

import (
	"net/http"

	"github.com/clovis-4458/Carbib/config"
	"github.com/clovis-4458/Carbib/models"

	"github.com/gin-gonic/gin"
)

// CountryInput определяет структуру для создания/обновления страны.
type CountryInput struct {
	Name string `json:"name" binding:"required"`
}

// ListCountriesHandler возвращает список всех стран.
// Supports `?all=true` for dropdowns.
func ListCountriesHandler(c *gin.Context) {
	var countries []models.Country
	query := config.DB.Order("name asc")

	if c.Query("all") == "true" {
		if err := query.Find(&countries).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch countries"})
			return
		}
		c.JSON(http.StatusOK, countries)
		return
	}

	var totalRows int64
	config.DB.Model(&models.Country{}).Count(&totalRows)

	if err := query.Scopes(Paginate(c)).Find(&countries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch countries"})
		return
	}

	if countries == nil {
		countries = make([]models.Country, 0)
	}

	paginatedResponse := CreatePaginatedResponse(c, countries, totalRows)
	c.JSON(http.StatusOK, paginatedResponse)
}

// GetCountryHandler получает одну страну по ID.
func GetCountryHandler(c *gin.Context) {
	id := c.Param("id")
	var country models.Country
	if err := config.DB.First(&country, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Country not found"})
		return
	}
	c.JSON(http.StatusOK, country)
}

// CreateCountryHandler создает новую страну.
func CreateCountryHandler(c *gin.Context) {
	var input CountryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	country := models.Country{Name: input.Name}
	if err := config.DB.Create(&country).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create country"})
		return
	}
	c.JSON(http.StatusCreated, country)
}

// UpdateCountryHandler обновляет существующую страну.
func UpdateCountryHandler(c *gin.Context) {
	id := c.Param("id")
	var country models.Country
	if err := config.DB.First(&country, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Country not found"})
		return
	}
	var input CountryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	country.Name = input.Name
	if err := config.DB.Save(&country).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update country"})
		return
	}
	c.JSON(http.StatusOK, country)
}

// DeleteCountryHandler удаляет страну.
// У кандидатов, ссылающихся на неё, job_location обнуляется на уровне БД.
func DeleteCountryHandler(c *gin.Context) {
	id := c.Param("id")
	if err := config.DB.Delete(&models.Country{}, id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete country"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Country deleted successfully"})
}
