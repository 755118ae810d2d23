// carbib-crm/internal/handlers/dashboard_handler.go
package handlers

import (
	"net/http"

	"github.com/clovis-4458/Carbib/config"
	"github.com/clovis-4458/Carbib/models"

	"github.com/gin-gonic/gin"
)

// DashboardHandler отдает сводные счетчики по кандидатам.
func DashboardHandler(c *gin.Context) {
	var totalCandidates, pendingCandidates, travelledCandidates int64

	if err := config.DB.Model(&models.Candidate{}).Count(&totalCandidates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not count candidates"})
		return
	}
	config.DB.Model(&models.Candidate{}).
		Where("candidate_status = ?", models.CandidateStatusPending).Count(&pendingCandidates)
	config.DB.Model(&models.Candidate{}).
		Where("candidate_status = ?", models.CandidateStatusTravelled).Count(&travelledCandidates)

	c.JSON(http.StatusOK, gin.H{
		"total_candidates":     totalCandidates,
		"pending_candidates":   pendingCandidates,
		"travelled_candidates": travelledCandidates,
	})
}
