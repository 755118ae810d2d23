package routes

import (
	"github.com/clovis-4458/Carbib/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterAPIRoutes регистрирует все маршруты, требующие аутентификации.
func RegisterAPIRoutes(api *gin.RouterGroup) {
	// Выход пользователя из системы.
	api.POST("/logout", handlers.LogoutHandler)

	// Сводка по кандидатам.
	api.GET("/dashboard", handlers.DashboardHandler)

	// --- КАНДИДАТЫ ---
	clients := api.Group("/clients")
	{
		clients.GET("/add", handlers.ShowApplicationFormHandler)
		clients.POST("/add", handlers.AddCandidateHandler)
		clients.GET("/view", handlers.ViewClientsHandler)
		clients.POST("/update", handlers.UpdateCandidatesHandler)
		clients.GET("/:id", handlers.ViewCandidateHandler)
		clients.GET("/:id/download/pdf", handlers.DownloadCVPDFHandler)
		clients.GET("/:id/download/word", handlers.DownloadCVWordHandler)
	}

	// Экспорт и импорт Excel.
	api.GET("/export-excel", handlers.ExportExcelHandler)
	api.POST("/import-excel", handlers.ImportExcelHandler)

	// Группа для справочников с префиксом /api
	apiGroup := api.Group("/api")
	{
		// --- ВАКАНСИИ ---
		jobs := apiGroup.Group("/jobs")
		{
			jobs.GET("", handlers.ListJobsHandler)
			jobs.POST("", handlers.CreateJobHandler)
			jobs.GET("/:id", handlers.GetJobHandler)
			jobs.PUT("/:id", handlers.UpdateJobHandler)
			jobs.DELETE("/:id", handlers.DeleteJobHandler)
		}

		// --- СТРАНЫ ---
		countries := apiGroup.Group("/countries")
		{
			countries.GET("", handlers.ListCountriesHandler)
			countries.POST("", handlers.CreateCountryHandler)
			countries.GET("/:id", handlers.GetCountryHandler)
			countries.PUT("/:id", handlers.UpdateCountryHandler)
			countries.DELETE("/:id", handlers.DeleteCountryHandler)
		}

		// --- АГЕНТЫ ---
		agents := apiGroup.Group("/agents")
		{
			agents.GET("", handlers.ListAgentsHandler)
			agents.POST("", handlers.CreateAgentHandler)
			agents.GET("/:id", handlers.GetAgentHandler)
			agents.PUT("/:id", handlers.UpdateAgentHandler)
			agents.DELETE("/:id", handlers.DeleteAgentHandler)
		}
	}
}
