package routes

import (
	"github.com/clovis-4458/Carbib/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes регистрирует публичные маршруты.
// Эти маршруты не требуют middleware для проверки токена.
func RegisterAuthRoutes(r *gin.Engine) {
	// Регистрация нового сотрудника.
	r.POST("/", handlers.RegisterHandler)

	// Маршрут для обработки данных с формы входа.
	r.POST("/login", handlers.LoginHandler)
}
