package routes

import (
	"github.com/clovis-4458/Carbib/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupRoutes инициализирует все маршруты приложения.
func SetupRoutes(r *gin.Engine) {
	// --- Публичные маршруты ---
	// Сначала регистрируем маршруты, которые не требуют аутентификации:
	// анкета кандидата и вход в систему.
	RegisterAuthRoutes(r)

	// --- Защищенная группа маршрутов ---
	// Все маршруты в этой группе требуют, чтобы пользователь был аутентифицирован.
	// Middleware `AuthMiddleware` проверяет наличие и валидность JWT токена.
	authRequired := r.Group("/")
	authRequired.Use(middleware.AuthMiddleware())
	{
		// Маршруты, доступные только авторизованным сотрудникам.
		RegisterAPIRoutes(authRequired)
	}
}
