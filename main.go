// carbib-crm/main.go
package main

import (
	"log/slog"
	"os"

	"github.com/clovis-4458/Carbib/config"
	"github.com/clovis-4458/Carbib/internal/routes"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env не обязателен — в проде переменные приходят из окружения контейнера.
	if err := godotenv.Load(); err != nil {
		slog.Warn("Файл .env не найден, используются переменные окружения")
	}

	config.LoadSettings()
	config.ConnectDB()
	config.ConnectRedis()

	r := gin.Default()
	r.MaxMultipartMemory = 32 << 20

	// Загруженные документы кандидатов раздаются как статика под /media.
	r.Static("/media", config.MediaRoot())

	routes.SetupRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	slog.Info("Запуск сервера", "port", port)
	if err := r.Run(":" + port); err != nil {
		slog.Error("Сервер остановлен с ошибкой", "error", err)
		os.Exit(1)
	}
}
