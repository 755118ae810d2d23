// carbib-crm/config/settings.go
package config

import (
	"log/slog"
	"os"
)

var JwtKey []byte

// LoadSettings читает секреты и базовые настройки из окружения.
// Вызывается один раз при старте, до подключения к БД.
func LoadSettings() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		slog.Warn("Переменная окружения JWT_SECRET не установлена, используется небезопасный ключ по умолчанию.")
		secret = "carbib-insecure-dev-key"
	}
	JwtKey = []byte(secret)
}

// MediaRoot возвращает корневую директорию для загруженных документов.
func MediaRoot() string {
	if v := os.Getenv("MEDIA_ROOT"); v != "" {
		return v
	}
	return "./media"
}

// GotenbergURL возвращает адрес сервиса конвертации HTML в PDF.
func GotenbergURL() string {
	if v := os.Getenv("GOTENBERG_URL"); v != "" {
		return v
	}
	return "http://gotenberg:3000"
}
