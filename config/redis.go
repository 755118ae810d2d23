// carbib-crm/config/redis.go
package config

import (
	"context"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"
)

// RDB — клиент кэша данных авторизованных пользователей.
// nil означает, что кэширование отключено: middleware в этом случае
// ходит за пользователем напрямую в БД.
var RDB *redis.Client
var Ctx = context.Background()

// ConnectRedis подключает кэш, если задан REDIS_ADDR.
// Недоступный Redis не валит приложение — кэш просто отключается.
func ConnectRedis() {
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		slog.Warn("Переменная окружения REDIS_ADDR не установлена, кэширование будет отключено.")
		return
	}

	RDB = redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})

	if _, err := RDB.Ping(Ctx).Result(); err != nil {
		slog.Error("Не удалось подключиться к Redis, кэширование отключено", "error", err)
		RDB = nil
		return
	}

	slog.Info("Успешное подключение к Redis!")
}
