// internal/handlers/handler_utils.go
package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/clovis-4458/Carbib/config"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// parseFormDate разбирает дату из формы (пустая строка — отсутствие значения).
func parseFormDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return &t
	}
	return nil
}

// saveUploadedFile сохраняет файл из multipart-формы в поддиректорию MEDIA_ROOT
// и возвращает URL-путь к нему. Отсутствие файла под ключом — не ошибка.
func saveUploadedFile(c *gin.Context, formKey, subDir string) (string, error) {
	file, header, err := c.Request.FormFile(formKey)
	if err != nil {
		// Форма без файлов (или вовсе не multipart) — не ошибка.
		if err == http.ErrMissingFile || err == http.ErrNotMultipart {
			return "", nil
		}
		return "", fmt.Errorf("error getting file from form '%s': %w", formKey, err)
	}
	defer file.Close()

	uploadDir := filepath.Join(config.MediaRoot(), subDir)
	if err := ensureDir(uploadDir); err != nil {
		return "", fmt.Errorf("failed to prepare upload dir: %w", err)
	}

	fileName := fmt.Sprintf("%s-%s", uuid.New().String(), filepath.Base(header.Filename))
	filePath := filepath.Join(uploadDir, fileName)

	out, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create file on server: %w", err)
	}
	defer out.Close()

	if _, err = io.Copy(out, file); err != nil {
		return "", fmt.Errorf("failed to copy file content: %w", err)
	}

	return "/" + filepath.ToSlash(filePath), nil
}

// ensureDir гарантирует существование директории.
// Если путь существует и это файл — вернёт ошибку.
func ensureDir(path string) error {
	if path == "" {
		return errors.New("empty dir path")
	}
	info, err := os.Stat(path)
	if err == nil {
		if !info.IsDir() {
			return errors.New("path exists and is not a directory")
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return err
	}
	return os.MkdirAll(path, 0o755)
}

// fileExists проверяет, что существует обычный файл (не директория).
func fileExists(p string) bool {
	if p == "" {
		return false
	}
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}
