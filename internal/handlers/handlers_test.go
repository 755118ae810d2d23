// Общая обвязка тестов обработчиков: база в памяти вместо Postgres
// и роутер без middleware аутентификации.
package handlers

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/clovis-4458/Carbib/config"
	"github.com/clovis-4458/Carbib/models"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testDBCounter int64

func init() {
	gin.SetMode(gin.TestMode)
}

// setupTestDB подменяет config.DB на свежую базу SQLite в памяти.
// Каждый тест получает изолированную схему.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:handlers_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Country{},
		&models.Job{},
		&models.Agent{},
		&models.Candidate{},
	))

	config.DB = db
	config.RDB = nil
	return db
}

// performForm отправляет обычную HTML-форму (application/x-www-form-urlencoded).
func performForm(router *gin.Engine, method, target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// performMultipart отправляет multipart-форму с одним файлом и текстовыми полями.
func performMultipart(t *testing.T, router *gin.Engine, method, target, fileField, fileName string, fileContent []byte, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if fileField != "" {
		part, err := writer.CreateFormFile(fileField, fileName)
		require.NoError(t, err)
		_, err = part.Write(fileContent)
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func performGet(router *gin.Engine, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// newTestRouter собирает роутер с маршрутами кандидатов без аутентификации.
func newTestRouter() *gin.Engine {
	r := gin.New()
	r.GET("/clients/add", ShowApplicationFormHandler)
	r.POST("/clients/add", AddCandidateHandler)
	r.GET("/clients/view", ViewClientsHandler)
	r.POST("/clients/update", UpdateCandidatesHandler)
	r.GET("/clients/:id", ViewCandidateHandler)
	r.GET("/clients/:id/download/pdf", DownloadCVPDFHandler)
	r.GET("/clients/:id/download/word", DownloadCVWordHandler)
	r.GET("/dashboard", DashboardHandler)
	r.GET("/export-excel", ExportExcelHandler)
	r.POST("/import-excel", ImportExcelHandler)
	return r
}

// mustCreateJob и mustCreateAgent — фикстуры справочников.
func mustCreateJob(t *testing.T, db *gorm.DB, title string) models.Job {
	t.Helper()
	job := models.Job{Title: title, Status: models.JobStatusOpen}
	require.NoError(t, db.Create(&job).Error)
	return job
}

func mustCreateAgent(t *testing.T, db *gorm.DB, fullName string) models.Agent {
	t.Helper()
	agent := models.Agent{FullName: fullName}
	require.NoError(t, db.Create(&agent).Error)
	return agent
}

func mustCreateCandidate(t *testing.T, db *gorm.DB, c models.Candidate) models.Candidate {
	t.Helper()
	require.NoError(t, db.Create(&c).Error)
	return c
}
