// Тесты справочников: страны, вакансии, агенты.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/clovis-4458/Carbib/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReferenceRouter() *gin.Engine {
	r := gin.New()
	api := r.Group("/api")
	{
		api.GET("/countries", ListCountriesHandler)
		api.POST("/countries", CreateCountryHandler)
		api.GET("/countries/:id", GetCountryHandler)
		api.PUT("/countries/:id", UpdateCountryHandler)
		api.DELETE("/countries/:id", DeleteCountryHandler)

		api.GET("/jobs", ListJobsHandler)
		api.POST("/jobs", CreateJobHandler)

		api.GET("/agents", ListAgentsHandler)
		api.POST("/agents", CreateAgentHandler)
		api.DELETE("/agents/:id", DeleteAgentHandler)
	}
	return r
}

func performJSON(router *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCountryCRUD(t *testing.T) {
	setupTestDB(t)
	router := newReferenceRouter()

	w := performJSON(router, http.MethodPost, "/api/countries", `{"name":"Qatar"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created models.Country
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotZero(t, created.ID)

	w = performJSON(router, http.MethodPost, "/api/countries", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performJSON(router, http.MethodPut, fmt.Sprintf("/api/countries/%d", created.ID), `{"name":"Saudi Arabia"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var updated models.Country
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "Saudi Arabia", updated.Name)

	w = performGet(router, fmt.Sprintf("/api/countries/%d", created.ID))
	require.Equal(t, http.StatusOK, w.Code)

	w = performGet(router, "/api/countries/9999")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListCountriesPaginated(t *testing.T) {
	db := setupTestDB(t)
	router := newReferenceRouter()

	for _, name := range []string{"Qatar", "Oman", "Jordan"} {
		require.NoError(t, db.Create(&models.Country{Name: name}).Error)
	}

	// Режим выпадающего списка: плоский массив без обертки.
	w := performGet(router, "/api/countries?all=true")
	require.Equal(t, http.StatusOK, w.Code)
	var flat []models.Country
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &flat))
	require.Len(t, flat, 3)
	assert.Equal(t, "Jordan", flat[0].Name)

	w = performGet(router, "/api/countries?page=1&pageSize=2")
	require.Equal(t, http.StatusOK, w.Code)
	var paged struct {
		Data        []models.Country `json:"data"`
		TotalRows   int64            `json:"totalRows"`
		TotalPages  int              `json:"totalPages"`
		CurrentPage int              `json:"currentPage"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &paged))
	assert.Len(t, paged.Data, 2)
	assert.Equal(t, int64(3), paged.TotalRows)
	assert.Equal(t, 2, paged.TotalPages)
	assert.Equal(t, 1, paged.CurrentPage)
}

func TestCreateJobRequiresTitle(t *testing.T) {
	setupTestDB(t)
	router := newReferenceRouter()

	w := performJSON(router, http.MethodPost, "/api/jobs", `{"salary":1200}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performJSON(router, http.MethodPost, "/api/jobs", `{"title":"Welder","salary":1200}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var job models.Job
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &job))
	assert.Equal(t, "Welder", job.Title)
	assert.Equal(t, float64(1200), job.Salary)
}

func TestListJobsAllReturnsOnlyOpen(t *testing.T) {
	db := setupTestDB(t)
	router := newReferenceRouter()

	mustCreateJob(t, db, "Housekeeper")
	closed := models.Job{Title: "Old Vacancy", Status: models.JobStatusClosed}
	require.NoError(t, db.Create(&closed).Error)

	w := performGet(router, "/api/jobs?all=true")
	require.Equal(t, http.StatusOK, w.Code)
	var jobs []models.Job
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &jobs))
	require.Len(t, jobs, 1)
	assert.Equal(t, "Housekeeper", jobs[0].Title)
}

func TestCreateAgentRequiresFullName(t *testing.T) {
	setupTestDB(t)
	router := newReferenceRouter()

	w := performForm(router, http.MethodPost, "/api/agents", url.Values{"gender": {"Male"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performForm(router, http.MethodPost, "/api/agents", url.Values{
		"full_name":    {"Musa Kintu"},
		"phone_number": {"+256700000009"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var agent models.Agent
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &agent))
	assert.Equal(t, "Musa Kintu", agent.FullName)
}

func TestDeleteAgentKeepsCandidates(t *testing.T) {
	db := setupTestDB(t)
	router := newReferenceRouter()

	agent := mustCreateAgent(t, db, "Musa Kintu")
	candidate := mustCreateCandidate(t, db, models.Candidate{
		FullName:       "Okello James",
		PassportNumber: "B7000001",
		ReferralInfoID: &agent.ID,
	})

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/agents/%d", agent.ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var still models.Candidate
	require.NoError(t, db.First(&still, candidate.ID).Error)
	assert.Equal(t, "Okello James", still.FullName)
}
