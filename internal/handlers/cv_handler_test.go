package handlers

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/clovis-4458/Carbib/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readZipEntry(t *testing.T, zr *zip.Reader, name string) string {
	t.Helper()
	for _, f := range zr.File {
		if f.Name == name {
			rc, err := f.Open()
			require.NoError(t, err)
			defer rc.Close()
			data, err := io.ReadAll(rc)
			require.NoError(t, err)
			return string(data)
		}
	}
	t.Fatalf("entry %s not found in archive", name)
	return ""
}

func TestDownloadCVWordWithoutPhotos(t *testing.T) {
	db := setupTestDB(t)
	router := newTestRouter()

	job := mustCreateJob(t, db, "Housekeeper")
	candidate := mustCreateCandidate(t, db, models.Candidate{
		FullName:       "Okello James",
		Gender:         "Male",
		PassportNumber: "B6000001",
		JobAppliedID:   &job.ID,
	})

	w := performGet(router, fmt.Sprintf("/clients/%d/download/word", candidate.ID))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "CV_Okello James.docx")

	zr, err := zip.NewReader(bytes.NewReader(w.Body.Bytes()), int64(w.Body.Len()))
	require.NoError(t, err)

	doc := readZipEntry(t, zr, "word/document.xml")
	assert.Contains(t, doc, "CURRICULUM VITAE")
	assert.Contains(t, doc, "Okello James")
	assert.Contains(t, doc, "Housekeeper")
	// Незаполненные разделы резюме подставляют N/A.
	assert.Contains(t, doc, "N/A")

	readZipEntry(t, zr, "word/styles.xml")
	readZipEntry(t, zr, "[Content_Types].xml")
	for _, f := range zr.File {
		assert.False(t, strings.HasPrefix(f.Name, "word/media/"),
			"document without photos must not embed media: %s", f.Name)
	}
}

func TestDownloadCVWordEscapesXML(t *testing.T) {
	db := setupTestDB(t)
	router := newTestRouter()

	candidate := mustCreateCandidate(t, db, models.Candidate{
		FullName:       "Okello <James> & Sons",
		PassportNumber: "B6000002",
	})

	w := performGet(router, fmt.Sprintf("/clients/%d/download/word", candidate.ID))
	require.Equal(t, http.StatusOK, w.Code)

	zr, err := zip.NewReader(bytes.NewReader(w.Body.Bytes()), int64(w.Body.Len()))
	require.NoError(t, err)
	doc := readZipEntry(t, zr, "word/document.xml")
	assert.Contains(t, doc, "Okello &lt;James&gt; &amp; Sons")
	assert.NotContains(t, doc, "<James>")
}

func TestDownloadCVWordNotFound(t *testing.T) {
	setupTestDB(t)
	router := newTestRouter()

	w := performGet(router, "/clients/9999/download/word")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Candidate not found")

	// Нечисловой ID — ошибка клиента, а не базы.
	w = performGet(router, "/clients/abc/download/word")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid candidate ID")

	w = performGet(router, "/clients/abc/download/pdf")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDownloadCVPDF(t *testing.T) {
	db := setupTestDB(t)
	router := newTestRouter()

	fakePDF := []byte("%PDF-1.4 fake body")
	var receivedContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedContentType = r.Header.Get("Content-Type")
		require.Equal(t, "/forms/chromium/convert/html", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(32<<20))
		files := r.MultipartForm.File["files"]
		require.NotEmpty(t, files)
		assert.Equal(t, "index.html", files[0].Filename)
		w.Header().Set("Content-Type", "application/pdf")
		w.Write(fakePDF)
	}))
	defer server.Close()
	t.Setenv("GOTENBERG_URL", server.URL)

	job := mustCreateJob(t, db, "Driver")
	candidate := mustCreateCandidate(t, db, models.Candidate{
		FullName:       "Akello Grace",
		PassportNumber: "B6000003",
		JobAppliedID:   &job.ID,
	})

	w := performGet(router, fmt.Sprintf("/clients/%d/download/pdf", candidate.ID))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, receivedContentType, "multipart/form-data")
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "CV_Akello Grace.pdf")
	assert.Equal(t, fakePDF, w.Body.Bytes())
}

func TestDownloadCVPDFConverterFailure(t *testing.T) {
	db := setupTestDB(t)
	router := newTestRouter()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "chromium crashed", http.StatusInternalServerError)
	}))
	defer server.Close()
	t.Setenv("GOTENBERG_URL", server.URL)

	candidate := mustCreateCandidate(t, db, models.Candidate{
		FullName:       "Okello James",
		PassportNumber: "B6000004",
	})

	w := performGet(router, fmt.Sprintf("/clients/%d/download/pdf", candidate.ID))
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Error generating PDF")
}

func TestBuildCVFieldsFallsBackToNA(t *testing.T) {
	fields := buildCVFields(&models.Candidate{FullName: "Okello James"})
	byLabel := make(map[string]string, len(fields))
	for _, f := range fields {
		byLabel[f.Label] = f.Value
	}
	assert.Equal(t, "Okello James", byLabel["Full Name"])
	assert.Equal(t, "N/A", byLabel["Job Applied For"])
	assert.Equal(t, "N/A", byLabel["Date of Birth"])
	assert.Equal(t, "N/A", byLabel["Skills"])
}
