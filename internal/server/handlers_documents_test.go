package server

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/directionwise/internal/export"
	"github.com/jonathan/directionwise/internal/resume"
)

const resumeText = `Jane Doe
Software engineer

Experienced in programming, coding and problem-solving.
Analytical and curious; built web data pipelines in Go and C++.`

type fakeArchiver struct {
	key    string
	err    error
	format export.Format
	data   []byte
}

func (f *fakeArchiver) Archive(_ context.Context, format export.Format, data []byte) (string, error) {
	f.format, f.data = format, data
	return f.key, f.err
}

func TestExport_CSVFromAnswers(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/exports", exportRequest{Format: "CSV", Answers: allAnswers()}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "career_recommendations.csv")

	records, err := csv.NewReader(w.Body).ReadAll()
	require.NoError(t, err)
	require.NotEmpty(t, records)
	assert.Equal(t, export.Columns, records[0])
	assert.LessOrEqual(t, len(records)-1, export.MaxRows)
	assert.Greater(t, len(records), 1)
}

func TestExport_PDFFromTags(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/exports", exportRequest{
		Format: "pdf",
		Skills: []string{"programming", "data analysis"},
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
}

func TestExport_NamedCareers(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/exports", exportRequest{
		Format:  "csv",
		Careers: []string{"Nonexistent Career"},
		Field:   "technology",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	records, err := csv.NewReader(w.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Nonexistent Career", records[1][0])
	assert.Empty(t, records[1][1])

	w = env.do(t, http.MethodPost, "/exports", exportRequest{Format: "csv", Careers: []string{"X"}, Field: "astrology"}, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExport_Rejects(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/exports", exportRequest{Format: "xlsx", Skills: []string{"programming"}}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/exports", exportRequest{Format: "csv"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/exports", map[string]any{"skills": []string{"programming"}}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExport_Archived(t *testing.T) {
	archiver := &fakeArchiver{key: "exports/2026/10/15/abc.docx"}
	env := newTestEnv(t, func(_ *Config, d *Deps) { d.Archiver = archiver })

	w := env.do(t, http.MethodPost, "/exports", exportRequest{Format: "docx", Skills: []string{"programming"}}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, archiver.key, w.Header().Get("X-Export-Key"))
	assert.Equal(t, export.FormatDOCX, archiver.format)
	assert.Equal(t, w.Body.Bytes(), archiver.data)
}

func TestExport_ArchiveFailureStillServes(t *testing.T) {
	env := newTestEnv(t, func(_ *Config, d *Deps) { d.Archiver = &fakeArchiver{err: errors.New("bucket gone")} })

	w := env.do(t, http.MethodPost, "/exports", exportRequest{Format: "csv", Skills: []string{"programming"}}, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("X-Export-Key"))
}

func TestAnalyzeResume_RawText(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/resume/analyze", []byte(resumeText), "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	got := decode[resume.Analysis](t, w)
	assert.Equal(t, "technology", got.TopField)
	assert.Contains(t, got.DetectedSkills, "programming")
	assert.NotEmpty(t, got.Keywords)
	assert.NotEmpty(t, got.SimilarCareers)
}

func TestAnalyzeResume_Multipart(t *testing.T) {
	env := newTestEnv(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "resume.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte(resumeText))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/resume/analyze", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	env.srv.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "technology", decode[resume.Analysis](t, w).TopField)
}

func TestAnalyzeResume_Multipart_MissingFile(t *testing.T) {
	env := newTestEnv(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("note", "no file here"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/resume/analyze", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	env.srv.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyzeResume_Errors(t *testing.T) {
	env := newTestEnv(t)

	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	w := env.do(t, http.MethodPost, "/resume/analyze", png, "")
	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)

	w = env.do(t, http.MethodPost, "/resume/analyze", []byte("   \n\n  "), "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = env.do(t, http.MethodPost, "/resume/analyze", []byte{}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	big := []byte(strings.Repeat("a ", maxResumeBytes))
	w = env.do(t, http.MethodPost, "/resume/analyze", big, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
