package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/erasmus-advisor-api/internal/models"
	"github.com/noah-isme/erasmus-advisor-api/internal/section"
	"github.com/noah-isme/erasmus-advisor-api/internal/service"
	"github.com/noah-isme/erasmus-advisor-api/internal/session"
	"github.com/noah-isme/erasmus-advisor-api/pkg/config"
	"github.com/noah-isme/erasmus-advisor-api/pkg/storage"
)

type stubDocRepo struct {
	doc *models.Document
}

func (s *stubDocRepo) FindLatest(ctx context.Context, universityName string, docType models.DocumentType) (*models.Document, error) {
	if s.doc == nil {
		return nil, sql.ErrNoRows
	}
	return s.doc, nil
}

func (s *stubDocRepo) FindCoursesByDestination(ctx context.Context, destination string) (*models.Document, error) {
	if s.doc == nil {
		return nil, sql.ErrNoRows
	}
	return s.doc, nil
}

type stubUniRepo struct{}

func (stubUniRepo) ListWithActiveCall(ctx context.Context) ([]string, error) {
	return []string{"Università di Pisa"}, nil
}

type stubExtractor struct{}

func (stubExtractor) ExtractFile(path string) (string, error) { return "Bando Erasmus+ 2026.", nil }
func (stubExtractor) ExtractBytes(data []byte) (string, error) {
	return "Algoritmi | 9 CFU", nil
}

type stubModel struct{}

func (stubModel) Complete(ctx context.Context, prompt string) (string, error) {
	return "Riassunto del bando.", nil
}

type stubStorage struct{}

func (stubStorage) Path(filename string) string { return "/data/" + filename }

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sessions := session.NewStore(config.SessionConfig{TTL: time.Hour}, zap.NewNop())
	signer := storage.NewSignedURLSigner("secret", time.Hour)

	advising := service.NewAdvisingService(
		&stubDocRepo{doc: &models.Document{ID: "doc-1", Path: "pisa/call.pdf", StoredFilename: "call.pdf"}},
		stubUniRepo{},
		stubExtractor{},
		stubModel{},
		sessions,
		section.NewSegmenter(nil),
		section.NewCatalog(0),
		stubStorage{},
		signer,
		nil,
		nil,
		nil,
		zap.NewNop(),
		service.AdvisingConfig{},
	)
	export := service.NewExportService(nil, nil, nil, zap.NewNop())

	r := gin.New()
	Register(r, "/api/v1", Routers{
		Advisor:    NewAdvisorHandler(advising, export),
		University: NewUniversityHandler(service.NewAuthService(nil, nil, nil, service.AuthConfig{Secret: "secret"}), nil),
	}, service.NewAuthService(nil, nil, nil, service.AuthConfig{Secret: "secret"}), nil)
	return r
}

func TestAdvisorUniversitiesEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/advisor/universities", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data struct {
			Universities []string `json:"universities"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []string{"Università di Pisa"}, body.Data.Universities)
}

func TestAdvisorStep1Endpoint(t *testing.T) {
	r := newTestRouter(t)

	payload := bytes.NewBufferString(`{"home_university":"Università di Pisa"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/advisor/step1", payload)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data struct {
			HasProgram bool   `json:"has_program"`
			Summary    string `json:"summary"`
			SessionID  string `json:"session_id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Data.HasProgram)
	assert.Equal(t, "Riassunto del bando.", body.Data.Summary)
	assert.NotEmpty(t, body.Data.SessionID)
}

func TestAdvisorStep1EndpointBadPayload(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/advisor/step1", strings.NewReader("not-json"))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
}

func TestAdvisorStep3EndpointRejectsNonPDF(t *testing.T) {
	r := newTestRouter(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("session_id", "3f1a9c52-67a4-4c8e-9c11-51e2e97d0a10"))
	require.NoError(t, mw.WriteField("destination_university_name", "Coimbra"))
	part, err := mw.CreateFormFile("study_plan", "piano_di_studi.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte("non un pdf"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/advisor/step3", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
}

func TestAdvisorDownloadInvalidToken(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/advisor/files/exams/garbage", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdvisorExportEndpoint(t *testing.T) {
	r := newTestRouter(t)

	payload := bytes.NewBufferString(`{"analysis":{"matched_exams":[],"suggested_exams":[],"compatibility_score":50,"analysis_summary":"ok"}}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/advisor/analysis/export?format=csv", payload)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, w.Body.String(), "50%")
}
