package service

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/erasmus-advisor-api/internal/dto"
	"github.com/noah-isme/erasmus-advisor-api/internal/models"
	appErrors "github.com/noah-isme/erasmus-advisor-api/pkg/errors"
)

type mockDocumentRepo struct {
	created         []*models.Document
	retired         []string
	docs            []models.Document
	deactivated     bool
	deactivateFound bool
}

func (m *mockDocumentRepo) Create(ctx context.Context, doc *models.Document) error {
	doc.ID = "doc-1"
	m.created = append(m.created, doc)
	return nil
}

func (m *mockDocumentRepo) ListByUniversity(ctx context.Context, universityID string, docType models.DocumentType, page, pageSize int) ([]models.Document, int, error) {
	return m.docs, len(m.docs), nil
}

func (m *mockDocumentRepo) Deactivate(ctx context.Context, id, universityID string) (bool, error) {
	m.deactivated = true
	return m.deactivateFound, nil
}

func (m *mockDocumentRepo) DeactivateOthers(ctx context.Context, universityID string, docType models.DocumentType, keepID string) error {
	m.retired = append(m.retired, keepID)
	return nil
}

type mockUploadStorage struct {
	saved   map[string]string
	deleted []string
}

func (m *mockUploadStorage) SaveStream(filename string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if m.saved == nil {
		m.saved = make(map[string]string)
	}
	m.saved[filename] = string(data)
	return filename, nil
}

func (m *mockUploadStorage) Delete(filename string) error {
	m.deleted = append(m.deleted, filename)
	return nil
}

func newUniversityServiceForTest(repo *mockDocumentRepo, store *mockUploadStorage) *UniversityService {
	return NewUniversityService(repo, store, nil, validator.New(), zap.NewNop(), UniversityConfig{MaxFileSizeBytes: 1 << 20})
}

func TestUniversityUploadDocument(t *testing.T) {
	repo := &mockDocumentRepo{}
	store := &mockUploadStorage{}
	svc := newUniversityServiceForTest(repo, store)

	doc, err := svc.UploadDocument(context.Background(), "uni-1", "Università di Pisa",
		dto.UploadDocumentRequest{Type: models.DocumentDestinations, AcademicYear: "2026/2027"},
		"destinazioni.pdf", 128, strings.NewReader("%PDF-1.4"))
	require.NoError(t, err)
	assert.Equal(t, "doc-1", doc.ID)
	assert.Equal(t, models.DocumentDestinations, doc.Type)
	assert.Equal(t, "destinazioni.pdf", doc.OriginalFilename)
	assert.True(t, doc.Active)
	assert.Equal(t, []string{"doc-1"}, repo.retired)
	require.Len(t, store.saved, 1)
}

func TestUniversityUploadRejectsNonPDF(t *testing.T) {
	svc := newUniversityServiceForTest(&mockDocumentRepo{}, &mockUploadStorage{})

	_, err := svc.UploadDocument(context.Background(), "uni-1", "Università di Pisa",
		dto.UploadDocumentRequest{Type: models.DocumentCall},
		"bando.docx", 128, strings.NewReader("data"))
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestUniversityUploadRejectsOversized(t *testing.T) {
	svc := newUniversityServiceForTest(&mockDocumentRepo{}, &mockUploadStorage{})

	_, err := svc.UploadDocument(context.Background(), "uni-1", "Università di Pisa",
		dto.UploadDocumentRequest{Type: models.DocumentCall},
		"bando.pdf", 2<<20, strings.NewReader("data"))
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestUniversityUploadRejectsUnknownType(t *testing.T) {
	svc := newUniversityServiceForTest(&mockDocumentRepo{}, &mockUploadStorage{})

	_, err := svc.UploadDocument(context.Background(), "uni-1", "Università di Pisa",
		dto.UploadDocumentRequest{Type: "syllabus"},
		"syllabus.pdf", 128, strings.NewReader("data"))
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestUniversityListDocuments(t *testing.T) {
	repo := &mockDocumentRepo{docs: []models.Document{{ID: "doc-1"}, {ID: "doc-2"}}}
	svc := newUniversityServiceForTest(repo, &mockUploadStorage{})

	docs, pagination, err := svc.ListDocuments(context.Background(), "uni-1", dto.DocumentFilter{})
	require.NoError(t, err)
	assert.Len(t, docs, 2)
	assert.Equal(t, 1, pagination.Page)
	assert.Equal(t, 20, pagination.PageSize)
	assert.Equal(t, 2, pagination.TotalCount)
}

func TestUniversityDeactivateDocument(t *testing.T) {
	repo := &mockDocumentRepo{deactivateFound: true}
	svc := newUniversityServiceForTest(repo, &mockUploadStorage{})

	err := svc.DeactivateDocument(context.Background(), "uni-1", "Università di Pisa", "doc-1")
	require.NoError(t, err)
	assert.True(t, repo.deactivated)
}

func TestUniversityDeactivateDocumentNotOwned(t *testing.T) {
	repo := &mockDocumentRepo{deactivateFound: false}
	svc := newUniversityServiceForTest(repo, &mockUploadStorage{})

	err := svc.DeactivateDocument(context.Background(), "uni-1", "Università di Pisa", "doc-9")
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}
