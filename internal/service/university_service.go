package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/erasmus-advisor-api/internal/dto"
	"github.com/noah-isme/erasmus-advisor-api/internal/models"
	appErrors "github.com/noah-isme/erasmus-advisor-api/pkg/errors"
)

type universityDocumentRepository interface {
	Create(ctx context.Context, doc *models.Document) error
	ListByUniversity(ctx context.Context, universityID string, docType models.DocumentType, page, pageSize int) ([]models.Document, int, error)
	Deactivate(ctx context.Context, id, universityID string) (bool, error)
	DeactivateOthers(ctx context.Context, universityID string, docType models.DocumentType, keepID string) error
}

type uploadStorage interface {
	SaveStream(filename string, r io.Reader) (string, error)
	Delete(filename string) error
}

// UniversityConfig tunes document uploads.
type UniversityConfig struct {
	MaxFileSizeBytes int64
}

// UniversityService manages the document library of a university account.
type UniversityService struct {
	docs      universityDocumentRepository
	storage   uploadStorage
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
	config    UniversityConfig
}

// NewUniversityService constructs a UniversityService.
func NewUniversityService(docs universityDocumentRepository, store uploadStorage, cache *CacheService, validate *validator.Validate, logger *zap.Logger, config UniversityConfig) *UniversityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &UniversityService{docs: docs, storage: store, cache: cache, validator: validate, logger: logger, config: config}
}

// UploadDocument stores one PDF and makes it the active document of its
// type. Previous documents of the same type are retired, not deleted.
func (s *UniversityService) UploadDocument(ctx context.Context, universityID, universityName string, req dto.UploadDocumentRequest, originalFilename string, size int64, file io.Reader) (*models.Document, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid upload payload")
	}
	if !strings.EqualFold(filepath.Ext(originalFilename), ".pdf") {
		return nil, appErrors.Clone(appErrors.ErrValidation, "only PDF documents are accepted")
	}
	if s.config.MaxFileSizeBytes > 0 && size > s.config.MaxFileSizeBytes {
		return nil, appErrors.Clone(appErrors.ErrValidation,
			fmt.Sprintf("file exceeds the %d byte limit", s.config.MaxFileSizeBytes))
	}

	storedFilename := fmt.Sprintf("%s_%s_%s.pdf", universityID, req.Type, time.Now().UTC().Format("20060102_150405"))
	relPath, err := s.storage.SaveStream(filepath.Join(universityID, storedFilename), file)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store document")
	}

	doc := &models.Document{
		UniversityID:     universityID,
		Type:             req.Type,
		OriginalFilename: originalFilename,
		StoredFilename:   storedFilename,
		Path:             relPath,
		AcademicYear:     req.AcademicYear,
		Active:           true,
	}
	if err := s.docs.Create(ctx, doc); err != nil {
		if delErr := s.storage.Delete(relPath); delErr != nil {
			s.logger.Warn("failed to remove orphaned upload", zap.String("path", relPath), zap.Error(delErr))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record document")
	}

	if err := s.docs.DeactivateOthers(ctx, universityID, req.Type, doc.ID); err != nil {
		s.logger.Warn("failed to retire previous documents",
			zap.String("university_id", universityID), zap.String("document_type", string(req.Type)), zap.Error(err))
	}

	s.invalidateDerived(ctx, universityName, req.Type)

	s.logger.Info("document uploaded",
		zap.String("university_id", universityID),
		zap.String("document_id", doc.ID),
		zap.String("document_type", string(req.Type)))

	return doc, nil
}

// ListDocuments returns the university's uploads with pagination metadata.
func (s *UniversityService) ListDocuments(ctx context.Context, universityID string, filter dto.DocumentFilter) ([]models.Document, *models.Pagination, error) {
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown document type %q", filter.Type))
	}
	docs, total, err := s.docs.ListByUniversity(ctx, universityID, filter.Type, filter.Page, filter.PageSize)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list documents")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	return docs, &models.Pagination{Page: page, PageSize: pageSize, TotalCount: total}, nil
}

// DeactivateDocument retires one upload. Ownership is enforced by the query.
func (s *UniversityService) DeactivateDocument(ctx context.Context, universityID, universityName, documentID string) error {
	ok, err := s.docs.Deactivate(ctx, documentID, universityID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to deactivate document")
	}
	if !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "document not found")
	}

	s.invalidateDerived(ctx, universityName, "")

	s.logger.Info("document deactivated",
		zap.String("university_id", universityID), zap.String("document_id", documentID))
	return nil
}

// invalidateDerived drops cached payloads derived from the university's
// documents. Changing any document may change the department catalog.
func (s *UniversityService) invalidateDerived(ctx context.Context, universityName string, docType models.DocumentType) {
	if universityName == "" {
		return
	}
	if docType != "" && docType != models.DocumentDestinations {
		return
	}
	pattern := fmt.Sprintf("departments:%s:*", universityName)
	if err := s.cache.Invalidate(ctx, pattern); err != nil {
		s.logger.Warn("cache invalidation failed", zap.String("pattern", pattern), zap.Error(err))
	}
}
