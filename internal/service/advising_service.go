package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/erasmus-advisor-api/internal/dto"
	"github.com/noah-isme/erasmus-advisor-api/internal/llm"
	"github.com/noah-isme/erasmus-advisor-api/internal/models"
	"github.com/noah-isme/erasmus-advisor-api/internal/section"
	"github.com/noah-isme/erasmus-advisor-api/internal/session"
	appErrors "github.com/noah-isme/erasmus-advisor-api/pkg/errors"
)

type advisingDocumentRepository interface {
	FindLatest(ctx context.Context, universityName string, docType models.DocumentType) (*models.Document, error)
	FindCoursesByDestination(ctx context.Context, destination string) (*models.Document, error)
}

type advisingUniversityRepository interface {
	ListWithActiveCall(ctx context.Context) ([]string, error)
}

// TextExtractor reads the text layer of a PDF document.
type TextExtractor interface {
	ExtractFile(path string) (string, error)
	ExtractBytes(data []byte) (string, error)
}

type documentStorage interface {
	Path(filename string) string
}

type urlSigner interface {
	Generate(documentID, relPath string) (string, time.Time, error)
	Parse(token string, allowExpired bool) (documentID, relPath string, expiresAt time.Time, err error)
}

// AdvisingConfig tunes the workflow orchestration.
type AdvisingConfig struct {
	MaxPromptChars int
	CacheTTL       time.Duration
	FilesBasePath  string
}

// AdvisingService drives the student workflow: call summary, department
// catalog, destination extraction and course-compatibility analysis.
type AdvisingService struct {
	docs      advisingDocumentRepository
	unis      advisingUniversityRepository
	extractor TextExtractor
	model     llm.ModelClient
	sessions  *session.Store
	segmenter *section.Segmenter
	catalog   *section.Catalog
	storage   documentStorage
	signer    urlSigner
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	config    AdvisingConfig
}

// NewAdvisingService constructs the workflow orchestrator.
func NewAdvisingService(
	docs advisingDocumentRepository,
	unis advisingUniversityRepository,
	extractor TextExtractor,
	model llm.ModelClient,
	sessions *session.Store,
	segmenter *section.Segmenter,
	catalog *section.Catalog,
	store documentStorage,
	signer urlSigner,
	cache *CacheService,
	metrics *MetricsService,
	validate *validator.Validate,
	logger *zap.Logger,
	config AdvisingConfig,
) *AdvisingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if segmenter == nil {
		segmenter = section.NewSegmenter(nil)
	}
	if catalog == nil {
		catalog = section.NewCatalog(0)
	}
	if config.FilesBasePath == "" {
		config.FilesBasePath = "/api/v1/advisor/files/exams"
	}
	return &AdvisingService{
		docs:      docs,
		unis:      unis,
		extractor: extractor,
		model:     model,
		sessions:  sessions,
		segmenter: segmenter,
		catalog:   catalog,
		storage:   store,
		signer:    signer,
		cache:     cache,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		config:    config,
	}
}

// ListUniversities returns the universities students can start from.
func (s *AdvisingService) ListUniversities(ctx context.Context) (*dto.UniversitiesResponse, error) {
	names, err := s.unis.ListWithActiveCall(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list universities")
	}
	return &dto.UniversitiesResponse{Universities: names}, nil
}

// Step1 resolves the call document of the home university, summarizes it
// and opens an advising session. An unknown university is not an error:
// the student simply learns there is no program to apply to.
func (s *AdvisingService) Step1(ctx context.Context, req dto.Step1Request) (*dto.Step1Response, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid step payload")
	}

	doc, err := s.docs.FindLatest(ctx, req.HomeUniversity, models.DocumentCall)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.recordStep("step1", "no_program")
			return &dto.Step1Response{
				HasProgram: false,
				Summary:    fmt.Sprintf("Nessun bando trovato per %q.", req.HomeUniversity),
			}, nil
		}
		s.recordStep("step1", "error")
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to locate call document")
	}

	callText, err := s.extractor.ExtractFile(s.storage.Path(doc.Path))
	if err != nil {
		s.recordStep("step1", "error")
		return nil, err
	}

	summary, err := s.complete(ctx, "step1", llm.CallSummaryPrompt(callText, s.config.MaxPromptChars))
	if err != nil {
		s.recordStep("step1", "error")
		return nil, err
	}

	sess := s.sessions.Create(req.HomeUniversity)
	s.recordStep("step1", "success")
	s.logger.Info("advising session created",
		zap.String("session_id", sess.ID),
		zap.String("home_university", req.HomeUniversity))

	return &dto.Step1Response{HasProgram: true, Summary: summary, SessionID: sess.ID}, nil
}

// Departments lists the departments found in the destinations document of
// the session's university. Results are cached per document.
func (s *AdvisingService) Departments(ctx context.Context, req dto.DepartmentsRequest) (*dto.DepartmentsResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid step payload")
	}

	h, err := s.sessions.Acquire(req.SessionID)
	if err != nil {
		return nil, err
	}
	defer h.Release()
	sess := h.Session()

	doc, err := s.findDocument(ctx, sess.HomeUniversity, models.DocumentDestinations)
	if err != nil {
		s.recordStep("departments", "error")
		return nil, err
	}

	cacheKey := fmt.Sprintf("departments:%s:%s", sess.HomeUniversity, doc.ID)
	var cached []string
	if hit, _ := s.cache.Get(ctx, cacheKey, &cached); hit {
		s.recordStep("departments", "success")
		return &dto.DepartmentsResponse{Departments: cached}, nil
	}

	text, err := s.extractor.ExtractFile(s.storage.Path(doc.Path))
	if err != nil {
		s.recordStep("departments", "error")
		return nil, err
	}

	departments, err := s.catalog.AvailableDepartments(text)
	if err != nil {
		s.recordStep("departments", "error")
		return nil, err
	}

	_ = s.cache.Set(ctx, cacheKey, departments, s.config.CacheTTL)
	s.recordStep("departments", "success")

	return &dto.DepartmentsResponse{Departments: departments}, nil
}

// Step2 isolates the chosen department's section and extracts its partner
// institutions. The period is committed to the session only when the whole
// step succeeds.
func (s *AdvisingService) Step2(ctx context.Context, req dto.Step2Request) (*dto.Step2Response, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid step payload")
	}

	h, err := s.sessions.Acquire(req.SessionID)
	if err != nil {
		return nil, err
	}
	defer h.Release()
	sess := h.Session()

	doc, err := s.findDocument(ctx, sess.HomeUniversity, models.DocumentDestinations)
	if err != nil {
		s.recordStep("step2", "error")
		return nil, err
	}

	text, err := s.extractor.ExtractFile(s.storage.Path(doc.Path))
	if err != nil {
		s.recordStep("step2", "error")
		return nil, err
	}

	sectionText, err := s.segmenter.ExtractSection(text, req.Department)
	if err != nil {
		s.recordStep("step2", "error")
		return nil, err
	}

	reply, err := s.complete(ctx, "step2", llm.DestinationsPrompt(req.Department, req.Period, sectionText))
	if err != nil {
		s.recordStep("step2", "error")
		return nil, err
	}

	var destinations []models.Destination
	if err := llm.ParseArray(reply, &destinations); err != nil {
		s.recordStep("step2", "error")
		return nil, err
	}

	h.SetPeriod(req.Period)
	s.recordStep("step2", "success")
	s.logger.Info("destinations extracted",
		zap.String("session_id", sess.ID),
		zap.String("department", req.Department),
		zap.Int("count", len(destinations)))

	return &dto.Step2Response{Destinations: destinations}, nil
}

// Step3 analyzes the compatibility between the uploaded study plan and the
// destination's course catalog. A malformed model reply degrades to a
// zero-score fallback so the student still gets the catalog link.
func (s *AdvisingService) Step3(ctx context.Context, req dto.Step3Request, studyPlan []byte) (*dto.Step3Response, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid step payload")
	}

	h, err := s.sessions.Acquire(req.SessionID)
	if err != nil {
		return nil, err
	}
	defer h.Release()
	sess := h.Session()

	doc, err := s.docs.FindCoursesByDestination(ctx, req.DestinationUniversity)
	if err != nil {
		s.recordStep("step3", "error")
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrDocumentNotFound,
				fmt.Sprintf("no course catalog found for %q", req.DestinationUniversity))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to locate course catalog")
	}

	planText, err := s.extractor.ExtractBytes(studyPlan)
	if err != nil {
		s.recordStep("step3", "error")
		return nil, err
	}

	examText, err := s.extractor.ExtractFile(s.storage.Path(doc.Path))
	if err != nil {
		s.recordStep("step3", "error")
		return nil, err
	}

	reply, err := s.complete(ctx, "step3", llm.ExamsCompatibilityPrompt(req.DestinationUniversity, planText, examText, sess.Period))
	if err != nil {
		s.recordStep("step3", "error")
		return nil, err
	}

	pdfURL, pdfName := s.coursesLink(doc)

	var analysis models.ExamsAnalysis
	if err := llm.ParseObject(reply, &analysis); err != nil {
		// Parse failures never fail the request: the student keeps a
		// valid pointer to the catalog and a zero-score analysis.
		s.logger.Warn("exams analysis reply unparsable, returning fallback",
			zap.String("session_id", sess.ID), zap.Error(err))
		s.recordStep("step3", "fallback")
		analysis = models.ExamsAnalysis{
			MatchedExams:       []models.MatchedExam{},
			SuggestedExams:     []models.SuggestedExam{},
			CompatibilityScore: 0,
			AnalysisSummary:    "Errore nell'analisi automatica. Si prega di consultare manualmente il PDF dei corsi disponibili.",
		}
	} else {
		if analysis.MatchedExams == nil {
			analysis.MatchedExams = []models.MatchedExam{}
		}
		if analysis.SuggestedExams == nil {
			analysis.SuggestedExams = []models.SuggestedExam{}
		}
		s.recordStep("step3", "success")
	}

	analysis.ExamsPDFURL = pdfURL
	analysis.ExamsPDFFilename = pdfName

	return &dto.Step3Response{Analysis: analysis}, nil
}

// ResolveCoursesToken validates a signed download token and returns the
// absolute path and download filename of the referenced catalog.
func (s *AdvisingService) ResolveCoursesToken(token string) (path, filename string, err error) {
	_, relPath, _, err := s.signer.Parse(token, false)
	if err != nil {
		return "", "", appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid download token")
	}
	return s.storage.Path(relPath), filepath.Base(relPath), nil
}

func (s *AdvisingService) findDocument(ctx context.Context, universityName string, docType models.DocumentType) (*models.Document, error) {
	doc, err := s.docs.FindLatest(ctx, universityName, docType)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrDocumentNotFound,
				fmt.Sprintf("no %s document found for %q", docType, universityName))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to locate document")
	}
	return doc, nil
}

func (s *AdvisingService) complete(ctx context.Context, step, prompt string) (string, error) {
	start := time.Now()
	reply, err := s.model.Complete(ctx, prompt)
	if s.metrics != nil {
		s.metrics.ObserveModelCompletion(step, time.Since(start))
	}
	return reply, err
}

func (s *AdvisingService) coursesLink(doc *models.Document) (url, filename string) {
	if s.signer == nil {
		return "", doc.StoredFilename
	}
	token, _, err := s.signer.Generate(doc.ID, doc.Path)
	if err != nil {
		s.logger.Warn("failed to sign courses link", zap.String("document_id", doc.ID), zap.Error(err))
		return "", doc.StoredFilename
	}
	return s.config.FilesBasePath + "/" + token, doc.StoredFilename
}

func (s *AdvisingService) recordStep(step, outcome string) {
	if s.metrics != nil {
		s.metrics.RecordStep(step, outcome)
	}
}
