package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/erasmus-advisor-api/internal/models"
	appErrors "github.com/noah-isme/erasmus-advisor-api/pkg/errors"
	"github.com/noah-isme/erasmus-advisor-api/pkg/export"
)

// ReportFormat identifies a supported export format.
type ReportFormat string

const (
	ReportFormatCSV ReportFormat = "csv"
	ReportFormatPDF ReportFormat = "pdf"
)

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportResult carries a rendered report ready for download.
type ExportResult struct {
	Payload     []byte
	Filename    string
	ContentType string
	Format      ReportFormat
}

// ExportService renders a compatibility analysis as a downloadable report.
type ExportService struct {
	csv       csvRenderer
	pdf       pdfRenderer
	validator *validator.Validate
	logger    *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(csv csvRenderer, pdf pdfRenderer, validate *validator.Validate, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{csv: csv, pdf: pdf, validator: validate, logger: logger}
}

// Render builds the report for the requested format.
func (s *ExportService) Render(analysis models.ExamsAnalysis, format ReportFormat) (*ExportResult, error) {
	dataset, title := buildAnalysisDataset(analysis)

	var (
		payload     []byte
		contentType string
		err         error
	)
	switch format {
	case ReportFormatCSV:
		payload, err = s.csv.Render(dataset)
		contentType = "text/csv"
	case ReportFormatPDF:
		payload, err = s.pdf.Render(dataset, title)
		contentType = "application/pdf"
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported format %q", format))
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render report")
	}

	filename := fmt.Sprintf("analisi_compatibilita_%s.%s", time.Now().UTC().Format("20060102_150405"), format)
	return &ExportResult{Payload: payload, Filename: filename, ContentType: contentType, Format: format}, nil
}

func buildAnalysisDataset(analysis models.ExamsAnalysis) (export.Dataset, string) {
	headers := []string{"Tipo", "Esame", "Corso destinazione", "Compatibilità", "CFU", "Note"}
	rows := make([]map[string]string, 0, len(analysis.MatchedExams)+len(analysis.SuggestedExams)+2)

	for _, m := range analysis.MatchedExams {
		rows = append(rows, map[string]string{
			"Tipo":               "Corrispondenza",
			"Esame":              m.StudentExam,
			"Corso destinazione": m.DestinationCourse,
			"Compatibilità":      m.Compatibility,
			"CFU":                formatCredits(m.CreditsStudent, m.CreditsDestination),
			"Note":               m.Notes,
		})
	}
	for _, sg := range analysis.SuggestedExams {
		rows = append(rows, map[string]string{
			"Tipo":               "Suggerito",
			"Esame":              "",
			"Corso destinazione": sg.CourseName,
			"Compatibilità":      sg.Category,
			"CFU":                sg.Credits,
			"Note":               sg.Reason,
		})
	}
	rows = append(rows, map[string]string{
		"Tipo":               "Punteggio",
		"Esame":              "",
		"Corso destinazione": "",
		"Compatibilità":      fmt.Sprintf("%.0f%%", analysis.CompatibilityScore),
		"CFU":                "",
		"Note":               "",
	})
	if summary := strings.TrimSpace(analysis.AnalysisSummary); summary != "" {
		rows = append(rows, map[string]string{
			"Tipo":               "Sintesi",
			"Esame":              "",
			"Corso destinazione": "",
			"Compatibilità":      "",
			"CFU":                "",
			"Note":               summary,
		})
	}

	dataset := export.Dataset{Headers: headers, Rows: rows}
	return dataset, "Analisi di compatibilità esami"
}

func formatCredits(student, destination string) string {
	if student == "" && destination == "" {
		return ""
	}
	return fmt.Sprintf("%s / %s", student, destination)
}
