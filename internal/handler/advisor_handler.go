package handler

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/erasmus-advisor-api/internal/dto"
	"github.com/noah-isme/erasmus-advisor-api/internal/service"
	appErrors "github.com/noah-isme/erasmus-advisor-api/pkg/errors"
	"github.com/noah-isme/erasmus-advisor-api/pkg/response"
)

// AdvisorHandler wires the student-facing advising endpoints.
type AdvisorHandler struct {
	advising *service.AdvisingService
	export   *service.ExportService
}

// NewAdvisorHandler creates a new handler.
func NewAdvisorHandler(advising *service.AdvisingService, export *service.ExportService) *AdvisorHandler {
	return &AdvisorHandler{advising: advising, export: export}
}

// Universities godoc
// @Summary List universities with an active call
// @Tags Advisor
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /advisor/universities [get]
func (h *AdvisorHandler) Universities(c *gin.Context) {
	res, err := h.advising.ListUniversities(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res, nil)
}

// Step1 godoc
// @Summary Summarize the home university's call and open a session
// @Tags Advisor
// @Accept json
// @Produce json
// @Param payload body dto.Step1Request true "Step 1 payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /advisor/step1 [post]
func (h *AdvisorHandler) Step1(c *gin.Context) {
	var req dto.Step1Request
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid step payload"))
		return
	}

	res, err := h.advising.Step1(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res, nil)
}

// Departments godoc
// @Summary List departments of the session's university
// @Tags Advisor
// @Accept json
// @Produce json
// @Param payload body dto.DepartmentsRequest true "Departments payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /advisor/departments [post]
func (h *AdvisorHandler) Departments(c *gin.Context) {
	var req dto.DepartmentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid step payload"))
		return
	}

	res, err := h.advising.Departments(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res, nil)
}

// Step2 godoc
// @Summary Extract partner institutions for a department
// @Tags Advisor
// @Accept json
// @Produce json
// @Param payload body dto.Step2Request true "Step 2 payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /advisor/step2 [post]
func (h *AdvisorHandler) Step2(c *gin.Context) {
	var req dto.Step2Request
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid step payload"))
		return
	}

	res, err := h.advising.Step2(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res, nil)
}

// Step3 godoc
// @Summary Analyze study plan compatibility with a destination
// @Tags Advisor
// @Accept multipart/form-data
// @Produce json
// @Param session_id formData string true "Session ID"
// @Param destination_university_name formData string true "Destination university"
// @Param study_plan formData file true "Study plan PDF"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /advisor/step3 [post]
func (h *AdvisorHandler) Step3(c *gin.Context) {
	var req dto.Step3Request
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid step payload"))
		return
	}

	fileHeader, err := c.FormFile("study_plan")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "study_plan file is required"))
		return
	}
	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), ".pdf") {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "only PDF study plans are accepted"))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "failed to read study plan"))
		return
	}
	defer file.Close() //nolint:errcheck

	data, err := io.ReadAll(file)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "failed to read study plan"))
		return
	}

	res, err := h.advising.Step3(c.Request.Context(), req, data)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res, nil)
}

// DownloadCourses godoc
// @Summary Download a course catalog via signed token
// @Tags Advisor
// @Produce octet-stream
// @Param token path string true "Signed token"
// @Success 200 {file} binary
// @Failure 401 {object} response.Envelope
// @Router /advisor/files/exams/{token} [get]
func (h *AdvisorHandler) DownloadCourses(c *gin.Context) {
	token := strings.TrimSpace(c.Param("token"))
	if token == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "token is required"))
		return
	}

	path, filename, err := h.advising.ResolveCoursesToken(token)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Cache-Control", "no-store")
	c.FileAttachment(path, filename)
}

// ExportAnalysis godoc
// @Summary Render a compatibility analysis as CSV or PDF
// @Tags Advisor
// @Accept json
// @Produce octet-stream
// @Param format query string true "Report format" Enums(csv, pdf)
// @Param payload body dto.AnalysisExportRequest true "Analysis payload"
// @Success 200 {file} binary
// @Failure 400 {object} response.Envelope
// @Router /advisor/analysis/export [post]
func (h *AdvisorHandler) ExportAnalysis(c *gin.Context) {
	var req dto.AnalysisExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid export payload"))
		return
	}

	format := service.ReportFormat(strings.ToLower(c.DefaultQuery("format", string(service.ReportFormatCSV))))
	result, err := h.export.Render(req.Analysis, format)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", result.Filename))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, result.ContentType, result.Payload)
}
