package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/erasmus-advisor-api/internal/dto"
	"github.com/noah-isme/erasmus-advisor-api/internal/models"
	"github.com/noah-isme/erasmus-advisor-api/internal/service"
	appErrors "github.com/noah-isme/erasmus-advisor-api/pkg/errors"
	"github.com/noah-isme/erasmus-advisor-api/pkg/response"
)

// UniversityHandler wires account and document-library endpoints.
type UniversityHandler struct {
	auth *service.AuthService
	docs *service.UniversityService
}

// NewUniversityHandler creates a new handler.
func NewUniversityHandler(auth *service.AuthService, docs *service.UniversityService) *UniversityHandler {
	return &UniversityHandler{auth: auth, docs: docs}
}

// Register godoc
// @Summary Register a university account
// @Tags Universities
// @Accept json
// @Produce json
// @Param payload body models.RegisterRequest true "Register payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /universities/register [post]
func (h *UniversityHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid register payload"))
		return
	}

	info, err := h.auth.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, info)
}

// Login godoc
// @Summary Authenticate a university account
// @Tags Universities
// @Accept json
// @Produce json
// @Param payload body models.LoginRequest true "Login payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /universities/login [post]
func (h *UniversityHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid login payload"))
		return
	}

	res, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res, nil)
}

// Me godoc
// @Summary Get the authenticated university
// @Tags Universities
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /universities/me [get]
func (h *UniversityHandler) Me(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	info := models.UniversityInfo{ID: claims.UniversityID, Name: claims.Name, Email: claims.Email}
	response.JSON(c, http.StatusOK, info, nil)
}

// UploadDocument godoc
// @Summary Upload a PDF document
// @Tags Universities
// @Accept multipart/form-data
// @Produce json
// @Param document_type formData string true "Document type" Enums(call, destinations, courses)
// @Param academic_year formData string false "Academic year"
// @Param file formData file true "PDF document"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /universities/documents [post]
func (h *UniversityHandler) UploadDocument(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.UploadDocumentRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid upload payload"))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "file is required"))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "failed to read file"))
		return
	}
	defer file.Close() //nolint:errcheck

	doc, err := h.docs.UploadDocument(c.Request.Context(), claims.UniversityID, claims.Name, req, fileHeader.Filename, fileHeader.Size, file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, doc)
}

// ListDocuments godoc
// @Summary List the university's uploaded documents
// @Tags Universities
// @Produce json
// @Param type query string false "Document type" Enums(call, destinations, courses)
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /universities/documents [get]
func (h *UniversityHandler) ListDocuments(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	filter := dto.DocumentFilter{
		Type:     models.DocumentType(c.Query("type")),
		Page:     page,
		PageSize: pageSize,
	}

	docs, pagination, err := h.docs.ListDocuments(c.Request.Context(), claims.UniversityID, filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, docs, pagination)
}

// DeactivateDocument godoc
// @Summary Retire an uploaded document
// @Tags Universities
// @Produce json
// @Param id path string true "Document ID"
// @Success 204
// @Failure 401 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /universities/documents/{id} [delete]
func (h *UniversityHandler) DeactivateDocument(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	if err := h.docs.DeactivateDocument(c.Request.Context(), claims.UniversityID, claims.Name, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
