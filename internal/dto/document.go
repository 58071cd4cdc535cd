package dto

import "github.com/noah-isme/erasmus-advisor-api/internal/models"

// UploadDocumentRequest contains metadata submitted alongside a file upload.
type UploadDocumentRequest struct {
	Type         models.DocumentType `form:"document_type" validate:"required,oneof=call destinations courses"`
	AcademicYear string              `form:"academic_year"`
}

// DocumentFilter captures query parameters for listing documents.
type DocumentFilter struct {
	Type     models.DocumentType
	Active   *bool
	Page     int
	PageSize int
}
