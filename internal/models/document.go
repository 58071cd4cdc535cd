package models

import "time"

// DocumentType classifies an uploaded PDF by its role in the advising workflow.
type DocumentType string

const (
	DocumentCall         DocumentType = "call"
	DocumentDestinations DocumentType = "destinations"
	DocumentCourses      DocumentType = "courses"
)

// Valid reports whether t is one of the known document types.
func (t DocumentType) Valid() bool {
	switch t {
	case DocumentCall, DocumentDestinations, DocumentCourses:
		return true
	}
	return false
}

// Document represents an uploaded PDF stored in the uploaded_documents table.
// The most recent active document of a type wins when several exist.
type Document struct {
	ID               string       `db:"id" json:"id"`
	UniversityID     string       `db:"university_id" json:"university_id"`
	Type             DocumentType `db:"document_type" json:"document_type"`
	OriginalFilename string       `db:"original_filename" json:"original_filename"`
	StoredFilename   string       `db:"stored_filename" json:"-"`
	Path             string       `db:"path" json:"-"`
	AcademicYear     string       `db:"academic_year" json:"academic_year,omitempty"`
	Active           bool         `db:"active" json:"active"`
	UploadedAt       time.Time    `db:"uploaded_at" json:"uploaded_at"`
}
