package dto

import "github.com/noah-isme/erasmus-advisor-api/internal/models"

// Step1Request starts an advising session for a home university.
type Step1Request struct {
	HomeUniversity string `json:"home_university" validate:"required,min=2"`
}

// Step1Response reports whether the university runs a program and, when it
// does, a model-written summary of the call document plus the new session.
type Step1Response struct {
	HasProgram bool   `json:"has_program"`
	Summary    string `json:"summary"`
	SessionID  string `json:"session_id,omitempty"`
}

// DepartmentsRequest lists the departments of the session's university.
type DepartmentsRequest struct {
	SessionID string `json:"session_id" validate:"required,uuid"`
}

// DepartmentsResponse carries the catalog entries in sorted order.
type DepartmentsResponse struct {
	Departments []string `json:"departments"`
}

// Step2Request asks for the destinations of one department and period.
type Step2Request struct {
	SessionID  string        `json:"session_id" validate:"required,uuid"`
	Department string        `json:"department" validate:"required,min=2"`
	Period     models.Period `json:"period" validate:"required,oneof=fall spring"`
}

// Step2Response carries the extracted partner-institution rows.
type Step2Response struct {
	Destinations []models.Destination `json:"destinations"`
}

// Step3Request captures the multipart fields of the compatibility step.
// The study plan PDF arrives as the "study_plan" file part.
type Step3Request struct {
	SessionID             string `form:"session_id" validate:"required,uuid"`
	DestinationUniversity string `form:"destination_university_name" validate:"required,min=2"`
}

// Step3Response is the compatibility analysis payload.
type Step3Response struct {
	Analysis models.ExamsAnalysis `json:"analysis"`
}

// UniversitiesResponse lists universities with an active call document.
type UniversitiesResponse struct {
	Universities []string `json:"universities"`
}

// AnalysisExportRequest re-renders a previously returned analysis payload.
type AnalysisExportRequest struct {
	Analysis models.ExamsAnalysis `json:"analysis" validate:"required"`
}
