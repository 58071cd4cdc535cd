package models

// Destination is one partner-institution row extracted from a destinations
// document. Field names mirror the Italian column headings of the source
// tables; values are copied from the document, never invented.
type Destination struct {
	Name                 string `json:"name"`
	CodiceEuropeo        string `json:"codice_europeo"`
	NomeIstituzione      string `json:"nome_istituzione"`
	CodiceArea           string `json:"codice_area"`
	Posti                string `json:"posti"`
	DurataPerPosto       string `json:"durata_per_posto"`
	Livello              string `json:"livello"`
	DettagliLivello      string `json:"dettagli_livello"`
	RequisitiLinguistici string `json:"requisiti_linguistici"`
	Description          string `json:"description"`
}

// MatchedExam pairs one exam of the student's plan with a destination course.
type MatchedExam struct {
	StudentExam        string `json:"student_exam"`
	DestinationCourse  string `json:"destination_course"`
	Compatibility      string `json:"compatibility"`
	CreditsStudent     string `json:"credits_student"`
	CreditsDestination string `json:"credits_destination"`
	Notes              string `json:"notes"`
}

// SuggestedExam is a destination course with no counterpart in the plan.
type SuggestedExam struct {
	CourseName string `json:"course_name"`
	Credits    string `json:"credits"`
	Reason     string `json:"reason"`
	Category   string `json:"category"`
}

// ExamsAnalysis is the outcome of the course-compatibility step.
type ExamsAnalysis struct {
	MatchedExams       []MatchedExam   `json:"matched_exams"`
	SuggestedExams     []SuggestedExam `json:"suggested_exams"`
	CompatibilityScore float64         `json:"compatibility_score"`
	AnalysisSummary    string          `json:"analysis_summary"`
	ExamsPDFURL        string          `json:"exams_pdf_url,omitempty"`
	ExamsPDFFilename   string          `json:"exams_pdf_filename,omitempty"`
}
