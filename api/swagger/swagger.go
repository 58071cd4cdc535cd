package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Erasmus Advisor API",
        "description": "Guided Erasmus+ mobility advising over university PDF documents",
        "version": "0.1.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Advisor", "description": "Student advising workflow"},
        {"name": "Universities", "description": "University accounts and document library"}
    ],
    "paths": {
        "/advisor/universities": {
            "get": {
                "tags": ["Advisor"],
                "summary": "List universities with an active call",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/advisor/step1": {
            "post": {
                "tags": ["Advisor"],
                "summary": "Summarize the home university's call and open a session",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/Step1Request"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Unreadable document", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/advisor/departments": {
            "post": {
                "tags": ["Advisor"],
                "summary": "List departments of the session's university",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/DepartmentsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "No departments found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/advisor/step2": {
            "post": {
                "tags": ["Advisor"],
                "summary": "Extract partner institutions for a department",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/Step2Request"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Section not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "Model error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/advisor/step3": {
            "post": {
                "tags": ["Advisor"],
                "summary": "Analyze study plan compatibility with a destination",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "session_id", "in": "formData", "required": true, "type": "string"},
                    {"name": "destination_university_name", "in": "formData", "required": true, "type": "string"},
                    {"name": "study_plan", "in": "formData", "required": true, "type": "file"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "No course catalog for destination", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/advisor/files/exams/{token}": {
            "get": {
                "tags": ["Advisor"],
                "summary": "Download a course catalog via signed token",
                "parameters": [
                    {"name": "token", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "PDF file"},
                    "401": {"description": "Invalid or expired token"}
                }
            }
        },
        "/advisor/analysis/export": {
            "post": {
                "tags": ["Advisor"],
                "summary": "Render a compatibility analysis as CSV or PDF",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AnalysisExportRequest"}}
                ],
                "responses": {
                    "200": {"description": "Rendered report"}
                }
            }
        },
        "/universities/register": {
            "post": {
                "tags": ["Universities"],
                "summary": "Register a university account",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Already registered", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/universities/login": {
            "post": {
                "tags": ["Universities"],
                "summary": "Authenticate a university account",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/universities/me": {
            "get": {
                "tags": ["Universities"],
                "summary": "Get the authenticated university",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/universities/documents": {
            "get": {
                "tags": ["Universities"],
                "summary": "List uploaded documents",
                "parameters": [
                    {"name": "type", "in": "query", "type": "string", "enum": ["call", "destinations", "courses"]},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "page_size", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Universities"],
                "summary": "Upload a PDF document",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "document_type", "in": "formData", "required": true, "type": "string", "enum": ["call", "destinations", "courses"]},
                    {"name": "academic_year", "in": "formData", "type": "string"},
                    {"name": "file", "in": "formData", "required": true, "type": "file"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/universities/documents/{id}": {
            "delete": {
                "tags": ["Universities"],
                "summary": "Retire an uploaded document",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        }
    },
    "definitions": {
        "Step1Request": {
            "type": "object",
            "properties": {
                "home_university": {"type": "string"}
            },
            "required": ["home_university"]
        },
        "DepartmentsRequest": {
            "type": "object",
            "properties": {
                "session_id": {"type": "string"}
            },
            "required": ["session_id"]
        },
        "Step2Request": {
            "type": "object",
            "properties": {
                "session_id": {"type": "string"},
                "department": {"type": "string"},
                "period": {"type": "string", "enum": ["fall", "spring"]}
            },
            "required": ["session_id", "department", "period"]
        },
        "AnalysisExportRequest": {
            "type": "object",
            "properties": {
                "analysis": {"$ref": "#/definitions/ExamsAnalysis"}
            },
            "required": ["analysis"]
        },
        "ExamsAnalysis": {
            "type": "object",
            "properties": {
                "matched_exams": {"type": "array", "items": {"$ref": "#/definitions/MatchedExam"}},
                "suggested_exams": {"type": "array", "items": {"$ref": "#/definitions/SuggestedExam"}},
                "compatibility_score": {"type": "number"},
                "analysis_summary": {"type": "string"},
                "exams_pdf_url": {"type": "string"},
                "exams_pdf_filename": {"type": "string"}
            }
        },
        "MatchedExam": {
            "type": "object",
            "properties": {
                "student_exam": {"type": "string"},
                "destination_course": {"type": "string"},
                "compatibility": {"type": "string"},
                "credits_student": {"type": "string"},
                "credits_destination": {"type": "string"},
                "notes": {"type": "string"}
            }
        },
        "SuggestedExam": {
            "type": "object",
            "properties": {
                "course_name": {"type": "string"},
                "credits": {"type": "string"},
                "reason": {"type": "string"},
                "category": {"type": "string"}
            }
        },
        "RegisterRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"},
                "contact_person": {"type": "string"},
                "phone": {"type": "string"}
            },
            "required": ["name", "email", "password"]
        },
        "LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["email", "password"]
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
