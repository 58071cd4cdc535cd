package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrInvalidCredentials = New("INVALID_CREDENTIALS", http.StatusUnauthorized, "invalid email or password")
	ErrInactiveAccount    = New("ACCOUNT_INACTIVE", http.StatusForbidden, "account is inactive")
	ErrNotFound           = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrForbidden          = New("FORBIDDEN", http.StatusForbidden, "forbidden")
	ErrUnauthorized       = New("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrConflict           = New("CONFLICT", http.StatusConflict, "conflict")
	ErrValidation         = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrInternal           = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
	ErrCacheMiss          = New("CACHE_MISS", http.StatusNotFound, "cache miss")
)

// Advising workflow errors. Each kind is surfaced to the caller as-is so a
// client can distinguish a missing document from an unreadable one.
var (
	ErrSessionInvalid   = New("SESSION_INVALID", http.StatusBadRequest, "session is missing or expired, rerun step 1")
	ErrDocumentNotFound = New("DOCUMENT_NOT_FOUND", http.StatusNotFound, "document not found")
	ErrEmptyExtraction  = New("EMPTY_EXTRACTION", http.StatusUnprocessableEntity, "no text could be extracted from the PDF")
	ErrNoHeaders        = New("NO_HEADERS_FOUND", http.StatusUnprocessableEntity, "no department headers found in the document")
	ErrSectionNotFound  = New("SECTION_NOT_FOUND", http.StatusNotFound, "department section not found")
	ErrNoDepartments    = New("NO_DEPARTMENTS_FOUND", http.StatusUnprocessableEntity, "no departments found in the document")
	ErrNoJSONFound      = New("NO_JSON_FOUND", http.StatusBadGateway, "no JSON payload found in model response")
	ErrJSONTypeMismatch = New("JSON_TYPE_MISMATCH", http.StatusBadGateway, "model response JSON has the wrong shape")
	ErrJSONDecode       = New("JSON_DECODE_ERROR", http.StatusBadGateway, "model response JSON could not be decoded")
	ErrUpstreamModel    = New("UPSTREAM_MODEL_ERROR", http.StatusBadGateway, "model completion call failed")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}

// Is reports whether err carries the same code as target.
func Is(err error, target *Error) bool {
	if err == nil || target == nil {
		return false
	}
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Code == target.Code
}
