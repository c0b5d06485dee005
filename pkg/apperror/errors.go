package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies an error for the wizard's handling policy: validation
// errors stay local to the step, availability errors are non-fatal warnings,
// submission errors are retryable, persistence errors are logged and
// swallowed.
type Kind string

const (
	KindValidation   Kind = "validation"
	KindAvailability Kind = "availability"
	KindSubmission   Kind = "submission"
	KindPersistence  Kind = "persistence"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Kind    Kind         `json:"kind,omitempty"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Common errors
var (
	ErrNotFound           = &AppError{Code: http.StatusNotFound, Message: "Resource not found"}
	ErrBadRequest         = &AppError{Code: http.StatusBadRequest, Message: "Bad request"}
	ErrInternalServer     = &AppError{Code: http.StatusInternalServerError, Message: "Internal server error"}
	ErrConflict           = &AppError{Code: http.StatusConflict, Message: "Resource already exists"}
	ErrUnprocessable      = &AppError{Code: http.StatusUnprocessableEntity, Message: "Unprocessable entity"}
	ErrSubmissionInFlight = &AppError{Code: http.StatusConflict, Kind: KindSubmission, Message: "An order submission is already in progress"}
	ErrTerminalIDRequired = &AppError{Code: http.StatusBadRequest, Message: "X-Terminal-ID header is required"}
	ErrOrderAlreadyCancel = &AppError{Code: http.StatusBadRequest, Message: "Order is already cancelled"}
)

// NewAppError creates a new application error
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a step-level validation error. These are never
// sent over the network; they block progression and render inline.
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    KindValidation,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewAvailabilityError flags an external lookup that reported a SKU or
// customer as invalid. Surfaced as a warning, the user may proceed.
func NewAvailabilityError(message string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Kind:    KindAvailability,
		Message: message,
	}
}

// NewSubmissionError wraps a network or server rejection during final
// submit. The draft is preserved so the operator can retry.
func NewSubmissionError(code int, message string) *AppError {
	if code == 0 {
		code = http.StatusBadGateway
	}
	return &AppError{
		Code:    code,
		Kind:    KindSubmission,
		Message: message,
	}
}

// NewPersistenceError wraps a draft storage failure. Logged and non-fatal;
// the wizard continues in memory for the session.
func NewPersistenceError(message string) *AppError {
	return &AppError{
		Code:    http.StatusInternalServerError,
		Kind:    KindPersistence,
		Message: message,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Message: resource + " not found",
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

// IsKind reports whether err is an AppError of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
	}
}
