package apperrors

import "errors"

// Common errors
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("resource not found")
	ErrForbidden    = errors.New("permission denied")
	ErrUnauthorized = errors.New("not authenticated")
	ErrConflict     = errors.New("conflict")
)

// Post errors
var (
	ErrPostNotFound  = NewCustomError(ErrNotFound, "Post not found")
	ErrPostNotActive = NewCustomError(ErrConflict, "This post is no longer accepting requests")
	ErrNotVerified   = NewCustomError(ErrForbidden, "You must be verified to create posts")
)

// Request errors
var (
	ErrDuplicateRequest = NewCustomError(ErrConflict, "You've already sent a request for this post").WithCode("duplicate_request")
	ErrSelfRequest      = NewCustomError(ErrValidation, "You cannot request to help on your own post")
)

// Profile errors
var (
	ErrProfileNotFound = NewCustomError(ErrNotFound, "Profile not found")
)

// ErrMissingFields is returned before any backend call when a required post field is empty
var ErrMissingFields = NewCustomError(ErrValidation, "Please fill in all required fields")

// NewValidationError creates a validation error with a user-facing message
func NewValidationError(message string) error {
	return &CustomError{Err: ErrValidation, Message: message}
}

// NewForbiddenError creates a permission error with a user-facing message
func NewForbiddenError(message string) error {
	return &CustomError{Err: ErrForbidden, Message: message}
}

// CustomError carries a user-facing message on top of a sentinel
type CustomError struct {
	Err     error
	Message string
	Code    string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithCode adds a machine readable code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}

// Message returns the user-facing message of err, falling back to err.Error()
func Message(err error) string {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Error()
	}
	return err.Error()
}
