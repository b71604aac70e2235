package apperrors

import "errors"

// Common errors
var (
	ErrResourceNotFound = errors.New("resource not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrValidationFailed = errors.New("validation failed")
)

// Domain errors. Each wraps one of the common errors so callers can match
// either the precise cause or the broad category.
var (
	ErrUserNotFound   = NewCustomError(ErrResourceNotFound, "user not found")
	ErrCourseNotFound = NewCustomError(ErrResourceNotFound, "course not found")
	ErrLessonNotFound = NewCustomError(ErrResourceNotFound, "lesson not found")
	ErrNotEnrolled    = NewCustomError(ErrPermissionDenied, "course is not purchased")
)

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
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

// WithDetails returns a copy of the error carrying context details
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	return &CustomError{Err: e, Message: e.Message, Details: details}
}

// IsNotFound reports whether err belongs to the not-found category
func IsNotFound(err error) bool {
	return errors.Is(err, ErrResourceNotFound)
}

// IsForbidden reports whether err belongs to the permission-denied category
func IsForbidden(err error) bool {
	return errors.Is(err, ErrPermissionDenied)
}
