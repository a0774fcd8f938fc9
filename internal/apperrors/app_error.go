package apperrors

import "fmt"

// AppError wraps a lower-level failure with an HTTP-ish status code and a
// message safe to surface. Repositories use it for storage failures so the
// original cause stays available via errors.Unwrap.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates a 404 AppError that matches ErrNotFound under errors.Is.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
