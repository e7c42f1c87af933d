package apperror

import "errors"

// AppError is an error that carries the HTTP status it should be reported with.
type AppError struct {
	Code    int    // HTTP Status Code (e.g., 400, 404, 409)
	Message string // User-facing error message
	Err     error  // The underlying error, if any (not exposed to user)
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether target is an AppError with the same status and message,
// so wrapped copies of a sentinel still match it with errors.Is.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// New creates a new AppError with a status code and message.
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new AppError wrapping an existing error.
func Wrap(err error, code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WithCause returns a copy of a sentinel AppError that wraps err.
func (e *AppError) WithCause(err error) *AppError {
	return Wrap(err, e.Code, e.Message)
}

// StatusOf returns the HTTP status carried by err, or fallback when err is not an AppError.
func StatusOf(err error, fallback int) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return fallback
}
