package types

import (
	"errors"
	"fmt"
)

// Error kinds returned by the repositories. Callers match them with errors.Is.
var (
	// ErrNotFound means a referenced entity id, name or pair does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict means a uniqueness rule was violated (duplicate name, title or pair).
	ErrConflict = errors.New("conflict")
	// ErrInvalidArgument means the input is malformed, such as a missing required field.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrStorage means the underlying store failed.
	ErrStorage = errors.New("storage failure")
	// ErrNothingSaved is the soft storage failure for a commit that touched no rows.
	ErrNothingSaved = fmt.Errorf("%w: no rows affected", ErrStorage)
)

// CustomError is an error carrying an HTTP status and an error type for the response envelope.
type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}

// Kind names the kind of err for logs and response types.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrInvalidArgument):
		return "invalid_argument"
	default:
		return "storage"
	}
}

// NotFoundf wraps ErrNotFound with a formatted message.
func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// Conflictf wraps ErrConflict with a formatted message.
func Conflictf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}

// InvalidArgumentf wraps ErrInvalidArgument with a formatted message.
func InvalidArgumentf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// Storage wraps a store error as ErrStorage, keeping the cause in the chain.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}
