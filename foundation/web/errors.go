package web

import "github.com/pkg/errors"

// Error is used to pass an error during the request through the application
// with web specific context: the http status to respond with and, optionally,
// per-field validation messages.
type Error struct {
	Err    error
	Status int
	Fields map[string]string
}

// NewRequestError wraps a provided error with an HTTP status code.
func NewRequestError(err error, status int) error {
	return &Error{Err: err, Status: status}
}

func (e *Error) Error() string {
	return e.Err.Error()
}

// IsRequestError checks whether an error of type *Error exists in err's chain.
func IsRequestError(err error) bool {
	var re *Error
	return errors.As(err, &re)
}

// GetRequestError returns a copy of the *Error in err's chain, or nil.
func GetRequestError(err error) *Error {
	var re *Error
	if !errors.As(err, &re) {
		return nil
	}
	return re
}
