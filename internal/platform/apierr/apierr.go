package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error carries the HTTP status and stable error code a handler should emit.
type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func BadRequest(err error) *Error { return New(http.StatusBadRequest, "invalid_request", err) }
func NotFound(err error) *Error { return New(http.StatusNotFound, "not_found", err) }
func Conflict(err error) *Error { return New(http.StatusConflict, "conflict", err) }
func BadGateway(err error) *Error { return New(http.StatusBadGateway, "generation_failed", err) }
func Internal(err error) *Error { return New(http.StatusInternalServerError, "internal", err) }
func Unauthorized(err error) *Error { return New(http.StatusUnauthorized, "unauthorized", err) }

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) && e != nil {
		return e, true
	}
	return nil, false
}
