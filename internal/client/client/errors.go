package client

import (
	"errors"
	"fmt"
)

// Error kinds. Every failed Request returns an *Error whose Kind is one of
// these, so callers can match with errors.Is(err, client.ErrNotFound).
var (
	ErrNetwork      = errors.New("network error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrServer       = errors.New("server error")
	ErrBusiness     = errors.New("business error")
	ErrUnknown      = errors.New("unrecognized response")
)

// Error describes a failed API call.
type Error struct {
	// Kind is one of the Err* sentinels above.
	Kind error
	// Status is the HTTP status, zero when no response was received.
	Status int
	// Code and Message come from the response envelope, when there was one.
	Code    int
	Message string
	// Raw is the undecoded response body for ErrUnknown.
	Raw []byte

	err error
}

func (e *Error) Error() string {
	switch {
	case e.err != nil:
		return fmt.Sprintf("%v: %v", e.Kind, e.err)
	case e.Kind == ErrBusiness:
		return fmt.Sprintf("%v %d: %s", e.Kind, e.Code, e.Message)
	case e.Message != "":
		return fmt.Sprintf("%v: %s", e.Kind, e.Message)
	case e.Status != 0:
		return fmt.Sprintf("%v (status %d)", e.Kind, e.Status)
	default:
		return e.Kind.Error()
	}
}

// Unwrap exposes both the kind and the transport cause to errors.Is/As.
func (e *Error) Unwrap() []error {
	if e.err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.err}
}

// Kind returns the error kind of err, or nil when err did not come from
// this package.
func Kind(err error) error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return nil
}
