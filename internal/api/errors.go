package api

import (
	"errors"
	"fmt"
)

const genericMessage = "Something went wrong"

// Error is a failed request, normalised to one human-readable message:
// the body's "message", else its "error", else the transport/status text.
type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newStatusError(status int, message, errField string) *Error {
	msg := message
	if msg == "" {
		msg = errField
	}
	if msg == "" {
		msg = fmt.Sprintf("Request failed with status code %d", status)
	}
	return &Error{Status: status, Message: msg}
}

func newTransportError(err error) *Error {
	msg := err.Error()
	if msg == "" {
		msg = genericMessage
	}
	return &Error{Message: msg, Err: err}
}

// Message extracts the user-facing text of any error returned by this package.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return genericMessage
}

// StatusCode returns the HTTP status carried by err, or 0 for transport failures.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}
