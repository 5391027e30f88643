// Package apperr defines the error categories used across aqpredict.
//
// Error taxonomy
//
//	TransportError – the call never reached, or never returned from, the
//	                 prediction service (connection refused, DNS, TLS,
//	                 abrupt disconnect, configured timeout).
//
//	RemoteError    – the service answered but signalled failure with a
//	                 non-success status. The message comes from the
//	                 service's {"error": "..."} body when present, else an
//	                 endpoint-specific default.
//
//	UserError      – caused by missing or invalid user input (wrong flag,
//	                 non-numeric reading, …). The CLI prints only the message.
//	                 Exit code: 1.
//
//	ErrCancelled   – the user deliberately aborted an interactive flow.
//	                 Exit code: 0 (not a failure).
//
//	ErrInFlight    – a submission was rejected because another one is still
//	                 outstanding.
//
// Everything else is a plain Go error propagated with
// fmt.Errorf("context: %w", err) wrapping.
package apperr

import (
	"errors"
	"fmt"
)

// ErrCancelled is returned when the user explicitly aborts an interactive
// operation.  The CLI should exit 0 rather than 1 when it sees this error.
var ErrCancelled = errors.New("operation cancelled")

// ErrInFlight is returned when a prediction is requested while another one
// has not resolved yet.
var ErrInFlight = errors.New("a prediction request is already in flight")

// UserError represents an error caused by invalid or missing user input.
type UserError struct {
	Message string
}

func (e *UserError) Error() string { return e.Message }

// User creates a UserError with the given message.
func User(msg string) error { return &UserError{Message: msg} }

// Userf creates a formatted UserError.
func Userf(format string, args ...any) error {
	return &UserError{Message: fmt.Sprintf(format, args...)}
}

// IsUser reports whether err is (or wraps) a *UserError.
func IsUser(err error) bool {
	var u *UserError
	return errors.As(err, &u)
}

// TransportError is returned when an HTTP exchange with the prediction
// service could not complete.
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		return "cannot reach prediction service"
	}
	return "cannot reach prediction service: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }

// RemoteError is returned when the prediction service responds with a
// non-success status, or with a success status and a body that cannot be
// decoded. Error returns Message verbatim so it can be shown to the user as is.
type RemoteError struct {
	Endpoint   string
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string { return e.Message }

// IsTransport reports whether err is (or wraps) a *TransportError.
func IsTransport(err error) bool {
	var t *TransportError
	return errors.As(err, &t)
}

// IsRemote reports whether err is (or wraps) a *RemoteError.
func IsRemote(err error) bool {
	var r *RemoteError
	return errors.As(err, &r)
}

// StatusCode returns the HTTP status carried by a *RemoteError, or 0.
func StatusCode(err error) int {
	var r *RemoteError
	if errors.As(err, &r) {
		return r.StatusCode
	}
	return 0
}
