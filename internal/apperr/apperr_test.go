package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestUserError(t *testing.T) {
	err := Userf("reading %q is required", "pm25")
	if err.Error() != `reading "pm25" is required` {
		t.Fatalf("Error() = %q", err.Error())
	}
	if !IsUser(fmt.Errorf("wrapped: %w", err)) {
		t.Fatalf("expected IsUser to see through wrapping")
	}
	if IsUser(errors.New("plain")) {
		t.Fatalf("plain error is not a UserError")
	}
}

func TestTransportError_MessageAndUnwrap(t *testing.T) {
	cause := errors.New("dial tcp 127.0.0.1:5002: connect: connection refused")
	err := &TransportError{Endpoint: "/predict", Err: cause}

	want := "cannot reach prediction service: dial tcp 127.0.0.1:5002: connect: connection refused"
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected errors.Is to reach the cause")
	}
	if !IsTransport(fmt.Errorf("predict: %w", err)) {
		t.Fatalf("expected IsTransport")
	}
	if IsRemote(err) {
		t.Fatalf("transport error must not look remote")
	}

	var nilCause TransportError
	if nilCause.Error() != "cannot reach prediction service" {
		t.Fatalf("nil cause Error() = %q", nilCause.Error())
	}
}

func TestRemoteError_MessageVerbatim(t *testing.T) {
	err := &RemoteError{Endpoint: "/predict", StatusCode: http.StatusInternalServerError, Message: "model unavailable"}
	if err.Error() != "model unavailable" {
		t.Fatalf("Error() = %q", err.Error())
	}
	wrapped := fmt.Errorf("predict: %w", err)
	if !IsRemote(wrapped) {
		t.Fatalf("expected IsRemote")
	}
	if got := StatusCode(wrapped); got != http.StatusInternalServerError {
		t.Fatalf("StatusCode = %d", got)
	}
	if got := StatusCode(errors.New("x")); got != 0 {
		t.Fatalf("StatusCode of plain error = %d", got)
	}
}
