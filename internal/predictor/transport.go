package predictor

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

// RequestIDHeader carries a fresh id on every outbound call so a request can
// be found in the service's logs.
const RequestIDHeader = "X-Request-ID"

// headerTransport stamps every request with the client's identity headers.
type headerTransport struct {
	base      http.RoundTripper
	userAgent string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	if t.userAgent != "" {
		req.Header.Set("User-Agent", t.userAgent)
	}
	if req.Header.Get(RequestIDHeader) == "" {
		req.Header.Set(RequestIDHeader, uuid.NewString())
	}
	return t.base.RoundTrip(req)
}

// NewHTTPClient creates an *http.Client for talking to the prediction service.
// timeout is the per-request deadline (0 = no timeout).
func NewHTTPClient(timeout time.Duration, userAgent string) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: &headerTransport{base: http.DefaultTransport, userAgent: userAgent},
	}
}
