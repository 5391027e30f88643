package predictor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/idlab-discover/aqpredict-cli/internal/apperr"
	"github.com/idlab-discover/aqpredict-cli/internal/aqi"
)

// maxBodyBytes bounds how much of a response is read.
const maxBodyBytes = 4 << 20

// HTTPClient calls the prediction service over HTTP/JSON.
// There is no retry and no caching; every call is independent.
type HTTPClient struct {
	Client  *http.Client
	BaseURL string // optional; defaults to DefaultBaseURL
}

// NewHTTP returns an HTTPClient for baseURL with the given per-request
// timeout (0 = none).
func NewHTTP(baseURL string, timeout time.Duration, userAgent string) *HTTPClient {
	return &HTTPClient{
		Client:  NewHTTPClient(timeout, userAgent),
		BaseURL: baseURL,
	}
}

// Predict posts the readings to /predict. A 2xx body must be an object
// carrying a prediction.
func (c *HTTPClient) Predict(ctx context.Context, r aqi.Readings) (*aqi.Prediction, error) {
	data, status, err := c.do(ctx, http.MethodPost, PathPredict, r)
	if err != nil {
		return nil, err
	}
	var out aqi.Prediction
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, invalidResponse(PathPredict, status, err)
	}
	if strings.TrimSpace(out.Category) == "" {
		return nil, invalidResponse(PathPredict, status, errMissingPrediction)
	}
	return &out, nil
}

// Health calls /health.
func (c *HTTPClient) Health(ctx context.Context) (*Health, error) {
	var out Health
	raw, err := c.diagnostic(ctx, PathHealth, &out)
	if err != nil {
		return nil, err
	}
	out.Raw = raw
	return &out, nil
}

// ModelInfo calls /model-info.
func (c *HTTPClient) ModelInfo(ctx context.Context) (*ModelInfo, error) {
	var out ModelInfo
	raw, err := c.diagnostic(ctx, PathModelInfo, &out)
	if err != nil {
		return nil, err
	}
	out.Raw = raw
	return &out, nil
}

// Features calls /features.
func (c *HTTPClient) Features(ctx context.Context) (*FeatureList, error) {
	var out FeatureList
	raw, err := c.diagnostic(ctx, PathFeatures, &out)
	if err != nil {
		return nil, err
	}
	out.Raw = raw
	return &out, nil
}

// diagnostic fetches an auxiliary endpoint. The body must be a JSON object;
// the typed fields are filled best effort since their shape is up to the
// service, and the whole object is returned as raw.
func (c *HTTPClient) diagnostic(ctx context.Context, path string, out any) (map[string]any, error) {
	data, status, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, invalidResponse(path, status, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		logger.Debug().Str("endpoint", path).Err(err).Msg("partial decode")
	}
	return raw, nil
}

func (c *HTTPClient) baseURL() string {
	u := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if u == "" {
		u = DefaultBaseURL
	}
	return u
}

// do performs one exchange and returns a 2xx body with its status code.
func (c *HTTPClient) do(ctx context.Context, method, path string, body any) ([]byte, int, error) {
	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}

	var reqBody io.Reader = http.NoBody
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, 0, fmt.Errorf("encode %s request: %w", path, err)
		}
		reqBody = bytes.NewReader(b)
	}

	url := c.baseURL() + path
	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, 0, fmt.Errorf("create %s request: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		logger.Debug().Str("endpoint", path).Err(err).Dur("duration", time.Since(start)).Msg("request failed")
		return nil, 0, &apperr.TransportError{Endpoint: path, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, 0, &apperr.TransportError{Endpoint: path, Err: err}
	}

	logger.Debug().
		Str("endpoint", path).
		Str("method", method).
		Int("status", resp.StatusCode).
		Str("request_id", requestID(resp)).
		Dur("duration", time.Since(start)).
		Msg("request completed")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, 0, &apperr.RemoteError{
			Endpoint:   path,
			StatusCode: resp.StatusCode,
			Message:    remoteMessage(data, path),
		}
	}

	return data, resp.StatusCode, nil
}

var errMissingPrediction = errors.New("no prediction in body")

func invalidResponse(path string, status int, err error) error {
	return &apperr.RemoteError{
		Endpoint:   path,
		StatusCode: status,
		Message:    fmt.Sprintf("invalid response from %s: %v", path, err),
	}
}

// errorBody is the failure shape of the service.
type errorBody struct {
	Error string `json:"error"`
}

// remoteMessage extracts {"error": "..."} from a failure body, falling back
// to the endpoint default when the body is absent, not JSON or has no
// usable error string.
func remoteMessage(data []byte, path string) string {
	var eb errorBody
	if err := json.Unmarshal(data, &eb); err == nil {
		if msg := strings.TrimSpace(eb.Error); msg != "" {
			return eb.Error
		}
	}
	return DefaultMessage(path)
}

func requestID(resp *http.Response) string {
	if resp.Request == nil {
		return ""
	}
	return resp.Request.Header.Get(RequestIDHeader)
}
