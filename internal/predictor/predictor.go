// Package predictor wraps the calls to the remote air quality prediction
// service.
package predictor

import (
	"context"

	"github.com/idlab-discover/aqpredict-cli/internal/aqi"
)

// Endpoint paths, relative to the configured base URL.
const (
	PathPredict   = "/predict"
	PathHealth    = "/health"
	PathModelInfo = "/model-info"
	PathFeatures  = "/features"
)

// DefaultBaseURL is used when no base URL is configured.
const DefaultBaseURL = "http://localhost:5002"

// Default failure messages used when the service sends no {"error": "..."}.
var defaultMessages = map[string]string{
	PathPredict:   "Prediction failed",
	PathHealth:    "Health check failed",
	PathModelInfo: "Failed to get model info",
	PathFeatures:  "Failed to get features",
}

// DefaultMessage returns the failure message for path when the service
// gives none.
func DefaultMessage(path string) string {
	if m, ok := defaultMessages[path]; ok {
		return m
	}
	return "Request failed"
}

// Client talks to the prediction service. Methods fail with
// *apperr.TransportError or *apperr.RemoteError.
type Client interface {
	Predict(ctx context.Context, r aqi.Readings) (*aqi.Prediction, error)
	Health(ctx context.Context) (*Health, error)
	ModelInfo(ctx context.Context) (*ModelInfo, error)
	Features(ctx context.Context) (*FeatureList, error)
}

// Health is the /health payload.
type Health struct {
	Status      string `json:"status" yaml:"status"`
	Timestamp   string `json:"timestamp" yaml:"timestamp"`
	ModelLoaded bool   `json:"model_loaded" yaml:"model_loaded"`

	// Raw keeps every field the service sent.
	Raw map[string]any `json:"-" yaml:"-"`
}

// Document returns what the service sent, or the typed fields when there is
// no raw body.
func (h *Health) Document() any {
	if h.Raw != nil {
		return h.Raw
	}
	return h
}

// ModelInfo is the /model-info payload.
type ModelInfo struct {
	ModelType      string   `json:"model_type" yaml:"model_type"`
	FeatureColumns []string `json:"feature_columns" yaml:"feature_columns"`
	Classes        []string `json:"classes" yaml:"classes"`
	NFeatures      int      `json:"n_features" yaml:"n_features"`

	Raw map[string]any `json:"-" yaml:"-"`
}

func (m *ModelInfo) Document() any {
	if m.Raw != nil {
		return m.Raw
	}
	return m
}

// Feature is one entry of the /features payload.
type Feature struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

// FeatureList is the /features payload.
type FeatureList struct {
	Features []Feature `json:"features" yaml:"features"`

	Raw map[string]any `json:"-" yaml:"-"`
}

func (f *FeatureList) Document() any {
	if f.Raw != nil {
		return f.Raw
	}
	return f
}
