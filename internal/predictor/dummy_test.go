package predictor_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idlab-discover/aqpredict-cli/internal/aqi"
	"github.com/idlab-discover/aqpredict-cli/internal/predictor"
)

func TestClassify_Breakpoints(t *testing.T) {
	tests := []struct {
		pm25 float64
		want string
	}{
		{0, aqi.Good},
		{12.0, aqi.Good},
		{12.1, aqi.Moderate},
		{35.4, aqi.Moderate},
		{55.0, aqi.UnhealthyForSensitiveGroups},
		{100, aqi.Unhealthy},
		{200, aqi.VeryUnhealthy},
		{250.5, aqi.Hazardous},
		{900, aqi.Hazardous},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, predictor.Classify(tt.pm25), "pm25=%v", tt.pm25)
	}
}

func TestProbabilities_SumToHundred(t *testing.T) {
	for _, c := range aqi.Categories {
		var sum float64
		probs := predictor.Probabilities(c)
		assert.Len(t, probs, len(aqi.Categories))
		for _, v := range probs {
			sum += v
		}
		assert.InDelta(t, 100, sum, 0.01, c)
		assert.Equal(t, 80.0, probs[c])
	}
	assert.Equal(t, 20.0, predictor.Probabilities(aqi.Good)[aqi.Moderate])
	assert.Equal(t, 10.0, predictor.Probabilities(aqi.Unhealthy)[aqi.VeryUnhealthy])
}

func TestDummy_Predict(t *testing.T) {
	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	d := &predictor.Dummy{Now: func() time.Time { return fixed }}

	got, err := d.Predict(context.Background(), aqi.Readings{PM25: 10, NOx: 3})
	require.NoError(t, err)
	assert.Equal(t, aqi.Good, got.Category)
	assert.Equal(t, 80.0, got.Confidence)
	assert.Equal(t, "2024-01-01T00:00:00Z", got.Timestamp)
	assert.Equal(t, 10.0, got.InputData["PM2.5"])
	assert.Equal(t, 3.0, got.InputData["NOx"])
}

func TestDummy_PredictError(t *testing.T) {
	boom := errors.New("model unavailable")
	d := &predictor.Dummy{Err: boom}
	_, err := d.Predict(context.Background(), aqi.Readings{})
	assert.ErrorIs(t, err, boom)
}

func TestDummy_Diagnostics(t *testing.T) {
	d := &predictor.Dummy{}
	ctx := context.Background()

	h, err := d.Health(ctx)
	require.NoError(t, err)
	assert.True(t, h.ModelLoaded)

	info, err := d.ModelInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, 11, info.NFeatures)
	assert.Equal(t, aqi.Categories, info.Classes)

	f, err := d.Features(ctx)
	require.NoError(t, err)
	require.Len(t, f.Features, 11)
	assert.Equal(t, "co", f.Features[6].Name)
	assert.Equal(t, "Carbon Monoxide concentration (mg/m³)", f.Features[6].Description)
}

var _ predictor.Client = (*predictor.Dummy)(nil)
var _ predictor.Client = (*predictor.HTTPClient)(nil)
