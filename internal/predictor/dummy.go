package predictor

import (
	"context"
	"math"
	"time"

	"github.com/idlab-discover/aqpredict-cli/internal/aqi"
)

// pm25Breakpoints are the upper bounds (μg/m³) of the US EPA PM2.5 bands
// for every category but Hazardous.
var pm25Breakpoints = []float64{12.0, 35.4, 55.4, 150.4, 250.4}

// Dummy is a Client that never touches the network. It returns
// deterministic answers for demos and tests.
type Dummy struct {
	// Err, when set, is returned by Predict instead of a prediction.
	Err error
	// Now stamps predictions; defaults to time.Now.
	Now func() time.Time
}

// Classify maps a PM2.5 concentration to its AQI category.
func Classify(pm25 float64) string {
	for i, upper := range pm25Breakpoints {
		if pm25 <= upper {
			return aqi.Categories[i]
		}
	}
	return aqi.Hazardous
}

// Probabilities returns the breakdown Dummy reports for a category: 80 for
// the category itself and the remaining 20 split across its neighbours.
func Probabilities(category string) map[string]float64 {
	idx := aqi.CategoryIndex(category)
	out := make(map[string]float64, len(aqi.Categories))
	for _, c := range aqi.Categories {
		out[c] = 0
	}
	if idx < 0 {
		return out
	}
	out[category] = 80

	var neighbours []string
	if idx > 0 {
		neighbours = append(neighbours, aqi.Categories[idx-1])
	}
	if idx < len(aqi.Categories)-1 {
		neighbours = append(neighbours, aqi.Categories[idx+1])
	}
	share := math.Round(20/float64(len(neighbours))*100) / 100
	for _, n := range neighbours {
		out[n] = share
	}
	return out
}

// Predict classifies by PM2.5 and echoes the input under feature names.
func (d *Dummy) Predict(ctx context.Context, r aqi.Readings) (*aqi.Prediction, error) {
	if d.Err != nil {
		return nil, d.Err
	}
	now := time.Now
	if d.Now != nil {
		now = d.Now
	}
	category := Classify(r.PM25)
	return &aqi.Prediction{
		Category:      category,
		Confidence:    80,
		Probabilities: Probabilities(category),
		InputData:     r.FeatureMap(),
		Timestamp:     now().UTC().Format(time.RFC3339),
	}, nil
}

// Health reports a loaded model.
func (d *Dummy) Health(ctx context.Context) (*Health, error) {
	return &Health{
		Status:      "healthy",
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		ModelLoaded: true,
	}, nil
}

// ModelInfo describes the breakpoint classifier.
func (d *Dummy) ModelInfo(ctx context.Context) (*ModelInfo, error) {
	features := make([]string, 0, len(aqi.ReadingNames))
	for _, name := range aqi.ReadingNames {
		ri, _ := aqi.Info(name)
		features = append(features, ri.Feature)
	}
	classes := append([]string(nil), aqi.Categories...)
	return &ModelInfo{
		ModelType:      "PM25BreakpointClassifier",
		FeatureColumns: features,
		Classes:        classes,
		NFeatures:      len(features),
	}, nil
}

// Features lists the readings with their units.
func (d *Dummy) Features(ctx context.Context) (*FeatureList, error) {
	out := &FeatureList{Features: make([]Feature, 0, len(aqi.ReadingNames))}
	for _, name := range aqi.ReadingNames {
		ri, _ := aqi.Info(name)
		out.Features = append(out.Features, Feature{
			Name:        name,
			Description: ri.Description + " (" + ri.Unit + ")",
		})
	}
	return out, nil
}
