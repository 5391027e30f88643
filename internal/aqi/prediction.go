package aqi

import (
	"sort"
	"strings"
	"time"
)

// Prediction is the body of a successful /predict response.
//
// Probabilities are taken as sent: their sum is not checked and Category is
// not required to be one of their keys.
type Prediction struct {
	Category      string             `json:"prediction" yaml:"prediction"`
	Confidence    float64            `json:"confidence" yaml:"confidence"`
	Probabilities map[string]float64 `json:"probabilities" yaml:"probabilities"`
	InputData     map[string]float64 `json:"input_data" yaml:"input_data"`
	Timestamp     string             `json:"timestamp" yaml:"timestamp"`
}

// timestampLayouts are tried in order. The reference service emits Python's
// isoformat(), which has no zone offset.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// Time parses Timestamp. Offset-less timestamps are read as local time.
func (p *Prediction) Time() (time.Time, bool) {
	s := strings.TrimSpace(p.Timestamp)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ProbabilityEntry is one row of the probability breakdown.
type ProbabilityEntry struct {
	Category    string
	Probability float64
}

// SortedProbabilities returns the breakdown in canonical category order,
// followed by any categories the service sent that are not in Categories,
// sorted by name.
func (p *Prediction) SortedProbabilities() []ProbabilityEntry {
	out := make([]ProbabilityEntry, 0, len(p.Probabilities))
	seen := make(map[string]bool, len(p.Probabilities))
	for _, c := range Categories {
		if v, ok := p.Probabilities[c]; ok {
			out = append(out, ProbabilityEntry{c, v})
			seen[c] = true
		}
	}
	var extra []string
	for c := range p.Probabilities {
		if !seen[c] {
			extra = append(extra, c)
		}
	}
	sort.Strings(extra)
	for _, c := range extra {
		out = append(out, ProbabilityEntry{c, p.Probabilities[c]})
	}
	return out
}

// SortedInputKeys returns the echoed input keys: known readings first in form
// order (matched by reading or feature name), then the rest sorted.
func (p *Prediction) SortedInputKeys() []string {
	keys := make([]string, 0, len(p.InputData))
	seen := make(map[string]bool, len(p.InputData))
	for _, name := range ReadingNames {
		for _, k := range []string{name, readingInfo[name].Feature} {
			if _, ok := p.InputData[k]; ok && !seen[k] {
				keys = append(keys, k)
				seen[k] = true
			}
		}
	}
	var extra []string
	for k := range p.InputData {
		if !seen[k] {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	return append(keys, extra...)
}
