package ui

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/idlab-discover/aqpredict-cli/internal/apperr"
	"github.com/idlab-discover/aqpredict-cli/internal/aqi"
)

// Collector gathers one set of readings from the user.
type Collector interface {
	Collect() (aqi.Readings, error)
}

// ParseReadings converts raw values keyed by reading name into Readings.
// Every reading is required and must parse as a number.
func ParseReadings(raw map[string]string) (aqi.Readings, error) {
	var r aqi.Readings
	var missing, invalid []string
	for _, name := range aqi.ReadingNames {
		s := strings.TrimSpace(raw[name])
		if s == "" {
			missing = append(missing, name)
			continue
		}
		v, err := parseNumber(s)
		if err != nil {
			invalid = append(invalid, fmt.Sprintf("%s=%q", name, s))
			continue
		}
		r.Set(name, v)
	}
	if len(missing) > 0 {
		return aqi.Readings{}, apperr.Userf("missing readings: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return aqi.Readings{}, apperr.Userf("readings must be numbers: %s", strings.Join(invalid, ", "))
	}
	return r, nil
}

var errNotDecimal = errors.New("not a decimal number")

// parseNumber accepts plain decimal notation with an optional exponent, the
// same grammar as an HTML number input. NaN, infinities, hex floats and
// digit separators are rejected.
func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if strings.IndexFunc(s, notDecimalRune) >= 0 {
		return 0, errNotDecimal
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errNotDecimal
	}
	return v, nil
}

func notDecimalRune(r rune) bool {
	switch {
	case r >= '0' && r <= '9':
		return false
	case r == '.', r == '-', r == '+', r == 'e', r == 'E':
		return false
	}
	return true
}

// validateReading is the per-input check of the form.
func validateReading(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("this field is required")
	}
	if _, err := parseNumber(s); err != nil {
		return fmt.Errorf("enter a number")
	}
	return nil
}

// FormCollector asks for every reading in one huh form. Values entered in a
// submission prefill the next one.
type FormCollector struct {
	values map[string]*string
	// run executes the form; tests replace it.
	run func(*huh.Form) error
}

// NewFormCollector returns a collector prefilled with initial, which may be nil.
func NewFormCollector(initial map[string]string) *FormCollector {
	fc := &FormCollector{values: make(map[string]*string, len(aqi.ReadingNames))}
	for _, name := range aqi.ReadingNames {
		v := initial[name]
		fc.values[name] = &v
	}
	return fc
}

// Values returns the raw values the form currently holds.
func (fc *FormCollector) Values() map[string]string {
	out := make(map[string]string, len(fc.values))
	for name, v := range fc.values {
		out[name] = *v
	}
	return out
}

func (fc *FormCollector) form() *huh.Form {
	fields := make([]huh.Field, 0, len(aqi.ReadingNames)+1)
	fields = append(fields, huh.NewNote().
		Title("Air Quality Readings").
		Description("Enter the current pollutant concentrations."))

	for _, name := range aqi.ReadingNames {
		info, _ := aqi.Info(name)
		fields = append(fields, huh.NewInput().
			Key(name).
			Title(fmt.Sprintf("%s (%s)", info.Label, info.Unit)).
			Description(info.Description).
			Placeholder("0.0").
			Value(fc.values[name]).
			Validate(validateReading))
	}
	return huh.NewForm(huh.NewGroup(fields...))
}

// Collect runs the form and parses the result. Aborting the form returns
// apperr.ErrCancelled.
func (fc *FormCollector) Collect() (aqi.Readings, error) {
	run := fc.run
	if run == nil {
		run = func(f *huh.Form) error { return f.Run() }
	}
	if err := run(fc.form()); err != nil {
		return aqi.Readings{}, mapAbort(err)
	}
	return ParseReadings(fc.Values())
}

// mapAbort turns a huh abort into apperr.ErrCancelled.
func mapAbort(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return apperr.ErrCancelled
	}
	return err
}
