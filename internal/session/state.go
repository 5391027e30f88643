// Package session holds the view state of an interactive prediction session
// and the controller that drives it.
package session

import "github.com/idlab-discover/aqpredict-cli/internal/aqi"

// Phase is the discriminant of State.
type Phase int

const (
	// Idle: no request outstanding, no result, no error; the form is shown.
	Idle Phase = iota
	// Submitting: a request is in flight; the loader is shown.
	Submitting
	// Success: a prediction is held; the result is shown.
	Success
	// Failure: an error message is held; the error is shown.
	Failure
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	case Success:
		return "success"
	case Failure:
		return "failure"
	default:
		return "unknown"
	}
}

// Component names the single presentation component visible in a state.
type Component string

const (
	ComponentForm   Component = "form"
	ComponentLoader Component = "loader"
	ComponentResult Component = "result"
	ComponentError  Component = "error"
)

// State is the view state. Prediction is set only in Success and Message
// only in Failure.
type State struct {
	Phase      Phase
	Prediction *aqi.Prediction
	Message    string
}

// Visible returns the component shown for s.
func (s State) Visible() Component {
	switch s.Phase {
	case Submitting:
		return ComponentLoader
	case Success:
		return ComponentResult
	case Failure:
		return ComponentError
	default:
		return ComponentForm
	}
}

func idle() State                     { return State{Phase: Idle} }
func submitting() State               { return State{Phase: Submitting} }
func success(p *aqi.Prediction) State { return State{Phase: Success, Prediction: p} }
func failure(message string) State    { return State{Phase: Failure, Message: message} }
