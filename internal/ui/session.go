package ui

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/idlab-discover/aqpredict-cli/internal/apperr"
	"github.com/idlab-discover/aqpredict-cli/internal/aqi"
	"github.com/idlab-discover/aqpredict-cli/internal/session"
)

// Session drives an interactive prediction session. Each pass of the loop
// shows exactly the component the controller's state names.
type Session struct {
	Controller *session.Controller
	Collector  Collector
	Prompter   Prompter
	Out        io.Writer

	// NewIndicator builds the loader for a request; nil shows none.
	NewIndicator func(message string) Indicator
}

// Run loops until the user stops. Declining another prediction returns nil;
// aborting any prompt returns apperr.ErrCancelled.
func (s *Session) Run(ctx context.Context) error {
	var pending aqi.Readings

	for {
		if err := ctx.Err(); err != nil {
			return apperr.ErrCancelled
		}

		st := s.Controller.State()
		switch st.Visible() {
		case session.ComponentForm:
			r, err := s.Collector.Collect()
			if err != nil {
				if apperr.IsUser(err) {
					fmt.Fprintln(s.Out, RenderError(err.Error(), false))
					continue
				}
				return s.abort("form", err)
			}
			pending = r
			s.Controller.Begin()

		case session.ComponentLoader:
			s.submit(ctx, pending)

		case session.ComponentResult:
			fmt.Fprintln(s.Out, RenderResult(st.Prediction))
			again, err := s.Prompter.Confirm("Make another prediction?", "Yes", "No")
			if err != nil {
				return s.abort("result", err)
			}
			if !again {
				return nil
			}
			s.Controller.Reset()

		case session.ComponentError:
			fmt.Fprintln(s.Out, RenderError(st.Message, true))
			dismiss, err := s.Prompter.Confirm("Dismiss the error?", "Dismiss", "Quit")
			if err != nil {
				return s.abort("error", err)
			}
			if !dismiss {
				return nil
			}
			s.Controller.DismissError()
		}
	}
}

// submit runs the in-flight request on its own goroutine while the indicator
// animates, and waits for the controller to resolve.
func (s *Session) submit(ctx context.Context, r aqi.Readings) session.State {
	var ind Indicator
	if s.NewIndicator != nil {
		ind = s.NewIndicator(AnalyzingMessage)
	}
	if ind != nil {
		ind.Start()
	}

	done := make(chan session.State, 1)
	go func() { done <- s.Controller.Run(ctx, r) }()
	st := <-done

	if ind != nil {
		ind.Stop()
	}
	logger.Debug().Str("phase", st.Phase.String()).Msg("request resolved")
	return st
}

// abort ends the session with err, logging anything but a user abort.
func (s *Session) abort(step string, err error) error {
	if !IsCancelled(err) {
		logger.Error().Str("step", step).Err(err).Msg("session aborted")
	}
	return err
}

// IsCancelled reports whether err ended a session by user abort.
func IsCancelled(err error) bool { return errors.Is(err, apperr.ErrCancelled) }
