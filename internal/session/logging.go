package session

import (
	"github.com/rs/zerolog"

	"github.com/idlab-discover/aqpredict-cli/internal/logging"
)

var logger = &logging.Logger{Component: "session"}

// SetLogger sets an optional destination for state transition logs.
func SetLogger(zl zerolog.Logger) { logger.Set(zl) }

func logTransition(from, to State) {
	ev := logger.Debug().Str("from", from.Phase.String()).Str("to", to.Phase.String())
	if to.Phase == Failure {
		ev = ev.Str("message", to.Message)
	}
	if to.Phase == Success && to.Prediction != nil {
		ev = ev.Str("prediction", to.Prediction.Category).Float64("confidence", to.Prediction.Confidence)
	}
	ev.Msg("state changed")
}
