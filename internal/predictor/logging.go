package predictor

import (
	"github.com/rs/zerolog"

	"github.com/idlab-discover/aqpredict-cli/internal/logging"
)

var logger = &logging.Logger{Component: "predictor"}

// SetLogger sets an optional destination for client logs.
func SetLogger(zl zerolog.Logger) { logger.Set(zl) }
