package ui

import (
	"github.com/rs/zerolog"

	"github.com/idlab-discover/aqpredict-cli/internal/logging"
)

var logger = &logging.Logger{Component: "ui"}

// SetLogger sets an optional destination for interactive session logs.
func SetLogger(zl zerolog.Logger) { logger.Set(zl) }
