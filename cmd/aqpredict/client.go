package cmd

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/idlab-discover/aqpredict-cli/internal/apperr"
	"github.com/idlab-discover/aqpredict-cli/internal/predictor"
)

const (
	modeOnline = "online"
	modeDummy  = "dummy"
)

// newClient builds the prediction client from api.* settings.
func newClient() (predictor.Client, error) {
	m := strings.ToLower(strings.TrimSpace(viper.GetString("api.mode")))
	if m == "" {
		m = modeOnline
	}

	timeout := viper.GetInt("api.timeout")
	if timeout < 0 {
		return nil, apperr.Userf("invalid --timeout %d (expected seconds >= 0)", timeout)
	}

	switch m {
	case modeOnline:
		return predictor.NewHTTP(
			viper.GetString("api.base-url"),
			time.Duration(timeout)*time.Second,
			"aqpredict/"+version,
		), nil
	case modeDummy:
		return &predictor.Dummy{}, nil
	default:
		return nil, apperr.Userf("invalid --mode %q (expected online|dummy)", m)
	}
}
