package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idlab-discover/aqpredict-cli/internal/logging"
	"github.com/idlab-discover/aqpredict-cli/internal/stubserver"
)

var (
	stubAddr     string
	stubFailWith string
)

// stubServerCmd represents the stub-server command
var stubServerCmd = &cobra.Command{
	Use:   "stub-server",
	Short: "Serve a local stand-in for the prediction service",
	Long: "Serves /predict, /health, /model-info and /features (also under /api) with the prediction " +
		"service's response shapes, classifying by the PM2.5 breakpoints. Requests are logged as JSON lines on stderr.",
	RunE: func(cmd *cobra.Command, args []string) error {
		level, err := logging.ParseLevel(viper.GetString("log.level"))
		if err != nil {
			return err
		}
		// Request lines are info events; standard shows them too.
		if level == zerolog.WarnLevel {
			level = zerolog.InfoLevel
		}
		log := logging.NewJSON(cmd.ErrOrStderr(), level).With().Str("service", "aqpredict-stub").Str("version", version).Logger()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		router := stubserver.NewRouter(stubserver.Config{
			Logger:   log,
			FailWith: viper.GetString("stub.fail-with"),
		})
		return stubserver.ListenAndServe(ctx, viper.GetString("stub.addr"), router, log)
	},
}

func init() {
	stubServerCmd.Flags().StringVar(&stubAddr, "addr", ":5002", "Listen address")
	stubServerCmd.Flags().StringVar(&stubFailWith, "fail-with", "", "Answer every /predict with a 500 carrying this message")

	viper.BindPFlag("stub.addr", stubServerCmd.Flags().Lookup("addr"))
	viper.BindPFlag("stub.fail-with", stubServerCmd.Flags().Lookup("fail-with"))
}
