package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	aqio "github.com/idlab-discover/aqpredict-cli/internal/io"
	"github.com/idlab-discover/aqpredict-cli/internal/predictor"
	"github.com/idlab-discover/aqpredict-cli/internal/session"
	"github.com/idlab-discover/aqpredict-cli/internal/ui"
)

var (
	predictInput  string
	predictOutput string
)

// predictCmd represents the predict command
var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Predict the air quality category",
	Long: "Without --input, runs an interactive session: fill in the readings, wait for the prediction, " +
		"read the result and start over. With --input, submits the readings from a JSON or YAML file once.",
	RunE: runPredict,
}

func runPredict(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	input := viper.GetString("predict.input")
	if input == "" {
		return runInteractive(cmd.Context(), cmd, client)
	}

	format, err := resolveOutput(viper.GetString("predict.output"))
	if err != nil {
		return err
	}
	return runOnce(cmd.Context(), cmd, client, input, format)
}

// runOnce submits the readings in path and prints the outcome.
func runOnce(ctx context.Context, cmd *cobra.Command, client predictor.Client, path, format string) error {
	raw, err := aqio.ReadReadings(path, "auto")
	if err != nil {
		return fmt.Errorf("read readings: %w", err)
	}
	readings, err := ui.ParseReadings(raw)
	if err != nil {
		return err
	}

	ctrl := session.New(client)
	st, err := ctrl.Submit(ctx, readings)
	if err != nil {
		return err
	}
	if st.Phase == session.Failure {
		return errors.New(st.Message)
	}

	return writeOutput(cmd.OutOrStdout(), format, st.Prediction, func() string {
		return ui.RenderResult(st.Prediction)
	})
}

func runInteractive(ctx context.Context, cmd *cobra.Command, client predictor.Client) error {
	fmt.Fprintln(cmd.OutOrStdout(), ui.RenderBanner())

	s := &ui.Session{
		Controller: session.New(client),
		Collector:  ui.NewFormCollector(nil),
		Prompter:   ui.HuhPrompter{},
		Out:        cmd.OutOrStdout(),
		NewIndicator: func(message string) ui.Indicator {
			return ui.NewLoader(message, nil, nil)
		},
	}
	return s.Run(ctx)
}

func init() {
	predictCmd.Flags().StringVarP(&predictInput, "input", "i", "", "Readings file (json|yaml); skips the interactive form")
	predictCmd.Flags().StringVarP(&predictOutput, "output", "o", "", "Output format with --input: json|yaml|pretty")

	viper.BindPFlag("predict.input", predictCmd.Flags().Lookup("input"))
	viper.BindPFlag("predict.output", predictCmd.Flags().Lookup("output"))
}
