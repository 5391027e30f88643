package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idlab-discover/aqpredict-cli/internal/predictor"
	"github.com/idlab-discover/aqpredict-cli/internal/ui"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the prediction service is up and its model is loaded",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, format, err := diagnosticsSetup(cmd)
		if err != nil {
			return err
		}
		h, err := client.Health(cmd.Context())
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), format, h, func() string { return ui.RenderHealth(h) })
	},
}

var modelInfoCmd = &cobra.Command{
	Use:   "model-info",
	Short: "Show the model type, feature columns and classes",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, format, err := diagnosticsSetup(cmd)
		if err != nil {
			return err
		}
		info, err := client.ModelInfo(cmd.Context())
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), format, info, func() string { return ui.RenderModelInfo(info) })
	},
}

var featuresCmd = &cobra.Command{
	Use:   "features",
	Short: "List the readings the model expects",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, format, err := diagnosticsSetup(cmd)
		if err != nil {
			return err
		}
		list, err := client.Features(cmd.Context())
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), format, list, func() string { return ui.RenderFeatures(list) })
	},
}

// diagnosticsSetup binds the running command's --output flag and builds
// the client. The three commands share the diagnostics.output key.
func diagnosticsSetup(cmd *cobra.Command) (predictor.Client, string, error) {
	if err := viper.BindPFlag("diagnostics.output", cmd.Flags().Lookup("output")); err != nil {
		return nil, "", err
	}
	format, err := resolveOutput(viper.GetString("diagnostics.output"))
	if err != nil {
		return nil, "", err
	}
	c, err := newClient()
	if err != nil {
		return nil, "", err
	}
	return c, format, nil
}

func init() {
	for _, c := range []*cobra.Command{healthCmd, modelInfoCmd, featuresCmd} {
		c.Flags().StringP("output", "o", "", "Output format: json|yaml|pretty")
	}
}
