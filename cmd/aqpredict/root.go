package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idlab-discover/aqpredict-cli/internal/logging"
	"github.com/idlab-discover/aqpredict-cli/internal/predictor"
	"github.com/idlab-discover/aqpredict-cli/internal/session"
	"github.com/idlab-discover/aqpredict-cli/internal/ui"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:           "aqpredict",
	Short:         "Predict the air quality category from pollutant readings",
	Long:          longDescription,
	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		initBanner(cmd)
		return initLogging(cmd)
	},

	// When invoked without a subcommand, show help (with banner) instead of
	// printing a plain usage output.
	RunE: func(cmd *cobra.Command, args []string) error {
		initBanner(cmd)
		return cmd.Help()
	},
}

var (
	cfgFile    string
	version    = "dev"
	baseURL    string
	timeoutSec int
	mode       string
	logLevel   string
)

// SetVersion sets the version for the CLI
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// GetRootCmd returns the root command for use with fang
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.aqpredict.yaml or ./config/defaults.yaml)")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "Prediction service base URL (default "+predictor.DefaultBaseURL+")")
	rootCmd.PersistentFlags().IntVar(&timeoutSec, "timeout", 0, "HTTP timeout in seconds (0 waits indefinitely)")
	rootCmd.PersistentFlags().StringVar(&mode, "mode", "", "Prediction source: online|dummy")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: quiet|standard|debug")

	viper.BindPFlag("api.base-url", rootCmd.PersistentFlags().Lookup("base-url"))
	viper.BindPFlag("api.timeout", rootCmd.PersistentFlags().Lookup("timeout"))
	viper.BindPFlag("api.mode", rootCmd.PersistentFlags().Lookup("mode"))
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))

	viper.SetDefault("api.base-url", predictor.DefaultBaseURL)
	viper.SetDefault("api.mode", modeOnline)
	viper.SetDefault("log.level", logging.LevelStandard)

	// Ensure `--help` (and help subcommands) show the banner consistently.
	defaultHelp := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		initBanner(cmd)
		defaultHelp(cmd, args)
	})

	rootCmd.AddCommand(predictCmd, healthCmd, modelInfoCmd, featuresCmd, stubServerCmd)
}

func initConfig() {
	// A .env file in the working directory is optional; values already in the
	// environment win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, ui.GetWarnMark()+" "+ui.Dim.Render("ignoring .env: "+err.Error()))
	}

	// AQPREDICT_API_BASE_URL overrides api.base-url, and so on.
	viper.SetEnvPrefix("AQPREDICT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		cobra.CheckErr(viper.ReadInConfig())
		reportConfig()
		return
	}

	home, err := os.UserHomeDir()
	cobra.CheckErr(err)

	viper.SetConfigType("yaml")
	viper.AddConfigPath(home)
	viper.AddConfigPath("./config")

	// Try .aqpredict first
	viper.SetConfigName(".aqpredict")
	err = viper.ReadInConfig()

	// If not found, try defaults.yaml
	notFound := &viper.ConfigFileNotFoundError{}
	if err != nil && errors.As(err, notFound) {
		viper.SetConfigName("defaults")
		err = viper.ReadInConfig()
	}

	switch {
	case err != nil && !errors.As(err, notFound):
		cobra.CheckErr(err)
	case err == nil:
		reportConfig()
	}
}

func reportConfig() {
	if viper.GetString("log.level") == logging.LevelQuiet {
		return
	}
	configMsg := ui.Dim.Render("Using config file: ") + ui.Secondary.Render(viper.ConfigFileUsed())
	fmt.Fprintln(os.Stderr, configMsg)
}

// initLogging routes package logs to stderr at the configured level.
func initLogging(cmd *cobra.Command) error {
	level, err := logging.ParseLevel(viper.GetString("log.level"))
	if err != nil {
		return err
	}
	zl := logging.New(cmd.ErrOrStderr(), level)
	predictor.SetLogger(zl)
	session.SetLogger(zl)
	ui.SetLogger(zl)
	return nil
}

const longDescription = "Collects air pollutant readings, asks a remote prediction service for the air quality category and shows the answer with its confidence and probability breakdown."

func initBanner(cmd *cobra.Command) {
	if cmd == nil {
		return
	}
	cmd.Root().Long = ui.RenderBanner() + "\n" + longDescription
}
