package commands

import (
	"log/slog"

	"github.com/ppiankov/lambdaspectre/internal/config"
	"github.com/ppiankov/lambdaspectre/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	profile string
	version string
	commit  string
	date    string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:   "lambdaspectre",
	Short: "lambdaspectre — serverless cost and right-sizing auditor",
	Long: `lambdaspectre analyzes a monthly cost/performance dataset of serverless
functions and surfaces optimization opportunities: cost concentration,
memory right-sizing, reducible provisioned concurrency, low-value
workloads, containerization candidates, and a linear cost forecast.

The dataset can be a CSV placed beside the binary, or collected live
from AWS Lambda and CloudWatch with 'lambdaspectre collect'.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)
		loaded, err := config.Load(".")
		if err != nil {
			slog.Warn("Failed to load config file", "error", err)
		} else {
			cfg = loaded
		}
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command with injected build info.
func Execute(v, c, d string) error {
	version = v
	commit = c
	date = d
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&profile, "profile", "", "AWS profile name (collect only)")
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(forecastCmd)
	rootCmd.AddCommand(collectCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}
