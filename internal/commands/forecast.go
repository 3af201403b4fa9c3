package commands

import (
	"fmt"
	"time"

	"github.com/ppiankov/lambdaspectre/internal/dataset"
	"github.com/ppiankov/lambdaspectre/internal/forecast"
	"github.com/ppiankov/lambdaspectre/internal/report"
	"github.com/spf13/cobra"
)

var forecastFlags struct {
	file           string
	environments   []string
	invocations    float64
	durationMs     float64
	memoryMB       float64
	dataTransferGB float64
	format         string
	outputFile     string
}

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Predict monthly cost for a workload profile",
	Long: `Fit a linear cost model over the dataset (cost against invocations x
duration x memory) and evaluate it at the given workload point. Data
transfer is charged at a flat per-GB rate on top of the fitted model.

Suggested input ranges: invocations 1000-5000000, duration 10-3000 ms,
memory 128-4096 MB, data transfer 0-5000 GB. Values outside these ranges
are accepted as-is.`,
	RunE: runForecast,
}

func init() {
	forecastCmd.Flags().StringVarP(&forecastFlags.file, "file", "f", dataset.DefaultFileName, "Dataset CSV path")
	forecastCmd.Flags().StringSliceVar(&forecastFlags.environments, "environments", nil, "Environments to fit over (default: all present)")
	forecastCmd.Flags().Float64Var(&forecastFlags.invocations, "invocations", 200000, "Monthly invocations")
	forecastCmd.Flags().Float64Var(&forecastFlags.durationMs, "duration-ms", 250, "Average duration (ms)")
	forecastCmd.Flags().Float64Var(&forecastFlags.memoryMB, "memory-mb", 1024, "Memory allocation (MB)")
	forecastCmd.Flags().Float64Var(&forecastFlags.dataTransferGB, "data-transfer-gb", 50, "Monthly data transfer (GB)")
	forecastCmd.Flags().StringVar(&forecastFlags.format, "format", "text", "Output format: text, json")
	forecastCmd.Flags().StringVarP(&forecastFlags.outputFile, "output", "o", "", "Output file path (default: stdout)")
}

func runForecast(cmd *cobra.Command, _ []string) error {
	if !cmd.Flags().Changed("file") && cfg.File != "" {
		forecastFlags.file = cfg.File
	}

	records, err := loadRecords(forecastFlags.file)
	if err != nil {
		return err
	}

	envs := forecastFlags.environments
	if envs == nil {
		envs = dataset.Environments(records)
	}
	min, max, ok := dataset.CostRange(records)
	if !ok {
		min, max = 0, 0
	}
	working := dataset.Filter(records, dataset.FilterParams{
		Environments: envs,
		CostMin:      min,
		CostMax:      max,
	})

	model, err := forecast.Fit(working)
	if err != nil {
		return err
	}

	predicted := model.Predict(
		forecastFlags.invocations,
		forecastFlags.durationMs,
		forecastFlags.memoryMB,
		forecastFlags.dataTransferGB,
	)

	w, closer, err := openOutput(forecastFlags.outputFile)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	if forecastFlags.format == "json" {
		reporter, err := selectReporter("json", w)
		if err != nil {
			return err
		}
		return reporter.Generate(report.Data{
			Tool:      "lambdaspectre",
			Version:   version,
			Timestamp: time.Now().UTC(),
			Target: report.Target{
				Type:    "dataset-csv",
				URIHash: computeTargetHash(forecastFlags.file),
			},
			Config:   report.ReportConfig{Environments: envs, CostMin: min, CostMax: max},
			Forecast: &report.Forecast{Model: model, Equation: model.Equation(), Predicted: &predicted},
		})
	}

	fmt.Fprintf(w, "%s\n", model.Equation())
	fmt.Fprintf(w, "Fitted over %d rows\n", model.ValidRows)
	fmt.Fprintf(w, "Predicted monthly cost: $%.2f\n", predicted)
	return nil
}
