package commands

import (
	"errors"
	"time"

	"github.com/ppiankov/lambdaspectre/internal/analyzer"
	"github.com/ppiankov/lambdaspectre/internal/dataset"
	"github.com/ppiankov/lambdaspectre/internal/forecast"
	"github.com/ppiankov/lambdaspectre/internal/report"
	"github.com/spf13/cobra"
)

var analyzeFlags struct {
	file                  string
	environments          []string
	costMin               float64
	costMax               float64
	memoryThresholdMB     float64
	durationThresholdMs   float64
	coldStartThresholdPct float64
	format                string
	outputFile            string
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a serverless cost dataset",
	Long: `Analyze the dataset and report all optimization views: cost concentration,
memory right-sizing, reducible provisioned concurrency, low-value workloads,
containerization candidates, and the fitted cost model.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeFlags.file, "file", "f", dataset.DefaultFileName, "Dataset CSV path")
	analyzeCmd.Flags().StringSliceVar(&analyzeFlags.environments, "environments", nil, "Environments to include (default: all present)")
	analyzeCmd.Flags().Float64Var(&analyzeFlags.costMin, "cost-min", 0, "Minimum monthly cost filter (default: dataset min)")
	analyzeCmd.Flags().Float64Var(&analyzeFlags.costMax, "cost-max", 0, "Maximum monthly cost filter (default: dataset max)")
	analyzeCmd.Flags().Float64Var(&analyzeFlags.memoryThresholdMB, "memory-threshold", 2048, "Right-sizing: high memory at or above (MB, suggested 512-4096)")
	analyzeCmd.Flags().Float64Var(&analyzeFlags.durationThresholdMs, "duration-threshold", 600, "Right-sizing: low duration at or below (ms, suggested 50-2000)")
	analyzeCmd.Flags().Float64Var(&analyzeFlags.coldStartThresholdPct, "cold-start-threshold", 5, "Provisioned concurrency: cold-start rate at or below (%, suggested 0-50)")
	analyzeCmd.Flags().StringVar(&analyzeFlags.format, "format", "text", "Output format: text, json, sarif")
	analyzeCmd.Flags().StringVarP(&analyzeFlags.outputFile, "output", "o", "", "Output file path (default: stdout)")
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	applyAnalyzeConfigDefaults(cmd)

	records, err := loadRecords(analyzeFlags.file)
	if err != nil {
		return err
	}

	params := resolveFilterParams(cmd, records)
	working := dataset.Filter(records, params)

	acfg := analyzer.Config{
		MemoryThresholdMB:     analyzeFlags.memoryThresholdMB,
		DurationThresholdMs:   analyzeFlags.durationThresholdMs,
		ColdStartThresholdPct: analyzeFlags.coldStartThresholdPct,
	}
	analysis := analyzer.Analyze(analyzer.NewWorkingSet(working), acfg)

	data := report.Data{
		Tool:      "lambdaspectre",
		Version:   version,
		Timestamp: time.Now().UTC(),
		Target: report.Target{
			Type:    "dataset-csv",
			URIHash: computeTargetHash(analyzeFlags.file),
		},
		Config: report.ReportConfig{
			Environments:          params.Environments,
			CostMin:               params.CostMin,
			CostMax:               params.CostMax,
			MemoryThresholdMB:     acfg.MemoryThresholdMB,
			DurationThresholdMs:   acfg.DurationThresholdMs,
			ColdStartThresholdPct: acfg.ColdStartThresholdPct,
		},
		Summary: analysis.Summary,
		Views:   analysis.Views,
	}

	// The forecast degrades to an error message, never a failed analysis.
	model, err := forecast.Fit(working)
	if err != nil {
		var fitErr *forecast.ModelFitError
		if !errors.As(err, &fitErr) {
			return err
		}
		data.Errors = append(data.Errors, fitErr.Error())
	} else {
		data.Forecast = &report.Forecast{Model: model, Equation: model.Equation()}
	}

	w, closer, err := openOutput(analyzeFlags.outputFile)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}
	reporter, err := selectReporter(analyzeFlags.format, w)
	if err != nil {
		return err
	}
	return reporter.Generate(data)
}

// resolveFilterParams fills unset filter inputs from the dataset itself: all
// environments present, full cost range.
func resolveFilterParams(cmd *cobra.Command, records []dataset.Record) dataset.FilterParams {
	params := dataset.FilterParams{Environments: analyzeFlags.environments}
	if params.Environments == nil {
		params.Environments = dataset.Environments(records)
	}

	min, max, ok := dataset.CostRange(records)
	if !ok {
		min, max = 0, 0
	}
	params.CostMin, params.CostMax = min, max
	if cmd.Flags().Changed("cost-min") {
		params.CostMin = analyzeFlags.costMin
	} else if cfg.CostMin != nil {
		params.CostMin = *cfg.CostMin
	}
	if cmd.Flags().Changed("cost-max") {
		params.CostMax = analyzeFlags.costMax
	} else if cfg.CostMax != nil {
		params.CostMax = *cfg.CostMax
	}
	return params
}

func applyAnalyzeConfigDefaults(cmd *cobra.Command) {
	if !cmd.Flags().Changed("file") && cfg.File != "" {
		analyzeFlags.file = cfg.File
	}
	if !cmd.Flags().Changed("environments") && len(cfg.Environments) > 0 {
		analyzeFlags.environments = cfg.Environments
	}
	if !cmd.Flags().Changed("memory-threshold") && cfg.MemoryThresholdMB > 0 {
		analyzeFlags.memoryThresholdMB = cfg.MemoryThresholdMB
	}
	if !cmd.Flags().Changed("duration-threshold") && cfg.DurationThresholdMs > 0 {
		analyzeFlags.durationThresholdMs = cfg.DurationThresholdMs
	}
	if !cmd.Flags().Changed("cold-start-threshold") && cfg.ColdStartThresholdPct > 0 {
		analyzeFlags.coldStartThresholdPct = cfg.ColdStartThresholdPct
	}
	if !cmd.Flags().Changed("format") && cfg.Format != "" {
		analyzeFlags.format = cfg.Format
	}
}
