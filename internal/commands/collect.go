package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ppiankov/lambdaspectre/internal/collect"
	"github.com/ppiankov/lambdaspectre/internal/dataset"
	"github.com/spf13/cobra"
)

var collectFlags struct {
	regions      []string
	allRegions   bool
	lookbackDays int
	outputFile   string
	timeout      time.Duration
}

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Collect the serverless dataset from AWS",
	Long: `Collect a monthly cost/performance profile for every Lambda function by
combining function configuration, provisioned concurrency settings, and
CloudWatch usage metrics. Writes the CSV consumed by 'lambdaspectre analyze'.

Cost is estimated from on-demand Lambda rates; ColdStartRate is approximated
from provisioned-concurrency spillover; per-function data transfer is not
observable and is written as 0.`,
	RunE: runCollect,
}

func init() {
	collectCmd.Flags().StringSliceVar(&collectFlags.regions, "regions", nil, "Comma-separated region filter")
	collectCmd.Flags().BoolVar(&collectFlags.allRegions, "all-regions", true, "Collect from all enabled regions")
	collectCmd.Flags().IntVar(&collectFlags.lookbackDays, "lookback-days", 30, "Metric window scaled to a 30-day month")
	collectCmd.Flags().StringVarP(&collectFlags.outputFile, "output", "o", dataset.DefaultFileName, "Dataset file to write")
	collectCmd.Flags().DurationVar(&collectFlags.timeout, "timeout", 10*time.Minute, "Collection timeout")
}

func runCollect(cmd *cobra.Command, _ []string) error {
	applyCollectConfigDefaults(cmd)

	ctx := cmd.Context()
	if collectFlags.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, collectFlags.timeout)
		defer cancel()
	}

	prof := profile
	if prof == "" {
		prof = cfg.Profile
	}

	client, err := collect.NewClient(ctx, prof, "")
	if err != nil {
		return enhanceError("initialize AWS client", err)
	}

	regions, err := resolveRegions(ctx, client)
	if err != nil {
		return enhanceError("resolve regions", err)
	}
	slog.Info("Collecting regions", "count", len(regions), "regions", regions)

	collector := collect.NewMultiRegionCollector(client, regions, 4, collect.Config{
		LookbackDays: collectFlags.lookbackDays,
		Exclude: collect.ExcludeConfig{
			ResourceIDs: cfg.Exclude.ParseResourceIDs(),
			Tags:        cfg.Exclude.ParseTags(),
		},
	})
	result, err := collector.CollectAll(ctx)
	if err != nil {
		return enhanceError("collect functions", err)
	}

	for _, e := range result.Errors {
		slog.Warn("Collection error", "error", e)
	}

	if err := collect.SaveCSV(collectFlags.outputFile, result.Records); err != nil {
		return err
	}

	fmt.Printf("Wrote %d functions from %d regions to %s\n",
		len(result.Records), result.RegionsScanned, collectFlags.outputFile)
	return nil
}

func resolveRegions(ctx context.Context, client *collect.Client) ([]string, error) {
	if len(collectFlags.regions) > 0 {
		return collectFlags.regions, nil
	}

	if len(cfg.Regions) > 0 {
		return cfg.Regions, nil
	}

	if collectFlags.allRegions {
		return client.ListEnabledRegions(ctx)
	}

	region := client.Region()
	if region == "" {
		return nil, fmt.Errorf("no region specified; use --regions, --all-regions, or set AWS_REGION")
	}
	return []string{region}, nil
}

func applyCollectConfigDefaults(cmd *cobra.Command) {
	if !cmd.Flags().Changed("lookback-days") && cfg.LookbackDays > 0 {
		collectFlags.lookbackDays = cfg.LookbackDays
	}
	if !cmd.Flags().Changed("timeout") {
		if d := cfg.TimeoutDuration(); d > 0 {
			collectFlags.timeout = d
		}
	}
	if !cmd.Flags().Changed("output") && cfg.File != "" {
		collectFlags.outputFile = cfg.File
	}
}
