package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var initFlags struct {
	force bool
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate sample config and dataset",
	Long:  `Creates a sample .lambdaspectre.yaml config file and a small sample dataset CSV to analyze.`,
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initFlags.force, "force", false, "Overwrite existing files")
}

func runInit(_ *cobra.Command, _ []string) error {
	configPath := ".lambdaspectre.yaml"
	dataPath := "Serverless_Data.csv"

	if err := writeIfNotExists(configPath, sampleConfig, initFlags.force); err != nil {
		return err
	}
	if err := writeIfNotExists(dataPath, sampleDataset, initFlags.force); err != nil {
		return err
	}

	fmt.Printf("Created %s and %s\n", configPath, dataPath)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Edit .lambdaspectre.yaml to customize thresholds and filters")
	fmt.Println("  2. Replace the sample CSV, or run: lambdaspectre collect")
	fmt.Println("  3. Run: lambdaspectre analyze")
	return nil
}

func writeIfNotExists(path, content string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			fmt.Printf("Skipping %s (already exists, use --force to overwrite)\n", path)
			return nil
		}
	}

	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return os.WriteFile(path, []byte(content), 0o644)
}

const sampleConfig = `# lambdaspectre configuration
# See: https://github.com/ppiankov/lambdaspectre

# Dataset file analyzed and written by collect
file: Serverless_Data.csv

# Environments to include (default: all present in the dataset)
# environments:
#   - prod
#   - staging

# Monthly cost filter (default: dataset min/max)
# cost_min: 0
# cost_max: 10000

# View thresholds
memory_threshold_mb: 2048
duration_threshold_ms: 600
cold_start_threshold_pct: 5

# Output format: text, json, or sarif
format: text

# Collection settings
# profile: default
# regions:
#   - us-east-1
lookback_days: 30
timeout: 10m

# Functions to exclude from collection
# exclude:
#   resource_ids:
#     - legacy-cron
#   tags:
#     - "lambdaspectre:ignore"
`

// sampleDataset mixes plain and quote-wrapped lines, matching the files this
// tool ingests in the wild.
const sampleDataset = `FunctionName,Environment,InvocationsPerMonth,AvgDurationMs,MemoryMB,ColdStartRate,ProvisionedConcurrency,GBSeconds,DataTransferGB,CostUSD
checkout-api,prod,2400000,310,1024,3.1,10,744000,420,1260.40
"image-resizer,prod,180000,4200,3008,1.2,0,2221560,85,402.75"
report-generator,prod,9000,5100,2048,0.4,0,91800,12,158.20
auth-validator,prod,4800000,95,512,6.8,25,228000,240,886.00
"batch-archiver,staging,2100,7800,3072,0.1,0,49140,30,96.50"
webhook-relay,staging,320000,140,256,4.5,0,11200,18,44.30
session-cleaner,dev,15000,60,2048,0.2,2,1800,1,72.10
`
