package dataset

import "fmt"

// DefaultFileName is the dataset file looked for beside the executable when
// no --file flag or config entry overrides it.
const DefaultFileName = "Serverless_Data.csv"

// Column names of the serverless cost dataset. Coercion by name requires the
// CSV header to use these exact names.
const (
	ColFunctionName           = "FunctionName"
	ColEnvironment            = "Environment"
	ColInvocationsPerMonth    = "InvocationsPerMonth"
	ColAvgDurationMs          = "AvgDurationMs"
	ColMemoryMB               = "MemoryMB"
	ColColdStartRate          = "ColdStartRate"
	ColProvisionedConcurrency = "ProvisionedConcurrency"
	ColGBSeconds              = "GBSeconds"
	ColDataTransferGB         = "DataTransferGB"
	ColCostUSD                = "CostUSD"
)

// Columns is the canonical header order of the dataset schema.
var Columns = []string{
	ColFunctionName,
	ColEnvironment,
	ColInvocationsPerMonth,
	ColAvgDurationMs,
	ColMemoryMB,
	ColColdStartRate,
	ColProvisionedConcurrency,
	ColGBSeconds,
	ColDataTransferGB,
	ColCostUSD,
}

// NumericColumns are the columns coerced to numbers; cells that fail to parse
// become missing values.
var NumericColumns = []string{
	ColInvocationsPerMonth,
	ColAvgDurationMs,
	ColMemoryMB,
	ColColdStartRate,
	ColProvisionedConcurrency,
	ColGBSeconds,
	ColDataTransferGB,
	ColCostUSD,
}

// Table holds the raw parsed CSV: a header row plus text rows matched to it
// positionally. Rows may be ragged; coercion aligns what it can.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Record is one serverless function's monthly cost/performance profile.
// Numeric fields are nil when the source cell was absent or unparseable;
// aggregates must skip missing values rather than treat them as zero.
type Record struct {
	FunctionName           string   `json:"function_name"`
	Environment            string   `json:"environment"`
	InvocationsPerMonth    *float64 `json:"invocations_per_month"`
	AvgDurationMs          *float64 `json:"avg_duration_ms"`
	MemoryMB               *float64 `json:"memory_mb"`
	ColdStartRate          *float64 `json:"cold_start_rate"`
	ProvisionedConcurrency *float64 `json:"provisioned_concurrency"`
	GBSeconds              *float64 `json:"gb_seconds"`
	DataTransferGB         *float64 `json:"data_transfer_gb"`
	CostUSD                *float64 `json:"cost_usd"`
}

// MissingFileError reports an absent dataset file. The caller must halt: no
// partial analysis is produced without input data.
type MissingFileError struct {
	Path string
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("dataset file %q not found: place the CSV beside the executable or pass --file", e.Path)
}
