package analyzer

import (
	"github.com/ppiankov/lambdaspectre/internal/dataset"
)

// ViewID identifies one optimization view.
type ViewID string

const (
	ViewCostConcentration      ViewID = "cost_concentration"
	ViewMemoryRightSizing      ViewID = "memory_right_sizing"
	ViewProvisionedConcurrency ViewID = "provisioned_concurrency"
	ViewLowValueWorkloads      ViewID = "low_value_workloads"
	ViewContainerization       ViewID = "containerization"
)

// Policy constants baked into the analysis, as opposed to the runtime
// thresholds in Config.
const (
	// ParetoCutoffPct bounds the cumulative cost share of the top-spender
	// prefix. A row belongs to the prefix iff the running total including
	// that row is still at or below the cutoff.
	ParetoCutoffPct = 80.0
	// LowValueInvocationSharePct is the invocation share below which a
	// workload counts as low-usage.
	LowValueInvocationSharePct = 1.0
	// ContainerMinDurationMs / ContainerMinMemoryMB mark long-running,
	// memory-heavy functions better served by containers.
	ContainerMinDurationMs = 3000.0
	ContainerMinMemoryMB   = 2048.0
	// ParetoChartTopN limits the cost-concentration bar chart.
	ParetoChartTopN = 10
)

// Config holds the runtime-adjustable view thresholds.
type Config struct {
	MemoryThresholdMB     float64 // right-sizing: high memory at or above
	DurationThresholdMs   float64 // right-sizing: low duration at or below
	ColdStartThresholdPct float64 // provisioned concurrency: cold starts at or below
}

// DefaultConfig returns the standard thresholds. Suggested input ranges:
// memory 512-4096 MB, duration 50-2000 ms, cold start 0-50 %.
func DefaultConfig() Config {
	return Config{
		MemoryThresholdMB:     2048,
		DurationThresholdMs:   600,
		ColdStartThresholdPct: 5,
	}
}

// Row is a working-set record plus its derived share columns. CumCostPct is
// populated only in the cost-concentration view; InvocationSharePct is nil
// when the record's invocation count is missing.
type Row struct {
	dataset.Record
	CostSharePct       float64  `json:"cost_share_pct"`
	InvocationSharePct *float64 `json:"invocation_share_pct,omitempty"`
	CumCostPct         *float64 `json:"cum_cost_pct,omitempty"`
}

// ChartSpec names the fields a renderer should plot for a view. The core
// computes tables and specs; drawing belongs to the consumer.
type ChartSpec struct {
	Kind  string `json:"kind"` // "bar" or "scatter"
	X     string `json:"x"`
	Y     string `json:"y"`
	Size  string `json:"size,omitempty"`
	Color string `json:"color,omitempty"`
	Hover string `json:"hover,omitempty"`
	TopN  int    `json:"top_n,omitempty"`
}

// View is one computed optimization table plus its chart spec. Candidates is
// the threshold-selected subset; the chart is drawn over the full working set
// (or, for cost concentration, its sorted top N).
type View struct {
	ID         ViewID    `json:"id"`
	Title      string    `json:"title"`
	Candidates []Row     `json:"candidates"`
	Chart      ChartSpec `json:"chart"`
}

// Summary holds the headline scalars over the working set plus per-view
// candidate counts.
type Summary struct {
	TotalCostUSD     float64        `json:"total_cost_usd"`
	TotalInvocations float64        `json:"total_invocations"`
	MeanDurationMs   float64        `json:"mean_duration_ms"`
	MeanMemoryMB     float64        `json:"mean_memory_mb"`
	FunctionCount    int            `json:"function_count"`
	CandidatesByView map[string]int `json:"candidates_by_view"`
}

// AnalysisResult is everything the report layer needs from one recomputation.
type AnalysisResult struct {
	Summary Summary `json:"summary"`
	Views   []View  `json:"views"`
}
