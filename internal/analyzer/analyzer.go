package analyzer

import (
	"github.com/ppiankov/lambdaspectre/internal/dataset"
)

// WorkingSet is a filtered subset of the dataset with share columns computed.
// It is rebuilt from the immutable base records on every parameter change;
// nothing here mutates its inputs.
type WorkingSet struct {
	Rows []Row

	totalCost        float64
	totalInvocations float64
}

// NewWorkingSet computes cost and invocation shares over the given records.
// When the total cost (or total invocations) is zero, every share is 0 rather
// than undefined: empty or zero-cost working sets degrade to empty views, so
// a divide-by-zero placeholder never reaches output.
func NewWorkingSet(records []dataset.Record) *WorkingSet {
	ws := &WorkingSet{
		totalCost:        dataset.Sum(dataset.Column(records, func(r dataset.Record) *float64 { return r.CostUSD })),
		totalInvocations: dataset.Sum(dataset.Column(records, func(r dataset.Record) *float64 { return r.InvocationsPerMonth })),
	}

	ws.Rows = make([]Row, 0, len(records))
	for _, r := range records {
		row := Row{Record: r}
		if r.CostUSD != nil && ws.totalCost > 0 {
			row.CostSharePct = *r.CostUSD / ws.totalCost * 100
		}
		if r.InvocationsPerMonth != nil {
			share := 0.0
			if ws.totalInvocations > 0 {
				share = *r.InvocationsPerMonth / ws.totalInvocations * 100
			}
			row.InvocationSharePct = &share
		}
		ws.Rows = append(ws.Rows, row)
	}
	return ws
}

// TotalCost returns the summed CostUSD over the working set.
func (ws *WorkingSet) TotalCost() float64 { return ws.totalCost }

// TotalInvocations returns the summed monthly invocations over the working set.
func (ws *WorkingSet) TotalInvocations() float64 { return ws.totalInvocations }

// Analyze computes the summary scalars and all optimization views for one
// working set. Every view is a pure function of the working set and the
// thresholds; callers rerun Analyze whenever either changes.
func Analyze(ws *WorkingSet, cfg Config) *AnalysisResult {
	views := []View{
		costConcentration(ws),
		memoryRightSizing(ws, cfg),
		provisionedConcurrency(ws, cfg),
		lowValueWorkloads(ws),
		containerization(ws),
	}

	summary := Summary{
		TotalCostUSD:     ws.totalCost,
		TotalInvocations: ws.totalInvocations,
		FunctionCount:    len(ws.Rows),
		CandidatesByView: make(map[string]int, len(views)),
	}
	records := make([]dataset.Record, len(ws.Rows))
	for i, row := range ws.Rows {
		records[i] = row.Record
	}
	summary.MeanDurationMs, _ = dataset.Mean(dataset.Column(records, func(r dataset.Record) *float64 { return r.AvgDurationMs }))
	summary.MeanMemoryMB, _ = dataset.Mean(dataset.Column(records, func(r dataset.Record) *float64 { return r.MemoryMB }))
	for _, v := range views {
		summary.CandidatesByView[string(v.ID)] = len(v.Candidates)
	}

	return &AnalysisResult{Summary: summary, Views: views}
}
