package analyzer

import (
	"sort"

	"github.com/ppiankov/lambdaspectre/internal/dataset"
)

// costConcentration sorts the working set by CostUSD descending (stable, so
// equal costs keep their original relative order) and selects the prefix of
// rows whose running cumulative cost share stays at or below ParetoCutoffPct.
// The cumulative value tested is the one including the row itself, so a
// single row already past the cutoff yields an empty prefix.
func costConcentration(ws *WorkingSet) View {
	sorted := make([]Row, len(ws.Rows))
	copy(sorted, ws.Rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return costOf(sorted[i]) > costOf(sorted[j])
	})

	var candidates []Row
	var cum float64
	for _, row := range sorted {
		cum += row.CostSharePct
		c := cum
		row.CumCostPct = &c
		if cum <= ParetoCutoffPct {
			candidates = append(candidates, row)
		}
	}

	return View{
		ID:         ViewCostConcentration,
		Title:      "Cost concentration (Pareto)",
		Candidates: candidates,
		Chart: ChartSpec{
			Kind:  "bar",
			X:     dataset.ColFunctionName,
			Y:     dataset.ColCostUSD,
			Color: dataset.ColEnvironment,
			TopN:  ParetoChartTopN,
		},
	}
}

// memoryRightSizing flags functions with high memory and low duration:
// over-provisioned allocations that finish fast.
func memoryRightSizing(ws *WorkingSet, cfg Config) View {
	var candidates []Row
	for _, row := range ws.Rows {
		if row.MemoryMB == nil || row.AvgDurationMs == nil {
			continue
		}
		if *row.MemoryMB >= cfg.MemoryThresholdMB && *row.AvgDurationMs <= cfg.DurationThresholdMs {
			candidates = append(candidates, row)
		}
	}
	return View{
		ID:         ViewMemoryRightSizing,
		Title:      "Memory right-sizing candidates",
		Candidates: candidates,
		Chart: ChartSpec{
			Kind:  "scatter",
			X:     dataset.ColMemoryMB,
			Y:     dataset.ColAvgDurationMs,
			Size:  dataset.ColCostUSD,
			Color: dataset.ColEnvironment,
			Hover: dataset.ColFunctionName,
		},
	}
}

// provisionedConcurrency flags functions paying for pre-warmed capacity while
// their cold-start rate is already low.
func provisionedConcurrency(ws *WorkingSet, cfg Config) View {
	var candidates []Row
	for _, row := range ws.Rows {
		if row.ProvisionedConcurrency == nil || row.ColdStartRate == nil {
			continue
		}
		if *row.ProvisionedConcurrency > 0 && *row.ColdStartRate <= cfg.ColdStartThresholdPct {
			candidates = append(candidates, row)
		}
	}
	return View{
		ID:         ViewProvisionedConcurrency,
		Title:      "Provisioned concurrency reducible",
		Candidates: candidates,
		Chart: ChartSpec{
			Kind:  "scatter",
			X:     dataset.ColProvisionedConcurrency,
			Y:     dataset.ColColdStartRate,
			Size:  dataset.ColCostUSD,
			Color: dataset.ColEnvironment,
			Hover: dataset.ColFunctionName,
		},
	}
}

// lowValueWorkloads flags functions with under 1% of invocations but above-
// median cost. Rows with a missing invocation count have no share and are
// never flagged.
func lowValueWorkloads(ws *WorkingSet) View {
	median, hasMedian := workingSetMedian(ws, func(r dataset.Record) *float64 { return r.CostUSD })

	var candidates []Row
	if hasMedian {
		for _, row := range ws.Rows {
			if row.InvocationSharePct == nil || row.CostUSD == nil {
				continue
			}
			if *row.InvocationSharePct < LowValueInvocationSharePct && *row.CostUSD > median {
				candidates = append(candidates, row)
			}
		}
	}
	return View{
		ID:         ViewLowValueWorkloads,
		Title:      "Low-value workloads",
		Candidates: candidates,
		Chart: ChartSpec{
			Kind:  "scatter",
			X:     "InvocationSharePct",
			Y:     dataset.ColCostUSD,
			Size:  dataset.ColCostUSD,
			Color: dataset.ColEnvironment,
			Hover: dataset.ColFunctionName,
		},
	}
}

// containerization flags long-running, memory-heavy, below-median-traffic
// functions that would cost less on container infrastructure.
func containerization(ws *WorkingSet) View {
	median, hasMedian := workingSetMedian(ws, func(r dataset.Record) *float64 { return r.InvocationsPerMonth })

	var candidates []Row
	if hasMedian {
		for _, row := range ws.Rows {
			if row.AvgDurationMs == nil || row.MemoryMB == nil || row.InvocationsPerMonth == nil {
				continue
			}
			if *row.AvgDurationMs >= ContainerMinDurationMs &&
				*row.MemoryMB >= ContainerMinMemoryMB &&
				*row.InvocationsPerMonth < median {
				candidates = append(candidates, row)
			}
		}
	}
	return View{
		ID:         ViewContainerization,
		Title:      "Containerization candidates",
		Candidates: candidates,
		Chart: ChartSpec{
			Kind:  "scatter",
			X:     dataset.ColAvgDurationMs,
			Y:     dataset.ColMemoryMB,
			Size:  dataset.ColCostUSD,
			Color: dataset.ColEnvironment,
			Hover: dataset.ColFunctionName,
		},
	}
}

func workingSetMedian(ws *WorkingSet, get func(dataset.Record) *float64) (float64, bool) {
	samples := make([]*float64, len(ws.Rows))
	for i, row := range ws.Rows {
		samples[i] = get(row.Record)
	}
	return dataset.Median(samples)
}

func costOf(r Row) float64 {
	if r.CostUSD == nil {
		return 0
	}
	return *r.CostUSD
}
