package analyzer

import (
	"testing"

	"github.com/ppiankov/lambdaspectre/internal/dataset"
)

func viewByID(t *testing.T, result *AnalysisResult, id ViewID) View {
	t.Helper()
	for _, v := range result.Views {
		if v.ID == id {
			return v
		}
	}
	t.Fatalf("view %s not found", id)
	return View{}
}

func TestCostConcentration_SortsAndAccumulates(t *testing.T) {
	records := []dataset.Record{
		{FunctionName: "small", CostUSD: fp(10)},
		{FunctionName: "big", CostUSD: fp(60)},
		{FunctionName: "mid", CostUSD: fp(30)},
	}

	result := Analyze(NewWorkingSet(records), DefaultConfig())
	v := viewByID(t, result, ViewCostConcentration)

	// big=60%, big+mid=90%: only big stays at or under the 80% cutoff.
	if len(v.Candidates) != 1 {
		t.Fatalf("expected 1 top spender, got %d", len(v.Candidates))
	}
	if v.Candidates[0].FunctionName != "big" {
		t.Fatalf("expected big first, got %s", v.Candidates[0].FunctionName)
	}
	if v.Candidates[0].CumCostPct == nil || *v.Candidates[0].CumCostPct != 60 {
		t.Fatalf("expected cumulative 60, got %v", v.Candidates[0].CumCostPct)
	}
}

// Boundary rule pinned: the cumulative value tested includes the row itself,
// so with rows of 10 and 90 the 90-cost row alone already sits at 90% > 80%
// and the prefix is empty.
func TestCostConcentration_BoundaryRule(t *testing.T) {
	records := []dataset.Record{
		{FunctionName: "cheap", CostUSD: fp(10)},
		{FunctionName: "dear", CostUSD: fp(90)},
	}

	result := Analyze(NewWorkingSet(records), DefaultConfig())
	v := viewByID(t, result, ViewCostConcentration)

	if len(v.Candidates) != 0 {
		t.Fatalf("post-inclusion cumulative rule must exclude the crossing row, got %d candidates", len(v.Candidates))
	}
}

func TestCostConcentration_CumulativeMonotoneAndBounded(t *testing.T) {
	records := []dataset.Record{
		{FunctionName: "a", CostUSD: fp(40)},
		{FunctionName: "b", CostUSD: fp(20)},
		{FunctionName: "c", CostUSD: fp(15)},
		{FunctionName: "d", CostUSD: fp(15)},
		{FunctionName: "e", CostUSD: fp(10)},
	}

	result := Analyze(NewWorkingSet(records), DefaultConfig())
	v := viewByID(t, result, ViewCostConcentration)

	prev := 0.0
	for _, row := range v.Candidates {
		if row.CumCostPct == nil {
			t.Fatal("candidate missing cumulative percentage")
		}
		if *row.CumCostPct < prev {
			t.Fatalf("cumulative percentage decreased: %f after %f", *row.CumCostPct, prev)
		}
		if *row.CumCostPct > 100 {
			t.Fatalf("cumulative percentage exceeded 100: %f", *row.CumCostPct)
		}
		prev = *row.CumCostPct
	}
}

func TestCostConcentration_StableForEqualCosts(t *testing.T) {
	records := []dataset.Record{
		{FunctionName: "first", CostUSD: fp(25)},
		{FunctionName: "second", CostUSD: fp(25)},
		{FunctionName: "third", CostUSD: fp(25)},
	}

	result := Analyze(NewWorkingSet(records), DefaultConfig())
	v := viewByID(t, result, ViewCostConcentration)

	// 33.3%, 66.7% pass the cutoff; ties keep their original order.
	if len(v.Candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(v.Candidates))
	}
	if v.Candidates[0].FunctionName != "first" || v.Candidates[1].FunctionName != "second" {
		t.Fatalf("tie-break not stable: %s, %s", v.Candidates[0].FunctionName, v.Candidates[1].FunctionName)
	}
}

// MemoryMB=3000 >= 2048 and AvgDurationMs=400 <= 600: a candidate.
func TestMemoryRightSizing_Candidate(t *testing.T) {
	records := []dataset.Record{
		{FunctionName: "oversized", CostUSD: fp(10), MemoryMB: fp(3000), AvgDurationMs: fp(400)},
		{FunctionName: "busy", CostUSD: fp(10), MemoryMB: fp(3000), AvgDurationMs: fp(900)},
		{FunctionName: "lean", CostUSD: fp(10), MemoryMB: fp(256), AvgDurationMs: fp(100)},
		{FunctionName: "unknown", CostUSD: fp(10), MemoryMB: nil, AvgDurationMs: fp(100)},
	}

	result := Analyze(NewWorkingSet(records), DefaultConfig())
	v := viewByID(t, result, ViewMemoryRightSizing)

	if len(v.Candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(v.Candidates))
	}
	if v.Candidates[0].FunctionName != "oversized" {
		t.Fatalf("expected oversized, got %s", v.Candidates[0].FunctionName)
	}
}

func TestMemoryRightSizing_ThresholdsInclusive(t *testing.T) {
	records := []dataset.Record{
		{FunctionName: "edge", CostUSD: fp(1), MemoryMB: fp(2048), AvgDurationMs: fp(600)},
	}

	result := Analyze(NewWorkingSet(records), DefaultConfig())
	v := viewByID(t, result, ViewMemoryRightSizing)

	if len(v.Candidates) != 1 {
		t.Fatal("thresholds are inclusive on both sides")
	}
}

func TestProvisionedConcurrency_Candidates(t *testing.T) {
	records := []dataset.Record{
		{FunctionName: "warm-idle", CostUSD: fp(1), ProvisionedConcurrency: fp(10), ColdStartRate: fp(2)},
		{FunctionName: "warm-needed", CostUSD: fp(1), ProvisionedConcurrency: fp(10), ColdStartRate: fp(20)},
		{FunctionName: "no-pc", CostUSD: fp(1), ProvisionedConcurrency: fp(0), ColdStartRate: fp(1)},
	}

	result := Analyze(NewWorkingSet(records), DefaultConfig())
	v := viewByID(t, result, ViewProvisionedConcurrency)

	if len(v.Candidates) != 1 || v.Candidates[0].FunctionName != "warm-idle" {
		t.Fatalf("expected warm-idle only, got %v", len(v.Candidates))
	}
}

func TestLowValueWorkloads_ShareAndMedian(t *testing.T) {
	records := []dataset.Record{
		{FunctionName: "hot", CostUSD: fp(100), InvocationsPerMonth: fp(990000)},
		{FunctionName: "waste", CostUSD: fp(90), InvocationsPerMonth: fp(5000)},
		{FunctionName: "cheap", CostUSD: fp(1), InvocationsPerMonth: fp(5000)},
	}

	result := Analyze(NewWorkingSet(records), DefaultConfig())
	v := viewByID(t, result, ViewLowValueWorkloads)

	// median cost over {100, 90, 1} is 90; waste sits exactly on it and
	// only strictly-above-median rows qualify.
	if len(v.Candidates) != 0 {
		t.Fatalf("expected no candidates at the median boundary, got %d", len(v.Candidates))
	}
}

func TestLowValueWorkloads_Candidate(t *testing.T) {
	records := []dataset.Record{
		{FunctionName: "hot", CostUSD: fp(50), InvocationsPerMonth: fp(990000)},
		{FunctionName: "waste", CostUSD: fp(90), InvocationsPerMonth: fp(5000)},
		{FunctionName: "cheap", CostUSD: fp(1), InvocationsPerMonth: fp(5000)},
		{FunctionName: "nodata", CostUSD: fp(95), InvocationsPerMonth: nil},
	}

	result := Analyze(NewWorkingSet(records), DefaultConfig())
	v := viewByID(t, result, ViewLowValueWorkloads)

	// median cost over {1, 50, 90, 95} is 70; waste has 0.5% of
	// invocations and cost 90 > 70. nodata has no invocation share and
	// is never flagged.
	if len(v.Candidates) != 1 || v.Candidates[0].FunctionName != "waste" {
		t.Fatalf("expected waste only, got %d candidates", len(v.Candidates))
	}
}

func TestContainerization_Candidates(t *testing.T) {
	records := []dataset.Record{
		{FunctionName: "batch", CostUSD: fp(1), AvgDurationMs: fp(5000), MemoryMB: fp(3072), InvocationsPerMonth: fp(100)},
		{FunctionName: "api", CostUSD: fp(1), AvgDurationMs: fp(100), MemoryMB: fp(512), InvocationsPerMonth: fp(90000)},
		{FunctionName: "heavy-hot", CostUSD: fp(1), AvgDurationMs: fp(5000), MemoryMB: fp(3072), InvocationsPerMonth: fp(95000)},
	}

	result := Analyze(NewWorkingSet(records), DefaultConfig())
	v := viewByID(t, result, ViewContainerization)

	// median invocations = 90000; batch is long, heavy, below median.
	// heavy-hot is above the median and stays on Lambda.
	if len(v.Candidates) != 1 || v.Candidates[0].FunctionName != "batch" {
		t.Fatalf("expected batch only, got %d candidates", len(v.Candidates))
	}
}

func TestViews_ChartSpecs(t *testing.T) {
	result := Analyze(NewWorkingSet([]dataset.Record{{FunctionName: "a", CostUSD: fp(1)}}), DefaultConfig())

	pareto := viewByID(t, result, ViewCostConcentration)
	if pareto.Chart.Kind != "bar" || pareto.Chart.TopN != ParetoChartTopN {
		t.Fatalf("unexpected pareto chart: %+v", pareto.Chart)
	}

	for _, id := range []ViewID{ViewMemoryRightSizing, ViewProvisionedConcurrency, ViewLowValueWorkloads, ViewContainerization} {
		v := viewByID(t, result, id)
		if v.Chart.Kind != "scatter" {
			t.Fatalf("view %s: expected scatter chart, got %s", id, v.Chart.Kind)
		}
		if v.Chart.Hover != dataset.ColFunctionName {
			t.Fatalf("view %s: expected hover on function name", id)
		}
	}
}
