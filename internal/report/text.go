package report

import (
	"fmt"

	"github.com/ppiankov/lambdaspectre/internal/analyzer"
)

// Generate writes a human-readable report: summary scalars, each view's
// candidate table with its chart spec, then the forecast.
func (r *TextReporter) Generate(data Data) error {
	w := r.Writer

	fmt.Fprintf(w, "%s %s - serverless cost analysis\n", data.Tool, data.Version)
	fmt.Fprintf(w, "Generated: %s\n", data.Timestamp.Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(w, "Environments: %v  Cost range: $%.2f - $%.2f\n\n",
		data.Config.Environments, data.Config.CostMin, data.Config.CostMax)

	fmt.Fprintln(w, "Summary")
	fmt.Fprintf(w, "  Total cost:          $%.2f\n", data.Summary.TotalCostUSD)
	fmt.Fprintf(w, "  Monthly invocations: %.0f\n", data.Summary.TotalInvocations)
	fmt.Fprintf(w, "  Avg duration:        %.1f ms\n", data.Summary.MeanDurationMs)
	fmt.Fprintf(w, "  Avg memory:          %.0f MB\n", data.Summary.MeanMemoryMB)
	fmt.Fprintf(w, "  Functions:           %d\n\n", data.Summary.FunctionCount)

	for _, v := range data.Views {
		r.writeView(v)
	}

	if data.Forecast != nil {
		fmt.Fprintln(w, "Cost forecast")
		fmt.Fprintf(w, "  %s\n", data.Forecast.Equation)
		if data.Forecast.Predicted != nil {
			fmt.Fprintf(w, "  Predicted monthly cost: $%.2f\n", *data.Forecast.Predicted)
		}
		fmt.Fprintln(w)
	}

	if len(data.Errors) > 0 {
		fmt.Fprintln(w, "Errors")
		for _, e := range data.Errors {
			fmt.Fprintf(w, "  - %s\n", e)
		}
	}
	return nil
}

func (r *TextReporter) writeView(v analyzer.View) {
	w := r.Writer

	fmt.Fprintf(w, "%s (%d candidates)\n", v.Title, len(v.Candidates))
	if len(v.Candidates) == 0 {
		fmt.Fprintln(w, "  No candidates found")
		fmt.Fprintln(w)
		return
	}

	fmt.Fprintf(w, "  %-32s %-12s %12s %10s", "FUNCTION", "ENVIRONMENT", "COST", "COST%")
	if v.ID == analyzer.ViewCostConcentration {
		fmt.Fprintf(w, " %10s", "CUM%")
	}
	fmt.Fprintln(w)

	for _, row := range v.Candidates {
		cost := 0.0
		if row.CostUSD != nil {
			cost = *row.CostUSD
		}
		fmt.Fprintf(w, "  %-32s %-12s %11.2f$ %9.2f%%", row.FunctionName, row.Environment, cost, row.CostSharePct)
		if row.CumCostPct != nil {
			fmt.Fprintf(w, " %9.2f%%", *row.CumCostPct)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "  chart: %s %s vs %s\n\n", v.Chart.Kind, v.Chart.X, v.Chart.Y)
}
