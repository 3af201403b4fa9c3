// Package forecast fits a first-degree least-squares cost model over the
// working set and evaluates it at user-supplied workload points.
package forecast

import (
	"fmt"

	"github.com/ppiankov/lambdaspectre/internal/dataset"
)

// DataTransferRatePerGB is the flat outbound data-transfer rate added on top
// of the fitted model. It is policy, not a fitted coefficient.
const DataTransferRatePerGB = 0.0005

// Model is a fitted degree-1 polynomial of CostUSD on the composite workload
// metric invocations x duration x memory.
type Model struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	ValidRows int     `json:"valid_rows"`
}

// ModelFitError reports that the working set cannot support a fit: fewer than
// two usable rows, or no variance in the composite metric.
type ModelFitError struct {
	ValidRows int
	Reason    string
}

func (e *ModelFitError) Error() string {
	return fmt.Sprintf("cannot fit cost model: %s (%d usable rows)", e.Reason, e.ValidRows)
}

// Fit computes the ordinary least-squares line of CostUSD on
// InvocationsPerMonth x AvgDurationMs x MemoryMB. Rows missing any of the
// four fields are excluded: arithmetic on missing values is undefined and
// must never leak into the coefficients.
func Fit(records []dataset.Record) (Model, error) {
	var xs, ys []float64
	for _, r := range records {
		if r.InvocationsPerMonth == nil || r.AvgDurationMs == nil || r.MemoryMB == nil || r.CostUSD == nil {
			continue
		}
		xs = append(xs, *r.InvocationsPerMonth**r.AvgDurationMs**r.MemoryMB)
		ys = append(ys, *r.CostUSD)
	}

	n := len(xs)
	if n < 2 {
		return Model{}, &ModelFitError{ValidRows: n, Reason: "need at least 2 rows with complete data"}
	}

	var sumX, sumY float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	var sxx, sxy float64
	for i := range xs {
		dx := xs[i] - meanX
		sxx += dx * dx
		sxy += dx * (ys[i] - meanY)
	}
	if sxx == 0 {
		return Model{}, &ModelFitError{ValidRows: n, Reason: "composite metric has zero variance"}
	}

	slope := sxy / sxx
	return Model{
		Slope:     slope,
		Intercept: meanY - slope*meanX,
		ValidRows: n,
	}, nil
}

// Predict evaluates the model at one workload point. Inputs are taken as
// given; the documented slider ranges (invocations 1e3-5e6, duration 10-3000
// ms, memory 128-4096 MB, transfer 0-5000 GB) are suggestions, not limits.
func (m Model) Predict(invocations, durationMs, memoryMB, dataTransferGB float64) float64 {
	return m.Slope*(invocations*durationMs*memoryMB) +
		DataTransferRatePerGB*dataTransferGB +
		m.Intercept
}

// Equation renders the fitted-model summary string.
func (m Model) Equation() string {
	return fmt.Sprintf("Cost ~ %.8e x (inv x duration x memory) + %g x DataTransferGB + %.2f",
		m.Slope, DataTransferRatePerGB, m.Intercept)
}
