package forecast

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/ppiankov/lambdaspectre/internal/dataset"
)

func fp(v float64) *float64 { return &v }

func row(inv, dur, mem, cost float64) dataset.Record {
	return dataset.Record{
		InvocationsPerMonth: fp(inv),
		AvgDurationMs:       fp(dur),
		MemoryMB:            fp(mem),
		CostUSD:             fp(cost),
	}
}

func TestFit_ExactLine(t *testing.T) {
	// cost = 2e-9 * x + 5 with x = inv*dur*mem
	records := []dataset.Record{
		row(1000, 100, 1000, 2e-9*1000*100*1000+5),
		row(2000, 100, 1000, 2e-9*2000*100*1000+5),
		row(3000, 200, 1000, 2e-9*3000*200*1000+5),
	}

	model, err := Fit(records)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(model.Slope-2e-9) > 1e-15 {
		t.Fatalf("expected slope 2e-9, got %g", model.Slope)
	}
	if math.Abs(model.Intercept-5) > 1e-6 {
		t.Fatalf("expected intercept 5, got %f", model.Intercept)
	}
	if model.ValidRows != 3 {
		t.Fatalf("expected 3 valid rows, got %d", model.ValidRows)
	}
}

func TestFit_ExcludesIncompleteRows(t *testing.T) {
	records := []dataset.Record{
		row(1000, 100, 1000, 10),
		row(2000, 100, 1000, 15),
		{InvocationsPerMonth: fp(5000), AvgDurationMs: nil, MemoryMB: fp(512), CostUSD: fp(99)},
		{InvocationsPerMonth: fp(5000), AvgDurationMs: fp(100), MemoryMB: fp(512), CostUSD: nil},
	}

	model, err := Fit(records)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if model.ValidRows != 2 {
		t.Fatalf("rows with missing values must be excluded, got %d valid", model.ValidRows)
	}
}

func TestFit_InsufficientRows(t *testing.T) {
	_, err := Fit([]dataset.Record{row(1000, 100, 1000, 10)})
	if err == nil {
		t.Fatal("expected error for a single usable row")
	}

	var fitErr *ModelFitError
	if !errors.As(err, &fitErr) {
		t.Fatalf("expected ModelFitError, got %T: %v", err, err)
	}
	if fitErr.ValidRows != 1 {
		t.Fatalf("expected 1 valid row reported, got %d", fitErr.ValidRows)
	}
}

func TestFit_ZeroVariance(t *testing.T) {
	records := []dataset.Record{
		row(1000, 100, 1000, 10),
		row(1000, 100, 1000, 20),
	}

	_, err := Fit(records)
	var fitErr *ModelFitError
	if !errors.As(err, &fitErr) {
		t.Fatalf("expected ModelFitError for zero variance, got %v", err)
	}
}

// Prediction is linear in the composite metric: doubling inv*dur*mem at fixed
// data transfer moves the result by exactly slope times the metric.
func TestPredict_LinearInComposite(t *testing.T) {
	model := Model{Slope: 3e-9, Intercept: 2}

	x := 200000.0 * 250 * 1024
	p1 := model.Predict(200000, 250, 1024, 50)
	p2 := model.Predict(400000, 250, 1024, 50)

	if math.Abs((p2-p1)-model.Slope*x) > 1e-9 {
		t.Fatalf("expected delta %g, got %g", model.Slope*x, p2-p1)
	}
}

func TestPredict_AddsDataTransfer(t *testing.T) {
	model := Model{Slope: 0, Intercept: 10}

	got := model.Predict(0, 0, 0, 2000)
	want := 10 + DataTransferRatePerGB*2000
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("expected %f, got %f", want, got)
	}
}

func TestEquation_MentionsRateAndIntercept(t *testing.T) {
	model := Model{Slope: 1.5e-9, Intercept: 12.34}

	eq := model.Equation()
	if !strings.Contains(eq, "0.0005") {
		t.Fatalf("equation must show the data-transfer rate: %s", eq)
	}
	if !strings.Contains(eq, "12.34") {
		t.Fatalf("equation must show the intercept: %s", eq)
	}
}
