package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/ppiankov/lambdaspectre/internal/analyzer"
	"github.com/ppiankov/lambdaspectre/internal/forecast"
)

// Target describes the dataset an analysis ran against.
type Target struct {
	Type    string `json:"type"`
	URIHash string `json:"uri_hash"`
}

// ReportConfig records the filter and threshold inputs that produced the
// analysis, so a report is reproducible.
type ReportConfig struct {
	Environments          []string `json:"environments"`
	CostMin               float64  `json:"cost_min"`
	CostMax               float64  `json:"cost_max"`
	MemoryThresholdMB     float64  `json:"memory_threshold_mb"`
	DurationThresholdMs   float64  `json:"duration_threshold_ms"`
	ColdStartThresholdPct float64  `json:"cold_start_threshold_pct"`
}

// Forecast carries the fitted model and, when a prediction point was given,
// the predicted monthly cost.
type Forecast struct {
	Model     forecast.Model `json:"model"`
	Equation  string         `json:"equation"`
	Predicted *float64       `json:"predicted_cost_usd,omitempty"`
}

// Data is the envelope handed to every reporter.
type Data struct {
	Tool      string           `json:"tool"`
	Version   string           `json:"version"`
	Timestamp time.Time        `json:"timestamp"`
	Target    Target           `json:"target"`
	Config    ReportConfig     `json:"config"`
	Summary   analyzer.Summary `json:"summary"`
	Views     []analyzer.View  `json:"views"`
	Forecast  *Forecast        `json:"forecast,omitempty"`
	Errors    []string         `json:"errors,omitempty"`
}

// Reporter renders analysis data in one output format.
type Reporter interface {
	Generate(data Data) error
}

// JSONReporter writes the full envelope as indented JSON.
type JSONReporter struct {
	Writer io.Writer
}

// Generate writes the spectre/v1 JSON envelope.
func (r *JSONReporter) Generate(data Data) error {
	envelope := struct {
		Schema string `json:"$schema"`
		Data
	}{
		Schema: "spectre/v1",
		Data:   data,
	}

	enc := json.NewEncoder(r.Writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(envelope); err != nil {
		return fmt.Errorf("encode JSON report: %w", err)
	}
	return nil
}

// TextReporter writes a human-readable report.
type TextReporter struct {
	Writer io.Writer
}
