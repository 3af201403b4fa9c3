package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ppiankov/lambdaspectre/internal/analyzer"
)

const sarifSchema = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/main/sarif-2.1/schema/sarif-schema-2.1.0.json"

// SARIFReporter writes candidates as SARIF results so CI and code-scanning
// surfaces can track serverless cost findings like any other finding.
type SARIFReporter struct {
	Writer io.Writer
}

// sarifReport is the top-level SARIF v2.1.0 structure.
type sarifReport struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version"`
	Rules   []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string            `json:"id"`
	ShortDescription sarifMessage      `json:"shortDescription"`
	DefaultConfig    sarifDefaultLevel `json:"defaultConfiguration"`
}

type sarifDefaultLevel struct {
	Level string `json:"level"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifResult struct {
	RuleID    string         `json:"ruleId"`
	Level     string         `json:"level"`
	Message   sarifMessage   `json:"message"`
	Locations []sarifLoc     `json:"locations,omitempty"`
	Props     map[string]any `json:"properties,omitempty"`
}

type sarifLoc struct {
	PhysicalLocation sarifPhysical `json:"physicalLocation"`
}

type sarifPhysical struct {
	ArtifactLocation sarifArtifact `json:"artifactLocation"`
}

type sarifArtifact struct {
	URI string `json:"uri"`
}

// Generate writes SARIF v2.1.0 output. Each candidate row of every view
// becomes one result under that view's rule ID.
func (r *SARIFReporter) Generate(data Data) error {
	var results []sarifResult
	for _, v := range data.Views {
		for _, row := range v.Candidates {
			cost := 0.0
			if row.CostUSD != nil {
				cost = *row.CostUSD
			}
			props := map[string]any{
				"environment":  row.Environment,
				"costUSD":      cost,
				"costSharePct": row.CostSharePct,
			}
			if row.CumCostPct != nil {
				props["cumCostPct"] = *row.CumCostPct
			}

			results = append(results, sarifResult{
				RuleID:  ruleID(v.ID),
				Level:   sarifLevel(v.ID),
				Message: sarifMessage{Text: fmt.Sprintf("%s: %s ($%.2f/month)", v.Title, row.FunctionName, cost)},
				Locations: []sarifLoc{
					{
						PhysicalLocation: sarifPhysical{
							ArtifactLocation: sarifArtifact{
								URI: fmt.Sprintf("dataset://%s/%s", data.Target.URIHash, row.FunctionName),
							},
						},
					},
				},
				Props: props,
			})
		}
	}

	report := sarifReport{
		Schema:  sarifSchema,
		Version: "2.1.0",
		Runs: []sarifRun{
			{
				Tool: sarifTool{
					Driver: sarifDriver{
						Name:    data.Tool,
						Version: data.Version,
						Rules:   buildSARIFRules(),
					},
				},
				Results: results,
			},
		},
	}

	enc := json.NewEncoder(r.Writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encode SARIF report: %w", err)
	}
	return nil
}

func ruleID(id analyzer.ViewID) string {
	switch id {
	case analyzer.ViewCostConcentration:
		return "TOP_COST_DRIVER"
	case analyzer.ViewMemoryRightSizing:
		return "MEMORY_OVERPROVISIONED"
	case analyzer.ViewProvisionedConcurrency:
		return "PC_REDUCIBLE"
	case analyzer.ViewLowValueWorkloads:
		return "LOW_VALUE_WORKLOAD"
	case analyzer.ViewContainerization:
		return "CONTAINERIZATION_CANDIDATE"
	default:
		return string(id)
	}
}

func sarifLevel(id analyzer.ViewID) string {
	switch id {
	case analyzer.ViewCostConcentration, analyzer.ViewLowValueWorkloads:
		return "warning"
	case analyzer.ViewMemoryRightSizing:
		return "warning"
	default:
		return "note"
	}
}

func buildSARIFRules() []sarifRule {
	return []sarifRule{
		{ID: "TOP_COST_DRIVER", ShortDescription: sarifMessage{Text: "Function in the top cost concentration prefix"}, DefaultConfig: sarifDefaultLevel{Level: "warning"}},
		{ID: "MEMORY_OVERPROVISIONED", ShortDescription: sarifMessage{Text: "High memory allocation with low duration"}, DefaultConfig: sarifDefaultLevel{Level: "warning"}},
		{ID: "PC_REDUCIBLE", ShortDescription: sarifMessage{Text: "Provisioned concurrency with low cold-start rate"}, DefaultConfig: sarifDefaultLevel{Level: "note"}},
		{ID: "LOW_VALUE_WORKLOAD", ShortDescription: sarifMessage{Text: "Low usage but above-median cost"}, DefaultConfig: sarifDefaultLevel{Level: "warning"}},
		{ID: "CONTAINERIZATION_CANDIDATE", ShortDescription: sarifMessage{Text: "Long-running memory-heavy workload suited to containers"}, DefaultConfig: sarifDefaultLevel{Level: "note"}},
	}
}
