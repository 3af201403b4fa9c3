package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_NoFile(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.File != "" {
		t.Fatalf("expected empty file, got %q", cfg.File)
	}
	if cfg.CostMin != nil {
		t.Fatal("expected unset cost_min")
	}
}

func TestLoad_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	content := `file: functions.csv
environments:
  - prod
  - staging
cost_min: 10.5
cost_max: 900
memory_threshold_mb: 1536
duration_threshold_ms: 450
cold_start_threshold_pct: 8
format: json
profile: production
regions:
  - us-east-1
  - eu-west-1
lookback_days: 14
timeout: 5m
exclude:
  resource_ids:
    - legacy-cron
  tags:
    - "Environment=sandbox"
    - "lambdaspectre:ignore"
`
	if err := os.WriteFile(filepath.Join(dir, ".lambdaspectre.yaml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.File != "functions.csv" {
		t.Fatalf("expected functions.csv, got %q", cfg.File)
	}
	if len(cfg.Environments) != 2 || cfg.Environments[0] != "prod" {
		t.Fatalf("expected [prod staging], got %v", cfg.Environments)
	}
	if cfg.CostMin == nil || *cfg.CostMin != 10.5 {
		t.Fatalf("expected cost_min 10.5, got %v", cfg.CostMin)
	}
	if cfg.CostMax == nil || *cfg.CostMax != 900 {
		t.Fatalf("expected cost_max 900, got %v", cfg.CostMax)
	}
	if cfg.MemoryThresholdMB != 1536 {
		t.Fatalf("expected memory_threshold_mb 1536, got %f", cfg.MemoryThresholdMB)
	}
	if cfg.LookbackDays != 14 {
		t.Fatalf("expected lookback_days 14, got %d", cfg.LookbackDays)
	}
	if cfg.TimeoutDuration() != 5*time.Minute {
		t.Fatalf("expected 5m timeout, got %v", cfg.TimeoutDuration())
	}
}

func TestLoad_YMLFallback(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".lambdaspectre.yml"), []byte("format: sarif\n"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Format != "sarif" {
		t.Fatalf("expected sarif, got %q", cfg.Format)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".lambdaspectre.yaml"), []byte("file: [unclosed"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	if _, err := Load(dir); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestExclude_ParseTags(t *testing.T) {
	e := Exclude{Tags: []string{"Environment=sandbox", "lambdaspectre:ignore"}}

	tags := e.ParseTags()
	if tags["Environment"] != "sandbox" {
		t.Fatalf("expected sandbox, got %q", tags["Environment"])
	}
	if v, ok := tags["lambdaspectre:ignore"]; !ok || v != "" {
		t.Fatal("key-only tag must map to empty value")
	}
}

func TestExclude_ParseResourceIDs(t *testing.T) {
	e := Exclude{ResourceIDs: []string{"legacy-cron", "temp-fn"}}

	ids := e.ParseResourceIDs()
	if !ids["legacy-cron"] || !ids["temp-fn"] {
		t.Fatalf("expected both ids present, got %v", ids)
	}

	if (Exclude{}).ParseResourceIDs() != nil {
		t.Fatal("expected nil for empty exclusions")
	}
}
