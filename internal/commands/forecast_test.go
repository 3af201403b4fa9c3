package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunForecast_TextOutputFile(t *testing.T) {
	dir := t.TempDir()
	dataPath := filepath.Join(dir, "data.csv")
	content := "FunctionName,Environment,InvocationsPerMonth,AvgDurationMs,MemoryMB,ColdStartRate,ProvisionedConcurrency,GBSeconds,DataTransferGB,CostUSD\n" +
		"fn-a,prod,1000,100,1024,0,0,100,0,10\n" +
		"fn-b,prod,2000,100,1024,0,0,200,0,20\n"
	if err := os.WriteFile(dataPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	outPath := filepath.Join(dir, "out.txt")

	prev := forecastFlags
	defer func() { forecastFlags = prev }()
	forecastFlags.file = dataPath
	forecastFlags.format = "text"
	forecastFlags.outputFile = outPath
	forecastFlags.invocations = 200000
	forecastFlags.durationMs = 250
	forecastFlags.memoryMB = 1024
	forecastFlags.dataTransferGB = 50

	if err := runForecast(forecastCmd, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("text output must land in the --output file: %v", err)
	}
	if !strings.Contains(string(out), "Predicted monthly cost") {
		t.Fatalf("missing prediction line: %s", out)
	}
	if !strings.Contains(string(out), "Fitted over 2 rows") {
		t.Fatalf("missing fit summary: %s", out)
	}
}
