package collect

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ppiankov/lambdaspectre/internal/dataset"
)

// WriteCSV renders records in the dataset schema consumed by dataset.Load:
// plain comma-joined lines, header first. Missing values render as empty
// cells, which coerce back to missing on load. Function names containing a
// comma would misalign under the naive splitter, so they are rejected here
// rather than silently corrupting the file.
func WriteCSV(w io.Writer, records []dataset.Record) error {
	if _, err := fmt.Fprintln(w, strings.Join(dataset.Columns, ",")); err != nil {
		return err
	}

	for _, r := range records {
		if strings.Contains(r.FunctionName, ",") || strings.Contains(r.Environment, ",") {
			return fmt.Errorf("function %q: commas in text fields are not representable in this format", r.FunctionName)
		}
		fields := []string{
			r.FunctionName,
			r.Environment,
			cell(r.InvocationsPerMonth),
			cell(r.AvgDurationMs),
			cell(r.MemoryMB),
			cell(r.ColdStartRate),
			cell(r.ProvisionedConcurrency),
			cell(r.GBSeconds),
			cell(r.DataTransferGB),
			cell(r.CostUSD),
		}
		if _, err := fmt.Fprintln(w, strings.Join(fields, ",")); err != nil {
			return err
		}
	}
	return nil
}

// SaveCSV writes records to a file, replacing any existing content.
func SaveCSV(path string, records []dataset.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create dataset file %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteCSV(f, records); err != nil {
		return err
	}
	return f.Close()
}

func cell(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
