package dataset

import (
	"strconv"
	"strings"
)

// Coerce converts a text Table into typed Records. The eight numeric columns
// parse per cell; a cell that fails to parse (or is absent on a ragged row)
// becomes nil rather than an error. Text columns pass through untouched.
// Output preserves row count and order, and the function is pure: coercing
// the same table twice yields identical records.
func Coerce(t *Table) []Record {
	idx := make(map[string]int, len(t.Headers))
	for i, h := range t.Headers {
		idx[strings.TrimSpace(h)] = i
	}

	records := make([]Record, 0, len(t.Rows))
	for _, row := range t.Rows {
		cell := func(col string) (string, bool) {
			i, ok := idx[col]
			if !ok || i >= len(row) {
				return "", false
			}
			return row[i], true
		}

		r := Record{}
		if v, ok := cell(ColFunctionName); ok {
			r.FunctionName = v
		}
		if v, ok := cell(ColEnvironment); ok {
			r.Environment = v
		}
		r.InvocationsPerMonth = numeric(cell(ColInvocationsPerMonth))
		r.AvgDurationMs = numeric(cell(ColAvgDurationMs))
		r.MemoryMB = numeric(cell(ColMemoryMB))
		r.ColdStartRate = numeric(cell(ColColdStartRate))
		r.ProvisionedConcurrency = numeric(cell(ColProvisionedConcurrency))
		r.GBSeconds = numeric(cell(ColGBSeconds))
		r.DataTransferGB = numeric(cell(ColDataTransferGB))
		r.CostUSD = numeric(cell(ColCostUSD))
		records = append(records, r)
	}
	return records
}

// numeric parses one cell, returning nil for anything that is not a number.
func numeric(s string, ok bool) *float64 {
	if !ok {
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &v
}
