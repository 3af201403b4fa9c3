package dataset

// FilterParams selects the working set every view is computed over.
type FilterParams struct {
	Environments []string
	CostMin      float64
	CostMax      float64
}

// Filter keeps a record iff its Environment is one of the selected
// environments and its CostUSD lies within [CostMin, CostMax] inclusive.
// Records with a missing CostUSD never match a range. An empty environment
// selection yields an empty working set: that is policy, not an error.
// The result preserves input order and shares no storage decisions with the
// source slice (the base dataset stays immutable).
func Filter(records []Record, p FilterParams) []Record {
	if len(p.Environments) == 0 {
		return nil
	}
	envs := make(map[string]bool, len(p.Environments))
	for _, e := range p.Environments {
		envs[e] = true
	}

	var out []Record
	for _, r := range records {
		if !envs[r.Environment] {
			continue
		}
		if r.CostUSD == nil {
			continue
		}
		if *r.CostUSD < p.CostMin || *r.CostUSD > p.CostMax {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Environments returns the distinct environment values in first-appearance
// order, mirroring how a UI would populate a multi-select.
func Environments(records []Record) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range records {
		if !seen[r.Environment] {
			seen[r.Environment] = true
			out = append(out, r.Environment)
		}
	}
	return out
}

// CostRange returns the min and max CostUSD across records, skipping missing
// values. ok is false when no record has a cost.
func CostRange(records []Record) (min, max float64, ok bool) {
	for _, r := range records {
		if r.CostUSD == nil {
			continue
		}
		c := *r.CostUSD
		if !ok {
			min, max, ok = c, c, true
			continue
		}
		if c < min {
			min = c
		}
		if c > max {
			max = c
		}
	}
	return min, max, ok
}
