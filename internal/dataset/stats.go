package dataset

import "sort"

// Sum totals the present values in samples. Missing values are excluded, not
// treated as zero.
func Sum(samples []*float64) float64 {
	var total float64
	for _, s := range samples {
		if s != nil {
			total += *s
		}
	}
	return total
}

// Mean averages the present values. ok is false when every sample is missing.
func Mean(samples []*float64) (mean float64, ok bool) {
	var total float64
	var n int
	for _, s := range samples {
		if s != nil {
			total += *s
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return total / float64(n), true
}

// Median returns the median of the present values; an even count averages the
// middle pair. ok is false when every sample is missing.
func Median(samples []*float64) (median float64, ok bool) {
	vals := make([]float64, 0, len(samples))
	for _, s := range samples {
		if s != nil {
			vals = append(vals, *s)
		}
	}
	if len(vals) == 0 {
		return 0, false
	}
	sort.Float64s(vals)
	mid := len(vals) / 2
	if len(vals)%2 == 1 {
		return vals[mid], true
	}
	return (vals[mid-1] + vals[mid]) / 2, true
}

// Column extracts one numeric field from each record.
func Column(records []Record, get func(Record) *float64) []*float64 {
	out := make([]*float64, len(records))
	for i, r := range records {
		out[i] = get(r)
	}
	return out
}
