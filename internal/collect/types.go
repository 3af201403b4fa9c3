package collect

import "github.com/ppiankov/lambdaspectre/internal/dataset"

// Config holds parameters that control dataset collection.
type Config struct {
	// LookbackDays is the CloudWatch window; observed sums are scaled to a
	// 30-day month.
	LookbackDays int
	Exclude      ExcludeConfig
}

// ExcludeConfig holds function exclusion rules.
type ExcludeConfig struct {
	ResourceIDs map[string]bool
	Tags        map[string]string
}

// ShouldExclude reports whether a function should be skipped, either by name
// or by tag match. An empty-valued exclusion tag matches any value.
func (e ExcludeConfig) ShouldExclude(name string, tags map[string]string) bool {
	if e.ResourceIDs[name] {
		return true
	}
	for k, want := range e.Tags {
		got, ok := tags[k]
		if !ok {
			continue
		}
		if want == "" || want == got {
			return true
		}
	}
	return false
}

// Result holds the collected records from one or more regions.
type Result struct {
	Records          []dataset.Record `json:"records"`
	Errors           []string         `json:"errors,omitempty"`
	FunctionsScanned int              `json:"functions_scanned"`
	RegionsScanned   int              `json:"regions_scanned"`
}
