package collect

import "testing"

func TestShouldExclude(t *testing.T) {
	cfg := ExcludeConfig{
		ResourceIDs: map[string]bool{"skip-me": true},
		Tags: map[string]string{
			"Team":      "abandoned",
			"Ephemeral": "",
		},
	}

	tests := []struct {
		name string
		fn   string
		tags map[string]string
		want bool
	}{
		{"by resource id", "skip-me", nil, true},
		{"by tag value", "fn-a", map[string]string{"Team": "abandoned"}, true},
		{"tag value mismatch", "fn-a", map[string]string{"Team": "platform"}, false},
		{"empty exclusion value matches any", "fn-a", map[string]string{"Ephemeral": "yes"}, true},
		{"no rules match", "fn-a", map[string]string{"Owner": "me"}, false},
		{"nil tags", "fn-a", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cfg.ShouldExclude(tt.fn, tt.tags); got != tt.want {
				t.Fatalf("ShouldExclude(%q, %v) = %v, want %v", tt.fn, tt.tags, got, tt.want)
			}
		})
	}
}

func TestShouldExclude_EmptyConfig(t *testing.T) {
	var cfg ExcludeConfig
	if cfg.ShouldExclude("anything", map[string]string{"Team": "x"}) {
		t.Fatal("empty config must not exclude anything")
	}
}
