package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds lambdaspectre configuration loaded from .lambdaspectre.yaml.
// Cost bounds are pointers so an unset bound falls back to the dataset's own
// min/max.
type Config struct {
	File                  string   `yaml:"file"`
	Environments          []string `yaml:"environments"`
	CostMin               *float64 `yaml:"cost_min"`
	CostMax               *float64 `yaml:"cost_max"`
	MemoryThresholdMB     float64  `yaml:"memory_threshold_mb"`
	DurationThresholdMs   float64  `yaml:"duration_threshold_ms"`
	ColdStartThresholdPct float64  `yaml:"cold_start_threshold_pct"`
	Format                string   `yaml:"format"`
	Profile               string   `yaml:"profile"`
	Regions               []string `yaml:"regions"`
	LookbackDays          int      `yaml:"lookback_days"`
	Timeout               string   `yaml:"timeout"`
	Exclude               Exclude  `yaml:"exclude"`
}

// Exclude defines functions to skip during collection.
type Exclude struct {
	ResourceIDs []string `yaml:"resource_ids"`
	Tags        []string `yaml:"tags"`
}

// ParseTags converts tag strings ("Key=Value" or "Key") into a map.
// Key-only entries have an empty string value, meaning "match any value".
func (e Exclude) ParseTags() map[string]string {
	if len(e.Tags) == 0 {
		return nil
	}
	m := make(map[string]string, len(e.Tags))
	for _, s := range e.Tags {
		if k, v, ok := strings.Cut(s, "="); ok {
			m[k] = v
		} else {
			m[s] = ""
		}
	}
	return m
}

// ParseResourceIDs converts the excluded function names into a lookup set.
func (e Exclude) ParseResourceIDs() map[string]bool {
	if len(e.ResourceIDs) == 0 {
		return nil
	}
	m := make(map[string]bool, len(e.ResourceIDs))
	for _, id := range e.ResourceIDs {
		m[id] = true
	}
	return m
}

// TimeoutDuration parses the timeout string as a duration.
func (c Config) TimeoutDuration() time.Duration {
	if c.Timeout == "" {
		return 0
	}
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Load searches for .lambdaspectre.yaml or .lambdaspectre.yml in the given
// directory and returns the parsed config. Returns an empty Config if no
// file is found.
func Load(dir string) (Config, error) {
	candidates := []string{
		filepath.Join(dir, ".lambdaspectre.yaml"),
		filepath.Join(dir, ".lambdaspectre.yml"),
	}

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}

		var cfg Config
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
		return cfg, nil
	}

	return Config{}, nil
}
