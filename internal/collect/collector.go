package collect

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

// MultiRegionCollector gathers the serverless dataset across AWS regions.
type MultiRegionCollector struct {
	client      *Client
	regions     []string
	concurrency int
	cfg         Config
}

// NewMultiRegionCollector creates a collector that runs across the specified
// regions.
func NewMultiRegionCollector(client *Client, regions []string, concurrency int, cfg Config) *MultiRegionCollector {
	if concurrency <= 0 {
		concurrency = 4
	}
	if cfg.LookbackDays <= 0 {
		cfg.LookbackDays = daysPerMonth
	}
	return &MultiRegionCollector{
		client:      client,
		regions:     regions,
		concurrency: concurrency,
		cfg:         cfg,
	}
}

// CollectAll runs the function collector in every configured region. A failed
// region is recorded as an error string and does not abort the others. The
// combined records are sorted by function name so output is deterministic
// regardless of completion order.
func (c *MultiRegionCollector) CollectAll(ctx context.Context) (*Result, error) {
	var (
		mu       sync.Mutex
		combined Result
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for _, region := range c.regions {
		region := region
		g.Go(func() error {
			slog.Info("Collecting region", "region", region)
			collector := NewFunctionCollector(
				c.client.Lambda(region),
				NewMetricsFetcher(c.client.CloudWatch(region)),
				region,
			)

			result, err := collector.Collect(ctx, c.cfg)
			if err != nil {
				mu.Lock()
				combined.Errors = append(combined.Errors, fmt.Sprintf("%s: %v", region, err))
				mu.Unlock()
				slog.Warn("Region collection failed", "region", region, "error", err)
				return nil // don't abort other regions
			}

			mu.Lock()
			combined.Records = append(combined.Records, result.Records...)
			combined.Errors = append(combined.Errors, result.Errors...)
			combined.FunctionsScanned += result.FunctionsScanned
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(combined.Records, func(i, j int) bool {
		return combined.Records[i].FunctionName < combined.Records[j].FunctionName
	})
	combined.RegionsScanned = len(c.regions)
	return &combined, nil
}
