package collect

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

const (
	// lambdaNamespace is the CloudWatch namespace all collected metrics
	// come from.
	lambdaNamespace = "AWS/Lambda"
	// maxMetricDataQueries is the maximum number of metric queries per
	// GetMetricData call.
	maxMetricDataQueries = 500
	// metricPeriodSeconds is the aggregation period (1 hour).
	metricPeriodSeconds = 3600
)

// CloudWatchAPI is the minimal interface for CloudWatch operations needed by
// the metrics fetcher.
type CloudWatchAPI interface {
	GetMetricData(ctx context.Context, input *cloudwatch.GetMetricDataInput, opts ...func(*cloudwatch.Options)) (*cloudwatch.GetMetricDataOutput, error)
}

// MetricsFetcher retrieves per-function Lambda metrics in batches.
type MetricsFetcher struct {
	client CloudWatchAPI
}

// NewMetricsFetcher creates a fetcher using the given CloudWatch client.
func NewMetricsFetcher(client CloudWatchAPI) *MetricsFetcher {
	return &MetricsFetcher{client: client}
}

// FetchSum retrieves the total of a Lambda metric per function name over the
// lookback window.
func (f *MetricsFetcher) FetchSum(ctx context.Context, metricName string, names []string, lookbackDays int) (map[string]float64, error) {
	return f.fetchMetric(ctx, metricName, names, lookbackDays, "Sum")
}

// FetchAverage retrieves the average of a Lambda metric per function name
// over the lookback window.
func (f *MetricsFetcher) FetchAverage(ctx context.Context, metricName string, names []string, lookbackDays int) (map[string]float64, error) {
	return f.fetchMetric(ctx, metricName, names, lookbackDays, "Average")
}

func (f *MetricsFetcher) fetchMetric(ctx context.Context, metricName string, names []string, lookbackDays int, stat string) (map[string]float64, error) {
	if len(names) == 0 {
		return nil, nil
	}

	now := time.Now().UTC()
	startTime := now.Add(-time.Duration(lookbackDays) * 24 * time.Hour)

	results := make(map[string]float64, len(names))
	for batchIdx, batch := range batchNames(names, maxMetricDataQueries) {
		slog.Debug("Fetching Lambda metrics", "batch", batchIdx+1, "metric", metricName, "count", len(batch))

		queries := make([]cwtypes.MetricDataQuery, 0, len(batch))
		for i, name := range batch {
			queries = append(queries, cwtypes.MetricDataQuery{
				Id: awssdk.String(fmt.Sprintf("m%d", i)),
				MetricStat: &cwtypes.MetricStat{
					Metric: &cwtypes.Metric{
						Namespace:  awssdk.String(lambdaNamespace),
						MetricName: awssdk.String(metricName),
						Dimensions: []cwtypes.Dimension{
							{
								Name:  awssdk.String("FunctionName"),
								Value: awssdk.String(name),
							},
						},
					},
					Period: awssdk.Int32(metricPeriodSeconds),
					Stat:   awssdk.String(stat),
				},
			})
		}

		out, err := f.client.GetMetricData(ctx, &cloudwatch.GetMetricDataInput{
			MetricDataQueries: queries,
			StartTime:         awssdk.Time(startTime),
			EndTime:           awssdk.Time(now),
		})
		if err != nil {
			return nil, fmt.Errorf("get metric data (%s/%s): %w", lambdaNamespace, metricName, err)
		}

		for _, result := range out.MetricDataResults {
			if result.Id == nil || len(result.Values) == 0 {
				continue
			}
			var idx int
			if _, err := fmt.Sscanf(*result.Id, "m%d", &idx); err != nil || idx >= len(batch) {
				continue
			}

			var total float64
			for _, v := range result.Values {
				total += v
			}
			if stat == "Average" {
				results[batch[idx]] = total / float64(len(result.Values))
			} else {
				results[batch[idx]] = total
			}
		}
	}

	return results, nil
}

// batchNames splits function names into batches of the given size.
func batchNames(names []string, batchSize int) [][]string {
	if batchSize <= 0 {
		batchSize = maxMetricDataQueries
	}

	var batches [][]string
	for i := 0; i < len(names); i += batchSize {
		end := i + batchSize
		if end > len(names) {
			end = len(names)
		}
		batches = append(batches, names[i:end])
	}
	return batches
}
