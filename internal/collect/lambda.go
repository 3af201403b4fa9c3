package collect

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/service/lambda"
	lambdatypes "github.com/aws/aws-sdk-go-v2/service/lambda/types"

	"github.com/ppiankov/lambdaspectre/internal/dataset"
	"github.com/ppiankov/lambdaspectre/internal/pricing"
)

const daysPerMonth = 30

// environmentTag is the function tag the Environment column is read from.
// Untagged functions fall into this default bucket.
const (
	environmentTag     = "Environment"
	defaultEnvironment = "untagged"
)

// LambdaAPI is the minimal interface for Lambda operations.
type LambdaAPI interface {
	ListFunctions(ctx context.Context, input *lambda.ListFunctionsInput, opts ...func(*lambda.Options)) (*lambda.ListFunctionsOutput, error)
	ListProvisionedConcurrencyConfigs(ctx context.Context, input *lambda.ListProvisionedConcurrencyConfigsInput, opts ...func(*lambda.Options)) (*lambda.ListProvisionedConcurrencyConfigsOutput, error)
	ListTags(ctx context.Context, input *lambda.ListTagsInput, opts ...func(*lambda.Options)) (*lambda.ListTagsOutput, error)
}

// FunctionCollector builds one dataset record per Lambda function in a region
// from the function configuration plus CloudWatch usage metrics.
type FunctionCollector struct {
	client  LambdaAPI
	metrics *MetricsFetcher
	region  string
}

// NewFunctionCollector creates a collector for one region.
func NewFunctionCollector(client LambdaAPI, metrics *MetricsFetcher, region string) *FunctionCollector {
	return &FunctionCollector{client: client, metrics: metrics, region: region}
}

// Collect lists every function in the region and assembles its monthly
// profile. Metric sums over the lookback window are scaled to a 30-day month.
// ColdStartRate is approximated from provisioned-concurrency spillover
// invocations; DataTransferGB is not observable per function and stays 0.
func (c *FunctionCollector) Collect(ctx context.Context, cfg Config) (*Result, error) {
	if cfg.LookbackDays <= 0 {
		cfg.LookbackDays = daysPerMonth
	}

	functions, err := c.listFunctions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list Lambda functions: %w", err)
	}

	result := &Result{FunctionsScanned: len(functions)}
	if len(functions) == 0 {
		return result, nil
	}

	var names []string
	fnMap := make(map[string]lambdatypes.FunctionConfiguration, len(functions))
	tagMap := make(map[string]map[string]string, len(functions))
	for _, fn := range functions {
		name := deref(fn.FunctionName)
		tags := c.functionTags(ctx, deref(fn.FunctionArn))
		if cfg.Exclude.ShouldExclude(name, tags) {
			continue
		}
		names = append(names, name)
		fnMap[name] = fn
		tagMap[name] = tags
	}

	if len(names) == 0 {
		return result, nil
	}

	invocations, err := c.metrics.FetchSum(ctx, "Invocations", names, cfg.LookbackDays)
	if err != nil {
		return nil, fmt.Errorf("fetch invocation metrics: %w", err)
	}
	durations, err := c.metrics.FetchAverage(ctx, "Duration", names, cfg.LookbackDays)
	if err != nil {
		return nil, fmt.Errorf("fetch duration metrics: %w", err)
	}
	spillovers, err := c.metrics.FetchSum(ctx, "ProvisionedConcurrencySpilloverInvocations", names, cfg.LookbackDays)
	if err != nil {
		slog.Warn("Failed to fetch spillover metrics", "region", c.region, "error", err)
		spillovers = nil
	}

	scale := float64(daysPerMonth) / float64(cfg.LookbackDays)
	for _, name := range names {
		fn := fnMap[name]

		memoryMB := 128.0
		if fn.MemorySize != nil {
			memoryMB = float64(*fn.MemorySize)
		}
		invPerMonth := invocations[name] * scale
		durationMs := durations[name]
		pc := c.provisionedConcurrency(ctx, name)

		coldStartRate := 0.0
		if pc > 0 && invocations[name] > 0 {
			coldStartRate = spillovers[name] / invocations[name] * 100
		}

		gbSeconds := invPerMonth * (durationMs / 1000) * (memoryMB / 1024)
		cost := pricing.MonthlyCost(c.region, gbSeconds, invPerMonth, pc, memoryMB)
		dataTransfer := 0.0

		env := tagMap[name][environmentTag]
		if env == "" {
			env = defaultEnvironment
		}

		result.Records = append(result.Records, dataset.Record{
			FunctionName:           name,
			Environment:            env,
			InvocationsPerMonth:    &invPerMonth,
			AvgDurationMs:          &durationMs,
			MemoryMB:               &memoryMB,
			ColdStartRate:          &coldStartRate,
			ProvisionedConcurrency: &pc,
			GBSeconds:              &gbSeconds,
			DataTransferGB:         &dataTransfer,
			CostUSD:                &cost,
		})
	}

	return result, nil
}

func (c *FunctionCollector) listFunctions(ctx context.Context) ([]lambdatypes.FunctionConfiguration, error) {
	var functions []lambdatypes.FunctionConfiguration
	paginator := lambda.NewListFunctionsPaginator(c.client, &lambda.ListFunctionsInput{})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		functions = append(functions, page.Functions...)
	}
	return functions, nil
}

// functionTags fetches a function's tags; tag lookup failures degrade to an
// untagged function rather than failing the region.
func (c *FunctionCollector) functionTags(ctx context.Context, arn string) map[string]string {
	if arn == "" {
		return nil
	}
	out, err := c.client.ListTags(ctx, &lambda.ListTagsInput{Resource: &arn})
	if err != nil {
		slog.Debug("Failed to list function tags", "arn", arn, "error", err)
		return nil
	}
	return out.Tags
}

// provisionedConcurrency sums the requested provisioned concurrency across a
// function's qualifiers. Lookup failures count as zero.
func (c *FunctionCollector) provisionedConcurrency(ctx context.Context, name string) float64 {
	var total float64
	paginator := lambda.NewListProvisionedConcurrencyConfigsPaginator(c.client, &lambda.ListProvisionedConcurrencyConfigsInput{
		FunctionName: &name,
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			slog.Debug("Failed to list provisioned concurrency", "function", name, "error", err)
			return total
		}
		for _, pcc := range page.ProvisionedConcurrencyConfigs {
			if pcc.RequestedProvisionedConcurrentExecutions != nil {
				total += float64(*pcc.RequestedProvisionedConcurrentExecutions)
			}
		}
	}
	return total
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
