package collect

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
)

// Client resolves AWS credentials once and hands out the region-bound service
// clients the collector needs.
type Client struct {
	cfg aws.Config
}

// NewClient resolves AWS credentials for the given profile. An empty profile
// uses the default credential chain; an empty region defers to config/env.
func NewClient(ctx context.Context, profile, region string) (*Client, error) {
	var opts []func(*awsconfig.LoadOptions) error

	if profile != "" {
		opts = append(opts, awsconfig.WithSharedConfigProfile(profile))
	}
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	return &Client{cfg: cfg}, nil
}

// Region returns the default region resolved from the profile or environment.
// Empty when none is configured.
func (c *Client) Region() string {
	return c.cfg.Region
}

// Lambda returns a Lambda client bound to the given region.
func (c *Client) Lambda(region string) LambdaAPI {
	return lambda.NewFromConfig(c.regionConfig(region))
}

// CloudWatch returns a CloudWatch client bound to the given region.
func (c *Client) CloudWatch(region string) CloudWatchAPI {
	return cloudwatch.NewFromConfig(c.regionConfig(region))
}

func (c *Client) regionConfig(region string) aws.Config {
	cfg := c.cfg.Copy()
	cfg.Region = region
	return cfg
}

// ListEnabledRegions returns every region enabled for the account, the
// candidate set for a full collection run.
func (c *Client) ListEnabledRegions(ctx context.Context) ([]string, error) {
	svc := ec2.NewFromConfig(c.cfg)
	out, err := svc.DescribeRegions(ctx, &ec2.DescribeRegionsInput{
		AllRegions: aws.Bool(false),
	})
	if err != nil {
		return nil, fmt.Errorf("describe regions: %w", err)
	}

	regions := make([]string, 0, len(out.Regions))
	for _, r := range out.Regions {
		if r.RegionName != nil {
			regions = append(regions, *r.RegionName)
		}
	}

	slog.Debug("Discovered enabled regions", "count", len(regions))
	return regions, nil
}
