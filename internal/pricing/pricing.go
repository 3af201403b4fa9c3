// Package pricing provides Lambda on-demand rates for cost estimation during
// collection. Rates are embedded at build time and keyed by region with a
// us-east-1 fallback.
package pricing

import (
	_ "embed"
	"encoding/json"
	"log/slog"
)

//go:embed data.json
var pricingData []byte

const secondsPerMonth = 730 * 3600

// pricingDB holds the parsed rates keyed by rate name, then region.
var pricingDB map[string]map[string]float64

func init() {
	if err := json.Unmarshal(pricingData, &pricingDB); err != nil {
		slog.Warn("Failed to parse embedded pricing data", "error", err)
		pricingDB = make(map[string]map[string]float64)
	}
}

// lookup returns the rate for a rate name and region, falling back to
// us-east-1. Returns 0 and false if not found at all.
func lookup(rate, region string) (float64, bool) {
	regions, ok := pricingDB[rate]
	if !ok {
		return 0, false
	}
	price, ok := regions[region]
	if !ok {
		price, ok = regions["us-east-1"]
		if !ok {
			return 0, false
		}
	}
	return price, true
}

// GBSecondRate returns the on-demand compute price per GB-second.
func GBSecondRate(region string) float64 {
	r, _ := lookup("gb_second", region)
	return r
}

// RequestRate returns the price per single invocation request.
func RequestRate(region string) float64 {
	r, _ := lookup("request", region)
	return r
}

// ProvisionedGBSecondRate returns the standing price per GB-second of
// provisioned concurrency.
func ProvisionedGBSecondRate(region string) float64 {
	r, _ := lookup("provisioned_gb_second", region)
	return r
}

// MonthlyCost estimates a function's monthly bill from its usage profile:
// on-demand compute, request charges, and the standing provisioned
// concurrency charge for the whole month.
func MonthlyCost(region string, gbSeconds, invocations, provisionedConcurrency, memoryMB float64) float64 {
	cost := gbSeconds*GBSecondRate(region) + invocations*RequestRate(region)
	if provisionedConcurrency > 0 {
		memGB := memoryMB / 1024
		cost += provisionedConcurrency * memGB * float64(secondsPerMonth) * ProvisionedGBSecondRate(region)
	}
	return cost
}
