package tiers

import (
	"sort"
	"strings"
)

// Hours in a billing month, approximating 365*24/12. Used when a
// commitment tier only publishes an hourly rate.
const hoursPerMonth = 730

// Resolve returns the first tier (by ascending Order) whose band
// contains value for the given provider. The boolean reports whether a
// tier was found; callers must branch on absence explicitly. Boundary
// values belong to the tier whose Min equals the value, per the
// half-open [Min, Max) convention.
func Resolve[T Tabled](provider string, value float64, table []T) (T, bool) {
	matches := make([]T, 0, len(table))
	for _, t := range table {
		if strings.EqualFold(t.band().Provider, provider) {
			matches = append(matches, t)
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].band().Order < matches[j].band().Order
	})

	for _, t := range matches {
		if t.band().Contains(value) {
			return t, true
		}
	}
	var zero T
	return zero, false
}

// DiscountedCost applies the tier's volume discount to a base cost.
func DiscountedCost(baseCost float64, tier VolumeTier) float64 {
	return baseCost * (1 - tier.DiscountPct/100)
}

// clampUnits forces requested units into the tier's allowed range.
// Out-of-range requests are adjusted silently, not rejected.
func clampUnits(tier CommitmentTier, units float64) float64 {
	if units < tier.MinUnits {
		return tier.MinUnits
	}
	if tier.MaxUnits > 0 && units > tier.MaxUnits {
		return tier.MaxUnits
	}
	return units
}

// CommitmentCost computes the monthly cost of a reserved-capacity
// commitment. Requested units clamp into [MinUnits, MaxUnits]; the
// monthly rate wins over the hourly rate when both are set; any volume
// discount applies last.
func CommitmentCost(tier CommitmentTier, requestedUnits float64) float64 {
	units := clampUnits(tier, requestedUnits)

	rate := tier.MonthlyRatePerUnit
	if rate == 0 {
		rate = tier.HourlyRatePerUnit * hoursPerMonth
	}

	cost := units * rate
	if tier.VolumeDiscountPct > 0 {
		cost *= 1 - tier.VolumeDiscountPct/100
	}
	return cost
}

// TokenCapacity returns the tokens-per-minute throughput for the given
// unit allocation, after the same clamp CommitmentCost applies.
// Returns 0 when the tier publishes no per-unit throughput.
func TokenCapacity(tier CommitmentTier, requestedUnits float64) float64 {
	if tier.TokensPerUnitMinute == 0 {
		return 0
	}
	return clampUnits(tier, requestedUnits) * tier.TokensPerUnitMinute
}

// SupportCost computes the monthly support cost for a spend level:
// percentage-of-spend plans charge max(base, spend*pct/100), flat
// plans charge the base cost.
func SupportCost(tier SupportTier, monthlySpend float64) float64 {
	if tier.SpendPct == 0 {
		return tier.MonthlyBaseCost
	}
	pctCost := monthlySpend * tier.SpendPct / 100
	if pctCost > tier.MonthlyBaseCost {
		return pctCost
	}
	return tier.MonthlyBaseCost
}
