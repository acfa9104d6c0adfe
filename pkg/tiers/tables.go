package tiers

// Built-in tier tables used when no tier files are configured. Values
// track published provider pricing pages; treat them as defaults, not
// as a source of truth.

// DefaultVolumeTiers maps monthly spend (USD) to volume discounts.
var DefaultVolumeTiers = []VolumeTier{
	{Band: Band{Provider: "openai", Name: "tier-1", Order: 1, Min: 0, Max: 1_000, Status: StatusActive}, DiscountPct: 0},
	{Band: Band{Provider: "openai", Name: "tier-2", Order: 2, Min: 1_000, Max: 5_000, Status: StatusActive}, DiscountPct: 5},
	{Band: Band{Provider: "openai", Name: "tier-3", Order: 3, Min: 5_000, Max: 25_000, Status: StatusActive}, DiscountPct: 10},
	{Band: Band{Provider: "openai", Name: "tier-4", Order: 4, Min: 25_000, Max: 100_000, Status: StatusActive}, DiscountPct: 15},
	{Band: Band{Provider: "openai", Name: "tier-5", Order: 5, Min: 100_000, Max: 0, Status: StatusActive}, DiscountPct: 20},

	{Band: Band{Provider: "anthropic", Name: "build", Order: 1, Min: 0, Max: 5_000, Status: StatusActive}, DiscountPct: 0},
	{Band: Band{Provider: "anthropic", Name: "scale", Order: 2, Min: 5_000, Max: 50_000, Status: StatusActive}, DiscountPct: 10},
	{Band: Band{Provider: "anthropic", Name: "enterprise", Order: 3, Min: 50_000, Max: 0, Status: StatusActive}, DiscountPct: 18},
}

// DefaultCommitmentTiers holds reserved-capacity plans keyed by
// committed monthly spend.
var DefaultCommitmentTiers = []CommitmentTier{
	{
		Band:                Band{Provider: "azure", Name: "gpt-4-ptu", Order: 1, Min: 0, Max: 0, Status: StatusActive},
		UnitType:            "PTU",
		MinUnits:            50,
		MaxUnits:            1_000,
		MonthlyRatePerUnit:  4_380,
		TokensPerUnitMinute: 2_500,
		VolumeDiscountPct:   0,
		CommitmentRequired:  "monthly",
	},
	{
		Band:                Band{Provider: "google", Name: "gemini-gsu", Order: 1, Min: 0, Max: 0, Status: StatusActive},
		UnitType:            "GSU",
		MinUnits:            1,
		MaxUnits:            640,
		HourlyRatePerUnit:   0.35,
		TokensPerUnitMinute: 3_360,
		CommitmentRequired:  "weekly",
	},
}

// DefaultSupportTiers maps monthly spend to support plans.
var DefaultSupportTiers = []SupportTier{
	{Band: Band{Provider: "openai", Name: "developer", Order: 1, Min: 0, Max: 5_000, Status: StatusActive}, MonthlyBaseCost: 0},
	{Band: Band{Provider: "openai", Name: "business", Order: 2, Min: 5_000, Max: 100_000, Status: StatusActive}, MonthlyBaseCost: 1_000, SpendPct: 10},
	{Band: Band{Provider: "openai", Name: "enterprise", Order: 3, Min: 100_000, Max: 0, Status: StatusActive}, MonthlyBaseCost: 15_000, SpendPct: 3},
}
