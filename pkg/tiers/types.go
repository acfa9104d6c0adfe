// Package tiers resolves the pricing tier that applies to a spend or
// consumption level and computes discounted or capacity-adjusted costs.
package tiers

// TierStatus marks whether a tier is currently offered.
type TierStatus string

const (
	StatusActive     TierStatus = "active"
	StatusDeprecated TierStatus = "deprecated"
)

// Band is the threshold range shared by every tier flavor. Ranges are
// half-open [Min, Max); Max 0 marks the unbounded top tier. Bands for
// a provider are totally ordered by Order with contiguous,
// non-overlapping ranges.
type Band struct {
	Provider string     `yaml:"provider" json:"provider"`
	Name     string     `yaml:"name" json:"name"`
	Order    int        `yaml:"order" json:"order"`
	Min      float64    `yaml:"min" json:"min"`
	Max      float64    `yaml:"max" json:"max"`
	Status   TierStatus `yaml:"status,omitempty" json:"status,omitempty"`
}

// Contains reports whether value falls inside the band's range.
func (b Band) Contains(value float64) bool {
	return value >= b.Min && (b.Max == 0 || value < b.Max)
}

// VolumeTier is a discount tier selected by cumulative spend or token
// volume.
type VolumeTier struct {
	Band        `yaml:",inline"`
	DiscountPct float64 `yaml:"discount_pct" json:"discount_pct"`
}

// CommitmentTier is a reserved-capacity plan priced per allocated unit
// (PTU, GSU) rather than per consumed token.
type CommitmentTier struct {
	Band                `yaml:",inline"`
	UnitType            string  `yaml:"unit_type" json:"unit_type"` // "PTU", "GSU"
	MinUnits            float64 `yaml:"min_units" json:"min_units"`
	MaxUnits            float64 `yaml:"max_units" json:"max_units"`
	MonthlyRatePerUnit  float64 `yaml:"monthly_rate_per_unit,omitempty" json:"monthly_rate_per_unit,omitempty"`
	HourlyRatePerUnit   float64 `yaml:"hourly_rate_per_unit,omitempty" json:"hourly_rate_per_unit,omitempty"`
	TokensPerUnitMinute float64 `yaml:"tokens_per_unit_minute,omitempty" json:"tokens_per_unit_minute,omitempty"`
	VolumeDiscountPct   float64 `yaml:"volume_discount_pct,omitempty" json:"volume_discount_pct,omitempty"`
	CommitmentRequired  string  `yaml:"commitment_required,omitempty" json:"commitment_required,omitempty"`
}

// SupportTier is a support plan priced flat or as a percentage of
// monthly spend, whichever is greater.
type SupportTier struct {
	Band            `yaml:",inline"`
	MonthlyBaseCost float64 `yaml:"monthly_base_cost" json:"monthly_base_cost"`
	SpendPct        float64 `yaml:"spend_pct,omitempty" json:"spend_pct,omitempty"`
}

// Tabled is implemented by all tier flavors so resolution can be
// written once.
type Tabled interface {
	VolumeTier | CommitmentTier | SupportTier
	band() Band
}

func (t VolumeTier) band() Band     { return t.Band }
func (t CommitmentTier) band() Band { return t.Band }
func (t SupportTier) band() Band    { return t.Band }
