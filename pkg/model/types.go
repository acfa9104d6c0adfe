package model

import "time"

// DateLayout is the calendar-date format used throughout the engine.
const DateLayout = "2006-01-02"

// UsageRecord represents one day of usage for a provider/model pair.
// Records are produced by upstream collectors and consumed read-only;
// optional numeric fields default to zero.
type UsageRecord struct {
	ID                 string  `json:"id,omitempty" db:"id"`
	Date               string  `json:"date" db:"date"` // YYYY-MM-DD
	Provider           string  `json:"provider" db:"provider"`
	Model              string  `json:"model" db:"model"`
	InputTokens        int64   `json:"input_tokens" db:"input_tokens"`
	OutputTokens       int64   `json:"output_tokens" db:"output_tokens"`
	CachedTokens       int64   `json:"cached_tokens,omitempty" db:"cached_tokens"`
	RequestCount       int64   `json:"request_count" db:"request_count"`
	SuccessfulRequests int64   `json:"successful_requests,omitempty" db:"successful_requests"`
	FailedRequests     int64   `json:"failed_requests,omitempty" db:"failed_requests"`
	AvgLatencyMs       float64 `json:"avg_latency_ms,omitempty" db:"avg_latency_ms"`
	AvgTTFTMs          float64 `json:"avg_ttft_ms,omitempty" db:"avg_ttft_ms"`
	RateLimitHits      int64   `json:"rate_limit_hits,omitempty" db:"rate_limit_hits"`
	TotalCost          float64 `json:"total_cost,omitempty" db:"total_cost"`
	Currency           string  `json:"currency,omitempty" db:"currency"`
}

// TotalTokens returns input plus output tokens for the record.
func (r UsageRecord) TotalTokens() int64 {
	return r.InputTokens + r.OutputTokens
}

// Bucket is one group produced by an aggregation pass.
// Percentage is relative to the grand total across all buckets of the
// same call, computed before any caller-side truncation.
type Bucket struct {
	Key          string  `json:"key"`
	TotalTokens  int64   `json:"total_tokens"`
	InputTokens  int64   `json:"input_tokens"`
	OutputTokens int64   `json:"output_tokens"`
	RequestCount int64   `json:"request_count"`
	Percentage   float64 `json:"percentage"`
	Cost         float64 `json:"cost"`
}

// TimeSeriesPoint holds per-date totals plus the token split by
// provider and model observed on that date.
type TimeSeriesPoint struct {
	Date         string           `json:"date"`
	TotalTokens  int64            `json:"total_tokens"`
	RequestCount int64            `json:"request_count"`
	Cost         float64          `json:"cost"`
	ByProvider   map[string]int64 `json:"by_provider"`
	ByModel      map[string]int64 `json:"by_model"`
}

// TrendDirection classifies usage growth over the analyzed window.
type TrendDirection string

const (
	TrendIncreasing TrendDirection = "increasing"
	TrendDecreasing TrendDirection = "decreasing"
	TrendStable     TrendDirection = "stable"
)

// Forecast holds daily/monthly/annual projections for token usage.
type Forecast struct {
	DailyRate          float64        `json:"daily_rate"`
	MonthlyForecast    float64        `json:"monthly_forecast"`
	AnnualForecast     float64        `json:"annual_forecast"`
	Direction          TrendDirection `json:"direction"`
	DailyGrowthRatePct float64        `json:"daily_growth_rate_pct"`
	DaysAnalyzed       int            `json:"days_analyzed"`
}

// UsageSummary holds aggregated statistics for a record set.
type UsageSummary struct {
	TotalTokens       int64     `json:"total_tokens"`
	TotalInputTokens  int64     `json:"total_input_tokens"`
	TotalOutputTokens int64     `json:"total_output_tokens"`
	TotalCachedTokens int64     `json:"total_cached_tokens"`
	TotalRequests     int64     `json:"total_requests"`
	SuccessRatePct    float64   `json:"success_rate_pct"`
	AvgLatencyMs      float64   `json:"avg_latency_ms"`
	AvgTTFTMs         float64   `json:"avg_ttft_ms"`
	RateLimitHits     int64     `json:"rate_limit_hits"`
	TotalCost         float64   `json:"total_cost"`
	Currency          string    `json:"currency"`
	StartDate         string    `json:"start_date"`
	EndDate           string    `json:"end_date"`
	DaysCovered       int       `json:"days_covered"`
	GeneratedAt       time.Time `json:"generated_at"`
}

// BreakdownItem is one ranked row in a dimension-grouped summary.
type BreakdownItem struct {
	Rank        int     `json:"rank"`
	Key         string  `json:"key"`
	Name        string  `json:"name"`
	Color       string  `json:"color"`
	TotalTokens int64   `json:"total_tokens"`
	Percentage  float64 `json:"percentage"`
	Cost        float64 `json:"cost"`
}

// TableRow is a Bucket projection with per-row forecast fields.
type TableRow struct {
	Key             string  `json:"key"`
	Name            string  `json:"name"`
	TotalTokens     int64   `json:"total_tokens"`
	RequestCount    int64   `json:"request_count"`
	Percentage      float64 `json:"percentage"`
	Cost            float64 `json:"cost"`
	DailyRate       float64 `json:"daily_rate"`
	MonthlyForecast float64 `json:"monthly_forecast"`
}

// RangeFilter selects records by provider, model and date range.
// Zero values match everything.
type RangeFilter struct {
	Provider  string `json:"provider,omitempty"`
	Model     string `json:"model,omitempty"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
}

// MonthBounds returns the first day of t's month and the first day of
// the next month, both as YYYY-MM-DD strings.
func MonthBounds(t time.Time) (start, end string) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first.Format(DateLayout), first.AddDate(0, 1, 0).Format(DateLayout)
}
