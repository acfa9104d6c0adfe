package forecast_test

import (
	"testing"
	"time"

	"github.com/ogulcanaydogan/llm-cost-insights/pkg/forecast"
	"github.com/ogulcanaydogan/llm-cost-insights/pkg/model"
	"github.com/stretchr/testify/assert"
)

func augustClock() *forecast.FakeClock {
	// August has 31 days; the 10th gives a clean day-of-month default.
	return forecast.NewFakeClock(time.Date(2026, 8, 10, 12, 0, 0, 0, time.UTC))
}

func TestDailyRate(t *testing.T) {
	e := forecast.NewEngine(augustClock())

	assert.Equal(t, 30.0, e.DailyRate(300, 10))
	assert.Equal(t, 300.0, e.DailyRate(300, 1))
	// Negative day counts clamp to 1.
	assert.Equal(t, 300.0, e.DailyRate(300, -5))
}

func TestDailyRate_DefaultsToDayOfMonth(t *testing.T) {
	e := forecast.NewEngine(augustClock())
	// 2026-08-10 → 10 days elapsed.
	assert.Equal(t, 30.0, e.DailyRate(300, 0))
}

func TestMonthlyAndAnnualForecast(t *testing.T) {
	m := forecast.MonthlyForecast(30, 30)
	assert.Equal(t, 900.0, m)
	assert.Equal(t, 10800.0, forecast.AnnualForecast(m))
}

func TestAnnualForecast_ScaleLaw(t *testing.T) {
	for _, m := range []float64{0, 1, 99.4, 1234, 1e6} {
		assert.Equal(t, float64(int64(m*12+0.5)), forecast.AnnualForecast(m))
	}
}

func TestPercentile(t *testing.T) {
	values := []float64{15, 20, 35, 40, 50}

	tests := []struct {
		p    float64
		want float64
	}{
		{0, 15},
		{30, 20},
		{40, 20},
		{50, 35},
		{100, 50},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, forecast.Percentile(values, tt.p), "p=%v", tt.p)
	}
}

func TestPercentile_Empty(t *testing.T) {
	assert.Equal(t, 0.0, forecast.Percentile(nil, 50))
}

func TestPercentile_DoesNotMutateInput(t *testing.T) {
	values := []float64{9, 1, 5}
	forecast.Percentile(values, 50)
	assert.Equal(t, []float64{9, 1, 5}, values)
}

func TestTrend_Increasing(t *testing.T) {
	e := forecast.NewEngine(augustClock())
	records := []model.UsageRecord{
		{Date: "2026-08-01", Provider: "openai", InputTokens: 100},
		{Date: "2026-08-02", Provider: "openai", InputTokens: 110},
		{Date: "2026-08-03", Provider: "openai", InputTokens: 121},
	}

	f := e.Trend(records)
	assert.Equal(t, model.TrendIncreasing, f.Direction)
	assert.Equal(t, 3, f.DaysAnalyzed)
	assert.InDelta(t, 10.0, f.DailyGrowthRatePct, 0.01)

	avgDaily := (100.0 + 110.0 + 121.0) / 3
	assert.InDelta(t, avgDaily, f.DailyRate, 1e-9)
	assert.Equal(t, forecast.MonthlyForecast(avgDaily, 31), f.MonthlyForecast)
	assert.Equal(t, forecast.AnnualForecast(f.MonthlyForecast), f.AnnualForecast)
}

func TestTrend_Decreasing(t *testing.T) {
	e := forecast.NewEngine(augustClock())
	records := []model.UsageRecord{
		{Date: "2026-08-01", Provider: "openai", InputTokens: 200},
		{Date: "2026-08-02", Provider: "openai", InputTokens: 150},
		{Date: "2026-08-03", Provider: "openai", InputTokens: 100},
	}

	f := e.Trend(records)
	assert.Equal(t, model.TrendDecreasing, f.Direction)
}

func TestTrend_StableWithinThreshold(t *testing.T) {
	e := forecast.NewEngine(augustClock())
	records := []model.UsageRecord{
		{Date: "2026-08-01", Provider: "openai", InputTokens: 1000},
		{Date: "2026-08-02", Provider: "openai", InputTokens: 1010},
	}

	f := e.Trend(records)
	assert.Equal(t, model.TrendStable, f.Direction)
}

func TestTrend_SkipsZeroDays(t *testing.T) {
	e := forecast.NewEngine(augustClock())
	records := []model.UsageRecord{
		{Date: "2026-08-01", Provider: "openai", RequestCount: 5}, // zero tokens
		{Date: "2026-08-02", Provider: "openai", InputTokens: 500},
		{Date: "2026-08-03", Provider: "openai", InputTokens: 500},
	}

	// The 0→500 pair is skipped; the remaining change is 0.
	f := e.Trend(records)
	assert.Equal(t, model.TrendStable, f.Direction)
	assert.Equal(t, 0.0, f.DailyGrowthRatePct)
}

func TestTrend_Degenerate(t *testing.T) {
	e := forecast.NewEngine(augustClock())

	f := e.Trend(nil)
	assert.Equal(t, model.TrendStable, f.Direction)
	assert.Equal(t, 0.0, f.MonthlyForecast)
	assert.Equal(t, 0, f.DaysAnalyzed)

	f = e.Trend([]model.UsageRecord{{Date: "2026-08-01", Provider: "openai", InputTokens: 10}})
	assert.Equal(t, model.TrendStable, f.Direction)
	assert.Equal(t, 0.0, f.AnnualForecast)
	assert.Equal(t, 1, f.DaysAnalyzed)
}

func TestSnapshot_RefreshesAfterTTL(t *testing.T) {
	clock := forecast.NewFakeClock(time.Date(2026, 8, 10, 12, 0, 0, 0, time.UTC))
	e := forecast.NewEngine(clock)

	assert.Equal(t, 10, e.DayOfMonth())
	assert.Equal(t, 31, e.DaysInMonth())

	// Within the TTL the cached snapshot is served.
	clock.Advance(30 * time.Second)
	assert.Equal(t, 10, e.DayOfMonth())

	// Past the TTL the snapshot is recomputed.
	clock.Set(time.Date(2026, 9, 2, 12, 30, 0, 0, time.UTC))
	assert.Equal(t, 2, e.DayOfMonth())
	assert.Equal(t, 30, e.DaysInMonth())
}
