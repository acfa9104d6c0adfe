package report_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/ogulcanaydogan/llm-cost-insights/pkg/aggregate"
	"github.com/ogulcanaydogan/llm-cost-insights/pkg/currency"
	"github.com/ogulcanaydogan/llm-cost-insights/pkg/forecast"
	"github.com/ogulcanaydogan/llm-cost-insights/pkg/model"
	"github.com/ogulcanaydogan/llm-cost-insights/pkg/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newComposer(t *testing.T) *report.Composer {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clock := forecast.NewFakeClock(time.Date(2026, 8, 10, 12, 0, 0, 0, time.UTC))
	return report.NewComposer(
		forecast.NewEngine(clock),
		currency.NewConverter(nil, logger),
		nil,
		logger,
	)
}

func sampleRecords() []model.UsageRecord {
	return []model.UsageRecord{
		{
			Date: "2026-08-01", Provider: "openai", Model: "gpt-4o",
			InputTokens: 1000, OutputTokens: 200, CachedTokens: 50,
			RequestCount: 10, SuccessfulRequests: 9, FailedRequests: 1,
			AvgLatencyMs: 200, AvgTTFTMs: 80, TotalCost: 1.5,
		},
		{
			Date: "2026-08-02", Provider: "anthropic", Model: "claude-sonnet",
			InputTokens: 400, OutputTokens: 100,
			RequestCount: 30, SuccessfulRequests: 30,
			AvgLatencyMs: 400, AvgTTFTMs: 120, TotalCost: 0.5,
		},
	}
}

func TestSummarize(t *testing.T) {
	c := newComposer(t)
	s := c.Summarize(context.Background(), sampleRecords(), "")

	assert.Equal(t, int64(1700), s.TotalTokens)
	assert.Equal(t, int64(1400), s.TotalInputTokens)
	assert.Equal(t, int64(300), s.TotalOutputTokens)
	assert.Equal(t, int64(50), s.TotalCachedTokens)
	assert.Equal(t, int64(40), s.TotalRequests)
	assert.Equal(t, 2.0, s.TotalCost)
	assert.Equal(t, "USD", s.Currency)
	assert.Equal(t, "2026-08-01", s.StartDate)
	assert.Equal(t, "2026-08-02", s.EndDate)
	assert.Equal(t, 2, s.DaysCovered)

	// 39 of 40 tracked requests succeeded.
	assert.Equal(t, 97.5, s.SuccessRatePct)
	// Request-weighted latency: (200*10 + 400*30) / 40.
	assert.Equal(t, 350.0, s.AvgLatencyMs)
	assert.Equal(t, 110.0, s.AvgTTFTMs)
}

func TestSummarize_Empty(t *testing.T) {
	c := newComposer(t)
	s := c.Summarize(context.Background(), nil, "")

	assert.Equal(t, int64(0), s.TotalTokens)
	assert.Equal(t, 0.0, s.SuccessRatePct)
	assert.Equal(t, 0, s.DaysCovered)
	assert.Equal(t, "USD", s.Currency)
}

func TestSummarize_CurrencyNormalization(t *testing.T) {
	c := newComposer(t)
	s := c.Summarize(context.Background(), sampleRecords(), "INR")

	assert.Equal(t, "INR", s.Currency)
	assert.Equal(t, 166.24, s.TotalCost) // 2 USD at 83.12
}

func TestSummarize_UnknownCurrencyStaysUSD(t *testing.T) {
	c := newComposer(t)
	s := c.Summarize(context.Background(), sampleRecords(), "XYZ")

	assert.Equal(t, "USD", s.Currency)
	assert.Equal(t, 2.0, s.TotalCost)
}

func TestBreakdown_TruncationKeepsFullSetPercentages(t *testing.T) {
	c := newComposer(t)
	records := []model.UsageRecord{
		{Provider: "openai", InputTokens: 500},
		{Provider: "anthropic", InputTokens: 300},
		{Provider: "google", InputTokens: 150},
		{Provider: "mistral", InputTokens: 50},
	}
	buckets := aggregate.By(aggregate.ByProvider, records)

	items := c.Breakdown(buckets, 2)
	require.Len(t, items, 2)

	assert.Equal(t, 1, items[0].Rank)
	assert.Equal(t, "OpenAI", items[0].Name)
	assert.Equal(t, 50.0, items[0].Percentage)
	assert.Equal(t, 30.0, items[1].Percentage)

	// The truncated rows' share is not redistributed.
	var sum float64
	for _, it := range items {
		sum += it.Percentage
	}
	assert.Less(t, sum, 100.0)
}

func TestBreakdown_UnknownKeyGetsGenericDisplay(t *testing.T) {
	c := newComposer(t)
	buckets := []model.Bucket{{Key: "acme-llm", TotalTokens: 10, Percentage: 100}}

	items := c.Breakdown(buckets, 0)
	require.Len(t, items, 1)
	assert.Equal(t, "acme-llm", items[0].Name)
	assert.NotEmpty(t, items[0].Color)
}

func TestTableRows(t *testing.T) {
	c := newComposer(t)
	buckets := []model.Bucket{
		{Key: "openai", TotalTokens: 300, RequestCount: 12, Percentage: 100, Cost: 3},
	}

	rows := c.TableRows(buckets, 10)
	require.Len(t, rows, 1)

	assert.Equal(t, "OpenAI", rows[0].Name)
	assert.Equal(t, 30.0, rows[0].DailyRate)
	// August has 31 days.
	assert.Equal(t, 930.0, rows[0].MonthlyForecast)
}

func TestTableRows_DefaultDaysElapsed(t *testing.T) {
	c := newComposer(t)
	buckets := []model.Bucket{{Key: "openai", TotalTokens: 300}}

	// Clock is 2026-08-10, so 10 days elapsed.
	rows := c.TableRows(buckets, 0)
	require.Len(t, rows, 1)
	assert.Equal(t, 30.0, rows[0].DailyRate)
}

func TestDisplayConfig_Lookup(t *testing.T) {
	assert.Equal(t, "OpenAI", report.DefaultDisplay.Lookup("OPENAI").Name)

	meta := report.DefaultDisplay.Lookup("unknown-provider")
	assert.Equal(t, "unknown-provider", meta.Name)
	assert.NotEmpty(t, meta.Color)
}
