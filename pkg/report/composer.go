// Package report assembles the summary, breakdown and table objects
// consumed by presentation code. It is a pure mapping layer over the
// aggregator, forecast engine and currency converter.
package report

import (
	"context"
	"log/slog"
	"math"

	"github.com/ogulcanaydogan/llm-cost-insights/pkg/currency"
	"github.com/ogulcanaydogan/llm-cost-insights/pkg/forecast"
	"github.com/ogulcanaydogan/llm-cost-insights/pkg/model"
)

// Composer builds display-ready structures from raw usage records.
type Composer struct {
	engine    *forecast.Engine
	converter *currency.Converter
	display   DisplayConfig
	logger    *slog.Logger
}

// NewComposer wires a composer. Nil display falls back to
// DefaultDisplay; nil logger to slog.Default.
func NewComposer(engine *forecast.Engine, converter *currency.Converter, display DisplayConfig, logger *slog.Logger) *Composer {
	if display == nil {
		display = DefaultDisplay
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Composer{
		engine:    engine,
		converter: converter,
		display:   display,
		logger:    logger,
	}
}

// Summarize computes totals, success rate and latency averages for a
// record set. Fail-soft: malformed numerics contribute zero, and an
// empty input yields a zeroed summary rather than an error, so a bad
// record set cannot take down an entire dashboard computation.
func (c *Composer) Summarize(ctx context.Context, records []model.UsageRecord, displayCurrency string) model.UsageSummary {
	summary := model.UsageSummary{
		Currency:    "USD",
		GeneratedAt: c.engine.Now(),
	}

	var latencyWeight, latencySum float64
	var ttftWeight, ttftSum float64
	var successTracked, successTotal int64

	for _, r := range records {
		summary.TotalInputTokens += r.InputTokens
		summary.TotalOutputTokens += r.OutputTokens
		summary.TotalCachedTokens += r.CachedTokens
		summary.TotalRequests += r.RequestCount
		summary.RateLimitHits += r.RateLimitHits
		summary.TotalCost += r.TotalCost

		if r.SuccessfulRequests > 0 || r.FailedRequests > 0 {
			successTracked += r.SuccessfulRequests
			successTotal += r.SuccessfulRequests + r.FailedRequests
		}

		// Request-weighted averages; records without counts weigh 1.
		weight := float64(r.RequestCount)
		if weight <= 0 {
			weight = 1
		}
		if r.AvgLatencyMs > 0 {
			latencySum += r.AvgLatencyMs * weight
			latencyWeight += weight
		}
		if r.AvgTTFTMs > 0 {
			ttftSum += r.AvgTTFTMs * weight
			ttftWeight += weight
		}

		if summary.StartDate == "" || r.Date < summary.StartDate {
			summary.StartDate = r.Date
		}
		if r.Date > summary.EndDate {
			summary.EndDate = r.Date
		}
	}

	summary.TotalTokens = summary.TotalInputTokens + summary.TotalOutputTokens
	if successTotal > 0 {
		summary.SuccessRatePct = math.Round(float64(successTracked)/float64(successTotal)*10000) / 100
	}
	if latencyWeight > 0 {
		summary.AvgLatencyMs = latencySum / latencyWeight
	}
	if ttftWeight > 0 {
		summary.AvgTTFTMs = ttftSum / ttftWeight
	}

	seen := make(map[string]struct{})
	for _, r := range records {
		seen[r.Date] = struct{}{}
	}
	summary.DaysCovered = len(seen)

	if displayCurrency != "" && displayCurrency != "USD" && c.converter != nil {
		conv := c.converter.Convert(ctx, summary.TotalCost, "USD", displayCurrency)
		summary.TotalCost = conv.Amount
		if conv.Status == currency.StatusConverted {
			summary.Currency = conv.To
		} else {
			c.logger.Warn("summary cost left in USD", "requested", displayCurrency, "reason", conv.Reason)
		}
	}

	return summary
}

// Breakdown ranks buckets into display items, truncated to maxItems
// (0 = no limit). Percentages were computed by the aggregator over the
// full bucket set before this truncation, so dropped rows still count
// toward the remaining rows' shares.
func (c *Composer) Breakdown(buckets []model.Bucket, maxItems int) []model.BreakdownItem {
	items := make([]model.BreakdownItem, 0, len(buckets))
	for i, b := range buckets {
		if maxItems > 0 && i >= maxItems {
			break
		}
		meta := c.display.Lookup(b.Key)
		items = append(items, model.BreakdownItem{
			Rank:        i + 1,
			Key:         b.Key,
			Name:        meta.Name,
			Color:       meta.Color,
			TotalTokens: b.TotalTokens,
			Percentage:  b.Percentage,
			Cost:        b.Cost,
		})
	}
	return items
}

// TableRows projects buckets into table rows with per-row daily rate
// and monthly forecast. daysElapsed 0 defaults to the engine's current
// day of month.
func (c *Composer) TableRows(buckets []model.Bucket, daysElapsed int) []model.TableRow {
	daysInMonth := c.engine.DaysInMonth()

	rows := make([]model.TableRow, 0, len(buckets))
	for _, b := range buckets {
		rate := c.engine.DailyRate(float64(b.TotalTokens), daysElapsed)
		rows = append(rows, model.TableRow{
			Key:             b.Key,
			Name:            c.display.Lookup(b.Key).Name,
			TotalTokens:     b.TotalTokens,
			RequestCount:    b.RequestCount,
			Percentage:      b.Percentage,
			Cost:            b.Cost,
			DailyRate:       rate,
			MonthlyForecast: forecast.MonthlyForecast(rate, daysInMonth),
		})
	}
	return rows
}
