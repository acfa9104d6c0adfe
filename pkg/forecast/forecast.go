// Package forecast turns month-to-date totals and historical per-date
// series into daily/monthly/annual projections and a trend
// classification.
package forecast

import (
	"math"
	"sort"
	"sync"
	"time"

	"github.com/ogulcanaydogan/llm-cost-insights/pkg/aggregate"
	"github.com/ogulcanaydogan/llm-cost-insights/pkg/model"
)

// Growth-rate thresholds for trend classification. Average adjacent-day
// change within (-2%, +2%) counts as stable.
const (
	growthThreshold  = 0.02
	snapshotTTL      = 60 * time.Second
	defaultDirection = model.TrendStable
)

// dateSnapshot caches the calendar facts derived from the clock so
// repeated projection calls within the TTL agree on "today".
type dateSnapshot struct {
	dayOfMonth  int
	daysInMonth int
	takenAt     time.Time
}

// Engine computes usage projections against an injected clock.
type Engine struct {
	clock Clock

	mu   sync.Mutex
	snap dateSnapshot
}

// NewEngine creates a forecast engine. A nil clock means real time.
func NewEngine(clock Clock) *Engine {
	if clock == nil {
		clock = RealClock{}
	}
	return &Engine{clock: clock}
}

// snapshot returns the cached date info, recomputing it lazily once the
// TTL expires. Concurrent recomputation is tolerated; last write wins.
func (e *Engine) snapshot() dateSnapshot {
	now := e.clock.Now()

	e.mu.Lock()
	defer e.mu.Unlock()
	if now.Sub(e.snap.takenAt) < snapshotTTL && !e.snap.takenAt.IsZero() {
		return e.snap
	}
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	e.snap = dateSnapshot{
		dayOfMonth:  now.Day(),
		daysInMonth: firstOfMonth.AddDate(0, 1, -1).Day(),
		takenAt:     now,
	}
	return e.snap
}

// Now returns the engine clock's current time.
func (e *Engine) Now() time.Time {
	return e.clock.Now()
}

// DaysInMonth returns the day count of the current month.
func (e *Engine) DaysInMonth() int {
	return e.snapshot().daysInMonth
}

// DayOfMonth returns the current day of month.
func (e *Engine) DayOfMonth() int {
	return e.snapshot().dayOfMonth
}

// DailyRate returns the average daily value for a month-to-date total.
// daysElapsed 0 defaults to the current day of month; negative values
// clamp to 1. Returns 0 when the effective day count is 0.
func (e *Engine) DailyRate(mtdTotal float64, daysElapsed int) float64 {
	if daysElapsed == 0 {
		daysElapsed = e.snapshot().dayOfMonth
	}
	if daysElapsed == 0 {
		return 0
	}
	if daysElapsed < 1 {
		daysElapsed = 1
	}
	return mtdTotal / float64(daysElapsed)
}

// MonthlyForecast projects a daily rate across a month.
func MonthlyForecast(dailyRate float64, daysInMonth int) float64 {
	return math.Round(dailyRate * float64(daysInMonth))
}

// AnnualForecast projects a monthly forecast across a year.
func AnnualForecast(monthlyForecast float64) float64 {
	return math.Round(monthlyForecast * 12)
}

// Percentile returns the p-th percentile of values using the
// nearest-rank method (no interpolation). Empty input returns 0.
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	idx := int(math.Ceil(p/100*float64(len(sorted)))) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

// Trend analyzes the per-date token series of the given records and
// returns growth direction plus monthly/annual projections. The
// projections use the average daily token volume across the analyzed
// dates, not the latest day. Fewer than two distinct dates yields a
// stable zero forecast.
func (e *Engine) Trend(records []model.UsageRecord) model.Forecast {
	points := aggregate.DailySeries(records)
	if len(points) < 2 {
		return model.Forecast{
			Direction:    defaultDirection,
			DaysAnalyzed: len(points),
		}
	}

	var changeSum float64
	var changeCount int
	tokenSum := float64(points[0].TotalTokens)
	for i := 1; i < len(points); i++ {
		prev := float64(points[i-1].TotalTokens)
		cur := float64(points[i].TotalTokens)
		tokenSum += cur
		if prev == 0 {
			continue // relative change undefined against a zero day
		}
		changeSum += (cur - prev) / prev
		changeCount++
	}

	var avgChange float64
	if changeCount > 0 {
		avgChange = changeSum / float64(changeCount)
	}

	direction := model.TrendStable
	switch {
	case avgChange > growthThreshold:
		direction = model.TrendIncreasing
	case avgChange < -growthThreshold:
		direction = model.TrendDecreasing
	}

	avgDaily := tokenSum / float64(len(points))
	monthly := MonthlyForecast(avgDaily, e.snapshot().daysInMonth)

	return model.Forecast{
		DailyRate:          avgDaily,
		MonthlyForecast:    monthly,
		AnnualForecast:     AnnualForecast(monthly),
		Direction:          direction,
		DailyGrowthRatePct: math.Round(avgChange*10000) / 100,
		DaysAnalyzed:       len(points),
	}
}
