// Package aggregate groups raw usage records into summed buckets and
// per-date time series. All functions are pure.
package aggregate

import (
	"math"
	"sort"
	"strings"

	"github.com/ogulcanaydogan/llm-cost-insights/pkg/model"
)

// Dimension selects the grouping key for an aggregation pass.
type Dimension int

const (
	ByProvider Dimension = iota
	ByModel
	ByDate
)

// String returns the dimension name for logging and CLI flags.
func (d Dimension) String() string {
	switch d {
	case ByProvider:
		return "provider"
	case ByModel:
		return "model"
	case ByDate:
		return "date"
	default:
		return "unknown"
	}
}

// ParseDimension maps a flag value to a Dimension.
func ParseDimension(s string) (Dimension, bool) {
	switch strings.ToLower(s) {
	case "provider":
		return ByProvider, true
	case "model":
		return ByModel, true
	case "date":
		return ByDate, true
	default:
		return ByProvider, false
	}
}

func (d Dimension) key(r model.UsageRecord) string {
	switch d {
	case ByModel:
		return strings.ToLower(r.Model)
	case ByDate:
		return r.Date // raw ISO string, never lower-cased
	default:
		return strings.ToLower(r.Provider)
	}
}

// By groups records by the given dimension and returns buckets sorted
// descending by total tokens. Ties keep first-seen order. Percentages
// are relative to the grand total across all buckets; a zero grand
// total yields zero percentages. Empty input yields an empty slice.
// Date buckets sort chronologically instead of by magnitude.
func By(dim Dimension, records []model.UsageRecord) []model.Bucket {
	if len(records) == 0 {
		return nil
	}

	index := make(map[string]int, len(records))
	buckets := make([]model.Bucket, 0, len(records))

	for _, r := range records {
		key := dim.key(r)
		i, ok := index[key]
		if !ok {
			i = len(buckets)
			index[key] = i
			buckets = append(buckets, model.Bucket{Key: key})
		}
		buckets[i].InputTokens += r.InputTokens
		buckets[i].OutputTokens += r.OutputTokens
		buckets[i].RequestCount += r.RequestCount
		buckets[i].Cost += r.TotalCost
	}

	var grandTotal int64
	for i := range buckets {
		buckets[i].TotalTokens = buckets[i].InputTokens + buckets[i].OutputTokens
		grandTotal += buckets[i].TotalTokens
	}
	for i := range buckets {
		buckets[i].Percentage = percentage(buckets[i].TotalTokens, grandTotal)
	}

	if dim == ByDate {
		sort.SliceStable(buckets, func(i, j int) bool {
			return buckets[i].Key < buckets[j].Key
		})
	} else {
		sort.SliceStable(buckets, func(i, j int) bool {
			return buckets[i].TotalTokens > buckets[j].TotalTokens
		})
	}
	return buckets
}

// DailySeries builds the per-date series in a single pass, accumulating
// both the date totals and the nested provider/model token split.
// Points are sorted ascending by date.
func DailySeries(records []model.UsageRecord) []model.TimeSeriesPoint {
	if len(records) == 0 {
		return nil
	}

	index := make(map[string]int, len(records))
	points := make([]model.TimeSeriesPoint, 0, len(records))

	for _, r := range records {
		i, ok := index[r.Date]
		if !ok {
			i = len(points)
			index[r.Date] = i
			points = append(points, model.TimeSeriesPoint{
				Date:       r.Date,
				ByProvider: make(map[string]int64),
				ByModel:    make(map[string]int64),
			})
		}
		tokens := r.TotalTokens()
		points[i].TotalTokens += tokens
		points[i].RequestCount += r.RequestCount
		points[i].Cost += r.TotalCost
		points[i].ByProvider[strings.ToLower(r.Provider)] += tokens
		points[i].ByModel[strings.ToLower(r.Model)] += tokens
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date < points[j].Date
	})
	return points
}

// percentage returns part/total as a percentage rounded to 2 decimals.
func percentage(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*10000) / 100
}
