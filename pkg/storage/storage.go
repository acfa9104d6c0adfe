package storage

import (
	"context"

	"github.com/ogulcanaydogan/llm-cost-insights/pkg/model"
)

// Storage persists per-day usage records for the reporting engine.
type Storage interface {
	// UpsertDaily inserts a daily usage row, merging token and request
	// counts into an existing row for the same date/provider/model.
	UpsertDaily(ctx context.Context, record *model.UsageRecord) error

	// QueryRange retrieves records matching the given filter, ordered
	// by date ascending.
	QueryRange(ctx context.Context, filter model.RangeFilter) ([]model.UsageRecord, error)

	// Providers returns the distinct providers present in the store.
	Providers(ctx context.Context) ([]string, error)

	// Close releases resources.
	Close() error
}
