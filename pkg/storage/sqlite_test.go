package storage_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/ogulcanaydogan/llm-cost-insights/pkg/model"
	"github.com/ogulcanaydogan/llm-cost-insights/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *storage.SQLite {
	t.Helper()
	store, err := storage.NewSQLite(filepath.Join(t.TempDir(), "insights.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestUpsertDaily_InsertAndQuery(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rec := &model.UsageRecord{
		Date: "2026-08-01", Provider: "OpenAI", Model: "GPT-4o",
		InputTokens: 1000, OutputTokens: 200, RequestCount: 10,
		SuccessfulRequests: 9, FailedRequests: 1,
		AvgLatencyMs: 250.5, TotalCost: 1.25,
	}
	require.NoError(t, store.UpsertDaily(ctx, rec))
	assert.NotEmpty(t, rec.ID)

	records, err := store.QueryRange(ctx, model.RangeFilter{})
	require.NoError(t, err)
	require.Len(t, records, 1)

	got := records[0]
	// Provider/model keys are normalized to lower case at the boundary.
	assert.Equal(t, "openai", got.Provider)
	assert.Equal(t, "gpt-4o", got.Model)
	assert.Equal(t, int64(1000), got.InputTokens)
	assert.Equal(t, 250.5, got.AvgLatencyMs)
	assert.Equal(t, "USD", got.Currency)
}

func TestUpsertDaily_MergesSameDay(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := &model.UsageRecord{
		Date: "2026-08-01", Provider: "openai", Model: "gpt-4o",
		InputTokens: 100, RequestCount: 2, TotalCost: 0.1,
	}
	second := &model.UsageRecord{
		Date: "2026-08-01", Provider: "openai", Model: "gpt-4o",
		InputTokens: 50, RequestCount: 1, TotalCost: 0.05,
	}
	require.NoError(t, store.UpsertDaily(ctx, first))
	require.NoError(t, store.UpsertDaily(ctx, second))

	records, err := store.QueryRange(ctx, model.RangeFilter{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, int64(150), records[0].InputTokens)
	assert.Equal(t, int64(3), records[0].RequestCount)
	assert.InDelta(t, 0.15, records[0].TotalCost, 1e-9)
}

func TestQueryRange_Filters(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	seed := []*model.UsageRecord{
		{Date: "2026-08-01", Provider: "openai", Model: "gpt-4o", InputTokens: 10},
		{Date: "2026-08-02", Provider: "anthropic", Model: "claude-sonnet", InputTokens: 20},
		{Date: "2026-08-03", Provider: "openai", Model: "gpt-4o-mini", InputTokens: 30},
	}
	for _, r := range seed {
		require.NoError(t, store.UpsertDaily(ctx, r))
	}

	byProvider, err := store.QueryRange(ctx, model.RangeFilter{Provider: "openai"})
	require.NoError(t, err)
	assert.Len(t, byProvider, 2)

	byModel, err := store.QueryRange(ctx, model.RangeFilter{Model: "claude-sonnet"})
	require.NoError(t, err)
	assert.Len(t, byModel, 1)

	// End date is exclusive.
	byRange, err := store.QueryRange(ctx, model.RangeFilter{StartDate: "2026-08-02", EndDate: "2026-08-03"})
	require.NoError(t, err)
	require.Len(t, byRange, 1)
	assert.Equal(t, "2026-08-02", byRange[0].Date)
}

func TestQueryRange_OrderedByDate(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, date := range []string{"2026-08-03", "2026-08-01", "2026-08-02"} {
		require.NoError(t, store.UpsertDaily(ctx, &model.UsageRecord{
			Date: date, Provider: "openai", Model: "gpt-4o", InputTokens: 1,
		}))
	}

	records, err := store.QueryRange(ctx, model.RangeFilter{})
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "2026-08-01", records[0].Date)
	assert.Equal(t, "2026-08-03", records[2].Date)
}

func TestProviders(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, p := range []string{"openai", "anthropic", "openai"} {
		require.NoError(t, store.UpsertDaily(ctx, &model.UsageRecord{
			Date: "2026-08-01", Provider: p, Model: "m",
		}))
	}

	providers, err := store.Providers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"anthropic", "openai"}, providers)
}
