package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/ogulcanaydogan/llm-cost-insights/pkg/model"

	_ "modernc.org/sqlite"
)

// SQLite implements the Storage interface using an SQLite database.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens or creates an SQLite database at the given path.
func NewSQLite(dbPath string) (*SQLite, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for concurrent reads
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) UpsertDaily(ctx context.Context, record *model.UsageRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.Currency == "" {
		record.Currency = "USD"
	}
	record.Provider = strings.ToLower(record.Provider)
	record.Model = strings.ToLower(record.Model)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO daily_usage (
			id, date, provider, model,
			input_tokens, output_tokens, cached_tokens,
			request_count, successful_requests, failed_requests,
			avg_latency_ms, avg_ttft_ms, rate_limit_hits,
			total_cost, currency)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(date, provider, model) DO UPDATE SET
		   input_tokens        = input_tokens + excluded.input_tokens,
		   output_tokens       = output_tokens + excluded.output_tokens,
		   cached_tokens       = cached_tokens + excluded.cached_tokens,
		   request_count       = request_count + excluded.request_count,
		   successful_requests = successful_requests + excluded.successful_requests,
		   failed_requests     = failed_requests + excluded.failed_requests,
		   avg_latency_ms      = excluded.avg_latency_ms,
		   avg_ttft_ms         = excluded.avg_ttft_ms,
		   rate_limit_hits     = rate_limit_hits + excluded.rate_limit_hits,
		   total_cost          = total_cost + excluded.total_cost`,
		record.ID, record.Date, record.Provider, record.Model,
		record.InputTokens, record.OutputTokens, record.CachedTokens,
		record.RequestCount, record.SuccessfulRequests, record.FailedRequests,
		record.AvgLatencyMs, record.AvgTTFTMs, record.RateLimitHits,
		record.TotalCost, record.Currency,
	)
	if err != nil {
		return fmt.Errorf("upsert daily usage: %w", err)
	}
	return nil
}

func (s *SQLite) QueryRange(ctx context.Context, filter model.RangeFilter) ([]model.UsageRecord, error) {
	query := `SELECT id, date, provider, model,
		input_tokens, output_tokens, cached_tokens,
		request_count, successful_requests, failed_requests,
		avg_latency_ms, avg_ttft_ms, rate_limit_hits,
		total_cost, currency
	FROM daily_usage`
	where, args := buildWhereClause(filter)
	if where != "" {
		query += " WHERE " + where
	}
	query += " ORDER BY date ASC, provider ASC, model ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query daily usage: %w", err)
	}
	defer rows.Close()

	var records []model.UsageRecord
	for rows.Next() {
		var r model.UsageRecord
		if err := rows.Scan(&r.ID, &r.Date, &r.Provider, &r.Model,
			&r.InputTokens, &r.OutputTokens, &r.CachedTokens,
			&r.RequestCount, &r.SuccessfulRequests, &r.FailedRequests,
			&r.AvgLatencyMs, &r.AvgTTFTMs, &r.RateLimitHits,
			&r.TotalCost, &r.Currency); err != nil {
			return nil, fmt.Errorf("scan usage row: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *SQLite) Providers(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT DISTINCT provider FROM daily_usage ORDER BY provider")
	if err != nil {
		return nil, fmt.Errorf("list providers: %w", err)
	}
	defer rows.Close()

	var providers []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scan provider: %w", err)
		}
		providers = append(providers, p)
	}
	return providers, rows.Err()
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

// buildWhereClause constructs a SQL WHERE clause from a RangeFilter.
func buildWhereClause(filter model.RangeFilter) (string, []any) {
	var conditions []string
	var args []any

	if filter.Provider != "" {
		conditions = append(conditions, "provider = ?")
		args = append(args, strings.ToLower(filter.Provider))
	}
	if filter.Model != "" {
		conditions = append(conditions, "model = ?")
		args = append(args, strings.ToLower(filter.Model))
	}
	if filter.StartDate != "" {
		conditions = append(conditions, "date >= ?")
		args = append(args, filter.StartDate)
	}
	if filter.EndDate != "" {
		conditions = append(conditions, "date < ?")
		args = append(args, filter.EndDate)
	}

	return strings.Join(conditions, " AND "), args
}
