package storage

import (
	"database/sql"
	"fmt"
)

var migrations = []string{
	// Migration 1: Initial schema
	`CREATE TABLE IF NOT EXISTS daily_usage (
		id                  TEXT PRIMARY KEY,
		date                TEXT NOT NULL,
		provider            TEXT NOT NULL,
		model               TEXT NOT NULL,
		input_tokens        INTEGER NOT NULL DEFAULT 0,
		output_tokens       INTEGER NOT NULL DEFAULT 0,
		cached_tokens       INTEGER NOT NULL DEFAULT 0,
		request_count       INTEGER NOT NULL DEFAULT 0,
		successful_requests INTEGER NOT NULL DEFAULT 0,
		failed_requests     INTEGER NOT NULL DEFAULT 0,
		avg_latency_ms      REAL NOT NULL DEFAULT 0.0,
		avg_ttft_ms         REAL NOT NULL DEFAULT 0.0,
		rate_limit_hits     INTEGER NOT NULL DEFAULT 0,
		total_cost          REAL NOT NULL DEFAULT 0.0,
		currency            TEXT NOT NULL DEFAULT 'USD',
		created_at          DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(date, provider, model)
	);

	CREATE INDEX IF NOT EXISTS idx_daily_usage_date ON daily_usage(date);
	CREATE INDEX IF NOT EXISTS idx_daily_usage_provider ON daily_usage(provider);
	CREATE INDEX IF NOT EXISTS idx_daily_usage_model ON daily_usage(model);

	CREATE TABLE IF NOT EXISTS schema_migrations (
		version    INTEGER PRIMARY KEY,
		applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`,
}

// runMigrations applies pending schema migrations.
func runMigrations(db *sql.DB) error {
	// Ensure migration tracking table exists
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version    INTEGER PRIMARY KEY,
		applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		return fmt.Errorf("create migration table: %w", err)
	}

	var currentVersion int
	row := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("check migration version: %w", err)
	}

	for i := currentVersion; i < len(migrations); i++ {
		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", i+1, err)
		}

		if _, err := tx.Exec(migrations[i]); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("run migration %d: %w", i+1, err)
		}

		if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", i+1); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration %d: %w", i+1, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", i+1, err)
		}
	}

	return nil
}
