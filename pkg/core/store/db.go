package store

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	pool *pgxpool.Pool
	once sync.Once
)

// InitDB initializes the connection pool from DATABASE_URL and makes
// sure the insight history table exists. History storage is optional:
// callers treat an init failure as "run without history".
func InitDB(ctx context.Context) error {
	var err error
	once.Do(func() {
		dbURL := os.Getenv("DATABASE_URL")
		if dbURL == "" {
			err = fmt.Errorf("DATABASE_URL environment variable not set")
			return
		}

		config, parseErr := pgxpool.ParseConfig(dbURL)
		if parseErr != nil {
			err = fmt.Errorf("failed to parse database config: %w", parseErr)
			return
		}

		pool, err = pgxpool.NewWithConfig(ctx, config)
		if err != nil {
			return
		}

		_, err = pool.Exec(ctx, `
			CREATE TABLE IF NOT EXISTS insight_history (
				id BIGSERIAL PRIMARY KEY,
				snapshot_generation UUID NOT NULL,
				question TEXT NOT NULL,
				answer TEXT NOT NULL,
				asked_at TIMESTAMPTZ NOT NULL
			);
		`)
		if err != nil {
			err = fmt.Errorf("failed to ensure insight_history schema: %w", err)
		}
	})
	return err
}

// GetPool returns the database connection pool
func GetPool() *pgxpool.Pool {
	return pool
}

// Close closes the database connection pool
func Close() {
	if pool != nil {
		pool.Close()
	}
}
