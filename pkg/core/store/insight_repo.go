package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// InsightRepo records question/answer pairs of the insight assistant,
// tagged with the snapshot generation they were answered against. The
// dataset itself is never persisted.
type InsightRepo struct{}

// NewInsightRepo creates a new repository instance.
func NewInsightRepo() *InsightRepo {
	return &InsightRepo{}
}

// Save appends one answered question.
func (r *InsightRepo) Save(ctx context.Context, generation uuid.UUID, question, answer string) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	query := `
		INSERT INTO insight_history (snapshot_generation, question, answer, asked_at)
		VALUES ($1, $2, $3, $4);
	`
	_, err := pool.Exec(ctx, query, generation, question, answer, time.Now())
	if err != nil {
		return fmt.Errorf("failed to save insight: %w", err)
	}
	return nil
}

// HistoryEntry is one stored Q&A pair.
type HistoryEntry struct {
	Generation uuid.UUID `json:"snapshot_generation"`
	Question   string    `json:"question"`
	Answer     string    `json:"answer"`
	AskedAt    time.Time `json:"asked_at"`
}

// Recent returns the latest entries, newest first.
func (r *InsightRepo) Recent(ctx context.Context, limit int) ([]HistoryEntry, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := pool.Query(ctx, `
		SELECT snapshot_generation, question, answer, asked_at
		FROM insight_history
		ORDER BY asked_at DESC
		LIMIT $1;
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query insight history: %w", err)
	}
	defer rows.Close()

	var out []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		if err := rows.Scan(&e.Generation, &e.Question, &e.Answer, &e.AskedAt); err != nil {
			return nil, fmt.Errorf("failed to scan insight history row: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
