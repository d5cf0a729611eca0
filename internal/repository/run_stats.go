package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/ticketloop/reminder-scheduler/internal/model"
)

// RunStatsRepository appends and lists run summaries in ClickHouse for
// the ops reporting surface.
type RunStatsRepository interface {
	InsertRun(ctx context.Context, res model.RunResult) error
	ListRecent(ctx context.Context, limit int) ([]model.RunResult, error)
}

type runStatsRepository struct {
	ch *sqlx.DB // ClickHouse connection
}

func NewRunStatsRepository(ch *sqlx.DB) RunStatsRepository {
	return &runStatsRepository{ch: ch}
}

func (r *runStatsRepository) InsertRun(ctx context.Context, res model.RunResult) error {
	const q = `
		INSERT INTO remsched.run_stats (started_at, processed, sent, failed, duration_ms)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := r.ch.ExecContext(ctx, q, res.Timestamp, res.Processed, res.Sent, res.Failed, res.DurationMs)
	return err
}

func (r *runStatsRepository) ListRecent(ctx context.Context, limit int) ([]model.RunResult, error) {
	if limit <= 0 || limit > 1000 {
		limit = 50
	}

	const q = `
		SELECT started_at, processed, sent, failed, duration_ms
		FROM remsched.run_stats
		ORDER BY started_at DESC
		LIMIT ?
	`
	var rows []model.RunResult
	if err := r.ch.SelectContext(ctx, &rows, q, limit); err != nil {
		return nil, err
	}
	return rows, nil
}
