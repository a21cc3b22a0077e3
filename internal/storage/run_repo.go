package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
)

type RunRepo struct {
	db DBTX
}

func NewRunRepo(db DBTX) *RunRepo {
	return &RunRepo{db: db}
}

func (r *RunRepo) Start(ctx context.Context, day string, startedAt time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO reconcile_runs (day, status, started_at) VALUES (?, ?, ?)
	`, day, RunStatusRunning, startedAt)
	if err != nil {
		return 0, fmt.Errorf("run start: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("run last insert id: %w", err)
	}
	return id, nil
}

func (r *RunRepo) Finish(ctx context.Context, id int64, finishedAt time.Time, processed, failed int) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE reconcile_runs
		SET status = ?, finished_at = ?, processed = ?, failed = ?
		WHERE id = ?
	`, RunStatusCompleted, finishedAt, processed, failed, id)
	if err != nil {
		return fmt.Errorf("run finish: %w", err)
	}
	return nil
}

// CompletedForDay reports whether a completed run already exists for the day.
func (r *RunRepo) CompletedForDay(ctx context.Context, day string) (bool, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT 1 FROM reconcile_runs WHERE day = ? AND status = ? LIMIT 1
	`, day, RunStatusCompleted)
	var one int
	if err := row.Scan(&one); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("run completed for day: %w", err)
	}
	return true, nil
}

func (r *RunRepo) Last(ctx context.Context) (*ReconcileRun, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, day, status, started_at, finished_at, processed, failed
		FROM reconcile_runs
		ORDER BY id DESC
		LIMIT 1
	`)

	var (
		run      ReconcileRun
		finished sql.NullTime
	)
	if err := row.Scan(&run.ID, &run.Day, &run.Status, &run.StartedAt, &finished, &run.Processed, &run.Failed); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("run last: %w", err)
	}
	if finished.Valid {
		v := finished.Time
		run.FinishedAt = &v
	}
	return &run, nil
}
