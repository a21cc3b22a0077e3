package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type EventRepo struct {
	db DBTX
}

func NewEventRepo(db DBTX) *EventRepo {
	return &EventRepo{db: db}
}

func (r *EventRepo) WithTx(tx *sql.Tx) *EventRepo {
	return &EventRepo{db: tx}
}

func (r *EventRepo) Insert(ctx context.Context, taskID, userID int64, day string, xpAwarded int, completedAt time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO task_events (task_id, user_id, day, xp_awarded, completed_at)
		VALUES (?, ?, ?, ?, ?)
	`, taskID, userID, day, xpAwarded, completedAt)
	if err != nil {
		return 0, fmt.Errorf("event insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("event last insert id: %w", err)
	}
	return id, nil
}

// Last returns the most recent completion event for a task, or nil.
func (r *EventRepo) Last(ctx context.Context, taskID int64) (*TaskEvent, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, task_id, user_id, day, xp_awarded, completed_at
		FROM task_events
		WHERE task_id = ?
		ORDER BY id DESC
		LIMIT 1
	`, taskID)

	var e TaskEvent
	if err := row.Scan(&e.ID, &e.TaskID, &e.UserID, &e.Day, &e.XPAwarded, &e.CompletedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("event last: %w", err)
	}
	return &e, nil
}

func (r *EventRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM task_events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("event delete: %w", err)
	}
	return nil
}

func (r *EventRepo) CountByUserAndDay(ctx context.Context, userID int64, day string) (int, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM task_events WHERE user_id = ? AND day = ?
	`, userID, day)
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("event count: %w", err)
	}
	return n, nil
}

func (r *EventRepo) ListByUser(ctx context.Context, userID int64) ([]TaskEvent, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, task_id, user_id, day, xp_awarded, completed_at
		FROM task_events
		WHERE user_id = ?
		ORDER BY id ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("event list: %w", err)
	}
	defer rows.Close()

	var out []TaskEvent
	for rows.Next() {
		var e TaskEvent
		if err := rows.Scan(&e.ID, &e.TaskID, &e.UserID, &e.Day, &e.XPAwarded, &e.CompletedAt); err != nil {
			return nil, fmt.Errorf("event scan: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("event list rows: %w", err)
	}
	return out, nil
}
