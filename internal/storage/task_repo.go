package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

const taskColumns = `id, user_id, title, description, type, status, intensity,
	recurrence, xp_reward, date_assigned, assigned_day, date_completed`

type TaskRepo struct {
	db DBTX
}

func NewTaskRepo(db DBTX) *TaskRepo {
	return &TaskRepo{db: db}
}

func (r *TaskRepo) WithTx(tx *sql.Tx) *TaskRepo {
	return &TaskRepo{db: tx}
}

type TaskInsert struct {
	UserID       int64
	Title        string
	Description  *string
	Type         string
	Status       string
	Intensity    string
	Recurrence   string
	XPReward     int
	DateAssigned time.Time
	AssignedDay  string
}

// TaskFilter narrows list/delete queries. Zero-value fields are ignored.
type TaskFilter struct {
	Type        string
	Status      string
	AssignedDay string
}

func (f TaskFilter) where(userID int64) (string, []any) {
	clauses := []string{"user_id = ?"}
	args := []any{userID}
	if f.Type != "" {
		clauses = append(clauses, "type = ?")
		args = append(args, f.Type)
	}
	if f.Status != "" {
		clauses = append(clauses, "status = ?")
		args = append(args, f.Status)
	}
	if f.AssignedDay != "" {
		clauses = append(clauses, "assigned_day = ?")
		args = append(args, f.AssignedDay)
	}
	return strings.Join(clauses, " AND "), args
}

func (r *TaskRepo) Insert(ctx context.Context, in TaskInsert) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (
			user_id, title, description, type, status, intensity,
			recurrence, xp_reward, date_assigned, assigned_day
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, in.UserID, in.Title, in.Description, in.Type, in.Status, in.Intensity,
		in.Recurrence, in.XPReward, in.DateAssigned, in.AssignedDay)
	if err != nil {
		return 0, fmt.Errorf("task insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("task last insert id: %w", err)
	}
	return id, nil
}

func (r *TaskRepo) Get(ctx context.Context, id int64) (*Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	return scanTask(row)
}

func (r *TaskRepo) ListByUser(ctx context.Context, userID int64, f TaskFilter) ([]Task, error) {
	where, args := f.where(userID)
	rows, err := r.db.QueryContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE `+where+` ORDER BY id ASC`, args...)
	if err != nil {
		return nil, fmt.Errorf("task list: %w", err)
	}
	defer rows.Close()

	var out []Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("task list rows: %w", err)
	}
	return out, nil
}

func (r *TaskRepo) MarkCompleted(ctx context.Context, id int64, completedAt time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE tasks SET status = 'completed', date_completed = ? WHERE id = ?
	`, completedAt, id)
	if err != nil {
		return fmt.Errorf("task mark completed: %w", err)
	}
	return nil
}

func (r *TaskRepo) MarkPending(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE tasks SET status = 'pending', date_completed = NULL WHERE id = ?
	`, id)
	if err != nil {
		return fmt.Errorf("task mark pending: %w", err)
	}
	return nil
}

func (r *TaskRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE tasks SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("task update status: %w", err)
	}
	return nil
}

func (r *TaskRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("task delete: %w", err)
	}
	return nil
}

// DeleteByFilter removes every task of a user matching the filter and returns
// the number of rows removed.
func (r *TaskRepo) DeleteByFilter(ctx context.Context, userID int64, f TaskFilter) (int64, error) {
	where, args := f.where(userID)
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE `+where, args...)
	if err != nil {
		return 0, fmt.Errorf("task delete by filter: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("task delete rows affected: %w", err)
	}
	return n, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(row scanner) (*Task, error) {
	var (
		t           Task
		description sql.NullString
		completed   sql.NullTime
	)
	if err := row.Scan(
		&t.ID, &t.UserID, &t.Title, &description, &t.Type, &t.Status, &t.Intensity,
		&t.Recurrence, &t.XPReward, &t.DateAssigned, &t.AssignedDay, &completed,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("task scan: %w", err)
	}

	if description.Valid {
		v := description.String
		t.Description = &v
	}
	if completed.Valid {
		v := completed.Time
		t.DateCompleted = &v
	}
	return &t, nil
}
