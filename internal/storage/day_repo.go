package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type DayRepo struct {
	db DBTX
}

func NewDayRepo(db DBTX) *DayRepo {
	return &DayRepo{db: db}
}

func (r *DayRepo) WithTx(tx *sql.Tx) *DayRepo {
	return &DayRepo{db: tx}
}

// Get returns the day record for (userID, day). A missing row is returned as
// a zero-valued record: a day nobody has touched has no flags set.
func (r *DayRepo) Get(ctx context.Context, userID int64, day string) (*DayRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT user_id, day, generated, class_generated, all_done, completed, penalized
		FROM user_days
		WHERE user_id = ? AND day = ?
	`, userID, day)

	var d DayRecord
	var generated, classGenerated, allDone, completed, penalized int
	if err := row.Scan(&d.UserID, &d.Day, &generated, &classGenerated, &allDone, &completed, &penalized); err != nil {
		if err == sql.ErrNoRows {
			return &DayRecord{UserID: userID, Day: day}, nil
		}
		return nil, fmt.Errorf("day get: %w", err)
	}
	d.Generated = generated != 0
	d.ClassGenerated = classGenerated != 0
	d.AllDone = allDone != 0
	d.Completed = completed != 0
	d.Penalized = penalized != 0
	return &d, nil
}

func (r *DayRepo) Upsert(ctx context.Context, d *DayRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_days (user_id, day, generated, class_generated, all_done, completed, penalized)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, day) DO UPDATE SET
			generated = excluded.generated,
			class_generated = excluded.class_generated,
			all_done = excluded.all_done,
			completed = excluded.completed,
			penalized = excluded.penalized
	`, d.UserID, d.Day, boolToInt(d.Generated), boolToInt(d.ClassGenerated),
		boolToInt(d.AllDone), boolToInt(d.Completed), boolToInt(d.Penalized))
	if err != nil {
		return fmt.Errorf("day upsert: %w", err)
	}
	return nil
}

// ListCompletedDays returns the calendar history of fully completed days.
func (r *DayRepo) ListCompletedDays(ctx context.Context, userID int64) ([]string, error) {
	return r.listDays(ctx, userID, "completed")
}

// ListPenalizedDays returns the calendar history of days that ended with a
// penalty strike.
func (r *DayRepo) ListPenalizedDays(ctx context.Context, userID int64) ([]string, error) {
	return r.listDays(ctx, userID, "penalized")
}

func (r *DayRepo) listDays(ctx context.Context, userID int64, column string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT day FROM user_days WHERE user_id = ? AND `+column+` = 1 ORDER BY day ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("day list: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("day scan: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("day list rows: %w", err)
	}
	return out, nil
}
