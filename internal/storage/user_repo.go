package storage

import (
	"context"
	"database/sql"
	"fmt"
)

const userColumns = `id, name, level, current_xp, xp_for_next_level, total_xp,
	points_to_distribute, streak, in_penalty_zone, health, max_health, coins,
	strength, intelligence, discipline, vitality,
	last_task_completed_at, last_daily_completion, created_at`

type UserRepo struct {
	db DBTX
}

func NewUserRepo(db DBTX) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) WithTx(tx *sql.Tx) *UserRepo {
	return &UserRepo{db: tx}
}

func (r *UserRepo) GetByName(ctx context.Context, name string) (*User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE name = ?`, name)
	return scanUser(row)
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

// GetOrCreate returns the user with the given name, creating it with the
// provided starting XP threshold when missing.
func (r *UserRepo) GetOrCreate(ctx context.Context, name string, xpForNextLevel int) (*User, error) {
	u, err := r.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if u != nil {
		return u, nil
	}

	if _, err := r.db.ExecContext(ctx, `
		INSERT INTO users (name, xp_for_next_level) VALUES (?, ?)
	`, name, xpForNextLevel); err != nil {
		return nil, fmt.Errorf("user insert: %w", err)
	}
	return r.GetByName(ctx, name)
}

func (r *UserRepo) Update(ctx context.Context, u *User) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET level = ?, current_xp = ?, xp_for_next_level = ?, total_xp = ?,
			points_to_distribute = ?, streak = ?, in_penalty_zone = ?,
			health = ?, max_health = ?, coins = ?,
			strength = ?, intelligence = ?, discipline = ?, vitality = ?,
			last_task_completed_at = ?, last_daily_completion = ?
		WHERE id = ?
	`, u.Level, u.CurrentXP, u.XPForNextLevel, u.TotalXP,
		u.PointsToDistribute, u.Streak, boolToInt(u.InPenaltyZone),
		u.Health, u.MaxHealth, u.Coins,
		u.Strength, u.Intelligence, u.Discipline, u.Vitality,
		u.LastTaskCompletedAt, u.LastDailyCompletion, u.ID)
	if err != nil {
		return fmt.Errorf("user update: %w", err)
	}
	return nil
}

func (r *UserRepo) ListAll(ctx context.Context) ([]User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("user list: %w", err)
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("user list rows: %w", err)
	}
	return out, nil
}

func scanUser(row scanner) (*User, error) {
	var (
		u         User
		inPenalty int
		lastTask  sql.NullTime
		lastDaily sql.NullTime
		createdAt sql.NullTime
	)
	if err := row.Scan(
		&u.ID, &u.Name, &u.Level, &u.CurrentXP, &u.XPForNextLevel, &u.TotalXP,
		&u.PointsToDistribute, &u.Streak, &inPenalty, &u.Health, &u.MaxHealth, &u.Coins,
		&u.Strength, &u.Intelligence, &u.Discipline, &u.Vitality,
		&lastTask, &lastDaily, &createdAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("user scan: %w", err)
	}

	u.InPenaltyZone = inPenalty != 0
	if lastTask.Valid {
		v := lastTask.Time
		u.LastTaskCompletedAt = &v
	}
	if lastDaily.Valid {
		v := lastDaily.Time
		u.LastDailyCompletion = &v
	}
	if createdAt.Valid {
		u.CreatedAt = createdAt.Time
	}
	return &u, nil
}
