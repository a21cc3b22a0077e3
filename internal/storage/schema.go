package storage

import (
	"context"
	"database/sql"
	"fmt"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,

			level INTEGER NOT NULL DEFAULT 1,
			current_xp INTEGER NOT NULL DEFAULT 0,
			xp_for_next_level INTEGER NOT NULL,
			total_xp INTEGER NOT NULL DEFAULT 0,
			points_to_distribute INTEGER NOT NULL DEFAULT 0,

			streak INTEGER NOT NULL DEFAULT 0,
			in_penalty_zone INTEGER NOT NULL DEFAULT 0,
			health INTEGER NOT NULL DEFAULT 100,
			max_health INTEGER NOT NULL DEFAULT 100,
			coins INTEGER NOT NULL DEFAULT 0,

			strength INTEGER NOT NULL DEFAULT 0,
			intelligence INTEGER NOT NULL DEFAULT 0,
			discipline INTEGER NOT NULL DEFAULT 0,
			vitality INTEGER NOT NULL DEFAULT 0,

			last_task_completed_at DATETIME,
			last_daily_completion DATETIME,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			title TEXT NOT NULL,
			description TEXT,

			type TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			intensity TEXT NOT NULL,
			recurrence TEXT NOT NULL DEFAULT 'one-time',
			xp_reward INTEGER NOT NULL,

			date_assigned DATETIME NOT NULL,
			assigned_day TEXT NOT NULL,
			date_completed DATETIME,

			FOREIGN KEY(user_id) REFERENCES users(id)
		);`,
		// Append-only completion ledger; restore deletes the matching row.
		`CREATE TABLE IF NOT EXISTS task_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			task_id INTEGER NOT NULL,
			user_id INTEGER NOT NULL,
			day TEXT NOT NULL,
			xp_awarded INTEGER NOT NULL,
			completed_at DATETIME NOT NULL,
			FOREIGN KEY(task_id) REFERENCES tasks(id),
			FOREIGN KEY(user_id) REFERENCES users(id)
		);`,
		// Once-per-day flags and calendar history, keyed by (user, day).
		`CREATE TABLE IF NOT EXISTS user_days (
			user_id INTEGER NOT NULL,
			day TEXT NOT NULL,
			generated INTEGER NOT NULL DEFAULT 0,
			class_generated INTEGER NOT NULL DEFAULT 0,
			all_done INTEGER NOT NULL DEFAULT 0,
			completed INTEGER NOT NULL DEFAULT 0,
			penalized INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (user_id, day),
			FOREIGN KEY(user_id) REFERENCES users(id)
		);`,
		// Job-run ledger so a crashed or double-fired nightly run is visible
		// instead of silently re-running.
		`CREATE TABLE IF NOT EXISTS reconcile_runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			day TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'running',
			started_at DATETIME NOT NULL,
			finished_at DATETIME,
			processed INTEGER NOT NULL DEFAULT 0,
			failed INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_user_id ON tasks(user_id);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_user_type_day ON tasks(user_id, type, assigned_day);`,
		`CREATE INDEX IF NOT EXISTS idx_task_events_task_id ON task_events(task_id);`,
		`CREATE INDEX IF NOT EXISTS idx_reconcile_runs_day ON reconcile_runs(day);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
