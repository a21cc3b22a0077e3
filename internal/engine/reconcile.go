package engine

import (
	"context"
	"database/sql"

	"github.com/izumiishikawa/levelite-sub000/internal/storage"
)

// PenaltyQuestTitles is the fixed set spawned when a day ends with unfinished
// daily quests.
var PenaltyQuestTitles = []string{
	"100 push-ups",
	"100 sit-ups",
	"100 squats",
	"10 km run",
}

type ReconcileResult struct {
	UserID int64
	Day    string

	// Rule 1: yesterday's penalty tasks were never cleared
	DamageApplied int

	DailiesAllDone bool
	EnteredPenalty bool
	PenaltySpawned int
	PurgedDailies  int64
	PurgedPenalty  int64
	MarkedOverdue  int64
}

// ReconcileUser applies the day-boundary rules for one user and the day that
// just ended. Invoked by the nightly scheduler; safe to call from the CLI.
//
// Rule order matters: the penalty-zone check reads the state left by the
// previous boundary before rule 3 can overwrite it for the new day.
func (s *Service) ReconcileUser(ctx context.Context, userID int64, day string) (*ReconcileResult, error) {
	var res *ReconcileResult
	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		users := s.users.WithTx(tx)
		tasks := s.tasks.WithTx(tx)
		days := s.days.WithTx(tx)

		u, err := users.GetByID(ctx, userID)
		if err != nil {
			return PersistenceError{Op: "user lookup", Err: err}
		}
		if u == nil {
			return NotFoundError{Kind: "user", Ref: itoa(userID)}
		}

		res = &ReconcileResult{UserID: userID, Day: day}

		// Rule 1: unfinished penalty tasks from the previous cycle cost HP.
		if u.InPenaltyZone {
			u.Health -= s.settings.PenaltyDamage
			if u.Health < 0 {
				u.Health = 0
			}
			u.InPenaltyZone = false
			res.DamageApplied = s.settings.PenaltyDamage

			d, err := days.Get(ctx, u.ID, day)
			if err != nil {
				return PersistenceError{Op: "day lookup", Err: err}
			}
			d.Penalized = true
			if err := days.Upsert(ctx, d); err != nil {
				return PersistenceError{Op: "day update", Err: err}
			}
		}

		// Rule 2: stale penalty tasks are purged regardless of status.
		purgedPenalty, err := tasks.DeleteByFilter(ctx, u.ID, storage.TaskFilter{Type: string(TypePenaltyTask)})
		if err != nil {
			return PersistenceError{Op: "penalty purge", Err: err}
		}
		res.PurgedPenalty = purgedPenalty

		// Rule 3: inspect the ended day's daily quests.
		dailies, err := tasks.ListByUser(ctx, u.ID, storage.TaskFilter{
			Type:        string(TypeDailyQuest),
			AssignedDay: day,
		})
		if err != nil {
			return PersistenceError{Op: "daily quest scan", Err: err}
		}

		if len(dailies) > 0 {
			allDone := true
			for _, t := range dailies {
				if t.Status != string(StatusCompleted) {
					allDone = false
					break
				}
			}
			res.DailiesAllDone = allDone

			if allDone {
				d, err := days.Get(ctx, u.ID, day)
				if err != nil {
					return PersistenceError{Op: "day lookup", Err: err}
				}
				if !d.Completed {
					d.Completed = true
					if err := days.Upsert(ctx, d); err != nil {
						return PersistenceError{Op: "day update", Err: err}
					}
				}
			} else {
				u.Streak = 0
				u.InPenaltyZone = true
				res.EnteredPenalty = true
				if err := s.spawnPenaltyTasks(ctx, tasks, u, res); err != nil {
					return err
				}
			}

			// Dailies are never carried forward; a fresh batch is generated
			// next time the user opens the app.
			purged, err := tasks.DeleteByFilter(ctx, u.ID, storage.TaskFilter{
				Type:        string(TypeDailyQuest),
				AssignedDay: day,
			})
			if err != nil {
				return PersistenceError{Op: "daily purge", Err: err}
			}
			res.PurgedDailies = purged
		}

		// One-time tasks left pending at day's end go incomplete. They are
		// kept around so the user can still restore-and-finish them.
		marked, err := s.markOverdue(ctx, tasks, u.ID, day)
		if err != nil {
			return err
		}
		res.MarkedOverdue = marked

		// Day records are keyed by date, so the new day starts clean with no
		// explicit flag reset.

		if err := users.Update(ctx, u); err != nil {
			return PersistenceError{Op: "user update", Err: err}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Service) markOverdue(ctx context.Context, tasks *storage.TaskRepo, userID int64, day string) (int64, error) {
	var marked int64
	for _, tt := range []TaskType{TypeUserTask, TypeAITask, TypeClassQuest} {
		pending, err := tasks.ListByUser(ctx, userID, storage.TaskFilter{
			Type:        string(tt),
			Status:      string(StatusPending),
			AssignedDay: day,
		})
		if err != nil {
			return 0, PersistenceError{Op: "overdue scan", Err: err}
		}
		for _, t := range pending {
			if err := tasks.UpdateStatus(ctx, t.ID, string(StatusIncomplete)); err != nil {
				return 0, PersistenceError{Op: "overdue update", Err: err}
			}
			marked++
		}
	}
	return marked, nil
}

func (s *Service) spawnPenaltyTasks(ctx context.Context, tasks *storage.TaskRepo, u *storage.User, res *ReconcileResult) error {
	now := s.clock.Now()
	for _, title := range PenaltyQuestTitles {
		// Penalty rewards are flat, not level-scaled.
		if _, err := tasks.Insert(ctx, storage.TaskInsert{
			UserID:       u.ID,
			Title:        title,
			Type:         string(TypePenaltyTask),
			Status:       string(StatusPending),
			Intensity:    string(IntensityHigh),
			Recurrence:   string(RecurrenceOneTime),
			XPReward:     s.settings.PenaltyTaskXP,
			DateAssigned: now,
			AssignedDay:  DayKey(now),
		}); err != nil {
			return PersistenceError{Op: "penalty spawn", Err: err}
		}
		res.PenaltySpawned++
	}
	return nil
}
