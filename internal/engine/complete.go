package engine

import (
	"context"
	"database/sql"
	"time"

	"github.com/izumiishikawa/levelite-sub000/internal/storage"
)

type CompleteResult struct {
	TaskID       int64
	XPAwarded    int
	LevelBefore  int
	LevelAfter   int
	LevelUp      bool
	LevelsGained int

	// Daily-quest hook results
	AllDailiesDone bool
	CoinsAwarded   int
	StreakAfter    int

	// Penalty hook result
	PenaltyCleared bool
}

// CompleteTask transitions a pending task to completed and applies its frozen
// XP reward to the owner. The task, user, day record and completion event are
// written in one transaction, so a crash cannot leave XP and task status
// disagreeing.
func (s *Service) CompleteTask(ctx context.Context, userName string, taskID int64) (*CompleteResult, error) {
	var res *CompleteResult
	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		users := s.users.WithTx(tx)
		tasks := s.tasks.WithTx(tx)
		events := s.events.WithTx(tx)
		days := s.days.WithTx(tx)

		u, err := getUserTx(ctx, users, userName)
		if err != nil {
			return err
		}

		t, err := tasks.Get(ctx, taskID)
		if err != nil {
			return PersistenceError{Op: "task lookup", Err: err}
		}
		if t == nil || t.UserID != u.ID {
			return NotFoundError{Kind: "task", Ref: itoa(taskID)}
		}
		if t.Status != string(StatusPending) {
			return StateError{TaskID: taskID, Status: TaskStatus(t.Status), Op: "completed"}
		}

		now := s.clock.Now()
		day := DayKey(now)
		levelBefore := u.Level

		if err := tasks.MarkCompleted(ctx, t.ID, now); err != nil {
			return PersistenceError{Op: "task complete", Err: err}
		}

		u.CurrentXP += t.XPReward
		u.TotalXP += t.XPReward
		u.LastTaskCompletedAt = &now
		gained := resolveLevelUps(u, s.settings)

		if _, err := events.Insert(ctx, t.ID, u.ID, day, t.XPReward, now); err != nil {
			return PersistenceError{Op: "event insert", Err: err}
		}

		res = &CompleteResult{
			TaskID:       t.ID,
			XPAwarded:    t.XPReward,
			LevelBefore:  levelBefore,
			LevelAfter:   u.Level,
			LevelUp:      gained > 0,
			LevelsGained: gained,
		}

		switch TaskType(t.Type) {
		case TypeDailyQuest:
			if err := s.onDailyQuestCompleted(ctx, tasks, days, u, t, now, res); err != nil {
				return err
			}
		case TypePenaltyTask:
			if err := s.onPenaltyTaskCompleted(ctx, tasks, u, res); err != nil {
				return err
			}
		}

		res.StreakAfter = u.Streak
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

// onDailyQuestCompleted awards the daily bonus when the last pending daily
// quest of the task's assigned day just completed. The day record's all_done
// flag guards the bonus so it fires at most once per day.
func (s *Service) onDailyQuestCompleted(ctx context.Context, tasks *storage.TaskRepo, days *storage.DayRepo, u *storage.User, t *storage.Task, now time.Time, res *CompleteResult) error {
	remaining, err := tasks.ListByUser(ctx, u.ID, storage.TaskFilter{
		Type:        string(TypeDailyQuest),
		Status:      string(StatusPending),
		AssignedDay: t.AssignedDay,
	})
	if err != nil {
		return PersistenceError{Op: "daily quest scan", Err: err}
	}
	if len(remaining) > 0 {
		return nil
	}

	d, err := days.Get(ctx, u.ID, t.AssignedDay)
	if err != nil {
		return PersistenceError{Op: "day lookup", Err: err}
	}
	if d.AllDone {
		return nil
	}

	d.AllDone = true
	d.Completed = true
	if err := days.Upsert(ctx, d); err != nil {
		return PersistenceError{Op: "day update", Err: err}
	}

	u.Coins += s.settings.DailyCoinBonus
	u.Streak++
	u.LastDailyCompletion = &now

	res.AllDailiesDone = true
	res.CoinsAwarded = s.settings.DailyCoinBonus
	return nil
}

// onPenaltyTaskCompleted clears the penalty zone once no penalty tasks remain
// pending.
func (s *Service) onPenaltyTaskCompleted(ctx context.Context, tasks *storage.TaskRepo, u *storage.User, res *CompleteResult) error {
	remaining, err := tasks.ListByUser(ctx, u.ID, storage.TaskFilter{
		Type:   string(TypePenaltyTask),
		Status: string(StatusPending),
	})
	if err != nil {
		return PersistenceError{Op: "penalty task scan", Err: err}
	}
	if len(remaining) == 0 && u.InPenaltyZone {
		u.InPenaltyZone = false
		res.PenaltyCleared = true
	}
	return nil
}
