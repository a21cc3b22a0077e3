package engine

import (
	"context"
	"database/sql"

	"github.com/izumiishikawa/levelite-sub000/internal/storage"
)

type RestoreResult struct {
	TaskID      int64
	XPDeducted  int
	LevelBefore int
	LevelAfter  int
	LevelDown   bool
	LevelsLost  int
}

// RestoreTask returns a non-pending task to pending and reverses the XP
// bookkeeping of its completion. The completion ledger is authoritative: XP
// is deducted only when a completion event exists for the task, so restoring
// a task the scheduler marked incomplete (which never paid out) deducts
// nothing. Deleveling refunds one threshold at a time and floors at level 1
// with XP clamped to zero.
func (s *Service) RestoreTask(ctx context.Context, userName string, taskID int64) (*RestoreResult, error) {
	var res *RestoreResult
	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		users := s.users.WithTx(tx)
		tasks := s.tasks.WithTx(tx)
		events := s.events.WithTx(tx)

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
		if t.Status == string(StatusPending) {
			return StateError{TaskID: taskID, Status: TaskStatus(t.Status), Op: "restored"}
		}

		levelBefore := u.Level
		deducted := 0

		last, err := events.Last(ctx, t.ID)
		if err != nil {
			return PersistenceError{Op: "event lookup", Err: err}
		}
		if last != nil {
			deducted = last.XPAwarded
			u.CurrentXP -= deducted
			u.TotalXP -= deducted
			if u.TotalXP < 0 {
				u.TotalXP = 0
			}
			if err := events.Delete(ctx, last.ID); err != nil {
				return PersistenceError{Op: "event delete", Err: err}
			}
		}
		lost := resolveDelevels(u, s.settings)

		if err := tasks.MarkPending(ctx, t.ID); err != nil {
			return PersistenceError{Op: "task restore", Err: err}
		}
		if err := users.Update(ctx, u); err != nil {
			return PersistenceError{Op: "user update", Err: err}
		}

		res = &RestoreResult{
			TaskID:      t.ID,
			XPDeducted:  deducted,
			LevelBefore: levelBefore,
			LevelAfter:  u.Level,
			LevelDown:   lost > 0,
			LevelsLost:  lost,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
