package engine

import (
	"context"
	"database/sql"

	"github.com/izumiishikawa/levelite-sub000/internal/storage"
)

// DeleteTask removes a task unconditionally. Deleting a completed task does
// NOT claw back its XP; use restore first to undo the reward.
func (s *Service) DeleteTask(ctx context.Context, userName string, taskID int64) error {
	return storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		users := s.users.WithTx(tx)
		tasks := s.tasks.WithTx(tx)

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

		if err := tasks.Delete(ctx, t.ID); err != nil {
			return PersistenceError{Op: "task delete", Err: err}
		}
		return nil
	})
}
