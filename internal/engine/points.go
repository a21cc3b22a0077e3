package engine

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/izumiishikawa/levelite-sub000/internal/storage"
)

// AllocatePoints spends unspent level-up points on an attribute stat. The
// allocation is all-or-nothing: asking for more than the pool holds is
// rejected without touching the user.
func (s *Service) AllocatePoints(ctx context.Context, userName string, stat Stat, amount int) error {
	if !stat.IsValid() {
		return fmt.Errorf("invalid stat: %q", stat)
	}
	if amount <= 0 {
		return fmt.Errorf("amount must be positive, got %d", amount)
	}

	return storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		users := s.users.WithTx(tx)

		u, err := getUserTx(ctx, users, userName)
		if err != nil {
			return err
		}
		if amount > u.PointsToDistribute {
			return InsufficientPointsError{Requested: amount, Available: u.PointsToDistribute}
		}

		u.PointsToDistribute -= amount
		switch stat {
		case StatStrength:
			u.Strength += amount
		case StatIntelligence:
			u.Intelligence += amount
		case StatDiscipline:
			u.Discipline += amount
		case StatVitality:
			u.Vitality += amount
		}

		if err := users.Update(ctx, u); err != nil {
			return PersistenceError{Op: "user update", Err: err}
		}
		return nil
	})
}
