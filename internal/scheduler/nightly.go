package scheduler

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/izumiishikawa/levelite-sub000/internal/engine"
	"github.com/izumiishikawa/levelite-sub000/internal/storage"
)

// Reconciler is the slice of the engine the nightly job needs.
type Reconciler interface {
	ReconcileUser(ctx context.Context, userID int64, day string) (*engine.ReconcileResult, error)
	UserRepo() *storage.UserRepo
	Clock() engine.Clock
}

// Nightly iterates every user once per day and applies the day-boundary
// rules. Users are processed independently: one bad record is logged and
// skipped, never aborting the batch. The run ledger makes a crashed or
// double-fired run visible instead of silently re-running.
type Nightly struct {
	svc          Reconciler
	runs         *storage.RunRepo
	boundaryHour int
	log          *slog.Logger
}

func New(db *sql.DB, svc Reconciler, boundaryHour int, log *slog.Logger) *Nightly {
	if log == nil {
		log = slog.Default()
	}
	return &Nightly{
		svc:          svc,
		runs:         storage.NewRunRepo(db),
		boundaryHour: boundaryHour,
		log:          log,
	}
}

type RunStats struct {
	Day       string
	Skipped   bool
	Processed int
	Failed    int
}

// RunOnce reconciles every user for the given ended day. If a completed run
// is already recorded for that day the call is a no-op, so cron retries and
// crash-restart double fires are idempotent.
func (n *Nightly) RunOnce(ctx context.Context, day string) (*RunStats, error) {
	done, err := n.runs.CompletedForDay(ctx, day)
	if err != nil {
		return nil, err
	}
	if done {
		n.log.Info("reconciliation already completed, skipping",
			slog.String("day", day))
		return &RunStats{Day: day, Skipped: true}, nil
	}

	now := n.svc.Clock().Now()
	runID, err := n.runs.Start(ctx, day, now)
	if err != nil {
		return nil, err
	}

	users, err := n.svc.UserRepo().ListAll(ctx)
	if err != nil {
		return nil, err
	}

	stats := &RunStats{Day: day}
	for _, u := range users {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		if err := n.reconcileOne(ctx, u, day); err != nil {
			stats.Failed++
			n.log.Error("failed to reconcile user",
				slog.String("user", u.Name),
				slog.String("day", day),
				slog.Any("error", err))
			continue
		}
		stats.Processed++
	}

	if err := n.runs.Finish(ctx, runID, n.svc.Clock().Now(), stats.Processed, stats.Failed); err != nil {
		return stats, err
	}
	n.log.Info("reconciliation run finished",
		slog.String("day", day),
		slog.Int("processed", stats.Processed),
		slog.Int("failed", stats.Failed))
	return stats, nil
}

// reconcileOne isolates a single user's reconciliation, converting panics
// from malformed records into errors.
func (n *Nightly) reconcileOne(ctx context.Context, u storage.User, day string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic reconciling user %s: %v", u.Name, r)
		}
	}()

	res, err := n.svc.ReconcileUser(ctx, u.ID, day)
	if err != nil {
		return err
	}
	if res.EnteredPenalty {
		n.log.Info("user entered penalty zone",
			slog.String("user", u.Name),
			slog.String("day", day),
			slog.Int("penalty_tasks", res.PenaltySpawned))
	}
	return nil
}

// Run is the daemon loop: sleep until the next boundary, reconcile the day
// that just ended, repeat. Returns when ctx is canceled.
func (n *Nightly) Run(ctx context.Context) error {
	for {
		now := n.svc.Clock().Now()
		next := nextBoundary(now, n.boundaryHour)
		n.log.Info("waiting for next day boundary",
			slog.Time("at", next))

		timer := time.NewTimer(next.Sub(now))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		endedDay := engine.PreviousDayKey(next)
		if _, err := n.RunOnce(ctx, endedDay); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			n.log.Error("reconciliation run failed",
				slog.String("day", endedDay),
				slog.Any("error", err))
		}
	}
}

// nextBoundary returns the next occurrence of the boundary hour strictly
// after now.
func nextBoundary(now time.Time, hour int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
