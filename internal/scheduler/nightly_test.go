package scheduler

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/izumiishikawa/levelite-sub000/internal/engine"
	"github.com/izumiishikawa/levelite-sub000/internal/storage"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

func newTestEngine(t *testing.T) (*engine.Service, *sql.DB) {
	t.Helper()
	ctx := context.Background()
	db, err := storage.Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	clock := fixedClock{now: time.Date(2025, 3, 10, 0, 5, 0, 0, time.UTC)}
	return engine.NewService(db, engine.DefaultSettings(), clock), db
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// failFor wraps a Reconciler and fails reconciliation for one user ID.
type failFor struct {
	Reconciler
	userID int64
}

func (f failFor) ReconcileUser(ctx context.Context, userID int64, day string) (*engine.ReconcileResult, error) {
	if userID == f.userID {
		return nil, errors.New("corrupt record")
	}
	return f.Reconciler.ReconcileUser(ctx, userID, day)
}

func TestRunOnceIsolatesFailures(t *testing.T) {
	svc, db := newTestEngine(t)
	ctx := context.Background()

	var ids []int64
	for _, name := range []string{"alice", "bob", "carol"} {
		u, err := svc.GetOrCreateUser(ctx, name)
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		ids = append(ids, u.ID)
	}

	nightly := New(db, failFor{Reconciler: svc, userID: ids[1]}, 0, quietLogger())
	day := engine.PreviousDayKey(svc.Clock().Now())

	stats, err := nightly.RunOnce(ctx, day)
	if err != nil {
		t.Fatalf("run once: %v", err)
	}
	if stats.Processed != 2 {
		t.Fatalf("Processed=%d, want 2", stats.Processed)
	}
	if stats.Failed != 1 {
		t.Fatalf("Failed=%d, want 1", stats.Failed)
	}
	if stats.Skipped {
		t.Fatalf("first run marked skipped")
	}
}

func TestRunOnceIdempotentPerDay(t *testing.T) {
	svc, db := newTestEngine(t)
	ctx := context.Background()

	u, err := svc.GetOrCreateUser(ctx, "main")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	u.InPenaltyZone = true
	if err := svc.UserRepo().Update(ctx, u); err != nil {
		t.Fatalf("update user: %v", err)
	}

	nightly := New(db, svc, 0, quietLogger())
	day := engine.PreviousDayKey(svc.Clock().Now())

	stats, err := nightly.RunOnce(ctx, day)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if stats.Processed != 1 {
		t.Fatalf("Processed=%d, want 1", stats.Processed)
	}

	u, err = svc.UserRepo().GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	healthAfterFirst := u.Health

	// A retry for the same day must not apply penalty damage again.
	stats, err = nightly.RunOnce(ctx, day)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !stats.Skipped {
		t.Fatalf("second run for the same day was not skipped")
	}

	u, err = svc.UserRepo().GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if u.Health != healthAfterFirst {
		t.Fatalf("health=%d changed on skipped run, want %d", u.Health, healthAfterFirst)
	}

	run, err := storage.NewRunRepo(db).Last(ctx)
	if err != nil {
		t.Fatalf("last run: %v", err)
	}
	if run == nil || run.Day != day {
		t.Fatalf("run ledger missing entry for %s", day)
	}
}

func TestNextBoundary(t *testing.T) {
	loc := time.UTC
	cases := []struct {
		now  time.Time
		hour int
		want time.Time
	}{
		{time.Date(2025, 3, 10, 23, 30, 0, 0, loc), 0, time.Date(2025, 3, 11, 0, 0, 0, 0, loc)},
		{time.Date(2025, 3, 10, 0, 0, 0, 0, loc), 0, time.Date(2025, 3, 11, 0, 0, 0, 0, loc)},
		{time.Date(2025, 3, 10, 2, 0, 0, 0, loc), 4, time.Date(2025, 3, 10, 4, 0, 0, 0, loc)},
		{time.Date(2025, 3, 10, 5, 0, 0, 0, loc), 4, time.Date(2025, 3, 11, 4, 0, 0, 0, loc)},
	}
	for _, c := range cases {
		got := nextBoundary(c.now, c.hour)
		if !got.Equal(c.want) {
			t.Errorf("nextBoundary(%v, %d) = %v, want %v", c.now, c.hour, got, c.want)
		}
	}
}

func TestRunReturnsOnCancel(t *testing.T) {
	svc, db := newTestEngine(t)
	nightly := New(db, svc, 0, quietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- nightly.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Run returned %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not return after cancel")
	}
}
