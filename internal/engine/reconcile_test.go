package engine

import (
	"context"
	"testing"
	"time"

	"github.com/izumiishikawa/levelite-sub000/internal/storage"
)

// seedDaily inserts a daily quest assigned to a specific day, optionally
// already completed.
func seedDaily(t *testing.T, svc *Service, u *storage.User, day string, done bool) int64 {
	t.Helper()
	status := StatusPending
	if done {
		status = StatusCompleted
	}
	assigned, err := time.Parse("2006-01-02", day)
	if err != nil {
		t.Fatalf("parse day: %v", err)
	}
	id, err := svc.TaskRepo().Insert(context.Background(), storage.TaskInsert{
		UserID:       u.ID,
		Title:        "daily",
		Type:         string(TypeDailyQuest),
		Status:       string(status),
		Intensity:    string(IntensityMedium),
		Recurrence:   string(RecurrenceDaily),
		XPReward:     20,
		DateAssigned: assigned,
		AssignedDay:  day,
	})
	if err != nil {
		t.Fatalf("insert daily: %v", err)
	}
	return id
}

func TestReconcileMissedDailies(t *testing.T) {
	svc, clock, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	u := mustUser(t, svc, "main")
	u.Streak = 7
	if err := svc.UserRepo().Update(ctx, u); err != nil {
		t.Fatalf("update user: %v", err)
	}

	yesterday := PreviousDayKey(clock.Now())
	seedDaily(t, svc, u, yesterday, true)
	seedDaily(t, svc, u, yesterday, false)

	res, err := svc.ReconcileUser(ctx, u.ID, yesterday)
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if res.DailiesAllDone {
		t.Fatalf("reported all done with a pending daily")
	}
	if !res.EnteredPenalty {
		t.Fatalf("expected user to enter the penalty zone")
	}
	if res.PenaltySpawned != len(PenaltyQuestTitles) {
		t.Fatalf("PenaltySpawned=%d, want %d", res.PenaltySpawned, len(PenaltyQuestTitles))
	}
	if res.PurgedDailies != 2 {
		t.Fatalf("PurgedDailies=%d, want 2", res.PurgedDailies)
	}

	u = reloadUser(t, svc, u.ID)
	if u.Streak != 0 {
		t.Fatalf("streak=%d, want reset to 0", u.Streak)
	}
	if !u.InPenaltyZone {
		t.Fatalf("user not in penalty zone")
	}

	// Spawned penalty tasks carry the current day, not the ended one.
	penalties, err := svc.TaskRepo().ListByUser(ctx, u.ID, storage.TaskFilter{Type: string(TypePenaltyTask)})
	if err != nil {
		t.Fatalf("list penalties: %v", err)
	}
	if len(penalties) != len(PenaltyQuestTitles) {
		t.Fatalf("penalty tasks=%d, want %d", len(penalties), len(PenaltyQuestTitles))
	}
	today := DayKey(clock.Now())
	for _, p := range penalties {
		if p.AssignedDay != today {
			t.Fatalf("penalty assigned to %q, want %q", p.AssignedDay, today)
		}
		if p.Status != string(StatusPending) {
			t.Fatalf("penalty status=%q, want pending", p.Status)
		}
		if p.XPReward != svc.Settings().PenaltyTaskXP {
			t.Fatalf("penalty reward=%d, want %d", p.XPReward, svc.Settings().PenaltyTaskXP)
		}
	}
}

func TestReconcileAllDailiesDone(t *testing.T) {
	svc, clock, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	u := mustUser(t, svc, "main")
	u.Streak = 4
	if err := svc.UserRepo().Update(ctx, u); err != nil {
		t.Fatalf("update user: %v", err)
	}

	yesterday := PreviousDayKey(clock.Now())
	seedDaily(t, svc, u, yesterday, true)
	seedDaily(t, svc, u, yesterday, true)

	res, err := svc.ReconcileUser(ctx, u.ID, yesterday)
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if !res.DailiesAllDone {
		t.Fatalf("expected DailiesAllDone")
	}
	if res.EnteredPenalty || res.PenaltySpawned != 0 {
		t.Fatalf("clean day produced a penalty")
	}
	if res.PurgedDailies != 2 {
		t.Fatalf("PurgedDailies=%d, want 2", res.PurgedDailies)
	}

	u = reloadUser(t, svc, u.ID)
	if u.Streak != 4 {
		t.Fatalf("streak=%d, want untouched 4", u.Streak)
	}
	if u.InPenaltyZone {
		t.Fatalf("user entered penalty zone on a clean day")
	}

	day, err := svc.DayRepo().Get(ctx, u.ID, yesterday)
	if err != nil {
		t.Fatalf("get day: %v", err)
	}
	if !day.Completed {
		t.Fatalf("day record not marked completed")
	}
}

func TestReconcileUnclearedPenaltyZone(t *testing.T) {
	svc, clock, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	u := mustUser(t, svc, "main")
	u.InPenaltyZone = true
	if err := svc.UserRepo().Update(ctx, u); err != nil {
		t.Fatalf("update user: %v", err)
	}
	startHealth := u.Health

	// Stale penalty tasks from the previous cycle, one half-finished.
	insertTask(t, svc, u, TypePenaltyTask, 25)
	stale := insertTask(t, svc, u, TypePenaltyTask, 25)
	if err := svc.TaskRepo().UpdateStatus(ctx, stale, string(StatusCompleted)); err != nil {
		t.Fatalf("mark stale: %v", err)
	}

	yesterday := PreviousDayKey(clock.Now())
	res, err := svc.ReconcileUser(ctx, u.ID, yesterday)
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if res.DamageApplied != svc.Settings().PenaltyDamage {
		t.Fatalf("DamageApplied=%d, want %d", res.DamageApplied, svc.Settings().PenaltyDamage)
	}
	if res.PurgedPenalty != 2 {
		t.Fatalf("PurgedPenalty=%d, want 2", res.PurgedPenalty)
	}

	u = reloadUser(t, svc, u.ID)
	if u.Health != startHealth-svc.Settings().PenaltyDamage {
		t.Fatalf("health=%d, want %d", u.Health, startHealth-svc.Settings().PenaltyDamage)
	}
	if u.InPenaltyZone {
		t.Fatalf("penalty zone not cleared after damage")
	}

	day, err := svc.DayRepo().Get(ctx, u.ID, yesterday)
	if err != nil {
		t.Fatalf("get day: %v", err)
	}
	if !day.Penalized {
		t.Fatalf("day record not marked penalized")
	}
}

func TestReconcileHealthFloorsAtZero(t *testing.T) {
	svc, clock, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	u := mustUser(t, svc, "main")
	u.InPenaltyZone = true
	u.Health = 5
	if err := svc.UserRepo().Update(ctx, u); err != nil {
		t.Fatalf("update user: %v", err)
	}

	if _, err := svc.ReconcileUser(ctx, u.ID, PreviousDayKey(clock.Now())); err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	u = reloadUser(t, svc, u.ID)
	if u.Health != 0 {
		t.Fatalf("health=%d, want clamp at 0", u.Health)
	}
}

func TestReconcileNoDailiesIsNoOp(t *testing.T) {
	svc, clock, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	u := mustUser(t, svc, "main")
	u.Streak = 3
	if err := svc.UserRepo().Update(ctx, u); err != nil {
		t.Fatalf("update user: %v", err)
	}

	res, err := svc.ReconcileUser(ctx, u.ID, PreviousDayKey(clock.Now()))
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if res.EnteredPenalty || res.PenaltySpawned != 0 || res.DamageApplied != 0 {
		t.Fatalf("empty day produced side effects: %+v", res)
	}

	u = reloadUser(t, svc, u.ID)
	if u.Streak != 3 {
		t.Fatalf("streak=%d, want untouched 3", u.Streak)
	}
	if u.InPenaltyZone {
		t.Fatalf("user entered penalty zone with no dailies generated")
	}
}

func TestReconcileMarksOverdueTasks(t *testing.T) {
	svc, clock, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	u := mustUser(t, svc, "main")
	yesterday := PreviousDayKey(clock.Now())

	assigned, _ := time.Parse("2006-01-02", yesterday)
	staleID, err := svc.TaskRepo().Insert(ctx, storage.TaskInsert{
		UserID:       u.ID,
		Title:        "read a chapter",
		Type:         string(TypeUserTask),
		Status:       string(StatusPending),
		Intensity:    string(IntensityLow),
		Recurrence:   string(RecurrenceOneTime),
		XPReward:     23,
		DateAssigned: assigned,
		AssignedDay:  yesterday,
	})
	if err != nil {
		t.Fatalf("insert stale task: %v", err)
	}
	// Today's pending task must be left alone.
	freshID := insertTask(t, svc, u, TypeUserTask, 23)

	res, err := svc.ReconcileUser(ctx, u.ID, yesterday)
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if res.MarkedOverdue != 1 {
		t.Fatalf("MarkedOverdue=%d, want 1", res.MarkedOverdue)
	}

	stale, err := svc.TaskRepo().Get(ctx, staleID)
	if err != nil {
		t.Fatalf("get stale: %v", err)
	}
	if stale.Status != string(StatusIncomplete) {
		t.Fatalf("stale status=%q, want incomplete", stale.Status)
	}

	fresh, err := svc.TaskRepo().Get(ctx, freshID)
	if err != nil {
		t.Fatalf("get fresh: %v", err)
	}
	if fresh.Status != string(StatusPending) {
		t.Fatalf("fresh status=%q, want pending", fresh.Status)
	}
}
