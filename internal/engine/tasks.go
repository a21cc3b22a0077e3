package engine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/izumiishikawa/levelite-sub000/internal/storage"
)

// TaskDraft is what a content source (AI generation or user authoring)
// supplies. It carries no reward: the engine computes xp_reward from the
// owner's level and never trusts an externally supplied value.
type TaskDraft struct {
	Title       string
	Description string
	Intensity   Intensity
	Type        TaskType
	Recurrence  Recurrence
}

type AddResult struct {
	TaskID   int64
	XPReward int
}

func normalizeTitle(title string) (string, error) {
	t := strings.TrimSpace(title)
	if t == "" {
		return "", errors.New("title is required")
	}
	return t, nil
}

func (d *TaskDraft) validate() error {
	title, err := normalizeTitle(d.Title)
	if err != nil {
		return err
	}
	d.Title = title
	if !d.Intensity.IsValid() {
		d.Intensity = DefaultIntensity
	}
	if d.Type == "" {
		d.Type = TypeUserTask
	}
	if !d.Type.IsValid() {
		return fmt.Errorf("invalid task type: %q", d.Type)
	}
	if d.Type == TypePenaltyTask {
		return errors.New("penalty tasks are assigned by reconciliation, not authored")
	}
	if d.Recurrence == "" {
		d.Recurrence = RecurrenceOneTime
	}
	if !d.Recurrence.IsValid() {
		return fmt.Errorf("invalid recurrence: %q", d.Recurrence)
	}
	return nil
}

// AddTask persists a draft as a pending task owned by the named user, pricing
// its reward off the user's current level.
func (s *Service) AddTask(ctx context.Context, userName string, draft TaskDraft) (*AddResult, error) {
	if err := draft.validate(); err != nil {
		return nil, err
	}

	var res *AddResult
	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		users := s.users.WithTx(tx)
		tasks := s.tasks.WithTx(tx)

		u, err := getUserTx(ctx, users, userName)
		if err != nil {
			return err
		}

		id, reward, err := insertDraft(ctx, tasks, u, draft, s)
		if err != nil {
			return err
		}
		res = &AddResult{TaskID: id, XPReward: reward}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func insertDraft(ctx context.Context, tasks *storage.TaskRepo, u *storage.User, draft TaskDraft, s *Service) (int64, int, error) {
	now := s.clock.Now()
	reward := s.settings.Curve.TaskXPReward(u.Level, draft.Intensity)

	var desc *string
	if d := strings.TrimSpace(draft.Description); d != "" {
		desc = &d
	}

	id, err := tasks.Insert(ctx, storage.TaskInsert{
		UserID:       u.ID,
		Title:        draft.Title,
		Description:  desc,
		Type:         string(draft.Type),
		Status:       string(StatusPending),
		Intensity:    string(draft.Intensity),
		Recurrence:   string(draft.Recurrence),
		XPReward:     reward,
		DateAssigned: now,
		AssignedDay:  DayKey(now),
	})
	if err != nil {
		return 0, 0, PersistenceError{Op: "task insert", Err: err}
	}
	return id, reward, nil
}
