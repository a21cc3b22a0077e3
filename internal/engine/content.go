package engine

import (
	"context"
	"database/sql"

	"github.com/izumiishikawa/levelite-sub000/internal/storage"
)

// ContentSource produces quest drafts for a user. AI generation, user
// authoring and the built-in fallback all satisfy it; the engine does not
// care which one it is talking to.
type ContentSource interface {
	DailyQuests(u *storage.User) []TaskDraft
	ClassQuests(u *storage.User) []TaskDraft
}

// StaticContentSource is the built-in offline source used by the CLI when no
// AI generator is wired in.
type StaticContentSource struct{}

func (StaticContentSource) DailyQuests(u *storage.User) []TaskDraft {
	return []TaskDraft{
		{Title: "Morning stretch", Intensity: IntensityLow, Type: TypeDailyQuest, Recurrence: RecurrenceDaily},
		{Title: "30 minutes of focused work", Intensity: IntensityMedium, Type: TypeDailyQuest, Recurrence: RecurrenceDaily},
		{Title: "Read 20 pages", Intensity: IntensityMedium, Type: TypeDailyQuest, Recurrence: RecurrenceDaily},
		{Title: "Train for 45 minutes", Intensity: IntensityHigh, Type: TypeDailyQuest, Recurrence: RecurrenceDaily},
	}
}

func (StaticContentSource) ClassQuests(u *storage.User) []TaskDraft {
	return []TaskDraft{
		{Title: "Practice your class skill", Intensity: IntensityMedium, Type: TypeClassQuest, Recurrence: RecurrenceDaily},
	}
}

type GenerateResult struct {
	Created int
	// Skipped is true when today's batch was already generated and the call
	// was a no-op.
	Skipped bool
}

// GenerateDailyQuests inserts today's daily quest batch for the user. The day
// record's generated flag gates it to once per calendar day, so a retry or a
// double tap cannot duplicate the batch.
func (s *Service) GenerateDailyQuests(ctx context.Context, userName string, src ContentSource) (*GenerateResult, error) {
	return s.generate(ctx, userName, src, false)
}

// GenerateClassQuests is the class-quest counterpart, gated independently.
func (s *Service) GenerateClassQuests(ctx context.Context, userName string, src ContentSource) (*GenerateResult, error) {
	return s.generate(ctx, userName, src, true)
}

func (s *Service) generate(ctx context.Context, userName string, src ContentSource, class bool) (*GenerateResult, error) {
	var res *GenerateResult
	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		users := s.users.WithTx(tx)
		tasks := s.tasks.WithTx(tx)
		days := s.days.WithTx(tx)

		u, err := getUserTx(ctx, users, userName)
		if err != nil {
			return err
		}

		today := DayKey(s.clock.Now())
		d, err := days.Get(ctx, u.ID, today)
		if err != nil {
			return PersistenceError{Op: "day lookup", Err: err}
		}
		if (class && d.ClassGenerated) || (!class && d.Generated) {
			res = &GenerateResult{Skipped: true}
			return nil
		}

		var drafts []TaskDraft
		if class {
			drafts = src.ClassQuests(u)
		} else {
			drafts = src.DailyQuests(u)
		}

		created := 0
		for _, draft := range drafts {
			if err := draft.validate(); err != nil {
				return err
			}
			if _, _, err := insertDraft(ctx, tasks, u, draft, s); err != nil {
				return err
			}
			created++
		}

		if class {
			d.ClassGenerated = true
		} else {
			d.Generated = true
		}
		if err := days.Upsert(ctx, d); err != nil {
			return PersistenceError{Op: "day update", Err: err}
		}

		res = &GenerateResult{Created: created}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
