package storage

import "time"

type User struct {
	ID                 int64
	Name               string
	Level              int
	CurrentXP          int
	XPForNextLevel     int
	TotalXP            int
	PointsToDistribute int
	Streak             int
	InPenaltyZone      bool
	Health             int
	MaxHealth          int
	Coins              int
	// Attribute stats raised via point allocation
	Strength     int
	Intelligence int
	Discipline   int
	Vitality     int

	LastTaskCompletedAt *time.Time
	LastDailyCompletion *time.Time
	CreatedAt           time.Time
}

type Task struct {
	ID            int64
	UserID        int64
	Title         string
	Description   *string
	Type          string
	Status        string
	Intensity     string
	Recurrence    string
	XPReward      int
	DateAssigned  time.Time
	AssignedDay   string // YYYY-MM-DD in the engine clock's location
	DateCompleted *time.Time
}

// TaskEvent is one row of the append-only completion ledger. Restore removes
// the matching event; everything else only appends.
type TaskEvent struct {
	ID          int64
	TaskID      int64
	UserID      int64
	Day         string
	XPAwarded   int
	CompletedAt time.Time
}

// DayRecord keys once-per-day state by (user, day) instead of mutable booleans
// on the user row, so a request landing exactly on the day boundary cannot
// leak state across days.
type DayRecord struct {
	UserID         int64
	Day            string
	Generated      bool
	ClassGenerated bool
	AllDone        bool
	Completed      bool
	Penalized      bool
}

type ReconcileRun struct {
	ID         int64
	Day        string
	Status     string
	StartedAt  time.Time
	FinishedAt *time.Time
	Processed  int
	Failed     int
}
