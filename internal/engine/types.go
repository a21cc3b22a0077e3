package engine

import "strings"

type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusCompleted  TaskStatus = "completed"
	StatusIncomplete TaskStatus = "incomplete"
)

type TaskType string

const (
	TypeUserTask    TaskType = "userTask"
	TypeDailyQuest  TaskType = "dailyQuests"
	TypeClassQuest  TaskType = "classQuests"
	TypePenaltyTask TaskType = "penaltyTask"
	TypeAITask      TaskType = "aiTask"
)

func (t TaskType) IsValid() bool {
	switch t {
	case TypeUserTask, TypeDailyQuest, TypeClassQuest, TypePenaltyTask, TypeAITask:
		return true
	default:
		return false
	}
}

type Intensity string

const (
	IntensityLow    Intensity = "low"
	IntensityMedium Intensity = "medium"
	IntensityHigh   Intensity = "high"
)

func (i Intensity) IsValid() bool {
	switch i {
	case IntensityLow, IntensityMedium, IntensityHigh:
		return true
	default:
		return false
	}
}

// DefaultIntensity is used when user input is missing/invalid.
const DefaultIntensity Intensity = IntensityMedium

// ParseIntensity parses user input to an Intensity. Empty or unrecognized
// input returns DefaultIntensity.
func ParseIntensity(input string) Intensity {
	s := strings.TrimSpace(strings.ToLower(input))
	i := Intensity(s)
	if i.IsValid() {
		return i
	}
	return DefaultIntensity
}

type Recurrence string

const (
	RecurrenceOneTime Recurrence = "one-time"
	RecurrenceDaily   Recurrence = "daily"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
	RecurrenceCustom  Recurrence = "custom"
)

func (r Recurrence) IsValid() bool {
	switch r {
	case RecurrenceOneTime, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly, RecurrenceCustom:
		return true
	default:
		return false
	}
}

type Stat string

const (
	StatStrength     Stat = "strength"
	StatIntelligence Stat = "intelligence"
	StatDiscipline   Stat = "discipline"
	StatVitality     Stat = "vitality"
)

func (s Stat) IsValid() bool {
	switch s {
	case StatStrength, StatIntelligence, StatDiscipline, StatVitality:
		return true
	default:
		return false
	}
}

// ParseStat parses user input to a Stat. Unrecognized input returns "" which
// fails IsValid.
func ParseStat(input string) Stat {
	s := strings.TrimSpace(strings.ToLower(input))
	switch s {
	case "str", "strength":
		return StatStrength
	case "int", "intelligence":
		return StatIntelligence
	case "dis", "discipline":
		return StatDiscipline
	case "vit", "vitality":
		return StatVitality
	default:
		return Stat(s)
	}
}
