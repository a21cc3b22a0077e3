package engine

import (
	"context"
	"database/sql"
	"strconv"

	"github.com/izumiishikawa/levelite-sub000/internal/storage"
)

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

// Settings bundles the tunables the engine needs beyond the growth curve.
type Settings struct {
	Curve          Curve
	PointsPerLevel int
	DailyCoinBonus int
	PenaltyDamage  int
	PenaltyTaskXP  int
}

func DefaultSettings() Settings {
	return Settings{
		Curve:          DefaultCurve(),
		PointsPerLevel: 3,
		DailyCoinBonus: 50,
		PenaltyDamage:  20,
		PenaltyTaskXP:  25,
	}
}

type Service struct {
	db       *sql.DB
	clock    Clock
	settings Settings

	users  *storage.UserRepo
	tasks  *storage.TaskRepo
	events *storage.EventRepo
	days   *storage.DayRepo
}

func NewService(db *sql.DB, settings Settings, clock Clock) *Service {
	if clock == nil {
		clock = SystemClock()
	}
	return &Service{
		db:       db,
		clock:    clock,
		settings: settings,
		users:    storage.NewUserRepo(db),
		tasks:    storage.NewTaskRepo(db),
		events:   storage.NewEventRepo(db),
		days:     storage.NewDayRepo(db),
	}
}

func (s *Service) UserRepo() *storage.UserRepo   { return s.users }
func (s *Service) TaskRepo() *storage.TaskRepo   { return s.tasks }
func (s *Service) EventRepo() *storage.EventRepo { return s.events }
func (s *Service) DayRepo() *storage.DayRepo     { return s.days }
func (s *Service) Clock() Clock                  { return s.clock }
func (s *Service) Settings() Settings            { return s.settings }

// GetOrCreateUser returns the named user, creating a level-1 record with the
// curve's starting threshold when missing.
func (s *Service) GetOrCreateUser(ctx context.Context, name string) (*storage.User, error) {
	return s.users.GetOrCreate(ctx, name, s.settings.Curve.XPForNextLevel(1))
}

func getUserTx(ctx context.Context, users *storage.UserRepo, name string) (*storage.User, error) {
	u, err := users.GetByName(ctx, name)
	if err != nil {
		return nil, PersistenceError{Op: "user lookup", Err: err}
	}
	if u == nil {
		return nil, NotFoundError{Kind: "user", Ref: name}
	}
	return u, nil
}

// resolveLevelUps converts excess XP into levels one at a time, so a single
// large reward can cross several thresholds. Returns the number of levels
// gained. After it runs, CurrentXP < XPForNextLevel always holds.
func resolveLevelUps(u *storage.User, settings Settings) int {
	gained := 0
	for u.CurrentXP >= u.XPForNextLevel {
		u.CurrentXP -= u.XPForNextLevel
		u.Level++
		u.PointsToDistribute += settings.PointsPerLevel
		u.XPForNextLevel = settings.Curve.XPForNextLevel(u.Level)
		gained++
	}
	return gained
}

// resolveDelevels is the inverse walk: while CurrentXP is negative, drop one
// level and refund that level's threshold, flooring at level 1 with XP
// clamped to zero. Unspent points are not clawed back; they only shrink via
// explicit allocation.
func resolveDelevels(u *storage.User, settings Settings) int {
	lost := 0
	for u.CurrentXP < 0 && u.Level > 1 {
		u.Level--
		u.XPForNextLevel = settings.Curve.XPForNextLevel(u.Level)
		u.CurrentXP += u.XPForNextLevel
		lost++
	}
	if u.CurrentXP < 0 {
		u.CurrentXP = 0
	}
	return lost
}
