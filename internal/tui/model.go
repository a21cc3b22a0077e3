package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/izumiishikawa/levelite-sub000/internal/engine"
	"github.com/izumiishikawa/levelite-sub000/internal/storage"
)

type boardModel struct {
	ctx      context.Context
	svc      *engine.Service
	userName string

	width  int
	height int

	user  *storage.User
	tasks []storage.Task

	selected int
	lastLog  string
	loading  bool
	err      error
}

type loadedMsg struct {
	user  *storage.User
	tasks []storage.Task
	err   error
}

type completedMsg struct {
	id  int64
	res *engine.CompleteResult
	err error
}

func newBoardModel(ctx context.Context, svc *engine.Service, userName string) boardModel {
	return boardModel{
		ctx:      ctx,
		svc:      svc,
		userName: userName,
		loading:  true,
		lastLog:  "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		u, err := m.svc.GetOrCreateUser(m.ctx, m.userName)
		if err != nil {
			return loadedMsg{err: err}
		}
		today := engine.DayKey(m.svc.Clock().Now())
		tasks, err := m.svc.TaskRepo().ListByUser(m.ctx, u.ID, storage.TaskFilter{AssignedDay: today})
		if err != nil {
			return loadedMsg{err: err}
		}
		// Penalty tasks may carry an older assigned day; always show them.
		penalties, err := m.svc.TaskRepo().ListByUser(m.ctx, u.ID, storage.TaskFilter{Type: string(engine.TypePenaltyTask)})
		if err != nil {
			return loadedMsg{err: err}
		}
		for _, p := range penalties {
			if p.AssignedDay != today {
				tasks = append(tasks, p)
			}
		}
		return loadedMsg{user: u, tasks: tasks}
	}
}

func (m boardModel) completeCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.CompleteTask(m.ctx, m.userName, id)
		return completedMsg{id: id, res: res, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.user = msg.user
		m.tasks = msg.tasks
		if m.selected >= len(m.tasks) {
			m.selected = len(m.tasks) - 1
		}
		if m.selected < 0 {
			m.selected = 0
		}
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case completedMsg:
		if msg.err != nil {
			m.lastLog = "Complete failed: " + msg.err.Error()
			return m, nil
		}
		m.lastLog = completionLog(msg.res)
		return m, m.loadCmd()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.tasks)-1 {
				m.selected++
			}
			return m, nil
		case "c", " ", "enter":
			if m.selected < 0 || m.selected >= len(m.tasks) {
				return m, nil
			}
			t := m.tasks[m.selected]
			if t.Status != string(engine.StatusPending) {
				m.lastLog = "Only pending tasks can be completed."
				return m, nil
			}
			m.lastLog = fmt.Sprintf("Completing %d…", t.ID)
			return m, m.completeCmd(t.ID)
		}
	}
	return m, nil
}

func completionLog(res *engine.CompleteResult) string {
	line := fmt.Sprintf("Completed %d: +%d XP", res.TaskID, res.XPAwarded)
	if res.LevelUp {
		line += fmt.Sprintf(" (level %d → %d)", res.LevelBefore, res.LevelAfter)
	}
	if res.AllDailiesDone {
		line += fmt.Sprintf(" — all dailies done! +%d coins, streak %d", res.CoinsAwarded, res.StreakAfter)
	}
	if res.PenaltyCleared {
		line += " — penalty cleared"
	}
	return line
}
