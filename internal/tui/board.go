package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/izumiishikawa/levelite-sub000/internal/engine"
	"github.com/izumiishikawa/levelite-sub000/internal/ui"
)

// RunBoard starts the interactive daily board for a user.
func RunBoard(ctx context.Context, svc *engine.Service, userName string, out io.Writer) error {
	p := tea.NewProgram(newBoardModel(ctx, svc, userName), tea.WithOutput(out), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m boardModel) View() string {
	var b strings.Builder

	b.WriteString(ui.Heading(ui.IconQuest, "Daily Board") + "\n")
	if m.loading {
		b.WriteString(ui.Muted.Render("Loading…") + "\n")
		return b.String()
	}
	if m.err != nil {
		b.WriteString(ui.Bad.Render(ui.IconError+" "+m.err.Error()) + "\n")
		return b.String()
	}

	if m.user != nil {
		header := fmt.Sprintf("%s  %s  %s %d  %s %d",
			ui.LabelValue("Level", m.user.Level),
			ui.HealthBar(m.user.Health, m.user.MaxHealth),
			ui.IconFire, m.user.Streak,
			ui.IconCoin, m.user.Coins,
		)
		b.WriteString(header + "\n")
		b.WriteString(ui.LabelValue("XP", fmt.Sprintf("%d / %d", m.user.CurrentXP, m.user.XPForNextLevel)) + "\n")
		if m.user.InPenaltyZone {
			b.WriteString(ui.BadgePenalty + " " + ui.Muted.Render("complete every penalty task to escape") + "\n")
		}
		b.WriteString("\n")
	}

	if len(m.tasks) == 0 {
		b.WriteString(ui.Muted.Render("No quests for today. Run `levelite quests` to generate a batch.") + "\n")
	}
	for i, t := range m.tasks {
		line := fmt.Sprintf("%s #%d %s %s %s",
			ui.TypeIcon(t.Type), t.ID, t.Title,
			ui.Muted.Render(fmt.Sprintf("(+%d XP)", t.XPReward)),
			ui.StatusText(t.Status),
		)
		if i == m.selected {
			line = ui.SelectedRow.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n" + ui.Muted.Render("[j/k] move  [c/space] complete  [r] refresh  [q] quit") + "\n")
	b.WriteString(ui.Muted.Render(m.lastLog) + "\n")
	return b.String()
}
