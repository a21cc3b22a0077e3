package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Levelite theme (CLI + TUI).
// Kept intentionally small: reusable styles and a few emojis.

const (
	IconQuest   = "🗺️"
	IconSparkle = "✨"
	IconDone    = "✅"
	IconBolt    = "⚡"
	IconFire    = "🔥"
	IconHeart   = "❤️"
	IconCoin    = "🪙"
	IconSkull   = "💀"
	IconWarn    = "⚠️"
	IconError   = "🧨"
	IconUndo    = "↩️"
	IconLoop    = "🔁"
	IconMoon    = "🌙"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(cPrimary)

	BadgeLevelUp = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("LEVEL UP")
	BadgePenalty = lipgloss.NewStyle().Bold(true).Foreground(cBad).Render("PENALTY ZONE")
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

func StatusText(status string) string {
	s := strings.ToLower(strings.TrimSpace(status))
	switch s {
	case "completed":
		return Good.Render("completed")
	case "pending":
		return Warn.Render("pending")
	case "incomplete":
		return Bad.Render("incomplete")
	default:
		return Muted.Render(status)
	}
}

func TypeIcon(taskType string) string {
	switch taskType {
	case "dailyQuests":
		return IconLoop
	case "penaltyTask":
		return IconSkull
	case "classQuests":
		return IconSparkle
	case "aiTask":
		return IconBolt
	default:
		return IconQuest
	}
}

// HealthBar renders a simple HP gauge, e.g. ██████░░░░ 60/100.
func HealthBar(health, maxHealth int) string {
	if maxHealth <= 0 {
		maxHealth = 1
	}
	const width = 10
	filled := health * width / maxHealth
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	style := Good
	switch {
	case health*100 <= maxHealth*25:
		style = Bad
	case health*100 <= maxHealth*50:
		style = Warn
	}
	return fmt.Sprintf("%s %d/%d", style.Render(bar), health, maxHealth)
}
