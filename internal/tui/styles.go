package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent    = lipgloss.Color("#1a56db")
	muted     = lipgloss.Color("#6b7280")
	danger    = lipgloss.Color("#dc2626")
	success   = lipgloss.Color("#16a34a")
	textColor = lipgloss.Color("#e5e7eb")

	titleStyle = lipgloss.NewStyle().Foreground(accent).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(muted).Width(22)
	valueStyle = lipgloss.NewStyle().Foreground(textColor)
	errorStyle = lipgloss.NewStyle().Foreground(danger)
	okStyle    = lipgloss.NewStyle().Foreground(success).Bold(true)
	hintStyle  = lipgloss.NewStyle().Foreground(muted).Italic(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Padding(0, 1)
	focusedBoxStyle = boxStyle.BorderForeground(accent)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 2).
			Width(80)
)
