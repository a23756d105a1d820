package termbar

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// Colors as ANSI codes so they follow the terminal palette
const (
	ColorPrimary lipgloss.Color = "7"
	ColorAccent  lipgloss.Color = "6"
	ColorMuted   lipgloss.Color = "8"
	ColorWarning lipgloss.Color = "3"
)

var (
	footerStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	warnStyle   = lipgloss.NewStyle().Foreground(ColorWarning)
)

// tableStyles is the bubbles table styling shared by the static and live views
func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorMuted).
		BorderBottom(true).
		Bold(true).
		Foreground(ColorAccent)
	s.Cell = s.Cell.Foreground(ColorPrimary)
	// the cursor row is already styled cell by cell
	s.Selected = lipgloss.NewStyle()
	return s
}
