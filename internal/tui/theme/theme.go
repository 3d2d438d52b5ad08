// Package theme centralizes the lipgloss styles and icons used by the
// notebook TUI.
package theme

import "github.com/charmbracelet/lipgloss"

// Icons used in cell gutters and toolbars.
const (
	IconCode    = "λ"
	IconMarkup  = "¶"
	IconDirty   = "●"
	IconClean   = "○"
	IconRun     = "▶"
	IconDelete  = "✕"
	IconAdd     = "+"
	IconMore    = "⋯"
	IconSubmenu = "▸"
)

// Theme holds the style set for the notebook TUI.
type Theme struct {
	Header      lipgloss.Style
	Info        lipgloss.Style
	Error       lipgloss.Style
	Muted       lipgloss.Style
	CellFocused lipgloss.Style
	CellBlurred lipgloss.Style
	CellGutter  lipgloss.Style
	Toolbar     lipgloss.Style
	ToolbarItem lipgloss.Style
	StatusBar   lipgloss.Style
}

// DefaultTheme is the theme used unless a caller overrides styles.
var DefaultTheme = Theme{
	Header: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("62")),
	Info: lipgloss.NewStyle().
		Foreground(lipgloss.Color("39")),
	Error: lipgloss.NewStyle().
		Foreground(lipgloss.Color("196")),
	Muted: lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")),
	CellFocused: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(0, 1),
	CellBlurred: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("238")).
		Padding(0, 1),
	CellGutter: lipgloss.NewStyle().
		Foreground(lipgloss.Color("244")).
		Width(3),
	Toolbar: lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")),
	ToolbarItem: lipgloss.NewStyle().
		Foreground(lipgloss.Color("39")).
		Padding(0, 1),
	StatusBar: lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")),
}
