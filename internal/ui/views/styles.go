package views

import (
	"github.com/Cyclone1070/runbar/internal/config"
	"github.com/charmbracelet/lipgloss"
)

var (
	ColorPrimary = lipgloss.Color("63")
	ColorError   = lipgloss.Color("196")
	ColorMuted   = lipgloss.Color("241")
	ColorSuccess = lipgloss.Color("42")
)

var (
	ButtonStyle         lipgloss.Style
	ButtonDisabledStyle lipgloss.Style
	ButtonErrorStyle    lipgloss.Style
	RunButtonStyle      lipgloss.Style
	PopupBoxStyle       lipgloss.Style
	PaneStyle           lipgloss.Style
	PaneFocusedStyle    lipgloss.Style
	CursorStyle         lipgloss.Style
	MutedStyle          lipgloss.Style
	SuccessStyle        lipgloss.Style
	ErrorStyle          lipgloss.Style
	StatusStyle         lipgloss.Style
)

func init() {
	buildStyles()
}

// ApplyTheme replaces the palette with the configured colors.
func ApplyTheme(cfg config.UIConfig) {
	ColorPrimary = lipgloss.Color(cfg.ColorPrimary)
	ColorError = lipgloss.Color(cfg.ColorError)
	ColorMuted = lipgloss.Color(cfg.ColorMuted)
	ColorSuccess = lipgloss.Color(cfg.ColorSuccess)
	buildStyles()
}

func buildStyles() {
	ButtonStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(0, 1)
	ButtonDisabledStyle = ButtonStyle.
		BorderForeground(ColorMuted).
		Foreground(ColorMuted)
	ButtonErrorStyle = ButtonStyle.
		BorderForeground(ColorError).
		Foreground(ColorError).
		Bold(true)
	RunButtonStyle = ButtonStyle.
		BorderForeground(ColorSuccess)
	PopupBoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(0, 1)
	PaneStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(ColorMuted)
	PaneFocusedStyle = PaneStyle.
		BorderForeground(ColorPrimary)
	CursorStyle = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	MutedStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	SuccessStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	ErrorStyle = lipgloss.NewStyle().Foreground(ColorError)
	StatusStyle = lipgloss.NewStyle().Foreground(ColorMuted)
}
