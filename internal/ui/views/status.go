package views

import (
	"fmt"
	"strings"

	"github.com/Cyclone1070/runbar/internal/ui/models"
	"github.com/charmbracelet/lipgloss"
)

// RenderStatus renders the status bar: message on the left, key hints on the right.
func RenderStatus(s models.State, help string) string {
	left := "Ready"
	if s.Running > 0 {
		left = fmt.Sprintf("%s Running %d%s", s.Spinner.View(), s.Running, strings.Repeat(".", s.DotCount))
	} else if s.StatusMessage != "" {
		left = s.StatusMessage
	}
	left = StatusStyle.Render(left)
	right := MutedStyle.Render(help)

	gap := s.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 2 {
		return left + "  " + right
	}
	return left + strings.Repeat(" ", gap) + right
}
