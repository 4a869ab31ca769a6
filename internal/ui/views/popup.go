package views

import (
	"strings"

	"github.com/Cyclone1070/runbar/internal/presenter"
	"github.com/Cyclone1070/runbar/internal/ui/models"
	"github.com/charmbracelet/lipgloss"
)

// RenderProfilePopup renders the configuration popup
func RenderProfilePopup(s models.State) string {
	if !s.ShowPopup || len(s.Profile.Entries) == 0 {
		return ""
	}

	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Render("Configuration:"))
	lines = append(lines, "")

	for i, entry := range s.Profile.Entries {
		if entry.Kind == presenter.EntrySeparator {
			lines = append(lines, MutedStyle.Render(strings.Repeat("─", 16)))
			continue
		}

		mark := "  "
		if entry.Selected {
			mark = "✓ "
		}
		label := mark + entry.Label

		switch {
		case i == s.PopupIndex:
			lines = append(lines, CursorStyle.Render("▸ "+label))
		case !entry.Enabled:
			lines = append(lines, MutedStyle.Render("  "+label))
		default:
			lines = append(lines, "  "+label)
		}
	}

	lines = append(lines, "")
	lines = append(lines, lipgloss.NewStyle().Faint(true).Render("↑/↓: Navigate  Enter: Select  Esc: Cancel"))

	return PopupBoxStyle.Render(strings.Join(lines, "\n"))
}
