package views

import (
	"github.com/Cyclone1070/runbar/internal/ui/models"
	"github.com/charmbracelet/lipgloss"
)

// RenderCustomizer renders the customizer panel
func RenderCustomizer(s models.State) string {
	if s.Customizer == "" {
		return ""
	}
	footer := lipgloss.NewStyle().Faint(true).Render("Esc: Close")
	return PopupBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, s.Customizer, footer))
}
