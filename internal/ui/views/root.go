package views

import (
	"github.com/Cyclone1070/runbar/internal/ui/models"
	"github.com/charmbracelet/lipgloss"
)

// RenderRoot renders the complete UI layout
func RenderRoot(s models.State, help string) string {
	// Overlays replace the layout while open
	if overlay := overlayOf(s); overlay != "" {
		return lipgloss.Place(
			s.Width,
			s.Height,
			lipgloss.Center,
			lipgloss.Center,
			overlay,
			lipgloss.WithWhitespaceChars(" "),
		)
	}

	toolbar := RenderToolbar(s)
	status := RenderStatus(s, help)
	bodyHeight := max(s.Height-lipgloss.Height(toolbar)-lipgloss.Height(status)-2, 3)

	explorerWidth := max(s.Width/3, 20)
	outputWidth := max(s.Width-explorerWidth-4, 20)

	explorerStyle, outputStyle := PaneStyle, PaneStyle
	if s.Focus == models.PaneExplorer {
		explorerStyle = PaneFocusedStyle
	} else {
		outputStyle = PaneFocusedStyle
	}

	explorer := explorerStyle.Width(explorerWidth).Height(bodyHeight).
		Render(RenderExplorer(s, explorerWidth, bodyHeight))
	output := outputStyle.Width(outputWidth).Height(bodyHeight).
		Render(RenderOutput(s))

	body := lipgloss.JoinHorizontal(lipgloss.Top, explorer, output)
	return lipgloss.JoinVertical(lipgloss.Left, toolbar, body, status)
}

func overlayOf(s models.State) string {
	if s.Customizer != "" {
		return RenderCustomizer(s)
	}
	if s.ShowPopup {
		return RenderProfilePopup(s)
	}
	return ""
}
