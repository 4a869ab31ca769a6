package views

import (
	"fmt"

	"github.com/Cyclone1070/runbar/internal/ui/models"
	"github.com/charmbracelet/lipgloss"
)

// RenderToolbar renders the profile button and the run button side by side.
func RenderToolbar(s models.State) string {
	style := ButtonStyle
	switch {
	case s.Flash:
		style = ButtonErrorStyle
	case !s.Profile.Enabled:
		style = ButtonDisabledStyle
	}
	profile := style.Render(s.Profile.Label)

	runLabel := "▶ (no project)"
	runStyle := ButtonDisabledStyle
	if s.RunProject != "" {
		runLabel = fmt.Sprintf("▶ %s", s.RunProject)
		runStyle = RunButtonStyle
	}
	if s.Running > 0 {
		runLabel = fmt.Sprintf("%s %s", s.Spinner.View(), runLabel)
	}
	run := runStyle.Render(runLabel)

	hint := MutedStyle.Render(s.Profile.Tooltip)
	if s.ProfileProject != "" {
		hint = MutedStyle.Render(fmt.Sprintf("%s · %s", s.Profile.Tooltip, s.ProfileProject))
	}

	return lipgloss.JoinHorizontal(lipgloss.Center, profile, " ", run, "  ", hint)
}
