package views

import (
	"fmt"
	"strings"

	"github.com/Cyclone1070/runbar/internal/ui/models"
)

// RenderOutput renders the output pane
func RenderOutput(s models.State) string {
	if len(s.Runs) == 0 {
		return MutedStyle.Render("Nothing has run yet. Press r to run the current project.")
	}
	return s.Output.View()
}

// FormatRuns formats run history for the output viewport, newest last.
func FormatRuns(runs []models.RunLine) string {
	var lines []string
	for _, r := range runs {
		lines = append(lines, formatHeader(r))
		if out := strings.TrimRight(r.Output, "\n"); out != "" {
			lines = append(lines, out)
		}
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func formatHeader(r models.RunLine) string {
	switch {
	case r.Running:
		return CursorStyle.Render("● " + r.Title)
	case r.Err != "":
		return ErrorStyle.Render(fmt.Sprintf("✘ %s (%s)", r.Title, r.Err))
	default:
		return SuccessStyle.Render(fmt.Sprintf("✔ %s (exit %d, %s)", r.Title, r.ExitCode, r.Duration.Round(1e6)))
	}
}
