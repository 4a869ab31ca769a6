package views

import (
	"strings"

	"github.com/Cyclone1070/runbar/internal/ui/models"
)

// RenderExplorer renders the project tree, scrolled so the cursor stays visible.
func RenderExplorer(s models.State, width, height int) string {
	if len(s.Explorer) == 0 {
		return MutedStyle.Render("No projects.")
	}
	if height < 1 {
		height = 1
	}

	start := 0
	if s.ExplorerIndex >= height {
		start = s.ExplorerIndex - height + 1
	}
	end := min(start+height, len(s.Explorer))

	var lines []string
	for i := start; i < end; i++ {
		e := s.Explorer[i]
		var b strings.Builder
		if e.IsProject {
			if e.Expanded {
				b.WriteString("▾ ")
			} else {
				b.WriteString("▸ ")
			}
		} else {
			b.WriteString("    ")
		}
		b.WriteString(e.Label)
		if e.Main {
			b.WriteString(" ★")
		}
		if e.Selected {
			b.WriteString(" ●")
		}

		line := truncateWidth(b.String(), width)
		if i == s.ExplorerIndex {
			line = CursorStyle.Render(line)
		} else if !e.IsProject {
			line = MutedStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func truncateWidth(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}
