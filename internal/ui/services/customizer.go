package services

import (
	"fmt"
	"strings"

	"github.com/Cyclone1070/runbar/internal/workspace"
)

// CustomizerMarkdown describes a project's configurations and actions.
func CustomizerMarkdown(p *workspace.Project, manifestPath string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", p.Name())
	fmt.Fprintf(&b, "Root: `%s`\n\n", p.Root())

	b.WriteString("## Configurations\n\n")
	provider := p.Provider()
	configs := provider.Configurations()
	if len(configs) == 0 {
		b.WriteString("_No configurations._\n\n")
	} else {
		b.WriteString("| | Name | Env | Args |\n|---|---|---|---|\n")
		active := provider.ActiveConfiguration()
		for _, c := range configs {
			conf := c.(*workspace.Configuration)
			mark := ""
			if c == active {
				mark = "✓"
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
				mark, escapeCell(conf.DisplayName()),
				escapeCell(strings.Join(conf.Environ(), " ")),
				escapeCell(strings.Join(conf.Args(), " ")))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Actions\n\n")
	commands := p.Actions().Commands()
	if len(commands) == 0 {
		b.WriteString("_No actions._\n\n")
	} else {
		for _, cmd := range commands {
			fmt.Fprintf(&b, "- `%s`\n", cmd)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Edit `%s` to change them; the toolbar reloads on save.\n", manifestPath)
	return b.String()
}

func escapeCell(s string) string {
	if s == "" {
		return "-"
	}
	return strings.ReplaceAll(s, "|", `\|`)
}
