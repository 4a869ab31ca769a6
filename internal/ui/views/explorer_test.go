package views

import (
	"fmt"
	"strings"
	"testing"

	"github.com/Cyclone1070/runbar/internal/ui/models"
	"github.com/stretchr/testify/assert"
)

func TestRenderExplorer_Tree(t *testing.T) {
	state := models.State{
		Explorer: []models.ExplorerEntry{
			{Label: "api", Project: "api", IsProject: true, Expanded: true, Main: true},
			{Label: "main.go", Project: "api", Path: "/w/api/main.go", Selected: true},
			{Label: "web", Project: "web", IsProject: true},
		},
	}

	result := RenderExplorer(state, 40, 10)

	assert.Contains(t, result, "▾ api ★")
	assert.Contains(t, result, "    main.go ●")
	assert.Contains(t, result, "▸ web")
}

func TestRenderExplorer_Empty(t *testing.T) {
	assert.Contains(t, RenderExplorer(models.State{}, 40, 10), "No projects.")
}

func TestRenderExplorer_ScrollsToCursor(t *testing.T) {
	var entries []models.ExplorerEntry
	for i := range 10 {
		name := fmt.Sprintf("p%d", i)
		entries = append(entries, models.ExplorerEntry{Label: name, Project: name, IsProject: true})
	}
	state := models.State{Explorer: entries, ExplorerIndex: 7}

	result := RenderExplorer(state, 40, 3)

	lines := strings.Split(result, "\n")
	assert.Len(t, lines, 3)
	assert.Contains(t, lines[0], "p5")
	assert.Contains(t, lines[2], "p7")
	assert.NotContains(t, result, "p8")
}

func TestTruncateWidth(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly", 7, "exactly"},
		{"too long", 5, "too …"},
		{"abc", 1, "…"},
		{"abc", 0, "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, truncateWidth(tt.in, tt.width))
		})
	}
}
