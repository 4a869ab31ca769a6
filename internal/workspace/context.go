package workspace

import (
	"github.com/Cyclone1070/runbar/internal/project"
	"github.com/Cyclone1070/runbar/internal/selection"
)

// GlobalContext is the selection shared by every control.
// A project selection and a file selection exclude each other.
type GlobalContext struct {
	Projects *selection.Result[project.Project]
	Files    *selection.Result[project.Item]
}

// NewGlobalContext returns an empty selection.
func NewGlobalContext() *GlobalContext {
	return &GlobalContext{
		Projects: selection.NewResult[project.Project](),
		Files:    selection.NewResult[project.Item](),
	}
}

// SelectProject selects p explicitly.
func (g *GlobalContext) SelectProject(p project.Project) {
	g.Files.Clear()
	g.Projects.Set(p)
}

// SelectFile selects item.
func (g *GlobalContext) SelectFile(item project.Item) {
	g.Projects.Clear()
	g.Files.Set(item)
}

// Clear drops both selections.
func (g *GlobalContext) Clear() {
	g.Projects.Clear()
	g.Files.Clear()
}
