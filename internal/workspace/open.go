package workspace

import (
	"slices"
	"sync"

	"github.com/Cyclone1070/runbar/internal/listener"
	"github.com/Cyclone1070/runbar/internal/project"
)

// OpenProjects is the set of open projects and the designated main project.
type OpenProjects struct {
	listener.Support

	mu       sync.RWMutex
	projects []*Project
	main     *Project
}

// Projects returns the open projects in manifest order.
func (o *OpenProjects) Projects() []*Project {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return slices.Clone(o.projects)
}

// Find returns the open project named name, or nil.
func (o *OpenProjects) Find(name string) *Project {
	o.mu.RLock()
	defer o.mu.RUnlock()
	for _, p := range o.projects {
		if p.name == name {
			return p
		}
	}
	return nil
}

// MainProject returns the main project or nil.
func (o *OpenProjects) MainProject() project.Project {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if o.main == nil {
		return nil
	}
	return o.main
}

// SetMainProject designates p, which must be open. nil clears the designation.
func (o *OpenProjects) SetMainProject(p *Project) {
	o.mu.Lock()
	if p != nil && !slices.Contains(o.projects, p) {
		o.mu.Unlock()
		return
	}
	changed := o.main != p
	o.main = p
	o.mu.Unlock()

	if changed {
		o.Fire(listener.Event{Source: o, Property: project.PropMainProject})
	}
}

func (o *OpenProjects) open(projects []*Project, main *Project) {
	o.mu.Lock()
	o.projects = projects
	o.main = main
	o.mu.Unlock()
}
