// Package selection derives the current project from the layered selection context.
package selection

import (
	"github.com/Cyclone1070/runbar/internal/listener"
	"github.com/Cyclone1070/runbar/internal/project"
)

// Sources is the prioritized context a control resolves its project from.
// Any field may be nil; a nil source yields nothing.
type Sources struct {
	Projects  Source[project.Project]
	Files     Source[project.Item]
	Owners    project.OwnerQuery
	Workspace project.Workspace
}

// Resolve returns the current project, or nil when none can be resolved.
//
// The first explicitly selected project wins. Otherwise the first selected file is
// mapped to its owner; only the first file is consulted, so an unowned first file
// never resolves through a later one. Otherwise the workspace's main project is used.
//
// Resolve does not cache and may be called any number of times.
func (s Sources) Resolve() project.Project {
	if s.Projects != nil {
		if ps := s.Projects.AllInstances(); len(ps) > 0 && ps[0] != nil {
			return ps[0]
		}
	}

	if s.Files != nil && s.Owners != nil {
		if items := s.Files.AllInstances(); len(items) > 0 && items[0] != nil {
			if owner := s.Owners.OwnerOf(items[0]); owner != nil {
				return owner
			}
		}
	}

	if s.Workspace != nil {
		return s.Workspace.MainProject()
	}
	return nil
}

// Observables returns the sources that must be watched for changes, in
// resolution order. The workspace is included for its main-project signal.
func (s Sources) Observables() []listener.Observable {
	var out []listener.Observable
	if s.Projects != nil {
		out = append(out, s.Projects)
	}
	if s.Files != nil {
		out = append(out, s.Files)
	}
	if s.Workspace != nil {
		out = append(out, s.Workspace)
	}
	return out
}

// Relevant reports whether ev can change the resolved project.
// Workspace events other than a main-project change are ignored.
func (s Sources) Relevant(ev listener.Event) bool {
	switch ev.Property {
	case listener.Selection:
		return true
	case project.PropMainProject:
		return true
	}
	return false
}
