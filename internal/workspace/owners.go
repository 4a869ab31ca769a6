package workspace

import (
	"path/filepath"
	"strings"

	"github.com/Cyclone1070/runbar/internal/project"
)

// Owners maps items to the open project with the longest enclosing root.
type Owners struct {
	open *OpenProjects
}

// OwnerOf returns the owner of item, or nil when no project encloses it.
func (o *Owners) OwnerOf(item project.Item) project.Project {
	if item == nil {
		return nil
	}
	path := filepath.Clean(item.Path())

	var best *Project
	for _, p := range o.open.Projects() {
		if !within(p.root, path) {
			continue
		}
		if best == nil || len(p.root) > len(best.root) {
			best = p
		}
	}
	if best == nil {
		return nil
	}
	return best
}

func within(root, path string) bool {
	if path == root {
		return true
	}
	if !strings.HasSuffix(root, string(filepath.Separator)) {
		root += string(filepath.Separator)
	}
	return strings.HasPrefix(path, root)
}
