package workspace

import (
	"path/filepath"

	"github.com/Cyclone1070/runbar/internal/project"
)

// Project is a manifest project. It is Configurable and Actionable.
type Project struct {
	name     string
	root     string
	provider *Provider
	actions  *Actions
}

func (p *Project) Name() string { return p.name }

// Root is the absolute project directory.
func (p *Project) Root() string { return p.root }

func (p *Project) ConfigurationProvider() project.ConfigurationProvider { return p.provider }

func (p *Project) ActionProvider() project.ActionProvider { return p.actions }

// Provider returns the concrete configuration provider.
func (p *Project) Provider() *Provider { return p.provider }

// Actions returns the concrete action provider.
func (p *Project) Actions() *Actions { return p.actions }

// File is a workspace file item.
type File struct {
	path string
}

// NewFile returns the item for path, made absolute.
func NewFile(path string) *File {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return &File{path: filepath.Clean(path)}
}

func (f *File) Path() string { return f.path }
