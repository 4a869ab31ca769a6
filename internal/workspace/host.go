// Package workspace hosts manifest-defined projects: their configurations,
// actions, ownership, selection and focused editor.
package workspace

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Cyclone1070/runbar/internal/selection"
)

// Host owns every workspace collaborator the toolbar controls observe.
type Host struct {
	Open    *OpenProjects
	Context *GlobalContext
	Owners  *Owners
	Editor  *EditorRegistry

	manifestPath string
	runner       Runner
	ctx          context.Context
	logger       *slog.Logger

	mu   sync.RWMutex
	sink RunSink
}

// Load reads the manifest at path and opens its projects. Actions run through
// runner and are cancelled with ctx.
func Load(ctx context.Context, path string, runner Runner, logger *slog.Logger) (*Host, error) {
	if runner == nil {
		panic("runner is required")
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	m, err := LoadManifest(path)
	if err != nil {
		return nil, err
	}

	h := &Host{
		Open:         &OpenProjects{},
		Context:      NewGlobalContext(),
		Editor:       &EditorRegistry{},
		manifestPath: path,
		runner:       runner,
		ctx:          ctx,
		logger:       logger.With("component", "workspace"),
	}
	h.Owners = &Owners{open: h.Open}

	var projects []*Project
	var main *Project
	for _, spec := range m.Projects {
		p := h.newProject(m, spec)
		projects = append(projects, p)
		if spec.Main {
			main = p
		}
	}
	h.Open.open(projects, main)

	h.logger.Info("workspace loaded", "manifest", path, "projects", len(projects))
	return h, nil
}

func (h *Host) newProject(m *Manifest, spec ProjectSpec) *Project {
	p := &Project{
		name: spec.Name,
		root: m.RootOf(spec),
	}
	p.provider = newProvider(spec.Name, p.root, spec.Configurations, h.logger)
	p.actions = &Actions{
		project: p,
		specs:   spec.Actions,
		runner:  h.runner,
		sink:    h.runSink,
		ctx:     h.ctx,
		logger:  h.logger,
	}
	return p
}

// Sources returns the selection sources for toolbar controls.
func (h *Host) Sources() selection.Sources {
	return selection.Sources{
		Projects:  h.Context.Projects,
		Files:     h.Context.Files,
		Owners:    h.Owners,
		Workspace: h.Open,
	}
}

// ManifestPath returns the manifest the host was loaded from.
func (h *Host) ManifestPath() string { return h.manifestPath }

// SetRunSink installs the receiver of run events.
func (h *Host) SetRunSink(sink RunSink) {
	h.mu.Lock()
	h.sink = sink
	h.mu.Unlock()
}

func (h *Host) runSink() RunSink {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.sink
}

// SetCustomizer installs the hook every project's Customize calls.
func (h *Host) SetCustomizer(hook func(*Project)) {
	for _, p := range h.Open.Projects() {
		if hook == nil {
			p.provider.SetCustomizer(nil)
			continue
		}
		p.provider.SetCustomizer(func() { hook(p) })
	}
}

// Reload re-reads the manifest and refreshes each open project's
// configurations and actions. Projects are not added or removed.
func (h *Host) Reload() error {
	m, err := LoadManifest(h.manifestPath)
	if err != nil {
		h.logger.Warn("manifest reload failed", "error", err)
		return err
	}
	for _, p := range h.Open.Projects() {
		spec, ok := m.Find(p.name)
		if !ok {
			h.logger.Debug("project left the manifest; keeping it open", "project", p.name)
			continue
		}
		p.actions.setSpecs(spec.Actions)
		p.provider.Reload(spec.Configurations)
	}
	return nil
}

// Watch reloads the workspace whenever the manifest changes.
func (h *Host) Watch() (*Watcher, error) {
	return NewWatcher(h.manifestPath, func() { _ = h.Reload() }, h.logger)
}
