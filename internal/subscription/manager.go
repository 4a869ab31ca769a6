// Package subscription keeps a control's listeners bound to exactly the objects
// that are currently relevant to it.
//
// Context-source listeners are installed once for the control's lifetime. The
// configuration-provider listener follows the current project: Rebind always
// detaches the previous one before attaching a new one, so at most one provider
// listener exists at any time. Every registration is a weak proxy toward the owner.
//
// A Manager is not safe for concurrent use; all calls belong on the UI thread.
package subscription

import (
	"log/slog"

	"github.com/Cyclone1070/runbar/internal/listener"
	"github.com/Cyclone1070/runbar/internal/project"
	"github.com/google/uuid"
)

// Binding is one installed registration.
type Binding struct {
	ID       string
	Source   listener.Observable
	Listener listener.Listener
}

// Manager tracks the subscription set of one control.
type Manager struct {
	wrap   func(source listener.Observable) listener.Listener
	logger *slog.Logger

	installed bool
	disposed  bool
	context   []Binding

	provider        project.ConfigurationProvider
	providerBinding *Binding
}

// New creates a Manager whose registrations forward weakly to owner.
func New[T any, PT interface {
	*T
	listener.Listener
}](owner PT, logger *slog.Logger) *Manager {
	if owner == nil {
		panic("owner is required")
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Manager{
		wrap: func(source listener.Observable) listener.Listener {
			return listener.Weak[T, PT](owner, source)
		},
		logger: logger,
	}
}

// Install registers the owner on each context source. Only the first call has
// any effect; later calls return false without touching the sources.
func (m *Manager) Install(sources ...listener.Observable) bool {
	if m.installed || m.disposed {
		return false
	}
	m.installed = true
	for _, src := range sources {
		if src == nil {
			continue
		}
		b := m.bind(src)
		m.context = append(m.context, b)
		m.logger.Debug("context listener installed", "subscription", b.ID)
	}
	return true
}

// Rebind moves the provider listener to the configuration provider of p and
// returns that provider (nil when p is nil or has no configurations).
func (m *Manager) Rebind(p project.Project) project.ConfigurationProvider {
	m.detachProvider()
	if m.disposed {
		return nil
	}

	cp := project.ConfigurationsOf(p)
	if cp == nil {
		return nil
	}
	b := m.bind(cp)
	m.provider = cp
	m.providerBinding = &b
	m.logger.Debug("provider listener attached", "subscription", b.ID, "project", p.Name())
	return cp
}

// Provider returns the provider the listener is currently attached to.
func (m *Manager) Provider() project.ConfigurationProvider {
	return m.provider
}

// ProviderBinding returns the current provider registration, if any.
func (m *Manager) ProviderBinding() (Binding, bool) {
	if m.providerBinding == nil {
		return Binding{}, false
	}
	return *m.providerBinding, true
}

// ContextBindings returns the installed context-source registrations.
func (m *Manager) ContextBindings() []Binding {
	out := make([]Binding, len(m.context))
	copy(out, m.context)
	return out
}

// Dispose removes every registration. The manager cannot be reused afterwards.
func (m *Manager) Dispose() {
	if m.disposed {
		return
	}
	m.disposed = true
	m.detachProvider()
	for _, b := range m.context {
		b.Source.RemoveListener(b.Listener)
		m.logger.Debug("context listener removed", "subscription", b.ID)
	}
	m.context = nil
}

func (m *Manager) bind(source listener.Observable) Binding {
	b := Binding{
		ID:       uuid.NewString(),
		Source:   source,
		Listener: m.wrap(source),
	}
	source.AddListener(b.Listener)
	return b
}

func (m *Manager) detachProvider() {
	if m.providerBinding != nil {
		m.providerBinding.Source.RemoveListener(m.providerBinding.Listener)
		m.logger.Debug("provider listener detached", "subscription", m.providerBinding.ID)
	}
	m.provider = nil
	m.providerBinding = nil
}
