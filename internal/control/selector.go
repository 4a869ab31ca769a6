// Package control implements the two toolbar controls: the configuration
// selector and the run dispatcher. Both resolve the current project from the
// same layered selection context; each keeps its own private current project.
//
// Exported methods must be called on the UI thread. Change notifications may
// arrive on any goroutine; PropertyChange only posts them to the event loop.
package control

import (
	"log/slog"

	"github.com/Cyclone1070/runbar/internal/eventloop"
	"github.com/Cyclone1070/runbar/internal/listener"
	"github.com/Cyclone1070/runbar/internal/presenter"
	"github.com/Cyclone1070/runbar/internal/project"
	"github.com/Cyclone1070/runbar/internal/selection"
	"github.com/Cyclone1070/runbar/internal/subscription"
)

// Feedback receives non-blocking error cues for the user.
type Feedback interface {
	ErrorFeedback(err error)
}

// FeedbackFunc adapts a function to Feedback.
type FeedbackFunc func(err error)

func (f FeedbackFunc) ErrorFeedback(err error) { f(err) }

// ProfileSelector lets the user switch the active configuration of the current project.
type ProfileSelector struct {
	sources  selection.Sources
	loop     eventloop.Poster
	opts     presenter.Options
	feedback Feedback
	logger   *slog.Logger
	subs     *subscription.Manager

	current     project.Project
	state       presenter.State
	initialized bool

	// resolving guards against re-entrant resolution; pending records a
	// notification that arrived meanwhile so one more pass runs afterwards.
	resolving bool
	pending   bool
}

// NewProfileSelector creates an uninitialized selector. Call Init once it is hosted.
func NewProfileSelector(sources selection.Sources, loop eventloop.Poster, opts presenter.Options, feedback Feedback, logger *slog.Logger) *ProfileSelector {
	if loop == nil {
		panic("loop is required")
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if feedback == nil {
		feedback = FeedbackFunc(func(error) {})
	}
	s := &ProfileSelector{
		sources:  sources,
		loop:     loop,
		opts:     opts,
		feedback: feedback,
		logger:   logger.With("control", "profiles"),
		state:    presenter.Synchronize(nil, opts),
	}
	s.subs = subscription.New(s, s.logger)
	return s
}

// Init installs the context listeners and performs the first resolution.
// Subsequent calls do nothing.
func (s *ProfileSelector) Init() {
	if s.initialized {
		return
	}
	s.initialized = true
	s.subs.Install(s.sources.Observables()...)
	s.Resolve()
}

// PropertyChange marshals a notification onto the UI thread.
func (s *ProfileSelector) PropertyChange(ev listener.Event) {
	s.loop.Post(func() { s.handle(ev) })
}

func (s *ProfileSelector) handle(ev listener.Event) {
	switch ev.Property {
	case project.PropActiveConfiguration, project.PropConfigurations:
		cp := s.subs.Provider()
		if cp == nil || ev.Source != any(cp) {
			// Queued before the provider listener moved to another project
			return
		}
		s.refresh()
	default:
		if s.sources.Relevant(ev) {
			s.Resolve()
		}
	}
}

// Resolve re-derives the current project. A changed project rebinds the provider
// listener and forces a rebuild; an unchanged one still refreshes the
// presentation because its configurations may have changed.
func (s *ProfileSelector) Resolve() {
	if s.resolving {
		s.pending = true
		return
	}
	s.resolving = true
	defer func() { s.resolving = false }()

	for {
		s.pending = false
		selected := s.sources.Resolve()
		if !project.Same(selected, s.current) {
			s.current = selected
			s.subs.Rebind(selected)
			s.logger.Debug("current project changed", "project", projectName(selected))
		}
		s.refresh()
		if !s.pending {
			return
		}
	}
}

// Activate performs the action of the popup entry at index.
// Choosing a different configuration posts the switch to the event loop;
// a failed switch leaves the active configuration alone and only cues feedback.
func (s *ProfileSelector) Activate(index int) {
	if index < 0 || index >= len(s.state.Entries) {
		return
	}
	entry := s.state.Entries[index]
	cp := s.subs.Provider()
	if cp == nil || !entry.Enabled {
		return
	}

	switch entry.Kind {
	case presenter.EntryConfiguration:
		cfg := entry.Configuration
		if cfg == nil || cfg == cp.ActiveConfiguration() {
			return
		}
		s.loop.Post(func() {
			if err := cp.SetActiveConfiguration(cfg); err != nil {
				s.logger.Debug("configuration switch failed", "configuration", cfg.DisplayName(), "error", err)
				s.feedback.ErrorFeedback(err)
			}
		})
	case presenter.EntryCustomize:
		cp.Customize()
	}
}

// Customize opens the current provider's customizer, if it has one.
func (s *ProfileSelector) Customize() {
	if cp := s.subs.Provider(); cp != nil && cp.HasCustomizer() {
		cp.Customize()
	}
}

// State returns the current presentation.
func (s *ProfileSelector) State() presenter.State {
	return s.state
}

// Current returns the cached current project, or nil.
func (s *ProfileSelector) Current() project.Project {
	return s.current
}

// Dispose detaches every listener and resets the presentation.
func (s *ProfileSelector) Dispose() {
	s.subs.Dispose()
	s.current = nil
	s.state = presenter.Synchronize(nil, s.opts)
}

func (s *ProfileSelector) refresh() {
	s.state = presenter.Synchronize(s.subs.Provider(), s.opts)
}

func projectName(p project.Project) string {
	if p == nil {
		return ""
	}
	return p.Name()
}
