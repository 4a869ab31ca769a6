package control

import (
	"log/slog"

	"github.com/Cyclone1070/runbar/internal/eventloop"
	"github.com/Cyclone1070/runbar/internal/listener"
	"github.com/Cyclone1070/runbar/internal/project"
	"github.com/Cyclone1070/runbar/internal/selection"
	"github.com/Cyclone1070/runbar/internal/subscription"
)

// RunButton runs or debugs the current project or the focused file.
// Disabled commands are ignored without any message.
type RunButton struct {
	sources selection.Sources
	editor  project.Editor
	loop    eventloop.Poster
	logger  *slog.Logger
	subs    *subscription.Manager

	current     project.Project
	initialized bool
}

// NewRunButton creates an uninitialized run dispatcher.
func NewRunButton(sources selection.Sources, editor project.Editor, loop eventloop.Poster, logger *slog.Logger) *RunButton {
	if loop == nil {
		panic("loop is required")
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	r := &RunButton{
		sources: sources,
		editor:  editor,
		loop:    loop,
		logger:  logger.With("control", "run"),
	}
	r.subs = subscription.New(r, r.logger)
	return r
}

// Init installs the context listeners and resolves the current project.
func (r *RunButton) Init() {
	if r.initialized {
		return
	}
	r.initialized = true
	r.subs.Install(r.sources.Observables()...)
	r.resolve()
}

// PropertyChange marshals a notification onto the UI thread.
func (r *RunButton) PropertyChange(ev listener.Event) {
	if !r.sources.Relevant(ev) {
		return
	}
	r.loop.Post(r.resolve)
}

// Current returns the cached current project, or nil.
func (r *RunButton) Current() project.Project {
	return r.current
}

// RunProject re-resolves the current project and invokes command on it with an
// empty context when its action provider reports the command enabled.
func (r *RunButton) RunProject(command string) {
	r.resolve()
	if r.current == nil {
		return
	}
	ap := project.ActionsOf(r.current)
	if ap == nil {
		return
	}
	if !ap.IsActionEnabled(command, project.EmptyContext) {
		r.logger.Debug("command disabled", "command", command, "project", r.current.Name())
		return
	}
	r.logger.Info("invoking command", "command", command, "project", r.current.Name())
	ap.InvokeAction(command, project.EmptyContext)
}

// RunCurrentFile invokes command on the file in the focused editor. The
// enablement check and the invocation run together as one queued task.
func (r *RunButton) RunCurrentFile(command string) {
	if r.editor == nil || r.sources.Owners == nil {
		return
	}
	item := r.editor.FocusedItem()
	if item == nil {
		return
	}
	owner := r.sources.Owners.OwnerOf(item)
	if owner == nil {
		return
	}
	ap := project.ActionsOf(owner)
	if ap == nil {
		return
	}

	r.loop.Post(func() {
		ctx := project.FixedContext(item)
		if !ap.IsActionEnabled(command, ctx) {
			r.logger.Debug("command disabled", "command", command, "file", item.Path())
			return
		}
		r.logger.Info("invoking command", "command", command, "file", item.Path(), "project", owner.Name())
		ap.InvokeAction(command, ctx)
	})
}

// Dispose detaches every listener.
func (r *RunButton) Dispose() {
	r.subs.Dispose()
	r.current = nil
}

func (r *RunButton) resolve() {
	selected := r.sources.Resolve()
	if !project.Same(selected, r.current) {
		r.current = selected
		r.logger.Debug("current project changed", "project", projectName(selected))
	}
}
