package ui

import (
	"log/slog"
	"path/filepath"
	"slices"
	"time"

	"github.com/Cyclone1070/runbar/internal/config"
	"github.com/Cyclone1070/runbar/internal/control"
	"github.com/Cyclone1070/runbar/internal/eventloop"
	"github.com/Cyclone1070/runbar/internal/presenter"
	"github.com/Cyclone1070/runbar/internal/project"
	"github.com/Cyclone1070/runbar/internal/ui/models"
	"github.com/Cyclone1070/runbar/internal/ui/services"
	"github.com/Cyclone1070/runbar/internal/ui/views"
	"github.com/Cyclone1070/runbar/internal/workspace"
	tea "github.com/charmbracelet/bubbletea"
)

// Dependencies holds what the UI needs to run the toolbar over a workspace.
type Dependencies struct {
	Config         *config.Config
	Host           *workspace.Host
	Queue          *eventloop.Queue
	Renderer       services.MarkdownRenderer
	SpinnerFactory SpinnerFactory
	Logger         *slog.Logger
}

// UI implements the terminal toolbar using Bubble Tea
type UI struct {
	program *tea.Program
	session *session
}

// NewUI creates a new Bubble Tea UI and initializes the toolbar controls.
func NewUI(deps Dependencies, opts ...tea.ProgramOption) *UI {
	s := newSession(deps)
	model := newBubbleTeaModel(s, deps.SpinnerFactory)
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	return &UI{
		program: tea.NewProgram(model, opts...),
		session: s,
	}
}

// Start runs the program until the user quits, then disposes the controls.
func (u *UI) Start() error {
	defer u.session.dispose()
	_, err := u.program.Run()
	return err
}

// session owns the controls and the state queued tasks mutate.
// Everything here is touched on the UI thread only.
type session struct {
	cfg      *config.Config
	host     *workspace.Host
	queue    *eventloop.Queue
	selector *control.ProfileSelector
	runner   *control.RunButton
	renderer services.MarkdownRenderer
	logger   *slog.Logger

	runs         []models.RunLine
	runsChanged  bool
	status       string
	flashPending bool
	customizing  *workspace.Project

	expanded map[string]bool
	files    map[string][]*workspace.File
}

func newSession(deps Dependencies) *session {
	if deps.Config == nil {
		panic("config is required")
	}
	if deps.Host == nil {
		panic("host is required")
	}
	if deps.Queue == nil {
		panic("queue is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	views.ApplyTheme(deps.Config.UI)

	s := &session{
		cfg:      deps.Config,
		host:     deps.Host,
		queue:    deps.Queue,
		renderer: deps.Renderer,
		logger:   logger,
		expanded: make(map[string]bool),
		files:    make(map[string][]*workspace.File),
	}

	sources := deps.Host.Sources()
	s.selector = control.NewProfileSelector(sources, deps.Queue, optionsFrom(deps.Config.Toolbar),
		control.FeedbackFunc(s.errorFeedback), logger)
	s.runner = control.NewRunButton(sources, deps.Host.Editor, deps.Queue, logger)

	deps.Host.SetRunSink(func(ev workspace.RunEvent) {
		deps.Queue.Post(func() { s.applyRun(ev) })
	})
	deps.Host.SetCustomizer(func(p *workspace.Project) {
		deps.Queue.Post(func() { s.customizing = p })
	})

	s.selector.Init()
	s.runner.Init()
	deps.Queue.Drain()
	return s
}

func optionsFrom(cfg config.ToolbarConfig) presenter.Options {
	return presenter.Options{
		MaxRunes:       cfg.LabelMaxRunes,
		Indicator:      cfg.Indicator,
		EmptyLabel:     cfg.EmptyLabel,
		Placeholder:    cfg.Placeholder,
		CustomizeLabel: cfg.CustomizeLabel,
		TooltipHint:    cfg.TooltipHint,
	}
}

func (s *session) errorFeedback(err error) {
	s.flashPending = true
	s.status = "Could not switch configuration: " + err.Error()
}

func (s *session) applyRun(ev workspace.RunEvent) {
	s.runsChanged = true
	if !ev.Done && ev.Chunk != "" {
		if r := s.run(ev.ID); r != nil && r.Running {
			r.Output += ev.Chunk
		}
		return
	}
	if !ev.Done {
		s.runs = append(s.runs, models.RunLine{ID: ev.ID, Title: runTitle(ev), Running: true})
		if len(s.runs) > maxRuns {
			s.runs = s.runs[len(s.runs)-maxRuns:]
		}
		return
	}
	r := s.run(ev.ID)
	if r == nil {
		return
	}
	r.Running = false
	if ev.Result != nil {
		r.ExitCode = ev.Result.ExitCode
		r.Output = ev.Result.Stdout + ev.Result.Stderr
		r.Duration = ev.Result.Duration
		if ev.Result.Truncated {
			r.Output += "\n[output truncated]"
		}
	}
	if ev.Err != nil {
		r.Err = ev.Err.Error()
	}
}

func (s *session) run(id string) *models.RunLine {
	for i := range s.runs {
		if s.runs[i].ID == id {
			return &s.runs[i]
		}
	}
	return nil
}

func (s *session) tickInterval() time.Duration {
	return time.Duration(s.cfg.UI.TickIntervalMs) * time.Millisecond
}

func (s *session) toggleExpanded(p *workspace.Project) {
	s.expanded[p.Name()] = !s.expanded[p.Name()]
	if !s.expanded[p.Name()] {
		return
	}
	files, err := workspace.ListFiles(p, s.cfg.Workspace.MaxListedFiles)
	if err != nil {
		s.logger.Warn("cannot list project files", "project", p.Name(), "error", err)
		s.status = "Cannot list files: " + err.Error()
		return
	}
	s.files[p.Name()] = files
}

func (s *session) fileAt(p *workspace.Project, path string) *workspace.File {
	for _, f := range s.files[p.Name()] {
		if f.Path() == path {
			return f
		}
	}
	return nil
}

func (s *session) explorerEntries() []models.ExplorerEntry {
	main := s.host.Open.MainProject()
	selectedProjects := s.host.Context.Projects.AllInstances()
	selectedFiles := s.host.Context.Files.AllInstances()

	var entries []models.ExplorerEntry
	for _, p := range s.host.Open.Projects() {
		expanded := s.expanded[p.Name()]
		entries = append(entries, models.ExplorerEntry{
			Label:     p.Name(),
			Project:   p.Name(),
			IsProject: true,
			Expanded:  expanded,
			Main:      main != nil && main == p,
			Selected:  slices.Contains(selectedProjects, project.Project(p)),
		})
		if !expanded {
			continue
		}
		for _, f := range s.files[p.Name()] {
			rel := f.Path()
			if r, err := filepath.Rel(p.Root(), f.Path()); err == nil {
				rel = filepath.ToSlash(r)
			}
			entries = append(entries, models.ExplorerEntry{
				Label:    rel,
				Project:  p.Name(),
				Path:     f.Path(),
				Selected: len(selectedFiles) > 0 && selectedFiles[0] == f,
			})
		}
	}
	return entries
}

func (s *session) dispose() {
	s.selector.Dispose()
	s.runner.Dispose()
	s.host.SetRunSink(nil)
	s.host.SetCustomizer(nil)
	s.queue.Close()
}
