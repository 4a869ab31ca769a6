package ui

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/Cyclone1070/runbar/internal/eventloop"
	"github.com/Cyclone1070/runbar/internal/presenter"
	"github.com/Cyclone1070/runbar/internal/project"
	"github.com/Cyclone1070/runbar/internal/ui/models"
	"github.com/Cyclone1070/runbar/internal/ui/services"
	"github.com/Cyclone1070/runbar/internal/ui/views"
	"github.com/Cyclone1070/runbar/internal/workspace"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// maxRuns bounds the run history kept in the output pane.
const maxRuns = 20

// BubbleTeaModel implements tea.Model
type BubbleTeaModel struct {
	state models.State
	keys  KeyMap
	s     *session

	flashSeq int
}

// SpinnerFactory creates a new spinner
type SpinnerFactory func() spinner.Model

// Internal messages
type tickMsg time.Time
type wakeMsg struct{}
type flashDoneMsg struct{ seq int }

func newBubbleTeaModel(s *session, spinnerFactory SpinnerFactory) BubbleTeaModel {
	m := BubbleTeaModel{
		state: models.State{
			Spinner: spinnerFactory(),
			Output:  viewport.New(80, s.cfg.UI.OutputHeight),
		},
		keys: DefaultKeyMap(),
		s:    s,
	}
	m.syncState()
	return m
}

// Init initializes the model
func (m BubbleTeaModel) Init() tea.Cmd {
	return tea.Batch(
		m.state.Spinner.Tick,
		tick(m.s.tickInterval()),
		listenForWake(m.s.queue),
	)
}

// View renders the UI
func (m BubbleTeaModel) View() string {
	return views.RenderRoot(m.state, m.keys.HelpLine())
}

// Update handles messages
func (m BubbleTeaModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		m.state.Output.Width = max(msg.Width-msg.Width/3-6, 20)
		m.state.Output.Height = max(msg.Height-8, 3)
		return m, nil

	case wakeMsg:
		cmd := m.sync()
		return m, tea.Batch(cmd, listenForWake(m.s.queue))

	case flashDoneMsg:
		if msg.seq == m.flashSeq {
			m.state.Flash = false
		}
		return m, nil

	case tickMsg:
		m.state.DotCount = (m.state.DotCount + 1) % 4
		return m, tick(m.s.tickInterval())

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.state.Spinner, cmd = m.state.Spinner.Update(msg)
		return m, cmd
	}

	if m.state.Focus == models.PaneOutput {
		var cmd tea.Cmd
		m.state.Output, cmd = m.state.Output.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKeyPress handles keyboard input
func (m BubbleTeaModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Customizer panel swallows everything but close
	if m.state.Customizer != "" {
		switch msg.String() {
		case "esc", "enter", "q":
			m.state.Customizer = ""
		}
		return m, nil
	}

	if m.state.ShowPopup {
		m.handlePopupKey(msg)
		return m, m.sync()
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Profiles):
		m.openPopup()
	case key.Matches(msg, m.keys.Run):
		m.s.runner.RunProject(project.CommandRun)
	case key.Matches(msg, m.keys.Debug):
		m.s.runner.RunProject(project.CommandDebug)
	case key.Matches(msg, m.keys.RunFile):
		m.s.runner.RunCurrentFile(project.CommandRunSingle)
	case key.Matches(msg, m.keys.DebugFile):
		m.s.runner.RunCurrentFile(project.CommandDebugSingle)
	case key.Matches(msg, m.keys.Customize):
		m.s.selector.Customize()
	case key.Matches(msg, m.keys.SwitchPane):
		if m.state.Focus == models.PaneExplorer {
			m.state.Focus = models.PaneOutput
		} else {
			m.state.Focus = models.PaneExplorer
		}
	case m.state.Focus == models.PaneOutput:
		var cmd tea.Cmd
		m.state.Output, cmd = m.state.Output.Update(msg)
		return m, tea.Batch(cmd, m.sync())
	case key.Matches(msg, m.keys.Up):
		if m.state.ExplorerIndex > 0 {
			m.state.ExplorerIndex--
		}
	case key.Matches(msg, m.keys.Down):
		if m.state.ExplorerIndex < len(m.state.Explorer)-1 {
			m.state.ExplorerIndex++
		}
	case key.Matches(msg, m.keys.Select):
		m.selectExplorerEntry()
	case key.Matches(msg, m.keys.MarkMain):
		m.markMain()
	case key.Matches(msg, m.keys.ClearContext):
		m.s.host.Context.Clear()
		m.state.StatusMessage = "Selection cleared"
	}

	return m, m.sync()
}

func (m *BubbleTeaModel) openPopup() {
	if !m.state.Profile.Enabled {
		return
	}
	m.state.ShowPopup = true
	m.state.PopupIndex = max(m.state.Profile.Selected(), 0)
}

func (m *BubbleTeaModel) handlePopupKey(msg tea.KeyMsg) {
	entries := m.state.Profile.Entries
	switch {
	case key.Matches(msg, m.keys.Up):
		for i := m.state.PopupIndex - 1; i >= 0; i-- {
			if entries[i].Kind != presenter.EntrySeparator {
				m.state.PopupIndex = i
				break
			}
		}
	case key.Matches(msg, m.keys.Down):
		for i := m.state.PopupIndex + 1; i < len(entries); i++ {
			if entries[i].Kind != presenter.EntrySeparator {
				m.state.PopupIndex = i
				break
			}
		}
	case key.Matches(msg, m.keys.Select):
		m.state.ShowPopup = false
		m.s.selector.Activate(m.state.PopupIndex)
	case msg.String() == "esc", msg.String() == "q", key.Matches(msg, m.keys.Profiles):
		m.state.ShowPopup = false
	}
}

func (m *BubbleTeaModel) selectExplorerEntry() {
	if m.state.ExplorerIndex >= len(m.state.Explorer) {
		return
	}
	e := m.state.Explorer[m.state.ExplorerIndex]
	p := m.s.host.Open.Find(e.Project)
	if p == nil {
		return
	}
	if e.IsProject {
		m.s.host.Context.SelectProject(p)
		m.s.toggleExpanded(p)
		return
	}
	if f := m.s.fileAt(p, e.Path); f != nil {
		m.s.host.Context.SelectFile(f)
		m.s.host.Editor.Focus(f)
		m.state.StatusMessage = "Editing " + filepath.Base(f.Path())
	}
}

func (m *BubbleTeaModel) markMain() {
	if m.state.ExplorerIndex >= len(m.state.Explorer) {
		return
	}
	e := m.state.Explorer[m.state.ExplorerIndex]
	if p := m.s.host.Open.Find(e.Project); p != nil {
		m.s.host.Open.SetMainProject(p)
		m.state.StatusMessage = "Main project: " + p.Name()
	}
}

// sync runs queued control work and copies control state into the view state.
func (m *BubbleTeaModel) sync() tea.Cmd {
	m.s.queue.Drain()
	return m.syncState()
}

func (m *BubbleTeaModel) syncState() tea.Cmd {
	s := m.s
	m.state.Profile = s.selector.State()
	m.state.ProfileProject = nameOf(s.selector.Current())
	m.state.RunProject = nameOf(s.runner.Current())
	m.state.Explorer = s.explorerEntries()
	if m.state.ExplorerIndex >= len(m.state.Explorer) {
		m.state.ExplorerIndex = max(len(m.state.Explorer)-1, 0)
	}
	if m.state.PopupIndex >= len(m.state.Profile.Entries) {
		m.state.PopupIndex = 0
	}

	if s.runsChanged {
		s.runsChanged = false
		m.state.Runs = append([]models.RunLine(nil), s.runs...)
		m.state.Running = 0
		for _, r := range s.runs {
			if r.Running {
				m.state.Running++
			}
		}
		m.state.Output.SetContent(views.FormatRuns(m.state.Runs))
		m.state.Output.GotoBottom()
	}
	if s.status != "" {
		m.state.StatusMessage = s.status
		s.status = ""
	}

	if s.customizing != nil {
		width := max(m.state.Width-10, 40)
		md := services.CustomizerMarkdown(s.customizing, s.host.ManifestPath())
		m.state.Customizer = services.RenderMarkdown(md, width, s.renderer)
		s.customizing = nil
	}

	if s.flashPending {
		s.flashPending = false
		d := time.Duration(s.cfg.Toolbar.FeedbackDurationMs) * time.Millisecond
		if d > 0 {
			m.state.Flash = true
			m.flashSeq++
			seq := m.flashSeq
			return tea.Tick(d, func(time.Time) tea.Msg { return flashDoneMsg{seq: seq} })
		}
	}
	return nil
}

func runTitle(ev workspace.RunEvent) string {
	title := fmt.Sprintf("%s %s", ev.Command, ev.Project)
	if ev.File != "" {
		title += " " + filepath.Base(ev.File)
	}
	if ev.Configuration != "" {
		title += " [" + ev.Configuration + "]"
	}
	return title
}

func nameOf(p project.Project) string {
	if p == nil {
		return ""
	}
	return p.Name()
}

// listenForWake waits for queued control work. It yields nil once the
// queue is closed.
func listenForWake(q *eventloop.Queue) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-q.Wake(); !ok {
			return nil
		}
		return wakeMsg{}
	}
}

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
