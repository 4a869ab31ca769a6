package models

import (
	"time"

	"github.com/Cyclone1070/runbar/internal/presenter"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
)

// Pane identifies the focused body pane.
type Pane int

const (
	PaneExplorer Pane = iota
	PaneOutput
)

// ExplorerEntry is one row of the project explorer.
type ExplorerEntry struct {
	Label     string
	Project   string
	Path      string // empty for project rows
	IsProject bool
	Expanded  bool
	Main      bool
	Selected  bool
}

// RunLine summarizes one invoked action.
type RunLine struct {
	ID       string
	Title    string
	Running  bool
	ExitCode int
	Err      string
	Output   string
	Duration time.Duration
}

// State holds everything the views render.
type State struct {
	Width  int
	Height int
	Focus  Pane

	// Toolbar
	Profile        presenter.State
	ProfileProject string
	RunProject     string
	Flash          bool
	Running        int

	// Profile popup
	ShowPopup  bool
	PopupIndex int

	// Customizer panel (rendered markdown); empty when closed
	Customizer string

	Explorer      []ExplorerEntry
	ExplorerIndex int

	Runs          []RunLine
	StatusMessage string
	DotCount      int

	Spinner spinner.Model
	Output  viewport.Model
}
