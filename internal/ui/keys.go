package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds every key binding of the main screen.
type KeyMap struct {
	Profiles     key.Binding
	Run          key.Binding
	Debug        key.Binding
	RunFile      key.Binding
	DebugFile    key.Binding
	Customize    key.Binding
	SwitchPane   key.Binding
	Up           key.Binding
	Down         key.Binding
	Select       key.Binding
	MarkMain     key.Binding
	ClearContext key.Binding
	Quit         key.Binding
}

// DefaultKeyMap returns the stock bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Profiles:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "profiles")),
		Run:          key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "run")),
		Debug:        key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "debug")),
		RunFile:      key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "run file")),
		DebugFile:    key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "debug file")),
		Customize:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "customize")),
		SwitchPane:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "pane")),
		Up:           key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:         key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Select:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		MarkMain:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "main")),
		ClearContext: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp returns the bindings shown in the status bar.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Profiles, k.Run, k.Debug, k.RunFile, k.Customize, k.SwitchPane, k.Quit}
}

// HelpLine renders ShortHelp as "key desc" pairs.
func (k KeyMap) HelpLine() string {
	var out string
	for i, b := range k.ShortHelp() {
		if i > 0 {
			out += "  "
		}
		out += b.Help().Key + " " + b.Help().Desc
	}
	return out
}
