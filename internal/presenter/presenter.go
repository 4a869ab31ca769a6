// Package presenter derives the visible state of the configuration selector.
//
// State is never authoritative: it is recomputed from scratch from the current
// configuration provider every time something relevant changes.
package presenter

import (
	"strings"

	"github.com/Cyclone1070/runbar/internal/project"
)

// EntryKind tells the toolbar how to render a menu entry.
type EntryKind int

const (
	EntryPlaceholder EntryKind = iota
	EntryConfiguration
	EntrySeparator
	EntryCustomize
)

// MenuEntry is one row of the configuration popup.
type MenuEntry struct {
	Kind          EntryKind
	Label         string
	Enabled       bool
	Selected      bool
	Configuration project.Configuration // set for EntryConfiguration
}

// State is the derived presentation of the selector.
type State struct {
	Label   string
	Tooltip string
	Enabled bool
	Entries []MenuEntry
}

// Options holds the texts and limits used when deriving State.
type Options struct {
	MaxRunes       int
	Indicator      string
	EmptyLabel     string
	Placeholder    string
	CustomizeLabel string
	TooltipHint    string
}

// DefaultOptions returns the stock labels.
func DefaultOptions() Options {
	return Options{
		MaxRunes:       7,
		Indicator:      "▾",
		EmptyLabel:     "()",
		Placeholder:    "(no conf)",
		CustomizeLabel: "Customize…",
		TooltipHint:    "Run profile",
	}
}

// Synchronize derives the full State from cp, which may be nil.
func Synchronize(cp project.ConfigurationProvider, opts Options) State {
	s := State{
		Label:   opts.EmptyLabel + opts.Indicator,
		Tooltip: opts.TooltipHint,
	}

	var configs []project.Configuration
	if cp != nil {
		configs = cp.Configurations()
		if active := cp.ActiveConfiguration(); active != nil {
			full := active.DisplayName()
			s.Label = Truncate(full, opts)
			s.Tooltip = full
		}
	}

	s.Enabled = cp != nil && len(configs) > 0
	s.Entries = Menu(cp, opts)
	return s
}

// Truncate shortens a configuration name for the toolbar button.
// Names of up to MaxRunes characters are kept verbatim. Longer names lose their
// angle brackets first and are then cut to MaxRunes characters.
func Truncate(name string, opts Options) string {
	runes := []rune(name)
	if len(runes) <= opts.MaxRunes {
		return name + opts.Indicator
	}
	stripped := []rune(strings.NewReplacer("<", "", ">", "").Replace(name))
	if len(stripped) > opts.MaxRunes {
		stripped = stripped[:opts.MaxRunes]
	}
	return string(stripped) + opts.Indicator
}

// Menu rebuilds the popup entries for cp.
func Menu(cp project.ConfigurationProvider, opts Options) []MenuEntry {
	if cp == nil {
		return []MenuEntry{placeholder(opts)}
	}
	configs := cp.Configurations()
	if len(configs) == 0 {
		return []MenuEntry{placeholder(opts)}
	}

	active := cp.ActiveConfiguration()
	entries := make([]MenuEntry, 0, len(configs)+2)
	for _, c := range configs {
		entries = append(entries, MenuEntry{
			Kind:          EntryConfiguration,
			Label:         c.DisplayName(),
			Enabled:       true,
			Selected:      active != nil && c == active,
			Configuration: c,
		})
	}

	if cp.HasCustomizer() {
		entries = append(entries,
			MenuEntry{Kind: EntrySeparator},
			MenuEntry{Kind: EntryCustomize, Label: opts.CustomizeLabel, Enabled: true},
		)
	}
	return entries
}

// Selected returns the index of the selected entry, or -1.
func (s State) Selected() int {
	for i, e := range s.Entries {
		if e.Selected {
			return i
		}
	}
	return -1
}

func placeholder(opts Options) MenuEntry {
	return MenuEntry{Kind: EntryPlaceholder, Label: opts.Placeholder}
}
