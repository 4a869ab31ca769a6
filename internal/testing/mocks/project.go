// Package mocks provides controllable implementations of the project model for tests.
package mocks

import (
	"fmt"
	"sync"

	"github.com/Cyclone1070/runbar/internal/listener"
	"github.com/Cyclone1070/runbar/internal/project"
)

// MockConfiguration implements project.Configuration
type MockConfiguration struct {
	Name string
}

func (c *MockConfiguration) DisplayName() string { return c.Name }

// MockItem implements project.Item
type MockItem struct {
	PathVal string
}

func (i *MockItem) Path() string { return i.PathVal }

// MockProvider implements project.ConfigurationProvider and records listener traffic
type MockProvider struct {
	listener.Support

	Configs       []project.Configuration
	Active        project.Configuration
	Customizable  bool
	CustomizeHits int

	// SetActiveErr, when set, is returned by SetActiveConfiguration without switching
	SetActiveErr error
	SetActiveLog []project.Configuration

	Adds    int
	Removes int
}

// NewMockProvider creates a provider whose first configuration is active
func NewMockProvider(names ...string) *MockProvider {
	p := &MockProvider{}
	for _, n := range names {
		p.Configs = append(p.Configs, &MockConfiguration{Name: n})
	}
	if len(p.Configs) > 0 {
		p.Active = p.Configs[0]
	}
	return p
}

func (p *MockProvider) AddListener(l listener.Listener) {
	p.Adds++
	p.Support.AddListener(l)
}

func (p *MockProvider) RemoveListener(l listener.Listener) {
	p.Removes++
	p.Support.RemoveListener(l)
}

func (p *MockProvider) Configurations() []project.Configuration { return p.Configs }

func (p *MockProvider) ActiveConfiguration() project.Configuration { return p.Active }

func (p *MockProvider) SetActiveConfiguration(c project.Configuration) error {
	p.SetActiveLog = append(p.SetActiveLog, c)
	if p.SetActiveErr != nil {
		return p.SetActiveErr
	}
	p.Active = c
	p.Fire(listener.Event{Source: p, Property: project.PropActiveConfiguration})
	return nil
}

func (p *MockProvider) HasCustomizer() bool { return p.Customizable }

func (p *MockProvider) Customize() { p.CustomizeHits++ }

// SetConfigurations replaces the list and fires PropConfigurations
func (p *MockProvider) SetConfigurations(cfgs ...project.Configuration) {
	p.Configs = cfgs
	p.Fire(listener.Event{Source: p, Property: project.PropConfigurations})
}

// Invocation records one ActionProvider call
type Invocation struct {
	Command string
	Items   []project.Item
}

// MockActions implements project.ActionProvider
type MockActions struct {
	mu sync.Mutex

	// EnabledFunc decides enablement; nil means every command is enabled
	EnabledFunc func(command string, ctx project.ActionContext) bool

	Checks  []Invocation
	Invoked []Invocation
}

func (a *MockActions) IsActionEnabled(command string, ctx project.ActionContext) bool {
	a.mu.Lock()
	a.Checks = append(a.Checks, Invocation{Command: command, Items: ctx.Items()})
	a.mu.Unlock()
	if a.EnabledFunc == nil {
		return true
	}
	return a.EnabledFunc(command, ctx)
}

func (a *MockActions) InvokeAction(command string, ctx project.ActionContext) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Invoked = append(a.Invoked, Invocation{Command: command, Items: ctx.Items()})
}

// CheckCount returns how many enablement checks were made
func (a *MockActions) CheckCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.Checks)
}

// MockProject implements project.Project with optional capabilities
type MockProject struct {
	NameVal  string
	Provider project.ConfigurationProvider
	Actions  project.ActionProvider
}

func (p *MockProject) Name() string { return p.NameVal }

func (p *MockProject) ConfigurationProvider() project.ConfigurationProvider { return p.Provider }

func (p *MockProject) ActionProvider() project.ActionProvider { return p.Actions }

func (p *MockProject) String() string { return fmt.Sprintf("project(%s)", p.NameVal) }

// PlainProject implements project.Project without any capability
type PlainProject struct {
	NameVal string
}

func (p *PlainProject) Name() string { return p.NameVal }

// MockWorkspace implements project.Workspace
type MockWorkspace struct {
	listener.Support
	Main project.Project
}

func (w *MockWorkspace) MainProject() project.Project { return w.Main }

// SetMain changes the main project and fires PropMainProject
func (w *MockWorkspace) SetMain(p project.Project) {
	w.Main = p
	w.Fire(listener.Event{Source: w, Property: project.PropMainProject})
}

// MockOwners implements project.OwnerQuery from a path map
type MockOwners struct {
	Owners  map[string]project.Project
	Lookups int
}

func (o *MockOwners) OwnerOf(item project.Item) project.Project {
	o.Lookups++
	if o.Owners == nil {
		return nil
	}
	p, ok := o.Owners[item.Path()]
	if !ok {
		return nil
	}
	return p
}

// MockEditor implements project.Editor
type MockEditor struct {
	Focused project.Item
	Queries int
}

func (e *MockEditor) FocusedItem() project.Item {
	e.Queries++
	return e.Focused
}
