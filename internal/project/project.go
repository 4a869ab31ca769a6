// Package project defines the workspace model the toolbar controls observe.
// The types here are owned by the host; controls only hold references to them.
package project

import "github.com/Cyclone1070/runbar/internal/listener"

// Project is an opaque workspace project.
// Implementations must be pointer types: projects are compared by identity.
type Project interface {
	Name() string
}

// Item is a selectable or editable file.
type Item interface {
	Path() string
}

// Configurable is implemented by projects that expose run configurations.
type Configurable interface {
	ConfigurationProvider() ConfigurationProvider
}

// Actionable is implemented by projects that can execute commands.
type Actionable interface {
	ActionProvider() ActionProvider
}

// ConfigurationsOf returns the configuration capability of p, or nil.
func ConfigurationsOf(p Project) ConfigurationProvider {
	if p == nil {
		return nil
	}
	c, ok := p.(Configurable)
	if !ok {
		return nil
	}
	return c.ConfigurationProvider()
}

// ActionsOf returns the action-execution capability of p, or nil.
func ActionsOf(p Project) ActionProvider {
	if p == nil {
		return nil
	}
	a, ok := p.(Actionable)
	if !ok {
		return nil
	}
	return a.ActionProvider()
}

// Property names fired by ConfigurationProvider listeners.
const (
	PropActiveConfiguration = "activeConfiguration"
	PropConfigurations      = "configurations"
)

// Configuration is a named run configuration.
// Two configurations may share a display name; equality is by identity.
type Configuration interface {
	DisplayName() string
}

// ConfigurationProvider is the optional configuration capability of a project.
type ConfigurationProvider interface {
	listener.Observable

	// Configurations returns the configurations in provider order.
	Configurations() []Configuration

	// ActiveConfiguration returns the active configuration or nil.
	ActiveConfiguration() Configuration

	// SetActiveConfiguration switches the active configuration.
	// Errors wrap ErrInvalidConfiguration or ErrActivationIO.
	SetActiveConfiguration(c Configuration) error

	// HasCustomizer reports whether Customize opens anything.
	HasCustomizer() bool

	// Customize opens the provider's customization entry point.
	Customize()
}

// OwnerQuery maps an item to the project that owns it.
type OwnerQuery interface {
	OwnerOf(item Item) Project
}

// PropMainProject is fired by a Workspace when its main project changes.
const PropMainProject = "mainProject"

// Workspace is the open-project set with its designated main project.
type Workspace interface {
	listener.Observable

	// MainProject returns the main project or nil if none was designated.
	MainProject() Project
}

// Editor reports the item backing the focused editor.
type Editor interface {
	FocusedItem() Item
}

// Same reports whether a and b refer to the same project.
func Same(a, b Project) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a == b
}
