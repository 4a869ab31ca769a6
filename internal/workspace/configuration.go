package workspace

import (
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/Cyclone1070/runbar/internal/listener"
	"github.com/Cyclone1070/runbar/internal/project"
)

const (
	stateDir   = ".runbar"
	activeFile = "active"
)

// Configuration is a named set of environment variables and arguments.
type Configuration struct {
	name    string
	display string
	env     map[string]string
	args    []string
}

func newConfiguration(spec ConfigurationSpec) *Configuration {
	return &Configuration{
		name:    spec.Name,
		display: spec.Display,
		env:     spec.Env,
		args:    slices.Clone(spec.Args),
	}
}

// Name is the identifier persisted as the active configuration.
func (c *Configuration) Name() string { return c.name }

// DisplayName is the display name, falling back to the name.
func (c *Configuration) DisplayName() string {
	if c.display != "" {
		return c.display
	}
	return c.name
}

// Args returns the configuration's arguments.
func (c *Configuration) Args() []string { return slices.Clone(c.args) }

// Environ returns the configuration's env as sorted KEY=VALUE pairs.
func (c *Configuration) Environ() []string {
	env := make([]string, 0, len(c.env))
	for k, v := range c.env {
		env = append(env, k+"="+v)
	}
	sort.Strings(env)
	return env
}

// Provider is the configuration capability of a workspace project.
// The active configuration is persisted under <root>/.runbar/active.
type Provider struct {
	listener.Support

	project   string
	root      string
	logger    *slog.Logger
	writeFile func(name string, data []byte, perm os.FileMode) error

	mu         sync.RWMutex
	configs    []project.Configuration
	active     project.Configuration
	customizer func()
}

func newProvider(projectName, root string, specs []ConfigurationSpec, logger *slog.Logger) *Provider {
	p := &Provider{
		project:   projectName,
		root:      root,
		logger:    logger,
		writeFile: os.WriteFile,
	}
	p.configs = buildConfigurations(specs)
	p.active = p.restoreActive(p.configs)
	return p
}

func buildConfigurations(specs []ConfigurationSpec) []project.Configuration {
	configs := make([]project.Configuration, 0, len(specs))
	for _, spec := range specs {
		configs = append(configs, newConfiguration(spec))
	}
	return configs
}

// Configurations returns the configurations in manifest order.
func (p *Provider) Configurations() []project.Configuration {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Clone(p.configs)
}

// ActiveConfiguration returns the active configuration or nil.
func (p *Provider) ActiveConfiguration() project.Configuration {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.active
}

// SetActiveConfiguration persists c and makes it active.
// Setting the already active configuration fires nothing.
func (p *Provider) SetActiveConfiguration(c project.Configuration) error {
	conf, ok := c.(*Configuration)
	p.mu.RLock()
	member := ok && slices.Contains(p.configs, c)
	current := p.active
	p.mu.RUnlock()

	if !member {
		name := ""
		if c != nil {
			name = c.DisplayName()
		}
		return &project.ActivationError{Project: p.project, Configuration: name, Kind: project.ErrInvalidConfiguration}
	}
	if current == c {
		return nil
	}

	if err := p.persist(conf.name); err != nil {
		return &project.ActivationError{Project: p.project, Configuration: conf.name, Kind: project.ErrActivationIO, Cause: err}
	}

	// A reload may have replaced the list while the file was written.
	p.mu.Lock()
	if !slices.Contains(p.configs, c) {
		p.mu.Unlock()
		return &project.ActivationError{Project: p.project, Configuration: conf.name, Kind: project.ErrInvalidConfiguration}
	}
	p.active = c
	p.mu.Unlock()

	p.logger.Info("active configuration changed", "project", p.project, "configuration", conf.name)
	p.Fire(listener.Event{Source: p, Property: project.PropActiveConfiguration})
	return nil
}

// HasCustomizer reports whether a customizer hook is installed.
func (p *Provider) HasCustomizer() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.customizer != nil
}

// Customize runs the installed customizer hook.
func (p *Provider) Customize() {
	p.mu.RLock()
	hook := p.customizer
	p.mu.RUnlock()
	if hook != nil {
		hook()
	}
}

// SetCustomizer installs the customizer hook. nil removes it.
func (p *Provider) SetCustomizer(hook func()) {
	p.mu.Lock()
	p.customizer = hook
	p.mu.Unlock()
}

// Reload replaces the configuration list. The active configuration is kept by
// name when it survives, otherwise the persisted or first one is used.
func (p *Provider) Reload(specs []ConfigurationSpec) {
	configs := buildConfigurations(specs)

	p.mu.RLock()
	activeName := ""
	if c, ok := p.active.(*Configuration); ok {
		activeName = c.name
	}
	p.mu.RUnlock()

	active := findConfiguration(configs, activeName)
	if active == nil {
		active = p.restoreActive(configs)
	}

	p.mu.Lock()
	p.configs = configs
	p.active = active
	p.mu.Unlock()

	p.logger.Debug("configurations reloaded", "project", p.project, "count", len(configs))
	p.Fire(listener.Event{Source: p, Property: project.PropConfigurations})
}

// restoreActive picks the persisted configuration, falling back to the first one.
func (p *Provider) restoreActive(configs []project.Configuration) project.Configuration {
	if len(configs) == 0 {
		return nil
	}
	data, err := os.ReadFile(p.statePath())
	if err == nil {
		if c := findConfiguration(configs, strings.TrimSpace(string(data))); c != nil {
			return c
		}
	} else if !os.IsNotExist(err) {
		p.logger.Warn("cannot read active configuration", "project", p.project, "error", err)
	}
	return configs[0]
}

func (p *Provider) persist(name string) error {
	path := p.statePath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return p.writeFile(path, []byte(name+"\n"), 0o644)
}

func (p *Provider) statePath() string {
	return filepath.Join(p.root, stateDir, activeFile)
}

func findConfiguration(configs []project.Configuration, name string) project.Configuration {
	if name == "" {
		return nil
	}
	for _, c := range configs {
		if conf, ok := c.(*Configuration); ok && conf.name == name {
			return c
		}
	}
	return nil
}
