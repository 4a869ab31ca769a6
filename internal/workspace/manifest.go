package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Manifest lists the projects of a workspace.
type Manifest struct {
	Projects []ProjectSpec `mapstructure:"projects"`

	// Dir is the directory holding the manifest. Relative roots resolve against it.
	Dir string `mapstructure:"-"`
}

// ProjectSpec declares one project.
type ProjectSpec struct {
	Name           string                `mapstructure:"name"`
	Root           string                `mapstructure:"root"`
	Main           bool                  `mapstructure:"main"`
	Configurations []ConfigurationSpec   `mapstructure:"configurations"`
	Actions        map[string]ActionSpec `mapstructure:"actions"`
}

// ConfigurationSpec declares one run configuration.
type ConfigurationSpec struct {
	Name    string            `mapstructure:"name"`
	Display string            `mapstructure:"display"`
	Env     map[string]string `mapstructure:"env"`
	Args    []string          `mapstructure:"args"`
}

// ActionSpec is a command line template. In the manifest it is either a plain
// string or a table with command, dir and env.
//
// Templates may reference {{file}} (the single context item, shell quoted) and
// {{args}} (the active configuration's arguments).
type ActionSpec struct {
	Command string            `mapstructure:"command"`
	Dir     string            `mapstructure:"dir"`
	Env     map[string]string `mapstructure:"env"`
}

// LoadManifest reads and decodes the manifest at path. The format follows the
// extension: .yaml/.yml or .toml.
func LoadManifest(path string) (*Manifest, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &ManifestError{Path: path, Stage: "read", Cause: err}
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, &ManifestError{Path: abs, Stage: "read", Cause: err}
	}
	return ParseManifest(abs, data)
}

// ParseManifest decodes manifest bytes. path selects the format and the base
// directory for relative project roots.
func ParseManifest(path string, data []byte) (*Manifest, error) {
	raw, err := parseRaw(path, data)
	if err != nil {
		return nil, &ManifestError{Path: path, Stage: "parse", Cause: err}
	}

	m := &Manifest{Dir: filepath.Dir(path)}
	if err := decodeManifest(raw, m); err != nil {
		return nil, &ManifestError{Path: path, Stage: "decode", Cause: err}
	}
	if err := m.Validate(); err != nil {
		return nil, &ManifestError{Path: path, Stage: "validate", Cause: err}
	}
	return m, nil
}

func parseRaw(path string, data []byte) (map[string]any, error) {
	var raw map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	case ".toml":
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedManifest, filepath.Ext(path))
	}
	return raw, nil
}

func decodeManifest(raw map[string]any, m *Manifest) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       actionFromString,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           m,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(raw)
}

// actionFromString lets an action be written as a bare command string.
func actionFromString(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to != reflect.TypeOf(ActionSpec{}) {
		return data, nil
	}
	return ActionSpec{Command: data.(string)}, nil
}

// Validate checks names, roots and the main flag.
// Returns an error listing every problem.
func (m *Manifest) Validate() error {
	if len(m.Projects) == 0 {
		return ErrNoProjects
	}

	var errs []string
	names := make(map[string]bool)
	mains := 0
	for i, p := range m.Projects {
		if p.Name == "" {
			errs = append(errs, fmt.Sprintf("projects[%d].name must not be empty", i))
		} else if names[p.Name] {
			errs = append(errs, fmt.Sprintf("project %q is declared twice", p.Name))
		}
		names[p.Name] = true
		if p.Main {
			mains++
		}

		configs := make(map[string]bool)
		for j, c := range p.Configurations {
			if c.Name == "" {
				errs = append(errs, fmt.Sprintf("%s.configurations[%d].name must not be empty", p.Name, j))
				continue
			}
			if configs[c.Name] {
				errs = append(errs, fmt.Sprintf("%s: configuration %q is declared twice", p.Name, c.Name))
			}
			configs[c.Name] = true
		}
		for cmd, a := range p.Actions {
			if strings.TrimSpace(a.Command) == "" {
				errs = append(errs, fmt.Sprintf("%s.actions.%s must have a command", p.Name, cmd))
			}
		}
	}
	if mains > 1 {
		errs = append(errs, "at most one project may be main")
	}

	if len(errs) > 0 {
		return fmt.Errorf("manifest validation failed: %v", errs)
	}
	return nil
}

// RootOf returns the absolute root of p.
func (m *Manifest) RootOf(p ProjectSpec) string {
	root := p.Root
	if root == "" {
		root = "."
	}
	if !filepath.IsAbs(root) {
		root = filepath.Join(m.Dir, root)
	}
	return filepath.Clean(root)
}

// Find returns the spec named name.
func (m *Manifest) Find(name string) (ProjectSpec, bool) {
	for _, p := range m.Projects {
		if p.Name == name {
			return p, true
		}
	}
	return ProjectSpec{}, false
}
