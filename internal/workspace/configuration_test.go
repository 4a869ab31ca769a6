package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Cyclone1070/runbar/internal/listener"
	"github.com/Cyclone1070/runbar/internal/project"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProvider(t *testing.T, root string, names ...string) *Provider {
	t.Helper()
	specs := make([]ConfigurationSpec, len(names))
	for i, n := range names {
		specs[i] = ConfigurationSpec{Name: n}
	}
	return newProvider("app", root, specs, testLogger())
}

type recorder struct {
	events []listener.Event
}

func (r *recorder) PropertyChange(ev listener.Event) { r.events = append(r.events, ev) }

// --- ACTIVE CONFIGURATION ---

func TestProvider_FirstConfigurationActiveByDefault(t *testing.T) {
	p := testProvider(t, t.TempDir(), "dev", "prod")

	require.NotNil(t, p.ActiveConfiguration())
	assert.Equal(t, "dev", p.ActiveConfiguration().DisplayName())
}

func TestProvider_NoConfigurations(t *testing.T) {
	p := testProvider(t, t.TempDir())

	assert.Empty(t, p.Configurations())
	assert.Nil(t, p.ActiveConfiguration())
}

func TestProvider_SetActivePersistsAndFires(t *testing.T) {
	root := t.TempDir()
	p := testProvider(t, root, "dev", "prod")
	rec := &recorder{}
	p.AddListener(rec)
	prod := p.Configurations()[1]

	err := p.SetActiveConfiguration(prod)

	require.NoError(t, err)
	assert.Same(t, prod, p.ActiveConfiguration())
	require.Len(t, rec.events, 1)
	assert.Equal(t, project.PropActiveConfiguration, rec.events[0].Property)
	assert.Same(t, p, rec.events[0].Source)

	data, err := os.ReadFile(filepath.Join(root, ".runbar", "active"))
	require.NoError(t, err)
	assert.Equal(t, "prod\n", string(data))
}

func TestProvider_RestoresPersistedActive(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".runbar", "active"), "prod\n")

	p := testProvider(t, root, "dev", "prod")

	assert.Equal(t, "prod", p.ActiveConfiguration().DisplayName())
}

func TestProvider_StalePersistedNameFallsBackToFirst(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".runbar", "active"), "gone\n")

	p := testProvider(t, root, "dev", "prod")

	assert.Equal(t, "dev", p.ActiveConfiguration().DisplayName())
}

func TestProvider_SetActiveAlreadyActiveFiresNothing(t *testing.T) {
	p := testProvider(t, t.TempDir(), "dev")
	rec := &recorder{}
	p.AddListener(rec)

	require.NoError(t, p.SetActiveConfiguration(p.ActiveConfiguration()))

	assert.Empty(t, rec.events)
}

// --- FAILURES ---

func TestProvider_SetActiveForeignConfiguration(t *testing.T) {
	p := testProvider(t, t.TempDir(), "dev")
	other := testProvider(t, t.TempDir(), "dev")

	err := p.SetActiveConfiguration(other.Configurations()[0])

	assert.ErrorIs(t, err, project.ErrInvalidConfiguration)
	assert.Equal(t, "dev", p.ActiveConfiguration().DisplayName())
	assert.NotSame(t, other.Configurations()[0], p.ActiveConfiguration())
}

func TestProvider_SetActiveNil(t *testing.T) {
	p := testProvider(t, t.TempDir(), "dev")

	err := p.SetActiveConfiguration(nil)

	assert.ErrorIs(t, err, project.ErrInvalidConfiguration)
}

func TestProvider_PersistFailureKeepsActive(t *testing.T) {
	root := t.TempDir()
	// A file where the state directory should be makes MkdirAll fail.
	writeFile(t, filepath.Join(root, ".runbar"), "not a directory")
	p := testProvider(t, root, "dev", "prod")
	rec := &recorder{}
	p.AddListener(rec)
	before := p.ActiveConfiguration()

	err := p.SetActiveConfiguration(p.Configurations()[1])

	assert.ErrorIs(t, err, project.ErrActivationIO)
	var ae *project.ActivationError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "app", ae.Project)
	assert.Equal(t, "prod", ae.Configuration)
	assert.Same(t, before, p.ActiveConfiguration())
	assert.Empty(t, rec.events)
}

func TestProvider_SetActiveRacingReloadIsRejected(t *testing.T) {
	p := testProvider(t, t.TempDir(), "dev", "prod")
	stale := p.Configurations()[1]
	p.writeFile = func(name string, data []byte, perm os.FileMode) error {
		// The watcher swaps the list while the state file is being written.
		p.Reload([]ConfigurationSpec{{Name: "dev"}, {Name: "prod"}})
		return os.WriteFile(name, data, perm)
	}
	rec := &recorder{}
	p.AddListener(rec)

	err := p.SetActiveConfiguration(stale)

	assert.ErrorIs(t, err, project.ErrInvalidConfiguration)
	assert.Contains(t, p.Configurations(), p.ActiveConfiguration())
	assert.NotSame(t, stale, p.ActiveConfiguration())
	require.Len(t, rec.events, 1)
	assert.Equal(t, project.PropConfigurations, rec.events[0].Property)
}

// --- RELOAD ---

func TestProvider_ReloadKeepsActiveByName(t *testing.T) {
	p := testProvider(t, t.TempDir(), "dev", "prod")
	require.NoError(t, p.SetActiveConfiguration(p.Configurations()[1]))
	rec := &recorder{}
	p.AddListener(rec)

	p.Reload([]ConfigurationSpec{{Name: "prod", Display: "Production"}, {Name: "test"}})

	require.Len(t, p.Configurations(), 2)
	assert.Equal(t, "Production", p.ActiveConfiguration().DisplayName())
	assert.Same(t, p.Configurations()[0], p.ActiveConfiguration())
	require.Len(t, rec.events, 1)
	assert.Equal(t, project.PropConfigurations, rec.events[0].Property)
}

func TestProvider_ReloadDropsRemovedActive(t *testing.T) {
	p := testProvider(t, t.TempDir(), "dev")

	p.Reload([]ConfigurationSpec{{Name: "other"}})

	assert.Equal(t, "other", p.ActiveConfiguration().DisplayName())
}

// --- CUSTOMIZER ---

func TestProvider_Customizer(t *testing.T) {
	p := testProvider(t, t.TempDir(), "dev")
	assert.False(t, p.HasCustomizer())
	assert.NotPanics(t, p.Customize)

	hits := 0
	p.SetCustomizer(func() { hits++ })
	p.Customize()

	assert.True(t, p.HasCustomizer())
	assert.Equal(t, 1, hits)
}

func TestConfiguration_DisplayNameAndEnv(t *testing.T) {
	c := newConfiguration(ConfigurationSpec{Name: "dev", Env: map[string]string{"B": "2", "A": "1"}, Args: []string{"-v"}})

	assert.Equal(t, "dev", c.DisplayName())
	assert.Equal(t, []string{"A=1", "B=2"}, c.Environ())
	assert.Equal(t, []string{"-v"}, c.Args())
}
