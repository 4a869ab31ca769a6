package workspace

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Cyclone1070/runbar/internal/executor"
	"github.com/Cyclone1070/runbar/internal/listener"
	"github.com/Cyclone1070/runbar/internal/project"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

const hostManifest = `
projects:
  - name: root
    root: .
  - name: api
    root: services/api
    main: true
    configurations:
      - name: dev
      - name: prod
    actions:
      run: go run .
  - name: api-tools
    root: services/api/tools
`

func loadHost(t *testing.T) (*Host, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "runbar.yaml")
	writeFile(t, path, hostManifest)
	h, err := Load(context.Background(), path, &fakeRunner{result: &executor.Result{}}, testLogger())
	require.NoError(t, err)
	return h, dir
}

// --- LOAD ---

func TestLoad_OpensProjects(t *testing.T) {
	h, dir := loadHost(t)

	projects := h.Open.Projects()
	require.Len(t, projects, 3)
	assert.Equal(t, "root", projects[0].Name())
	assert.Equal(t, dir, projects[0].Root())
	assert.Equal(t, filepath.Join(dir, "services", "api"), projects[1].Root())
	assert.Same(t, h.Open.Find("api"), h.Open.MainProject())
	assert.Nil(t, h.Open.Find("missing"))
}

func TestLoad_ProjectsExposeCapabilities(t *testing.T) {
	h, _ := loadHost(t)
	api := h.Open.Find("api")

	cp := project.ConfigurationsOf(api)
	require.NotNil(t, cp)
	assert.Len(t, cp.Configurations(), 2)
	ap := project.ActionsOf(api)
	require.NotNil(t, ap)
	assert.True(t, ap.IsActionEnabled(project.CommandRun, project.EmptyContext))
}

func TestLoad_BadManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runbar.yaml")
	writeFile(t, path, "projects: []\n")

	_, err := Load(context.Background(), path, &fakeRunner{}, nil)

	assert.ErrorIs(t, err, ErrNoProjects)
}

// --- SELECTION ---

func TestHost_SourcesResolution(t *testing.T) {
	h, dir := loadHost(t)
	sources := h.Sources()

	assert.Same(t, h.Open.Find("api"), sources.Resolve(), "main project by default")

	h.Context.SelectFile(NewFile(filepath.Join(dir, "services", "api", "tools", "gen.go")))
	assert.Same(t, h.Open.Find("api-tools"), sources.Resolve(), "owner of the selected file")

	h.Context.SelectProject(h.Open.Find("root"))
	assert.Same(t, h.Open.Find("root"), sources.Resolve(), "explicit project")
	assert.Empty(t, h.Context.Files.AllInstances())

	h.Context.Clear()
	assert.Same(t, h.Open.Find("api"), sources.Resolve())
}

func TestOwners_LongestRootWins(t *testing.T) {
	h, dir := loadHost(t)

	tests := []struct {
		path string
		want string
	}{
		{filepath.Join(dir, "README.md"), "root"},
		{filepath.Join(dir, "services", "api", "main.go"), "api"},
		{filepath.Join(dir, "services", "api", "tools", "gen.go"), "api-tools"},
		{filepath.Join(dir, "services", "api-other", "x.go"), "root"},
		{filepath.Join(dir, "services", "api"), "api"},
	}
	for _, tt := range tests {
		t.Run(tt.want+" "+filepath.Base(tt.path), func(t *testing.T) {
			owner := h.Owners.OwnerOf(NewFile(tt.path))
			require.NotNil(t, owner)
			assert.Equal(t, tt.want, owner.Name())
		})
	}
}

func TestOwners_Unowned(t *testing.T) {
	h, _ := loadHost(t)

	assert.Nil(t, h.Owners.OwnerOf(NewFile("/definitely/elsewhere.go")))
	assert.Nil(t, h.Owners.OwnerOf(nil))
}

func TestOpenProjects_SetMainProject(t *testing.T) {
	h, _ := loadHost(t)
	rec := &recorder{}
	h.Open.AddListener(rec)

	h.Open.SetMainProject(h.Open.Find("root"))
	h.Open.SetMainProject(h.Open.Find("root"))
	h.Open.SetMainProject(&Project{name: "stranger"})

	require.Len(t, rec.events, 1)
	assert.Equal(t, project.PropMainProject, rec.events[0].Property)
	assert.Equal(t, "root", h.Open.MainProject().Name())

	h.Open.SetMainProject(nil)
	assert.Nil(t, h.Open.MainProject())
	assert.Len(t, rec.events, 2)
}

func TestEditorRegistry_Focus(t *testing.T) {
	e := &EditorRegistry{}
	assert.Nil(t, e.FocusedItem())

	f := NewFile("/a.go")
	e.Focus(f)
	assert.Same(t, f, e.FocusedItem())

	e.Focus(nil)
	assert.Nil(t, e.FocusedItem())
}

// --- CUSTOMIZER ---

func TestHost_SetCustomizer(t *testing.T) {
	h, _ := loadHost(t)
	var got *Project
	h.SetCustomizer(func(p *Project) { got = p })

	api := h.Open.Find("api")
	project.ConfigurationsOf(api).Customize()

	assert.Same(t, api, got)
	assert.True(t, api.Provider().HasCustomizer())

	h.SetCustomizer(nil)
	assert.False(t, api.Provider().HasCustomizer())
}

// --- RELOAD ---

func TestHost_ReloadRefreshesConfigurationsAndActions(t *testing.T) {
	h, dir := loadHost(t)
	api := h.Open.Find("api")
	rec := &recorder{}
	api.Provider().AddListener(rec)

	writeFile(t, filepath.Join(dir, "runbar.yaml"), `
projects:
  - name: api
    root: services/api
    configurations:
      - name: staging
    actions:
      debug: dlv debug
`)
	require.NoError(t, h.Reload())

	require.Len(t, api.Provider().Configurations(), 1)
	assert.Equal(t, "staging", api.Provider().ActiveConfiguration().DisplayName())
	assert.False(t, api.actions.IsActionEnabled(project.CommandRun, project.EmptyContext))
	assert.True(t, api.actions.IsActionEnabled(project.CommandDebug, project.EmptyContext))
	require.Len(t, rec.events, 1)
	assert.Equal(t, project.PropConfigurations, rec.events[0].Property)
	assert.Len(t, h.Open.Projects(), 3, "projects stay open")
}

func TestHost_ReloadFailureKeepsState(t *testing.T) {
	h, dir := loadHost(t)
	writeFile(t, filepath.Join(dir, "runbar.yaml"), "projects: [")

	assert.Error(t, h.Reload())
	assert.Len(t, h.Open.Find("api").Provider().Configurations(), 2)
}

func TestHost_WatchReloadsOnWrite(t *testing.T) {
	h, dir := loadHost(t)
	var fired atomic.Int32
	api := h.Open.Find("api")
	fn := listener.Func(func(ev listener.Event) {
		if ev.Property == project.PropConfigurations {
			fired.Add(1)
		}
	})
	api.Provider().AddListener(&fn)

	w, err := h.Watch()
	require.NoError(t, err)
	defer w.Close()

	writeFile(t, filepath.Join(dir, "runbar.yaml"), `
projects:
  - name: api
    root: services/api
    configurations:
      - name: fresh
`)

	require.Eventually(t, func() bool { return fired.Load() > 0 }, 5*time.Second, 20*time.Millisecond)
	assert.Equal(t, "fresh", api.Provider().ActiveConfiguration().DisplayName())
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "runbar.yaml")
	writeFile(t, path, "projects: []\n")
	var calls atomic.Int32
	w, err := NewWatcher(path, func() { calls.Add(1) }, nil)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644))

	assert.Never(t, func() bool { return calls.Load() > 0 }, 300*time.Millisecond, 20*time.Millisecond)
	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close(), "close is idempotent")
}
