package testutil

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/vuegen/pkg/filesystem"
	"github.com/arthur-debert/vuegen/pkg/types"
)

// Default locations used by NewWorkspace
const (
	EngineRoot      = "/vuengine/core"
	PluginsRoot     = "/vuengine/plugins"
	UserPluginsRoot = "/home/user/vuengine/plugins"
	WorkspaceRoot   = "/projects/game"
	PreferencesDir  = ".vuengine"
	ManifestName    = "templates.json"
)

// Workspace is an in-memory installation: an engine, plugin libraries and an
// open workspace, all on a memfs-backed types.FS
type Workspace struct {
	t     *testing.T
	FS    types.FS
	Roots StaticRoots
}

// NewWorkspace creates an empty workspace with the default root layout
func NewWorkspace(t *testing.T) *Workspace {
	t.Helper()
	return &Workspace{
		t:  t,
		FS: filesystem.NewMemory(),
		Roots: StaticRoots{
			Engine:      EngineRoot,
			Plugins:     PluginsRoot,
			UserPlugins: UserPluginsRoot,
			Workspace:   WorkspaceRoot,
		},
	}
}

// WithPlugins sets the active plugin ids
func (w *Workspace) WithPlugins(ids ...string) *Workspace {
	w.Roots.Installed = ids
	return w
}

// WriteFile writes a file at an absolute path
func (w *Workspace) WriteFile(path, content string) string {
	w.t.Helper()
	require.NoError(w.t, w.FS.WriteFile(path, []byte(content), 0644))
	return path
}

// WriteJSON marshals v and writes it at an absolute path
func (w *Workspace) WriteJSON(path string, v interface{}) string {
	w.t.Helper()
	data, err := json.MarshalIndent(v, "", "  ")
	require.NoError(w.t, err)
	return w.WriteFile(path, string(data))
}

// WriteManifest writes a templates.json under root
func (w *Workspace) WriteManifest(root string, defs ...types.TemplateDefinition) string {
	w.t.Helper()
	if defs == nil {
		defs = []types.TemplateDefinition{}
	}
	return w.WriteJSON(ManifestPath(root), defs)
}

// ReadFile returns the content of a file, failing the test if it is missing
func (w *Workspace) ReadFile(path string) string {
	w.t.Helper()
	data, err := w.FS.ReadFile(path)
	require.NoError(w.t, err, "reading %s", path)
	return string(data)
}

// ManifestPath returns the manifest location under root
func ManifestPath(root string) string {
	return filepath.Join(root, PreferencesDir, ManifestName)
}
