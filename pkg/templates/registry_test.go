package templates

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/vuegen/pkg/paths"
	"github.com/arthur-debert/vuegen/pkg/testutil"
	"github.com/arthur-debert/vuegen/pkg/types"
)

func soundDef(template string) types.TemplateDefinition {
	return types.TemplateDefinition{
		Source: types.Source{Kind: types.SourceFileType, Value: ".sound"},
		Targets: []types.TemplateTarget{
			{Value: "build/${sourceBasename}.c", Template: template, Root: types.RootRelative},
		},
	}
}

func newRegistry(ws *testutil.Workspace) *Registry {
	return NewRegistry(ws.FS, paths.NewResolver(ws.Roots), Options{})
}

func TestLoad_ScanOrderAndRootStamping(t *testing.T) {
	ws := testutil.NewWorkspace(t).WithPlugins("vuengine//audio", "user//mine")
	ws.WriteManifest(testutil.WorkspaceRoot, soundDef("ws.njk"))
	ws.WriteManifest(testutil.EngineRoot, soundDef("engine.njk"))
	ws.WriteManifest(testutil.UserPluginsRoot+"/mine", soundDef("user.njk"))
	ws.WriteManifest(testutil.PluginsRoot+"/audio", soundDef("audio.njk"))
	// plain plugin library roots are not scanned
	ws.WriteManifest(testutil.PluginsRoot, soundDef("library.njk"))

	defs, err := newRegistry(ws).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, defs, 4)

	var order, roots []string
	for _, d := range defs {
		order = append(order, d.Targets[0].Template)
		roots = append(roots, d.Root)
	}
	assert.Equal(t, []string{"engine.njk", "audio.njk", "user.njk", "ws.njk"}, order)
	assert.Equal(t, []string{
		testutil.EngineRoot,
		testutil.PluginsRoot + "/audio",
		testutil.UserPluginsRoot + "/mine",
		testutil.WorkspaceRoot,
	}, roots)
}

func TestLoad_MissingManifestContributesNothing(t *testing.T) {
	ws := testutil.NewWorkspace(t)

	defs, err := newRegistry(ws).Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, defs)
}

func TestLoad_MalformedManifestIsSkipped(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	ws.WriteFile(testutil.ManifestPath(testutil.EngineRoot), `[{"source": `)
	ws.WriteManifest(testutil.WorkspaceRoot, soundDef("ws.njk"))

	defs, err := newRegistry(ws).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.Equal(t, testutil.WorkspaceRoot, defs[0].Root)
}

func TestLoad_InvalidDefinitionsAreSkipped(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	noTargets := types.TemplateDefinition{Source: types.Source{Kind: types.SourceURI, Value: "a.json"}}
	badKind := soundDef("x.njk")
	badKind.Source.Kind = "glob"
	noTemplate := soundDef("")
	badKey := soundDef("x.njk")
	badKey.Key = "game-config"
	badExtraKey := soundDef("x.njk")
	badExtraKey.Extra = []types.ExtraSource{{Key: "my.data", Root: types.RootWorkspace, Type: types.SourceURI, Value: "d.json"}}

	ws.WriteManifest(testutil.WorkspaceRoot, noTargets, badKind, noTemplate, badKey, badExtraKey, soundDef("ok.njk"))

	defs, err := newRegistry(ws).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.Equal(t, "ok.njk", defs[0].Targets[0].Template)
}

func TestLoad_AcceptsTypeAlias(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	ws.WriteFile(testutil.ManifestPath(testutil.WorkspaceRoot), `[
  {
    "source": {"type": "uri", "value": "config/sounds.json"},
    "targets": [{"value": "out.c", "template": "t.njk", "root": "workspace"}]
  }
]`)

	r := newRegistry(ws)
	_, err := r.Load(context.Background())
	require.NoError(t, err)

	entries := r.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, types.SourceURI, entries[0].Definition.Source.Kind)
	assert.True(t, entries[0].Trigger.Match(testutil.WorkspaceRoot+"/config/sounds.json"))
}

func TestLoad_Reload(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	r := newRegistry(ws)

	_, err := r.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, r.Definitions())

	ws.WriteManifest(testutil.WorkspaceRoot, soundDef("a.njk"), soundDef("b.njk"))
	_, err = r.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, r.Definitions(), 2)
}

func TestLoad_Cancelled(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newRegistry(ws).Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsManifest(t *testing.T) {
	ws := testutil.NewWorkspace(t).WithPlugins("vuengine//audio")
	r := newRegistry(ws)
	_, err := r.Load(context.Background())
	require.NoError(t, err)

	assert.True(t, r.IsManifest(testutil.ManifestPath(testutil.WorkspaceRoot)))
	assert.True(t, r.IsManifest(testutil.ManifestPath(testutil.PluginsRoot+"/audio")))
	assert.False(t, r.IsManifest(testutil.WorkspaceRoot+"/templates.json"))
}

func TestOptions(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	r := NewRegistry(ws.FS, paths.NewResolver(ws.Roots), Options{PreferencesDir: ".gen", ManifestName: "defs.json"})

	assert.Equal(t, "/ws/.gen/defs.json", r.ManifestPath("/ws"))
}
