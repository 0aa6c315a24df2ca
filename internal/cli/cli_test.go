package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/vuegen/pkg/config"
	"github.com/arthur-debert/vuegen/pkg/filesystem"
	"github.com/arthur-debert/vuegen/pkg/logging"
	"github.com/arthur-debert/vuegen/pkg/testutil"
	"github.com/arthur-debert/vuegen/pkg/ui/prompt"
)

const soundManifest = `[
  {
    "source": {"kind": "filetype", "value": ".sound"},
    "targets": [
      {"value": "build/${sourceBasename}.c", "template": "templates/sound.c.njk", "root": "workspace"}
    ]
  }
]`

// newWorkspace creates a workspace with one .sound definition and returns its root
func newWorkspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	testutil.CreateFile(t, dir, ".vuengine/templates.json", soundManifest)
	testutil.CreateFile(t, dir, "templates/sound.c.njk", "name={{ sound.name }}")
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(logging.EnvLogFile, filepath.Join(t.TempDir(), "vuegen.log"))

	if args == nil {
		args = []string{}
	}

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCmd(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "vuegen version dev")
}

func TestRootCmd_NoCommand(t *testing.T) {
	_, err := run(t)
	assert.EqualError(t, err, "no command specified")
}

func TestGenerateCmd(t *testing.T) {
	dir := newWorkspace(t)
	src := testutil.CreateFile(t, dir, "assets/Jump.sound", `{"name": "jump"}`)

	out, err := run(t, "generate", "--workspace", dir, src)
	require.NoError(t, err)

	target := filepath.Join(dir, "build", "Jump.c")
	assert.Equal(t, "name=jump", testutil.ReadFile(t, target))
	assert.Contains(t, out, "wrote "+target)
	assert.Contains(t, out, "1 written, 0 failed")
}

func TestGenerateCmd_All(t *testing.T) {
	dir := newWorkspace(t)
	testutil.CreateFile(t, dir, "a/Jump.sound", `{"name": "jump"}`)
	testutil.CreateFile(t, dir, "b/Hit.sound", `{"name": "hit"}`)
	testutil.CreateFile(t, dir, "node_modules/x/Skip.sound", `{"name": "skip"}`)

	_, err := run(t, "generate", "--workspace", dir, "--all")
	require.NoError(t, err)

	assert.Equal(t, "name=jump", testutil.ReadFile(t, filepath.Join(dir, "build", "Jump.c")))
	assert.Equal(t, "name=hit", testutil.ReadFile(t, filepath.Join(dir, "build", "Hit.c")))
	assert.NoFileExists(t, filepath.Join(dir, "build", "Skip.c"))
}

func TestGenerateCmd_RequiresFiles(t *testing.T) {
	_, err := run(t, "generate", "--workspace", t.TempDir())
	assert.EqualError(t, err, MsgErrNoArgs)
}

func TestGenerateCmd_ReportsFailures(t *testing.T) {
	dir := t.TempDir()
	testutil.CreateFile(t, dir, ".vuengine/templates.json", `[
	  {"source": {"kind": "filetype", "value": ".sound"},
	   "targets": [
	     {"value": "missing.c", "template": "templates/missing.njk", "root": "workspace"},
	     {"value": "ok.c", "template": "templates/ok.njk", "root": "workspace"}
	   ]}
	]`)
	testutil.CreateFile(t, dir, "templates/ok.njk", "ok")
	src := testutil.CreateFile(t, dir, "Jump.sound", `{}`)

	out, err := run(t, "generate", "--workspace", dir, "--format", "json", src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 targets failed")
	assert.Equal(t, "ok", testutil.ReadFile(t, filepath.Join(dir, "ok.c")))

	var report map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	failures := report["failures"].([]interface{})
	require.Len(t, failures, 1)
	assert.Equal(t, "TEMPLATE_NOT_FOUND", failures[0].(map[string]interface{})["code"])
}

func TestListCmd_JSON(t *testing.T) {
	dir := newWorkspace(t)

	out, err := run(t, "list", "--workspace", dir, "--format", "json")
	require.NoError(t, err)

	var list struct {
		Definitions []struct {
			Source string `json:"source"`
			Key    string `json:"key"`
		} `json:"definitions"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	require.Len(t, list.Definitions, 1)
	assert.Equal(t, ".sound", list.Definitions[0].Source)
	assert.Equal(t, "sound", list.Definitions[0].Key)
}

func TestListCmd_BadFormat(t *testing.T) {
	_, err := run(t, "list", "--workspace", t.TempDir(), "--format", "xml")
	assert.Error(t, err)
}

func TestDescribeCmd(t *testing.T) {
	dir := newWorkspace(t)

	out, err := run(t, "describe", "--workspace", dir, ".sound")
	require.NoError(t, err)
	assert.Contains(t, out, "# .sound")
	assert.Contains(t, out, "templates/sound.c.njk")

	out, err = run(t, "describe", "--workspace", dir, filepath.Join(dir, "any", "Boom.sound"))
	require.NoError(t, err)
	assert.Contains(t, out, "# .sound")

	out, err = run(t, "describe", "--workspace", dir, ".image")
	require.NoError(t, err)
	assert.Contains(t, out, `No definition is triggered by ".image"`)
}

func TestRenderCmd(t *testing.T) {
	dir := t.TempDir()
	tpl := testutil.CreateFile(t, dir, "t.njk", "v={{ item.value }}")
	data := testutil.CreateFile(t, dir, "data.json", `{"item": {"value": 42}}`)
	target := filepath.Join(dir, "out", "x.txt")

	out, err := run(t, "render", "--workspace", dir, "--template", tpl, "--target", target, "--data", data)
	require.NoError(t, err)
	assert.Contains(t, out, "Rendered "+target)
	assert.Equal(t, "v=42", testutil.ReadFile(t, target))

	testutil.CreateFile(t, dir, "data.json", `{"item": {"value": 7}}`)
	out, err = run(t, "render", "--workspace", dir, "--template", tpl, "--target", target, "--data", data)
	require.NoError(t, err)
	assert.Contains(t, out, "use --overwrite")
	assert.Equal(t, "v=42", testutil.ReadFile(t, target))

	_, err = run(t, "render", "--workspace", dir, "--template", tpl, "--target", target, "--data", data, "--overwrite")
	require.NoError(t, err)
	assert.Equal(t, "v=7", testutil.ReadFile(t, target))
}

func TestRenderCmd_DataMustBeObject(t *testing.T) {
	dir := t.TempDir()
	tpl := testutil.CreateFile(t, dir, "t.njk", "x")
	data := testutil.CreateFile(t, dir, "data.json", `[1, 2]`)

	_, err := run(t, "render", "--workspace", dir, "--template", tpl, "--target", filepath.Join(dir, "o"), "--data", data)
	assert.ErrorContains(t, err, "must contain a JSON object")
}

func TestGenConfigCmd(t *testing.T) {
	dir := t.TempDir()
	testutil.CreateFile(t, dir, ".vuegen.toml", "[pipeline]\nconcurrency = 3\n")

	out, err := run(t, "genconfig", "--workspace", dir)
	require.NoError(t, err)
	assert.Regexp(t, `concurrency = 3`, out)

	out, err = run(t, "genconfig", "--workspace", dir, "--write")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(dir, ".vuegen.toml"))
	assert.Contains(t, testutil.ReadFile(t, filepath.Join(dir, ".vuegen.toml")), "concurrency = 3")
}

func TestInitCmd(t *testing.T) {
	dir := t.TempDir()
	scripted := &prompt.Scripted{Answers: []interface{}{
		0,        // filetype
		".sound", // trigger value
		"",       // key: default
		0,        // relative root
		"",       // target: default
		"",       // template: default
		"",       // encoding: default
		true,     // confirm
	}}
	orig := newPromptDriver
	newPromptDriver = func() prompt.Driver { return scripted }
	t.Cleanup(func() { newPromptDriver = orig })

	out, err := run(t, "init", "--workspace", dir)
	require.NoError(t, err)

	manifest := filepath.Join(dir, ".vuengine", "templates.json")
	assert.Contains(t, out, "Added definition for .sound to "+manifest)

	var defs []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(testutil.ReadFile(t, manifest)), &defs))
	require.Len(t, defs, 1)
	target := defs[0]["targets"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "build/${sourceBasename}.c", target["value"])
	assert.Equal(t, "templates/sound.c.njk", target["template"])
	assert.Equal(t, "relative", target["root"])
	assert.NotContains(t, target, "encoding")

	assert.FileExists(t, filepath.Join(dir, "templates", "sound.c.njk"))
}

func TestInitCmd_Declined(t *testing.T) {
	dir := t.TempDir()
	scripted := &prompt.Scripted{Answers: []interface{}{1, "config/Game.json", "game", 1, "", "", "shift_jis", false}}
	orig := newPromptDriver
	newPromptDriver = func() prompt.Driver { return scripted }
	t.Cleanup(func() { newPromptDriver = orig })

	_, err := run(t, "init", "--workspace", dir)
	require.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(dir, ".vuengine", "templates.json"))
}

func TestAskDefinition_DefaultKeyIsIdentifier(t *testing.T) {
	scripted := &prompt.Scripted{Answers: []interface{}{1, "config/game-config.json", "", 1, "", "", "", true}}

	def, ok, err := askDefinition(context.Background(), scripted)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, def.Key)
	assert.Equal(t, "game_config", def.DataKey())
}

func TestAskDefinition_RejectsInvalidKey(t *testing.T) {
	scripted := &prompt.Scripted{Answers: []interface{}{1, "config/Game.json", "my-key"}}

	_, _, err := askDefinition(context.Background(), scripted)
	assert.ErrorContains(t, err, "not an identifier")
}

func TestAskDefinition_URI(t *testing.T) {
	scripted := &prompt.Scripted{Answers: []interface{}{1, "config/Game.json", "item", 1, "", "", "shift_jis", true}}

	def, ok, err := askDefinition(context.Background(), scripted)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "item", def.Key)
	assert.Equal(t, "uri", string(def.Source.Kind))
	require.Len(t, def.Targets, 1)
	assert.Equal(t, "build/Game.h", def.Targets[0].Value)
	assert.Equal(t, "templates/Game.h.njk", def.Targets[0].Template)
	assert.Equal(t, "workspace", string(def.Targets[0].Root))
	assert.Equal(t, "shift_jis", def.Targets[0].Encoding)
}

func TestAskDefinition_Aborted(t *testing.T) {
	scripted := &prompt.Scripted{Answers: []interface{}{prompt.ErrAborted}}
	_, _, err := askDefinition(context.Background(), scripted)
	assert.ErrorIs(t, err, prompt.ErrAborted)
}

func TestWatchRoots(t *testing.T) {
	cfg := config.Default()
	cfg.Roots.Engine = "/e"
	cfg.Roots.Plugins = "/e/plugins"
	cfg.Roots.UserPlugins = "/u"
	cfg.Roots.Workspace = "/w"
	cfg.Roots.InstalledPlugins = []string{"vuengine//audio"}

	a, err := newApp(cfg, filesystem.NewMemory())
	require.NoError(t, err)
	assert.Equal(t, []string{"/e", "/w", "/u"}, a.watchRoots())
}

func TestRunWatch_GeneratesUntilCancelled(t *testing.T) {
	dir := newWorkspace(t)
	testutil.CreateFile(t, dir, ".vuegen.toml", "[pipeline]\ndebounce = \"10ms\"\n")
	t.Setenv(logging.EnvLogFile, filepath.Join(t.TempDir(), "vuegen.log"))

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- runWatch(ctx, cmd, &globalOptions{workspace: dir}) }()

	target := filepath.Join(dir, "build", "Jump.c")
	src := filepath.Join(dir, "Jump.sound")
	assert.Eventually(t, func() bool {
		_ = os.WriteFile(src, []byte(`{"name": "jump"}`), 0644)
		_, err := os.Stat(target)
		return err == nil
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	require.NoError(t, <-errCh)
	assert.Equal(t, "name=jump", testutil.ReadFile(t, target))
	assert.Contains(t, out.String(), "Watching")
}

func TestHelpTopics(t *testing.T) {
	out, err := run(t, "help", "topics")
	require.NoError(t, err)
	for _, name := range []string{"configuration", "encodings", "manifests", "placeholders"} {
		assert.Contains(t, out, "  "+name)
	}

	out, err = run(t, "help", "placeholders")
	require.NoError(t, err)
	assert.Contains(t, out, "${sourceBasename}")
}
