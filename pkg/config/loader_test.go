package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/vuegen/pkg/errors"
	"github.com/arthur-debert/vuegen/pkg/testutil"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, ".vuengine", cfg.Templates.PreferencesDir)
	assert.Equal(t, "templates.json", cfg.Templates.Manifest)
	assert.Equal(t, "utf-8", cfg.Templates.DefaultEncoding)
	assert.Equal(t, MissingFail, cfg.Templates.MissingPlaceholder)
	assert.True(t, cfg.Templates.SortExtraMatches)
	assert.Equal(t, []string{".git", "node_modules"}, cfg.Templates.Ignore)
	assert.Equal(t, 8, cfg.Pipeline.Concurrency)
	assert.True(t, cfg.Pipeline.SerializeWrites)
	assert.Equal(t, 100*time.Millisecond, cfg.Pipeline.Debounce)
	assert.Equal(t, time.Second, cfg.Pipeline.MaxWait)
	assert.Equal(t, 128, cfg.Pipeline.CacheSize)
	assert.Empty(t, cfg.Roots.InstalledPlugins)
}

func TestLoad_Precedence(t *testing.T) {
	ws := t.TempDir()
	testutil.CreateFile(t, ws, ".vuegen.toml", `
[templates]
default_encoding = "windows-1252"
missing_placeholder = "empty"

[pipeline]
concurrency = 2
cache_size = 16
`)
	testutil.CreateFile(t, ws, ".env", "VUEGEN_PIPELINE__CONCURRENCY=3\nOTHER=ignored\n")
	t.Setenv("VUEGEN_PIPELINE__CACHE_SIZE", "32")

	cfg, err := Load(LoadOptions{
		Workspace: ws,
		Overrides: map[string]interface{}{"templates.missing_placeholder": "undefined"},
	})
	require.NoError(t, err)

	// file over defaults
	assert.Equal(t, "windows-1252", cfg.Templates.DefaultEncoding)
	// .env over file
	assert.Equal(t, 3, cfg.Pipeline.Concurrency)
	// environment over file
	assert.Equal(t, 32, cfg.Pipeline.CacheSize)
	// overrides over everything
	assert.Equal(t, MissingUndefined, cfg.Templates.MissingPlaceholder)
	// untouched defaults survive
	assert.Equal(t, ".vuengine", cfg.Templates.PreferencesDir)

	_, set := os.LookupEnv("OTHER")
	assert.False(t, set, ".env must not leak into the process environment")
}

func TestLoad_EnvOverridesDotEnv(t *testing.T) {
	ws := t.TempDir()
	testutil.CreateFile(t, ws, ".env", "VUEGEN_PIPELINE__CONCURRENCY=3\n")
	t.Setenv("VUEGEN_PIPELINE__CONCURRENCY", "5")

	cfg, err := Load(LoadOptions{Workspace: ws})
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Pipeline.Concurrency)
}

func TestLoad_YAMLFile(t *testing.T) {
	ws := t.TempDir()
	testutil.CreateFile(t, ws, ".vuegen.yaml", `
roots:
  engine: /opt/vuengine/core
  installed_plugins:
    - vuengine//audio
    - user//mine
pipeline:
  debounce: 250ms
  serialize_writes: false
`)

	cfg, err := Load(LoadOptions{Workspace: ws, IgnoreEnv: true})
	require.NoError(t, err)

	assert.Equal(t, "/opt/vuengine/core", cfg.Roots.Engine)
	assert.Equal(t, []string{"vuengine//audio", "user//mine"}, cfg.Roots.InstalledPlugins)
	assert.Equal(t, 250*time.Millisecond, cfg.Pipeline.Debounce)
	assert.False(t, cfg.Pipeline.SerializeWrites)
}

func TestLoad_EnvCommaList(t *testing.T) {
	t.Setenv("VUEGEN_ROOTS__INSTALLED_PLUGINS", "vuengine//a,user//b")

	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"vuengine//a", "user//b"}, cfg.Roots.InstalledPlugins)
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	_, err := Load(LoadOptions{File: filepath.Join(t.TempDir(), "nope.toml")})
	testutil.AssertErrorCode(t, err, errors.ErrConfigLoad)
}

func TestLoad_MalformedFile(t *testing.T) {
	ws := t.TempDir()
	testutil.CreateFile(t, ws, ".vuegen.toml", "[pipeline\nconcurrency = ")

	_, err := Load(LoadOptions{Workspace: ws, IgnoreEnv: true})
	testutil.AssertErrorCode(t, err, errors.ErrConfigParse)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]interface{}
		key       string
	}{
		{name: "unknown policy", overrides: map[string]interface{}{"templates.missing_placeholder": "guess"}, key: "templates.missing_placeholder"},
		{name: "zero concurrency", overrides: map[string]interface{}{"pipeline.concurrency": 0}, key: "pipeline.concurrency"},
		{name: "zero cache", overrides: map[string]interface{}{"pipeline.cache_size": 0}, key: "pipeline.cache_size"},
		{name: "empty manifest", overrides: map[string]interface{}{"templates.manifest": ""}, key: "templates.manifest"},
		{name: "negative max wait", overrides: map[string]interface{}{"pipeline.max_wait": -time.Second}, key: "pipeline.max_wait"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(LoadOptions{IgnoreEnv: true, Overrides: tt.overrides})
			testutil.AssertErrorCode(t, err, errors.ErrConfigValid)
			assert.Equal(t, tt.key, errors.GetErrorDetails(err)["key"])
		})
	}
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "pipeline.serialize_writes", envKey("VUEGEN_PIPELINE__SERIALIZE_WRITES"))
	assert.Equal(t, "templates.default_encoding", envKey("VUEGEN_TEMPLATES__DEFAULT_ENCODING"))
}

func TestGenerate(t *testing.T) {
	out, err := Generate(Default())
	require.NoError(t, err)
	content := string(out)

	assert.Contains(t, content, "[pipeline]")
	assert.Contains(t, content, "# concurrency = 8")
	assert.Regexp(t, `# debounce = ['"]100ms['"]`, content)
	assert.Regexp(t, `# missing_placeholder = ['"]fail['"]`, content)

	// Everything is commented out, so the document decodes to empty sections
	var decoded map[string]interface{}
	require.NoError(t, toml.Unmarshal(out, &decoded))
	assert.Empty(t, decoded["pipeline"])
}

func TestCommentOutConfigValues(t *testing.T) {
	in := "# note\n[roots]\nengine = 'x'\n\n"
	assert.Equal(t, "# note\n[roots]\n# engine = 'x'\n\n", commentOutConfigValues(in))
}
