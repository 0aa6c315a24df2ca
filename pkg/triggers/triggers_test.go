package triggers

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/arthur-debert/vuegen/pkg/errors"
	"github.com/arthur-debert/vuegen/pkg/registry"
	"github.com/arthur-debert/vuegen/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func abs(parts ...string) string {
	return filepath.Join(append([]string{string(filepath.Separator)}, parts...)...)
}

func TestURITrigger_Match(t *testing.T) {
	root := abs("root")
	trigger, err := NewURITrigger(root, "foo/bar.json")
	require.NoError(t, err)

	tests := []struct {
		name     string
		path     string
		expected bool
	}{
		{"same file", abs("root", "foo", "bar.json"), true},
		{"unclean path", abs("root", "foo", ".", "bar.json"), true},
		{"different root", abs("other", "foo", "bar.json"), false},
		{"same name elsewhere", abs("root", "bar.json"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, trigger.Match(tt.path))
		})
	}
}

func TestURITrigger_ScopedToRoot(t *testing.T) {
	changed := abs("root", "foo", "bar.json")

	inRoot, err := registry.NewTrigger(abs("root"), types.Source{Kind: types.SourceURI, Value: "foo/bar.json"})
	require.NoError(t, err)
	elsewhere, err := registry.NewTrigger(abs("plugin"), types.Source{Kind: types.SourceURI, Value: "foo/bar.json"})
	require.NoError(t, err)

	assert.True(t, inRoot.Match(changed))
	assert.False(t, elsewhere.Match(changed))
}

func TestURITrigger_Invalid(t *testing.T) {
	_, err := NewURITrigger(abs("root"), "")
	assert.True(t, errors.IsErrorCode(err, errors.ErrTriggerInvalid))

	_, err = NewURITrigger("", "relative.json")
	assert.True(t, errors.IsErrorCode(err, errors.ErrTriggerInvalid))
}

func TestFileTypeTrigger_Match(t *testing.T) {
	trigger, err := registry.NewTrigger(abs("root"), types.Source{Kind: types.SourceFileType, Value: ".soundspec"})
	require.NoError(t, err)

	assert.True(t, trigger.Match(abs("any", "path", "X.soundspec")))
	assert.True(t, trigger.Match(abs("elsewhere", "Y.soundspec")))
	assert.False(t, trigger.Match(abs("any", "path", "X.soundspec.bak")))
	assert.False(t, trigger.Match(abs("any", "path", "X.json")))
	assert.Equal(t, FileTypeTriggerName, trigger.Name())
}

func TestFileTypeTrigger_Invalid(t *testing.T) {
	_, err := NewFileTypeTrigger("")
	assert.True(t, errors.IsErrorCode(err, errors.ErrTriggerInvalid))
}

func TestRegisteredKinds(t *testing.T) {
	kinds := registry.TriggerKinds()
	assert.Contains(t, kinds, URITriggerName)
	assert.Contains(t, kinds, FileTypeTriggerName)
}

func TestNewTriggers_TraceLog(t *testing.T) {
	var buf bytes.Buffer
	previous, level := log.Logger, zerolog.GlobalLevel()
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	t.Cleanup(func() {
		log.Logger = previous
		zerolog.SetGlobalLevel(level)
	})

	_, err := NewFileTypeTrigger(".soundspec")
	require.NoError(t, err)
	_, err = NewURITrigger(abs("root"), "config/Game.json")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"component":"triggers.filetype"`)
	assert.Contains(t, out, `"suffix":".soundspec"`)
	assert.Contains(t, out, `"component":"triggers.uri"`)
	assert.Contains(t, out, "created uri trigger")
}
