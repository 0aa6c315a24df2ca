package render

import (
	"testing"

	"github.com/flosch/pongo2/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderString(t *testing.T, src string, ctx pongo2.Context) string {
	t.Helper()
	tpl, err := pongo2.FromString(src)
	require.NoError(t, err)
	out, err := tpl.Execute(ctx)
	require.NoError(t, err)
	return out
}

func TestFilters(t *testing.T) {
	assert.Equal(t, "Dog", renderString(t, `{{ name|upperfirst }}`, pongo2.Context{"name": "dog"}))
	assert.Equal(t, "big_bang_2", renderString(t, `{{ name|identifier }}`, pongo2.Context{"name": "big bang-2"}))
	assert.Equal(t, "_8bit", renderString(t, `{{ name|identifier }}`, pongo2.Context{"name": "8bit"}))
	assert.Equal(t, "0xFF", renderString(t, `{{ n|hex }}`, pongo2.Context{"n": int64(255)}))
	assert.Equal(t, "0x00FF", renderString(t, `{{ n|hex:4 }}`, pongo2.Context{"n": 255}))
}
