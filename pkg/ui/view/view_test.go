package view

import (
	"fmt"
	"testing"

	"github.com/arthur-debert/vuegen/pkg/errors"
	"github.com/arthur-debert/vuegen/pkg/pipeline"
	"github.com/arthur-debert/vuegen/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromDefinitions(t *testing.T) {
	defs := []types.TemplateDefinition{
		{
			Root:   "/plugins/b",
			Source: types.Source{Kind: types.SourceFileType, Value: ".image.json"},
			Targets: []types.TemplateTarget{
				{Value: "build/${sourceBasename}.c", Template: "t/Image.c.njk", Root: types.RootRelative},
			},
		},
		{
			Root:   "/engine",
			Key:    "game",
			Source: types.Source{Kind: types.SourceURI, Value: "config/Game.json"},
			Extra: []types.ExtraSource{
				{Key: "plugins", Root: types.RootActivePlugins, Type: types.SourceFileType, Value: ".plugin.json"},
			},
			Targets: []types.TemplateTarget{
				{Value: "build/Game.h", Template: "t/Game.h.njk", Root: types.RootWorkspace, Encoding: "shift_jis"},
			},
		},
	}

	list := FromDefinitions(defs)
	require.Len(t, list.Definitions, 2)

	first := list.Definitions[0]
	assert.Equal(t, "/engine", first.Manifest)
	assert.Equal(t, "uri", first.Kind)
	assert.Equal(t, "game", first.Key)
	require.Len(t, first.Extra, 1)
	assert.Equal(t, "activePlugins", first.Extra[0].Root)
	assert.Equal(t, "shift_jis", first.Targets[0].Encoding)

	second := list.Definitions[1]
	assert.Equal(t, "image", second.Key)
	assert.Equal(t, "relative", second.Targets[0].Root)
}

func TestFromReport(t *testing.T) {
	report := &pipeline.BatchReport{
		Changes: 2,
		Matches: 1,
		Failures: []pipeline.Failure{
			{Change: "/w/a.spec", Target: "/w/a.c", Err: errors.New(errors.ErrTemplateParse, "bad template")},
			{Change: "/w/b.spec", Err: fmt.Errorf("plain")},
		},
	}

	r := FromReport(report)
	assert.Equal(t, 2, r.Changes)
	assert.NotNil(t, r.Written)
	assert.False(t, r.OK())
	require.Len(t, r.Failures, 2)
	assert.Equal(t, "TEMPLATE_PARSE", r.Failures[0].Code)
	assert.Contains(t, r.Failures[0].Error, "bad template")
	assert.Equal(t, "UNKNOWN", r.Failures[1].Code)
}
