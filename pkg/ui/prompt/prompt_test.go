package prompt

import (
	"context"
	"fmt"
	"testing"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslateSurveyErr(t *testing.T) {
	assert.ErrorIs(t, translateSurveyErr(terminal.InterruptErr), ErrAborted)

	other := fmt.Errorf("boom")
	assert.Equal(t, other, translateSurveyErr(other))
}

func TestIndexOf(t *testing.T) {
	assert.Equal(t, 1, indexOf([]string{"a", "b"}, "b"))
	assert.Equal(t, -1, indexOf([]string{"a"}, "z"))
}

func TestSurveyDriver_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := NewSurvey()
	_, err := d.Input(ctx, InputConfig{Message: "name"})
	assert.ErrorIs(t, err, context.Canceled)
	_, err = d.Confirm(ctx, ConfirmConfig{Message: "ok"})
	assert.ErrorIs(t, err, context.Canceled)
	_, err = d.Select(ctx, SelectConfig{Message: "pick", Options: []string{"a"}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScripted(t *testing.T) {
	ctx := context.Background()
	s := &Scripted{Answers: []interface{}{"", true, 1, ErrAborted}}

	v, err := s.Input(ctx, InputConfig{Message: "name", Default: "def"})
	require.NoError(t, err)
	assert.Equal(t, "def", v)

	ok, err := s.Confirm(ctx, ConfirmConfig{Message: "sure"})
	require.NoError(t, err)
	assert.True(t, ok)

	idx, err := s.Select(ctx, SelectConfig{Message: "pick", Options: []string{"a", "b"}})
	require.NoError(t, err)
	assert.Equal(t, 1, idx)

	_, err = s.Input(ctx, InputConfig{Message: "again"})
	assert.ErrorIs(t, err, ErrAborted)

	_, err = s.Input(ctx, InputConfig{Message: "exhausted"})
	assert.Error(t, err)
	assert.Equal(t, []string{"name", "sure", "pick", "again", "exhausted"}, s.Asked)
}

func TestScripted_Validator(t *testing.T) {
	s := &Scripted{Answers: []interface{}{"bad"}}
	_, err := s.Input(context.Background(), InputConfig{
		Message:   "value",
		Validator: func(v string) error { return fmt.Errorf("invalid %s", v) },
	})
	assert.EqualError(t, err, "invalid bad")
}
