package prompt

import (
	"context"
	"fmt"
)

// Scripted is a Driver that replays canned answers in order. Input answers
// are strings, Confirm answers bools and Select answers option indexes.
type Scripted struct {
	Answers []interface{}

	// Asked records every prompt message, in order
	Asked []string
}

func (s *Scripted) next(message string) (interface{}, error) {
	s.Asked = append(s.Asked, message)
	if len(s.Answers) == 0 {
		return nil, fmt.Errorf("no scripted answer for %q", message)
	}
	answer := s.Answers[0]
	s.Answers = s.Answers[1:]
	if err, ok := answer.(error); ok {
		return nil, err
	}
	return answer, nil
}

func (s *Scripted) Input(ctx context.Context, cfg InputConfig) (string, error) {
	answer, err := s.next(cfg.Message)
	if err != nil {
		return "", err
	}
	value, ok := answer.(string)
	if !ok {
		return "", fmt.Errorf("answer for %q is %T, not string", cfg.Message, answer)
	}
	if value == "" {
		value = cfg.Default
	}
	if cfg.Validator != nil {
		if err := cfg.Validator(value); err != nil {
			return "", err
		}
	}
	return value, nil
}

func (s *Scripted) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	answer, err := s.next(cfg.Message)
	if err != nil {
		return false, err
	}
	value, ok := answer.(bool)
	if !ok {
		return false, fmt.Errorf("answer for %q is %T, not bool", cfg.Message, answer)
	}
	return value, nil
}

func (s *Scripted) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	answer, err := s.next(cfg.Message)
	if err != nil {
		return 0, err
	}
	value, ok := answer.(int)
	if !ok || value < 0 || value >= len(cfg.Options) {
		return 0, fmt.Errorf("answer for %q is not a valid option index: %v", cfg.Message, answer)
	}
	return value, nil
}
