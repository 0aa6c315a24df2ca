package pipeline

import (
	"context"
	"sync"
)

// Gate blocks pipeline initialization until a collaborator is ready
type Gate interface {
	// Name identifies the gate in logs and errors
	Name() string

	// Wait blocks until the gate opens or ctx ends. A non-nil error is fatal
	// for the pipeline.
	Wait(ctx context.Context) error
}

// Signal is a Gate opened once, optionally with an error
type Signal struct {
	name string
	once sync.Once
	done chan struct{}
	err  error
}

var _ Gate = (*Signal)(nil)

// NewSignal creates a closed-until-opened gate
func NewSignal(name string) *Signal {
	return &Signal{name: name, done: make(chan struct{})}
}

// Ready returns a gate that is already open
func Ready(name string) *Signal {
	s := NewSignal(name)
	s.Open()
	return s
}

func (s *Signal) Name() string { return s.name }

// Open releases every waiter
func (s *Signal) Open() {
	s.Fail(nil)
}

// Fail releases every waiter with err. Only the first Open or Fail counts.
func (s *Signal) Fail(err error) {
	s.once.Do(func() {
		s.err = err
		close(s.done)
	})
}

func (s *Signal) Wait(ctx context.Context) error {
	select {
	case <-s.done:
		return s.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
