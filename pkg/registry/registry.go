package registry

import (
	"sort"
	"sync"

	"github.com/arthur-debert/vuegen/pkg/errors"
	"github.com/arthur-debert/vuegen/pkg/types"
)

// Factories maps source kinds to the trigger factories that build them
type Factories struct {
	mu        sync.RWMutex
	factories map[types.SourceKind]types.TriggerFactory
}

// NewFactories creates an empty factory set
func NewFactories() *Factories {
	return &Factories{factories: make(map[types.SourceKind]types.TriggerFactory)}
}

// Register adds the factory for kind. A kind can only be registered once.
func (f *Factories) Register(kind types.SourceKind, factory types.TriggerFactory) error {
	if kind == "" {
		return errors.New(errors.ErrInvalidInput, "source kind cannot be empty")
	}
	if factory == nil {
		return errors.Newf(errors.ErrInvalidInput, "nil trigger factory for %q", kind)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, exists := f.factories[kind]; exists {
		return errors.Newf(errors.ErrAlreadyExists, "trigger kind %q is already registered", kind).
			WithDetail("kind", string(kind))
	}
	f.factories[kind] = factory
	return nil
}

// Lookup returns the factory for kind
func (f *Factories) Lookup(kind types.SourceKind) (types.TriggerFactory, error) {
	f.mu.RLock()
	factory, exists := f.factories[kind]
	f.mu.RUnlock()

	if !exists {
		return nil, errors.Newf(errors.ErrTriggerNotFound, "no trigger for source kind %q", kind).
			WithDetail("kind", string(kind))
	}
	return factory, nil
}

// Kinds returns the registered source kinds, sorted
func (f *Factories) Kinds() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	kinds := make([]string, 0, len(f.factories))
	for kind := range f.factories {
		kinds = append(kinds, string(kind))
	}
	sort.Strings(kinds)
	return kinds
}

// NewTrigger builds the trigger for a definition source scoped to root
func (f *Factories) NewTrigger(root string, source types.Source) (types.Trigger, error) {
	factory, err := f.Lookup(source.Kind)
	if err != nil {
		return nil, err
	}
	return factory(root, source)
}

// triggerFactories is filled by the init functions of pkg/triggers
var triggerFactories = NewFactories()

// RegisterTriggerFactory registers a factory in the process-wide set
func RegisterTriggerFactory(kind types.SourceKind, factory types.TriggerFactory) error {
	return triggerFactories.Register(kind, factory)
}

// TriggerKinds returns the source kinds of the process-wide set
func TriggerKinds() []string {
	return triggerFactories.Kinds()
}

// NewTrigger builds a trigger from the process-wide set
func NewTrigger(root string, source types.Source) (types.Trigger, error) {
	return triggerFactories.NewTrigger(root, source)
}
