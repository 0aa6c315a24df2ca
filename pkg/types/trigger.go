package types

// Trigger decides whether a changed file should cause a template definition
// to generate.
type Trigger interface {
	// Name returns the unique name of this trigger kind
	Name() string

	// Description returns a human-readable description of what this trigger matches
	Description() string

	// Match checks if the changed file at the given absolute path matches
	Match(path string) bool
}

// TriggerFactory creates a trigger for a definition source scoped to the
// definition's root.
type TriggerFactory func(root string, source Source) (Trigger, error)
