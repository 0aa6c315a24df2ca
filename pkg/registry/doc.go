// Package registry holds the trigger factories, keyed by source kind.
// Trigger kinds register themselves in the process-wide set through init()
// functions in pkg/triggers; tests build private sets with NewFactories.
package registry
