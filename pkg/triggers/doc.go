// Package triggers implements the trigger kinds a template definition can
// declare as its source. Triggers decide whether a changed file should cause
// the definition to generate. Each kind registers a factory with
// pkg/registry from init().
package triggers
