// Package types defines the core types and interfaces used throughout vuegen.
// This includes the template definition model read from manifests, the
// file change events consumed by the pipeline, and the interfaces for the
// filesystem, root paths and triggers.
package types
