// Package render renders templates into generated files.
//
// Templates use the pongo2 language ({{ item.value }}, {% for %}, filters).
// Compiled templates are kept in an LRU cache keyed by template path, or by
// name for inline templates, and can be invalidated when a template changes.
// Output is re-encoded to the requested text encoding before it is written.
package render
