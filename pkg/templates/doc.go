// Package templates discovers template definitions.
//
// Each manifest root (engine, active plugins, workspace) may hold a
// templates.json under its preferences directory. The Registry reads every
// manifest, stamps each definition with the root it was found under and
// compiles its trigger. A root whose manifest is missing contributes nothing;
// a root whose manifest is malformed is logged and skipped.
//
// The registry is rebuilt wholesale by Load and read through snapshots, so
// concurrent readers never observe a partial scan.
package templates
