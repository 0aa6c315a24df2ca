// Package testutil provides utilities for testing vuegen components.
//
// Key components:
//   - Workspace: in-memory filesystem builder with engine, plugin and
//     workspace roots laid out the way a real installation would be
//   - MockRootsProvider: testify mock of types.RootsProvider
//   - StaticRoots: fixed RootsProvider for tests that do not assert calls
//   - Assertions on generated files and coded errors
//
// Usage guidelines:
//   - Most tests should build a Workspace and never touch the disk
//   - Tests that exercise the OS filesystem or the watcher use t.TempDir()
//   - All test data should be defined inline, not in external files
package testutil
