// Package paths maps root kinds onto filesystem locations.
//
// A root kind names a family of bases that manifests, templates and data are
// looked up in:
//
//   - engine: the engine core installation directory
//   - plugins: the built-in plugin library, then the user plugin library
//   - activePlugins: one directory per active plugin, in activation order
//   - workspace: the open workspace
//   - relative: the parent directory of the file that triggered generation
//
// Resolver turns a kind into an ordered list of absolute paths using a
// types.RootsProvider. ConfigRoots is the provider built from configuration.
//
// # Environment Variables
//
//   - VUEGEN_WORKSPACE: workspace root when none is configured
//   - VUEGEN_CACHE_DIR: override the XDG cache directory
//   - VUEGEN_CONFIG_DIR: override the XDG config directory
//
// Everything else that is vuegen-owned lives under the XDG base directories
// ($XDG_CONFIG_HOME/vuegen, $XDG_CACHE_HOME/vuegen, $XDG_STATE_HOME/vuegen).
package paths
