package types

import (
	"io/fs"
	"path/filepath"
)

// FS is the filesystem interface required for generation
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)

	// WriteFile writes data, creating any missing parent directories
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	Walk(root string, fn filepath.WalkFunc) error

	// Exists reports whether name exists. Errors other than "not found"
	// are reported as false.
	Exists(name string) bool
}

// RootsProvider supplies the installation and workspace locations the root
// resolver maps root kinds onto.
type RootsProvider interface {
	// EngineCorePath returns the engine core installation directory
	EngineCorePath() string

	// EnginePluginsPath returns the built-in plugin library directory
	EnginePluginsPath() string

	// UserPluginsPath returns the user plugin library directory
	UserPluginsPath() string

	// WorkspaceRoot returns the open workspace directory
	WorkspaceRoot() string

	// InstalledPlugins returns the active plugin identifiers in order.
	// Identifiers are prefixed "vuengine//" or "user//".
	InstalledPlugins() []string
}
