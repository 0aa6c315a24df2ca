// Package filesystem provides the file service vuegen generates through.
//
// FS implementations wrap go-billy filesystems: the OS filesystem for real
// runs and an in-memory filesystem for tests. Watcher turns fsnotify events
// under a set of roots into debounced batches of types.FileChange.
package filesystem
