// Package extra loads auxiliary JSON data merged into a render context.
//
// An extra source is either a single file (uri) looked up under every root
// its root kind resolves to, where the last root that has the file wins, or
// every file ending in a suffix (filetype) under every root, gathered into a
// list. Unreadable or malformed files are logged and skipped; loading never
// fails.
package extra
