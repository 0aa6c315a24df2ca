// Package pipeline turns file changes into generated files.
//
// A Pipeline starts Idle, waits on its readiness gates and loads the template
// registry while Initializing, then stays Watching and processes change
// batches until its context ends or the change stream closes.
//
// For every added or updated file that a definition's trigger matches, the
// file is parsed as JSON and stored in the render context under the
// definition's data key, extra sources are merged on top, and every target is
// resolved and rendered. Each target write succeeds or fails on its own; a
// failure is logged and recorded in the BatchReport and never stops the rest
// of the batch.
package pipeline
