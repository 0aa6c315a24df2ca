package filesystem

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/vuegen/pkg/errors"
	"github.com/arthur-debert/vuegen/pkg/logging"
	"github.com/arthur-debert/vuegen/pkg/types"
)

// DefaultDebounce is how long the watcher waits for more events before
// flushing a batch
const DefaultDebounce = 100 * time.Millisecond

// DefaultMaxWait caps how long a batch may keep growing under a steady stream
// of events
const DefaultMaxWait = time.Second

// WatcherOptions configures a Watcher
type WatcherOptions struct {
	// Debounce groups events arriving within this window into one batch
	Debounce time.Duration

	// MaxWait flushes a batch this long after its first event even if events
	// keep arriving. Never shorter than Debounce.
	MaxWait time.Duration

	// Ignore lists directory names that are never watched (e.g. ".git")
	Ignore []string
}

// Watcher reports filesystem changes under a set of roots as batches.
// fsnotify watches are not recursive, so every directory below a root is
// added individually, including directories created later.
type Watcher struct {
	watcher  *fsnotify.Watcher
	changes  chan []types.FileChange
	debounce time.Duration
	maxWait  time.Duration
	ignore   map[string]bool
	logger   zerolog.Logger

	mu      sync.Mutex
	pending map[string]types.ChangeKind
}

// NewWatcher creates a watcher over the given roots. Roots that do not exist
// are skipped.
func NewWatcher(roots []string, opts WatcherOptions) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrWatch, "failed to create file watcher")
	}

	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	maxWait := opts.MaxWait
	if maxWait <= 0 {
		maxWait = DefaultMaxWait
	}
	if maxWait < debounce {
		maxWait = debounce
	}

	w := &Watcher{
		watcher:  fw,
		changes:  make(chan []types.FileChange, 16),
		debounce: debounce,
		maxWait:  maxWait,
		ignore:   make(map[string]bool, len(opts.Ignore)),
		logger:   logging.GetLogger("filesystem.watcher"),
		pending:  make(map[string]types.ChangeKind),
	}
	for _, name := range opts.Ignore {
		w.ignore[name] = true
	}

	for _, root := range roots {
		if _, err := os.Stat(root); err != nil {
			w.logger.Debug().Str("root", root).Msg("Skipping missing watch root")
			continue
		}
		if err := w.addTree(root); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}

	return w, nil
}

// Changes returns the stream of change batches. It is closed when Run returns.
func (w *Watcher) Changes() <-chan []types.FileChange {
	return w.changes
}

// Run forwards events until ctx is cancelled or the watcher is closed
func (w *Watcher) Run(ctx context.Context) error {
	defer close(w.changes)

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	// deadline is when the pending batch must go out; zero while nothing is
	// pending
	var deadline time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.record(event) {
				continue
			}
			now := time.Now()
			if deadline.IsZero() {
				deadline = now.Add(w.maxWait)
			}
			wait := w.debounce
			if remaining := deadline.Sub(now); remaining < wait {
				wait = remaining
			}
			timer.Reset(wait)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn().Err(err).Msg("File watcher error")

		case <-timer.C:
			deadline = time.Time{}
			batch := w.flush()
			if len(batch) == 0 {
				continue
			}
			select {
			case w.changes <- batch:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

// Close stops watching
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// record folds an fsnotify event into the pending batch and reports whether
// anything was recorded
func (w *Watcher) record(event fsnotify.Event) bool {
	var kind types.ChangeKind
	switch {
	case event.Has(fsnotify.Create):
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			return w.recordNewTree(event.Name)
		}
		kind = types.ChangeAdded
	case event.Has(fsnotify.Write):
		kind = types.ChangeUpdated
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		kind = types.ChangeDeleted
	default:
		return false
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	// A file created and then written within one window is still an addition
	if prev, ok := w.pending[event.Name]; ok && prev == types.ChangeAdded && kind == types.ChangeUpdated {
		return true
	}
	w.pending[event.Name] = kind
	return true
}

// recordNewTree watches a directory created after startup. Files can land in
// it before the watch is in place, so everything already there is recorded
// as added.
func (w *Watcher) recordNewTree(dir string) bool {
	if err := w.addTree(dir); err != nil {
		w.logger.Warn().Err(err).Str("path", dir).Msg("Failed to watch new directory")
	}

	var files []string
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != dir && w.ignore[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	if len(files) == 0 {
		return false
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	for _, path := range files {
		w.pending[path] = types.ChangeAdded
	}
	w.logger.Debug().Str("path", dir).Int("files", len(files)).Msg("New directory scanned")
	return true
}

func (w *Watcher) flush() []types.FileChange {
	w.mu.Lock()
	defer w.mu.Unlock()

	batch := make([]types.FileChange, 0, len(w.pending))
	for path, kind := range w.pending {
		batch = append(batch, types.FileChange{Path: path, Kind: kind})
	}
	w.pending = make(map[string]types.ChangeKind)

	sort.Slice(batch, func(i, j int) bool { return batch[i].Path < batch[j].Path })
	return batch
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && w.ignore[d.Name()] {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return errors.Wrapf(err, errors.ErrWatch, "failed to watch %s", path)
		}
		return nil
	})
}
