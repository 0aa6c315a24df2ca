package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/vuegen/pkg/types"
)

func startWatcher(t *testing.T, roots []string, opts WatcherOptions) *Watcher {
	t.Helper()
	w, err := NewWatcher(roots, opts)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = w.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
		_ = w.Close()
	})
	return w
}

// waitFor drains batches until one contains path or the timeout expires
func waitFor(t *testing.T, w *Watcher, path string) types.FileChange {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case batch := <-w.Changes():
			for _, c := range batch {
				if c.Path == path {
					return c
				}
			}
		case <-timeout:
			t.Fatalf("no change reported for %s", path)
		}
	}
}

func TestWatcher_ReportsCreatedFile(t *testing.T) {
	dir := t.TempDir()
	w := startWatcher(t, []string{dir}, WatcherOptions{Debounce: 20 * time.Millisecond})

	path := filepath.Join(dir, "Dog.sound")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0644))

	change := waitFor(t, w, path)
	assert.Equal(t, types.ChangeAdded, change.Kind)
}

func TestWatcher_WatchesNewSubdirectories(t *testing.T) {
	dir := t.TempDir()
	w := startWatcher(t, []string{dir}, WatcherOptions{Debounce: 20 * time.Millisecond})

	sub := filepath.Join(dir, "assets")
	require.NoError(t, os.Mkdir(sub, 0755))
	// give the watcher a moment to register the new directory
	time.Sleep(100 * time.Millisecond)

	path := filepath.Join(sub, "Cat.sound")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0644))

	change := waitFor(t, w, path)
	assert.True(t, change.Kind.Generates())
}

func TestWatcher_ReportsDeletion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Old.sound")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0644))

	w := startWatcher(t, []string{dir}, WatcherOptions{Debounce: 20 * time.Millisecond})
	require.NoError(t, os.Remove(path))

	change := waitFor(t, w, path)
	assert.Equal(t, types.ChangeDeleted, change.Kind)
}

func TestWatcher_SkipsMissingRoots(t *testing.T) {
	w, err := NewWatcher([]string{filepath.Join(t.TempDir(), "missing")}, WatcherOptions{})
	require.NoError(t, err)
	assert.NoError(t, w.Close())
}

func TestWatcher_FlushSortsAndResets(t *testing.T) {
	w, err := NewWatcher(nil, WatcherOptions{})
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	w.pending["/a"] = types.ChangeAdded
	w.pending["/b"] = types.ChangeUpdated

	batch := w.flush()
	require.Len(t, batch, 2)
	assert.Equal(t, "/a", batch[0].Path)
	assert.Equal(t, types.ChangeAdded, batch[0].Kind)
	assert.Empty(t, w.flush())
}

func TestWatcher_ReportsFilesInMovedInDirectory(t *testing.T) {
	dir := t.TempDir()
	w := startWatcher(t, []string{dir}, WatcherOptions{Debounce: 20 * time.Millisecond})

	// populate outside the watched root, then move the whole tree in so the
	// files exist before any watch on them can
	staging := filepath.Join(t.TempDir(), "sounds")
	require.NoError(t, os.MkdirAll(filepath.Join(staging, "sfx"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(staging, "Dog.sound"), []byte(`{}`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(staging, "sfx", "Bark.sound"), []byte(`{}`), 0644))

	moved := filepath.Join(dir, "sounds")
	require.NoError(t, os.Rename(staging, moved))

	change := waitFor(t, w, filepath.Join(moved, "sfx", "Bark.sound"))
	assert.Equal(t, types.ChangeAdded, change.Kind)
}

func TestWatcher_RecordNewTree(t *testing.T) {
	w, err := NewWatcher(nil, WatcherOptions{Ignore: []string{".git"}})
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "images"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".git", "HEAD"), []byte("ref"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "images", "Logo.image.json"), []byte(`{}`), 0644))

	assert.True(t, w.recordNewTree(dir))

	batch := w.flush()
	require.Len(t, batch, 1)
	assert.Equal(t, filepath.Join(dir, "images", "Logo.image.json"), batch[0].Path)
	assert.Equal(t, types.ChangeAdded, batch[0].Kind)

	empty := t.TempDir()
	assert.False(t, w.recordNewTree(empty))
}

func TestWatcher_MaxWaitFlushesSteadyStream(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Busy.sound")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0644))

	w := startWatcher(t, []string{dir}, WatcherOptions{
		Debounce: 200 * time.Millisecond,
		MaxWait:  300 * time.Millisecond,
	})

	// writes every 50ms never leave a quiet debounce window
	stop := make(chan struct{})
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		ticker := time.NewTicker(50 * time.Millisecond)
		defer ticker.Stop()
		for i := 0; ; i++ {
			select {
			case <-stop:
				return
			case <-ticker.C:
				_ = os.WriteFile(path, []byte(fmt.Sprintf(`{"n": %d}`, i)), 0644)
			}
		}
	}()
	defer func() {
		close(stop)
		<-writerDone
	}()

	select {
	case batch := <-w.Changes():
		require.NotEmpty(t, batch)
		assert.Equal(t, path, batch[0].Path)
	case <-time.After(2 * time.Second):
		t.Fatal("batch was held back while events kept arriving")
	}
}

func TestNewWatcher_MaxWaitDefaults(t *testing.T) {
	tests := []struct {
		name string
		opts WatcherOptions
		want time.Duration
	}{
		{"unset", WatcherOptions{}, DefaultMaxWait},
		{"explicit", WatcherOptions{MaxWait: 500 * time.Millisecond}, 500 * time.Millisecond},
		{"raised to debounce", WatcherOptions{Debounce: 2 * time.Second, MaxWait: time.Second}, 2 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := NewWatcher(nil, tt.opts)
			require.NoError(t, err)
			defer func() { _ = w.Close() }()
			assert.Equal(t, tt.want, w.maxWait)
		})
	}
}
