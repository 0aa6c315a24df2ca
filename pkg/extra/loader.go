package extra

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar"
	"github.com/ohler55/ojg/oj"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/arthur-debert/vuegen/pkg/errors"
	"github.com/arthur-debert/vuegen/pkg/logging"
	"github.com/arthur-debert/vuegen/pkg/paths"
	"github.com/arthur-debert/vuegen/pkg/types"
)

// Options configures a Loader
type Options struct {
	// SortMatches orders filetype matches by path within each root
	SortMatches bool

	// Ignore lists directory names skipped by filetype scans
	Ignore []string
}

// Loader resolves extra sources into context values
type Loader struct {
	fs       types.FS
	resolver *paths.Resolver
	ignore   map[string]bool
	sort     bool
	logger   zerolog.Logger
}

// NewLoader creates a loader reading through fs
func NewLoader(fs types.FS, resolver *paths.Resolver, opts Options) *Loader {
	ignore := make(map[string]bool, len(opts.Ignore))
	for _, name := range opts.Ignore {
		ignore[name] = true
	}
	return &Loader{
		fs:       fs,
		resolver: resolver,
		ignore:   ignore,
		sort:     opts.SortMatches,
		logger:   logging.GetLogger("extra"),
	}
}

// Load resolves every source and returns the values keyed by source key.
// Sources are loaded concurrently and merged in declaration order, so a later
// source with the same key wins. A uri source that finds no file under any
// root leaves its key unset; a filetype source always sets a list.
func (l *Loader) Load(ctx context.Context, triggeringFile string, sources []types.ExtraSource) map[string]interface{} {
	values := make([]interface{}, len(sources))
	found := make([]bool, len(sources))

	g, ctx := errgroup.WithContext(ctx)
	for i, source := range sources {
		i, source := i, source
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			values[i], found[i] = l.loadSource(triggeringFile, source)
			return nil
		})
	}
	_ = g.Wait()

	result := make(map[string]interface{}, len(sources))
	for i, source := range sources {
		if found[i] {
			result[source.Key] = values[i]
		}
	}
	return result
}

func (l *Loader) loadSource(triggeringFile string, source types.ExtraSource) (interface{}, bool) {
	roots := l.resolver.Resolve(source.Root, triggeringFile)
	if len(roots) == 0 {
		l.logger.Debug().
			Str("key", source.Key).
			Str("root", string(source.Root)).
			Msg("Extra source resolves to no roots")
	}

	switch source.Type {
	case types.SourceURI:
		return l.loadURI(roots, source)
	case types.SourceFileType:
		return l.loadFileType(roots, source), true
	default:
		l.logger.Warn().
			Str("key", source.Key).
			Str("type", string(source.Type)).
			Msg("Skipping extra source with unknown type")
		return nil, false
	}
}

// loadURI returns the content of root/value for the last root that has it
func (l *Loader) loadURI(roots []string, source types.ExtraSource) (interface{}, bool) {
	var value interface{}
	found := false

	for _, root := range roots {
		path := filepath.Join(root, filepath.FromSlash(source.Value))
		if !l.fs.Exists(path) {
			continue
		}
		parsed, err := l.parseFile(path)
		if err != nil {
			l.logSkip(err, source, path)
			continue
		}
		value = parsed
		found = true
	}

	return value, found
}

// loadFileType returns the content of every file ending in value under every
// root, root by root
func (l *Loader) loadFileType(roots []string, source types.ExtraSource) []interface{} {
	items := []interface{}{}
	pattern := "**/*" + filepath.ToSlash(source.Value)

	for _, root := range roots {
		for _, path := range l.scan(root, pattern) {
			parsed, err := l.parseFile(path)
			if err != nil {
				l.logSkip(err, source, path)
				continue
			}
			items = append(items, parsed)
		}
	}

	return items
}

// scan returns the files under root whose root-relative path matches pattern
func (l *Loader) scan(root, pattern string) []string {
	var matches []string

	err := l.fs.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			// missing roots and unreadable entries are skipped
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() {
			if path != root && l.ignore[info.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		ok, err := doublestar.Match(pattern, filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		if ok {
			matches = append(matches, path)
		}
		return nil
	})
	if err != nil {
		l.logger.Warn().Err(err).Str("root", root).Str("pattern", pattern).Msg("Scan failed")
	}

	if l.sort {
		sort.Strings(matches)
	}
	return matches
}

func (l *Loader) parseFile(path string) (interface{}, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrExtraLoad, "failed to read %s", path)
	}
	parsed, err := oj.Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrExtraLoad, "malformed JSON in %s", path)
	}
	return parsed, nil
}

func (l *Loader) logSkip(err error, source types.ExtraSource, path string) {
	l.logger.Warn().
		Err(err).
		Str("code", string(errors.GetErrorCode(err))).
		Str("key", source.Key).
		Str("path", path).
		Msg("Skipping extra data file")
}
