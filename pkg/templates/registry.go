package templates

import (
	"context"
	"encoding/json"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/vuegen/pkg/errors"
	"github.com/arthur-debert/vuegen/pkg/logging"
	"github.com/arthur-debert/vuegen/pkg/paths"
	"github.com/arthur-debert/vuegen/pkg/registry"
	"github.com/arthur-debert/vuegen/pkg/types"

	// trigger factories register themselves
	_ "github.com/arthur-debert/vuegen/pkg/triggers"
)

const (
	DefaultPreferencesDir = ".vuengine"
	DefaultManifestName   = "templates.json"
)

// Options configures where manifests are looked up under each root
type Options struct {
	PreferencesDir string
	ManifestName   string
}

// Entry is a loaded definition together with its compiled trigger
type Entry struct {
	Definition types.TemplateDefinition
	Trigger    types.Trigger
}

// Registry holds the definitions found by the last Load
type Registry struct {
	fs       types.FS
	resolver *paths.Resolver
	opts     Options
	logger   zerolog.Logger

	mu        sync.RWMutex
	entries   []Entry
	manifests map[string]bool
}

// NewRegistry creates an empty registry. Call Load to populate it.
func NewRegistry(fs types.FS, resolver *paths.Resolver, opts Options) *Registry {
	if opts.PreferencesDir == "" {
		opts.PreferencesDir = DefaultPreferencesDir
	}
	if opts.ManifestName == "" {
		opts.ManifestName = DefaultManifestName
	}
	return &Registry{
		fs:        fs,
		resolver:  resolver,
		opts:      opts,
		logger:    logging.GetLogger("templates.registry"),
		manifests: make(map[string]bool),
	}
}

// ManifestPath returns where the manifest of root lives
func (r *Registry) ManifestPath(root string) string {
	return filepath.Join(root, r.opts.PreferencesDir, r.opts.ManifestName)
}

// Load rescans every manifest root and replaces the registry content. It
// only fails when ctx is cancelled; manifest problems are logged and the
// offending root or definition is skipped.
func (r *Registry) Load(ctx context.Context) ([]types.TemplateDefinition, error) {
	done := logging.LogOperationStart(r.logger, "load template definitions")

	var entries []Entry
	manifests := make(map[string]bool)

	for _, root := range r.resolver.ManifestRoots() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if root == "" {
			continue
		}

		path := r.ManifestPath(root)
		manifests[filepath.Clean(path)] = true

		loaded, err := r.loadManifest(root, path)
		if err != nil {
			r.logger.Error().
				Err(err).
				Str("code", string(errors.GetErrorCode(err))).
				Str("manifest", path).
				Msg("Skipping manifest")
			continue
		}
		entries = append(entries, loaded...)
	}

	r.mu.Lock()
	r.entries = entries
	r.manifests = manifests
	r.mu.Unlock()

	done()
	r.logger.Info().Int("definitions", len(entries)).Msg("Template definitions loaded")
	return definitionsOf(entries), nil
}

// Definitions returns a snapshot of the loaded definitions in scan order
func (r *Registry) Definitions() []types.TemplateDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return definitionsOf(r.entries)
}

// Entries returns a snapshot of the loaded definitions with their triggers
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Entry(nil), r.entries...)
}

// IsManifest reports whether path is the manifest location of a scanned
// root, whether or not a manifest existed there
func (r *Registry) IsManifest(path string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.manifests[filepath.Clean(path)]
}

func (r *Registry) loadManifest(root, path string) ([]Entry, error) {
	if !r.fs.Exists(path) {
		r.logger.Trace().Str("manifest", path).Msg("No manifest under root")
		return nil, nil
	}

	data, err := r.fs.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestRead, "failed to read manifest %s", path).
			WithDetail("path", path)
	}

	var defs []types.TemplateDefinition
	if err := json.Unmarshal(data, &defs); err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestParse, "malformed manifest %s", path).
			WithDetail("path", path)
	}

	entries := make([]Entry, 0, len(defs))
	for i, def := range defs {
		def.Root = root

		trigger, err := validate(def)
		if err != nil {
			r.logger.Warn().
				Err(err).
				Str("manifest", path).
				Int("index", i).
				Msg("Skipping invalid template definition")
			continue
		}

		entries = append(entries, Entry{Definition: def, Trigger: trigger})
	}

	r.logger.Debug().
		Str("root", root).
		Int("definitions", len(entries)).
		Msg("Loaded manifest")

	return entries, nil
}

func validate(def types.TemplateDefinition) (types.Trigger, error) {
	if len(def.Targets) == 0 {
		return nil, errors.New(errors.ErrManifestValid, "definition has no targets")
	}
	for i, target := range def.Targets {
		if target.Template == "" {
			return nil, errors.Newf(errors.ErrManifestValid, "target %d has no template", i)
		}
	}
	if def.Key != "" && !types.IsIdentifier(def.Key) {
		return nil, errors.Newf(errors.ErrManifestValid, "key %q is not an identifier", def.Key).
			WithDetail("key", def.Key)
	}
	for i, extra := range def.Extra {
		if extra.Key == "" {
			return nil, errors.Newf(errors.ErrManifestValid, "extra source %d has no key", i)
		}
		if !types.IsIdentifier(extra.Key) {
			return nil, errors.Newf(errors.ErrManifestValid, "extra source %d key %q is not an identifier", i, extra.Key).
				WithDetail("key", extra.Key)
		}
	}

	trigger, err := registry.NewTrigger(def.Root, def.Source)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrManifestValid, "invalid source")
	}
	return trigger, nil
}

func definitionsOf(entries []Entry) []types.TemplateDefinition {
	defs := make([]types.TemplateDefinition, len(entries))
	for i, e := range entries {
		defs[i] = e.Definition
	}
	return defs
}
