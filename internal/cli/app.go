package cli

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/vuegen/pkg/config"
	"github.com/arthur-debert/vuegen/pkg/extra"
	"github.com/arthur-debert/vuegen/pkg/filesystem"
	"github.com/arthur-debert/vuegen/pkg/paths"
	"github.com/arthur-debert/vuegen/pkg/pipeline"
	"github.com/arthur-debert/vuegen/pkg/render"
	"github.com/arthur-debert/vuegen/pkg/targets"
	"github.com/arthur-debert/vuegen/pkg/templates"
	"github.com/arthur-debert/vuegen/pkg/types"
)

// globalOptions are the persistent flags shared by every command
type globalOptions struct {
	verbosity  int
	workspace  string
	configFile string
}

// app is the set of engine components built from one configuration
type app struct {
	cfg      *config.Config
	fs       types.FS
	roots    *paths.ConfigRoots
	resolver *paths.Resolver
	registry *templates.Registry
	extra    *extra.Loader
	targets  *targets.Resolver
	renderer *render.Renderer
}

// loadConfig reads the layered configuration for the selected workspace
func loadConfig(opts *globalOptions) (*config.Config, error) {
	workspace := opts.workspace
	if workspace == "" {
		root, err := paths.FindWorkspaceRoot()
		if err != nil {
			return nil, err
		}
		workspace = root
	}
	workspace, err := paths.Normalize(workspace)
	if err != nil {
		return nil, err
	}

	overrides := map[string]interface{}{}
	if opts.workspace != "" {
		overrides["roots.workspace"] = workspace
	}

	cfg, err := config.Load(config.LoadOptions{
		Workspace: workspace,
		File:      opts.configFile,
		Overrides: overrides,
	})
	if err != nil {
		return nil, err
	}
	if cfg.Roots.Workspace == "" {
		cfg.Roots.Workspace = workspace
	}
	return cfg, nil
}

// newApp wires the engine components on fs
func newApp(cfg *config.Config, fs types.FS) (*app, error) {
	roots, err := paths.NewConfigRoots(
		cfg.Roots.Engine,
		cfg.Roots.Plugins,
		cfg.Roots.UserPlugins,
		cfg.Roots.Workspace,
		cfg.Roots.InstalledPlugins,
	)
	if err != nil {
		return nil, err
	}

	policy, err := targets.ParseMissingPolicy(cfg.Templates.MissingPlaceholder)
	if err != nil {
		return nil, err
	}

	renderer, err := render.NewRenderer(fs, render.Options{
		CacheSize:       cfg.Pipeline.CacheSize,
		SerializeWrites: cfg.Pipeline.SerializeWrites,
		DefaultEncoding: cfg.Templates.DefaultEncoding,
	})
	if err != nil {
		return nil, err
	}

	resolver := paths.NewResolver(roots)
	return &app{
		cfg:      cfg,
		fs:       fs,
		roots:    roots,
		resolver: resolver,
		registry: templates.NewRegistry(fs, resolver, templates.Options{
			PreferencesDir: cfg.Templates.PreferencesDir,
			ManifestName:   cfg.Templates.Manifest,
		}),
		extra: extra.NewLoader(fs, resolver, extra.Options{
			SortMatches: cfg.Templates.SortExtraMatches,
			Ignore:      cfg.Templates.Ignore,
		}),
		targets:  targets.NewResolver(resolver, policy),
		renderer: renderer,
	}, nil
}

// setup loads configuration and wires the components on the OS filesystem
func setup(opts *globalOptions) (*app, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}
	return newApp(cfg, filesystem.NewOS())
}

// pipeline builds a change pipeline over the app components
func (a *app) pipeline(gates ...pipeline.Gate) *pipeline.Pipeline {
	return pipeline.New(a.fs, a.registry, a.extra, a.targets, a.renderer, pipeline.Options{
		Concurrency: a.cfg.Pipeline.Concurrency,
		Gates:       gates,
	})
}

// watchRoots returns every directory a change can come from: each manifest
// root plus the plugin libraries, dropping duplicates and nested directories
func (a *app) watchRoots() []string {
	var candidates []string
	for _, c := range append(a.resolver.ManifestRoots(), a.resolver.Resolve(types.RootPlugins, "")...) {
		if c != "" {
			candidates = append(candidates, filepath.Clean(c))
		}
	}

	var roots []string
	for i, c := range candidates {
		keep := true
		for j, other := range candidates {
			if i == j {
				continue
			}
			if (c == other && j < i) || (c != other && isWithin(c, other)) {
				keep = false
				break
			}
		}
		if keep {
			roots = append(roots, c)
		}
	}
	return roots
}

func isWithin(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
