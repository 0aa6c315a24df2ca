package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/arthur-debert/vuegen/pkg/filesystem"
	"github.com/arthur-debert/vuegen/pkg/pipeline"
	"github.com/arthur-debert/vuegen/pkg/types"
	"github.com/arthur-debert/vuegen/pkg/ui"
	"github.com/arthur-debert/vuegen/pkg/ui/view"
)

// Readiness gate names
const (
	GatePreferences = "preferences ready"
	GatePlugins     = "plugins ready"
)

func newWatchCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "watch",
		Short:   MsgWatchShort,
		Long:    MsgWatchLong,
		Example: MsgWatchExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runWatch(ctx, cmd, opts)
		},
	}
}

func runWatch(ctx context.Context, cmd *cobra.Command, opts *globalOptions) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return fmt.Errorf(MsgErrLoadConfig, err)
	}
	preferences := pipeline.Ready(GatePreferences)

	a, err := newApp(cfg, filesystem.NewOS())
	if err != nil {
		return err
	}

	renderer, err := ui.NewRenderer(ui.FormatAuto, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	plugins := pipeline.NewSignal(GatePlugins)
	go checkPlugins(a, plugins)

	roots := a.watchRoots()
	watcher, err := filesystem.NewWatcher(roots, filesystem.WatcherOptions{
		Debounce: cfg.Pipeline.Debounce,
		MaxWait:  cfg.Pipeline.MaxWait,
		Ignore:   cfg.Templates.Ignore,
	})
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	p := pipeline.New(a.fs, a.registry, a.extra, a.targets, a.renderer, pipeline.Options{
		Concurrency: cfg.Pipeline.Concurrency,
		Gates:       []pipeline.Gate{preferences, plugins},
		OnReport: func(report *pipeline.BatchReport) {
			if report.Matches == 0 && !report.Reloaded && len(report.Invalidated) == 0 {
				return
			}
			if err := renderer.RenderReport(view.FromReport(report)); err != nil {
				log.Warn().Err(err).Msg("Failed to render batch report")
			}
		},
	})

	_ = renderer.RenderMessage(fmt.Sprintf(MsgWatching, len(roots)))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return watcher.Run(ctx) })
	g.Go(func() error { return p.Run(ctx, watcher.Changes()) })

	if err := g.Wait(); err != nil && !stderrors.Is(err, context.Canceled) {
		return fmt.Errorf(MsgErrWatch, err)
	}
	return nil
}

// checkPlugins opens the plugins gate once every active plugin directory has
// been looked up. Missing plugins are reported, not fatal.
func checkPlugins(a *app, gate *pipeline.Signal) {
	for _, dir := range a.resolver.Resolve(types.RootActivePlugins, "") {
		if !a.fs.Exists(dir) {
			log.Warn().Str("dir", dir).Msg("Active plugin directory not found")
		}
	}
	gate.Open()
}
