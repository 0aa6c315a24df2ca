package pipeline

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/ohler55/ojg/oj"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/arthur-debert/vuegen/pkg/errors"
	"github.com/arthur-debert/vuegen/pkg/logging"
	"github.com/arthur-debert/vuegen/pkg/templates"
	"github.com/arthur-debert/vuegen/pkg/types"
)

// DefaultConcurrency bounds in-flight work per batch when Options does not
const DefaultConcurrency = 8

// Registry is the template definition source the pipeline matches against
type Registry interface {
	Load(ctx context.Context) ([]types.TemplateDefinition, error)
	Entries() []templates.Entry
	IsManifest(path string) bool
}

// ExtraLoader resolves a definition's extra sources
type ExtraLoader interface {
	Load(ctx context.Context, triggeringFile string, sources []types.ExtraSource) map[string]interface{}
}

// TargetResolver turns a target into output paths
type TargetResolver interface {
	Resolve(target types.TemplateTarget, dataKey, triggeringFile string, context map[string]interface{}) ([]string, error)
}

// Renderer renders a template file to a target path
type Renderer interface {
	Render(ctx context.Context, targetPath, templatePath string, data map[string]interface{}, encoding string) error
	Invalidate(templatePath string) bool
}

// Options configures a Pipeline
type Options struct {
	// Concurrency bounds parallel matches and target writes per batch
	Concurrency int

	// Gates are waited on, in order, before the first registry load
	Gates []Gate

	// OnReport, when set, receives the report of every batch Run processes
	OnReport func(*BatchReport)
}

// Pipeline drives generation from file changes
type Pipeline struct {
	fs       types.FS
	registry Registry
	extra    ExtraLoader
	targets  TargetResolver
	renderer Renderer
	opts     Options
	state    atomic.Int32
	logger   zerolog.Logger
}

// New creates an idle pipeline
func New(fs types.FS, registry Registry, extra ExtraLoader, targets TargetResolver, renderer Renderer, opts Options) *Pipeline {
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	return &Pipeline{
		fs:       fs,
		registry: registry,
		extra:    extra,
		targets:  targets,
		renderer: renderer,
		opts:     opts,
		logger:   logging.GetLogger("pipeline"),
	}
}

// State returns the current lifecycle state
func (p *Pipeline) State() State {
	return State(p.state.Load())
}

// Initialize waits on every gate and loads the registry. A gate failure is
// returned as a GATE_FAILED error and leaves the pipeline initializing.
func (p *Pipeline) Initialize(ctx context.Context) error {
	p.setState(StateInitializing)

	for _, gate := range p.opts.Gates {
		p.logger.Debug().Str("gate", gate.Name()).Msg("Waiting for gate")
		if err := gate.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return errors.Wrapf(err, errors.ErrGateFailed, "gate %q failed", gate.Name()).
				WithDetail("gate", gate.Name())
		}
	}

	defs, err := p.registry.Load(ctx)
	if err != nil {
		return err
	}

	p.setState(StateWatching)
	p.logger.Info().Int("definitions", len(defs)).Msg("Pipeline watching")
	return nil
}

// Run initializes the pipeline and processes batches from changes until ctx
// ends or changes is closed
func (p *Pipeline) Run(ctx context.Context, changes <-chan []types.FileChange) error {
	if err := p.Initialize(ctx); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case batch, ok := <-changes:
			if !ok {
				return nil
			}
			start := time.Now()
			report := p.ProcessBatch(ctx, batch)
			logging.LogBatch(p.logger, logging.BatchSummary{
				Changes:  report.Changes,
				Matches:  report.Matches,
				Written:  len(report.Written),
				Failures: len(report.Failures),
				Duration: time.Since(start),
			})
			if p.opts.OnReport != nil {
				p.opts.OnReport(report)
			}
		}
	}
}

// renderJob is one template rendered to one output path
type renderJob struct {
	change   string
	target   string
	template string
	encoding string
	data     map[string]interface{}
}

// ProcessBatch handles one batch of changes and reports what happened
func (p *Pipeline) ProcessBatch(ctx context.Context, batch []types.FileChange) *BatchReport {
	report := &BatchReport{Changes: len(batch)}
	defer report.finish()

	p.refresh(ctx, batch, report)

	type match struct {
		change string
		entry  templates.Entry
	}
	var matches []match
	entries := p.registry.Entries()
	for _, change := range batch {
		if !change.Kind.Generates() {
			p.logger.Trace().Str("path", change.Path).Stringer("kind", change.Kind).Msg("Change does not generate")
			continue
		}
		for _, entry := range entries {
			if entry.Trigger.Match(change.Path) {
				matches = append(matches, match{change: change.Path, entry: entry})
			}
		}
	}
	report.Matches = len(matches)
	if len(matches) == 0 {
		return report
	}

	// Expand matches into render jobs
	jobLists := make([][]renderJob, len(matches))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.Concurrency)
	for i, m := range matches {
		i, m := i, m
		g.Go(func() error {
			jobLists[i] = p.plan(gctx, m.change, m.entry.Definition, report)
			return nil
		})
	}
	_ = g.Wait()

	// Render every job
	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(p.opts.Concurrency)
	for _, jobs := range jobLists {
		for _, job := range jobs {
			job := job
			g.Go(func() error {
				p.render(gctx, job, report)
				return nil
			})
		}
	}
	_ = g.Wait()

	return report
}

// refresh rescans manifests and drops cached templates touched by the batch
func (p *Pipeline) refresh(ctx context.Context, batch []types.FileChange, report *BatchReport) {
	for _, change := range batch {
		if p.renderer.Invalidate(change.Path) {
			report.Invalidated = append(report.Invalidated, change.Path)
			p.logger.Debug().Str("template", change.Path).Msg("Template changed, cache entry dropped")
		}
		if !report.Reloaded && p.registry.IsManifest(change.Path) {
			report.Reloaded = true
		}
	}

	if report.Reloaded {
		p.logger.Info().Msg("Manifest changed, reloading template definitions")
		if _, err := p.registry.Load(ctx); err != nil {
			p.logger.Error().Err(err).Msg("Reloading template definitions failed")
		}
	}
}

// plan parses the changed file, builds the render context and resolves every
// target of def
func (p *Pipeline) plan(ctx context.Context, change string, def types.TemplateDefinition, report *BatchReport) []renderJob {
	logger := p.logger.With().
		Str("change", change).
		Str("source", def.Source.Value).
		Str("root", def.Root).
		Logger()

	parsed, err := p.parseSource(change)
	if err != nil {
		p.fail(logger, report, Failure{Change: change, Err: err})
		return nil
	}

	dataKey := def.DataKey()
	data := map[string]interface{}{dataKey: parsed}
	if len(def.Extra) > 0 {
		for key, value := range p.extra.Load(ctx, change, def.Extra) {
			data[key] = value
		}
	}

	var jobs []renderJob
	for _, target := range def.Targets {
		templatePath := def.TemplatePath(target)

		paths, err := p.targets.Resolve(target, dataKey, change, data)
		if err != nil {
			p.fail(logger, report, Failure{Change: change, Template: templatePath, Err: err})
			continue
		}

		for _, path := range paths {
			jobs = append(jobs, renderJob{
				change:   change,
				target:   path,
				template: templatePath,
				encoding: target.Encoding,
				data:     data,
			})
		}
	}

	logger.Debug().Int("targets", len(jobs)).Msg("Definition matched")
	return jobs
}

func (p *Pipeline) render(ctx context.Context, job renderJob, report *BatchReport) {
	if err := p.renderer.Render(ctx, job.target, job.template, job.data, job.encoding); err != nil {
		p.fail(p.logger, report, Failure{
			Change:   job.change,
			Target:   job.target,
			Template: job.template,
			Err:      err,
		})
		return
	}
	report.addWritten(job.target)
}

func (p *Pipeline) parseSource(path string) (interface{}, error) {
	data, err := p.fs.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrSourceParse, "failed to read %s", path).WithDetail("path", path)
	}
	parsed, err := oj.Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrSourceParse, "malformed JSON in %s", path).WithDetail("path", path)
	}
	return parsed, nil
}

func (p *Pipeline) fail(logger zerolog.Logger, report *BatchReport, f Failure) {
	report.addFailure(f)
	logger.Error().
		Err(f.Err).
		Str("code", string(errors.GetErrorCode(f.Err))).
		Str("change", f.Change).
		Str("target", f.Target).
		Str("template", f.Template).
		Msg("Generation failed")
}

func (p *Pipeline) setState(s State) {
	p.state.Store(int32(s))
}
