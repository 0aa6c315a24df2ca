package render

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/flosch/pongo2/v6"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/vuegen/pkg/errors"
	"github.com/arthur-debert/vuegen/pkg/logging"
	"github.com/arthur-debert/vuegen/pkg/types"
)

// DefaultCacheSize is the number of compiled templates kept when Options
// does not say otherwise
const DefaultCacheSize = 128

const inlinePrefix = "inline:"

// Options configures a Renderer
type Options struct {
	// CacheSize bounds the compiled template cache
	CacheSize int

	// SerializeWrites orders concurrent writes to the same target path
	SerializeWrites bool

	// DefaultEncoding applies when a render names no encoding
	DefaultEncoding string
}

// Renderer renders templates to files through a types.FS
type Renderer struct {
	fs              types.FS
	set             *pongo2.TemplateSet
	compileMu       sync.Mutex
	cache           *lru.Cache[string, cachedTemplate]
	locks           *pathLocks
	defaultEncoding string
	logger          zerolog.Logger
}

type cachedTemplate struct {
	tpl    *pongo2.Template
	source string
}

// NewRenderer creates a renderer
func NewRenderer(fs types.FS, opts Options) (*Renderer, error) {
	size := opts.CacheSize
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, cachedTemplate](size)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to create template cache")
	}

	defaultEncoding := opts.DefaultEncoding
	if defaultEncoding == "" {
		defaultEncoding = DefaultEncoding
	}
	if !ValidEncoding(defaultEncoding) {
		return nil, errors.Newf(errors.ErrEncodingUnknown, "unknown default encoding %q", defaultEncoding).
			WithDetail("encoding", defaultEncoding)
	}

	r := &Renderer{
		fs:              fs,
		set:             pongo2.NewSet("vuegen", &fsLoader{fs: fs}),
		cache:           cache,
		defaultEncoding: defaultEncoding,
		logger:          logging.GetLogger("render"),
	}
	if opts.SerializeWrites {
		r.locks = newPathLocks()
	}
	return r, nil
}

// Render renders the template file at templatePath with data and writes the
// result to targetPath in encoding, creating missing directories
func (r *Renderer) Render(ctx context.Context, targetPath, templatePath string, data map[string]interface{}, encoding string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tpl, err := r.fileTemplate(templatePath)
	if err != nil {
		return err
	}

	content, err := r.execute(tpl, templatePath, data, encoding)
	if err != nil {
		return err
	}

	return r.write(targetPath, content, templatePath)
}

// RenderTemplateToFile renders an inline template source and writes it to
// targetPath. The compiled template is cached under templateName. When
// overwriteAlways is false an existing target is left untouched.
func (r *Renderer) RenderTemplateToFile(ctx context.Context, templateName, targetPath, templateSource string, data map[string]interface{}, encoding string, overwriteAlways bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if r.locks != nil {
		unlock := r.locks.lock(targetPath)
		defer unlock()
	}

	if !overwriteAlways && r.fs.Exists(targetPath) {
		r.logger.Debug().
			Str("template", templateName).
			Str("target", targetPath).
			Msg("Target exists, not overwriting")
		return nil
	}

	tpl, err := r.inlineTemplate(templateName, templateSource)
	if err != nil {
		return err
	}

	content, err := r.execute(tpl, templateName, data, encoding)
	if err != nil {
		return err
	}

	return r.writeFile(targetPath, content, templateName)
}

// Invalidate drops the compiled template for a template file path
func (r *Renderer) Invalidate(templatePath string) bool {
	return r.cache.Remove(filepath.Clean(templatePath))
}

// IsCached reports whether the template file at path is compiled and cached
func (r *Renderer) IsCached(templatePath string) bool {
	return r.cache.Contains(filepath.Clean(templatePath))
}

// Purge drops every compiled template
func (r *Renderer) Purge() {
	r.cache.Purge()
}

func (r *Renderer) fileTemplate(templatePath string) (*pongo2.Template, error) {
	key := filepath.Clean(templatePath)
	if cached, ok := r.cache.Get(key); ok {
		return cached.tpl, nil
	}

	if !r.fs.Exists(key) {
		return nil, errors.Newf(errors.ErrTemplateNotFound, "template %s not found", key).
			WithDetail("template", key)
	}

	r.compileMu.Lock()
	tpl, err := r.set.FromFile(key)
	r.compileMu.Unlock()
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrTemplateParse, "failed to parse template %s", key).
			WithDetail("template", key)
	}

	r.cache.Add(key, cachedTemplate{tpl: tpl})
	r.logger.Trace().Str("template", key).Msg("Compiled template")
	return tpl, nil
}

func (r *Renderer) inlineTemplate(name, source string) (*pongo2.Template, error) {
	key := inlinePrefix + name
	if cached, ok := r.cache.Get(key); ok && cached.source == source {
		return cached.tpl, nil
	}

	r.compileMu.Lock()
	tpl, err := r.set.FromString(source)
	r.compileMu.Unlock()
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrTemplateParse, "failed to parse template %s", name).
			WithDetail("template", name)
	}

	r.cache.Add(key, cachedTemplate{tpl: tpl, source: source})
	return tpl, nil
}

func (r *Renderer) execute(tpl *pongo2.Template, name string, data map[string]interface{}, encoding string) ([]byte, error) {
	out, err := tpl.ExecuteBytes(pongo2.Context(data))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrTemplateExecute, "failed to render template %s", name).
			WithDetail("template", name)
	}

	if encoding == "" {
		encoding = r.defaultEncoding
	}
	return Encode(out, encoding)
}

func (r *Renderer) write(targetPath string, content []byte, templateName string) error {
	if r.locks != nil {
		unlock := r.locks.lock(targetPath)
		defer unlock()
	}
	return r.writeFile(targetPath, content, templateName)
}

func (r *Renderer) writeFile(targetPath string, content []byte, templateName string) error {
	if err := r.fs.WriteFile(targetPath, content, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", targetPath).
			WithDetail("target", targetPath)
	}

	r.logger.Info().
		Str("template", templateName).
		Str("target", targetPath).
		Int("bytes", len(content)).
		Msg("Generated file")
	return nil
}
