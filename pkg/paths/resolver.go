package paths

import (
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/vuegen/pkg/logging"
	"github.com/arthur-debert/vuegen/pkg/types"
)

// Resolver maps root kinds to ordered lists of absolute paths
type Resolver struct {
	roots  types.RootsProvider
	logger zerolog.Logger
}

// NewResolver creates a resolver over the given roots provider
func NewResolver(roots types.RootsProvider) *Resolver {
	return &Resolver{
		roots:  roots,
		logger: logging.GetLogger("paths.resolver"),
	}
}

// Resolve returns the locations for a root kind. contextFile is only used by
// the relative kind. Unknown kinds, and relative without a context file,
// resolve to no locations; callers treat that as nothing to do.
func (r *Resolver) Resolve(kind types.RootKind, contextFile string) []string {
	switch kind {
	case types.RootEngine:
		return []string{r.roots.EngineCorePath()}

	case types.RootPlugins:
		return []string{r.roots.EnginePluginsPath(), r.roots.UserPluginsPath()}

	case types.RootActivePlugins:
		return r.activePlugins()

	case types.RootWorkspace:
		return []string{r.roots.WorkspaceRoot()}

	case types.RootRelative:
		if contextFile == "" {
			return nil
		}
		return []string{filepath.Dir(contextFile)}

	default:
		r.logger.Debug().Str("kind", string(kind)).Msg("Unknown root kind resolves to nothing")
		return nil
	}
}

// ManifestRoots returns the roots scanned for manifests: engine, then each
// active plugin, then the workspace. The plain plugin libraries are not part
// of the scan.
func (r *Resolver) ManifestRoots() []string {
	var roots []string
	roots = append(roots, r.Resolve(types.RootEngine, "")...)
	roots = append(roots, r.Resolve(types.RootActivePlugins, "")...)
	roots = append(roots, r.Resolve(types.RootWorkspace, "")...)
	return roots
}

func (r *Resolver) activePlugins() []string {
	ids := r.roots.InstalledPlugins()
	result := make([]string, 0, len(ids))

	for _, id := range ids {
		switch {
		case strings.HasPrefix(id, BuiltinPluginPrefix):
			result = append(result, filepath.Join(r.roots.EnginePluginsPath(), strings.TrimPrefix(id, BuiltinPluginPrefix)))
		case strings.HasPrefix(id, UserPluginPrefix):
			result = append(result, filepath.Join(r.roots.UserPluginsPath(), strings.TrimPrefix(id, UserPluginPrefix)))
		default:
			r.logger.Warn().Str("plugin", id).Msg("Skipping plugin id with unknown prefix")
		}
	}

	return result
}
