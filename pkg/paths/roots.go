package paths

import (
	"github.com/arthur-debert/vuegen/pkg/types"
)

// ConfigRoots is a RootsProvider with fixed locations, typically read from
// configuration
type ConfigRoots struct {
	Engine      string
	Plugins     string
	UserPlugins string
	Workspace   string
	Installed   []string
}

var _ types.RootsProvider = (*ConfigRoots)(nil)

// NewConfigRoots builds a ConfigRoots with every location normalized to an
// absolute path. An empty workspace falls back to FindWorkspaceRoot.
func NewConfigRoots(engine, plugins, userPlugins, workspace string, installed []string) (*ConfigRoots, error) {
	r := &ConfigRoots{Installed: append([]string(nil), installed...)}

	var err error
	if r.Engine, err = Normalize(engine); err != nil {
		return nil, err
	}
	if r.Plugins, err = Normalize(plugins); err != nil {
		return nil, err
	}
	if r.UserPlugins, err = Normalize(userPlugins); err != nil {
		return nil, err
	}

	if workspace == "" {
		r.Workspace, err = FindWorkspaceRoot()
	} else {
		r.Workspace, err = Normalize(workspace)
	}
	if err != nil {
		return nil, err
	}

	return r, nil
}

func (r *ConfigRoots) EngineCorePath() string    { return r.Engine }
func (r *ConfigRoots) EnginePluginsPath() string { return r.Plugins }
func (r *ConfigRoots) UserPluginsPath() string   { return r.UserPlugins }
func (r *ConfigRoots) WorkspaceRoot() string     { return r.Workspace }

// InstalledPlugins returns a copy of the active plugin ids
func (r *ConfigRoots) InstalledPlugins() []string {
	return append([]string(nil), r.Installed...)
}
