package triggers

import (
	"fmt"
	"path/filepath"

	"github.com/arthur-debert/vuegen/pkg/errors"
	"github.com/arthur-debert/vuegen/pkg/logging"
	"github.com/arthur-debert/vuegen/pkg/registry"
	"github.com/arthur-debert/vuegen/pkg/types"
)

// URITriggerName is the name used to reference this trigger
const URITriggerName = string(types.SourceURI)

// URITrigger matches exactly one file, located relative to the root of the
// definition that declared it.
type URITrigger struct {
	path string
}

// NewURITrigger creates a trigger for root/value
func NewURITrigger(root string, value string) (*URITrigger, error) {
	if value == "" {
		return nil, errors.New(errors.ErrTriggerInvalid, "uri trigger requires a value")
	}
	if root == "" && !filepath.IsAbs(value) {
		return nil, errors.Newf(errors.ErrTriggerInvalid, "uri trigger %q has no root", value)
	}

	path := filepath.FromSlash(value)
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}

	logger := logging.GetLogger("triggers.uri")
	logger.Trace().
		Str("path", path).
		Msg("created uri trigger")

	return &URITrigger{path: filepath.Clean(path)}, nil
}

// Name returns the name of this trigger
func (t *URITrigger) Name() string {
	return URITriggerName
}

// Description returns a human-readable description of this trigger
func (t *URITrigger) Description() string {
	return fmt.Sprintf("Matches the file '%s'", t.path)
}

// Path returns the absolute path this trigger matches
func (t *URITrigger) Path() string {
	return t.path
}

// Match reports whether path resolves to the trigger's file
func (t *URITrigger) Match(path string) bool {
	return filepath.Clean(path) == t.path
}

func init() {
	err := registry.RegisterTriggerFactory(types.SourceURI, func(root string, source types.Source) (types.Trigger, error) {
		return NewURITrigger(root, source.Value)
	})
	if err != nil {
		panic(fmt.Sprintf("failed to register uri trigger: %v", err))
	}
}
