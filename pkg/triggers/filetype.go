package triggers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/vuegen/pkg/errors"
	"github.com/arthur-debert/vuegen/pkg/logging"
	"github.com/arthur-debert/vuegen/pkg/registry"
	"github.com/arthur-debert/vuegen/pkg/types"
)

// FileTypeTriggerName is the name used to reference this trigger
const FileTypeTriggerName = string(types.SourceFileType)

// FileTypeTrigger matches any file whose path ends with a suffix, regardless
// of the directory it lives in.
type FileTypeTrigger struct {
	suffix string
}

// NewFileTypeTrigger creates a new FileTypeTrigger for the given suffix
func NewFileTypeTrigger(suffix string) (*FileTypeTrigger, error) {
	if suffix == "" {
		return nil, errors.New(errors.ErrTriggerInvalid, "filetype trigger requires a suffix")
	}

	logger := logging.GetLogger("triggers.filetype")
	logger.Trace().
		Str("suffix", suffix).
		Msg("created filetype trigger")

	return &FileTypeTrigger{suffix: filepath.ToSlash(suffix)}, nil
}

// Name returns the name of this trigger
func (t *FileTypeTrigger) Name() string {
	return FileTypeTriggerName
}

// Description returns a human-readable description of this trigger
func (t *FileTypeTrigger) Description() string {
	return fmt.Sprintf("Matches files ending with '%s'", t.suffix)
}

// Match reports whether path ends with the trigger's suffix
func (t *FileTypeTrigger) Match(path string) bool {
	return strings.HasSuffix(filepath.ToSlash(path), t.suffix)
}

func init() {
	err := registry.RegisterTriggerFactory(types.SourceFileType, func(_ string, source types.Source) (types.Trigger, error) {
		return NewFileTypeTrigger(source.Value)
	})
	if err != nil {
		panic(fmt.Sprintf("failed to register filetype trigger: %v", err))
	}
}
