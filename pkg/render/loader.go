package render

import (
	"bytes"
	"io"
	"path/filepath"

	"github.com/flosch/pongo2/v6"

	"github.com/arthur-debert/vuegen/pkg/types"
)

// fsLoader loads pongo2 templates, and anything they include or extend,
// through a types.FS
type fsLoader struct {
	fs types.FS
}

var _ pongo2.TemplateLoader = (*fsLoader)(nil)

// Abs resolves name relative to the directory of the template that
// references it
func (l *fsLoader) Abs(base, name string) string {
	if filepath.IsAbs(name) || base == "" {
		return filepath.Clean(name)
	}
	return filepath.Join(filepath.Dir(base), name)
}

func (l *fsLoader) Get(path string) (io.Reader, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}
