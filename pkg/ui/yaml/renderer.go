// Package yaml provides YAML output for scripts and humans who prefer it
package yaml

import (
	"io"

	"github.com/arthur-debert/vuegen/pkg/errors"
	"github.com/arthur-debert/vuegen/pkg/ui/view"
	"gopkg.in/yaml.v3"
)

// Renderer writes each result as a YAML document
type Renderer struct {
	output io.Writer
}

// New creates a new YAML renderer
func New(output io.Writer) *Renderer {
	return &Renderer{output: output}
}

func (r *Renderer) encode(v interface{}) error {
	encoder := yaml.NewEncoder(r.output)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return err
	}
	return encoder.Close()
}

// RenderDefinitions renders the definition list as YAML
func (r *Renderer) RenderDefinitions(list view.DefinitionList) error {
	if list.Definitions == nil {
		list.Definitions = []view.Definition{}
	}
	return r.encode(list)
}

// RenderReport renders a batch report as YAML
func (r *Renderer) RenderReport(report view.Report) error {
	return r.encode(report)
}

// RenderError renders an error as YAML
func (r *Renderer) RenderError(err error) error {
	return r.encode(map[string]string{
		"error": err.Error(),
		"code":  string(errors.GetErrorCode(err)),
	})
}

// RenderMessage renders a simple message as YAML
func (r *Renderer) RenderMessage(msg string) error {
	return r.encode(map[string]string{"message": msg})
}
