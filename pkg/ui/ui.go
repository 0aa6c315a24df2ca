// Package ui renders command results in different formats.
// It supports terminal (rich), text (plain), JSON and YAML output.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/vuegen/pkg/ui/json"
	"github.com/arthur-debert/vuegen/pkg/ui/terminal"
	"github.com/arthur-debert/vuegen/pkg/ui/text"
	"github.com/arthur-debert/vuegen/pkg/ui/view"
	"github.com/arthur-debert/vuegen/pkg/ui/yaml"
)

// Renderer is the common interface for all output renderers
type Renderer interface {
	// RenderDefinitions renders the loaded template definitions
	RenderDefinitions(list view.DefinitionList) error

	// RenderReport renders the outcome of a change batch
	RenderReport(report view.Report) error

	// RenderError renders an error with appropriate formatting
	RenderError(err error) error

	// RenderMessage renders a simple message
	RenderMessage(msg string) error
}

// NewRenderer creates a new renderer based on the specified format.
// It detects terminal capabilities when format is Auto.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		if file, ok := output.(*os.File); ok {
			return NewRenderer(DetectFormat(file), output)
		}
		return NewRenderer(FormatText, output)
	case FormatTerminal:
		return terminal.New(output), nil
	case FormatText:
		return text.New(output), nil
	case FormatJSON:
		return json.New(output), nil
	case FormatYAML:
		return yaml.New(output), nil
	default:
		return nil, fmt.Errorf("unknown format: %v", format)
	}
}
