// Package text provides plain text output without styling
package text

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/vuegen/pkg/ui/view"
)

// Renderer writes unstyled, line-oriented output
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) *Renderer {
	return &Renderer{output: output}
}

// RenderDefinitions lists each definition followed by its targets
func (r *Renderer) RenderDefinitions(list view.DefinitionList) error {
	if len(list.Definitions) == 0 {
		return r.RenderMessage("No template definitions found")
	}

	var b strings.Builder
	manifest := ""
	for _, d := range list.Definitions {
		if d.Manifest != manifest {
			manifest = d.Manifest
			fmt.Fprintf(&b, "%s\n", manifest)
		}
		fmt.Fprintf(&b, "  %s %s (key: %s)\n", d.Kind, d.Source, d.Key)
		for _, e := range d.Extra {
			fmt.Fprintf(&b, "    + %s: %s %s in %s\n", e.Key, e.Type, e.Value, e.Root)
		}
		for _, t := range d.Targets {
			fmt.Fprintf(&b, "    -> %s/%s  [%s]", t.Root, t.Path, t.Template)
			if t.Encoding != "" {
				fmt.Fprintf(&b, " (%s)", t.Encoding)
			}
			b.WriteString("\n")
		}
	}
	_, err := io.WriteString(r.output, b.String())
	return err
}

// RenderReport writes the generated files then the failures
func (r *Renderer) RenderReport(report view.Report) error {
	var b strings.Builder
	if report.Reloaded {
		b.WriteString("templates reloaded\n")
	}
	for _, path := range report.Invalidated {
		fmt.Fprintf(&b, "invalidated %s\n", path)
	}
	for _, path := range report.Written {
		fmt.Fprintf(&b, "wrote %s\n", path)
	}
	for _, f := range report.Failures {
		fmt.Fprintf(&b, "failed %s", f.Change)
		if f.Target != "" {
			fmt.Fprintf(&b, " -> %s", f.Target)
		}
		fmt.Fprintf(&b, ": %s\n", f.Error)
	}
	fmt.Fprintf(&b, "%d changes, %d matches, %d written, %d failed\n",
		report.Changes, report.Matches, len(report.Written), len(report.Failures))
	_, err := io.WriteString(r.output, b.String())
	return err
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	_, werr := fmt.Fprintf(r.output, "Error: %v\n", err)
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}
