// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/vuegen/pkg/errors"
	"github.com/arthur-debert/vuegen/pkg/ui/styles"
	"github.com/arthur-debert/vuegen/pkg/ui/view"
	"github.com/pterm/pterm"
)

// Renderer provides rich terminal output using lipgloss styles and pterm tables
type Renderer struct {
	output io.Writer
}

// New creates a new terminal renderer
func New(output io.Writer) *Renderer {
	return &Renderer{output: output}
}

// RenderDefinitions renders one table of targets per definition, grouped by manifest
func (r *Renderer) RenderDefinitions(list view.DefinitionList) error {
	if len(list.Definitions) == 0 {
		return r.RenderMessage(styles.Render("Muted", "No template definitions found"))
	}

	var b strings.Builder
	manifest := ""
	for _, d := range list.Definitions {
		if d.Manifest != manifest {
			manifest = d.Manifest
			b.WriteString(styles.Render("Header", manifest))
			b.WriteString("\n")
		}

		fmt.Fprintf(&b, "%s %s %s\n",
			styles.Render("Kind", d.Kind),
			styles.Render("Source", d.Source),
			styles.Render("Muted", "as "+d.Key))

		for _, e := range d.Extra {
			b.WriteString(styles.Render("Indent", fmt.Sprintf("+ %s  %s %s in %s", e.Key, e.Type, e.Value, e.Root)))
			b.WriteString("\n")
		}

		data := pterm.TableData{{"Root", "Target", "Template", "Encoding"}}
		for _, t := range d.Targets {
			encoding := t.Encoding
			if encoding == "" {
				encoding = "utf-8"
			}
			data = append(data, []string{
				t.Root,
				styles.Render("Path", t.Path),
				styles.Render("Template", t.Template),
				encoding,
			})
		}
		table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
		if err != nil {
			return err
		}
		b.WriteString(styles.Render("Indent", table))
		b.WriteString("\n\n")
	}

	_, err := io.WriteString(r.output, b.String())
	return err
}

// RenderReport renders written files and failures of a batch
func (r *Renderer) RenderReport(report view.Report) error {
	var b strings.Builder

	if report.Reloaded {
		fmt.Fprintf(&b, "%s %s\n", pterm.Info.Prefix.Text, "template manifests reloaded")
	}
	for _, path := range report.Invalidated {
		fmt.Fprintf(&b, "%s %s\n", styles.Render("Muted", "invalidated"), path)
	}
	for _, path := range report.Written {
		fmt.Fprintf(&b, "%s %s\n", styles.Render("Success", "✓"), styles.Render("Path", path))
	}
	for _, f := range report.Failures {
		subject := f.Change
		if f.Target != "" {
			subject += " → " + f.Target
		}
		fmt.Fprintf(&b, "%s %s %s\n",
			styles.Render("Error", "✗"),
			subject,
			pterm.Error.MessageStyle.Sprint(f.Code))
		b.WriteString(styles.Render("Indent", styles.Render("Muted", f.Error)))
		b.WriteString("\n")
	}

	summary := fmt.Sprintf("%d changes, %d matches, %d written, %d failed",
		report.Changes, report.Matches, len(report.Written), len(report.Failures))
	if report.OK() {
		b.WriteString(styles.Render("Success", summary))
	} else {
		b.WriteString(styles.Render("Warning", summary))
	}
	b.WriteString("\n")

	_, err := io.WriteString(r.output, b.String())
	return err
}

// RenderError renders an error with its code
func (r *Renderer) RenderError(err error) error {
	line := fmt.Sprintf("%s %s", pterm.Error.Prefix.Text, pterm.Error.MessageStyle.Sprint(err.Error()))
	if code := errors.GetErrorCode(err); code != errors.ErrUnknown {
		line = fmt.Sprintf("%s %s: %s", pterm.Error.Prefix.Text, pterm.Error.MessageStyle.Sprint(code), err.Error())
	}
	_, werr := fmt.Fprintln(r.output, line)
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}
