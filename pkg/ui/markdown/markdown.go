// Package markdown renders long-form descriptions of template definitions
// as markdown, styled for the terminal with glamour.
package markdown

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/vuegen/pkg/ui/view"
	"github.com/charmbracelet/glamour"
)

// Renderer uses the glamour library for rich markdown rendering
type Renderer struct {
	Style string // Style name: "dark", "light", "notty", "auto", or path to custom style
	Width int    // Word wrap width (0 = glamour default)
}

// NewRenderer creates a markdown renderer with style auto-detection
func NewRenderer() *Renderer {
	return &Renderer{Style: "auto"}
}

// Render converts markdown to terminal output, falling back to the raw
// markdown when glamour fails.
func (r *Renderer) Render(content string) string {
	var options []glamour.TermRendererOption

	switch r.Style {
	case "", "auto":
		options = append(options, glamour.WithAutoStyle())
	default:
		options = append(options, glamour.WithStylePath(r.Style))
	}

	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return content
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// Describe builds the markdown description of a definition
func Describe(d view.Definition) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", d.Source)
	fmt.Fprintf(&b, "Declared in `%s`.\n\n", d.Manifest)

	switch d.Kind {
	case "uri":
		fmt.Fprintf(&b, "Triggered when the file `%s` changes under any manifest root.\n\n", d.Source)
	default:
		fmt.Fprintf(&b, "Triggered by any file whose path ends with `%s`.\n\n", d.Source)
	}
	fmt.Fprintf(&b, "The file's parsed content is available to templates as `%s`.\n\n", d.Key)

	if len(d.Extra) > 0 {
		b.WriteString("## Extra data\n\n")
		b.WriteString("| Key | Type | Value | Root |\n")
		b.WriteString("|-----|------|-------|------|\n")
		for _, e := range d.Extra {
			fmt.Fprintf(&b, "| `%s` | %s | `%s` | %s |\n", e.Key, e.Type, e.Value, e.Root)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Targets\n\n")
	for _, t := range d.Targets {
		encoding := t.Encoding
		if encoding == "" {
			encoding = "utf-8"
		}
		fmt.Fprintf(&b, "- `%s` under **%s**, from `%s` (%s)\n", t.Path, t.Root, t.Template, encoding)
	}

	return b.String()
}
