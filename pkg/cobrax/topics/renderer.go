package topics

// Renderer defines the interface for rendering topic content
type Renderer interface {
	// Render takes raw content and the file extension of the topic and
	// returns formatted content for terminal display
	Render(content string, format string) string
}

// PlainRenderer is the default renderer that returns content as-is
type PlainRenderer struct{}

// Render returns the content unchanged
func (r *PlainRenderer) Render(content string, format string) string {
	return content
}

// MarkdownFunc renders markdown topics with fn and leaves others unchanged
type MarkdownFunc func(content string) string

// Render applies the function to .md topics
func (f MarkdownFunc) Render(content string, format string) string {
	if format != ".md" {
		return content
	}
	return f(content)
}
