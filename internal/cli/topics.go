package cli

import (
	"embed"
	"io/fs"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/vuegen/pkg/cobrax/topics"
	"github.com/arthur-debert/vuegen/pkg/ui/markdown"
)

//go:embed topics/*.md
var topicFiles embed.FS

// initTopics installs the help command serving the embedded topics
func initTopics(rootCmd *cobra.Command) {
	source, err := fs.Sub(topicFiles, "topics")
	if err != nil {
		log.Debug().Err(err).Msg("Help topics unavailable")
		return
	}

	renderer := markdown.NewRenderer()
	opts := topics.Options{
		Extensions: []string{".md"},
		Renderer: topics.MarkdownFunc(func(content string) string {
			if !stdoutIsTerminal() {
				return content
			}
			return renderer.Render(content)
		}),
	}
	if err := topics.InitializeWithOptions(rootCmd, source, opts); err != nil {
		log.Debug().Err(err).Msg("Help topics unavailable")
	}
}
