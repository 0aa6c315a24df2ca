package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/vuegen/pkg/templates"
	"github.com/arthur-debert/vuegen/pkg/ui"
	"github.com/arthur-debert/vuegen/pkg/ui/markdown"
	"github.com/arthur-debert/vuegen/pkg/ui/view"
)

func newListCmd(opts *globalOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "list",
		Short:   MsgListShort,
		Long:    MsgListLong,
		Example: MsgListExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := ui.ParseFormat(format)
			if err != nil {
				return err
			}
			renderer, err := ui.NewRenderer(f, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			a, err := setup(opts)
			if err != nil {
				return fmt.Errorf(MsgErrLoadConfig, err)
			}
			defs, err := a.registry.Load(cmd.Context())
			if err != nil {
				return err
			}
			return renderer.RenderDefinitions(view.FromDefinitions(defs))
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "auto", MsgFlagFormat)

	return cmd
}

func newDescribeCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "describe <source|file>",
		Short:   MsgDescribeShort,
		Example: MsgDescribeExample,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(opts)
			if err != nil {
				return fmt.Errorf(MsgErrLoadConfig, err)
			}
			if _, err := a.registry.Load(cmd.Context()); err != nil {
				return err
			}

			matches := describeMatches(a.registry.Entries(), args[0])
			out := cmd.OutOrStdout()
			if len(matches) == 0 {
				_, err := fmt.Fprintf(out, MsgNoDefinitionFound+"\n", args[0])
				return err
			}

			renderer := markdown.NewRenderer()
			for _, m := range matches {
				md := markdown.Describe(m)
				if stdoutIsTerminal() {
					md = renderer.Render(md)
				}
				if _, err := io.WriteString(out, md+"\n"); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// describeMatches selects the definitions whose source value is arg, or
// whose trigger fires for arg taken as a file path
func describeMatches(entries []templates.Entry, arg string) []view.Definition {
	abs, err := filepath.Abs(arg)
	if err != nil {
		abs = arg
	}

	var out []view.Definition
	for _, e := range entries {
		if e.Definition.Source.Value == arg || e.Trigger.Match(abs) {
			out = append(out, view.FromDefinition(e.Definition))
		}
	}
	return out
}
