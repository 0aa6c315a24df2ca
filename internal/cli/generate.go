package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/vuegen/pkg/types"
	"github.com/arthur-debert/vuegen/pkg/ui"
	"github.com/arthur-debert/vuegen/pkg/ui/view"
)

func newGenerateCmd(opts *globalOptions) *cobra.Command {
	var (
		all    bool
		format string
	)

	cmd := &cobra.Command{
		Use:     "generate [files...]",
		Short:   MsgGenerateShort,
		Long:    MsgGenerateLong,
		Example: MsgGenerateExample,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && !all {
				return fmt.Errorf(MsgErrNoArgs)
			}

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

			var files []string
			if all {
				if files, err = workspaceFiles(a); err != nil {
					return err
				}
			}
			for _, arg := range args {
				abs, err := filepath.Abs(arg)
				if err != nil {
					return err
				}
				files = append(files, abs)
			}
			if len(files) == 0 {
				return renderer.RenderMessage(MsgNoFiles)
			}

			batch := make([]types.FileChange, len(files))
			for i, file := range files {
				batch[i] = types.FileChange{Path: file, Kind: types.ChangeUpdated}
			}

			p := a.pipeline()
			if err := p.Initialize(cmd.Context()); err != nil {
				return err
			}
			report := p.ProcessBatch(cmd.Context(), batch)

			if err := renderer.RenderReport(view.FromReport(report)); err != nil {
				return err
			}
			if !report.OK() {
				return fmt.Errorf(MsgErrFailures, len(report.Failures), len(report.Failures)+len(report.Written))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, MsgFlagAll)
	cmd.Flags().StringVarP(&format, "format", "f", "auto", MsgFlagFormat)

	return cmd
}

// workspaceFiles lists every regular file under the workspace, skipping
// ignored directories
func workspaceFiles(a *app) ([]string, error) {
	ignore := make(map[string]bool, len(a.cfg.Templates.Ignore))
	for _, name := range a.cfg.Templates.Ignore {
		ignore[name] = true
	}

	var files []string
	err := a.fs.Walk(a.roots.WorkspaceRoot(), func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if ignore[info.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		files = append(files, path)
		return nil
	})
	return files, err
}
