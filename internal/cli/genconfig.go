package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/vuegen/pkg/config"
	"github.com/arthur-debert/vuegen/pkg/filesystem"
)

func newGenConfigCmd(opts *globalOptions) *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:     "genconfig",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return fmt.Errorf(MsgErrLoadConfig, err)
			}

			content, err := config.Generate(cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !write {
				_, err := out.Write(content)
				return err
			}

			path := filepath.Join(cfg.Roots.Workspace, config.FileNames[0])
			if err := filesystem.NewOS().WriteFile(path, content, 0644); err != nil {
				return fmt.Errorf(MsgErrWriteConfig, err)
			}
			_, err = fmt.Fprintf(out, MsgConfigWritten+"\n", path)
			return err
		},
	}

	cmd.Flags().BoolVar(&write, "write", false, MsgFlagWrite)

	return cmd
}
