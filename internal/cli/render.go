package cli

import (
	"fmt"
	"path/filepath"

	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"
)

func newRenderCmd(opts *globalOptions) *cobra.Command {
	var (
		templatePath string
		targetPath   string
		dataPath     string
		encoding     string
		overwrite    bool
	)

	cmd := &cobra.Command{
		Use:     "render",
		Short:   MsgRenderShort,
		Long:    MsgRenderLong,
		Example: MsgRenderExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(opts)
			if err != nil {
				return fmt.Errorf(MsgErrLoadConfig, err)
			}

			templateAbs, err := filepath.Abs(templatePath)
			if err != nil {
				return err
			}
			targetAbs, err := filepath.Abs(targetPath)
			if err != nil {
				return err
			}

			source, err := a.fs.ReadFile(templateAbs)
			if err != nil {
				return fmt.Errorf(MsgErrReadSource, err)
			}

			data := map[string]interface{}{}
			if dataPath != "" {
				if data, err = readData(a, dataPath); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			if !overwrite && a.fs.Exists(targetAbs) {
				_, err := fmt.Fprintf(out, MsgNotOverwritten+"\n", targetAbs)
				return err
			}

			if err := a.renderer.RenderTemplateToFile(cmd.Context(), templateAbs, targetAbs, string(source), data, encoding, overwrite); err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, MsgRendered+"\n", targetAbs)
			return err
		},
	}

	cmd.Flags().StringVarP(&templatePath, "template", "t", "", MsgFlagTemplate)
	cmd.Flags().StringVarP(&targetPath, "target", "o", "", MsgFlagTarget)
	cmd.Flags().StringVarP(&dataPath, "data", "d", "", MsgFlagData)
	cmd.Flags().StringVarP(&encoding, "encoding", "e", "", MsgFlagEncoding)
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, MsgFlagOverwrite)
	_ = cmd.MarkFlagRequired("template")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}

func readData(a *app, path string) (map[string]interface{}, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	raw, err := a.fs.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf(MsgErrReadData, err)
	}
	parsed, err := oj.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf(MsgErrReadData, err)
	}
	data, ok := parsed.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf(MsgErrParseData, path)
	}
	return data, nil
}
