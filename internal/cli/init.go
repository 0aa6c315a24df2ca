package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/vuegen/pkg/render"
	"github.com/arthur-debert/vuegen/pkg/types"
	"github.com/arthur-debert/vuegen/pkg/ui/prompt"
)

// newPromptDriver is replaced in tests
var newPromptDriver = prompt.NewSurvey

var (
	sourceKinds = []string{string(types.SourceFileType), string(types.SourceURI)}
	targetRoots = []string{string(types.RootRelative), string(types.RootWorkspace)}
)

func newInitCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "init",
		Short:   MsgInitShort,
		Long:    MsgInitLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(opts)
			if err != nil {
				return fmt.Errorf(MsgErrLoadConfig, err)
			}

			def, ok, err := askDefinition(cmd.Context(), newPromptDriver())
			if err != nil || !ok {
				return err
			}

			root := a.roots.WorkspaceRoot()
			manifest, err := a.registry.AddDefinition(root, def)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, MsgDefinitionAdded+"\n", def.Source.Value, manifest)

			for _, target := range def.Targets {
				def.Root = root
				templatePath := def.TemplatePath(target)
				if a.fs.Exists(templatePath) {
					continue
				}
				stub := fmt.Sprintf("{# generated from {{ %s }} #}\n", def.DataKey())
				if err := a.fs.WriteFile(templatePath, []byte(stub), 0644); err != nil {
					return err
				}
				fmt.Fprintf(out, MsgTemplateCreated+"\n", templatePath)
			}
			return nil
		},
	}
}

// askDefinition walks the user through one template definition. ok is false
// when the user declines the final confirmation.
func askDefinition(ctx context.Context, driver prompt.Driver) (types.TemplateDefinition, bool, error) {
	var def types.TemplateDefinition

	kind, err := driver.Select(ctx, prompt.SelectConfig{
		Message: "Trigger kind",
		Options: sourceKinds,
		Help:    "filetype matches any file ending with a suffix; uri matches one file relative to the manifest root",
	})
	if err != nil {
		return def, false, err
	}
	def.Source.Kind = types.SourceKind(sourceKinds[kind])

	sourceHelp := "Path relative to the workspace, e.g. config/Game.json"
	if def.Source.Kind == types.SourceFileType {
		sourceHelp = "File suffix, e.g. .soundspec"
	}
	if def.Source.Value, err = driver.Input(ctx, prompt.InputConfig{
		Message:   "Trigger value",
		Help:      sourceHelp,
		Validator: required("trigger value"),
	}); err != nil {
		return def, false, err
	}

	stem := types.SourceStem(def.Source.Value)
	defaultKey := types.DefaultKey(def.Source.Value)
	if def.Key, err = driver.Input(ctx, prompt.InputConfig{
		Message:   "Context key",
		Default:   defaultKey,
		Help:      "Name templates use for the triggering file's content",
		Validator: identifier,
	}); err != nil {
		return def, false, err
	}
	if def.Key == defaultKey {
		def.Key = ""
	}

	rootDefault := 0
	targetDefault := "build/${sourceBasename}.c"
	if def.Source.Kind == types.SourceURI {
		rootDefault = 1
		targetDefault = "build/" + stem + ".h"
	}

	var target types.TemplateTarget
	rootIdx, err := driver.Select(ctx, prompt.SelectConfig{
		Message:      "Target root",
		Options:      targetRoots,
		DefaultIndex: rootDefault,
	})
	if err != nil {
		return def, false, err
	}
	target.Root = types.RootKind(targetRoots[rootIdx])

	if target.Value, err = driver.Input(ctx, prompt.InputConfig{
		Message:   "Target path",
		Default:   targetDefault,
		Help:      "May use ${sourceBasename} and ${name} placeholders",
		Validator: required("target path"),
	}); err != nil {
		return def, false, err
	}

	if target.Template, err = driver.Input(ctx, prompt.InputConfig{
		Message:   "Template file",
		Default:   filepath.ToSlash(filepath.Join("templates", stem+filepath.Ext(target.Value)+".njk")),
		Validator: required("template file"),
	}); err != nil {
		return def, false, err
	}

	encoding, err := driver.Input(ctx, prompt.InputConfig{
		Message:   "Output encoding",
		Default:   render.DefaultEncoding,
		Validator: validEncoding,
	})
	if err != nil {
		return def, false, err
	}
	if !strings.EqualFold(encoding, render.DefaultEncoding) {
		target.Encoding = encoding
	}
	def.Targets = []types.TemplateTarget{target}

	ok, err := driver.Confirm(ctx, prompt.ConfirmConfig{
		Message: fmt.Sprintf("Add definition for %s?", def.Source.Value),
		Default: true,
	})
	return def, ok, err
}

func required(name string) func(string) error {
	return func(v string) error {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}

func identifier(key string) error {
	if !types.IsIdentifier(key) {
		return fmt.Errorf("%q is not an identifier; use letters, digits and _", key)
	}
	return nil
}

func validEncoding(label string) error {
	if !render.ValidEncoding(label) {
		return fmt.Errorf("unknown encoding %q", label)
	}
	return nil
}
