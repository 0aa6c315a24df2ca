package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort      = "Template-driven code generation for VUEngine projects"
	MsgWatchShort     = "Watch for changes and regenerate outputs"
	MsgGenerateShort  = "Run matching templates for the given files"
	MsgRenderShort    = "Render one template to a file"
	MsgListShort      = "List loaded template definitions"
	MsgListLong       = "List displays every template definition found in the engine, active plugin and workspace manifests."
	MsgDescribeShort  = "Describe the definitions triggered by a source"
	MsgGenConfigShort = "Print the effective configuration"
	MsgInitShort      = "Add a template definition to the workspace manifest"
	MsgVersionShort   = "Print version information"
	MsgVersionLong    = "Print detailed version information including commit hash and build date"

	// Status messages
	MsgWatching          = "Watching %d directories for changes"
	MsgNoFiles           = "No files to generate from."
	MsgRendered          = "Rendered %s"
	MsgNotOverwritten    = "%s exists; use --overwrite to replace it"
	MsgNoDefinitionFound = "No definition is triggered by %q"
	MsgConfigWritten     = "Wrote %s"
	MsgDefinitionAdded   = "Added definition for %s to %s"
	MsgTemplateCreated   = "Created template stub %s"

	// Version output
	MsgVersionFormat = "vuegen version %s\n"
	MsgCommitFormat  = "Commit: %s\n"
	MsgBuiltFormat   = "Built:  %s\n"

	// Error messages
	MsgErrLoadConfig  = "failed to load configuration: %w"
	MsgErrWatch       = "watch stopped: %w"
	MsgErrFailures    = "%d of %d targets failed"
	MsgErrReadData    = "failed to read data file: %w"
	MsgErrParseData   = "data file %s must contain a JSON object"
	MsgErrReadSource  = "failed to read template: %w"
	MsgErrNoArgs      = "no files given; pass files or use --all"
	MsgErrWriteConfig = "failed to write configuration: %w"

	// Flag descriptions
	MsgFlagVerbose   = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagWorkspace = "Workspace directory (default: git root or current directory)"
	MsgFlagConfig    = "Config file (default: .vuegen.toml in the workspace)"
	MsgFlagFormat    = "Output format: auto, term, text, json, yaml"
	MsgFlagAll       = "Consider every file in the workspace"
	MsgFlagTemplate  = "Template file to render"
	MsgFlagTarget    = "Output file path"
	MsgFlagData      = "JSON file with the template context"
	MsgFlagEncoding  = "Output encoding (default: templates.default_encoding)"
	MsgFlagOverwrite = "Replace the target when it already exists"
	MsgFlagWrite     = "Write the configuration to .vuegen.toml instead of stdout"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/watch-long.txt
	msgWatchLongRaw string
	MsgWatchLong    = strings.TrimSpace(msgWatchLongRaw)

	//go:embed msgs/watch-example.txt
	msgWatchExampleRaw string
	MsgWatchExample    = strings.TrimRight(msgWatchExampleRaw, "\n")

	//go:embed msgs/generate-long.txt
	msgGenerateLongRaw string
	MsgGenerateLong    = strings.TrimSpace(msgGenerateLongRaw)

	//go:embed msgs/generate-example.txt
	msgGenerateExampleRaw string
	MsgGenerateExample    = strings.TrimRight(msgGenerateExampleRaw, "\n")

	//go:embed msgs/render-long.txt
	msgRenderLongRaw string
	MsgRenderLong    = strings.TrimSpace(msgRenderLongRaw)

	//go:embed msgs/render-example.txt
	msgRenderExampleRaw string
	MsgRenderExample    = strings.TrimRight(msgRenderExampleRaw, "\n")

	//go:embed msgs/list-example.txt
	msgListExampleRaw string
	MsgListExample    = strings.TrimRight(msgListExampleRaw, "\n")

	//go:embed msgs/describe-example.txt
	msgDescribeExampleRaw string
	MsgDescribeExample    = strings.TrimRight(msgDescribeExampleRaw, "\n")

	//go:embed msgs/genconfig-long.txt
	msgGenConfigLongRaw string
	MsgGenConfigLong    = strings.TrimSpace(msgGenConfigLongRaw)

	//go:embed msgs/init-long.txt
	msgInitLongRaw string
	MsgInitLong    = strings.TrimSpace(msgInitLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
