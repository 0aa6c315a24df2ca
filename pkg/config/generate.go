package config

import (
	"bytes"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/vuegen/pkg/errors"
)

const generatedHeader = `# vuegen configuration
#
# Uncomment and edit the values you want to change. Environment variables
# VUEGEN_<SECTION>__<KEY> override this file.

`

// Generate renders cfg as a TOML document with every value commented out
func Generate(cfg *Config) ([]byte, error) {
	doc := map[string]interface{}{
		"roots": map[string]interface{}{
			"engine":            cfg.Roots.Engine,
			"plugins":           cfg.Roots.Plugins,
			"user_plugins":      cfg.Roots.UserPlugins,
			"workspace":         cfg.Roots.Workspace,
			"installed_plugins": nonNil(cfg.Roots.InstalledPlugins),
		},
		"templates": map[string]interface{}{
			"preferences_dir":     cfg.Templates.PreferencesDir,
			"manifest":            cfg.Templates.Manifest,
			"default_encoding":    cfg.Templates.DefaultEncoding,
			"missing_placeholder": cfg.Templates.MissingPlaceholder,
			"sort_extra_matches":  cfg.Templates.SortExtraMatches,
			"ignore":              nonNil(cfg.Templates.Ignore),
		},
		"pipeline": map[string]interface{}{
			"concurrency":      cfg.Pipeline.Concurrency,
			"serialize_writes": cfg.Pipeline.SerializeWrites,
			"debounce":         cfg.Pipeline.Debounce.String(),
			"max_wait":         cfg.Pipeline.MaxWait.String(),
			"cache_size":       cfg.Pipeline.CacheSize,
		},
	}

	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(false)
	if err := enc.Encode(doc); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode configuration")
	}

	return []byte(generatedHeader + commentOutConfigValues(buf.String())), nil
}

// commentOutConfigValues comments out every assignment line, keeping
// comments, blank lines and section headers
func commentOutConfigValues(content string) string {
	lines := strings.Split(content, "\n")
	result := make([]string, 0, len(lines))

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "", strings.HasPrefix(trimmed, "#"):
			result = append(result, line)
		case strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]"):
			result = append(result, line)
		default:
			result = append(result, "# "+line)
		}
	}

	return strings.Join(result, "\n")
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
