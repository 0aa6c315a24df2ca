package types

import (
	"encoding/json"
	"path/filepath"
	"strings"
)

// RootKind names a family of filesystem bases that templates, manifests and
// data are looked up in.
type RootKind string

const (
	// RootEngine is the engine core installation directory
	RootEngine RootKind = "engine"

	// RootPlugins is the built-in plugin library followed by the user plugin library
	RootPlugins RootKind = "plugins"

	// RootActivePlugins is one directory per active plugin, in activation order
	RootActivePlugins RootKind = "activePlugins"

	// RootWorkspace is the open workspace (project) directory
	RootWorkspace RootKind = "workspace"

	// RootRelative is the parent directory of the triggering file
	RootRelative RootKind = "relative"
)

// Valid reports whether the kind is one of the known root kinds
func (k RootKind) Valid() bool {
	switch k {
	case RootEngine, RootPlugins, RootActivePlugins, RootWorkspace, RootRelative:
		return true
	}
	return false
}

// SourceKind selects how a trigger or data source is matched
type SourceKind string

const (
	// SourceURI matches exactly one file relative to a root
	SourceURI SourceKind = "uri"

	// SourceFileType matches any file whose path ends with a suffix
	SourceFileType SourceKind = "filetype"
)

// Source is the trigger of a template definition
type Source struct {
	Kind  SourceKind `json:"kind" yaml:"kind"`
	Value string     `json:"value" yaml:"value"`
}

// UnmarshalJSON accepts "type" as an alias of "kind", which is what extra
// sources use.
func (s *Source) UnmarshalJSON(data []byte) error {
	var raw struct {
		Kind  SourceKind `json:"kind"`
		Type  SourceKind `json:"type"`
		Value string     `json:"value"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.Kind = raw.Kind
	if s.Kind == "" {
		s.Kind = raw.Type
	}
	s.Value = raw.Value
	return nil
}

// ExtraSource is a named piece of auxiliary data merged into the render context
type ExtraSource struct {
	Key   string     `json:"key" yaml:"key"`
	Root  RootKind   `json:"root" yaml:"root"`
	Type  SourceKind `json:"type" yaml:"type"`
	Value string     `json:"value" yaml:"value"`
}

// TemplateTarget describes one generated file: where it goes and which
// template produces it.
type TemplateTarget struct {
	// Value is the target path, relative to Root, and may contain ${name} placeholders
	Value string `json:"value" yaml:"value"`

	// Template is the template file path relative to the definition's root
	Template string `json:"template" yaml:"template"`

	Root     RootKind `json:"root" yaml:"root"`
	Encoding string   `json:"encoding,omitempty" yaml:"encoding,omitempty"`
}

// TemplateDefinition is one generation rule from a manifest
type TemplateDefinition struct {
	Source  Source           `json:"source" yaml:"source"`
	Key     string           `json:"key,omitempty" yaml:"key,omitempty"`
	Extra   []ExtraSource    `json:"extra,omitempty" yaml:"extra,omitempty"`
	Targets []TemplateTarget `json:"targets" yaml:"targets"`

	// Root is the absolute directory the manifest was found under. It is
	// attached at load time and never authored.
	Root string `json:"-" yaml:"root"`
}

// DataKey returns the context key the triggering file's content is stored
// under: the authored key, or DefaultKey of the source value.
func (d TemplateDefinition) DataKey() string {
	if d.Key != "" {
		return d.Key
	}
	return DefaultKey(d.Source.Value)
}

// DefaultKey derives a context key from a source value: its lowercase stem
// with every character outside [a-z0-9_] replaced by '_', and a leading '_'
// when it would start with a digit. "config/game-config.json" gives
// "game_config", ".image.json" gives "image".
func DefaultKey(value string) string {
	key := []byte(strings.ToLower(SourceStem(value)))
	for i, c := range key {
		if !isIdentByte(c) {
			key[i] = '_'
		}
	}
	if len(key) == 0 || (key[0] >= '0' && key[0] <= '9') {
		return "_" + string(key)
	}
	return string(key)
}

// IsIdentifier reports whether key can name a template context variable
func IsIdentifier(key string) bool {
	if key == "" || (key[0] >= '0' && key[0] <= '9') {
		return false
	}
	for i := 0; i < len(key); i++ {
		if !isIdentByte(key[i]) {
			return false
		}
	}
	return true
}

func isIdentByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// TemplatePath returns the absolute path of a target's template file
func (d TemplateDefinition) TemplatePath(target TemplateTarget) string {
	if filepath.IsAbs(target.Template) {
		return filepath.Clean(target.Template)
	}
	return filepath.Join(d.Root, filepath.FromSlash(target.Template))
}

// FileStem returns the base name of a path with its last extension removed
func FileStem(path string) string {
	base := filepath.Base(filepath.FromSlash(path))
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// SourceStem is FileStem for source values, which may be a bare suffix such
// as ".soundspec" or ".image.json"; in that case the first segment of the
// suffix is used ("soundspec", "image").
func SourceStem(value string) string {
	base := filepath.Base(filepath.FromSlash(value))
	if !strings.HasPrefix(base, ".") {
		return FileStem(value)
	}
	suffix := strings.TrimLeft(base, ".")
	if i := strings.Index(suffix, "."); i >= 0 {
		return suffix[:i]
	}
	return suffix
}
