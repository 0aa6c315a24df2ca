package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/vuegen/pkg/errors"
	"github.com/arthur-debert/vuegen/pkg/logging"
)

const (
	// EnvPrefix prefixes every environment variable vuegen reads
	EnvPrefix = "VUEGEN_"

	// DotEnvFile is read from the workspace for VUEGEN_* entries
	DotEnvFile = ".env"
)

// FileNames lists the workspace config files looked up, in order
var FileNames = []string{".vuegen.toml", ".vuegen.yaml", ".vuegen.yml"}

// LoadOptions controls where configuration is read from
type LoadOptions struct {
	// Workspace is searched for a config file and a .env file. Empty skips
	// both.
	Workspace string

	// File is an explicit config file. It must exist and replaces discovery.
	File string

	// Overrides are applied last, keyed by dotted path
	// (e.g. "pipeline.concurrency").
	Overrides map[string]interface{}

	// IgnoreEnv skips the .env file and the process environment
	IgnoreEnv bool
}

// Load builds the configuration from all layers and validates it
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to parse embedded defaults")
	}

	// 2. Config file
	path, err := configFilePath(opts)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path).
				WithDetail("path", path)
		}
		logger.Debug().Str("path", path).Msg("Loaded config file")
	}

	if !opts.IgnoreEnv {
		// 3. .env entries
		if opts.Workspace != "" {
			if err := loadDotEnv(k, filepath.Join(opts.Workspace, DotEnvFile)); err != nil {
				return nil, err
			}
		}

		// 4. Environment
		if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment variables")
		}
	}

	// 5. Overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	cfg, err := unmarshal(k)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration built from the embedded defaults only
func Default() *Config {
	cfg, err := Load(LoadOptions{IgnoreEnv: true})
	if err != nil {
		panic(err)
	}
	return cfg
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}
	return &cfg, nil
}

func configFilePath(opts LoadOptions) (string, error) {
	if opts.File != "" {
		if _, err := os.Stat(opts.File); err != nil {
			return "", errors.Wrapf(err, errors.ErrConfigLoad, "config file %s not found", opts.File).
				WithDetail("path", opts.File)
		}
		return opts.File, nil
	}

	if opts.Workspace == "" {
		return "", nil
	}
	for _, name := range FileNames {
		path := filepath.Join(opts.Workspace, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", nil
}

func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	default:
		return toml.Parser()
	}
}

// loadDotEnv loads the VUEGEN_* entries of a .env file without touching the
// process environment
func loadDotEnv(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}

	values, err := godotenv.Read(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrConfigParse, "failed to read %s", path).WithDetail("path", path)
	}

	entries := make(map[string]interface{})
	for name, value := range values {
		if !strings.HasPrefix(name, EnvPrefix) {
			continue
		}
		entries[envKey(name)] = value
	}
	if len(entries) == 0 {
		return nil
	}

	if err := k.Load(confmap.Provider(entries, "."), nil); err != nil {
		return errors.Wrapf(err, errors.ErrConfigLoad, "failed to apply %s", path)
	}
	return nil
}

// envKey maps VUEGEN_PIPELINE__SERIALIZE_WRITES to pipeline.serialize_writes
func envKey(name string) string {
	key := strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}
