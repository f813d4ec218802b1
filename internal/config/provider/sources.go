package provider

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/smykla-labs/crashlink/internal/config"
)

// FileSource loads configuration from a TOML file.
type FileSource struct {
	path     string
	required bool
}

// NewFileSource creates a FileSource. A missing optional file is skipped;
// a missing required file is an error.
func NewFileSource(path string, required bool) *FileSource {
	return &FileSource{path: path, required: required}
}

// Name returns the source name.
func (s *FileSource) Name() string {
	return "config file " + s.path
}

// Load parses the file into k.
func (s *FileSource) Load(k *koanf.Koanf) error {
	if _, err := os.Stat(s.path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if s.required {
				return errors.Wrapf(err, "config file %s", s.path)
			}

			return config.ErrConfigNotFound
		}

		return errors.Wrapf(err, "stat %s", s.path)
	}

	if err := k.Load(file.Provider(s.path), toml.Parser()); err != nil {
		return errors.Wrapf(err, "parsing %s", s.path)
	}

	return nil
}

// EnvSource loads configuration from environment variables.
// Variables follow the pattern CRASHLINK_SECTION__FIELD, with a double
// underscore separating nesting levels:
// - CRASHLINK_LOG_DIR=/data/crash
// - CRASHLINK_ANR__ENABLED=false
// - CRASHLINK_CRASH__DUMP_ALL_THREADS_ALLOW_LIST=main,worker-*
type EnvSource struct {
	environ func() []string
}

// NewEnvSource creates an EnvSource. A nil environ reads the process
// environment.
func NewEnvSource(environ func() []string) *EnvSource {
	if environ == nil {
		environ = os.Environ
	}

	return &EnvSource{environ: environ}
}

// Name returns the source name.
func (*EnvSource) Name() string {
	return "environment variables"
}

// Load merges prefixed environment variables into k.
func (s *EnvSource) Load(k *koanf.Koanf) error {
	found := false

	for _, kv := range s.environ() {
		if strings.HasPrefix(kv, config.EnvPrefix) {
			found = true

			break
		}
	}

	if !found {
		return ErrNoConfig
	}

	provider := env.Provider(".", env.Opt{
		Prefix:        config.EnvPrefix,
		TransformFunc: envKey,
		EnvironFunc:   s.environ,
	})

	if err := k.Load(provider, nil); err != nil {
		return errors.Wrap(err, "loading environment")
	}

	return nil
}

// envKey maps CRASHLINK_ANR__LOG_COUNT_MAX to anr.log_count_max.
func envKey(key, value string) (string, any) {
	key = strings.TrimPrefix(key, config.EnvPrefix)
	key = strings.ToLower(strings.ReplaceAll(key, "__", "."))

	return key, value
}

// FlagSource loads configuration from CLI flags keyed by koanf path.
type FlagSource struct {
	flags map[string]any
}

// NewFlagSource creates a new FlagSource.
func NewFlagSource(flags map[string]any) *FlagSource {
	return &FlagSource{flags: flags}
}

// Name returns the source name.
func (*FlagSource) Name() string {
	return "CLI flags"
}

// Load merges the flag values into k.
func (s *FlagSource) Load(k *koanf.Koanf) error {
	if len(s.flags) == 0 {
		return ErrNoConfig
	}

	if err := k.Load(confmap.Provider(s.flags, "."), nil); err != nil {
		return errors.Wrap(err, "loading flags")
	}

	return nil
}
