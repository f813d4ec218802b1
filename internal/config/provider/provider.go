// Package provider provides multi-source configuration loading with precedence.
package provider

import (
	"github.com/cockroachdb/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/v2"

	"github.com/smykla-labs/crashlink/internal/config"
	pkgconfig "github.com/smykla-labs/crashlink/pkg/config"
)

// ErrNoConfig is returned when a source has nothing to contribute.
var ErrNoConfig = errors.New("no configuration available")

// Source represents a configuration source (file, env, flags).
type Source interface {
	// Name returns the source name for debugging/logging.
	Name() string

	// Load merges this source into k.
	// Returns ErrNoConfig if no configuration is available.
	Load(k *koanf.Koanf) error
}

// Provider loads configuration from multiple sources with precedence.
// Precedence order (highest to lowest):
// 1. CLI Flags
// 2. Environment Variables
// 3. Config File
// 4. Defaults
type Provider struct {
	// sources is the list of configuration sources in precedence order.
	sources []Source

	validator *config.Validator
	cache     *Cache
}

// NewProvider creates a new Provider with the given sources.
// Sources should be provided in precedence order (highest priority first).
func NewProvider(sources ...Source) *Provider {
	return &Provider{
		sources:   sources,
		validator: config.NewValidator(),
		cache:     NewCache(),
	}
}

// Load merges defaults and all sources, validates the result and caches it.
func (p *Provider) Load() (*pkgconfig.Config, error) {
	if cfg := p.cache.Get(); cfg != nil {
		return cfg, nil
	}

	cfg, err := p.load()
	if err != nil {
		return nil, err
	}

	if err := p.validator.Validate(cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	p.cache.Set(cfg)

	return cfg, nil
}

// LoadUnvalidated merges all sources without validating. Used to display
// a configuration that is still incomplete.
func (p *Provider) LoadUnvalidated() (*pkgconfig.Config, error) {
	return p.load()
}

func (p *Provider) load() (*pkgconfig.Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(config.DefaultsMap(), "."), nil); err != nil {
		return nil, errors.Wrap(err, "loading defaults")
	}

	// Lowest priority first so later sources override earlier ones.
	for i := len(p.sources) - 1; i >= 0; i-- {
		source := p.sources[i]

		if err := source.Load(k); err != nil {
			if errors.Is(err, ErrNoConfig) || errors.Is(err, config.ErrConfigNotFound) {
				continue
			}

			return nil, errors.Wrapf(err, "failed to load config from %s", source.Name())
		}
	}

	return decode(k)
}

// Reload clears the cache and loads configuration again.
func (p *Provider) Reload() (*pkgconfig.Config, error) {
	p.cache.Clear()

	return p.Load()
}

// Sources returns the list of sources in precedence order.
func (p *Provider) Sources() []Source {
	return p.sources
}

// NewDefaultProvider creates a Provider with standard sources. When
// configPath is empty, crashlink.toml in the working directory is used if
// present.
func NewDefaultProvider(configPath string, flags map[string]any) *Provider {
	file := NewFileSource(config.DefaultFileName, false)
	if configPath != "" {
		file = NewFileSource(configPath, true)
	}

	return NewProvider(
		NewFlagSource(flags),
		NewEnvSource(nil),
		file,
	)
}

func decode(k *koanf.Koanf) (*pkgconfig.Config, error) {
	var cfg pkgconfig.Config

	err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
				mapstructure.TextUnmarshallerHookFunc(),
			),
			Result:           &cfg,
			TagName:          "koanf",
			WeaklyTypedInput: true,
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "decoding configuration")
	}

	return &cfg, nil
}
