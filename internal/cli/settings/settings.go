package settings

import (
	"errors"
	"fmt"
	"strings"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v11"

	"github.com/0xalexb/hjarta-conf/config"
	"github.com/0xalexb/hjarta-conf/config/adapter/ini"
	"github.com/0xalexb/hjarta-conf/config/adapter/lua"
	"github.com/0xalexb/hjarta-conf/config/adapter/toml"
	"github.com/0xalexb/hjarta-conf/config/adapter/yaml"
	"github.com/0xalexb/hjarta-conf/config/nest"
	"github.com/0xalexb/hjarta-conf/logging"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "HJARTA_"

// ErrInvalidLogFormat is returned when the log format is neither json nor text.
var ErrInvalidLogFormat = errors.New("invalid log format")

// Settings holds the command-line tool configuration.
type Settings struct {
	LogLevel              string `env:"LOG_LEVEL"`
	LogFormat             string `env:"LOG_FORMAT"`
	Separator             string `env:"SEPARATOR"`
	Provenance            string `env:"PROVENANCE"`
	RenderWithoutSections bool   `env:"RENDER_WITHOUT_SECTIONS"`
	RawSections           bool   `env:"RAW_SECTIONS"`
}

// Defaults returns the values used for settings left unset.
func Defaults() *Settings {
	return &Settings{
		LogLevel:   "warn",
		LogFormat:  logging.FormatJSON,
		Separator:  nest.DefaultSeparator,
		Provenance: config.DefaultProvenance,
	}
}

// Load builds Settings from environ (variables without EnvPrefix are ignored),
// then applies the non-zero fields of flags over them and fills what is still
// unset from Defaults. A nil environ reads the process environment.
func Load(environ map[string]string, flags *Settings) (*Settings, error) {
	return newBuilder().
		withEnv(environ).
		withFlags(flags).
		build()
}

// Adapters returns the format adapters configured by s, INI first.
func (s *Settings) Adapters() []config.Adapter {
	return []config.Adapter{
		ini.New(
			ini.WithSeparator(s.Separator),
			ini.WithProcessSections(!s.RawSections),
			ini.WithRenderWithoutSections(s.RenderWithoutSections),
			ini.WithProvenance(s.Provenance),
		),
		yaml.New(yaml.WithProvenance(s.Provenance)),
		lua.New(lua.WithProvenance(s.Provenance)),
		toml.New(toml.WithProvenance(s.Provenance)),
	}
}

// NestOptions returns the key nesting options configured by s.
func (s *Settings) NestOptions() []nest.Option {
	return []nest.Option{
		nest.WithSeparator(s.Separator),
		nest.WithProcessSections(!s.RawSections),
		nest.WithRenderWithoutSections(s.RenderWithoutSections),
	}
}

func (s *Settings) validate() error {
	switch strings.ToLower(s.LogFormat) {
	case logging.FormatJSON, logging.FormatText:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, s.LogFormat)
	}
}

type builder struct {
	layers []*Settings
	err    error
}

func newBuilder() *builder {
	return &builder{
		layers: make([]*Settings, 0, 2),
	}
}

func (b *builder) withEnv(environ map[string]string) *builder {
	options := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		options.Environment = environ
	}

	envSettings := &Settings{}

	err := env.ParseWithOptions(envSettings, options)
	if err != nil {
		b.err = errors.Join(b.err, fmt.Errorf("error getting env settings: %w", err))

		return b
	}

	b.layers = append(b.layers, envSettings)

	return b
}

func (b *builder) withFlags(flags *Settings) *builder {
	if flags != nil {
		b.layers = append(b.layers, flags)
	}

	return b
}

func (b *builder) build() (*Settings, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occurred during building settings: %w", b.err)
	}

	result := new(Settings)

	for _, layer := range b.layers {
		err := mergo.Merge(result, layer, mergo.WithOverride)
		if err != nil {
			return nil, fmt.Errorf("error merging settings: %w", err)
		}
	}

	err := mergo.Merge(result, Defaults())
	if err != nil {
		return nil, fmt.Errorf("error merging defaults: %w", err)
	}

	err = result.validate()
	if err != nil {
		return nil, err
	}

	return result, nil
}
