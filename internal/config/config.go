// Package config loads the fixture, server, logging and theme settings from
// defaults, an optional YAML file and FIELDERRORS_* environment variables.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/goliatone/go-theme"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-fielderrors/pkg/fixture"
	"github.com/goliatone/go-fielderrors/pkg/model"
	"github.com/goliatone/go-fielderrors/pkg/render"
)

// EnvPrefix namespaces environment overrides, e.g. FIELDERRORS_SERVER_ADDR.
const EnvPrefix = "FIELDERRORS"

// Config is the full application configuration.
type Config struct {
	Fixture FixtureConfig `mapstructure:"fixture"`
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
	Theme   ThemeConfig   `mapstructure:"theme"`
}

// FixtureConfig mirrors fixture.Config with config-file friendly types.
type FixtureConfig struct {
	Title        string   `mapstructure:"title"`
	Options      []string `mapstructure:"options"`
	FailingValue string   `mapstructure:"failing_value"`
	AcceptedSet  []string `mapstructure:"accepted_set"`
	Message      string   `mapstructure:"message"`
	MaxLength    int      `mapstructure:"max_length"`
	TextKinds    []string `mapstructure:"text_kinds"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// ThemeConfig selects the page theme. Manifests lists extra YAML theme
// manifests registered next to the built-in one.
type ThemeConfig struct {
	Name      string   `mapstructure:"name"`
	Variant   string   `mapstructure:"variant"`
	Manifests []string `mapstructure:"manifests"`
}

// LoadOptions controls where configuration is read from.
type LoadOptions struct {
	// ConfigFile is used exclusively when set and must exist.
	ConfigFile string
	// SearchPaths are scanned for fielderrors.yaml when ConfigFile is empty.
	SearchPaths []string
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	defaults := fixture.DefaultConfig()
	kinds := make([]string, 0, len(defaults.TextKinds))
	for _, kind := range defaults.TextKinds {
		kinds = append(kinds, kind.String())
	}
	return Config{
		Fixture: FixtureConfig{
			Title:        defaults.Title,
			Options:      defaults.Options,
			FailingValue: defaults.FailingValue,
			AcceptedSet:  defaults.AcceptedSet,
			Message:      defaults.Message,
			MaxLength:    defaults.MaxLength,
			TextKinds:    kinds,
		},
		Server: ServerConfig{Addr: ":8080"},
		Log:    LogConfig{Level: "info"},
		Theme: ThemeConfig{
			Name:    render.DefaultThemeName,
			Variant: render.DefaultThemeVariant,
		},
	}
}

// Load resolves the configuration. A missing file in the search paths is not
// an error; a missing explicit ConfigFile is.
func Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("config: load canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("fixture.title", defaults.Fixture.Title)
	v.SetDefault("fixture.options", defaults.Fixture.Options)
	v.SetDefault("fixture.failing_value", defaults.Fixture.FailingValue)
	v.SetDefault("fixture.accepted_set", defaults.Fixture.AcceptedSet)
	v.SetDefault("fixture.message", defaults.Fixture.Message)
	v.SetDefault("fixture.max_length", defaults.Fixture.MaxLength)
	v.SetDefault("fixture.text_kinds", defaults.Fixture.TextKinds)
	v.SetDefault("server.addr", defaults.Server.Addr)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("theme.name", defaults.Theme.Name)
	v.SetDefault("theme.variant", defaults.Theme.Variant)
	v.SetDefault("theme.manifests", []string{})

	v.SetConfigType("yaml")
	if opts.ConfigFile != "" {
		if _, err := os.Stat(opts.ConfigFile); err != nil {
			return nil, fmt.Errorf("config: config file %s: %w", opts.ConfigFile, err)
		}
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName("fielderrors")
		for _, path := range searchPaths(opts.SearchPaths) {
			v.AddConfigPath(path)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.ConfigFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func searchPaths(extra []string) []string {
	if len(extra) > 0 {
		return extra
	}
	paths := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "fielderrors"))
	}
	return paths
}

// Validate rejects values the fixture or logger cannot use.
func (c Config) Validate() error {
	if err := c.FixtureConfig().Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// FixtureConfig converts the loaded values into the builder configuration.
func (c Config) FixtureConfig() fixture.Config {
	kinds := make([]model.Kind, 0, len(c.Fixture.TextKinds))
	for _, kind := range c.Fixture.TextKinds {
		if trimmed := strings.TrimSpace(kind); trimmed != "" {
			kinds = append(kinds, model.Kind(trimmed))
		}
	}
	return fixture.Config{
		Title:        c.Fixture.Title,
		Options:      c.Fixture.Options,
		FailingValue: c.Fixture.FailingValue,
		AcceptedSet:  c.Fixture.AcceptedSet,
		Message:      c.Fixture.Message,
		MaxLength:    c.Fixture.MaxLength,
		TextKinds:    kinds,
	}
}

// FixtureOptions returns the builder options for this configuration.
func (c Config) FixtureOptions(logger *log.Logger) []fixture.Option {
	cfg := c.FixtureConfig()
	opts := []fixture.Option{fixture.WithConfig(cfg), fixture.WithTextKinds(cfg.TextKinds...)}
	if logger != nil {
		opts = append(opts, fixture.WithLogger(logger))
	}
	return opts
}

// LogLevel parses the configured level.
func (c Config) LogLevel() (log.Level, error) {
	level, err := log.ParseLevel(strings.TrimSpace(c.Log.Level))
	if err != nil {
		return log.InfoLevel, fmt.Errorf("config: log level %q: %w", c.Log.Level, err)
	}
	return level, nil
}

// ThemeSelector builds a selector over the built-in manifest plus any
// configured manifest files.
func (c Config) ThemeSelector() (*render.ManifestSelector, error) {
	manifests := []*theme.Manifest{render.DefaultManifest()}
	for _, path := range c.Theme.Manifests {
		manifest, err := LoadManifest(path)
		if err != nil {
			return nil, err
		}
		manifests = append(manifests, manifest)
	}
	selector, err := render.NewManifestSelector(c.Theme.Name, c.Theme.Variant, manifests...)
	if err != nil {
		return nil, fmt.Errorf("config: theme selector: %w", err)
	}
	return selector, nil
}

// LoadManifest reads a YAML theme manifest from disk.
func LoadManifest(path string) (*theme.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read theme manifest: %w", err)
	}
	var manifest theme.Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("config: decode theme manifest %s: %w", path, err)
	}
	if strings.TrimSpace(manifest.Name) == "" {
		return nil, fmt.Errorf("config: theme manifest %s has no name", path)
	}
	return &manifest, nil
}
