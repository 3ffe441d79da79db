// internal/config/config.go

// Package config loads benchlog settings from defaults, an optional config
// file, BENCHLOG_* environment variables and bound command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mwiater/benchlog/internal/benchlog"
	"github.com/mwiater/benchlog/internal/logutil"
)

// EnvPrefix is prepended to every environment variable, e.g. BENCHLOG_LOG_LEVEL.
const EnvPrefix = "BENCHLOG"

// Config holds the settings shared by every command.
type Config struct {
	// SupportedBatchSizes is the set batch-size labels must belong to.
	SupportedBatchSizes []int `mapstructure:"supported_batch_sizes"`
	// Markers open a context block.
	Markers []string `mapstructure:"markers"`
	// LabelMarkers open a context block that ends after its batch-size label.
	LabelMarkers []string `mapstructure:"label_markers"`
	// Terminators close a context block.
	Terminators []string `mapstructure:"terminators"`
	// DefaultBatchSize tags records seen before any label.
	DefaultBatchSize int `mapstructure:"default_batch_size"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level"`
	// Debug dumps the effective configuration before running.
	Debug bool `mapstructure:"debug"`
}

// SetDefaults registers every key's default on v. Keys must have a default
// for AutomaticEnv to see them during Unmarshal.
func SetDefaults(v *viper.Viper) {
	d := benchlog.DefaultOptions()
	v.SetDefault("supported_batch_sizes", d.SupportedBatchSizes)
	v.SetDefault("markers", d.Markers)
	v.SetDefault("label_markers", d.LabelMarkers)
	v.SetDefault("terminators", d.Terminators)
	v.SetDefault("default_batch_size", 0)
	v.SetDefault("log_level", logutil.DefaultLogLevel)
	v.SetDefault("debug", false)
}

// Load reads configuration into a Config. When path is non-empty the file is
// read first; its type is taken from the extension (json, yaml, toml).
func Load(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("could not read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("could not parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if len(c.Markers)+len(c.LabelMarkers) == 0 {
		return errors.New("config must contain at least one marker")
	}
	for _, s := range c.SupportedBatchSizes {
		if s <= 0 {
			return fmt.Errorf("supported batch sizes must be positive, got %d", s)
		}
	}
	if c.DefaultBatchSize < 0 {
		return fmt.Errorf("default batch size must not be negative, got %d", c.DefaultBatchSize)
	}
	if _, err := logutil.ConvertToZapLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParserOptions converts the configuration into benchlog parser options.
func (c *Config) ParserOptions(lg *zap.Logger) benchlog.Options {
	return benchlog.Options{
		SupportedBatchSizes: c.SupportedBatchSizes,
		Markers:             c.Markers,
		LabelMarkers:        c.LabelMarkers,
		Terminators:         c.Terminators,
		DefaultBatchSize:    c.DefaultBatchSize,
		Logger:              lg,
	}
}
