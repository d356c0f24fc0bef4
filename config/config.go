// Package config loads varlinage settings from an optional file and VARLINAGE_* environment variables.
package config

import (
	"fmt"
	"github.com/spf13/viper"
	"github.com/viant/varlinage/trace"
	"io"
	"log/slog"
	"strings"
)

// EnvPrefix prefixes environment variables, e.g. VARLINAGE_SLICE_MAXSTEPS
const EnvPrefix = "VARLINAGE"

// Config represents varlinage configuration
type Config struct {
	Sentinel string  `mapstructure:"sentinel" yaml:"sentinel"`
	Slice    Slice   `mapstructure:"slice" yaml:"slice"`
	Log      Logging `mapstructure:"log" yaml:"log"`
	Output   Output  `mapstructure:"output" yaml:"output"`
}

// Slice represents slicing settings
type Slice struct {
	MaxSteps int `mapstructure:"maxSteps" yaml:"maxSteps"` // 0 means unlimited
}

// Logging represents logger settings
type Logging struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"` // text or json
}

// Output represents flow serialization settings
type Output struct {
	Format string `mapstructure:"format" yaml:"format"`
	URL    string `mapstructure:"url" yaml:"url"` // empty writes to stdout
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Sentinel: trace.DefaultSentinel,
		Log: Logging{
			Level:  "warn",
			Format: "text",
		},
		Output: Output{
			Format: "jsonl",
		},
	}
}

// Load loads configuration, file is optional (yaml, json or toml by extension)
func Load(file string) (*Config, error) {
	v := viper.New()
	defaults := DefaultConfig()
	v.SetDefault("sentinel", defaults.Sentinel)
	v.SetDefault("slice.maxSteps", defaults.Slice.MaxSteps)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.format", defaults.Log.Format)
	v.SetDefault("output.format", defaults.Output.Format)
	v.SetDefault("output.url", defaults.Output.URL)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %v: %w", file, err)
		}
	}
	ret := &Config{}
	if err := v.Unmarshal(ret); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return ret, ret.Validate()
}

// Validate checks configuration values
func (c *Config) Validate() error {
	if c.Sentinel == "" {
		return fmt.Errorf("sentinel was empty")
	}
	if c.Slice.MaxSteps < 0 {
		return fmt.Errorf("invalid slice.maxSteps: %v", c.Slice.MaxSteps)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported log format: %q", c.Log.Format)
	}
	return nil
}

// Logger creates a logger writing to w as configured
func (c *Config) Logger(w io.Writer) *slog.Logger {
	options := &slog.HandlerOptions{Level: LevelFromString(c.Log.Level)}
	if strings.ToLower(c.Log.Format) == "json" {
		return slog.New(slog.NewJSONHandler(w, options))
	}
	return slog.New(slog.NewTextHandler(w, options))
}

// LevelFromString converts a level name to slog.Level, info for unrecognized names
func LevelFromString(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
