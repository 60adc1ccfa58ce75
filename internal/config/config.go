// Package config provides configuration management for formatify.
//
// The configuration is stored in TOML format and supports validation
// and default values for all fields.
package config

import (
	"fmt"
	"math"
	"regexp"
)

// Config is the top-level configuration struct for formatify.
type Config struct {
	Render       RenderConfig       `toml:"render"`
	Limits       LimitsConfig       `toml:"limits"`
	Log          LogConfig          `toml:"log"`
	Output       OutputConfig       `toml:"output"`
	Placeholders PlaceholdersConfig `toml:"placeholders"`
	TUI          TUIConfig          `toml:"tui"`
}

// RenderConfig contains defaults for the render command.
type RenderConfig struct {
	// Strict fails rendering when a referenced key has no value.
	Strict bool `toml:"strict"`

	// NFC normalizes templates and values to Unicode NFC before rendering.
	NFC bool `toml:"nfc"`

	// Interactive prompts for missing values when a terminal is available.
	Interactive bool `toml:"interactive"`

	// Values lists value files loaded before any command line source.
	Values []string `toml:"values"`

	// EnvPrefix, when set, imports environment variables with this prefix.
	EnvPrefix string `toml:"env_prefix"`
}

// LimitsConfig bounds the input the CLI accepts.
type LimitsConfig struct {
	// MaxTemplateBytes is the largest template read from a file or stdin.
	// Zero disables the limit.
	MaxTemplateBytes int `toml:"max_template_bytes"`

	// MaxWidth is the largest alignment width accepted in a directive.
	// Zero disables the limit.
	MaxWidth int `toml:"max_width"`
}

// LogConfig contains diagnostic logging settings.
type LogConfig struct {
	// Level is the minimum level written to stderr.
	// Valid values: "debug", "info", "warn", "error".
	Level string `toml:"level"`

	// Format selects the slog handler.
	// Valid values: "text", "json".
	Format string `toml:"format"`
}

// OutputConfig contains settings for measure and keys output.
type OutputConfig struct {
	// Format is the default output format.
	// Valid values: "table", "json", "plain".
	Format string `toml:"format"`
}

// PlaceholdersConfig contains placeholder checks.
type PlaceholdersConfig struct {
	// Validate maps a key to a regular expression its value must match.
	Validate map[string]string `toml:"validate"`
}

// TUIConfig contains terminal UI settings.
type TUIConfig struct {
	// Enabled controls whether interactive UIs are used (when false, falls back to CLI).
	Enabled bool `toml:"enabled"`

	// ShowHelp controls whether the preview shows its key help line.
	ShowHelp bool `toml:"show_help"`
}

// DefaultConfig returns a Config with all default values set.
func DefaultConfig() *Config {
	return &Config{
		Render: RenderConfig{
			Strict:      false,
			NFC:         false,
			Interactive: false,
			Values:      []string{},
		},
		Limits: LimitsConfig{
			MaxTemplateBytes: 1 << 20,
			MaxWidth:         4096,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
		Output: OutputConfig{
			Format: "table",
		},
		Placeholders: PlaceholdersConfig{
			Validate: map[string]string{},
		},
		TUI: TUIConfig{
			Enabled:  true,
			ShowHelp: true,
		},
	}
}

// Validate checks the configuration for valid values.
// Returns a nil error if the config is valid, or an error describing the problem.
func (c *Config) Validate() error {
	// Limits section
	if c.Limits.MaxTemplateBytes < 0 {
		return fmt.Errorf("limits.max_template_bytes must be >= 0; got %d", c.Limits.MaxTemplateBytes)
	}
	if c.Limits.MaxWidth < 0 {
		return fmt.Errorf("limits.max_width must be >= 0; got %d", c.Limits.MaxWidth)
	}
	if int64(c.Limits.MaxWidth) > math.MaxUint32 {
		return fmt.Errorf("limits.max_width must be <= %d; got %d", uint32(math.MaxUint32), c.Limits.MaxWidth)
	}

	// Log section
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.Log.Level] {
		return fmt.Errorf("log.level must be one of: debug, info, warn, error; got %q", c.Log.Level)
	}
	validLogFormats := map[string]bool{
		"text": true,
		"json": true,
	}
	if !validLogFormats[c.Log.Format] {
		return fmt.Errorf("log.format must be one of: text, json; got %q", c.Log.Format)
	}

	// Output section
	if !ValidOutputFormat(c.Output.Format) {
		return fmt.Errorf("output.format must be one of: table, json, plain; got %q", c.Output.Format)
	}

	// Placeholders section
	for key, pattern := range c.Placeholders.Validate {
		if key == "" {
			return fmt.Errorf("placeholders.validate keys cannot be empty")
		}
		if _, err := regexp.Compile(pattern); err != nil {
			return fmt.Errorf("placeholders.validate.%s: invalid pattern: %w", key, err)
		}
	}

	for i, path := range c.Render.Values {
		if path == "" {
			return fmt.Errorf("render.values[%d] cannot be empty", i)
		}
	}

	return nil
}

// ValidOutputFormat reports whether format names a supported output format.
func ValidOutputFormat(format string) bool {
	switch format {
	case "table", "json", "plain":
		return true
	}
	return false
}
