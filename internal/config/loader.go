package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	fmterrors "github.com/chgroeling/formatify/internal/errors"
)

// EnvPrefix is the prefix of environment variables that override config fields.
const EnvPrefix = "FORMATIFY_"

// DefaultConfigPath returns the path the config is expected at, whether or
// not it exists: $XDG_CONFIG_HOME/formatify/config.toml when XDG_CONFIG_HOME
// is set, else ~/.config/formatify/config.toml.
func DefaultConfigPath() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "formatify", "config.toml"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "formatify", "config.toml"), nil
}

// DetectConfigPath returns the default config path if a file exists there,
// or empty string if none exists (caller should use defaults).
func DetectConfigPath() string {
	configPath, err := DefaultConfigPath()
	if err != nil {
		return ""
	}
	if _, err := os.Stat(configPath); err == nil {
		return configPath
	}
	return ""
}

// Load loads a config from the specified path.
// If the file doesn't exist, returns an error wrapping ErrNotFound.
// After loading, applies environment variable overrides and validates.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &fmterrors.ConfigError{Path: path, Err: fmterrors.ErrNotFound}
		}
		return nil, &fmterrors.ConfigError{Path: path, Err: fmt.Errorf("%w: %v", fmterrors.ErrIO, err)}
	}

	// Start with defaults
	cfg := DefaultConfig()

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, &fmterrors.ConfigError{Path: path, Err: fmt.Errorf("failed to parse: %w", err)}
	}

	applyEnvOverrides(cfg)
	expandPaths(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, &fmterrors.ConfigError{Path: path, Err: fmt.Errorf("%w: %v", fmterrors.ErrInvalid, err)}
	}

	return cfg, nil
}

// LoadWithDefaults loads the config at path, or at the default location when
// path is empty. A missing default config yields the defaults; an explicitly
// named config must exist.
func LoadWithDefaults(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}

	configPath := DetectConfigPath()
	if configPath == "" {
		cfg := DefaultConfig()
		applyEnvOverrides(cfg)
		expandPaths(cfg)
		if err := cfg.Validate(); err != nil {
			return nil, &fmterrors.ConfigError{Err: fmt.Errorf("%w: %v", fmterrors.ErrInvalid, err)}
		}
		return cfg, nil
	}

	return Load(configPath)
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables follow the pattern: FORMATIFY_<SECTION>_<FIELD>
//
// Examples:
// - FORMATIFY_LOG_LEVEL overrides [log].level
// - FORMATIFY_LIMITS_MAX_WIDTH overrides [limits].max_width
// - FORMATIFY_RENDER_VALUES overrides [render].values (comma-separated)
//
// Boolean fields: use "true"/"false" strings
func applyEnvOverrides(c *Config) {
	applyString := func(key string, target *string) {
		if val, ok := os.LookupEnv(EnvPrefix + key); ok && val != "" {
			*target = val
		}
	}

	applyBool := func(key string, target *bool) {
		if val, ok := os.LookupEnv(EnvPrefix + key); ok && val != "" {
			switch strings.ToLower(val) {
			case "true", "1", "yes", "on":
				*target = true
			case "false", "0", "no", "off":
				*target = false
			}
		}
	}

	applyInt := func(key string, target *int) {
		if val, ok := os.LookupEnv(EnvPrefix + key); ok && val != "" {
			if i, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
				*target = i
			}
		}
	}

	applyList := func(key string, target *[]string) {
		if val, ok := os.LookupEnv(EnvPrefix + key); ok && val != "" {
			var list []string
			for _, item := range strings.Split(val, ",") {
				if item = strings.TrimSpace(item); item != "" {
					list = append(list, item)
				}
			}
			*target = list
		}
	}

	// Render section
	applyBool("RENDER_STRICT", &c.Render.Strict)
	applyBool("RENDER_NFC", &c.Render.NFC)
	applyBool("RENDER_INTERACTIVE", &c.Render.Interactive)
	applyList("RENDER_VALUES", &c.Render.Values)
	applyString("RENDER_ENV_PREFIX", &c.Render.EnvPrefix)

	// Limits section
	applyInt("LIMITS_MAX_TEMPLATE_BYTES", &c.Limits.MaxTemplateBytes)
	applyInt("LIMITS_MAX_WIDTH", &c.Limits.MaxWidth)

	// Log section
	applyString("LOG_LEVEL", &c.Log.Level)
	applyString("LOG_FORMAT", &c.Log.Format)

	// Output section
	applyString("OUTPUT_FORMAT", &c.Output.Format)

	// TUI section
	applyBool("TUI_ENABLED", &c.TUI.Enabled)
	applyBool("TUI_SHOW_HELP", &c.TUI.ShowHelp)
}

// expandPaths expands ~ to the home directory in value file paths.
func expandPaths(c *Config) {
	for i, p := range c.Render.Values {
		c.Render.Values[i] = ExpandHome(p)
	}
}

// ExpandHome replaces a leading "~" or "~/" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(homeDir, strings.TrimPrefix(strings.TrimPrefix(path, "~"), "/"))
}
