package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	fmterrors "github.com/chgroeling/formatify/internal/errors"
)

// Write writes the config to a file in TOML format.
func Write(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return &fmterrors.ConfigError{Path: path, Err: fmt.Errorf("failed to create config directory: %w", err)}
	}

	data, err := Encode(cfg)
	if err != nil {
		return &fmterrors.ConfigError{Path: path, Err: err}
	}

	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		return &fmterrors.ConfigError{Path: path, Err: fmt.Errorf("failed to write config file: %w", err)}
	}

	return nil
}

// Encode returns cfg as a TOML document.
func Encode(cfg *Config) (string, error) {
	var buf strings.Builder
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return "", fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.String(), nil
}
