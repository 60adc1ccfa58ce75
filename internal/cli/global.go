// Package cli provides global state and utilities for CLI commands.
package cli

import (
	"sync"

	"github.com/spf13/cobra"
)

var (
	// NoTUI indicates that TUI/interactive mode should be disabled.
	// This is set by the global --no-tui flag.
	NoTUI bool

	// ConfigPath is the config file named by the global --config flag.
	ConfigPath string

	// LogLevel and LogFormat override the [log] config section when set.
	LogLevel  string
	LogFormat string

	// globalsMutex protects the globals above for concurrent access.
	globalsMutex sync.RWMutex
)

// AddGlobalFlags adds global flags to a command.
func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVar(&NoTUI, "no-tui", false,
		"disable TUI/interactive mode; use plain text or JSON output")
	cmd.PersistentFlags().StringVar(&ConfigPath, "config", "",
		"config file path (default ~/.config/formatify/config.toml)")
	cmd.PersistentFlags().StringVar(&LogLevel, "log-level", "",
		"diagnostic log level: debug, info, warn, error")
	cmd.PersistentFlags().StringVar(&LogFormat, "log-format", "",
		"diagnostic log format: text, json")
}

// IsNoTUI returns true if TUI mode is disabled.
func IsNoTUI() bool {
	globalsMutex.RLock()
	defer globalsMutex.RUnlock()
	return NoTUI
}

// globalOptions is a snapshot of the global flags.
type globalOptions struct {
	ConfigPath string
	LogLevel   string
	LogFormat  string
	NoTUI      bool
}

func currentGlobals() globalOptions {
	globalsMutex.RLock()
	defer globalsMutex.RUnlock()
	return globalOptions{
		ConfigPath: ConfigPath,
		LogLevel:   LogLevel,
		LogFormat:  LogFormat,
		NoTUI:      NoTUI,
	}
}
