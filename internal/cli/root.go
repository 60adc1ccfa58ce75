package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRootCommand creates the formatify command with all subcommands.
func NewRootCommand(info VersionInfo) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "formatify",
		Short: "Render %-placeholder templates",
		Long: `formatify replaces %-placeholders in text, in the spirit of git's pretty formats.

  %n                 newline
  %%                 literal '%'
  %(key)             value of key
  %<(width)          left-align the next %(key) to width
  %<(width,trunc)    left-align, cut the tail with '…' if longer
  %>(width)          right-align the next %(key) to width
  %>(width,trunc)    right-align, cut the tail with '…' if longer
  %>(width,ltrunc)   right-align, cut the head with '…' if longer

Malformed placeholders and keys without a value are kept as written.`,
		Version:      fmt.Sprintf("%s (commit: %s, built: %s)", info.Version, info.Commit, info.Date),
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	// Add global flags
	AddGlobalFlags(rootCmd)

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	// Add subcommands
	rootCmd.AddCommand(NewRenderCommand())
	rootCmd.AddCommand(NewMeasureCommand())
	rootCmd.AddCommand(NewKeysCommand())
	rootCmd.AddCommand(NewCheckCommand())
	rootCmd.AddCommand(NewPreviewCommand())
	rootCmd.AddCommand(NewValuesCommand())
	rootCmd.AddCommand(NewInitCommand())
	rootCmd.AddCommand(NewVersionCommand(info))

	return rootCmd
}
