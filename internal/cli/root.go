// Package cli provides the Cobra command structure for vuelint.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/vuelint/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root vuelint command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "vuelint",
		Short: "A self-fixing linter for Vue template attribute quotes",
		Long: `vuelint checks the quote characters around attribute values in Vue
single-file component templates and plain HTML documents.

Every attribute value must be enclosed by the configured quote style, double
or single. Offending values are rewritten safely: literal values escape the
chosen quote as a character reference, bound expressions swap their inner
quotes instead. Fixes are checked for conflicts, can be previewed as a diff,
and leave an optional backup behind.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newLintCommand(info))
	rootCmd.AddCommand(newRulesCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newMigrateCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	applyHelp(rootCmd)

	return rootCmd
}
