package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/AdrianMeDev/dev-env/internal/logger"
)

// debug flag indicates whether debug logging should be enabled.
// It can be toggled via the `--debug` command-line flag.
var debug bool

// configPath holds the path to the configuration YAML file, passed via the
// `--config` or `-c` flag. Empty means the default location under the XDG
// config directory, which may legitimately not exist.
var configPath string

// dryRun indicates whether mutating operations should be logged instead of
// executed. It can be toggled via the `--dry-run` command-line flag.
var dryRun bool

// rootCmd is the base command for the CLI tool `dev-env`.
// It sets up the root-level CLI structure and provides global flags.
var rootCmd = &cobra.Command{
	Use:   "dev-env",                          // The name of the CLI tool
	Short: "Developer machine bootstrap tool", // Short description shown in help output
	Long: `dev-env provisions a fresh Ubuntu or WSL machine: system packages,
shell, editor, terminal multiplexer, clipboard bridge and dotfiles, run as a
fixed fail-fast pipeline of idempotent stages. Re-running after a failure is
always safe; finished work is detected and skipped.`,

	// A failed stage already logged its own diagnostics; repeating the
	// usage text underneath would only bury them.
	SilenceUsage: true,

	// PersistentPreRun is a hook that runs before any subcommand.
	// Here, we initialize the logger based on the debug flag.
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(debug) // Set up logging (verbose if --debug is true)
	},
}

// Execute initializes flags and starts the command execution. It's the entry
// point for the CLI when invoked by the user. A failed command exits
// non-zero so scripted callers see the failure.
func Execute() {
	// Register the global flags before any command is executed.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to configuration file")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Log what would be done without doing it")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
