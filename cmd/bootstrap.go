package cmd

import (
	"github.com/spf13/cobra"

	"github.com/AdrianMeDev/dev-env/internal/config"
	"github.com/AdrianMeDev/dev-env/internal/provision"
	"github.com/AdrianMeDev/dev-env/internal/system"
)

// dotfilesRepo optionally overrides the dotfiles repository URL from the
// config file and environment. It's passed via the `--dotfiles-repo` flag.
var dotfilesRepo string

// newProvisioner assembles the execution backend and effective configuration
// shared by the bootstrap and status commands.
func newProvisioner() (*provision.Provisioner, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if dotfilesRepo != "" {
		cfg.Dotfiles.Repo = dotfilesRepo
	}

	var sys system.System = system.NewOS()
	if dryRun {
		sys = system.NewDryRun(sys)
	}
	return provision.New(sys, cfg), nil
}

// runStage looks up a single named stage and runs it with its banner.
func runStage(name string) error {
	p, err := newProvisioner()
	if err != nil {
		return err
	}
	stage, err := p.Stage(name)
	if err != nil {
		return err
	}
	return provision.Run([]provision.Stage{stage})
}

// bootstrapCmd runs the full provisioning pipeline in its fixed order.
var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "Provision this machine (packages, shell, editor, multiplexer, clipboard, dotfiles)",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newProvisioner()
		if err != nil {
			return err
		}
		return provision.Run(p.Stages())
	},
}

// The granular subcommands below run a single stage, for redoing one concern
// without sitting through the whole pipeline.

// bootstrapSystemCmd refreshes the package index and upgrades packages.
var bootstrapSystemCmd = &cobra.Command{
	Use:   "system",
	Short: "Refresh the package index and upgrade installed packages",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStage(provision.StageSystemUpdate)
	},
}

// bootstrapPackagesCmd installs the core command-line utilities.
var bootstrapPackagesCmd = &cobra.Command{
	Use:   "packages",
	Short: "Install the core command-line utilities and compatibility links",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStage(provision.StageCoreUtilities)
	},
}

// bootstrapShellCmd installs the shell, its framework and plugins.
var bootstrapShellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Install the shell, make it the login shell, install framework and plugins",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStage(provision.StageShell)
	},
}

// bootstrapEditorCmd installs the editor snap and the git TUI.
var bootstrapEditorCmd = &cobra.Command{
	Use:   "editor",
	Short: "Install the editor snap and the git TUI from its latest release",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStage(provision.StageEditor)
	},
}

// bootstrapMultiplexerCmd installs the terminal multiplexer.
var bootstrapMultiplexerCmd = &cobra.Command{
	Use:   "multiplexer",
	Short: "Install the terminal multiplexer, its config and auto-start hook",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStage(provision.StageMultiplexer)
	},
}

// bootstrapClipboardCmd installs the WSL clipboard bridge.
var bootstrapClipboardCmd = &cobra.Command{
	Use:   "clipboard",
	Short: "Install the Windows clipboard bridge (WSL only)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStage(provision.StageClipboard)
	},
}

// bootstrapDotfilesCmd clones the dotfiles repository.
var bootstrapDotfilesCmd = &cobra.Command{
	Use:   "dotfiles",
	Short: "Clone the dotfiles repository",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStage(provision.StageDotfiles)
	},
}

// init sets up CLI flags and adds subcommands to the root command.
func init() {
	// The override flag lives on bootstrap so `status` keeps reporting
	// against the configured value.
	bootstrapCmd.PersistentFlags().StringVar(&dotfilesRepo, "dotfiles-repo", "",
		"Dotfiles repository URL (overrides config file and "+config.EnvDotfilesRepo+")")

	// Add subcommands for more granular control
	bootstrapCmd.AddCommand(bootstrapSystemCmd)
	bootstrapCmd.AddCommand(bootstrapPackagesCmd)
	bootstrapCmd.AddCommand(bootstrapShellCmd)
	bootstrapCmd.AddCommand(bootstrapEditorCmd)
	bootstrapCmd.AddCommand(bootstrapMultiplexerCmd)
	bootstrapCmd.AddCommand(bootstrapClipboardCmd)
	bootstrapCmd.AddCommand(bootstrapDotfilesCmd)
	// Register the `bootstrap` command with the root command
	rootCmd.AddCommand(bootstrapCmd)
}
