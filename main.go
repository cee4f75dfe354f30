package main

import (
	"github.com/AdrianMeDev/dev-env/cmd" // Import the cmd package which contains the CLI commands and execution logic
)

// main is the program entry point.
// It delegates to cmd.Execute() which handles command line argument parsing and execution.
//
// This design cleanly separates the CLI interface (cmd package) from main,
// allowing easier testing, extension, and reuse of the CLI commands.
//
// The dev-env project is a personal machine-bootstrap tool that provisions a
// fresh Ubuntu or WSL installation into a ready development environment:
//   - Runs a fixed pipeline of stages: system update, core utilities, shell,
//     editor, terminal multiplexer, clipboard bridge, and dotfiles
//   - Installs packages through apt/nala and snap, and single-binary tools by
//     downloading release assets from GitHub and extracting them directly
//   - Installs the shell configuration framework and its plugins, and makes
//     the configured shell the account's login shell
//   - Detects WSL via the kernel version string and installs the Windows
//     clipboard bridge only there
//   - Clones the operator's dotfiles repository on first run and never
//     touches an existing clone
//
// Error handling strategy:
//   - Every stage is idempotent: work already done is detected by cheap
//     existence checks and skipped, so re-running after a failure is safe
//   - The pipeline is fail-fast: the first stage error stops the run and the
//     program exits non-zero, with the failing stage named in the error
//   - Optional pieces (shell plugins, dotfiles) degrade to warnings instead
//     of failing the run
//
// Integration points:
//   - Drives apt, nala, snap, chsh, git and sh through the system backend,
//     streaming their output so their own diagnostics stay visible
//   - Talks to the GitHub releases API to resolve the latest version of
//     single-binary tools
//   - Appends the multiplexer auto-start hook to the shell rc file, guarded
//     so repeated runs never duplicate it
//
// All machine access goes through an execution backend interface, so the same
// pipeline can run for real, be logged as a dry-run plan, or be driven fully
// in-memory by tests.
func main() {
	cmd.Execute()
}
