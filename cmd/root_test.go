package cmd

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// findCommand looks up a direct subcommand by name.
func findCommand(t *testing.T, parent *cobra.Command, name string) *cobra.Command {
	t.Helper()
	for _, cmd := range parent.Commands() {
		if cmd.Name() == name {
			return cmd
		}
	}
	t.Fatalf("no %q command under %q", name, parent.Name())
	return nil
}

func TestRootRegistersCommands(t *testing.T) {
	findCommand(t, rootCmd, "bootstrap")
	findCommand(t, rootCmd, "status")
}

func TestBootstrapRegistersStageSubcommands(t *testing.T) {
	bootstrap := findCommand(t, rootCmd, "bootstrap")

	var names []string
	for _, cmd := range bootstrap.Commands() {
		names = append(names, cmd.Name())
	}
	// One subcommand per pipeline stage.
	assert.ElementsMatch(t, []string{
		"system", "packages", "shell", "editor", "multiplexer", "clipboard", "dotfiles",
	}, names)
}

func TestBootstrapHasDotfilesRepoFlag(t *testing.T) {
	bootstrap := findCommand(t, rootCmd, "bootstrap")

	flag := bootstrap.PersistentFlags().Lookup("dotfiles-repo")
	require.NotNil(t, flag)
	assert.Empty(t, flag.DefValue)
}
