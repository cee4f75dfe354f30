package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// statusCmd reports which provisioning guards are currently satisfied on this
// machine. It is read-only and always exits zero when the probes themselves
// work; missing pieces are information, not failure.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which provisioning steps are already done",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newProvisioner()
		if err != nil {
			return err
		}

		done := color.New(color.FgGreen).PrintfFunc()
		missing := color.New(color.FgHiMagenta).PrintfFunc()
		for _, check := range p.Checks() {
			if check.OK {
				done("  ✓ %-20s %s\n", check.Name, check.Detail)
			} else {
				missing("  ✗ %-20s %s\n", check.Name, check.Detail)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
