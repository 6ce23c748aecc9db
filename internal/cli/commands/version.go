package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/declint/pkg/lint"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display declint version and build information.`,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "declint v%s\n", version)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Declaration convention linter for Rails models and routes (%d rules, %s)\n",
				lint.Count(), runtime.Version())
		},
	}
}
