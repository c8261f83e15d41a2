package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the top-level apisurf command.
func NewRootCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apisurf",
		Short: "API surface extraction tool",
		Long:  "Apisurf extracts the documented API surface of a multi-module project into one structured artifact.",
	}

	cmd.Version = version

	return cmd
}
