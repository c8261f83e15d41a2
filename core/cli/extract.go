package cli

import (
	"github.com/spf13/cobra"
)

// NewExtractCmd creates the "extract" parent command.
func NewExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract a project's exported API surface",
		Long:  "Extract every exported declaration reachable from a project's module entry points and write the canonical surface document.",
	}

	return cmd
}
