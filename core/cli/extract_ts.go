package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/apisurf-labs/apisurf/pkg/errors"
)

// ExtractTSOptions holds the parsed flags for "extract ts".
type ExtractTSOptions struct {
	Project string
	Out     string
	Entry   string
	Indent  int
}

// ExtractTSRunFunc is the handler signature for the extract ts command.
// It is injected by the wiring layer (cmd/apisurf/main.go).
type ExtractTSRunFunc func(ctx context.Context, opts ExtractTSOptions) error

// NewExtractTSCmd creates the "extract ts" subcommand.
func NewExtractTSCmd(runFunc ExtractTSRunFunc) *cobra.Command {
	var opts ExtractTSOptions

	cmd := &cobra.Command{
		Use:   "ts",
		Short: "Extract the API surface of a TypeScript project",
		Long:  "Extract the exported declarations of every barrel file in a TypeScript project.",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return validateProjectDir(opts.Project)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFunc(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.Project, "project", "", "Path to the project root (required)")
	cmd.Flags().StringVar(&opts.Out, "out", "", "Output artifact path (default from config)")
	cmd.Flags().StringVar(&opts.Entry, "entry", "", "Barrel filename convention (default from config)")
	cmd.Flags().IntVar(&opts.Indent, "indent", 0, "Serializer indent width (default from config)")

	cmd.MarkFlagRequired("project")

	return cmd
}

func validateProjectDir(project string) error {
	if project == "" {
		return errors.New("--project is required")
	}

	info, err := os.Stat(project)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Newf("project path does not exist: %s", project)
		}
		return errors.Wrap(err, "cannot access project path")
	}
	if !info.IsDir() {
		return errors.Newf("project path is not a directory: %s", project)
	}

	return nil
}
