package cli

import (
	"context"

	"github.com/spf13/cobra"
	"golang.org/x/mod/semver"

	"github.com/apisurf-labs/apisurf/pkg/errors"
)

// ExtractGoOptions holds the parsed flags for "extract go". Exactly one of
// Project or Module must be set; Module mode fetches the source from the Go
// module proxy.
type ExtractGoOptions struct {
	Project string
	Module  string
	Version string
	Out     string
	Indent  int
}

// ExtractGoRunFunc is the handler signature for the extract go command.
// It is injected by the wiring layer (cmd/apisurf/main.go).
type ExtractGoRunFunc func(ctx context.Context, opts ExtractGoOptions) error

// NewExtractGoCmd creates the "extract go" subcommand.
func NewExtractGoCmd(runFunc ExtractGoRunFunc) *cobra.Command {
	var opts ExtractGoOptions

	cmd := &cobra.Command{
		Use:   "go",
		Short: "Extract the API surface of a Go module",
		Long:  "Extract the exported declarations of every package in a Go module, from a local tree or a module@version fetched from the proxy.",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return validateExtractGoFlags(opts)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFunc(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.Project, "project", "", "Path to a local module root")
	cmd.Flags().StringVar(&opts.Module, "module", "", "Go module path to fetch from the proxy")
	cmd.Flags().StringVar(&opts.Version, "version", "", "Module version to fetch (with --module)")
	cmd.Flags().StringVar(&opts.Out, "out", "", "Output artifact path (default from config; required with --module)")
	cmd.Flags().IntVar(&opts.Indent, "indent", 0, "Serializer indent width (default from config)")

	return cmd
}

func validateExtractGoFlags(opts ExtractGoOptions) error {
	switch {
	case opts.Project == "" && opts.Module == "":
		return errors.New("one of --project or --module is required")
	case opts.Project != "" && opts.Module != "":
		return errors.New("--project and --module are mutually exclusive")
	}

	if opts.Module != "" {
		if opts.Version == "" {
			return errors.New("--version is required with --module")
		}
		if !semver.IsValid(opts.Version) {
			return errors.Newf("--version %q is not a valid semantic version (e.g. v1.2.3)", opts.Version)
		}
		if opts.Out == "" {
			// Fetched modules extract to a temp directory, so there is no
			// project root to anchor a default artifact path.
			return errors.New("--out is required with --module")
		}
		return nil
	}

	return validateProjectDir(opts.Project)
}
