package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/apisurf-labs/apisurf/core/apidoc"
	"github.com/apisurf-labs/apisurf/core/cli"
	"github.com/apisurf-labs/apisurf/core/config"
	"github.com/apisurf-labs/apisurf/core/extract"
	golangdriver "github.com/apisurf-labs/apisurf/drivers/golang"
	tsdriver "github.com/apisurf-labs/apisurf/drivers/typescript"
)

const version = "0.1.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "apisurf"})

	runExtractTS := func(ctx context.Context, opts cli.ExtractTSOptions) error {
		cfg, err := config.Load(opts.Project)
		if err != nil {
			return err
		}
		applyOverrides(&cfg, opts.Entry, opts.Out, opts.Indent)

		analyzer := tsdriver.NewAnalyzer(
			tsdriver.WithEntryFile(cfg.Entry),
			tsdriver.WithLogger(logger),
		)

		doc, err := extract.Run(ctx, analyzer, opts.Project)
		if err != nil {
			return err
		}

		out := cfg.OutputPath(opts.Project)
		if err := apidoc.Write(doc, apidoc.Style{Indent: cfg.Indent}, out); err != nil {
			return err
		}

		logger.Info("surface extracted", "records", len(doc.Records), "out", out)
		return nil
	}

	runExtractGo := func(ctx context.Context, opts cli.ExtractGoOptions) error {
		analyzer := golangdriver.NewAnalyzer(golangdriver.WithLogger(logger))

		root := opts.Project
		outBase := opts.Project
		if opts.Module != "" {
			logger.Info("downloading module", "module", opts.Module, "version", opts.Version)
			dir, cleanup, err := analyzer.FetchModule(ctx, opts.Module, opts.Version)
			if err != nil {
				return err
			}
			defer cleanup()
			root = dir
			// --out is mandatory in module mode; a relative path resolves
			// against the working directory.
			outBase = "."
		}

		cfg, err := config.Load(root)
		if err != nil {
			return err
		}
		applyOverrides(&cfg, "", opts.Out, opts.Indent)

		doc, err := extract.Run(ctx, analyzer, root)
		if err != nil {
			return err
		}

		out := cfg.OutputPath(outBase)
		if err := apidoc.Write(doc, apidoc.Style{Indent: cfg.Indent}, out); err != nil {
			return err
		}

		logger.Info("surface extracted", "records", len(doc.Records), "out", out)
		return nil
	}

	root := cli.NewRootCmd(version)
	extractCmd := cli.NewExtractCmd()
	extractCmd.AddCommand(cli.NewExtractTSCmd(runExtractTS))
	extractCmd.AddCommand(cli.NewExtractGoCmd(runExtractGo))
	root.AddCommand(extractCmd)

	if err := root.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// applyOverrides layers non-zero CLI flags over the resolved config.
func applyOverrides(cfg *config.Config, entry, out string, indent int) {
	if entry != "" {
		cfg.Entry = entry
	}
	if out != "" {
		cfg.Output = out
	}
	if indent > 0 {
		cfg.Indent = indent
	}
}
