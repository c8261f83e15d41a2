// Package typescript implements the source analyzer for TypeScript
// projects. Modules follow the barrel convention: one fixed-name entry file
// (index.ts by default) per module directory, re-exporting the module's
// documented surface.
package typescript

import (
	"context"
	"os"

	"github.com/charmbracelet/log"

	"github.com/apisurf-labs/apisurf/core/analyzer"
	"github.com/apisurf-labs/apisurf/pkg/errors"
)

var _ analyzer.SourceAnalyzer = (*Analyzer)(nil)

// Analyzer discovers barrel files and enumerates their exported
// declarations through a tree-sitter parse.
type Analyzer struct {
	entryFile string
	logger    *log.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithEntryFile overrides the barrel filename convention.
func WithEntryFile(name string) Option {
	return func(a *Analyzer) {
		if name != "" {
			a.entryFile = name
		}
	}
}

// WithLogger overrides the diagnostic logger.
func WithLogger(logger *log.Logger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewAnalyzer creates an Analyzer with the default index.ts convention.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{
		entryFile: "index.ts",
		logger:    log.NewWithOptions(os.Stderr, log.Options{Prefix: "typescript"}),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ExportedDeclarations parses one barrel file and returns its exported
// surface in source order.
func (a *Analyzer) ExportedDeclarations(ctx context.Context, entry analyzer.ModuleEntry) ([]analyzer.Export, error) {
	source, err := os.ReadFile(entry.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading entry file %s", entry.Path)
	}

	file, err := parseFile(ctx, source)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", entry.Path)
	}
	defer file.close()

	if file.hasErrors() {
		a.logger.Warn("entry file contains syntax errors, extracting what parsed", "path", entry.Path)
	}

	return file.exports(), nil
}
