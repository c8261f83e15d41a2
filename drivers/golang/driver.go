// Package golang implements the source analyzer for Go modules. Every
// non-internal package is one module unit named by its import path; the
// exported surface is rendered from the AST with a canonical type
// renderer, so no declaration body ever reaches the formatter.
package golang

import (
	"context"
	"os"

	"github.com/charmbracelet/log"

	"github.com/apisurf-labs/apisurf/core/analyzer"
	"github.com/apisurf-labs/apisurf/pkg/archive"
	"github.com/apisurf-labs/apisurf/pkg/errors"
	"github.com/apisurf-labs/apisurf/pkg/goproxy"
)

var _ analyzer.SourceAnalyzer = (*Analyzer)(nil)

// Analyzer extracts the exported surface of a Go module, either from a
// local source tree or from a module zip fetched via the Go module proxy.
type Analyzer struct {
	proxyClient *goproxy.Client
	logger      *log.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLogger overrides the diagnostic logger.
func WithLogger(logger *log.Logger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewAnalyzer creates an Analyzer with a default goproxy client.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{
		proxyClient: goproxy.NewClient(),
		logger:      log.NewWithOptions(os.Stderr, log.Options{Prefix: "golang"}),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// FetchModule downloads module@version from the proxy chain and extracts it
// to a temp directory suitable for ListEntryFiles. The cleanup function
// removes the temp directory.
func (a *Analyzer) FetchModule(ctx context.Context, module, version string) (string, func(), error) {
	data, err := a.proxyClient.DownloadZip(ctx, module, version)
	if err != nil {
		return "", nil, errors.Wrapf(err, "downloading zip for %s@%s", module, version)
	}

	dir, cleanup, err := archive.ExtractZip(data, version)
	if err != nil {
		return "", nil, errors.Wrapf(err, "extracting zip for %s@%s", module, version)
	}

	return dir, cleanup, nil
}
