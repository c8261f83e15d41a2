// Package extract runs the extraction pipeline: enumerate a project's
// module entry files, format every exported declaration, and assemble the
// ordered output document. The whole run is one pure fold over discovered
// modules; no state survives it.
package extract

import (
	"context"

	"github.com/apisurf-labs/apisurf/core/analyzer"
	"github.com/apisurf-labs/apisurf/core/apidoc"
	"github.com/apisurf-labs/apisurf/pkg/errors"
)

// Run discovers every module entry under projectRoot with the given
// analyzer and folds the formatted exports into one document. Record order
// is module discovery order, then export enumeration order; overload order
// within a record is source order.
func Run(ctx context.Context, src analyzer.SourceAnalyzer, projectRoot string) (apidoc.Document, error) {
	entries, err := src.ListEntryFiles(ctx, projectRoot)
	if err != nil {
		return apidoc.Document{}, err
	}

	var records []apidoc.Record
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return apidoc.Document{}, err
		}

		exports, err := src.ExportedDeclarations(ctx, entry)
		if err != nil {
			return apidoc.Document{}, errors.Wrapf(err, "enumerating exports of %s", entry.Path)
		}

		for _, exp := range exports {
			record, err := assemble(entry.Module, exp)
			if err != nil {
				return apidoc.Document{}, err
			}
			records = append(records, record)
		}
	}

	return apidoc.Document{Records: records}, nil
}

// assemble builds one output record for an exported name. The kind tag is
// taken from the first declaration; kind is uniform across overloads.
func assemble(module string, exp analyzer.Export) (apidoc.Record, error) {
	if len(exp.Decls) == 0 {
		return apidoc.Record{}, errors.AssertionFailedf(
			"export %s.%s has no declarations", module, exp.Name)
	}

	sigs := make([]string, 0, len(exp.Decls))
	for _, decl := range exp.Decls {
		sig, err := Format(decl)
		if err != nil {
			return apidoc.Record{}, errors.Wrapf(err, "formatting %s.%s", module, exp.Name)
		}
		sigs = append(sigs, sig)
	}

	return apidoc.Record{
		Module:     module,
		API:        exp.Name,
		Kind:       exp.Decls[0].KindTag,
		Signatures: sigs,
	}, nil
}
