package extract

import (
	"context"
	"testing"

	"github.com/apisurf-labs/apisurf/core/analyzer"
	"github.com/apisurf-labs/apisurf/pkg/errors"
)

// fakeAnalyzer serves canned entries and exports keyed by entry path.
type fakeAnalyzer struct {
	entries []analyzer.ModuleEntry
	exports map[string][]analyzer.Export

	listErr error
	enumErr error
}

func (f *fakeAnalyzer) ListEntryFiles(ctx context.Context, root string) ([]analyzer.ModuleEntry, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.entries, nil
}

func (f *fakeAnalyzer) ExportedDeclarations(ctx context.Context, entry analyzer.ModuleEntry) ([]analyzer.Export, error) {
	if f.enumErr != nil {
		return nil, f.enumErr
	}
	return f.exports[entry.Path], nil
}

func TestRun_RecordOrderAndContent(t *testing.T) {
	src := &fakeAnalyzer{
		entries: []analyzer.ModuleEntry{
			{Module: "geometry", Path: "geometry/index.ts"},
			{Module: "widgets", Path: "widgets/index.ts"},
		},
		exports: map[string][]analyzer.Export{
			"geometry/index.ts": {
				{Name: "Shape", Decls: []analyzer.Declaration{
					{Kind: analyzer.KindInterface, KindTag: "InterfaceDeclaration", Name: "Shape"},
				}},
			},
			"widgets/index.ts": {
				{Name: "add", Decls: []analyzer.Declaration{
					{
						Kind:    analyzer.KindFunction,
						KindTag: "FunctionDeclaration",
						Name:    "add",
						Text:    "export function add(a: number, b: number): number { return a+b; }",
						Body:    "{ return a+b; }",
					},
				}},
				{Name: "VERSION", Decls: []analyzer.Declaration{
					{Kind: analyzer.KindVariable, KindTag: "VariableDeclaration", Name: "VERSION", ResolvedType: "string"},
				}},
			},
		},
	}

	doc, err := Run(context.Background(), src, "/project")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(doc.Records) != 3 {
		t.Fatalf("got %d records, want 3", len(doc.Records))
	}

	wantOrder := []string{"Shape", "add", "VERSION"}
	for i, record := range doc.Records {
		if record.API != wantOrder[i] {
			t.Errorf("record %d API = %q, want %q", i, record.API, wantOrder[i])
		}
	}

	add := doc.Records[1]
	if add.Module != "widgets" || add.Kind != "FunctionDeclaration" {
		t.Errorf("add record = %+v", add)
	}
	if len(add.Signatures) != 1 || add.Signatures[0] != "function add(a: number, b: number): number;" {
		t.Errorf("add signatures = %q", add.Signatures)
	}
}

func TestRun_OverloadsStayInOneRecord(t *testing.T) {
	src := &fakeAnalyzer{
		entries: []analyzer.ModuleEntry{{Module: "util", Path: "util/index.ts"}},
		exports: map[string][]analyzer.Export{
			"util/index.ts": {
				{Name: "pick", Decls: []analyzer.Declaration{
					{Kind: analyzer.KindFunction, KindTag: "FunctionDeclaration", Name: "pick", Text: "export function pick(x: string): string;"},
					{Kind: analyzer.KindFunction, KindTag: "FunctionDeclaration", Name: "pick", Text: "export function pick(x: number): number;"},
					{Kind: analyzer.KindFunction, KindTag: "FunctionDeclaration", Name: "pick", Text: "export function pick(x: any): any { return x; }", Body: "{ return x; }"},
				}},
			},
		},
	}

	doc, err := Run(context.Background(), src, "/project")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(doc.Records) != 1 {
		t.Fatalf("got %d records, want 1", len(doc.Records))
	}

	want := []string{
		"function pick(x: string): string;",
		"function pick(x: number): number;",
		"function pick(x: any): any;",
	}
	got := doc.Records[0].Signatures
	if len(got) != len(want) {
		t.Fatalf("got %d signatures, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("signature %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRun_EmptyProject(t *testing.T) {
	doc, err := Run(context.Background(), &fakeAnalyzer{}, "/project")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(doc.Records) != 0 {
		t.Errorf("got %d records, want 0", len(doc.Records))
	}
}

func TestRun_ErrorsAbortTheRun(t *testing.T) {
	listErr := errors.New("walk failed")
	if _, err := Run(context.Background(), &fakeAnalyzer{listErr: listErr}, "/project"); !errors.Is(err, listErr) {
		t.Errorf("list error not surfaced, got %v", err)
	}

	enumErr := errors.New("parse failed")
	src := &fakeAnalyzer{
		entries: []analyzer.ModuleEntry{{Module: "a", Path: "a/index.ts"}},
		enumErr: enumErr,
	}
	if _, err := Run(context.Background(), src, "/project"); !errors.Is(err, enumErr) {
		t.Errorf("enumeration error not surfaced, got %v", err)
	}
}

func TestRun_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := &fakeAnalyzer{
		entries: []analyzer.ModuleEntry{{Module: "a", Path: "a/index.ts"}},
	}
	if _, err := Run(ctx, src, "/project"); !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}

func TestAssemble_EmptyExportIsAnInvariantViolation(t *testing.T) {
	_, err := assemble("widgets", analyzer.Export{Name: "ghost"})
	if err == nil {
		t.Fatal("expected error for export without declarations")
	}
}
