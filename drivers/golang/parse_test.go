package golang

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/apisurf-labs/apisurf/core/analyzer"
	"github.com/apisurf-labs/apisurf/pkg/errors"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestListEntryFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "go.mod", "module github.com/acme/demo\n\ngo 1.21\n")
	writeFile(t, root, "demo.go", "package demo\n\nfunc Hello() {}\n")
	writeFile(t, root, filepath.Join("sub", "sub.go"), "package sub\n\nfunc Sub() {}\n")
	writeFile(t, root, filepath.Join("internal", "private.go"), "package internal\n\nfunc Hidden() {}\n")
	writeFile(t, root, filepath.Join("testdata", "fixture.go"), "package fixture\n")
	writeFile(t, root, filepath.Join("docs", "README.md"), "docs\n")

	a := NewAnalyzer()
	entries, err := a.ListEntryFiles(context.Background(), root)
	if err != nil {
		t.Fatalf("ListEntryFiles: %v", err)
	}

	want := []string{"github.com/acme/demo", "github.com/acme/demo/sub"}
	if len(entries) != len(want) {
		t.Fatalf("got %d entries %v, want %d", len(entries), moduleNames(entries), len(want))
	}
	for i, entry := range entries {
		if entry.Module != want[i] {
			t.Errorf("entry %d module = %q, want %q", i, entry.Module, want[i])
		}
	}
}

func TestListEntryFiles_NestedModuleRoot(t *testing.T) {
	// Module zips extract with the source under module@version/.
	root := t.TempDir()
	nested := filepath.Join(root, "demo@v1.2.3")
	writeFile(t, nested, "go.mod", "module github.com/acme/demo\n\ngo 1.21\n")
	writeFile(t, nested, "demo.go", "package demo\n\nfunc Hello() {}\n")

	a := NewAnalyzer()
	entries, err := a.ListEntryFiles(context.Background(), root)
	if err != nil {
		t.Fatalf("ListEntryFiles: %v", err)
	}

	if len(entries) != 1 || entries[0].Module != "github.com/acme/demo" {
		t.Errorf("entries = %v, want one entry for github.com/acme/demo", moduleNames(entries))
	}
}

func TestListEntryFiles_NoGoMod(t *testing.T) {
	a := NewAnalyzer()
	_, err := a.ListEntryFiles(context.Background(), t.TempDir())
	if !errors.IsConfiguration(err) {
		t.Errorf("err = %v, want configuration error", err)
	}
}

func TestExportedDeclarations(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "go.mod", "module github.com/acme/demo\n\ngo 1.21\n")
	writeFile(t, root, "demo.go", `package demo

import "errors"

const MaxRetries = 3

const timeout = 5

var ErrNotFound = errors.New("not found")

type Closer interface {
	Close() error
}

type Handler interface {
	Closer
	Handle(req string) (string, error)
}

type Config struct {
	Host string
	port int
}

type Token = string

func DoWork(n int) error { return nil }

func (c *Config) Validate() error { return nil }

func internalOnly() {}
`)

	a := NewAnalyzer()
	exports, err := a.ExportedDeclarations(context.Background(), analyzer.ModuleEntry{
		Module: "github.com/acme/demo",
		Path:   root,
	})
	if err != nil {
		t.Fatalf("ExportedDeclarations: %v", err)
	}

	wantOrder := []string{"MaxRetries", "ErrNotFound", "Closer", "Handler", "Config", "Token", "DoWork", "Config.Validate"}
	if len(exports) != len(wantOrder) {
		t.Fatalf("got %d exports %v, want %d", len(exports), exportNames(exports), len(wantOrder))
	}
	for i, exp := range exports {
		if exp.Name != wantOrder[i] {
			t.Errorf("export %d = %q, want %q", i, exp.Name, wantOrder[i])
		}
		if len(exp.Decls) != 1 {
			t.Errorf("export %q has %d declarations, want 1", exp.Name, len(exp.Decls))
		}
	}

	byName := make(map[string]analyzer.Declaration)
	for _, exp := range exports {
		byName[exp.Name] = exp.Decls[0]
	}

	if d := byName["MaxRetries"]; d.Kind != analyzer.KindVariable || d.ResolvedType != "int" {
		t.Errorf("MaxRetries = %+v", d)
	}
	if d := byName["ErrNotFound"]; d.ResolvedType != "error" {
		t.Errorf("ErrNotFound resolved to %q, want error", d.ResolvedType)
	}

	closer := byName["Closer"]
	if closer.Kind != analyzer.KindInterface || len(closer.Members) != 1 || closer.Members[0].Text != "Close() error" {
		t.Errorf("Closer = %+v", closer)
	}

	handler := byName["Handler"]
	if len(handler.Members) != 1 || handler.Members[0].Text != "Handle(string) (string, error)" {
		t.Errorf("Handler members = %+v", handler.Members)
	}
	if len(handler.Bases) != 1 || handler.Bases[0].Name != "Closer" {
		t.Fatalf("Handler bases = %+v", handler.Bases)
	}
	if props := handler.Bases[0].Properties; len(props) != 1 || props[0] != "Close() error" {
		t.Errorf("Closer base properties = %v", props)
	}

	config := byName["Config"]
	if config.Kind != analyzer.KindOther || config.KindTag != "TypeDeclaration" {
		t.Errorf("Config kind = %q tag %q", config.Kind, config.KindTag)
	}
	if config.Text != "type Config struct{Host string}" {
		t.Errorf("Config text = %q", config.Text)
	}

	if d := byName["Token"]; d.Kind != analyzer.KindTypeAlias || d.Text != "type Token = string" {
		t.Errorf("Token = %+v", d)
	}

	if d := byName["DoWork"]; d.Text != "func DoWork(int) error" {
		t.Errorf("DoWork text = %q", d.Text)
	}
	if d := byName["Config.Validate"]; d.Text != "func (Config) Validate() error" {
		t.Errorf("Config.Validate text = %q", d.Text)
	}
}

func TestExportedDeclarations_SkipsTestAndMainFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "lib.go", "package lib\n\nfunc Keep() {}\n")
	writeFile(t, root, "lib_test.go", "package lib\n\nfunc TestishExport() {}\n")
	writeFile(t, root, "gen.go", "package main\n\nfunc Dropped() {}\n")

	a := NewAnalyzer()
	exports, err := a.ExportedDeclarations(context.Background(), analyzer.ModuleEntry{Module: "lib", Path: root})
	if err != nil {
		t.Fatalf("ExportedDeclarations: %v", err)
	}

	if len(exports) != 1 || exports[0].Name != "Keep" {
		t.Errorf("exports = %v, want only Keep", exportNames(exports))
	}
}

func TestExportedDeclarations_UnexportedReceiver(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "lib.go", `package lib

type helper struct{}

func (h *helper) Exported() {}
`)

	a := NewAnalyzer()
	exports, err := a.ExportedDeclarations(context.Background(), analyzer.ModuleEntry{Module: "lib", Path: root})
	if err != nil {
		t.Fatalf("ExportedDeclarations: %v", err)
	}

	if len(exports) != 0 {
		t.Errorf("exports = %v, want none for methods on unexported receivers", exportNames(exports))
	}
}

func moduleNames(entries []analyzer.ModuleEntry) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Module
	}
	return names
}

func exportNames(exports []analyzer.Export) []string {
	names := make([]string, len(exports))
	for i, e := range exports {
		names[i] = e.Name
	}
	return names
}
