package apidoc

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/apisurf-labs/apisurf/pkg/errors"
)

func sampleDocument() Document {
	return Document{Records: []Record{
		{
			Module:     "widgets",
			API:        "add",
			Kind:       "FunctionDeclaration",
			Signatures: []string{"function add(a: number, b: number): number;"},
		},
		{
			Module:     "geometry",
			API:        "Shape",
			Kind:       "InterfaceDeclaration",
			Signatures: []string{"interface Shape {}"},
		},
	}}
}

func TestEncode(t *testing.T) {
	got, err := Encode(sampleDocument(), DefaultStyle)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	want := `[
  {
    "module": "widgets",
    "api": "add",
    "kind": "FunctionDeclaration",
    "signatures": [
      "function add(a: number, b: number): number;"
    ]
  },
  {
    "module": "geometry",
    "api": "Shape",
    "kind": "InterfaceDeclaration",
    "signatures": [
      "interface Shape {}"
    ]
  }
]
`
	if string(got) != want {
		t.Errorf("Encode =\n%s\nwant\n%s", got, want)
	}
}

func TestEncode_EmptyDocument(t *testing.T) {
	got, err := Encode(Document{}, DefaultStyle)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if string(got) != "[]\n" {
		t.Errorf("Encode = %q, want %q", got, "[]\n")
	}
}

func TestEncode_Deterministic(t *testing.T) {
	doc := sampleDocument()

	first, err := Encode(doc, DefaultStyle)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	second, err := Encode(doc, DefaultStyle)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Error("two encodings of the same document differ")
	}
}

func TestEncode_IndentWidth(t *testing.T) {
	doc := Document{Records: []Record{{Module: "m", API: "a", Kind: "FunctionDeclaration", Signatures: []string{"s"}}}}

	// Record fields sit two indent levels deep inside the array.
	got, err := Encode(doc, Style{Indent: 4})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Contains(got, []byte("\n    {")) || !bytes.Contains(got, []byte("\n        \"module\"")) {
		t.Errorf("indent width 4 not applied:\n%s", got)
	}

	// Zero falls back to the default width.
	got, err = Encode(doc, Style{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Contains(got, []byte("\n  {")) || !bytes.Contains(got, []byte("\n    \"module\"")) {
		t.Errorf("default indent not applied:\n%s", got)
	}
}

func TestWrite_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "api-surface.json")

	if err := Write(sampleDocument(), DefaultStyle, path); err != nil {
		t.Fatalf("Write: %v", err)
	}

	onDisk, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	encoded, err := Encode(sampleDocument(), DefaultStyle)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Equal(onDisk, encoded) {
		t.Error("written artifact differs from encoded document")
	}

	// Overwriting with the same document keeps the bytes identical.
	if err := Write(sampleDocument(), DefaultStyle, path); err != nil {
		t.Fatalf("second Write: %v", err)
	}
	again, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !bytes.Equal(onDisk, again) {
		t.Error("rewrite of the same document changed the artifact")
	}
}

func TestWrite_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()

	if err := Write(sampleDocument(), DefaultStyle, filepath.Join(dir, "out.json")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "out.json" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("directory contents = %v, want only out.json", names)
	}
}

func TestWrite_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no-such-dir", "out.json")

	err := Write(sampleDocument(), DefaultStyle, path)
	if !errors.IsWrite(err) {
		t.Errorf("err = %v, want write error", err)
	}
}
