package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidateProjectDir(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	tests := []struct {
		name    string
		project string
		wantErr bool
	}{
		{"valid_dir", dir, false},
		{"empty", "", true},
		{"missing", filepath.Join(dir, "gone"), true},
		{"not_a_dir", file, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateProjectDir(tt.project)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateProjectDir(%q) = %v, wantErr %v", tt.project, err, tt.wantErr)
			}
		})
	}
}

func TestValidateExtractGoFlags(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		opts    ExtractGoOptions
		wantErr bool
	}{
		{"local_project", ExtractGoOptions{Project: dir}, false},
		{"module_with_version_and_out", ExtractGoOptions{Module: "github.com/acme/demo", Version: "v1.2.3", Out: "api.json"}, false},
		{"neither", ExtractGoOptions{}, true},
		{"both", ExtractGoOptions{Project: dir, Module: "github.com/acme/demo", Version: "v1.2.3", Out: "api.json"}, true},
		{"module_without_version", ExtractGoOptions{Module: "github.com/acme/demo", Out: "api.json"}, true},
		{"module_bad_version", ExtractGoOptions{Module: "github.com/acme/demo", Version: "1.2.3", Out: "api.json"}, true},
		{"module_without_out", ExtractGoOptions{Module: "github.com/acme/demo", Version: "v1.2.3"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateExtractGoFlags(tt.opts)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateExtractGoFlags(%+v) = %v, wantErr %v", tt.opts, err, tt.wantErr)
			}
		})
	}
}
