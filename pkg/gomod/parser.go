package gomod

import (
	"os"
	"path/filepath"

	"golang.org/x/mod/modfile"

	"github.com/apisurf-labs/apisurf/pkg/errors"
)

// FindModulePath reads the go.mod at rootDir and returns the declared
// module path.
func FindModulePath(rootDir string) (string, error) {
	gomodPath := filepath.Join(rootDir, "go.mod")

	data, err := os.ReadFile(gomodPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.Newf("no go.mod found at %s", gomodPath)
		}
		return "", errors.Wrap(err, "reading go.mod")
	}

	f, err := modfile.Parse(gomodPath, data, nil)
	if err != nil {
		return "", errors.Wrap(err, "parsing go.mod")
	}

	if f.Module == nil || f.Module.Mod.Path == "" {
		return "", errors.Newf("go.mod at %s declares no module path", gomodPath)
	}

	return f.Module.Mod.Path, nil
}
