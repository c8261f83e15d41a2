package typescript

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/apisurf-labs/apisurf/core/analyzer"
	"github.com/apisurf-labs/apisurf/pkg/errors"
)

// ListEntryFiles walks projectRoot and yields one module entry per
// directory containing the fixed entry filename. Walk order is lexical, so
// discovery order is deterministic. An unreadable root is a configuration
// error; finding no entry files is not.
func (a *Analyzer) ListEntryFiles(ctx context.Context, projectRoot string) ([]analyzer.ModuleEntry, error) {
	if _, err := os.Stat(projectRoot); err != nil {
		return nil, errors.Wrapf(errors.ErrConfiguration,
			"project root %s: %v", projectRoot, err)
	}

	var entries []analyzer.ModuleEntry

	walkErr := filepath.WalkDir(projectRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		// Skip symlinks to prevent symlink-based path escapes.
		if d.Type()&os.ModeSymlink != 0 {
			return nil
		}

		if d.IsDir() {
			base := d.Name()
			if path != projectRoot && (base == "node_modules" || strings.HasPrefix(base, ".") || strings.HasPrefix(base, "_")) {
				return fs.SkipDir
			}
			return nil
		}

		if d.Name() != a.entryFile {
			return nil
		}

		dir := filepath.Dir(path)
		if dir == filepath.Clean(projectRoot) {
			// The barrel convention is one entry per module directory; a
			// root-level entry file has no module directory to name it.
			a.logger.Warn("skipping entry file at project root", "path", path)
			return nil
		}

		entries = append(entries, analyzer.ModuleEntry{
			Module: filepath.Base(dir),
			Path:   path,
		})
		return nil
	})
	if walkErr != nil {
		return nil, errors.Wrapf(errors.ErrConfiguration,
			"walking project root %s: %v", projectRoot, walkErr)
	}

	return entries, nil
}
