// Package archive unpacks module zip archives with path-traversal and
// zip-bomb protection.
package archive

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/apisurf-labs/apisurf/pkg/errors"
)

const (
	maxFileSize  = 100 * 1024 * 1024  // per file
	maxTotalSize = 1024 * 1024 * 1024 // total extracted
	maxFileCount = 50000
)

// ExtractZip unpacks a zip archive to a temp directory and returns its path
// plus a cleanup function that removes it. All entry paths are validated
// against zip-slip; per-file and total size limits guard against zip bombs.
func ExtractZip(data []byte, prefix string) (dir string, cleanup func(), err error) {
	tmpDir, err := os.MkdirTemp("", "apisurf-"+prefix+"-*")
	if err != nil {
		return "", nil, errors.Wrap(err, "creating temp directory")
	}

	cleanupFn := func() { os.RemoveAll(tmpDir) }
	fail := func(err error) (string, func(), error) {
		cleanupFn()
		return "", nil, err
	}

	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return fail(errors.Wrap(err, "reading zip archive"))
	}

	if len(reader.File) > maxFileCount {
		return fail(errors.Newf("zip archive contains %d files, exceeds maximum of %d", len(reader.File), maxFileCount))
	}

	var totalExtracted int64

	for _, file := range reader.File {
		// Symlinks could point outside the extraction root.
		if file.Mode()&os.ModeSymlink != 0 {
			continue
		}

		target := filepath.Join(tmpDir, file.Name)
		if err := checkWithinDir(tmpDir, target); err != nil {
			return fail(errors.Wrapf(err, "zip entry %s", file.Name))
		}

		if file.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fail(errors.Wrapf(err, "creating directory %s", file.Name))
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return fail(errors.Wrapf(err, "creating parent directory for %s", file.Name))
		}

		n, err := extractFile(file, target)
		if err != nil {
			return fail(err)
		}

		totalExtracted += n
		if totalExtracted > maxTotalSize {
			return fail(errors.Newf("total extracted size exceeds maximum of %d bytes", maxTotalSize))
		}
	}

	return tmpDir, cleanupFn, nil
}

// extractFile writes one zip entry to target, enforcing the per-file size
// limit. Returns the number of bytes written.
func extractFile(file *zip.File, target string) (int64, error) {
	rc, err := file.Open()
	if err != nil {
		return 0, errors.Wrapf(err, "opening zip entry %s", file.Name)
	}
	defer rc.Close()

	out, err := os.Create(target)
	if err != nil {
		return 0, errors.Wrapf(err, "creating file %s", file.Name)
	}
	defer out.Close()

	n, err := io.Copy(out, io.LimitReader(rc, maxFileSize+1))
	if err != nil {
		return 0, errors.Wrapf(err, "extracting %s", file.Name)
	}
	if n > maxFileSize {
		return 0, errors.Newf("file %s exceeds maximum size of %d bytes", file.Name, maxFileSize)
	}

	return n, nil
}

// checkWithinDir ensures target resolves inside base (zip-slip protection).
func checkWithinDir(base, target string) error {
	resolvedTarget, err := filepath.Abs(target)
	if err != nil {
		return errors.Wrap(err, "resolving target path")
	}
	resolvedBase, err := filepath.Abs(base)
	if err != nil {
		return errors.Wrap(err, "resolving base path")
	}
	if resolvedTarget != resolvedBase && !strings.HasPrefix(resolvedTarget, resolvedBase+string(os.PathSeparator)) {
		return errors.New("path escapes extraction directory")
	}
	return nil
}
