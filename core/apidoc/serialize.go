package apidoc

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/apisurf-labs/apisurf/pkg/errors"
)

// Style controls the serialized form of a document.
type Style struct {
	// Indent is the pretty-printing indent width in spaces.
	Indent int
}

// DefaultStyle is used when the caller supplies no style configuration.
var DefaultStyle = Style{Indent: 2}

// Encode renders the document as a pretty-printed JSON array with a
// trailing newline. Field order is fixed (module, api, kind, signatures)
// and record order is preserved, so encoding the same document twice is
// byte-identical.
func Encode(doc Document, style Style) ([]byte, error) {
	indent := style.Indent
	if indent <= 0 {
		indent = DefaultStyle.Indent
	}

	records := doc.Records
	if records == nil {
		// An empty project is a valid, empty document.
		records = []Record{}
	}

	data, err := json.MarshalIndent(records, "", strings.Repeat(" ", indent))
	if err != nil {
		return nil, errors.Wrap(err, "encoding document")
	}

	return append(data, '\n'), nil
}

// Write encodes the document and persists it at path atomically: the bytes
// go to a temp file in the target directory which is then renamed into
// place, so the artifact is either complete or absent. Failures wrap
// errors.ErrWrite.
func Write(doc Document, style Style, path string) error {
	data, err := Encode(doc, style)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".apisurf-*.json")
	if err != nil {
		return errors.Wrapf(errors.ErrWrite, "creating temp file in %s: %v", dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrapf(errors.ErrWrite, "writing %s: %v", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(errors.ErrWrite, "closing %s: %v", tmpName, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(errors.ErrWrite, "renaming %s to %s: %v", tmpName, path, err)
	}

	return nil
}
