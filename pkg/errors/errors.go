// Package errors provides error handling for apisurf.
//
// It re-exports a subset of github.com/cockroachdb/errors (wrapping,
// inspection, assertion failures) and defines the sentinel errors for the
// three fatal failure classes of an extraction run. All of them abort the
// run: the tool never writes a partial artifact.
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping.
var (
	New       = crdb.New
	Newf      = crdb.Newf
	Wrap      = crdb.Wrap
	Wrapf     = crdb.Wrapf
	WithStack = crdb.WithStack
	WithHint  = crdb.WithHint
)

// Error inspection.
var (
	Is     = crdb.Is
	As     = crdb.As
	Unwrap = crdb.Unwrap
)

// AssertionFailedf marks an error as an internal invariant violation.
var AssertionFailedf = crdb.AssertionFailedf

// Sentinel errors. Use with errors.Is; wrap with errors.Wrap to add context
// while preserving the class.
var (
	// ErrConfiguration indicates the project root or entry-file convention
	// could not be resolved.
	ErrConfiguration = New("configuration error")

	// ErrKindMismatch indicates a formatting rule was dispatched on a
	// declaration whose resolved kind disagrees with the rule. This is a bug
	// in kind detection, not a recoverable user error.
	ErrKindMismatch = New("declaration kind mismatch")

	// ErrWrite indicates the output artifact could not be persisted.
	ErrWrite = New("write error")
)

// IsConfiguration reports whether err is or wraps ErrConfiguration.
func IsConfiguration(err error) bool {
	return err != nil && Is(err, ErrConfiguration)
}

// IsKindMismatch reports whether err is or wraps ErrKindMismatch.
func IsKindMismatch(err error) bool {
	return err != nil && Is(err, ErrKindMismatch)
}

// IsWrite reports whether err is or wraps ErrWrite.
func IsWrite(err error) bool {
	return err != nil && Is(err, ErrWrite)
}
