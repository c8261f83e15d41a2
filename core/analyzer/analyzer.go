// Package analyzer defines the contract between language drivers and the
// extraction pipeline. A driver parses source files and hands back immutable
// declaration snapshots; everything the formatter needs is copied out of the
// parse tree before rendering starts, so no formatting step ever touches
// shared analysis state.
package analyzer

import "context"

// Kind identifies the declaration kind a formatting rule dispatches on.
// This is a closed enumeration; anything a driver cannot classify maps to
// KindOther and is handled by the universal raw-text fallback.
type Kind string

const (
	KindFunction  Kind = "FunctionDeclaration"
	KindClass     Kind = "ClassDeclaration"
	KindVariable  Kind = "VariableDeclaration"
	KindInterface Kind = "InterfaceDeclaration"
	KindTypeAlias Kind = "TypeAliasDeclaration"
	KindEnum      Kind = "EnumDeclaration"
	KindOther     Kind = "Unknown"
)

// Member is one member of a class or interface body.
type Member struct {
	Name string
	// Text is the member's source text. For methods it includes the body;
	// the formatter strips it.
	Text string
	// Body is the exact body text of a method, empty for properties and
	// bodiless method signatures. It is always a suffix of Text (modulo
	// trailing whitespace).
	Body string
	// Visibility is the explicit accessibility modifier ("public",
	// "private", "protected"). Empty means no modifier was written, which
	// is treated as public.
	Visibility string
	IsMethod   bool
}

// Base is one directly-extended interface together with that interface's
// own property texts. Drivers resolve exactly one level: a base's own
// bases are never included.
type Base struct {
	Name       string
	Properties []string
}

// Declaration is an immutable snapshot of a single declaration overload.
type Declaration struct {
	Kind Kind
	// KindTag is the concrete tag recorded in the output document. For the
	// known kinds it equals string(Kind); for KindOther it is the
	// driver-specific node tag.
	KindTag string
	Name    string
	// Text is the raw declaration text as written, including any export
	// keyword and modifiers, excluding attached comments. Keyword and body
	// stripping is the formatter's job, not the driver's.
	Text string
	// DocText is the attached documentation comment, verbatim, if any.
	DocText string

	// TypeParams is the type-parameter clause including angle brackets,
	// e.g. "<T, U extends T>". Empty when the declaration has none.
	TypeParams string

	// Extends is the base-class clause text of a class declaration.
	Extends string
	// Implements lists the implemented interface clause texts of a class.
	Implements []string
	// Bases lists the directly-extended interfaces of an interface
	// declaration, each with its own properties.
	Bases []Base

	// Members lists class or interface body members in source order.
	Members []Member

	// ResolvedType is the resolved type text of a variable declaration in
	// its own scope, independent of the initializer syntax.
	ResolvedType string

	// Body is the executable body text of a function declaration, empty
	// for bodiless overload signatures.
	Body string
}

// Export is one exported name with its ordered, non-empty declaration list.
// Declarations sharing the name are overloads in source order.
type Export struct {
	Name  string
	Decls []Declaration
}

// ModuleEntry is one unit of work: a module name derived from its
// containing directory (or package path) and the entry file it was
// discovered at.
type ModuleEntry struct {
	Module string
	Path   string
}

// SourceAnalyzer is implemented by each language driver.
type SourceAnalyzer interface {
	// ListEntryFiles locates every module entry file under projectRoot in
	// deterministic discovery order. An unreadable root is a configuration
	// error; an empty result is valid and yields an empty document.
	ListEntryFiles(ctx context.Context, projectRoot string) ([]ModuleEntry, error)

	// ExportedDeclarations returns the exported surface of one entry file
	// in enumeration order. Every export carries at least one declaration.
	ExportedDeclarations(ctx context.Context, entry ModuleEntry) ([]Export, error)
}
