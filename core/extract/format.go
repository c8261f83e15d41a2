package extract

import (
	"strings"

	"github.com/apisurf-labs/apisurf/core/analyzer"
	"github.com/apisurf-labs/apisurf/pkg/errors"
)

// Format renders one declaration overload into its canonical signature
// string. Dispatch is a closed switch over the declaration kind; the
// KindOther arm is the universal raw-text fallback, so Format is total.
func Format(decl analyzer.Declaration) (string, error) {
	switch decl.Kind {
	case analyzer.KindFunction:
		return formatFunction(decl)
	case analyzer.KindClass:
		return formatClass(decl)
	case analyzer.KindVariable:
		return formatVariable(decl)
	case analyzer.KindInterface:
		return formatInterface(decl)
	case analyzer.KindTypeAlias:
		return formatTypeAlias(decl)
	case analyzer.KindEnum:
		return formatEnum(decl)
	default:
		return decl.Text, nil
	}
}

// formatFunction strips the export keyword prefix and the executable body,
// collapses whitespace, and terminates the signature with a semicolon when
// a body was removed. Parameter list, type parameters, and return type are
// preserved untouched.
func formatFunction(decl analyzer.Declaration) (string, error) {
	if decl.Kind != analyzer.KindFunction {
		return "", kindMismatch("function", decl)
	}

	text, stripped := stripBody(decl.Text, decl.Body)
	sig := collapse(stripExportPrefix(text))
	if stripped && !strings.HasSuffix(sig, ";") {
		sig += ";"
	}
	return sig, nil
}

// formatClass reconstructs the class shape with public method signatures
// only. A member without an explicit accessibility modifier is public. The
// empty body renders as "{ }" with an interior space, distinct from the
// empty interface form.
func formatClass(decl analyzer.Declaration) (string, error) {
	if decl.Kind != analyzer.KindClass {
		return "", kindMismatch("class", decl)
	}

	var b strings.Builder
	b.WriteString("class ")
	b.WriteString(decl.Name)
	if decl.TypeParams != "" {
		b.WriteString(collapse(decl.TypeParams))
	}
	if decl.Extends != "" {
		b.WriteString(" extends ")
		b.WriteString(collapse(decl.Extends))
	}
	if len(decl.Implements) > 0 {
		impls := make([]string, len(decl.Implements))
		for i, impl := range decl.Implements {
			impls[i] = collapse(impl)
		}
		b.WriteString(" implements ")
		b.WriteString(strings.Join(impls, ", "))
	}

	var methods []string
	for _, m := range decl.Members {
		if !m.IsMethod || !isPublic(m) {
			continue
		}
		text, stripped := stripBody(m.Text, m.Body)
		sig := collapse(text)
		if stripped && !strings.HasSuffix(sig, ";") {
			sig += ";"
		}
		methods = append(methods, sig)
	}

	if len(methods) == 0 {
		b.WriteString(" { }")
		return b.String(), nil
	}

	b.WriteString(" {\n")
	for _, m := range methods {
		b.WriteString("  ")
		b.WriteString(m)
		b.WriteString("\n")
	}
	b.WriteString("}")
	return b.String(), nil
}

// formatVariable renders the declaration against its resolved type, not the
// literal initializer syntax.
func formatVariable(decl analyzer.Declaration) (string, error) {
	if decl.Kind != analyzer.KindVariable {
		return "", kindMismatch("variable", decl)
	}
	return "const " + decl.Name + ": " + collapse(decl.ResolvedType), nil
}

// formatInterface renders the interface's own properties followed by one
// labeled section per directly-extended base listing that base's own
// properties. Inheritance is intentionally shallow: grandparent properties
// are never traversed. Zero total properties render as "{}" with no
// interior space.
func formatInterface(decl analyzer.Declaration) (string, error) {
	if decl.Kind != analyzer.KindInterface {
		return "", kindMismatch("interface", decl)
	}

	var b strings.Builder
	b.WriteString("interface ")
	b.WriteString(decl.Name)
	if decl.TypeParams != "" {
		b.WriteString(collapse(decl.TypeParams))
	}

	var lines []string
	for _, m := range decl.Members {
		lines = append(lines, collapse(m.Text))
	}
	for _, base := range decl.Bases {
		if len(base.Properties) == 0 {
			continue
		}
		lines = append(lines, "// inherited from "+base.Name)
		for _, prop := range base.Properties {
			lines = append(lines, collapse(prop))
		}
	}

	if len(lines) == 0 {
		b.WriteString(" {}")
		return b.String(), nil
	}

	b.WriteString(" {\n")
	for _, line := range lines {
		b.WriteString("  ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("}")
	return b.String(), nil
}

// formatTypeAlias strips the leading export keyword only; internal
// formatting stays verbatim.
func formatTypeAlias(decl analyzer.Declaration) (string, error) {
	if decl.Kind != analyzer.KindTypeAlias {
		return "", kindMismatch("type alias", decl)
	}
	return strings.TrimSpace(stripExportPrefix(decl.Text)), nil
}

// formatEnum returns the declaration verbatim, including any attached
// documentation comment. Enum members are their entire contract, so
// nothing is stripped.
func formatEnum(decl analyzer.Declaration) (string, error) {
	if decl.Kind != analyzer.KindEnum {
		return "", kindMismatch("enum", decl)
	}
	if decl.DocText != "" {
		return decl.DocText + "\n" + decl.Text, nil
	}
	return decl.Text, nil
}

func kindMismatch(rule string, decl analyzer.Declaration) error {
	return errors.Wrapf(errors.ErrKindMismatch,
		"%s rule applied to %s %q", rule, decl.KindTag, decl.Name)
}

// isPublic reports whether a member is visible in the documented surface.
// No explicit modifier means public.
func isPublic(m analyzer.Member) bool {
	return m.Visibility == "" || m.Visibility == "public"
}

// stripBody removes the executable body from a declaration's raw text.
// The body is located as the last occurrence of its exact text, which is
// where it appears in every declaration form the drivers produce. Reports
// whether a body was actually removed.
func stripBody(text, body string) (string, bool) {
	if body == "" {
		return text, false
	}
	idx := strings.LastIndex(text, body)
	if idx < 0 {
		return text, false
	}
	return text[:idx], true
}

// stripExportPrefix removes a leading "export" keyword (and a following
// "default", when present) from the declaration text. Nothing else is
// touched.
func stripExportPrefix(text string) string {
	trimmed := strings.TrimSpace(text)
	rest, ok := cutKeyword(trimmed, "export")
	if !ok {
		return text
	}
	if afterDefault, ok := cutKeyword(rest, "default"); ok {
		return afterDefault
	}
	return rest
}

// cutKeyword removes word from the start of s when it is present as a whole
// keyword followed by whitespace.
func cutKeyword(s, word string) (string, bool) {
	if !strings.HasPrefix(s, word) {
		return s, false
	}
	rest := s[len(word):]
	if rest == "" || (rest[0] != ' ' && rest[0] != '\t' && rest[0] != '\n') {
		return s, false
	}
	return strings.TrimLeft(rest, " \t\n"), true
}

// collapse normalizes all interior whitespace runs (including line breaks)
// to single spaces and trims the ends.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
