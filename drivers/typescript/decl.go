package typescript

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/apisurf-labs/apisurf/core/analyzer"
)

// snapshot copies everything the formatter needs out of one declaration
// node. The outermost text spans the export statement when the declaration
// is wrapped in one, so the formatter sees the export keyword it is
// contracted to strip.
func (p *fileParse) snapshot(d declNode) analyzer.Declaration {
	outer := d.export
	if outer == nil {
		outer = outermostStatement(d.node)
	}

	switch d.node.Type() {
	case "function_declaration", "function_signature", "generator_function_declaration":
		return p.functionDecl(d.node, outer)
	case "class_declaration", "abstract_class_declaration":
		return p.classDecl(d.node, outer)
	case "interface_declaration":
		return p.interfaceDecl(d.node, outer)
	case "type_alias_declaration":
		return p.typeAliasDecl(d.node, outer)
	case "enum_declaration":
		return p.enumDecl(d.node, outer)
	case "variable_declarator":
		return p.variableDecl(d.node, outer)
	default:
		return analyzer.Declaration{
			Kind:    analyzer.KindOther,
			KindTag: d.node.Type(),
			Name:    p.fieldText(d.node, "name"),
			Text:    p.text(outer),
			DocText: p.docComment(outer),
		}
	}
}

func (p *fileParse) functionDecl(node, outer *sitter.Node) analyzer.Declaration {
	return analyzer.Declaration{
		Kind:       analyzer.KindFunction,
		KindTag:    string(analyzer.KindFunction),
		Name:       p.fieldText(node, "name"),
		Text:       p.text(outer),
		DocText:    p.docComment(outer),
		TypeParams: p.fieldText(node, "type_parameters"),
		Body:       p.fieldText(node, "body"),
	}
}

func (p *fileParse) classDecl(node, outer *sitter.Node) analyzer.Declaration {
	decl := analyzer.Declaration{
		Kind:       analyzer.KindClass,
		KindTag:    string(analyzer.KindClass),
		Name:       p.fieldText(node, "name"),
		Text:       p.text(outer),
		DocText:    p.docComment(outer),
		TypeParams: p.fieldText(node, "type_parameters"),
	}

	if heritage := childOfType(node, "class_heritage"); heritage != nil {
		if ext := childOfType(heritage, "extends_clause"); ext != nil {
			decl.Extends = p.fieldText(ext, "value")
			if decl.Extends == "" {
				// Older grammar revisions put the base expression in an
				// unnamed position.
				decl.Extends = firstNamedText(p, ext)
			}
			// Generic bases carry their type arguments in a separate field.
			decl.Extends += p.fieldText(ext, "type_arguments")
		}
		if impl := childOfType(heritage, "implements_clause"); impl != nil {
			for i := 0; i < int(impl.NamedChildCount()); i++ {
				decl.Implements = append(decl.Implements, p.text(impl.NamedChild(i)))
			}
		}
	}

	body := node.ChildByFieldName("body")
	if body != nil {
		for i := 0; i < int(body.NamedChildCount()); i++ {
			member := body.NamedChild(i)
			switch member.Type() {
			case "method_definition":
				decl.Members = append(decl.Members, analyzer.Member{
					Name:       p.fieldText(member, "name"),
					Text:       p.text(member),
					Body:       p.fieldText(member, "body"),
					Visibility: accessibility(p, member),
					IsMethod:   true,
				})
			case "method_signature", "abstract_method_signature":
				decl.Members = append(decl.Members, analyzer.Member{
					Name:       p.fieldText(member, "name"),
					Text:       p.text(member),
					Visibility: accessibility(p, member),
					IsMethod:   true,
				})
			case "public_field_definition", "field_definition":
				decl.Members = append(decl.Members, analyzer.Member{
					Name:       p.fieldText(member, "name"),
					Text:       p.text(member),
					Visibility: accessibility(p, member),
				})
			}
		}
	}

	return decl
}

func (p *fileParse) interfaceDecl(node, outer *sitter.Node) analyzer.Declaration {
	decl := analyzer.Declaration{
		Kind:       analyzer.KindInterface,
		KindTag:    string(analyzer.KindInterface),
		Name:       p.fieldText(node, "name"),
		Text:       p.text(outer),
		DocText:    p.docComment(outer),
		TypeParams: p.fieldText(node, "type_parameters"),
	}

	for _, text := range p.ownInterfaceMemberTexts(node) {
		decl.Members = append(decl.Members, analyzer.Member{Text: text})
	}

	if ext := childOfType(node, "extends_type_clause"); ext != nil {
		for i := 0; i < int(ext.NamedChildCount()); i++ {
			base := ext.NamedChild(i)
			name := p.fieldText(base, "name")
			if name == "" {
				name = p.text(base)
			}
			decl.Bases = append(decl.Bases, analyzer.Base{
				Name:       name,
				Properties: p.interfaceMembers[name],
			})
		}
	}

	return decl
}

// ownInterfaceMemberTexts lists the member texts declared directly on an
// interface, excluding anything inherited.
func (p *fileParse) ownInterfaceMemberTexts(node *sitter.Node) []string {
	body := node.ChildByFieldName("body")
	if body == nil {
		return nil
	}

	var texts []string
	for i := 0; i < int(body.NamedChildCount()); i++ {
		member := body.NamedChild(i)
		switch member.Type() {
		case "property_signature", "method_signature", "call_signature",
			"construct_signature", "index_signature":
			texts = append(texts, p.text(member))
		}
	}
	return texts
}

func (p *fileParse) typeAliasDecl(node, outer *sitter.Node) analyzer.Declaration {
	return analyzer.Declaration{
		Kind:       analyzer.KindTypeAlias,
		KindTag:    string(analyzer.KindTypeAlias),
		Name:       p.fieldText(node, "name"),
		Text:       p.text(outer),
		DocText:    p.docComment(outer),
		TypeParams: p.fieldText(node, "type_parameters"),
	}
}

func (p *fileParse) enumDecl(node, outer *sitter.Node) analyzer.Declaration {
	return analyzer.Declaration{
		Kind:    analyzer.KindEnum,
		KindTag: string(analyzer.KindEnum),
		Name:    p.fieldText(node, "name"),
		Text:    p.text(outer),
		DocText: p.docComment(outer),
	}
}

func (p *fileParse) variableDecl(declarator, outer *sitter.Node) analyzer.Declaration {
	return analyzer.Declaration{
		Kind:         analyzer.KindVariable,
		KindTag:      string(analyzer.KindVariable),
		Name:         p.fieldText(declarator, "name"),
		Text:         p.text(outer),
		DocText:      p.docComment(outer),
		ResolvedType: p.resolveVariableType(declarator),
	}
}

// resolveVariableType resolves a variable's type in its own scope: the
// explicit annotation when present, otherwise an inference from the
// initializer form. Without a type checker this inference is syntactic;
// anything unrecognized resolves to "unknown" rather than leaking
// initializer syntax into the signature.
func (p *fileParse) resolveVariableType(declarator *sitter.Node) string {
	if annotation := declarator.ChildByFieldName("type"); annotation != nil {
		if inner := firstNamedText(p, annotation); inner != "" {
			return inner
		}
	}

	value := declarator.ChildByFieldName("value")
	if value == nil {
		return "unknown"
	}

	switch value.Type() {
	case "number":
		return "number"
	case "string", "template_string":
		return "string"
	case "true", "false":
		return "boolean"
	case "regex":
		return "RegExp"
	case "null":
		return "null"
	case "array":
		return "unknown[]"
	case "object":
		return "object"
	case "new_expression":
		ctor := p.fieldText(value, "constructor")
		if args := p.fieldText(value, "type_arguments"); args != "" {
			ctor += args
		}
		if ctor != "" {
			return ctor
		}
		return "unknown"
	case "arrow_function", "function", "function_expression":
		return p.functionType(value)
	case "as_expression", "satisfies_expression":
		if last := value.NamedChild(int(value.NamedChildCount()) - 1); last != nil {
			return p.text(last)
		}
		return "unknown"
	default:
		return "unknown"
	}
}

// functionType renders a function-valued initializer as a function type.
func (p *fileParse) functionType(fn *sitter.Node) string {
	params := p.fieldText(fn, "parameters")
	if params == "" {
		// Single-parameter arrow function without parentheses.
		if param := fn.ChildByFieldName("parameter"); param != nil {
			params = "(" + p.text(param) + ")"
		} else {
			params = "()"
		}
	}

	ret := "unknown"
	if annotation := fn.ChildByFieldName("return_type"); annotation != nil {
		if inner := firstNamedText(p, annotation); inner != "" {
			ret = inner
		}
	}

	return params + " => " + ret
}

// accessibility returns the explicit accessibility modifier of a class
// member, or "" when none is written.
func accessibility(p *fileParse, member *sitter.Node) string {
	if mod := childOfType(member, "accessibility_modifier"); mod != nil {
		return p.text(mod)
	}
	return ""
}

// firstNamedText returns the text of a node's first named child. Used to
// unwrap single-child containers like type_annotation.
func firstNamedText(p *fileParse, node *sitter.Node) string {
	if node == nil || node.NamedChildCount() == 0 {
		return ""
	}
	return p.text(node.NamedChild(0))
}

// outermostStatement climbs from a nested node (a variable declarator) to
// the enclosing top-level statement.
func outermostStatement(node *sitter.Node) *sitter.Node {
	current := node
	for parent := current.Parent(); parent != nil && parent.Type() != "program"; parent = current.Parent() {
		current = parent
	}
	return current
}
