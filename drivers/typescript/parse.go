package typescript

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"
	tsgrammar "github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/apisurf-labs/apisurf/core/analyzer"
)

// fileParse holds one parsed barrel file plus the lookup tables built from
// its top-level declarations. All declaration snapshots are copied out of
// the tree before the caller ever formats anything, so the tree can be
// closed as soon as exports() returns.
type fileParse struct {
	source []byte
	tree   *sitter.Tree
	root   *sitter.Node

	// declsByName maps each top-level declared name to its declaration
	// nodes in source order (several entries for function overloads).
	declsByName map[string][]declNode
	// interfaceMembers maps each interface declared in this file to its
	// own member texts, for the one-level inherited-from sections.
	interfaceMembers map[string][]string
}

// declNode pairs a declaration node with its enclosing export statement,
// when there is one.
type declNode struct {
	node   *sitter.Node
	export *sitter.Node
}

// parseFile parses TypeScript source and indexes its top-level
// declarations.
func parseFile(ctx context.Context, source []byte) (*fileParse, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(tsgrammar.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, err
	}

	p := &fileParse{
		source:           source,
		tree:             tree,
		root:             tree.RootNode(),
		declsByName:      make(map[string][]declNode),
		interfaceMembers: make(map[string][]string),
	}
	p.index()
	return p, nil
}

func (p *fileParse) close() {
	p.tree.Close()
}

func (p *fileParse) hasErrors() bool {
	return p.root.HasError()
}

// index registers every top-level declaration, exported or not, so that
// export lists ("export { A }") and interface extends clauses can be
// resolved within the file.
func (p *fileParse) index() {
	for i := 0; i < int(p.root.NamedChildCount()); i++ {
		child := p.root.NamedChild(i)
		if child.Type() == "export_statement" {
			if decl := child.ChildByFieldName("declaration"); decl != nil {
				p.register(decl, child)
			}
			continue
		}
		p.register(child, nil)
	}
}

// register indexes one top-level declaration node under every name it
// declares.
func (p *fileParse) register(node, export *sitter.Node) {
	switch node.Type() {
	case "lexical_declaration", "variable_declaration":
		for i := 0; i < int(node.NamedChildCount()); i++ {
			declarator := node.NamedChild(i)
			if declarator.Type() != "variable_declarator" {
				continue
			}
			name := p.fieldText(declarator, "name")
			if name != "" {
				p.declsByName[name] = append(p.declsByName[name], declNode{node: declarator, export: export})
			}
		}

	case "interface_declaration":
		name := p.fieldText(node, "name")
		if name == "" {
			return
		}
		p.declsByName[name] = append(p.declsByName[name], declNode{node: node, export: export})
		p.interfaceMembers[name] = p.ownInterfaceMemberTexts(node)

	default:
		name := p.fieldText(node, "name")
		if name == "" {
			return
		}
		p.declsByName[name] = append(p.declsByName[name], declNode{node: node, export: export})
	}
}

// exports walks the file top to bottom and yields the exported surface in
// enumeration order. Overloads sharing a name stay grouped on the first
// occurrence of that name, in source order. Re-exports from other modules
// ("export ... from") are not followed.
func (p *fileParse) exports() []analyzer.Export {
	var out []analyzer.Export
	index := make(map[string]int)

	add := func(name string, decl analyzer.Declaration) {
		if i, ok := index[name]; ok {
			out[i].Decls = append(out[i].Decls, decl)
			return
		}
		index[name] = len(out)
		out = append(out, analyzer.Export{Name: name, Decls: []analyzer.Declaration{decl}})
	}

	for i := 0; i < int(p.root.NamedChildCount()); i++ {
		child := p.root.NamedChild(i)
		if child.Type() != "export_statement" {
			continue
		}
		if child.ChildByFieldName("source") != nil {
			continue
		}

		if decl := child.ChildByFieldName("declaration"); decl != nil {
			for _, named := range p.declaredNames(decl) {
				add(named.name, p.snapshot(declNode{node: named.node, export: child}))
			}
			continue
		}

		// export { A, B as C }
		clause := childOfType(child, "export_clause")
		if clause == nil {
			continue
		}
		for j := 0; j < int(clause.NamedChildCount()); j++ {
			spec := clause.NamedChild(j)
			if spec.Type() != "export_specifier" {
				continue
			}
			local := p.fieldText(spec, "name")
			exported := p.fieldText(spec, "alias")
			if exported == "" {
				exported = local
			}
			decls := p.declsByName[local]
			if len(decls) == 0 {
				// No top-level declaration to resolve (the name was likely
				// imported); the specifier itself becomes the record.
				add(exported, analyzer.Declaration{
					Kind:    analyzer.KindOther,
					KindTag: spec.Type(),
					Name:    exported,
					Text:    p.text(spec),
				})
				continue
			}
			for _, d := range decls {
				add(exported, p.snapshot(d))
			}
		}
	}

	return out
}

// namedDecl is one name introduced by a declaration statement, paired with
// the node to snapshot for it.
type namedDecl struct {
	name string
	node *sitter.Node
}

// declaredNames expands a declaration statement into the names it
// introduces: one per variable declarator, one otherwise.
func (p *fileParse) declaredNames(node *sitter.Node) []namedDecl {
	switch node.Type() {
	case "lexical_declaration", "variable_declaration":
		var names []namedDecl
		for i := 0; i < int(node.NamedChildCount()); i++ {
			declarator := node.NamedChild(i)
			if declarator.Type() != "variable_declarator" {
				continue
			}
			if name := p.fieldText(declarator, "name"); name != "" {
				names = append(names, namedDecl{name: name, node: declarator})
			}
		}
		return names
	default:
		if name := p.fieldText(node, "name"); name != "" {
			return []namedDecl{{name: name, node: node}}
		}
		return nil
	}
}

// text returns the source text of a node.
func (p *fileParse) text(node *sitter.Node) string {
	if node == nil {
		return ""
	}
	return node.Content(p.source)
}

// fieldText returns the text of a node's named field, or "".
func (p *fileParse) fieldText(node *sitter.Node, field string) string {
	if node == nil {
		return ""
	}
	return p.text(node.ChildByFieldName(field))
}

// childOfType returns the first child with the given node type.
func childOfType(node *sitter.Node, nodeType string) *sitter.Node {
	if node == nil {
		return nil
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Type() == nodeType {
			return child
		}
	}
	return nil
}

// docComment returns the comment immediately preceding node, when the
// comment ends on the line before the node starts (or on the same line).
func (p *fileParse) docComment(node *sitter.Node) string {
	prev := node.PrevNamedSibling()
	if prev == nil || prev.Type() != "comment" {
		return ""
	}
	if prev.EndPoint().Row+1 < node.StartPoint().Row {
		return ""
	}
	return p.text(prev)
}
