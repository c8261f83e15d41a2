package golang

import (
	"context"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/apisurf-labs/apisurf/core/analyzer"
	"github.com/apisurf-labs/apisurf/pkg/errors"
	"github.com/apisurf-labs/apisurf/pkg/gomod"
)

// ListEntryFiles treats every non-internal Go package directory as one
// module unit named by its import path. Discovery order is the lexical walk
// order, so repeated runs enumerate identically.
func (a *Analyzer) ListEntryFiles(ctx context.Context, projectRoot string) ([]analyzer.ModuleEntry, error) {
	sourceRoot, err := findSourceRoot(projectRoot)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrConfiguration,
			"finding module root in %s: %v", projectRoot, err)
	}

	module, err := gomod.FindModulePath(sourceRoot)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrConfiguration,
			"reading module path in %s: %v", sourceRoot, err)
	}

	var entries []analyzer.ModuleEntry

	walkErr := filepath.WalkDir(sourceRoot, func(path string, d fs.DirEntry, err error) error {
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

		if !d.IsDir() {
			return nil
		}

		base := d.Name()
		if path != sourceRoot && (base == "internal" || base == "testdata" || base == "vendor" || strings.HasPrefix(base, "_") || strings.HasPrefix(base, ".")) {
			return fs.SkipDir
		}

		if !hasGoSource(path) {
			return nil
		}

		entries = append(entries, analyzer.ModuleEntry{
			Module: packagePath(sourceRoot, path, module),
			Path:   path,
		})
		return nil
	})
	if walkErr != nil {
		return nil, errors.Wrapf(errors.ErrConfiguration,
			"walking source at %s: %v", sourceRoot, walkErr)
	}

	return entries, nil
}

// ExportedDeclarations parses every non-test Go file of one package
// directory and collects its exported declarations in file name order,
// then declaration order.
func (a *Analyzer) ExportedDeclarations(ctx context.Context, entry analyzer.ModuleEntry) ([]analyzer.Export, error) {
	dirEntries, err := os.ReadDir(entry.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading package directory %s", entry.Path)
	}

	fset := token.NewFileSet()
	var files []*ast.File

	for _, de := range dirEntries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name := de.Name()
		if de.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}

		path := filepath.Join(entry.Path, name)
		file, parseErr := parser.ParseFile(fset, path, nil, 0)
		if parseErr != nil {
			a.logger.Warn("skipping unparsable file", "path", path, "err", parseErr)
			continue
		}
		if file.Name.Name == "main" {
			continue
		}
		files = append(files, file)
	}

	// First pass: index interfaces so embedded bases resolve in-package.
	interfaces := make(map[string]*ast.InterfaceType)
	for _, file := range files {
		for _, decl := range file.Decls {
			genDecl, ok := decl.(*ast.GenDecl)
			if !ok || genDecl.Tok != token.TYPE {
				continue
			}
			for _, spec := range genDecl.Specs {
				typeSpec, ok := spec.(*ast.TypeSpec)
				if !ok || typeSpec.Name == nil {
					continue
				}
				if iface, ok := typeSpec.Type.(*ast.InterfaceType); ok {
					interfaces[typeSpec.Name.Name] = iface
				}
			}
		}
	}

	var out []analyzer.Export
	add := func(name string, decl analyzer.Declaration) {
		out = append(out, analyzer.Export{Name: name, Decls: []analyzer.Declaration{decl}})
	}

	for _, file := range files {
		for _, decl := range file.Decls {
			switch d := decl.(type) {
			case *ast.FuncDecl:
				name, snap, ok := a.funcDecl(d)
				if ok {
					add(name, snap)
				}
			case *ast.GenDecl:
				switch d.Tok {
				case token.TYPE:
					a.typeDecls(d, interfaces, add)
				case token.CONST:
					a.valueDecls(d, "const", add)
				case token.VAR:
					a.valueDecls(d, "var", add)
				}
			}
		}
	}

	return out, nil
}

// funcDecl snapshots an exported function or method. Methods on unexported
// receivers are skipped; methods are exported as "Receiver.Method".
func (a *Analyzer) funcDecl(funcDecl *ast.FuncDecl) (string, analyzer.Declaration, bool) {
	if funcDecl.Name == nil || !funcDecl.Name.IsExported() {
		return "", analyzer.Declaration{}, false
	}

	sig := renderFuncSignature(extractFuncSignature(funcDecl.Type))

	name := funcDecl.Name.Name
	text := "func " + name + sig
	if funcDecl.Recv != nil {
		recvName := receiverTypeName(funcDecl.Recv)
		if recvName == "" || !ast.IsExported(recvName) {
			return "", analyzer.Declaration{}, false
		}
		name = recvName + "." + funcDecl.Name.Name
		text = "func (" + recvName + ") " + funcDecl.Name.Name + sig
	}

	return name, analyzer.Declaration{
		Kind:    analyzer.KindFunction,
		KindTag: string(analyzer.KindFunction),
		Name:    name,
		Text:    text,
	}, true
}

// typeDecls snapshots the exported type specs of one type declaration
// group. Interfaces flow through the interface rule with in-package
// embedded interfaces as bases; aliases through the type-alias rule;
// everything else through the raw fallback.
func (a *Analyzer) typeDecls(genDecl *ast.GenDecl, interfaces map[string]*ast.InterfaceType, add func(string, analyzer.Declaration)) {
	for _, spec := range genDecl.Specs {
		typeSpec, ok := spec.(*ast.TypeSpec)
		if !ok || typeSpec.Name == nil || !typeSpec.Name.IsExported() {
			continue
		}
		name := typeSpec.Name.Name

		if typeSpec.Assign.IsValid() {
			add(name, analyzer.Declaration{
				Kind:    analyzer.KindTypeAlias,
				KindTag: string(analyzer.KindTypeAlias),
				Name:    name,
				Text:    "type " + name + " = " + renderTypeExpr(typeSpec.Type),
			})
			continue
		}

		if iface, ok := typeSpec.Type.(*ast.InterfaceType); ok {
			add(name, a.interfaceDecl(name, iface, interfaces))
			continue
		}

		add(name, analyzer.Declaration{
			Kind:    analyzer.KindOther,
			KindTag: "TypeDeclaration",
			Name:    name,
			Text:    "type " + name + " " + renderTypeExpr(typeSpec.Type),
		})
	}
}

// interfaceDecl snapshots an interface: its own methods in source order,
// plus one base per embedded interface that resolves in the same package.
// Resolution is one level only.
func (a *Analyzer) interfaceDecl(name string, iface *ast.InterfaceType, interfaces map[string]*ast.InterfaceType) analyzer.Declaration {
	decl := analyzer.Declaration{
		Kind:    analyzer.KindInterface,
		KindTag: string(analyzer.KindInterface),
		Name:    name,
	}

	if iface.Methods == nil {
		return decl
	}

	for _, method := range iface.Methods.List {
		if len(method.Names) > 0 {
			funcType, ok := method.Type.(*ast.FuncType)
			if !ok {
				continue
			}
			decl.Members = append(decl.Members, analyzer.Member{
				Name:     method.Names[0].Name,
				Text:     method.Names[0].Name + renderFuncSignature(extractFuncSignature(funcType)),
				IsMethod: true,
			})
			continue
		}

		// Embedded interface.
		embedded := renderTypeExpr(method.Type)
		if base, ok := interfaces[embedded]; ok {
			decl.Bases = append(decl.Bases, analyzer.Base{
				Name:       embedded,
				Properties: ownMethodTexts(base),
			})
			continue
		}
		decl.Members = append(decl.Members, analyzer.Member{Text: embedded})
	}

	return decl
}

// ownMethodTexts lists an interface's directly declared method texts,
// excluding anything it embeds.
func ownMethodTexts(iface *ast.InterfaceType) []string {
	if iface.Methods == nil {
		return nil
	}
	var texts []string
	for _, method := range iface.Methods.List {
		if len(method.Names) == 0 {
			continue
		}
		if funcType, ok := method.Type.(*ast.FuncType); ok {
			texts = append(texts, method.Names[0].Name+renderFuncSignature(extractFuncSignature(funcType)))
		}
	}
	return texts
}

// valueDecls snapshots the exported names of one const or var group.
func (a *Analyzer) valueDecls(genDecl *ast.GenDecl, keyword string, add func(string, analyzer.Declaration)) {
	for _, spec := range genDecl.Specs {
		valSpec, ok := spec.(*ast.ValueSpec)
		if !ok {
			continue
		}
		for i, name := range valSpec.Names {
			if !name.IsExported() {
				continue
			}
			resolved := renderConstVarType(valSpec, i)
			add(name.Name, analyzer.Declaration{
				Kind:         analyzer.KindVariable,
				KindTag:      string(analyzer.KindVariable),
				Name:         name.Name,
				Text:         keyword + " " + name.Name + " " + resolved,
				ResolvedType: resolved,
			})
		}
	}
}

// packagePath derives the import path of the package at dir relative to the
// module source root.
func packagePath(sourceRoot, dir, module string) string {
	relDir, err := filepath.Rel(sourceRoot, dir)
	if err != nil || relDir == "." || relDir == "" {
		return module
	}
	return module + "/" + filepath.ToSlash(relDir)
}

// receiverTypeName extracts the base type name from a method receiver,
// stripping pointers and type parameters.
func receiverTypeName(recv *ast.FieldList) string {
	if recv == nil || len(recv.List) == 0 {
		return ""
	}

	expr := recv.List[0].Type
	if star, ok := expr.(*ast.StarExpr); ok {
		expr = star.X
	}
	if idx, ok := expr.(*ast.IndexExpr); ok {
		expr = idx.X
	}
	if idx, ok := expr.(*ast.IndexListExpr); ok {
		expr = idx.X
	}

	if ident, ok := expr.(*ast.Ident); ok {
		return ident.Name
	}
	return ""
}

// hasGoSource reports whether dir directly contains a non-test Go file.
func hasGoSource(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, e := range entries {
		name := e.Name()
		if !e.IsDir() && strings.HasSuffix(name, ".go") && !strings.HasSuffix(name, "_test.go") {
			return true
		}
	}
	return false
}

// findSourceRoot walks from dir looking for go.mod. Module zips extracted
// from the proxy nest the source under module@version/, so the walk allows
// two levels of nesting.
func findSourceRoot(dir string) (string, error) {
	if hasGoMod(dir) {
		return dir, nil
	}

	var found string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}

		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			return nil
		}
		if strings.Count(filepath.ToSlash(rel), "/") > 2 {
			return fs.SkipDir
		}

		if hasGoMod(path) {
			found = path
			return filepath.SkipAll
		}
		return nil
	})
	if err != nil {
		return "", errors.Wrap(err, "searching for go.mod")
	}

	if found == "" {
		return "", errors.Newf("no go.mod found under %s", dir)
	}
	return found, nil
}

// hasGoMod reports whether the directory contains a go.mod file.
func hasGoMod(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, "go.mod"))
	return err == nil && !info.IsDir()
}
