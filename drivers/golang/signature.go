package golang

import (
	"fmt"
	"go/ast"
	"strings"
)

// funcSignature holds structured function parameter and result types.
type funcSignature struct {
	params  []string
	results []string
}

// renderTypeExpr converts any ast.Expr to its canonical string
// representation. This is the single source of truth for type rendering
// across the driver.
func renderTypeExpr(expr ast.Expr) string {
	if expr == nil {
		return ""
	}

	switch e := expr.(type) {
	case *ast.Ident:
		return e.Name

	case *ast.SelectorExpr:
		return renderTypeExpr(e.X) + "." + e.Sel.Name

	case *ast.StarExpr:
		return "*" + renderTypeExpr(e.X)

	case *ast.ArrayType:
		if e.Len != nil {
			return fmt.Sprintf("[%s]%s", renderTypeExpr(e.Len), renderTypeExpr(e.Elt))
		}
		return "[]" + renderTypeExpr(e.Elt)

	case *ast.MapType:
		return "map[" + renderTypeExpr(e.Key) + "]" + renderTypeExpr(e.Value)

	case *ast.InterfaceType:
		if e.Methods == nil || len(e.Methods.List) == 0 {
			return "interface{}"
		}
		return "interface{...}"

	case *ast.FuncType:
		return "func" + renderFuncSignature(extractFuncSignature(e))

	case *ast.Ellipsis:
		return "..." + renderTypeExpr(e.Elt)

	case *ast.ChanType:
		switch e.Dir {
		case ast.RECV:
			return "<-chan " + renderTypeExpr(e.Value)
		case ast.SEND:
			return "chan<- " + renderTypeExpr(e.Value)
		default:
			return "chan " + renderTypeExpr(e.Value)
		}

	case *ast.StructType:
		return renderStructType(e)

	case *ast.IndexExpr:
		return renderTypeExpr(e.X) + "[" + renderTypeExpr(e.Index) + "]"

	case *ast.IndexListExpr:
		indices := make([]string, len(e.Indices))
		for i, idx := range e.Indices {
			indices[i] = renderTypeExpr(idx)
		}
		return renderTypeExpr(e.X) + "[" + strings.Join(indices, ", ") + "]"

	case *ast.ParenExpr:
		return "(" + renderTypeExpr(e.X) + ")"

	case *ast.BasicLit:
		return e.Value

	default:
		return "unknown"
	}
}

// extractFuncSignature extracts structured parameter and result types from
// a function type. Handles multiple names per field (a, b int) and variadic
// parameters.
func extractFuncSignature(funcType *ast.FuncType) funcSignature {
	if funcType == nil {
		return funcSignature{}
	}

	var params []string
	if funcType.Params != nil {
		for _, field := range funcType.Params.List {
			typeStr := renderTypeExpr(field.Type)
			if len(field.Names) == 0 {
				params = append(params, typeStr)
				continue
			}
			for range field.Names {
				params = append(params, typeStr)
			}
		}
	}

	var results []string
	if funcType.Results != nil {
		for _, field := range funcType.Results.List {
			typeStr := renderTypeExpr(field.Type)
			if len(field.Names) == 0 {
				results = append(results, typeStr)
				continue
			}
			for range field.Names {
				results = append(results, typeStr)
			}
		}
	}

	return funcSignature{params: params, results: results}
}

// renderFuncSignature renders a funcSignature to its canonical string form:
// "(Type1, Type2) RetType" or "(Type1) (RetType1, RetType2)".
func renderFuncSignature(sig funcSignature) string {
	paramStr := "(" + strings.Join(sig.params, ", ") + ")"

	switch len(sig.results) {
	case 0:
		return paramStr
	case 1:
		return paramStr + " " + sig.results[0]
	default:
		return paramStr + " (" + strings.Join(sig.results, ", ") + ")"
	}
}

// renderStructType produces "struct{Field1 Type1; Field2 Type2}" with
// exported fields only. Embedded fields appear as their type string.
func renderStructType(structType *ast.StructType) string {
	if structType.Fields == nil || len(structType.Fields.List) == 0 {
		return "struct{}"
	}

	var fields []string
	for _, field := range structType.Fields.List {
		typeStr := renderTypeExpr(field.Type)

		if len(field.Names) == 0 {
			fields = append(fields, typeStr)
			continue
		}

		for _, name := range field.Names {
			if !name.IsExported() {
				continue
			}
			fields = append(fields, name.Name+" "+typeStr)
		}
	}

	if len(fields) == 0 {
		return "struct{}"
	}
	return "struct{" + strings.Join(fields, "; ") + "}"
}

// renderConstVarType returns the resolved type of a const or var spec: the
// explicit type when present, otherwise a literal-based inference for the
// value at the given position in the value spec.
func renderConstVarType(spec *ast.ValueSpec, pos int) string {
	if spec == nil {
		return "untyped"
	}
	if spec.Type != nil {
		return renderTypeExpr(spec.Type)
	}
	if pos >= len(spec.Values) {
		return "untyped"
	}
	return inferValueType(spec.Values[pos])
}

// inferValueType guesses a basic type from a literal or well-known
// initializer expression.
func inferValueType(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.BasicLit:
		switch e.Kind.String() {
		case "INT":
			return "int"
		case "FLOAT":
			return "float64"
		case "STRING":
			return "string"
		case "CHAR":
			return "rune"
		case "IMAG":
			return "complex128"
		}
	case *ast.Ident:
		if e.Name == "true" || e.Name == "false" {
			return "bool"
		}
	case *ast.CompositeLit:
		return renderTypeExpr(e.Type)
	case *ast.UnaryExpr:
		if comp, ok := e.X.(*ast.CompositeLit); ok && e.Op.String() == "&" {
			return "*" + renderTypeExpr(comp.Type)
		}
	case *ast.FuncLit:
		return renderTypeExpr(e.Type)
	case *ast.CallExpr:
		// errors.New, fmt.Errorf and friends dominate package-level vars.
		if sel, ok := e.Fun.(*ast.SelectorExpr); ok {
			if pkg, ok := sel.X.(*ast.Ident); ok && (pkg.Name == "errors" || pkg.Name == "fmt") &&
				(sel.Sel.Name == "New" || sel.Sel.Name == "Errorf") {
				return "error"
			}
		}
	}
	return "untyped"
}
