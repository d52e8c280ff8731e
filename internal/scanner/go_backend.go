package scanner

import (
	"go/ast"
	"go/parser"
	"go/token"

	"github.com/codegraphhq/codegraph/internal/model"
)

// goVariant backs .go files with a real parser instead of the heuristic
// line scanner, grounded on the teacher's own Go-language adapter
// (internal/adapters/go/funcdetector.go), which resolves function/method
// declarations and call sites via go/ast. Optional alongside the required
// ts/tsx/js/jsx backends — unsupported extensions elsewhere in the tree
// still yield an empty result rather than an error.
type goVariant struct{}

func (goVariant) Scan(sourceText, filePath string, opts Options) (Result, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, filePath, sourceText, parser.ParseComments)
	if err != nil {
		return Result{}, err
	}

	var res Result

	for _, decl := range f.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok {
			continue
		}
		name := funcSymbolName(fn)
		pos := fset.Position(fn.Pos())
		kind := model.KindFunction
		if fn.Recv != nil {
			kind = model.KindMethod
		}
		el := model.Element{
			Kind:       kind,
			Name:       name,
			File:       filePath,
			Line:       pos.Line,
			Exported:   ast.IsExported(fn.Name.Name),
			Parameters: goParams(fn),
		}
		res.Elements = append(res.Elements, el)

		if fn.Body == nil {
			continue
		}
		callerClass := ""
		if fn.Recv != nil && len(fn.Recv.List) > 0 {
			callerClass = recvTypeName(fn.Recv.List[0].Type)
		}
		ast.Inspect(fn.Body, func(n ast.Node) bool {
			call, ok := n.(*ast.CallExpr)
			if !ok {
				return true
			}
			cpos := fset.Position(call.Pos())
			switch fun := call.Fun.(type) {
			case *ast.SelectorExpr:
				recv := ""
				if id, ok := fun.X.(*ast.Ident); ok {
					recv = id.Name
				}
				res.Calls = append(res.Calls, CallEdge{
					CalleeObject:   recv,
					CalleeFunction: fun.Sel.Name,
					CallType:       CallMethod,
					CallerFunction: name,
					CallerClass:    callerClass,
					Line:           cpos.Line,
				})
			case *ast.Ident:
				res.Calls = append(res.Calls, CallEdge{
					CalleeFunction: fun.Name,
					CallType:       CallFunction,
					CallerFunction: name,
					CallerClass:    callerClass,
					Line:           cpos.Line,
				})
			}
			return true
		})
	}

	for _, imp := range f.Imports {
		pos := fset.Position(imp.Pos())
		path := stringLit(imp.Path.Value)
		spec := "*"
		isDefault := false
		if imp.Name != nil {
			spec = imp.Name.Name
		}
		res.Imports = append(res.Imports, ImportEdge{
			Source:     path,
			Specifiers: []string{spec},
			IsDefault:  isDefault,
			ImportType: ImportESM,
			Line:       pos.Line,
		})
	}

	var exported []string
	for _, el := range res.Elements {
		if el.Exported {
			exported = append(exported, el.Name)
		}
	}
	if len(exported) > 0 {
		res.Exports = []ExportEdge{{Specifiers: exported, ExportType: ExportESM}}
	}

	return res, nil
}

func funcSymbolName(fn *ast.FuncDecl) string {
	if fn.Recv == nil || len(fn.Recv.List) == 0 {
		return fn.Name.Name
	}
	return recvTypeName(fn.Recv.List[0].Type) + "." + fn.Name.Name
}

func recvTypeName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.StarExpr:
		if id, ok := t.X.(*ast.Ident); ok {
			return id.Name
		}
	case *ast.Ident:
		return t.Name
	}
	return ""
}

func goParams(fn *ast.FuncDecl) []model.Parameter {
	if fn.Type.Params == nil {
		return nil
	}
	var out []model.Parameter
	for _, field := range fn.Type.Params.List {
		_, isVariadic := field.Type.(*ast.Ellipsis)
		if len(field.Names) == 0 {
			out = append(out, model.Parameter{IsRest: isVariadic})
			continue
		}
		for _, n := range field.Names {
			out = append(out, model.Parameter{Name: n.Name, IsRest: isVariadic})
		}
	}
	return out
}

func stringLit(s string) string {
	if len(s) >= 2 {
		return s[1 : len(s)-1]
	}
	return s
}
