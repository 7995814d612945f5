package extract

import (
	"go/ast"
	"go/parser"
	"go/token"
	"path/filepath"

	"github.com/matzehuels/bigpicture/pkg/tree"
)

// Go extracts type declarations (with the methods declared on them in the
// same file) and functions from .go files.
type Go struct{}

func (Go) Language() string { return LanguageGo }

func (Go) Supports(path string) bool { return hasExt(path, ".go") }

func (Go) Extract(path string, src []byte) (*tree.Node, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, filepath.Base(path), src, parser.SkipObjectResolution)
	if err != nil {
		return nil, err
	}

	mod := moduleNode(path)
	types := make(map[string]*tree.Node)
	typeNode := func(name string) *tree.Node {
		if n, ok := types[name]; ok {
			return n
		}
		n := &tree.Node{Kind: tree.KindClass, Label: name}
		types[name] = n
		mod.Children = append(mod.Children, n)
		return n
	}

	for _, decl := range f.Decls {
		switch d := decl.(type) {
		case *ast.GenDecl:
			if d.Tok != token.TYPE {
				continue
			}
			for _, spec := range d.Specs {
				if ts, ok := spec.(*ast.TypeSpec); ok {
					typeNode(ts.Name.Name)
				}
			}
		case *ast.FuncDecl:
			fn := &tree.Node{Label: d.Name.Name}
			if d.Recv == nil || len(d.Recv.List) == 0 {
				fn.Kind = tree.KindFunction
				mod.Children = append(mod.Children, fn)
				continue
			}
			fn.Kind = tree.KindMethod
			recv := receiverName(d.Recv.List[0].Type)
			t := typeNode(recv)
			t.Children = append(t.Children, fn)
		}
	}
	return mod, nil
}

// receiverName strips pointers and type parameters from a receiver type.
func receiverName(expr ast.Expr) string {
	for {
		switch e := expr.(type) {
		case *ast.StarExpr:
			expr = e.X
		case *ast.ParenExpr:
			expr = e.X
		case *ast.IndexExpr:
			expr = e.X
		case *ast.IndexListExpr:
			expr = e.X
		case *ast.Ident:
			return e.Name
		default:
			return "?"
		}
	}
}
