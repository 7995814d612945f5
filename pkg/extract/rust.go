package extract

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/matzehuels/bigpicture/pkg/tree"
)

// Rust extracts structs, enums, unions and traits as classes, impl and
// trait functions as their methods, free functions, and inline modules.
type Rust struct{}

func (Rust) Language() string { return LanguageRust }

func (Rust) Supports(path string) bool { return hasExt(path, ".rs") }

func (Rust) Extract(path string, src []byte) (*tree.Node, error) {
	mod := moduleNode(path)
	err := parseSyntax(rustLanguage, src, func(root *sitter.Node) {
		mod.Children = rustItems(root, src)
	})
	if err != nil {
		return nil, err
	}
	return mod, nil
}

// rustItems collects the items of a source file or declaration list.
func rustItems(scope *sitter.Node, src []byte) []*tree.Node {
	var out []*tree.Node
	types := make(map[string]*tree.Node)
	typeNode := func(name string) *tree.Node {
		if n, ok := types[name]; ok {
			return n
		}
		n := &tree.Node{Kind: tree.KindClass, Label: name}
		types[name] = n
		out = append(out, n)
		return n
	}

	for _, item := range namedChildren(scope) {
		switch item.Kind() {
		case "struct_item", "enum_item", "union_item":
			if name := fieldText(item, "name", src); name != "" {
				typeNode(name)
			}
		case "trait_item":
			name := fieldText(item, "name", src)
			if name == "" {
				continue
			}
			t := typeNode(name)
			t.Children = append(t.Children, rustMethods(item.ChildByFieldName("body"), src)...)
		case "impl_item":
			name := rustTypeName(item.ChildByFieldName("type"), src)
			if name == "" {
				continue
			}
			t := typeNode(name)
			t.Children = append(t.Children, rustMethods(item.ChildByFieldName("body"), src)...)
		case "function_item":
			if name := fieldText(item, "name", src); name != "" {
				out = append(out, &tree.Node{Kind: tree.KindFunction, Label: name})
			}
		case "mod_item":
			body := item.ChildByFieldName("body")
			if body == nil {
				continue
			}
			out = append(out, &tree.Node{
				Kind:     tree.KindModule,
				Label:    fieldText(item, "name", src),
				Children: rustItems(body, src),
			})
		}
	}
	return out
}

func rustMethods(body *sitter.Node, src []byte) []*tree.Node {
	var out []*tree.Node
	for _, c := range namedChildren(body) {
		switch c.Kind() {
		case "function_item", "function_signature_item":
			if name := fieldText(c, "name", src); name != "" {
				out = append(out, &tree.Node{Kind: tree.KindMethod, Label: name})
			}
		}
	}
	return out
}

// rustTypeName returns the base name of an impl's self type, dropping
// generic arguments and paths.
func rustTypeName(n *sitter.Node, src []byte) string {
	for n != nil {
		switch n.Kind() {
		case "generic_type":
			n = n.ChildByFieldName("type")
		case "scoped_type_identifier":
			n = n.ChildByFieldName("name")
		case "reference_type":
			n = n.ChildByFieldName("type")
		default:
			return n.Utf8Text(src)
		}
	}
	return ""
}
