package extract

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/matzehuels/bigpicture/pkg/tree"
)

// TypeScript extracts classes and interfaces (with their methods) and
// functions from .ts and .tsx files, including exported and arrow-function
// declarations.
type TypeScript struct{}

func (TypeScript) Language() string { return LanguageTypeScript }

func (TypeScript) Supports(path string) bool {
	return hasExt(path, ".ts", ".tsx", ".mts", ".cts") && !strings.HasSuffix(strings.ToLower(path), ".d.ts")
}

func (TypeScript) Extract(path string, src []byte) (*tree.Node, error) {
	lang := typeScriptLanguage
	if hasExt(path, ".tsx") {
		lang = tsxLanguage
	}
	mod := moduleNode(path)
	err := parseSyntax(lang, src, func(root *sitter.Node) {
		for _, stmt := range namedChildren(root) {
			mod.Children = append(mod.Children, tsDeclaration(stmt, src)...)
		}
	})
	if err != nil {
		return nil, err
	}
	return mod, nil
}

func tsDeclaration(n *sitter.Node, src []byte) []*tree.Node {
	switch n.Kind() {
	case "export_statement":
		if d := n.ChildByFieldName("declaration"); d != nil {
			return tsDeclaration(d, src)
		}
		if v := n.ChildByFieldName("value"); v != nil && v.Kind() == "class" {
			return []*tree.Node{tsClass("default", v, src)}
		}
	case "class_declaration", "abstract_class_declaration", "interface_declaration":
		if name := fieldText(n, "name", src); name != "" {
			return []*tree.Node{tsClass(name, n, src)}
		}
	case "function_declaration", "generator_function_declaration", "function_signature":
		if name := fieldText(n, "name", src); name != "" {
			return []*tree.Node{{Kind: tree.KindFunction, Label: name}}
		}
	case "lexical_declaration", "variable_declaration":
		var out []*tree.Node
		for _, d := range namedChildren(n) {
			if d.Kind() != "variable_declarator" {
				continue
			}
			v := d.ChildByFieldName("value")
			if v == nil {
				continue
			}
			switch v.Kind() {
			case "arrow_function", "function_expression", "function":
				if name := fieldText(d, "name", src); name != "" {
					out = append(out, &tree.Node{Kind: tree.KindFunction, Label: name})
				}
			}
		}
		return out
	}
	return nil
}

func tsClass(name string, n *sitter.Node, src []byte) *tree.Node {
	cls := &tree.Node{Kind: tree.KindClass, Label: name}
	for _, m := range namedChildren(n.ChildByFieldName("body")) {
		switch m.Kind() {
		case "method_definition", "method_signature", "abstract_method_signature":
			if label := fieldText(m, "name", src); label != "" {
				cls.Children = append(cls.Children, &tree.Node{Kind: tree.KindMethod, Label: label})
			}
		}
	}
	return cls
}
