package extract

import (
	"fmt"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

var (
	rustLanguage       = sitter.NewLanguage(tree_sitter_rust.Language())
	typeScriptLanguage = sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript())
	tsxLanguage        = sitter.NewLanguage(tree_sitter_typescript.LanguageTSX())
)

// parseSyntax parses src with lang and hands the root node to fn. Trees
// containing syntax errors are rejected with the position of the first one.
func parseSyntax(lang *sitter.Language, src []byte, fn func(root *sitter.Node)) error {
	parser := sitter.NewParser()
	defer parser.Close()
	if err := parser.SetLanguage(lang); err != nil {
		return fmt.Errorf("set language: %w", err)
	}

	t := parser.Parse(src, nil)
	if t == nil {
		return fmt.Errorf("parse failed")
	}
	defer t.Close()

	root := t.RootNode()
	if root == nil {
		return fmt.Errorf("parse failed")
	}
	if root.HasError() {
		return syntaxError(root, src)
	}
	fn(root)
	return nil
}

func syntaxError(root *sitter.Node, src []byte) error {
	var bad *sitter.Node
	stack := []*sitter.Node{root}
	for len(stack) > 0 && bad == nil {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n.IsError() || n.IsMissing() {
			bad = n
			break
		}
		for i := int(n.ChildCount()) - 1; i >= 0; i-- {
			if c := n.Child(uint(i)); c != nil {
				stack = append(stack, c)
			}
		}
	}
	if bad == nil {
		return fmt.Errorf("syntax error")
	}
	pos := bad.StartPosition()
	if bad.IsMissing() {
		return fmt.Errorf("line %d: missing %s", pos.Row+1, bad.Kind())
	}
	text := strings.TrimSpace(bad.Utf8Text(src))
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	if len(text) > 40 {
		text = text[:40] + "..."
	}
	return fmt.Errorf("line %d: syntax error near %q", pos.Row+1, text)
}

func namedChildren(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	out := make([]*sitter.Node, 0, n.NamedChildCount())
	for i := uint(0); i < n.NamedChildCount(); i++ {
		if c := n.NamedChild(i); c != nil {
			out = append(out, c)
		}
	}
	return out
}

func fieldText(n *sitter.Node, field string, src []byte) string {
	c := n.ChildByFieldName(field)
	if c == nil {
		return ""
	}
	return strings.TrimSpace(c.Utf8Text(src))
}
