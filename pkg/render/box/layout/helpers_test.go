package layout

import (
	"strings"
	"testing"

	"github.com/matzehuels/bigpicture/pkg/tree"
)

func leaf(kind tree.Kind, label string) *tree.Node {
	return &tree.Node{Kind: kind, Label: label}
}

func node(kind tree.Kind, label string, children ...*tree.Node) *tree.Node {
	return &tree.Node{Kind: kind, Label: label, Children: children}
}

// sampleTree is three levels deep with enough leaves to wrap rows at every
// nesting level.
func sampleTree() *tree.Node {
	methods := func(n int) []*tree.Node {
		var out []*tree.Node
		for i := 0; i < n; i++ {
			out = append(out, leaf(tree.KindMethod, strings.Repeat("m", 5+i*4)))
		}
		return out
	}
	return node(tree.KindProject, "proj",
		node(tree.KindModule, "alpha.py",
			node(tree.KindClass, "Alpha", methods(7)...),
			leaf(tree.KindFunction, "helper"),
		),
		node(tree.KindModule, "beta.py",
			node(tree.KindClass, "Beta", methods(3)...),
			node(tree.KindClass, "Gamma", methods(9)...),
		),
		&tree.Node{Kind: tree.KindError, Label: "broken.py", Message: "SyntaxError: invalid syntax"},
		node(tree.KindDirectory, "pkg",
			node(tree.KindModule, "delta.py", methods(2)...),
		),
	)
}

func mustBuild(t *testing.T, root *tree.Node, cfg Config, opts ...Option) *Layout {
	t.Helper()
	l, err := Build(root, cfg, opts...)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	return l
}

func mustBox(t *testing.T, l *Layout, id string) *Box {
	t.Helper()
	b, ok := l.Box(id)
	if !ok {
		t.Fatalf("box %q not found", id)
	}
	return b
}

func rowIDs(b *Box) [][]string {
	out := make([][]string, len(b.Rows))
	for i, r := range b.Rows {
		for _, it := range r.Items {
			out[i] = append(out[i], it.ID)
		}
	}
	return out
}
