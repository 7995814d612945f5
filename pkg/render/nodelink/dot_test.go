package nodelink

import (
	"strings"
	"testing"

	"github.com/matzehuels/bigpicture/pkg/tree"
)

func sample() *tree.Node {
	return &tree.Node{Kind: tree.KindModule, Label: "app.py", Children: []*tree.Node{
		{Kind: tree.KindClass, Label: "App", Children: []*tree.Node{
			{Kind: tree.KindMethod, Label: "run"},
		}},
		{Kind: tree.KindError, Label: "bad.py", Message: "invalid syntax"},
	}}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(sample(), Options{})

	wants := []string{
		"digraph G {",
		`"node" [label="app.py"`,
		`"node-0-0" [label="run"`,
		`"node" -> "node-0";`,
		`"node-0" -> "node-0-0";`,
		`style="rounded,filled,dashed"`,
		`fillcolor="#e7f5ff"`,
	}
	for _, w := range wants {
		if !strings.Contains(dot, w) {
			t.Errorf("DOT missing %q\n%s", w, dot)
		}
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(sample(), Options{Detailed: true})
	if !strings.Contains(dot, `label="bad.py\nerror\ninvalid syntax"`) {
		t.Errorf("detailed label missing kind and message:\n%s", dot)
	}
}

func TestToDOTMaxDepth(t *testing.T) {
	dot := ToDOT(sample(), Options{MaxDepth: 1})
	if strings.Contains(dot, "node-0-0") {
		t.Error("MaxDepth 1 should stop below the root's children")
	}
	if !strings.Contains(dot, `"node-1"`) {
		t.Error("root children should be drawn")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 100.00 50.00" width="100" height="50"`) {
		t.Errorf("normalizeViewBox() = %s", out)
	}

	plain := []byte(`<svg><g/></svg>`)
	if got := normalizeViewBox(plain); string(got) != string(plain) {
		t.Errorf("svg without viewBox should pass through, got %s", got)
	}
}
