package layout

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/matzehuels/bigpicture/pkg/errors"
	"github.com/matzehuels/bigpicture/pkg/tree"
)

func collapseTree() *tree.Node {
	return node(tree.KindModule, "root",
		node(tree.KindClass, "A",
			leaf(tree.KindMethod, "x"),
			leaf(tree.KindMethod, "y"),
			leaf(tree.KindMethod, "z"),
		),
		leaf(tree.KindFunction, "B"),
	)
}

func TestToggleCollapse(t *testing.T) {
	l := mustBuild(t, collapseTree(), DefaultConfig())
	a := mustBox(t, l, "node-0")
	if a.Height != 35+42+15 {
		t.Fatalf("expanded A Height = %v, want 92", a.Height)
	}
	if l.Height() != 35+92+15 {
		t.Fatalf("expanded root Height = %v, want 142", l.Height())
	}
	rootWidth, aWidth := l.Width(), a.Width
	y := mustBox(t, l, "node-0-1")
	yX, yY := y.X, y.Y

	if err := l.Toggle("node-0"); err != nil {
		t.Fatalf("Toggle() error: %v", err)
	}

	if !a.Collapsed || a.State() != Collapsed {
		t.Error("A should be collapsed")
	}
	if a.Height != 35 {
		t.Errorf("collapsed A Height = %v, want 35", a.Height)
	}
	// The row now holds A at 35 and B at 42.
	if got := l.Root().Rows[0].Height; got != 42 {
		t.Errorf("root row Height = %v, want 42", got)
	}
	if l.Height() != 35+42+15 {
		t.Errorf("root Height = %v, want 92", l.Height())
	}
	if l.Width() != rootWidth || a.Width != aWidth {
		t.Error("widths must not change on collapse")
	}
	if y.X != yX || y.Y != yY {
		t.Error("hidden children keep their geometry")
	}
}

// rowTree puts a two-row class and a one-row class side by side in the
// root's first row, with a leaf wrapped onto the second row.
func rowTree() *tree.Node {
	methods := func(n int) []*tree.Node {
		var out []*tree.Node
		for i := 0; i < n; i++ {
			out = append(out, leaf(tree.KindMethod, "m"))
		}
		return out
	}
	return node(tree.KindModule, "root",
		node(tree.KindClass, "Tall", methods(7)...),
		node(tree.KindClass, "Short", methods(2)...),
		leaf(tree.KindFunction, "f"),
	)
}

func TestToggleRowHeight(t *testing.T) {
	l := mustBuild(t, rowTree(), DefaultConfig())
	r := l.Root()
	if diff := cmp.Diff([][]string{{"node-0", "node-1"}, {"node-2"}}, rowIDs(r)); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
	tall, short, f := mustBox(t, l, "node-0"), mustBox(t, l, "node-1"), mustBox(t, l, "node-2")
	if tall.Height != 144 || short.Height != 92 {
		t.Fatalf("heights = %v, %v, want 144, 92", tall.Height, short.Height)
	}
	if r.Rows[0].Height != 144 || r.Rows[1].Y != 189 {
		t.Fatalf("row 0 height %v, row 1 y %v, want 144, 189", r.Rows[0].Height, r.Rows[1].Y)
	}

	t.Run("shorter sibling", func(t *testing.T) {
		if err := l.Toggle("node-1"); err != nil {
			t.Fatalf("Toggle() error: %v", err)
		}
		if short.Height != 35 {
			t.Errorf("Short Height = %v, want 35", short.Height)
		}
		if r.Rows[0].Height != 144 {
			t.Errorf("row 0 Height = %v, want 144", r.Rows[0].Height)
		}
		if r.Rows[1].Y != 189 || f.Y != 189 {
			t.Errorf("row 1 y = %v, leaf y = %v, want 189", r.Rows[1].Y, f.Y)
		}
		if err := l.Toggle("node-1"); err != nil {
			t.Fatalf("Toggle() error: %v", err)
		}
	})

	t.Run("tallest sibling", func(t *testing.T) {
		beforeY, beforeH := r.Rows[1].Y, r.Height
		if err := l.Toggle("node-0"); err != nil {
			t.Fatalf("Toggle() error: %v", err)
		}
		if r.Rows[0].Height != short.Height {
			t.Errorf("row 0 Height = %v, want Short's %v", r.Rows[0].Height, short.Height)
		}
		delta := 144 - r.Rows[0].Height
		if got := beforeY - r.Rows[1].Y; got != delta {
			t.Errorf("row 1 moved up %v, want %v", got, delta)
		}
		if r.Rows[1].Y != 137 || f.Y != 137 {
			t.Errorf("row 1 y = %v, leaf y = %v, want 137", r.Rows[1].Y, f.Y)
		}
		if got := beforeH - r.Height; got != delta {
			t.Errorf("root shrank by %v, want %v", got, delta)
		}
	})
}

func TestToggleRoundTrip(t *testing.T) {
	l := mustBuild(t, sampleTree(), DefaultConfig())
	before := l.Export()

	for _, id := range []string{"node-1-1", "node-0", RootID, "node-3-0"} {
		t.Run(id, func(t *testing.T) {
			if err := l.Toggle(id); err != nil {
				t.Fatalf("Toggle() error: %v", err)
			}
			if err := l.Toggle(id); err != nil {
				t.Fatalf("Toggle() error: %v", err)
			}
			if diff := cmp.Diff(before, l.Export()); diff != "" {
				t.Errorf("double toggle changed geometry (-before +after):\n%s", diff)
			}
		})
	}
}

func TestRelayoutIdempotent(t *testing.T) {
	l := mustBuild(t, sampleTree(), DefaultConfig())
	if err := l.Toggle("node-1-0"); err != nil {
		t.Fatal(err)
	}
	want := l.Export()
	for i := 0; i < 3; i++ {
		if err := l.Relayout("node-1-0"); err != nil {
			t.Fatal(err)
		}
	}
	if diff := cmp.Diff(want, l.Export()); diff != "" {
		t.Errorf("Relayout changed geometry (-want +got):\n%s", diff)
	}
}

func TestToggleMatchesFreshBuild(t *testing.T) {
	sequences := [][]string{
		{"node-0-0"},
		{"node-0-0", "node-0"},
		{"node-1-1", "node-1-0", "node-1-1"},
		{"node-3-0", "node-3", RootID},
		{"node-0", "node-0-0", "node-0"},
	}
	for _, seq := range sequences {
		l := mustBuild(t, sampleTree(), DefaultConfig())
		for _, id := range seq {
			if err := l.Toggle(id); err != nil {
				t.Fatalf("Toggle(%s) error: %v", id, err)
			}
		}
		fresh := mustBuild(t, sampleTree(), DefaultConfig(), WithVisibility(l.Visibility()))
		if diff := cmp.Diff(fresh.Export(), l.Export()); diff != "" {
			t.Errorf("after %v incremental differs from fresh build (-fresh +incremental):\n%s", seq, diff)
		}
	}
}

func TestToggleInvalidTarget(t *testing.T) {
	l := mustBuild(t, sampleTree(), DefaultConfig())
	before := l.Export()

	for _, id := range []string{"node-42", "node-0-1", "", "bogus"} {
		t.Run(id, func(t *testing.T) {
			err := l.Toggle(id)
			if !errors.Is(err, errors.ErrCodeInvalidTarget) {
				t.Fatalf("Toggle(%q) error = %v, want INVALID_TARGET", id, err)
			}
			if diff := cmp.Diff(before, l.Export()); diff != "" {
				t.Errorf("failed toggle changed geometry:\n%s", diff)
			}
		})
	}
}

func TestSetCollapsed(t *testing.T) {
	l := mustBuild(t, sampleTree(), DefaultConfig())
	changed, err := l.SetCollapsed("node-1", false)
	if err != nil || changed {
		t.Fatalf("SetCollapsed(expanded, false) = %v, %v", changed, err)
	}
	changed, err = l.SetCollapsed("node-1", true)
	if err != nil || !changed {
		t.Fatalf("SetCollapsed(expanded, true) = %v, %v", changed, err)
	}
	if !mustBox(t, l, "node-1").Collapsed {
		t.Error("node-1 should be collapsed")
	}
	if _, err := l.SetCollapsed("node-2", true); !errors.Is(err, errors.ErrCodeInvalidTarget) {
		t.Errorf("SetCollapsed(leaf) error = %v, want INVALID_TARGET", err)
	}
}

func TestCollapseAndExpandAll(t *testing.T) {
	l := mustBuild(t, sampleTree(), DefaultConfig())
	expanded := l.Export()

	containers := 0
	l.Walk(func(b *Box) bool {
		if b.Toggleable() {
			containers++
		}
		return true
	})

	if n := l.CollapseAll(); n != containers {
		t.Errorf("CollapseAll() = %d, want %d", n, containers)
	}
	if l.Height() != 35 {
		t.Errorf("Height after CollapseAll = %v, want 35", l.Height())
	}
	fresh := mustBuild(t, sampleTree(), DefaultConfig(), WithVisibility(l.Visibility()))
	if diff := cmp.Diff(fresh.Export(), l.Export()); diff != "" {
		t.Errorf("CollapseAll differs from fresh build:\n%s", diff)
	}

	if n := l.CollapseAll(); n != 0 {
		t.Errorf("second CollapseAll() = %d, want 0", n)
	}
	if n := l.ExpandAll(); n != containers {
		t.Errorf("ExpandAll() = %d, want %d", n, containers)
	}
	if diff := cmp.Diff(expanded, l.Export()); diff != "" {
		t.Errorf("ExpandAll did not restore geometry:\n%s", diff)
	}
}

func TestParseRoundTrip(t *testing.T) {
	l := mustBuild(t, sampleTree(), DefaultConfig())
	if err := l.Toggle("node-1-1"); err != nil {
		t.Fatal(err)
	}
	doc := l.Export()

	parsed, err := Parse(doc)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if diff := cmp.Diff(doc, parsed.Export()); diff != "" {
		t.Fatalf("Parse/Export mismatch (-want +got):\n%s", diff)
	}

	// Toggling a parsed layout continues from the stored state.
	if err := parsed.Toggle("node-1-1"); err != nil {
		t.Fatal(err)
	}
	if err := l.Toggle("node-1-1"); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(l.Export(), parsed.Export()); diff != "" {
		t.Errorf("parsed toggle differs (-built +parsed):\n%s", diff)
	}
}

func TestParseRejectsDuplicateIDs(t *testing.T) {
	doc := mustBuild(t, collapseTree(), DefaultConfig()).Export()
	doc.Root.Rows[0].Items[1].ID = "node-0"
	if _, err := Parse(doc); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Parse() error = %v, want INVALID_FORMAT", err)
	}
}
