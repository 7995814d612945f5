package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/bigpicture/pkg/render/box/layout"
	"github.com/matzehuels/bigpicture/pkg/tree"
)

func sampleViewModel(t *testing.T) viewModel {
	t.Helper()
	root := &tree.Node{Kind: tree.KindProject, Label: "shop", Children: []*tree.Node{
		{Kind: tree.KindModule, Label: "cart.py", Children: []*tree.Node{
			{Kind: tree.KindClass, Label: "Cart", Children: []*tree.Node{
				{Kind: tree.KindMethod, Label: "add_item"},
				{Kind: tree.KindMethod, Label: "remove_item"},
			}},
			{Kind: tree.KindFunction, Label: "checkout"},
		}},
		{Kind: tree.KindModule, Label: "users.py", Children: []*tree.Node{
			{Kind: tree.KindFunction, Label: "login"},
		}},
	}}
	l, err := layout.Build(root, layout.DefaultConfig())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	return newViewModel(l, "shop")
}

// press feeds keys to m. Named keys are enter and esc; anything else is
// typed as runes.
func press(m viewModel, keys ...string) (viewModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(viewModel)
	}
	return m, cmd
}

func rowIDs(m viewModel) []string {
	ids := make([]string, len(m.Rows))
	for i, b := range m.Rows {
		ids[i] = b.ID
	}
	return ids
}

func TestViewModelNavigation(t *testing.T) {
	m := sampleViewModel(t)
	if len(m.Rows) != 8 {
		t.Fatalf("rows = %v, want 8 boxes", rowIDs(m))
	}

	m, _ = press(m, "k")
	if m.Cursor != 0 {
		t.Errorf("cursor moved above the first row: %d", m.Cursor)
	}
	m, _ = press(m, "j", "j", "j")
	if got := m.selectedID(); got != "node-0-0-0" {
		t.Errorf("selected = %q, want node-0-0-0", got)
	}
	for range 20 {
		m, _ = press(m, "j")
	}
	if m.Cursor != len(m.Rows)-1 {
		t.Errorf("cursor = %d, want last row %d", m.Cursor, len(m.Rows)-1)
	}
}

func TestViewModelToggle(t *testing.T) {
	m := sampleViewModel(t)
	before := m.Layout.Height()

	m, _ = press(m, "j", "enter")
	b, _ := m.Layout.Box("node-0")
	if !b.Collapsed {
		t.Fatal("node-0 should be collapsed")
	}
	want := []string{"node", "node-0", "node-1", "node-1-0"}
	if got := rowIDs(m); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("rows = %v, want %v", got, want)
	}
	if m.selectedID() != "node-0" {
		t.Errorf("cursor left the toggled box: %q", m.selectedID())
	}
	if m.Layout.Height() >= before {
		t.Errorf("height %v should shrink below %v", m.Layout.Height(), before)
	}

	m, _ = press(m, " ")
	if len(m.Rows) != 8 || m.Layout.Height() != before {
		t.Errorf("expand did not restore: %d rows, height %v", len(m.Rows), m.Layout.Height())
	}
}

func TestViewModelToggleLeaf(t *testing.T) {
	m := sampleViewModel(t)
	m, _ = press(m, "j", "j", "j", "enter")
	if m.Status != "not a container" {
		t.Errorf("status = %q", m.Status)
	}
	if len(m.Rows) != 8 {
		t.Errorf("rows changed after toggling a leaf: %v", rowIDs(m))
	}
}

func TestViewModelBulk(t *testing.T) {
	m := sampleViewModel(t)

	m, _ = press(m, "c")
	if len(m.Rows) != 1 || m.Cursor != 0 {
		t.Errorf("after collapse all: rows %v, cursor %d", rowIDs(m), m.Cursor)
	}
	if m.Status != "collapsed 4 boxes" {
		t.Errorf("status = %q", m.Status)
	}

	m, _ = press(m, "e")
	if len(m.Rows) != 8 {
		t.Errorf("after expand all: rows %v", rowIDs(m))
	}
}

func TestViewModelSearch(t *testing.T) {
	m := sampleViewModel(t)

	m, _ = press(m, "/", "it", "em")
	if !m.Searching || m.Input != "item" {
		t.Fatalf("searching = %v, input = %q", m.Searching, m.Input)
	}
	m, _ = press(m, "enter")
	if m.Searching {
		t.Error("enter should leave search input")
	}
	if got := m.selectedID(); got != "node-0-0-0" {
		t.Errorf("cursor = %q, want first match", got)
	}
	if !m.Result.Dimmed("node-1") || m.Result.Dimmed("node-0") {
		t.Error("users.py should be dimmed and cart.py revealed")
	}

	m, _ = press(m, "n")
	if got := m.selectedID(); got != "node-0-0-1" {
		t.Errorf("next match = %q, want node-0-0-1", got)
	}
	m, _ = press(m, "n")
	if got := m.selectedID(); got != "node-0-0-0" {
		t.Errorf("next match should wrap, got %q", got)
	}

	m, _ = press(m, "esc")
	if m.Result.Active() {
		t.Error("esc should clear the search")
	}
}

func TestViewModelQuit(t *testing.T) {
	m := sampleViewModel(t)
	if _, cmd := press(m, "q"); cmd == nil {
		t.Error("q should return a quit command")
	}
	// q is text while typing a query.
	m, cmd := press(m, "/", "q")
	if cmd != nil || m.Input != "q" {
		t.Errorf("input = %q, cmd = %v", m.Input, cmd)
	}
}

func TestViewModelView(t *testing.T) {
	m := sampleViewModel(t)
	m, _ = press(m, "j", "enter")
	out := m.View()
	for _, want := range []string{"shop", "cart.py", "▸", "[2/4]"} {
		if !strings.Contains(out, want) {
			t.Errorf("View() missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "add_item") {
		t.Error("View() shows children of a collapsed box")
	}
}
