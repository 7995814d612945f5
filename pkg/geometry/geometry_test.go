package geometry

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/bigpicture/pkg/tree"
)

func sampleLayout() Layout {
	return Layout{
		Version: Version,
		Width:   310,
		Height:  142,
		Root: Box{
			ID: "node", Kind: "project", Label: "P", Display: "P",
			Width: 310, Height: 142,
			Rows: []Row{{
				Y: 35, Height: 42, Width: 280,
				Items: []Box{
					{ID: "node-0", Kind: "function", Label: "a", Display: "a", X: 15, Y: 35, Width: 120, Height: 42},
					{ID: "node-1", Kind: "error", Label: "b.py", Display: "b.py", Message: "boom", X: 145, Y: 35, Width: 120, Height: 42},
				},
			}},
		},
	}
}

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.json")
	want := sampleLayout()
	if err := WriteFile(want, path); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestCount(t *testing.T) {
	if got := sampleLayout().Count(); got != 3 {
		t.Errorf("Count() = %d, want 3", got)
	}
}

func TestReadRejectsNewerVersion(t *testing.T) {
	_, err := Read(strings.NewReader(`{"version": 99}`))
	if err == nil {
		t.Fatal("expected error for newer version")
	}
}

func TestUnmarshalInvalid(t *testing.T) {
	if _, err := Unmarshal([]byte("not json")); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestTree(t *testing.T) {
	got := sampleLayout().Tree()
	want := &tree.Node{Kind: "project", Label: "P", Children: []*tree.Node{
		{Kind: "function", Label: "a"},
		{Kind: "error", Label: "b.py", Message: "boom"},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Tree() mismatch (-want +got):\n%s", diff)
	}
}
