package layout

import (
	"github.com/matzehuels/bigpicture/pkg/tree"
)

// RootID is the identifier of the root box. Descendants append "-<index>"
// per level, so the third child of the root's first child is "node-0-2".
const RootID = "node"

// State is the visibility of a container box.
type State uint8

const (
	Expanded State = iota
	Collapsed
)

func (s State) String() string {
	if s == Collapsed {
		return "collapsed"
	}
	return "expanded"
}

// Visibility maps box IDs to their state. Only containers carry state.
type Visibility map[string]State

// Collapsed reports whether id is collapsed in v. Nil maps are all expanded.
func (v Visibility) Collapsed(id string) bool {
	return v[id] == Collapsed
}

// Label is a box's text. Display is what fits the box; Text is the full
// label and is never shortened.
type Label struct {
	Text      string
	Display   string
	Truncated bool
}

// Box is the computed geometry of one node. X and Y are relative to the
// parent box's top-left corner.
//
// Boxes returned by a [Layout] point into its store and must be treated as
// read-only; use the Layout's methods to change them.
type Box struct {
	ID     string
	NodeID string
	Kind   tree.Kind
	Label  Label
	// Message carries the extractor's failure text for error nodes.
	Message string
	Depth   int

	X, Y          float64
	Width, Height float64
	Rows          []Row
	Collapsed     bool

	index  int
	parent int
	row    int
	end    int
}

// Row is a horizontal band of child boxes inside a container.
type Row struct {
	Y      float64
	Height float64
	Width  float64
	Items  []Item
}

// Item places one child box within a row.
type Item struct {
	X  float64
	ID string

	index int
}

// IsLeaf reports whether the box has no child rows.
func (b *Box) IsLeaf() bool { return len(b.Rows) == 0 }

// Toggleable reports whether the box can be collapsed and expanded.
func (b *Box) Toggleable() bool { return !b.IsLeaf() }

// State returns the box's visibility state.
func (b *Box) State() State {
	if b.Collapsed {
		return Collapsed
	}
	return Expanded
}

// RowIndex returns the index of the parent row holding the box, or -1 for
// the root.
func (b *Box) RowIndex() int { return b.row }
