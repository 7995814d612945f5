package geometry

import "github.com/matzehuels/bigpicture/pkg/tree"

// Version is the current document format version.
const Version = 1

// Layout is a serialized box layout.
type Layout struct {
	Version int       `json:"version"`
	Width   float64   `json:"width"`
	Height  float64   `json:"height"`
	Config  Constants `json:"config"`
	Root    Box       `json:"root"`
}

// Constants mirrors the layout constants used to build the document.
type Constants struct {
	Padding        float64 `json:"padding"`
	Margin         float64 `json:"margin"`
	HeaderHeight   float64 `json:"header_height"`
	MinLeafWidth   float64 `json:"min_leaf_width"`
	MaxLeafWidth   float64 `json:"max_leaf_width"`
	MinLeafHeight  float64 `json:"min_leaf_height"`
	RootRowWidth   float64 `json:"root_row_width"`
	NestedRowWidth float64 `json:"nested_row_width"`
	CharWidth      float64 `json:"char_width"`
	IconPadding    float64 `json:"icon_padding"`
	GlyphWidth     float64 `json:"glyph_width"`
	LabelInset     float64 `json:"label_inset"`
	Ellipsis       string  `json:"ellipsis"`
}

// Box is one serialized box. X and Y are relative to the parent box.
type Box struct {
	ID        string    `json:"id"`
	NodeID    string    `json:"node_id,omitempty"`
	Kind      tree.Kind `json:"kind"`
	Label     string    `json:"label"`
	Display   string    `json:"display"`
	Truncated bool      `json:"truncated,omitempty"`
	Message   string    `json:"message,omitempty"`
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
	Width     float64   `json:"width"`
	Height    float64   `json:"height"`
	Collapsed bool      `json:"collapsed,omitempty"`
	Rows      []Row     `json:"rows,omitempty"`
}

// Row is a serialized row of child boxes.
type Row struct {
	Y      float64 `json:"y"`
	Height float64 `json:"height"`
	Width  float64 `json:"width"`
	Items  []Box   `json:"items"`
}

// Count returns the number of boxes in the document.
func (l Layout) Count() int {
	return l.Root.count()
}

func (b Box) count() int {
	n := 1
	for _, r := range b.Rows {
		for _, it := range r.Items {
			n += it.count()
		}
	}
	return n
}

// Tree rebuilds the hierarchy the document was laid out from. Collapsed
// boxes keep their rows in the document, so no node is lost.
func (l Layout) Tree() *tree.Node {
	return l.Root.node()
}

func (b Box) node() *tree.Node {
	n := &tree.Node{ID: b.NodeID, Kind: b.Kind, Label: b.Label, Message: b.Message}
	for _, r := range b.Rows {
		for _, it := range r.Items {
			n.Children = append(n.Children, it.node())
		}
	}
	return n
}
