package layout

import (
	"math"
	"strconv"

	"github.com/matzehuels/bigpicture/pkg/tree"
)

// Layout is the addressable geometry store of one render. Boxes live in an
// arena in preorder; every box's subtree is the contiguous range that
// follows it.
type Layout struct {
	cfg   Config
	boxes []Box
	index map[string]int
	nodes map[string]int
}

// Build lays out the tree rooted at root. It is deterministic: the same
// tree, config and visibility always produce identical geometry.
func Build(root *tree.Node, cfg Config, opts ...Option) (*Layout, error) {
	if err := tree.Validate(root); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	n := tree.Count(root)
	l := &Layout{
		cfg:   cfg,
		boxes: make([]Box, 0, n),
		index: make(map[string]int, n),
		nodes: make(map[string]int),
	}
	l.place(root, 0, RootID, -1, o.visibility)
	return l, nil
}

// ChildID returns the identifier of the i-th child of the box parentID.
func ChildID(parentID string, i int) string {
	return parentID + "-" + strconv.Itoa(i)
}

func (l *Layout) place(n *tree.Node, depth int, id string, parent int, vis Visibility) int {
	idx := len(l.boxes)
	l.boxes = append(l.boxes, Box{
		ID:      id,
		NodeID:  n.ID,
		Kind:    n.Kind,
		Label:   Label{Text: n.Label, Display: n.Label},
		Message: n.Message,
		Depth:   depth,
		index:   idx,
		parent:  parent,
		row:     -1,
	})
	l.index[id] = idx
	if n.ID != "" {
		if _, dup := l.nodes[n.ID]; !dup {
			l.nodes[n.ID] = idx
		}
	}

	if n.IsLeaf() {
		b := &l.boxes[idx]
		b.Width = l.cfg.leafWidth(n.Label)
		b.Height = l.cfg.MinLeafHeight
		b.Label = l.cfg.label(n.Label, b.Width)
		b.end = idx + 1
		return idx
	}

	kids := make([]int, len(n.Children))
	for i, c := range n.Children {
		kids[i] = l.place(c, depth+1, ChildID(id, i), idx, vis)
	}

	// Children appended to the arena, so take the pointer only now.
	b := &l.boxes[idx]
	b.end = len(l.boxes)
	b.Collapsed = vis.Collapsed(id)
	b.Rows = l.pack(kids, depth)
	b.Width = l.containerWidth(b.Rows)
	b.Label = l.cfg.label(n.Label, b.Width)
	l.refreshRows(idx)
	l.restack(idx)
	return idx
}

// pack assigns already-sized children to rows, next-fit in tree order.
func (l *Layout) pack(kids []int, depth int) []Row {
	budget := l.cfg.MaxRowWidth(depth)
	margin := l.cfg.Margin

	var groups [][]int
	var running float64
	for _, k := range kids {
		w := l.boxes[k].Width
		if len(groups) > 0 && running+w+margin > budget {
			groups = append(groups, []int{k})
			running = w
			continue
		}
		if len(groups) == 0 {
			groups = append(groups, nil)
		}
		last := len(groups) - 1
		groups[last] = append(groups[last], k)
		running += w + margin
	}

	rows := make([]Row, len(groups))
	for r, group := range groups {
		x := l.cfg.Padding
		items := make([]Item, len(group))
		for i, k := range group {
			c := &l.boxes[k]
			c.X = x
			c.row = r
			items[i] = Item{X: x, ID: c.ID, index: k}
			x += c.Width + margin
		}
		rows[r] = Row{Items: items, Width: rowWidth(l.boxes, group, margin)}
	}
	return rows
}

func rowWidth(boxes []Box, group []int, margin float64) float64 {
	var w float64
	for _, k := range group {
		w += boxes[k].Width
	}
	return w + float64(len(group)-1)*margin
}

func (l *Layout) containerWidth(rows []Row) float64 {
	var widest float64
	for _, r := range rows {
		widest = max(widest, r.Width)
	}
	return widest + 2*l.cfg.Padding
}

// rowHeight is the tallest current height among the row's items.
func (l *Layout) rowHeight(r Row) float64 {
	var h float64
	for _, it := range r.Items {
		h = max(h, l.boxes[it.index].Height)
	}
	return h
}

func (l *Layout) refreshRows(idx int) {
	b := &l.boxes[idx]
	for i := range b.Rows {
		b.Rows[i].Height = l.rowHeight(b.Rows[i])
	}
}

// restack positions a container's rows top-down from its stored row
// heights, moves the children to their row offsets and sets the height.
func (l *Layout) restack(idx int) {
	b := &l.boxes[idx]
	margin := l.cfg.Margin

	y := l.cfg.HeaderHeight
	var content float64
	for i := range b.Rows {
		row := &b.Rows[i]
		row.Y = y
		for _, it := range row.Items {
			l.boxes[it.index].Y = y
		}
		y += row.Height + margin
		content += row.Height
	}
	content += float64(len(b.Rows)-1) * margin

	if b.Collapsed {
		b.Height = l.cfg.HeaderHeight
		return
	}
	b.Height = content + l.cfg.HeaderHeight + l.cfg.Padding
}

func (c Config) leafWidth(label string) float64 {
	estimated := float64(len([]rune(label)))*c.CharWidth + c.IconPadding
	return max(c.MinLeafWidth, min(c.MaxLeafWidth, estimated))
}

// label shortens text for a box of the given width. Truncation only happens
// when the text exceeds the capacity and the capacity leaves more than
// three characters to show.
func (c Config) label(text string, width float64) Label {
	l := Label{Text: text, Display: text}
	runes := []rune(text)
	capacity := int(math.Floor((width - c.LabelInset) / c.GlyphWidth))
	keep := capacity - len([]rune(c.Ellipsis))
	if len(runes) > capacity && capacity > 3 && keep > 0 {
		l.Display = string(runes[:keep]) + c.Ellipsis
		l.Truncated = true
	}
	return l
}

// =============================================================================
// Accessors
// =============================================================================

// Config returns the constants the layout was built with.
func (l *Layout) Config() Config { return l.cfg }

// Len returns the number of boxes.
func (l *Layout) Len() int { return len(l.boxes) }

// Root returns the root box.
func (l *Layout) Root() *Box { return &l.boxes[0] }

// Box looks up a box by its identifier.
func (l *Layout) Box(id string) (*Box, bool) {
	idx, ok := l.index[id]
	if !ok {
		return nil, false
	}
	return &l.boxes[idx], true
}

// BoxForNode looks up the first box built from the node with the given
// extractor ID.
func (l *Layout) BoxForNode(nodeID string) (*Box, bool) {
	idx, ok := l.nodes[nodeID]
	if !ok {
		return nil, false
	}
	return &l.boxes[idx], true
}

// Parent returns the box's parent, or nil for the root.
func (l *Layout) Parent(b *Box) *Box {
	if b.parent < 0 {
		return nil
	}
	return &l.boxes[b.parent]
}

// Children returns the box's children in tree order (row by row).
func (l *Layout) Children(b *Box) []*Box {
	var out []*Box
	for _, r := range b.Rows {
		for _, it := range r.Items {
			out = append(out, &l.boxes[it.index])
		}
	}
	return out
}

// Ancestors returns the chain of parents of id, nearest first.
func (l *Layout) Ancestors(id string) []*Box {
	idx, ok := l.index[id]
	if !ok {
		return nil
	}
	var out []*Box
	for p := l.boxes[idx].parent; p >= 0; p = l.boxes[p].parent {
		out = append(out, &l.boxes[p])
	}
	return out
}

// Walk visits boxes in preorder. Returning false from fn skips the visited
// box's descendants.
func (l *Layout) Walk(fn func(b *Box) bool) {
	for i := 0; i < len(l.boxes); {
		if fn(&l.boxes[i]) {
			i++
			continue
		}
		i = l.boxes[i].end
	}
}

// Visibility returns the current state of every container.
func (l *Layout) Visibility() Visibility {
	v := make(Visibility)
	for i := range l.boxes {
		if b := &l.boxes[i]; b.Toggleable() {
			v[b.ID] = b.State()
		}
	}
	return v
}

// Width returns the root box width.
func (l *Layout) Width() float64 { return l.boxes[0].Width }

// Height returns the root box's current height.
func (l *Layout) Height() float64 { return l.boxes[0].Height }
