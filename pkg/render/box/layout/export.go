package layout

import (
	"github.com/matzehuels/bigpicture/pkg/errors"
	"github.com/matzehuels/bigpicture/pkg/geometry"
)

// Export converts the layout to its serialized document form.
func (l *Layout) Export() geometry.Layout {
	return geometry.Layout{
		Version: geometry.Version,
		Width:   l.Width(),
		Height:  l.Height(),
		Config:  l.cfg.constants(),
		Root:    l.export(0),
	}
}

func (l *Layout) export(idx int) geometry.Box {
	b := &l.boxes[idx]
	out := geometry.Box{
		ID:        b.ID,
		NodeID:    b.NodeID,
		Kind:      b.Kind,
		Label:     b.Label.Text,
		Display:   b.Label.Display,
		Truncated: b.Label.Truncated,
		Message:   b.Message,
		X:         b.X,
		Y:         b.Y,
		Width:     b.Width,
		Height:    b.Height,
		Collapsed: b.Collapsed,
	}
	if len(b.Rows) > 0 {
		out.Rows = make([]geometry.Row, len(b.Rows))
		for i, r := range b.Rows {
			items := make([]geometry.Box, len(r.Items))
			for j, it := range r.Items {
				items[j] = l.export(it.index)
			}
			out.Rows[i] = geometry.Row{Y: r.Y, Height: r.Height, Width: r.Width, Items: items}
		}
	}
	return out
}

// Parse rebuilds an addressable layout from a serialized document. The
// geometry is taken as-is, so toggles on the result continue from the
// stored state.
func Parse(doc geometry.Layout) (*Layout, error) {
	cfg := fromConstants(doc.Config)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	n := doc.Count()
	l := &Layout{
		cfg:   cfg,
		boxes: make([]Box, 0, n),
		index: make(map[string]int, n),
		nodes: make(map[string]int),
	}
	if err := l.load(doc.Root, 0, -1, -1); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Layout) load(g geometry.Box, depth, parent, row int) error {
	if g.ID == "" {
		return errors.New(errors.ErrCodeInvalidFormat, "box at depth %d has no id", depth)
	}
	if _, dup := l.index[g.ID]; dup {
		return errors.New(errors.ErrCodeInvalidFormat, "duplicate box id %q", g.ID)
	}
	idx := len(l.boxes)
	l.boxes = append(l.boxes, Box{
		ID:        g.ID,
		NodeID:    g.NodeID,
		Kind:      g.Kind,
		Label:     Label{Text: g.Label, Display: g.Display, Truncated: g.Truncated},
		Message:   g.Message,
		Depth:     depth,
		X:         g.X,
		Y:         g.Y,
		Width:     g.Width,
		Height:    g.Height,
		Collapsed: g.Collapsed,
		index:     idx,
		parent:    parent,
		row:       row,
	})
	l.index[g.ID] = idx
	if g.NodeID != "" {
		if _, dup := l.nodes[g.NodeID]; !dup {
			l.nodes[g.NodeID] = idx
		}
	}

	var rows []Row
	for r, gr := range g.Rows {
		items := make([]Item, len(gr.Items))
		for i, it := range gr.Items {
			items[i] = Item{X: it.X, ID: it.ID, index: len(l.boxes)}
			if err := l.load(it, depth+1, idx, r); err != nil {
				return err
			}
		}
		rows = append(rows, Row{Y: gr.Y, Height: gr.Height, Width: gr.Width, Items: items})
	}

	b := &l.boxes[idx]
	b.Rows = rows
	b.end = len(l.boxes)
	if len(rows) == 0 {
		b.Collapsed = false
	}
	return nil
}

func (c Config) constants() geometry.Constants {
	return geometry.Constants{
		Padding:        c.Padding,
		Margin:         c.Margin,
		HeaderHeight:   c.HeaderHeight,
		MinLeafWidth:   c.MinLeafWidth,
		MaxLeafWidth:   c.MaxLeafWidth,
		MinLeafHeight:  c.MinLeafHeight,
		RootRowWidth:   c.RootRowWidth,
		NestedRowWidth: c.NestedRowWidth,
		CharWidth:      c.CharWidth,
		IconPadding:    c.IconPadding,
		GlyphWidth:     c.GlyphWidth,
		LabelInset:     c.LabelInset,
		Ellipsis:       c.Ellipsis,
	}
}

func fromConstants(g geometry.Constants) Config {
	return Config{
		Padding:        g.Padding,
		Margin:         g.Margin,
		HeaderHeight:   g.HeaderHeight,
		MinLeafWidth:   g.MinLeafWidth,
		MaxLeafWidth:   g.MaxLeafWidth,
		MinLeafHeight:  g.MinLeafHeight,
		RootRowWidth:   g.RootRowWidth,
		NestedRowWidth: g.NestedRowWidth,
		CharWidth:      g.CharWidth,
		IconPadding:    g.IconPadding,
		GlyphWidth:     g.GlyphWidth,
		LabelInset:     g.LabelInset,
		Ellipsis:       g.Ellipsis,
	}
}
