package layout

import (
	"github.com/matzehuels/bigpicture/pkg/errors"
)

// Toggle flips the visibility of the container id and recomputes the
// heights along its ancestor chain.
//
// Unknown identifiers and leaves are rejected with an
// [errors.ErrCodeInvalidTarget] error; the store is left untouched.
func (l *Layout) Toggle(id string) error {
	idx, err := l.container(id)
	if err != nil {
		return err
	}
	l.boxes[idx].Collapsed = !l.boxes[idx].Collapsed
	l.relayout(idx)
	return nil
}

// Relayout recomputes the container id and its ancestors from the stored
// heights of their children without changing any visibility. With no
// intervening toggle it is a no-op.
func (l *Layout) Relayout(id string) error {
	idx, err := l.container(id)
	if err != nil {
		return err
	}
	l.relayout(idx)
	return nil
}

// SetCollapsed puts the container id into the requested state. It reports
// whether a toggle was needed.
func (l *Layout) SetCollapsed(id string, collapsed bool) (bool, error) {
	idx, err := l.container(id)
	if err != nil {
		return false, err
	}
	if l.boxes[idx].Collapsed == collapsed {
		return false, nil
	}
	return true, l.Toggle(id)
}

// ExpandAll expands every collapsed container, parents before children,
// and returns how many were toggled.
func (l *Layout) ExpandAll() int {
	count := 0
	for i := range l.boxes {
		if b := &l.boxes[i]; b.Toggleable() && b.Collapsed {
			b.Collapsed = false
			l.relayout(i)
			count++
		}
	}
	return count
}

// CollapseAll collapses every expanded container, children before parents,
// and returns how many were toggled.
func (l *Layout) CollapseAll() int {
	count := 0
	for i := len(l.boxes) - 1; i >= 0; i-- {
		if b := &l.boxes[i]; b.Toggleable() && !b.Collapsed {
			b.Collapsed = true
			l.relayout(i)
			count++
		}
	}
	return count
}

func (l *Layout) container(id string) (int, error) {
	idx, ok := l.index[id]
	if !ok {
		return 0, errors.New(errors.ErrCodeInvalidTarget, "unknown box %q", id)
	}
	if l.boxes[idx].IsLeaf() {
		return 0, errors.New(errors.ErrCodeInvalidTarget, "box %q has no children to toggle", id)
	}
	return idx, nil
}

// relayout recomputes the box's own rows from its children's stored
// heights, then walks upward. At each step only the row holding the
// changed box is recomputed before the parent is restacked.
func (l *Layout) relayout(idx int) {
	l.refreshRows(idx)
	l.restack(idx)

	for cur := idx; l.boxes[cur].parent >= 0; cur = l.boxes[cur].parent {
		p := l.boxes[cur].parent
		row := &l.boxes[p].Rows[l.boxes[cur].row]
		row.Height = l.rowHeight(*row)
		l.restack(p)
	}
}
