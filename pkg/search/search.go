// Package search finds boxes by label and reports which boxes a viewer
// should dim.
//
// Matching is a case-insensitive substring test against the full label
// text, so truncated labels still match on their hidden suffix. A search
// never alters geometry: it only classifies boxes.
package search

import (
	"strings"

	"github.com/matzehuels/bigpicture/pkg/render/box/layout"
)

// Result is the outcome of one query over a layout.
type Result struct {
	// Query is the normalized (trimmed, lower-cased) query.
	Query string
	// Matches holds the IDs of matching boxes in preorder.
	Matches []string
	// Revealed holds every match plus all of its ancestors.
	Revealed map[string]bool

	matched map[string]bool
}

// Active reports whether the result came from a non-empty query.
func (r Result) Active() bool { return r.Query != "" }

// Dimmed reports whether id should be drawn de-emphasized. Nothing is
// dimmed for an empty query.
func (r Result) Dimmed(id string) bool {
	return r.Active() && !r.Revealed[id]
}

// Matched reports whether id itself matched the query.
func (r Result) Matched(id string) bool {
	return r.matched[id]
}

// Match runs query against every box label in l.
func Match(l *layout.Layout, query string) Result {
	q := strings.ToLower(strings.TrimSpace(query))
	res := Result{Query: q, Revealed: make(map[string]bool), matched: make(map[string]bool)}
	if q == "" {
		return res
	}

	l.Walk(func(b *layout.Box) bool {
		if !strings.Contains(strings.ToLower(b.Label.Text), q) {
			return true
		}
		res.Matches = append(res.Matches, b.ID)
		res.matched[b.ID] = true
		res.Revealed[b.ID] = true
		for _, a := range l.Ancestors(b.ID) {
			if res.Revealed[a.ID] {
				break
			}
			res.Revealed[a.ID] = true
		}
		return true
	})
	return res
}
