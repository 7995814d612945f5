// Package layout computes nested box geometry for bigpicture diagrams.
//
// # Overview
//
// Given a [tree.Node] hierarchy, [Build] sizes every node bottom-up and
// packs each container's children into rows. The result is a [Layout]: an
// arena of [Box] values addressed by stable, path-derived identifiers, the
// single mutable store that later toggles update in place.
//
// # Leaf Sizing
//
// A leaf is estimated as runes*CharWidth + IconPadding wide and clamped to
// [MinLeafWidth, MaxLeafWidth]; its height is always MinLeafHeight. Labels
// that do not fit the clamped width are shortened for display only (see
// [Label]); the full text stays on the box.
//
// # Row Packing
//
// Containers pack children next-fit, in tree order: a child that would push
// the running row width past [Config.MaxRowWidth] opens a new row, every
// other child joins the current one. Nothing is reordered or looked ahead,
// and a child wider than the whole budget simply sits alone in its row.
//
// The budget is two-tier: the root packs against RootRowWidth, every deeper
// container against NestedRowWidth.
//
// # Dimensions
//
//	rowHeight[i] = max(child heights in row i)
//	rowWidth[i]  = sum(child widths) + (count-1)*Margin
//	width        = max(rowWidth) + 2*Padding
//	height       = HeaderHeight + sum(rowHeight) + (rows-1)*Margin + Padding
//
// A collapsed container is exactly HeaderHeight high. Its rows and child
// boxes are still computed and kept so that expanding it again restores
// them untouched.
//
// # Incremental Relayout
//
// [Layout.Toggle] flips one container and walks the ancestor chain,
// recomputing only the row that holds the changed box and restacking each
// parent's rows. Widths and x offsets are frozen at build time. The result
// is identical to calling [Build] again with the same [Visibility].
//
// A Layout is not safe for concurrent mutation; callers apply one toggle at
// a time.
//
// # Integration
//
//	extract.Walk → layout.Build → (Toggle ...) → sink.RenderSVG / Export
package layout
