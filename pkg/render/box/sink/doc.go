// Package sink provides output format renderers for box layouts.
//
// # Overview
//
// A "sink" transforms a computed [layout.Layout] into a final output format:
//
//   - SVG: nested boxes with icons, labels and toggle buttons
//   - HTML: a viewer page embedding the SVG with search and a legend
//   - JSON: the [geometry.Layout] document
//   - PDF and PNG: converted from SVG (requires rsvg-convert)
//
// Sinks only read the layout. Toggling is done on the layout itself, after
// which the sink is run again.
//
// # SVG Output
//
// Every box is a <g> translated to its position within the parent, so the
// group nesting mirrors the tree. Containers carry a toggle button; the
// rows of a collapsed container are not drawn.
//
//	svg := sink.RenderSVG(l, sink.WithSearch(search.Match(l, "cart")))
//
// # HTML Output
//
// [RenderHTML] wraps the SVG in a page with pan and zoom. With
// [WithEndpoint] the page talks to the session API of pkg/server: toggles
// and searches are sent to the server and the returned SVG replaces the
// drawing. Without an endpoint the page is static and search runs in the
// browser over the embedded labels.
//
// [layout.Layout]: github.com/matzehuels/bigpicture/pkg/render/box/layout.Layout
// [geometry.Layout]: github.com/matzehuels/bigpicture/pkg/geometry.Layout
package sink
