// Package nodelink renders the code hierarchy as a node-link diagram.
//
// # Overview
//
// Where the box diagram nests children inside their parents, a node-link
// diagram draws every node as a rounded box and connects parents to
// children with arrows. It is useful for narrow, deep trees that would
// produce very tall box layouts.
//
// # Usage
//
//	dot := nodelink.ToDOT(root, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// Node identifiers in the DOT source are the same path-derived IDs the box
// layout uses ("node", "node-0", "node-0-2", ...), so both outputs can be
// cross-referenced.
//
// # Options
//
//   - Detailed: labels include the node kind and error message
//   - MaxDepth: stop descending below this depth (0 means unlimited)
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
