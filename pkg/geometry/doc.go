// Package geometry defines the serialization format of computed box
// layouts.
//
// A [Layout] document is what the engine hands to serializers and what the
// HTTP viewer returns: every box with its within-parent position, size,
// identifier, kind, label (displayed and full text), error message,
// visibility state and row structure. Documents are tree-shaped, so a
// consumer can render them with a single recursive walk.
//
// Use [ReadFile] and [WriteFile] for layout.json files, or [Marshal] and
// [Unmarshal] for in-memory data such as cache entries.
package geometry
