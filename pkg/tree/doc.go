// Package tree holds the structural input of a bigpicture render.
//
// # Overview
//
// A [Node] is one named, typed entity of a codebase: the project itself, its
// packages and directories, modules, classes, methods and functions. Nodes
// form an ordered tree; the order of [Node.Children] is significant and is
// preserved verbatim by every later stage (layout never sorts).
//
// Trees are produced by the extractors in [pkg/extract] or read from JSON or
// TOML files with [ReadFile]. They are read-only for the lifetime of a
// render.
//
// # Kinds
//
// [Kind] enumerates the nine tags an extractor may emit. Unknown tags are
// carried through unchanged and report [Kind.Known] false; downstream
// styling falls back to a default bucket rather than failing.
//
// A node of kind [KindError] stands for a file the extractor could not
// parse. Its [Node.Message] carries the parse failure and is preserved for
// the serializer.
//
// # File format
//
// The on-disk shape mirrors what extractors emit:
//
//	{
//	  "name": "SuperApp",
//	  "type": "project",
//	  "children": [
//	    {"name": "auth.py", "type": "module", "children": [
//	      {"name": "Login", "type": "class"}
//	    ]}
//	  ]
//	}
//
// [pkg/extract]: github.com/matzehuels/bigpicture/pkg/extract
package tree
