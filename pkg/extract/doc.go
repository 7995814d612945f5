// Package extract turns source trees into the node hierarchy that the box
// layout draws.
//
// # Overview
//
// [Walk] descends a directory and produces a [tree.Node] tree: the root is
// the project, directories become packages or plain directories, and every
// supported source file becomes a module holding its top-level classes,
// methods and functions. Files that fail to parse become error leaves that
// carry the parser's message, so one broken file never aborts a walk.
//
// # Languages
//
// Each language is an [Extractor] registered in a [Registry]:
//
//   - python: indentation-aware scanner for class, def and async def
//   - go: go/parser; types collect their methods by receiver
//   - rust: tree-sitter; struct, enum, trait and impl blocks, inline mod
//   - typescript: tree-sitter (TS and TSX); classes, functions and
//     exported declarations
//
// # Traversal Rules
//
// Entries are visited in name order. Hidden directories and well-known
// build or dependency folders (__pycache__, node_modules, target, vendor)
// are skipped. A directory is a package when it holds a package marker
// (__init__.py, a .go file, mod.rs, index.ts); below the root,
// __init__.py itself is not listed.
package extract
