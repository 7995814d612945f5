// Package pkg provides the core libraries for bigpicture codebase diagrams.
//
// # Overview
//
// bigpicture turns the structure of a codebase into nested boxes: projects
// contain directories, directories contain modules, modules contain classes
// and functions. Any container can be collapsed or expanded, and only the
// changed box's ancestors move. The pkg directory is organized into these
// areas:
//
//  1. [tree] - The hierarchy model and its JSON/TOML file format
//  2. [extract] - Language scanners that build a tree from source files
//  3. [render] - Box layout, relayout, sinks and the node-link renderer
//  4. [search] - Label search and dimming
//  5. [pipeline] - Orchestration (extract → layout → render) with caching
//  6. [server] - The interactive HTTP viewer with per-session state
//  7. [cache], [geometry], [errors], [observability] - Supporting infrastructure
//
// # Architecture
//
// The typical data flow:
//
//	Source directory
//	         ↓
//	    [extract] package (walk files, scan each language)
//	         ↓
//	    [tree] package (hierarchy of nodes)
//	         ↓
//	    [render/box/layout] package (sizes, rows, positions)
//	         ↓
//	    SVG/HTML/JSON/DOT/PDF/PNG output, or a live [server] session
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/matzehuels/bigpicture/pkg/extract"
//	    "github.com/matzehuels/bigpicture/pkg/render/box/layout"
//	    "github.com/matzehuels/bigpicture/pkg/render/box/sink"
//	)
//
//	root, _ := extract.Walk(context.Background(), "./myproject", extract.Options{})
//	l, _ := layout.Build(root, layout.DefaultConfig())
//	_ = l.Toggle("node-0") // collapse the first child
//	svg := sink.RenderSVG(l)
//
// Or use [pipeline.Runner] to get caching of every stage:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, nil)
//	result, _ := runner.Execute(ctx, pipeline.Options{Path: "./myproject", Formats: []string{"svg"}})
//
// [tree]: github.com/matzehuels/bigpicture/pkg/tree
// [extract]: github.com/matzehuels/bigpicture/pkg/extract
// [render]: github.com/matzehuels/bigpicture/pkg/render
// [render/box/layout]: github.com/matzehuels/bigpicture/pkg/render/box/layout
// [search]: github.com/matzehuels/bigpicture/pkg/search
// [pipeline]: github.com/matzehuels/bigpicture/pkg/pipeline
// [pipeline.Runner]: github.com/matzehuels/bigpicture/pkg/pipeline#Runner
// [server]: github.com/matzehuels/bigpicture/pkg/server
// [cache]: github.com/matzehuels/bigpicture/pkg/cache
// [geometry]: github.com/matzehuels/bigpicture/pkg/geometry
// [errors]: github.com/matzehuels/bigpicture/pkg/errors
// [observability]: github.com/matzehuels/bigpicture/pkg/observability
package pkg
