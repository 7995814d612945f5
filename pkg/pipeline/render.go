package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/bigpicture/pkg/render/box/layout"
	"github.com/matzehuels/bigpicture/pkg/render/box/sink"
	"github.com/matzehuels/bigpicture/pkg/render/nodelink"
	"github.com/matzehuels/bigpicture/pkg/search"
	"github.com/matzehuels/bigpicture/pkg/tree"
)

// RenderFromLayout generates every requested format without caching.
// Box formats read l; node-link formats read root.
func RenderFromLayout(ctx context.Context, l *layout.Layout, root *tree.Node, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	svgOpts := svgOptions(l, opts)
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		if _, done := artifacts[format]; done {
			continue
		}
		data, err := renderFormat(ctx, format, l, root, svgOpts, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderFormat(ctx context.Context, format string, l *layout.Layout, root *tree.Node, svgOpts []sink.SVGOption, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		return sink.RenderSVG(l, svgOpts...), nil
	case FormatHTML:
		return sink.RenderHTML(l,
			sink.WithTitle(opts.Title),
			sink.WithEndpoint(opts.Endpoint),
			sink.WithHTMLSVGOptions(svgOpts...))
	case FormatJSON:
		return sink.RenderJSON(l)
	case FormatPDF:
		return sink.RenderPDF(l, svgOpts...)
	case FormatPNG:
		return sink.RenderPNG(l, opts.Scale, svgOpts...)
	case FormatDOT:
		return []byte(nodelink.ToDOT(root, opts.nodelinkOptions())), nil
	case FormatNodelink:
		return nodelink.RenderSVG(ctx, nodelink.ToDOT(root, opts.nodelinkOptions()))
	}
	return nil, ValidateFormat(format)
}

func svgOptions(l *layout.Layout, opts Options) []sink.SVGOption {
	res := search.Match(l, opts.Query)
	if !res.Active() {
		return nil
	}
	opts.Logger.Debug("search", "query", res.Query, "matches", len(res.Matches))
	return []sink.SVGOption{sink.WithSearch(res)}
}

func (o *Options) nodelinkOptions() nodelink.Options {
	return nodelink.Options{Detailed: o.Detailed, MaxDepth: o.MaxDepth}
}
