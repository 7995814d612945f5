// Package render holds the renderers of bigpicture diagrams.
//
// # Overview
//
// The nested box diagram lives in the [box] subpackages: [box/layout]
// computes geometry, [box/sink] writes SVG, HTML and JSON, and [box/styles]
// maps node kinds to colours and icons. The [nodelink] subpackage draws the
// same hierarchy as a Graphviz node-link diagram.
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG to other formats using the external
// rsvg-convert tool (from librsvg). Both box and node-link output use them.
//
//	svg := sink.RenderSVG(l)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// [box]: github.com/matzehuels/bigpicture/pkg/render/box
// [box/layout]: github.com/matzehuels/bigpicture/pkg/render/box/layout
// [box/sink]: github.com/matzehuels/bigpicture/pkg/render/box/sink
// [box/styles]: github.com/matzehuels/bigpicture/pkg/render/box/styles
// [nodelink]: github.com/matzehuels/bigpicture/pkg/render/nodelink
package render
