package sink

import (
	"github.com/matzehuels/bigpicture/pkg/render"
	"github.com/matzehuels/bigpicture/pkg/render/box/layout"
)

// RenderPDF renders l as PDF via SVG conversion. Toggle buttons are left
// out since the output is not interactive.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(l *layout.Layout, opts ...SVGOption) ([]byte, error) {
	return render.ToPDF(RenderSVG(l, append(opts, WithoutToggles())...))
}

// RenderPNG renders l as PNG via SVG conversion at the given scale.
func RenderPNG(l *layout.Layout, scale float64, opts ...SVGOption) ([]byte, error) {
	return render.ToPNG(RenderSVG(l, append(opts, WithoutToggles())...), scale)
}
