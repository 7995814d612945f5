package sink

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/bigpicture/pkg/render/box/layout"
	"github.com/matzehuels/bigpicture/pkg/render/box/styles"
	"github.com/matzehuels/bigpicture/pkg/search"
	"github.com/matzehuels/bigpicture/pkg/tree"
)

const boxCSS = `
    .node text { font-family: 'Inter', sans-serif; font-weight: 700; font-size: 13px; }
    .box-rect { stroke-width: 1.2; transition: opacity 0.2s ease; }
    .node.dimmed > .box-rect, .node.dimmed > text, .node.dimmed > use { opacity: 0.25; }
    .node.match > .box-rect { stroke-width: 3; }
    .node.error > .box-rect { stroke-dasharray: 4 2; }
    .toggle-btn { cursor: pointer; opacity: 0.6; }
    .toggle-btn:hover { opacity: 1; }`

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	search   search.Result
	toggles  bool
	embedded bool
	hidden   bool
}

// WithSearch highlights matches and dims everything not revealed by res.
func WithSearch(res search.Result) SVGOption { return func(r *svgRenderer) { r.search = res } }

// WithoutToggles omits toggle buttons, for static exports.
func WithoutToggles() SVGOption { return func(r *svgRenderer) { r.toggles = false } }

// WithEmbedded drops the XML namespace header and the fixed size so the
// SVG can be inlined in an HTML page.
func WithEmbedded() SVGOption { return func(r *svgRenderer) { r.embedded = true } }

// WithHiddenContent also draws the children of collapsed boxes, inside a
// hidden group, so a client can expand them without a round trip.
func WithHiddenContent() SVGOption { return func(r *svgRenderer) { r.hidden = true } }

// RenderSVG draws the current state of l.
func RenderSVG(l *layout.Layout, opts ...SVGOption) []byte {
	r := svgRenderer{toggles: true}
	for _, opt := range opts {
		opt(&r)
	}

	w, h := l.Width(), l.Height()
	var buf bytes.Buffer
	if r.embedded {
		fmt.Fprintf(&buf, `<svg id="diagram" xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f">`+"\n", w, h)
	} else {
		fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n", w, h, w, h)
	}
	styles.IconDefs(&buf)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", boxCSS)
	r.renderBox(&buf, l, l.Root(), 1)
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) renderBox(buf *bytes.Buffer, l *layout.Layout, b *layout.Box, depth int) {
	st := styles.For(b.Kind)
	indent := strings.Repeat("  ", depth)

	fmt.Fprintf(buf, `%s<g class="%s" id="%s" data-kind="%s" data-label="%s" transform="translate(%s, %s)">`+"\n",
		indent, r.classes(b), b.ID, styles.EscapeXML(string(b.Kind)), styles.EscapeXML(b.Label.Text), num(b.X), num(b.Y))

	fmt.Fprintf(buf, `%s  <rect class="box-rect" width="%s" height="%s" stroke="%s" fill="%s" rx="6" ry="6"/>`+"\n",
		indent, num(b.Width), num(b.Height), st.Stroke, st.Fill)
	fmt.Fprintf(buf, `%s  <use href="#%s" x="8" y="8" width="16" height="16" stroke="%s"/>`+"\n", indent, st.Icon, st.Stroke)

	title := b.Label.Text
	if b.Message != "" {
		title += "\n" + b.Message
	}
	fmt.Fprintf(buf, `%s  <text x="30" y="20" fill="%s">%s<title>%s</title></text>`+"\n",
		indent, st.Text, styles.EscapeXML(b.Label.Display), styles.EscapeXML(title))

	if b.Toggleable() && r.toggles {
		sign := "-"
		if b.Collapsed {
			sign = "+"
		}
		fmt.Fprintf(buf, `%s  <g class="toggle-btn" data-box="%s"><circle cx="%s" cy="15" r="7" fill="white" stroke="%s" stroke-width="1"/><text x="%s" y="19" text-anchor="middle" font-size="10" fill="%s" style="pointer-events: none;">%s</text></g>`+"\n",
			indent, b.ID, num(b.Width-15), st.Stroke, num(b.Width-15), st.Stroke, sign)
	}

	if b.Toggleable() && (!b.Collapsed || r.hidden) {
		style := ""
		if b.Collapsed {
			style = ` style="display: none"`
		}
		fmt.Fprintf(buf, `%s  <g id="content-%s" class="node-content"%s>`+"\n", indent, b.ID, style)
		for _, c := range l.Children(b) {
			r.renderBox(buf, l, c, depth+2)
		}
		fmt.Fprintf(buf, "%s  </g>\n", indent)
	}
	fmt.Fprintf(buf, "%s</g>\n", indent)
}

func (r *svgRenderer) classes(b *layout.Box) string {
	cls := []string{"node", "kind-" + string(b.Kind)}
	if b.Collapsed {
		cls = append(cls, "collapsed")
	}
	if b.Kind == tree.KindError {
		cls = append(cls, "error")
	}
	if r.search.Dimmed(b.ID) {
		cls = append(cls, "dimmed")
	} else if r.search.Matched(b.ID) {
		cls = append(cls, "match")
	}
	return styles.EscapeXML(strings.Join(cls, " "))
}

// num formats a coordinate without trailing zeros.
func num(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
