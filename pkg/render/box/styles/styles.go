// Package styles maps node kinds to their visual appearance.
//
// The table is fixed: every [tree.Kind] has one [Style], and unknown kinds
// fall back to the method style. Sinks draw with Fill, Stroke and Text;
// terminal views use Terminal and Glyph.
package styles

import (
	"bytes"
	"encoding/xml"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/bigpicture/pkg/tree"
)

// Style is the appearance of one kind of box.
type Style struct {
	Fill   string
	Stroke string
	Text   string
	// Icon names a symbol defined by [IconDefs].
	Icon string
	// Glyph is a short marker for text outputs.
	Glyph    string
	Terminal lipgloss.Color
}

var table = map[tree.Kind]Style{
	tree.KindProject:   {Fill: "#ffffff", Stroke: "#1a1a1b", Text: "#1a1a1b", Icon: "cube", Glyph: "◆", Terminal: "15"},
	tree.KindPackage:   {Fill: "#f8f9fa", Stroke: "#495057", Text: "#212529", Icon: "package", Glyph: "▣", Terminal: "250"},
	tree.KindDirectory: {Fill: "#ffffff", Stroke: "#adb5bd", Text: "#495057", Icon: "folder", Glyph: "▢", Terminal: "245"},
	tree.KindModule:    {Fill: "#e7f5ff", Stroke: "#1971c2", Text: "#1864ab", Icon: "file-code", Glyph: "≡", Terminal: "33"},
	tree.KindClass:     {Fill: "#f3f0ff", Stroke: "#6741d9", Text: "#5f3dc4", Icon: "box", Glyph: "□", Terminal: "99"},
	tree.KindMethod:    {Fill: "#fff0f6", Stroke: "#c2255c", Text: "#a61e4d", Icon: "terminal", Glyph: "›", Terminal: "161"},
	tree.KindFunction:  {Fill: "#fff9db", Stroke: "#f08c00", Text: "#e67700", Icon: "terminal", Glyph: "ƒ", Terminal: "214"},
	tree.KindFile:      {Fill: "#f1f3f5", Stroke: "#868e96", Text: "#495057", Icon: "file-text", Glyph: "·", Terminal: "244"},
	tree.KindError:     {Fill: "#fff5f5", Stroke: "#fa5252", Text: "#c92a2a", Icon: "alert-circle", Glyph: "!", Terminal: "203"},
}

// Default is the style used for kinds missing from the table.
var Default = table[tree.KindMethod]

// For returns the style of kind k.
func For(k tree.Kind) Style {
	if s, ok := table[k]; ok {
		return s
	}
	return Default
}

// Lip returns a lipgloss style that renders text in the kind's terminal
// colour.
func (s Style) Lip() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(s.Terminal)
}

// EscapeXML escapes s for use in SVG text and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
