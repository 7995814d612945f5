package styles

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
)

// Icon outlines on a 24x24 grid, drawn with the box stroke colour.
var icons = map[string]string{
	"cube":         `<path d="M12 2 3 7v10l9 5 9-5V7z"/><path d="m3 7 9 5 9-5M12 12v10"/>`,
	"package":      `<path d="M16.5 9.4 7.5 4.2M21 16V8l-9-5-9 5v8l9 5z"/><path d="M3.3 7 12 12l8.7-5M12 22V12"/>`,
	"folder":       `<path d="M22 19a2 2 0 0 1-2 2H4a2 2 0 0 1-2-2V5a2 2 0 0 1 2-2h5l2 3h9a2 2 0 0 1 2 2z"/>`,
	"file-code":    `<path d="M14 2H6a2 2 0 0 0-2 2v16a2 2 0 0 0 2 2h12a2 2 0 0 0 2-2V8z"/><path d="M14 2v6h6M10 13l-2 2 2 2M14 17l2-2-2-2"/>`,
	"box":          `<rect x="3" y="3" width="18" height="18" rx="2"/>`,
	"terminal":     `<path d="m4 17 6-6-6-6M12 19h8"/>`,
	"file-text":    `<path d="M14 2H6a2 2 0 0 0-2 2v16a2 2 0 0 0 2 2h12a2 2 0 0 0 2-2V8z"/><path d="M14 2v6h6M16 13H8M16 17H8M10 9H8"/>`,
	"alert-circle": `<circle cx="12" cy="12" r="10"/><path d="M12 8v4M12 16h.01"/>`,
}

// IconDefs writes a <defs> block declaring every icon as a <symbol>.
func IconDefs(buf *bytes.Buffer) {
	buf.WriteString("  <defs>\n")
	for _, name := range slices.Sorted(maps.Keys(icons)) {
		fmt.Fprintf(buf, `    <symbol id="%s" viewBox="0 0 24 24" fill="none" stroke-width="2" stroke-linecap="round" stroke-linejoin="round">%s</symbol>`+"\n", name, icons[name])
	}
	buf.WriteString("  </defs>\n")
}
