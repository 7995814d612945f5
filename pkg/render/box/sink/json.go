package sink

import (
	"github.com/matzehuels/bigpicture/pkg/geometry"
	"github.com/matzehuels/bigpicture/pkg/render/box/layout"
)

// RenderJSON exports the current state of l as a geometry document.
func RenderJSON(l *layout.Layout) ([]byte, error) {
	return geometry.Marshal(l.Export())
}
