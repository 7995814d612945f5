package pipeline

import (
	"github.com/matzehuels/bigpicture/pkg/render/box/layout"
	"github.com/matzehuels/bigpicture/pkg/tree"
)

// BuildLayout lays out root with the configured constants and initial
// collapse state. Unknown IDs in Collapsed are ignored.
func BuildLayout(root *tree.Node, opts Options) (*layout.Layout, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return nil, err
	}
	l, err := layout.Build(root, opts.Config, layout.WithVisibility(opts.Visibility()))
	if err != nil {
		return nil, err
	}
	if opts.CollapseAll {
		n := l.CollapseAll()
		opts.Logger.Debug("collapsed containers", "count", n)
	}
	return l, nil
}
