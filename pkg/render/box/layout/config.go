package layout

import (
	"math"

	"github.com/matzehuels/bigpicture/pkg/errors"
)

// Config holds the constants that drive sizing and packing. A render uses
// one Config for its whole lifetime.
type Config struct {
	Padding        float64 `toml:"padding" json:"padding"`
	Margin         float64 `toml:"margin" json:"margin"`
	HeaderHeight   float64 `toml:"header_height" json:"header_height"`
	MinLeafWidth   float64 `toml:"min_leaf_width" json:"min_leaf_width"`
	MaxLeafWidth   float64 `toml:"max_leaf_width" json:"max_leaf_width"`
	MinLeafHeight  float64 `toml:"min_leaf_height" json:"min_leaf_height"`
	RootRowWidth   float64 `toml:"root_row_width" json:"root_row_width"`
	NestedRowWidth float64 `toml:"nested_row_width" json:"nested_row_width"`

	// CharWidth and IconPadding estimate a leaf's natural width.
	CharWidth   float64 `toml:"char_width" json:"char_width"`
	IconPadding float64 `toml:"icon_padding" json:"icon_padding"`

	// GlyphWidth, LabelInset and Ellipsis decide label truncation.
	GlyphWidth float64 `toml:"glyph_width" json:"glyph_width"`
	LabelInset float64 `toml:"label_inset" json:"label_inset"`
	Ellipsis   string  `toml:"ellipsis" json:"ellipsis"`
}

// DefaultConfig returns the standard constants.
func DefaultConfig() Config {
	return Config{
		Padding:        15,
		Margin:         10,
		HeaderHeight:   35,
		MinLeafWidth:   120,
		MaxLeafWidth:   350,
		MinLeafHeight:  42,
		RootRowWidth:   1200,
		NestedRowWidth: 800,
		CharWidth:      8.5,
		IconPadding:    40,
		GlyphWidth:     8,
		LabelInset:     45,
		Ellipsis:       "...",
	}
}

// MaxRowWidth returns the row budget for a container at depth.
func (c Config) MaxRowWidth(depth int) float64 {
	if depth == 0 {
		return c.RootRowWidth
	}
	return c.NestedRowWidth
}

// Validate rejects constants that would produce non-finite, non-positive or
// unclamped geometry.
func (c Config) Validate() error {
	fields := []struct {
		name string
		v    float64
	}{
		{"padding", c.Padding},
		{"margin", c.Margin},
		{"header_height", c.HeaderHeight},
		{"min_leaf_width", c.MinLeafWidth},
		{"max_leaf_width", c.MaxLeafWidth},
		{"min_leaf_height", c.MinLeafHeight},
		{"root_row_width", c.RootRowWidth},
		{"nested_row_width", c.NestedRowWidth},
		{"char_width", c.CharWidth},
		{"icon_padding", c.IconPadding},
		{"glyph_width", c.GlyphWidth},
		{"label_inset", c.LabelInset},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return errors.New(errors.ErrCodeInvalidConfig, "%s must be finite, got %v", f.name, f.v)
		}
	}
	positive := []struct {
		name string
		v    float64
	}{
		{"header_height", c.HeaderHeight},
		{"min_leaf_width", c.MinLeafWidth},
		{"max_leaf_width", c.MaxLeafWidth},
		{"min_leaf_height", c.MinLeafHeight},
		{"root_row_width", c.RootRowWidth},
		{"nested_row_width", c.NestedRowWidth},
		{"glyph_width", c.GlyphWidth},
	}
	for _, p := range positive {
		if p.v <= 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "%s must be positive, got %v", p.name, p.v)
		}
	}
	if c.Padding < 0 || c.Margin < 0 || c.CharWidth < 0 || c.IconPadding < 0 || c.LabelInset < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "padding, margin, char_width, icon_padding and label_inset cannot be negative")
	}
	if c.MinLeafWidth > c.MaxLeafWidth {
		return errors.New(errors.ErrCodeInvalidConfig, "min_leaf_width %v exceeds max_leaf_width %v", c.MinLeafWidth, c.MaxLeafWidth)
	}
	return nil
}

// Option configures [Build].
type Option func(*options)

type options struct {
	visibility Visibility
}

// WithVisibility seeds the collapse state of containers. Boxes missing from
// v start expanded.
func WithVisibility(v Visibility) Option {
	return func(o *options) { o.visibility = v }
}
