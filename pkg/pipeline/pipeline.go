// Package pipeline provides the extract → layout → render pipeline of
// bigpicture.
//
// The CLI, the terminal viewer and the HTTP server all run the same stages
// through a [Runner], so caching and defaults behave identically whichever
// entry point is used.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Extract: Walk a source tree (or read a tree file) into a [tree.Node]
//  2. Layout: Pack the hierarchy into nested boxes
//  3. Render: Generate output in various formats (SVG, HTML, JSON, DOT, PDF, PNG)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Path:    "./src",
//	    Formats: []string{"svg", "html"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	root, err := runner.Extract(ctx, opts)
//	l, err := runner.ComputeLayout(ctx, root, opts)
//	artifacts, err := runner.Render(ctx, l, root, opts)
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bigpicture/pkg/cache"
	"github.com/matzehuels/bigpicture/pkg/errors"
	"github.com/matzehuels/bigpicture/pkg/render/box/layout"
	"github.com/matzehuels/bigpicture/pkg/tree"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, TUI and Server
// =============================================================================

const (
	// DefaultTitle is the HTML page title when none is given.
	DefaultTitle = "bigpicture"

	// DefaultScale is the PNG scale factor.
	DefaultScale = 2.0
)

// Format constants for output formats.
const (
	FormatSVG      = "svg"
	FormatHTML     = "html"
	FormatJSON     = "json"
	FormatDOT      = "dot"
	FormatNodelink = "nodelink"
	FormatPDF      = "pdf"
	FormatPNG      = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:      true,
	FormatHTML:     true,
	FormatJSON:     true,
	FormatDOT:      true,
	FormatNodelink: true,
	FormatPDF:      true,
	FormatPNG:      true,
}

// Extensions maps formats to output file extensions.
var Extensions = map[string]string{
	FormatSVG:      ".svg",
	FormatHTML:     ".html",
	FormatJSON:     ".json",
	FormatDOT:      ".dot",
	FormatNodelink: ".nodelink.svg",
	FormatPDF:      ".pdf",
	FormatPNG:      ".png",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the visualization pipeline.
// This struct supports JSON serialization for server requests.
type Options struct {
	// Extract options. Exactly one of Path and TreeFile is required.
	Path         string   `json:"path,omitempty"`
	TreeFile     string   `json:"tree_file,omitempty"`
	Languages    []string `json:"languages,omitempty"`
	IncludeOther bool     `json:"include_other,omitempty"`
	KeepEmpty    bool     `json:"keep_empty,omitempty"`
	Exclude      []string `json:"exclude,omitempty"`
	Refresh      bool     `json:"refresh,omitempty"`

	// Layout options. A zero Config means layout.DefaultConfig().
	Config      layout.Config `json:"config,omitzero"`
	Collapsed   []string      `json:"collapsed,omitempty"`
	CollapseAll bool          `json:"collapse_all,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Query    string   `json:"query,omitempty"`
	Title    string   `json:"title,omitempty"`
	Endpoint string   `json:"endpoint,omitempty"`
	Detailed bool     `json:"detailed,omitempty"`
	MaxDepth int      `json:"max_depth,omitempty"`
	Scale    float64  `json:"scale,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Tree is the extracted hierarchy.
	Tree *tree.Node

	// TreeHash is the content hash of the tree.
	TreeHash string

	// Layout is the live geometry store.
	Layout *layout.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount   int
	BoxCount    int
	Depth       int
	ExtractTime time.Duration
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ExtractHit bool // Whether the tree came from cache
	LayoutHit  bool // Whether the geometry came from cache
	RenderHit  bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: %s)", format, strings.Join(FormatNames(), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// FormatNames returns the supported formats in sorted order.
func FormatNames() []string {
	names := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		names = append(names, f)
	}
	slices.Sort(names)
	return names
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForExtract(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForExtract checks the input source.
func (o *Options) ValidateForExtract() error {
	switch {
	case o.Path == "" && o.TreeFile == "":
		return errors.New(errors.ErrCodeInvalidInput, "path or tree file is required")
	case o.Path != "" && o.TreeFile != "":
		return errors.New(errors.ErrCodeInvalidInput, "path and tree file are mutually exclusive")
	}
	for _, p := range []string{o.Path, o.TreeFile} {
		if p == "" {
			continue
		}
		if err := errors.ValidatePath(p); err != nil {
			return err
		}
	}
	o.setLogger()
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Config == (layout.Config{}) {
		o.Config = layout.DefaultConfig()
	}
	o.setLogger()
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	for _, id := range o.Collapsed {
		if err := errors.ValidateBoxID(id); err != nil {
			return err
		}
	}
	return o.Config.Validate()
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	o.setLogger()
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %v", o.Scale)
	}
	if o.MaxDepth < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "max depth cannot be negative")
	}
	return errors.ValidateQuery(o.Query)
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Visibility returns the initial collapse state for [layout.Build].
// CollapseAll is applied after the build by the runner.
func (o *Options) Visibility() layout.Visibility {
	if len(o.Collapsed) == 0 {
		return nil
	}
	v := make(layout.Visibility, len(o.Collapsed))
	for _, id := range o.Collapsed {
		v[id] = layout.Collapsed
	}
	return v
}

// TreeKeyOpts returns cache key options for extraction.
func (o *Options) TreeKeyOpts() cache.TreeKeyOpts {
	langs := slices.Clone(o.Languages)
	slices.Sort(langs)
	exclude := slices.Clone(o.Exclude)
	slices.Sort(exclude)
	return cache.TreeKeyOpts{
		Languages:    langs,
		IncludeOther: o.IncludeOther,
		KeepEmpty:    o.KeepEmpty,
		Exclude:      exclude,
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() (cache.LayoutKeyOpts, error) {
	configHash, err := cache.HashJSON(o.Config)
	if err != nil {
		return cache.LayoutKeyOpts{}, err
	}
	collapsed := slices.Clone(o.Collapsed)
	slices.Sort(collapsed)
	collapsed = slices.Compact(collapsed)
	if o.CollapseAll {
		collapsed = []string{"*"}
	}
	return cache.LayoutKeyOpts{ConfigHash: configHash, Collapsed: collapsed}, nil
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format, Query: strings.TrimSpace(o.Query)}
	switch format {
	case FormatHTML:
		k.Title = o.Title
		k.Endpoint = o.Endpoint
	case FormatDOT, FormatNodelink:
		k.Query = ""
		k.Detail = o.Detailed
		k.MaxDepth = o.MaxDepth
	case FormatJSON:
		k.Query = ""
	case FormatPNG:
		k.Scale = o.Scale
	}
	return k
}

// String summarizes the input for log lines.
func (o *Options) String() string {
	if o.TreeFile != "" {
		return fmt.Sprintf("tree %s", o.TreeFile)
	}
	return o.Path
}
