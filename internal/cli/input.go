package cli

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bigpicture/pkg/errors"
	"github.com/matzehuels/bigpicture/pkg/geometry"
	"github.com/matzehuels/bigpicture/pkg/pipeline"
	"github.com/matzehuels/bigpicture/pkg/render/box/layout"
	"github.com/matzehuels/bigpicture/pkg/tree"
)

// inputKind is what a command's path argument points at.
type inputKind int

const (
	inputSource   inputKind = iota // directory or single source file
	inputTree                      // tree file written by "extract"
	inputGeometry                  // geometry document written by "layout"
)

func (k inputKind) String() string {
	switch k {
	case inputTree:
		return "tree"
	case inputGeometry:
		return "layout"
	}
	return "source"
}

// classifyInput decides how to read path. TOML files are trees; JSON files
// are geometry documents when they carry "version" and "root", trees
// otherwise. Anything else is source.
func classifyInput(path string) (inputKind, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, errors.Wrap(errors.ErrCodeFileNotFound, err, "path %s does not exist", path)
		}
		return 0, err
	}
	if info.IsDir() {
		return inputSource, nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return inputTree, nil
	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return 0, err
		}
		var probe map[string]json.RawMessage
		if err := json.Unmarshal(data, &probe); err != nil {
			return 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode %s", path)
		}
		_, hasVersion := probe["version"]
		_, hasRoot := probe["root"]
		if hasVersion && hasRoot {
			return inputGeometry, nil
		}
		return inputTree, nil
	}
	return inputSource, nil
}

// sourceFlags are the extraction flags shared by every command that reads
// a codebase.
type sourceFlags struct {
	languages    []string
	includeOther bool
	keepEmpty    bool
	exclude      []string
	refresh      bool
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&f.languages, "lang", "l", nil, "languages to extract: python, go, rust, typescript (default all)")
	cmd.Flags().BoolVar(&f.includeOther, "include-other", false, "show unsupported files as plain file boxes")
	cmd.Flags().BoolVar(&f.keepEmpty, "keep-empty", false, "keep directories without extracted content")
	cmd.Flags().StringSliceVar(&f.exclude, "exclude", nil, "additional directory names to skip")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "ignore cached extraction results")
}

// layoutFlags set the initial collapse state.
type layoutFlags struct {
	collapsed   []string
	collapseAll bool
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&f.collapsed, "collapse", nil, "box IDs to start collapsed (e.g. node-0,node-2-1)")
	cmd.Flags().BoolVar(&f.collapseAll, "collapse-all", false, "start with every container collapsed")
}

// loaded is a command's input after extraction and layout.
type loaded struct {
	kind   inputKind
	opts   pipeline.Options
	tree   *tree.Node
	layout *layout.Layout
	info   pipeline.CacheInfo
}

// options translates flags into pipeline options for path.
func (c *CLI) options(path string, kind inputKind, src sourceFlags, lay layoutFlags) (pipeline.Options, error) {
	cfg, err := loadConfig(c.configPath)
	if err != nil {
		return pipeline.Options{}, err
	}
	opts := pipeline.Options{
		Languages:    src.languages,
		IncludeOther: src.includeOther,
		KeepEmpty:    src.keepEmpty,
		Exclude:      src.exclude,
		Refresh:      src.refresh,
		Config:       cfg,
		Collapsed:    lay.collapsed,
		CollapseAll:  lay.collapseAll,
		Logger:       c.Logger,
	}
	if kind == inputTree {
		opts.TreeFile = path
	} else {
		opts.Path = path
	}
	return opts, nil
}

// load reads path into a live layout through runner's caches.
func (c *CLI) load(ctx context.Context, runner *pipeline.Runner, path string, src sourceFlags, lay layoutFlags) (*loaded, error) {
	kind, err := classifyInput(path)
	if err != nil {
		return nil, err
	}
	opts, err := c.options(path, kind, src, lay)
	if err != nil {
		return nil, err
	}
	if err := opts.ValidateForLayout(); err != nil {
		return nil, err
	}

	if kind == inputGeometry {
		return c.loadGeometry(path, opts)
	}

	root, extractHit, err := runner.ExtractWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, err
	}
	l, layoutHit, err := runner.ComputeLayoutWithCacheInfo(ctx, root, opts)
	if err != nil {
		return nil, err
	}
	return &loaded{
		kind:   kind,
		opts:   opts,
		tree:   root,
		layout: l,
		info:   pipeline.CacheInfo{ExtractHit: extractHit, LayoutHit: layoutHit},
	}, nil
}

// loadGeometry restores a saved layout. Its own constants win over
// --config; collapse flags are applied on top of the saved state.
func (c *CLI) loadGeometry(path string, opts pipeline.Options) (*loaded, error) {
	doc, err := geometry.ReadFile(path)
	if err != nil {
		return nil, err
	}
	l, err := layout.Parse(doc)
	if err != nil {
		return nil, err
	}
	for _, id := range opts.Collapsed {
		if _, err := l.SetCollapsed(id, true); err != nil {
			return nil, err
		}
	}
	if opts.CollapseAll {
		l.CollapseAll()
	}
	if c.configPath != "" {
		c.Logger.Warn("--config is ignored for saved layouts", "path", path)
	}
	opts.Config = l.Config()
	return &loaded{kind: inputGeometry, opts: opts, tree: doc.Tree(), layout: l}, nil
}
