package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bigpicture/pkg/pipeline"
	"github.com/matzehuels/bigpicture/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string   // output file (single format) or base path
	formats  []string // output formats: svg, html, json, dot, nodelink, pdf, png
	query    string   // search query to highlight
	title    string   // HTML page title
	detailed bool     // show kinds and errors in node-link diagrams
	maxDepth int      // node-link depth limit
	scale    float64  // PNG scale
}

// renderCommand creates the render command for generating visualizations.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		src        sourceFlags
		lay        layoutFlags
	)
	opts := renderOpts{scale: pipeline.DefaultScale}

	cmd := &cobra.Command{
		Use:   "render [path|tree.json|layout.json]",
		Short: "Render a codebase, tree or layout to SVG, HTML and more",
		Long: `Render a codebase, tree file or saved layout.

Formats:
  svg       nested boxes with toggle buttons
  html      standalone page with search, legend and pan/zoom
  json      geometry document
  dot       Graphviz source of the hierarchy as a node-link diagram
  nodelink  the node-link diagram rendered to SVG
  pdf, png  static exports (requires rsvg-convert)

--query highlights matching boxes and dims everything not on a path to a match.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, src, lay)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): "+strings.Join(pipeline.FormatNames(), ", ")+" (comma-separated, default svg)")
	cmd.Flags().StringVarP(&opts.query, "query", "q", "", "highlight boxes whose label contains this text")
	cmd.Flags().StringVar(&opts.title, "title", "", "HTML page title (default: root name)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show kinds and error messages (nodelink)")
	cmd.Flags().IntVar(&opts.maxDepth, "max-depth", 0, "limit node-link depth (0 draws everything)")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")
	src.register(cmd)
	lay.register(cmd)

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, ro renderOpts, src sourceFlags, lay layoutFlags) error {
	if needsConverter(ro.formats) && !render.Available() {
		printWarning("%s not found; install librsvg for pdf/png output", render.ConverterBinary)
	}

	runner, err := c.newRunner(ctx)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Laying out "+input+"...")
	spinner.Start()
	in, err := c.load(ctx, runner, input, src, lay)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}

	spinner.SetMessage("Rendering " + strings.Join(ro.formats, ", ") + "...")
	opts := in.opts
	opts.Formats = ro.formats
	opts.Query = ro.query
	opts.Title = ro.title
	if opts.Title == "" {
		opts.Title = in.tree.Label
	}
	opts.Detailed = ro.detailed
	opts.MaxDepth = ro.maxDepth
	opts.Scale = ro.scale

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, in.layout, in.tree, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	base := basePath(ro.output, input)
	printSuccess("Rendered %s", in.tree.Label)
	for _, format := range ro.formats {
		path := base + pipeline.Extensions[format]
		if len(ro.formats) == 1 && ro.output != "" {
			path = ro.output
		}
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	printStats(cacheHit, plural(in.layout.Len(), "box"), fmt.Sprintf("%gx%g", in.layout.Width(), in.layout.Height()))
	return nil
}

// basePath derives the base output path from the output and input paths.
// If output is empty, it strips the extension from input (and a trailing
// .tree or .layout). If output has a format extension, it strips that.
func basePath(output, input string) string {
	if output == "" {
		base := filepath.Base(layoutOutputPath(input))
		return strings.TrimSuffix(base, ".layout.json")
	}
	longest := ""
	for _, ext := range pipeline.Extensions {
		if strings.HasSuffix(output, ext) && len(ext) > len(longest) {
			longest = ext
		}
	}
	return strings.TrimSuffix(output, longest)
}

func needsConverter(formats []string) bool {
	return slices.Contains(formats, pipeline.FormatPDF) || slices.Contains(formats, pipeline.FormatPNG)
}
