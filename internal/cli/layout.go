package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bigpicture/pkg/geometry"
)

// layoutCommand creates the layout command, which writes the geometry
// document for a codebase or tree file.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		src    sourceFlags
		lay    layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [path|tree.json]",
		Short: "Compute box geometry for a codebase or tree file",
		Long: `Compute box geometry for a codebase or tree file.

The output is a geometry document (same format as 'render -f json'): every box
with its position inside its parent, its size, its rows of children and its
collapse state. It can be rendered later with 'render', browsed with 'view' or
served with 'serve' without extracting again.

Layout constants come from --config ([layout] table) or the defaults.
Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], output, src, lay)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	src.register(cmd)
	lay.register(cmd)

	return cmd
}

func (c *CLI) runLayout(ctx context.Context, input, output string, src sourceFlags, lay layoutFlags) error {
	runner, err := c.newRunner(ctx)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()
	in, err := c.load(ctx, runner, input, src, lay)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if output == "" {
		output = layoutOutputPath(input)
	}
	if err := geometry.WriteFile(in.layout.Export(), output); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess("Layout complete")
	printFile(output)
	printStats(in.info.LayoutHit,
		plural(in.layout.Len(), "box"),
		fmt.Sprintf("%gx%g", in.layout.Width(), in.layout.Height()))
	printNewline()
	printNextStep("Browse", appName+" view "+output)
	return nil
}

// layoutOutputPath strips a trailing .tree.json or extension from input.
func layoutOutputPath(input string) string {
	base := filepath.Clean(input)
	if strings.HasSuffix(base, ".tree.json") {
		base = strings.TrimSuffix(base, ".tree.json")
	} else if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	if base == "." || base == "" {
		base = treeOutputPath(input)
		base = strings.TrimSuffix(base, ".tree.json")
	}
	return base + ".layout.json"
}
