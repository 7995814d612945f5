package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bigpicture/pkg/tree"
)

// extractCommand creates the extract command, which writes the extracted
// hierarchy as a tree file.
func (c *CLI) extractCommand() *cobra.Command {
	var (
		output string
		src    sourceFlags
	)

	cmd := &cobra.Command{
		Use:   "extract [path]",
		Short: "Extract the structure of a codebase into a tree file",
		Long: `Extract the structure of a codebase into a tree file.

Directories become packages or plain directories, source files become modules,
and top-level classes and functions (with their methods) become nested boxes.
Python, Go, Rust and TypeScript are supported. Files that fail to parse show up
as error boxes carrying the parser message.

The tree file (JSON, or TOML with a .toml extension) can be edited by hand and
passed to 'layout', 'render', 'view' or 'serve'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExtract(cmd.Context(), args[0], output, src)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <name>.tree.json)")
	src.register(cmd)

	return cmd
}

func (c *CLI) runExtract(ctx context.Context, input, output string, src sourceFlags) error {
	opts, err := c.options(input, inputSource, src, layoutFlags{})
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Extracting "+input+"...")
	spinner.Start()
	root, cacheHit, err := runner.ExtractWithCacheInfo(ctx, opts)
	if err != nil {
		spinner.StopWithError("Extraction failed")
		return err
	}
	spinner.Stop()

	if output == "" {
		output = treeOutputPath(input)
	}
	if err := tree.WriteFile(root, output); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess("Extracted %s", root.Label)
	printFile(output)
	printStats(cacheHit, plural(tree.Count(root), "node"), fmt.Sprintf("depth %d", tree.Depth(root)))
	printKinds(root)
	if errs := countErrors(root); errs > 0 {
		printWarning("%d file(s) could not be parsed", errs)
	}
	printNewline()
	printNextStep("Render", appName+" render "+output)
	return nil
}

// treeOutputPath names the tree file after the input's base name.
func treeOutputPath(input string) string {
	abs, err := filepath.Abs(input)
	if err != nil {
		abs = input
	}
	name := filepath.Base(abs)
	if ext := filepath.Ext(name); ext != "" && ext != name {
		name = name[:len(name)-len(ext)]
	}
	return name + ".tree.json"
}

func countErrors(root *tree.Node) int {
	n := 0
	tree.Walk(root, func(node *tree.Node, _ int) bool {
		if node.Kind == tree.KindError {
			n++
		}
		return true
	})
	return n
}
