package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bigpicture/pkg/errors"
	"github.com/matzehuels/bigpicture/pkg/render/box/layout"
	"github.com/matzehuels/bigpicture/pkg/render/box/styles"
	"github.com/matzehuels/bigpicture/pkg/search"
)

// searchCommand creates the search command, which lists boxes whose label
// contains a query.
func (c *CLI) searchCommand() *cobra.Command {
	var (
		src sourceFlags
		lay layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "search [path|tree.json|layout.json] [query]",
		Short: "Find boxes whose label contains a query",
		Long: `Find boxes whose label contains a query.

Matching is case-insensitive and uses the full label, so truncated labels
match on their hidden text as well. Each match is listed with the path of
labels from the root.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSearch(cmd.Context(), args[0], args[1], src, lay)
		},
	}

	src.register(cmd)
	lay.register(cmd)

	return cmd
}

func (c *CLI) runSearch(ctx context.Context, input, query string, src sourceFlags, lay layoutFlags) error {
	if err := errors.ValidateQuery(query); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	in, err := c.load(ctx, runner, input, src, lay)
	if err != nil {
		return err
	}

	res := search.Match(in.layout, query)
	if len(res.Matches) == 0 {
		printInfo("No boxes match %q", res.Query)
		return nil
	}

	fmt.Fprintln(out, matchTable(in.layout, res))
	printNewline()
	printStats(false, plural(len(res.Matches), "match"), plural(len(res.Revealed), "revealed box"))
	return nil
}

// matchTable renders the matches of res as a bordered table.
func matchTable(l *layout.Layout, res search.Result) string {
	rows := make([][]string, 0, len(res.Matches))
	boxes := make([]*layout.Box, 0, len(res.Matches))
	for _, id := range res.Matches {
		b, ok := l.Box(id)
		if !ok {
			continue
		}
		boxes = append(boxes, b)
		rows = append(rows, []string{b.ID, styles.For(b.Kind).Glyph + " " + string(b.Kind), b.Label.Text, labelPath(l, b)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Kind", "Label", "Path").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row < 0 || row >= len(boxes) {
				return lipgloss.NewStyle()
			}
			switch col {
			case 0, 3:
				return lipgloss.NewStyle().Foreground(colorDim)
			case 1:
				return styles.For(boxes[row].Kind).Lip()
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	return t.Render()
}

// labelPath joins the labels of b's ancestors, root first.
func labelPath(l *layout.Layout, b *layout.Box) string {
	anc := l.Ancestors(b.ID)
	parts := make([]string, 0, len(anc))
	for i := len(anc) - 1; i >= 0; i-- {
		parts = append(parts, anc[i].Label.Text)
	}
	return strings.Join(parts, " / ")
}
