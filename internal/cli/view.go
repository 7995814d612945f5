package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bigpicture/pkg/render/box/layout"
	"github.com/matzehuels/bigpicture/pkg/render/box/styles"
	"github.com/matzehuels/bigpicture/pkg/search"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listMatchStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// viewCommand creates the view command, an interactive outline of the boxes.
func (c *CLI) viewCommand() *cobra.Command {
	var (
		src sourceFlags
		lay layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "view [path|tree.json|layout.json]",
		Short: "Browse and toggle boxes in the terminal",
		Long: `Browse and toggle boxes in the terminal.

Keys:
  up/down, k/j   move the cursor
  enter, space   collapse or expand the selected box
  e / c          expand or collapse everything
  /              search labels (enter to apply, esc to clear)
  n              jump to the next match
  q              quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runView(cmd.Context(), args[0], src, lay)
		},
	}

	src.register(cmd)
	lay.register(cmd)

	return cmd
}

func (c *CLI) runView(ctx context.Context, input string, src sourceFlags, lay layoutFlags) error {
	runner, err := c.newRunner(ctx)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	in, err := c.load(ctx, runner, input, src, lay)
	if err != nil {
		return err
	}

	p := tea.NewProgram(newViewModel(in.layout, in.tree.Label), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}

// =============================================================================
// viewModel - Interactive box outline
// =============================================================================

// viewModel is the bubbletea model for the box outline. Rows lists the
// visible boxes in preorder; a collapsed box hides its descendants.
type viewModel struct {
	Layout *layout.Layout
	Title  string
	Rows   []*layout.Box
	Cursor int
	Offset int
	Height int

	Searching bool
	Input     string
	Result    search.Result
	Status    string
}

func newViewModel(l *layout.Layout, title string) viewModel {
	m := viewModel{Layout: l, Title: title, Height: 20}
	m.refresh("")
	return m
}

func (m viewModel) Init() tea.Cmd {
	return nil
}

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Searching {
			return m.updateSearch(msg), nil
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "enter", " ", "space":
			m.toggle()
		case "e":
			n := m.Layout.ExpandAll()
			m.Status = fmt.Sprintf("expanded %s", plural(n, "box"))
			m.refresh(m.selectedID())
		case "c":
			n := m.Layout.CollapseAll()
			m.Status = fmt.Sprintf("collapsed %s", plural(n, "box"))
			m.refresh(m.selectedID())
		case "/":
			m.Searching = true
			m.Input = ""
		case "n":
			m.nextMatch()
		case "esc":
			m.Result = search.Result{}
			m.Status = ""
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
		m.scroll()
	}
	return m, nil
}

func (m viewModel) updateSearch(msg tea.KeyMsg) viewModel {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		m.Searching = false
		m.Input = ""
		m.Result = search.Result{}
	case tea.KeyEnter:
		m.Searching = false
		m.Result = search.Match(m.Layout, m.Input)
		m.Status = fmt.Sprintf("%s for %q", plural(len(m.Result.Matches), "match"), m.Result.Query)
		m.nextMatch()
	case tea.KeyBackspace:
		if r := []rune(m.Input); len(r) > 0 {
			m.Input = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.Input += " "
	case tea.KeyRunes:
		m.Input += string(msg.Runes)
	}
	return m
}

func (m *viewModel) move(delta int) {
	m.Cursor = min(max(m.Cursor+delta, 0), len(m.Rows)-1)
	m.scroll()
}

func (m *viewModel) scroll() {
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m *viewModel) toggle() {
	b := m.selected()
	if b == nil || !b.Toggleable() {
		m.Status = "not a container"
		return
	}
	id := b.ID
	if err := m.Layout.Toggle(id); err != nil {
		m.Status = err.Error()
		return
	}
	b, _ = m.Layout.Box(id)
	m.Status = fmt.Sprintf("%s %s", b.State(), id)
	m.refresh(id)
}

// nextMatch moves the cursor to the first visible match after it, wrapping
// around.
func (m *viewModel) nextMatch() {
	if !m.Result.Active() || len(m.Rows) == 0 {
		return
	}
	for step := 1; step <= len(m.Rows); step++ {
		i := (m.Cursor + step) % len(m.Rows)
		if m.Result.Matched(m.Rows[i].ID) {
			m.Cursor = i
			m.scroll()
			return
		}
	}
}

// refresh recomputes the visible rows and keeps the cursor on keep when it
// is still visible.
func (m *viewModel) refresh(keep string) {
	rows := make([]*layout.Box, 0, len(m.Rows))
	m.Layout.Walk(func(b *layout.Box) bool {
		rows = append(rows, b)
		return !b.Collapsed
	})
	m.Rows = rows
	m.Cursor = min(m.Cursor, len(m.Rows)-1)
	for i, b := range m.Rows {
		if b.ID == keep {
			m.Cursor = i
			break
		}
	}
	m.scroll()
}

func (m viewModel) selected() *layout.Box {
	if m.Cursor < 0 || m.Cursor >= len(m.Rows) {
		return nil
	}
	return m.Rows[m.Cursor]
}

func (m viewModel) selectedID() string {
	if b := m.selected(); b != nil {
		return b.ID
	}
	return ""
}

func (m viewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("  ")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("%gx%g", m.Layout.Width(), m.Layout.Height())))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ toggle  e/c all  / search  n next  q quit"))
	b.WriteString("\n")
	if sel := m.selected(); sel != nil {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("%s  x=%g y=%g  %gx%g", sel.ID, sel.X, sel.Y, sel.Width, sel.Height)))
	}
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Rows))
	for i := m.Offset; i < end; i++ {
		b.WriteString(m.line(i))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case m.Searching:
		b.WriteString(StyleHighlight.Render("/" + m.Input))
	case m.Status != "":
		b.WriteString(listDimStyle.Render(m.Status))
	}
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rows))))
	return b.String()
}

func (m viewModel) line(i int) string {
	box := m.Rows[i]
	st := styles.For(box.Kind)

	marker := " "
	if box.Toggleable() {
		marker = "▾"
		if box.Collapsed {
			marker = "▸"
		}
	}
	cursor := "  "
	if i == m.Cursor {
		cursor = "> "
	}
	text := fmt.Sprintf("%s%s %s", strings.Repeat("  ", box.Depth), marker, box.Label.Display)

	switch {
	case i == m.Cursor:
		text = listSelectedStyle.Render(text)
	case m.Result.Matched(box.ID):
		text = listMatchStyle.Render(text)
	case m.Result.Dimmed(box.ID):
		text = listDimStyle.Render(text)
	}
	glyph := st.Lip().Render(st.Glyph)
	if m.Result.Dimmed(box.ID) {
		glyph = listDimStyle.Render(st.Glyph)
	}
	return cursor + glyph + " " + text
}
