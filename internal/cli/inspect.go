package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/treeplot/pkg/adapter"
	"github.com/matzehuels/treeplot/pkg/palette"
	"github.com/matzehuels/treeplot/pkg/tree"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// inspectOpts holds the command-line flags for the inspect command.
type inspectOpts struct {
	src  sourceFlags
	plot plotFlags
	list bool // print the table once instead of starting the TUI
}

// inspectCommand creates the inspect command, a terminal view of the
// adapter output.
func (c *CLI) inspectCommand() *cobra.Command {
	var opts inspectOpts

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Browse node order, colors, positions and links in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd, &opts)
		},
	}

	opts.src.register(cmd)
	opts.plot.register(cmd)
	cmd.Flags().BoolVar(&opts.list, "list", false, "print the node table and exit")

	return cmd
}

func (c *CLI) runInspect(cmd *cobra.Command, opts *inspectOpts) error {
	ctx := cmd.Context()

	popts := opts.plot.options(cmd, c.config)
	popts.Logger = c.Logger
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	spec := opts.src.spec(c.config)
	src, err := c.openSource(ctx, spec, opts.src.format)
	if err != nil {
		return err
	}
	defer src.Close()

	runner, err := c.newRunner(ctx, true)
	if err != nil {
		return err
	}
	t, err := runner.Fetch(ctx, src)
	if err != nil {
		return err
	}
	g, err := runner.Adapt(ctx, t, popts)
	if err != nil {
		return err
	}

	m := NewNodeListModel(spec, t, g)
	if opts.list {
		m.Height = len(m.Order)
		fmt.Println(m.View())
		return nil
	}
	_, err = tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen()).Run()
	return err
}

// =============================================================================
// NodeListModel - Interactive node browser
// =============================================================================

// NodeListModel is the bubbletea model for browsing adapter output.
type NodeListModel struct {
	Title  string
	Tree   *tree.Tree
	Graph  adapter.Graph
	Order  []tree.ID
	Cursor int
	Height int
	Offset int
}

// NewNodeListModel creates a node list in node order.
func NewNodeListModel(title string, t *tree.Tree, g adapter.Graph) NodeListModel {
	return NodeListModel{
		Title:  title,
		Tree:   t,
		Graph:  g,
		Order:  g.NodeOrder,
		Height: 15,
	}
}

func (m NodeListModel) Init() tea.Cmd {
	return nil
}

func (m NodeListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Order)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "home", "g":
			m.Cursor, m.Offset = 0, 0
		case "end", "G":
			if n := len(m.Order); n > 0 {
				m.Cursor = n - 1
				m.Offset = max(0, n-m.Height)
			}
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-12, 5)
	}
	return m, nil
}

func (m NodeListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("  ")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("%d nodes · %d edges", len(m.Order), m.Graph.EdgeCount())))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  g/G first/last  q quit"))
	b.WriteString("\n\n")

	if len(m.Order) == 0 {
		b.WriteString(listDimStyle.Render("  (empty tree)"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Order))

	rows := make([][]string, 0, end-m.Offset)
	for i := m.Offset; i < end; i++ {
		id := m.Order[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		color := m.Graph.FillColor[id]
		pos := m.Graph.Layout[id]
		rows = append(rows, []string{
			cursor,
			fmt.Sprintf("%d", i),
			string(id),
			swatch(color) + " " + color,
			fmt.Sprintf("(%g, %g)", pos.X, pos.Y),
			m.links(id),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "#", "Node", "Color", "Position", "Links").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			if col == 1 {
				return listDimStyle
			}
			return listNormalStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Order))))

	return b.String()
}

// links renders the outgoing links of id, marking targets that are not in
// the tree.
func (m NodeListModel) links(id tree.ID) string {
	n, ok := m.Tree.Node(id)
	if !ok || len(n.Links) == 0 {
		return "-"
	}
	parts := make([]string, len(n.Links))
	for i, l := range n.Links {
		if m.Tree.Has(l) {
			parts[i] = string(l)
		} else {
			parts[i] = string(l) + "?"
		}
	}
	return strings.Join(parts, ", ")
}

// swatch draws a two-cell block in color with a contrasting glyph.
func swatch(color string) string {
	if color == "" {
		return "  "
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(color)).
		Foreground(lipgloss.Color(palette.LabelColor(color))).
		Render("  ")
}
