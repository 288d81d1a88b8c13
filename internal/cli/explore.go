package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/wotscan/pkg/wot"
	"github.com/matzehuels/wotscan/pkg/wot/metric"
	"github.com/matzehuels/wotscan/pkg/wot/scc"
	"github.com/matzehuels/wotscan/pkg/wot/sybil"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// exploreCommand creates the explore command.
func (c *CLI) exploreCommand() *cobra.Command {
	var opts sourceOpts

	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Browse the strong set interactively",
		Long: `Open an interactive table of the strong set ordered by MSD. Press enter on a
peer to scan its articulation points; results stay in the table.

Examples:
  wotscan explore --sybil --link 17:2
  wotscan explore -c scenario.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)
			return c.runExplore(ctx, &opts)
		},
	}
	opts.register(cmd)
	return cmd
}

func (c *CLI) runExplore(ctx context.Context, opts *sourceOpts) error {
	src, err := opts.load(ctx)
	if err != nil {
		return err
	}
	sel, err := opts.strongSet(src)
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, "Computing distance metrics...")
	spinner.Start()
	m, err := NewPeerListModel(src.Graph, sel)
	spinner.Stop()
	if err != nil {
		return err
	}
	m.Title = src.Description

	final, err := tea.NewProgram(m, tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}
	fm, ok := final.(PeerListModel)
	if !ok {
		return nil
	}
	for _, r := range fm.Rows {
		if r.Report != nil {
			printReport(r.Report)
		}
	}
	return nil
}

// =============================================================================
// PeerListModel - Interactive strong-set browser
// =============================================================================

// PeerRow is one strong-set member in the explorer.
type PeerRow struct {
	Label  int
	MSD    float64
	DMSD   string
	Report *sybil.Report // nil until scanned
	Err    error
}

// scanMsg carries the articulation analysis of the row at Index.
type scanMsg struct {
	Index  int
	Report *sybil.Report
	Err    error
}

// PeerListModel is the bubbletea model for browsing the strong set.
type PeerListModel struct {
	Title    string
	Graph    *wot.Graph
	Selector scc.Selector
	Rows     []PeerRow
	Cursor   int
	Height   int
	Offset   int
	Scanning int // row being scanned, -1 when idle
}

// NewPeerListModel ranks the strong set of g selected by sel.
func NewPeerListModel(g *wot.Graph, sel scc.Selector) (PeerListModel, error) {
	strong, err := scc.StrongSet(scc.Components(g), sel)
	if err != nil {
		return PeerListModel{}, err
	}
	ranking, err := metric.Ranking(g, strong)
	if err != nil {
		return PeerListModel{}, err
	}
	rows := make([]PeerRow, len(ranking))
	for i, s := range ranking {
		rows[i] = PeerRow{Label: s.Label, MSD: s.MSD, DMSD: formatDMSD(g, s.Label, sel)}
	}
	return PeerListModel{
		Graph:    g,
		Selector: sel,
		Rows:     rows,
		Height:   15,
		Scanning: -1,
	}, nil
}

func (m PeerListModel) Init() tea.Cmd {
	return nil
}

// scan returns a command that analyses the row at i.
func (m PeerListModel) scan(i int) tea.Cmd {
	g, sel, label := m.Graph, m.Selector, m.Rows[i].Label
	return func() tea.Msg {
		r, err := sybil.Analyze(g, label, sel)
		return scanMsg{Index: i, Report: r, Err: err}
	}
}

func (m PeerListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Rows) == 0 || m.Scanning >= 0 || m.Rows[m.Cursor].Report != nil {
				return m, nil
			}
			m.Scanning = m.Cursor
			return m, m.scan(m.Cursor)
		}
	case scanMsg:
		m.Scanning = -1
		if msg.Index >= 0 && msg.Index < len(m.Rows) {
			rows := append([]PeerRow(nil), m.Rows...)
			rows[msg.Index].Report = msg.Report
			rows[msg.Index].Err = msg.Err
			m.Rows = rows
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

// points renders the articulation column of r.
func (r PeerRow) points(scanning bool) string {
	switch {
	case scanning:
		return "scanning..."
	case r.Err != nil:
		return "error"
	case r.Report == nil:
		return "-"
	case r.Report.Isolated():
		return "outside strong set"
	}
	return formatLabels(r.Report.Points)
}

func (m PeerListModel) View() string {
	var b strings.Builder

	title := "Strong set"
	if m.Title != "" {
		title += ": " + m.Title
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ scan articulation points  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Rows))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		r := m.Rows[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor,
			fmt.Sprint(r.Label),
			fmt.Sprintf("%.3f", r.MSD),
			r.DMSD,
			r.points(i == m.Scanning),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Peer", "MSD", "DMSD", "Articulation points").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Rows) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle()
			if r := m.Rows[idx].Report; r != nil && (r.Sybil() || r.Isolated()) && col == 4 {
				base = base.Foreground(colorYellow)
			}
			if idx == m.Cursor {
				return base.Foreground(colorCyan).Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", min(m.Cursor+1, len(m.Rows)), len(m.Rows))))

	return b.String()
}
