package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wotscan/pkg/errors"
	"github.com/matzehuels/wotscan/pkg/wot"
	"github.com/matzehuels/wotscan/pkg/wot/metric"
	"github.com/matzehuels/wotscan/pkg/wot/scc"
	"github.com/matzehuels/wotscan/pkg/wot/sybil"
)

// analyzeOpts holds the command-line flags for the analyze command.
type analyzeOpts struct {
	source sourceOpts
	peers  []int // peers to scan for articulation points
	top    int   // rows in the MSD ranking
}

// analyzeCommand creates the analyze command.
func (c *CLI) analyzeCommand() *cobra.Command {
	opts := analyzeOpts{top: defaultTop}

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Report components, trust metrics and articulation points",
		Long: `Report the strongly connected components of a network, the average mean
shortest distance (AMSD) of its strong set, the most central peers by MSD and,
for every --peer, the strong-set articulation points.

A peer inside the strong set with articulation points holds its place through
a single cutpoint, which is how a sock-puppet cluster with one link into the
honest core shows up.

Examples:
  wotscan analyze --sybil --link 17:2 --peer 17
  wotscan analyze -n 50 --sig-min 2 --sig-max 4 --seed 7 --peer 0`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)
			return c.runAnalyze(ctx, &opts)
		},
	}

	opts.source.register(cmd)
	cmd.Flags().IntSliceVarP(&opts.peers, "peer", "p", nil, "peer to scan for articulation points (repeatable)")
	cmd.Flags().IntVar(&opts.top, "top", opts.top, "number of peers in the MSD ranking")

	return cmd
}

func (c *CLI) runAnalyze(ctx context.Context, opts *analyzeOpts) error {
	src, err := opts.source.load(ctx)
	if err != nil {
		return err
	}
	sel, err := opts.source.strongSet(src)
	if err != nil {
		return err
	}
	for _, p := range opts.peers {
		if err := src.Graph.Check(p); err != nil {
			return err
		}
	}

	g := src.Graph
	components := scc.Components(g)
	strong, err := scc.StrongSet(components, sel)
	if err != nil {
		return err
	}
	amsd, err := metric.AMSD(g, strong)
	if err != nil {
		return err
	}
	ranking, err := metric.Ranking(g, strong)
	if err != nil {
		return err
	}

	fmt.Println(StyleTitle.Render(src.Description))
	printStats(g.Len(), g.EdgeCount(), len(components))
	printNewline()
	printKeyValue("strong set", fmt.Sprintf("%d peers (%s)", len(strong), sel))
	printKeyValue("AMSD", fmt.Sprintf("%.3f", amsd))
	printNewline()

	var rows [][]string
	for _, s := range ranking[:min(max(opts.top, 0), len(ranking))] {
		rows = append(rows, []string{fmt.Sprint(s.Label), fmt.Sprintf("%.3f", s.MSD), formatDMSD(g, s.Label, sel)})
	}
	if len(rows) > 0 {
		printTable([]string{"Peer", "MSD", "DMSD"}, rows)
	}

	for _, p := range opts.peers {
		prog := newProgress(c.Logger)
		spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Scanning articulation points of peer %d...", p))
		spinner.Start()
		report, err := sybil.Analyze(g, p, sel)
		spinner.Stop()
		if err != nil {
			return err
		}
		prog.done(fmt.Sprintf("Scanned %d peers for peer %d", g.Len()-1, p))
		printReport(report)
	}
	return nil
}

// formatDMSD renders the dearticulated MSD, or "n/a" when the peer reaches
// no strong-set member once disconnected.
func formatDMSD(g wot.Digraph, label int, sel scc.Selector) string {
	d, err := metric.DMSD(g, label, sel)
	if errors.Is(err, errors.ErrCodeEmptySet) {
		return "n/a"
	}
	if err != nil {
		return "error"
	}
	return fmt.Sprintf("%.3f", d)
}

// printReport prints the articulation analysis of one peer.
func printReport(r *sybil.Report) {
	switch {
	case r.Isolated():
		printWarning("peer %d is outside the strong set", r.Peer)
	case r.Sybil():
		printWarning("peer %d depends on cutpoint(s) %s", r.Peer, formatLabels(r.Points))
	default:
		printSuccess("peer %d has no strong-set articulation points", r.Peer)
	}
	if r.Isolated() {
		printDetail("%d trials leave it outside: %s", len(r.Points), formatLabels(r.Points))
	}
}
