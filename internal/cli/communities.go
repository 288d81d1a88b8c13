package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wotscan/pkg/wot/community"
	"github.com/matzehuels/wotscan/pkg/wot/scc"
)

// communitiesOpts holds the command-line flags for the communities command.
type communitiesOpts struct {
	source sourceOpts
	target int    // component count that ends Girvan-Newman
	policy string // removal policy: reciprocal or single
	top    int    // rows in the betweenness table
}

// communitiesCommand creates the communities command.
func (c *CLI) communitiesCommand() *cobra.Command {
	opts := communitiesOpts{top: defaultTop}

	cmd := &cobra.Command{
		Use:   "communities",
		Short: "Detect communities with edge betweenness and Girvan-Newman",
		Long: `Score every signature by shortest-path edge betweenness, then repeatedly remove
the highest-scoring one until the network splits into --target strongly
connected components (default: one more than it starts with).

With --policy reciprocal (default) the reverse signature goes too, so a
mutual trust relation is cut in one step; --policy single removes one
direction at a time.

Examples:
  wotscan communities --reference
  wotscan communities --sybil --link 17:2 --link 29:4 --target 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)
			return c.runCommunities(ctx, &opts)
		},
	}

	opts.source.register(cmd)
	cmd.Flags().IntVarP(&opts.target, "target", "k", 0, "stop at this many components (0: one more than initially)")
	cmd.Flags().StringVar(&opts.policy, "policy", community.RemoveReciprocal.String(), "edge removal policy: reciprocal, single")
	cmd.Flags().IntVar(&opts.top, "top", opts.top, "number of edges in the betweenness table")

	return cmd
}

func (c *CLI) runCommunities(ctx context.Context, opts *communitiesOpts) error {
	policy, err := community.ParseRemovalPolicy(opts.policy)
	if err != nil {
		return err
	}
	src, err := opts.source.load(ctx)
	if err != nil {
		return err
	}
	g := src.Graph

	fmt.Println(StyleTitle.Render(src.Description))
	printStats(g.Len(), g.EdgeCount(), len(scc.Components(g)))
	printNewline()

	top := community.TopNEdges(community.EdgeBetweenness(g), opts.top)
	if len(top) > 0 {
		rows := make([][]string, len(top))
		for i, e := range top {
			rows[i] = []string{edgeString(e.Edge.From, e.Edge.To), fmt.Sprintf("%.3f", e.Score)}
		}
		printTable([]string{"Signature", "Betweenness"}, rows)
		printNewline()
	}

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, "Running Girvan-Newman...")
	spinner.Start()
	res, err := community.GirvanNewman(g, community.Options{TargetComponents: opts.target, Policy: policy})
	spinner.Stop()
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Girvan-Newman finished after %d iteration(s)", res.Iterations))

	printKeyValue("policy", policy.String())
	printKeyValue("removed", fmt.Sprintf("%d signatures", res.EdgesRemoved))
	printKeyValue("modularity", fmt.Sprintf("%.4f", res.Modularity))
	printNewline()

	rows := make([][]string, len(res.Components))
	for i, members := range res.Components {
		rows[i] = []string{fmt.Sprint(i + 1), fmt.Sprint(len(members)), formatLabels(members)}
	}
	printTable([]string{"#", "Size", "Peers"}, rows)
	return nil
}
