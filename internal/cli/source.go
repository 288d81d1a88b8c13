package cli

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wotscan/pkg/errors"
	graphio "github.com/matzehuels/wotscan/pkg/io"
	"github.com/matzehuels/wotscan/pkg/scenario"
	"github.com/matzehuels/wotscan/pkg/wot"
	"github.com/matzehuels/wotscan/pkg/wot/fixture"
	"github.com/matzehuels/wotscan/pkg/wot/scc"
)

// =============================================================================
// Graph Source Flags
// =============================================================================

// sourceOpts selects the network a command analyses. Exactly one source
// applies, checked in this order: --reference, --sybil, --config, --graph,
// random.
type sourceOpts struct {
	reference bool     // six-peer reference network
	graph     string   // JSON graph file
	sybil     bool     // deterministic 10 + 20 Sybil network
	links     []string // --link attacker:legit for --sybil
	config    string   // scenario TOML; the final step is analysed
	peers     int      // random network size
	sigMin    int      // random network minimum draws per peer
	sigMax    int      // random network maximum draws per peer
	seed      uint64   // random seed
	selector  string   // strong-set selector name
	anchors   []int    // anchors for the selector; defaults to the honest peers
}

// source is a loaded network together with what is known about it.
type source struct {
	Graph       *wot.Graph
	Description string
	Honest      []int // known-honest peers, empty for random networks
}

// register adds the source flags to cmd.
func (o *sourceOpts) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.BoolVar(&o.reference, "reference", false, "analyse the six-peer reference network")
	f.BoolVar(&o.sybil, "sybil", false, "analyse the deterministic 10 honest + 20 sock network")
	f.StringArrayVar(&o.links, "link", nil, "reciprocal link attacker:legit for --sybil (repeatable)")
	f.StringVarP(&o.config, "config", "c", "", "scenario TOML file; the final step is analysed")
	f.StringVarP(&o.graph, "graph", "g", "", "JSON graph file, as written by render -f json")
	f.IntVarP(&o.peers, "peers", "n", 30, "random network size")
	f.IntVar(&o.sigMin, "sig-min", 1, "minimum signatures drawn per peer")
	f.IntVar(&o.sigMax, "sig-max", 3, "maximum signatures drawn per peer")
	f.Uint64Var(&o.seed, "seed", scenario.DefaultSeed, "random seed")
	f.StringVar(&o.selector, "strong-set", "", "strong-set selector: anchored, largest, first, containing (default anchored when honest peers are known, else largest)")
	f.IntSliceVar(&o.anchors, "anchor", nil, "anchor peers for the selector (default: honest peers)")

	cmd.MarkFlagsMutuallyExclusive("reference", "sybil", "config", "graph")
}

// load builds the selected network.
func (o *sourceOpts) load(ctx context.Context) (*source, error) {
	switch {
	case o.reference:
		return &source{Graph: fixture.Reference(), Description: "reference network"}, nil

	case o.sybil:
		links, err := parseLinks(o.links)
		if err != nil {
			return nil, err
		}
		return &source{
			Graph:       fixture.Sybil(links...),
			Description: fmt.Sprintf("sybil network with %d link(s)", len(links)),
			Honest:      fixture.HonestLabels(),
		}, nil

	case o.config != "":
		cfg, err := scenario.Load(o.config)
		if err != nil {
			return nil, err
		}
		res, err := scenario.NewRunner(loggerFromContext(ctx)).Run(ctx, cfg)
		if err != nil {
			return nil, err
		}
		final := res.Final()
		return &source{
			Graph:       final.Graph,
			Description: fmt.Sprintf("%s (%s)", o.config, final.Name),
			Honest:      cfg.HonestLabels(),
		}, nil

	case o.graph != "":
		g, err := graphio.ImportJSON(o.graph)
		if err != nil {
			return nil, err
		}
		return &source{Graph: g, Description: o.graph}, nil
	}

	g, err := wot.Random(o.peers, o.sigMin, o.sigMax, rand.New(rand.NewPCG(o.seed, o.seed)))
	if err != nil {
		return nil, err
	}
	return &source{
		Graph:       g,
		Description: fmt.Sprintf("random network (seed %d)", o.seed),
	}, nil
}

// strongSet returns the selector for src.
func (o *sourceOpts) strongSet(src *source) (scc.Selector, error) {
	anchors := o.anchors
	if len(anchors) == 0 {
		anchors = src.Honest
	}
	name := o.selector
	if name == "" {
		name = "largest"
		if len(anchors) > 0 {
			name = "anchored"
		}
	}
	return scc.ParseSelector(name, anchors...)
}

// parseLinks parses "attacker:legit" pairs.
func parseLinks(specs []string) ([]fixture.Link, error) {
	links := make([]fixture.Link, 0, len(specs))
	for _, s := range specs {
		a, l, ok := strings.Cut(s, ":")
		attacker, errA := strconv.Atoi(strings.TrimSpace(a))
		legit, errL := strconv.Atoi(strings.TrimSpace(l))
		if !ok || errA != nil || errL != nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "invalid link %q (want attacker:legit)", s)
		}
		if attacker < fixture.HonestPeers || attacker >= fixture.HonestPeers+fixture.SockPeers {
			return nil, errors.New(errors.ErrCodeInvalidInput, "link %q: attacker must be a sock identity [%d, %d)",
				s, fixture.HonestPeers, fixture.HonestPeers+fixture.SockPeers)
		}
		if legit < 0 || legit >= fixture.HonestPeers {
			return nil, errors.New(errors.ErrCodeInvalidInput, "link %q: legit must be an honest peer [0, %d)", s, fixture.HonestPeers)
		}
		links = append(links, fixture.Link{Attacker: attacker, Legit: legit})
	}
	return links, nil
}
