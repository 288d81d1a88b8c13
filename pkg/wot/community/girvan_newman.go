package community

import (
	"time"

	"github.com/matzehuels/wotscan/pkg/errors"
	"github.com/matzehuels/wotscan/pkg/observability"
	"github.com/matzehuels/wotscan/pkg/wot"
	"github.com/matzehuels/wotscan/pkg/wot/scc"
)

// RemovalPolicy decides what else goes when the top-scoring edge is removed.
type RemovalPolicy int

const (
	// RemoveReciprocal removes the chosen edge and, if present, its reverse
	// in the same iteration.
	RemoveReciprocal RemovalPolicy = iota

	// RemoveSingle removes only the chosen directed edge.
	RemoveSingle
)

// String returns the policy name.
func (p RemovalPolicy) String() string {
	switch p {
	case RemoveReciprocal:
		return "reciprocal"
	case RemoveSingle:
		return "single"
	default:
		return "unknown"
	}
}

// ParseRemovalPolicy maps "reciprocal" or "single" to a policy.
func ParseRemovalPolicy(s string) (RemovalPolicy, error) {
	switch s {
	case "", "reciprocal":
		return RemoveReciprocal, nil
	case "single":
		return RemoveSingle, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "unknown removal policy %q (want reciprocal or single)", s)
}

// Options configures [GirvanNewman].
type Options struct {
	// TargetComponents stops the run once the graph has at least this many
	// strongly connected components. Zero means one more than at the start.
	TargetComponents int

	// Policy decides whether reverse edges are removed too.
	Policy RemovalPolicy
}

// Result is the outcome of a [GirvanNewman] run.
type Result struct {
	// Components is the final strongly connected partition.
	Components [][]int

	// EdgesRemoved counts removed directed edges; reverse edges removed
	// under [RemoveReciprocal] and duplicate signatures count separately.
	EdgesRemoved int

	// Removed lists the removed edges in removal order, once per deleted copy.
	Removed []wot.Edge

	// Iterations is the number of betweenness rounds.
	Iterations int

	// Modularity of Components on the input graph.
	Modularity float64
}

// GirvanNewman detects communities by repeatedly removing the edge with the
// highest [EdgeBetweenness] and recomputing the strongly connected components
// of what is left. g itself is not modified.
//
// The loop stops as soon as one of these holds:
//   - the component count reaches opts.TargetComponents
//   - no edges remain
//   - no edge has a positive score
//
// Every iteration removes at least one edge, so there are at most |E|
// iterations and EdgesRemoved never exceeds |E|.
//
// Returns ErrCodeInvalidInput if TargetComponents is negative or larger than
// the number of vertices.
func GirvanNewman(g *wot.Graph, opts Options) (*Result, error) {
	if opts.TargetComponents < 0 || opts.TargetComponents > g.Len() {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"target components %d out of range [0, %d]", opts.TargetComponents, g.Len())
	}

	work := g.Clone()
	components := scc.Components(work)
	target := opts.TargetComponents
	if target == 0 {
		target = len(components) + 1
	}

	hooks := observability.Analysis()
	start := time.Now()
	limit := work.EdgeCount()
	res := &Result{}

	for res.Iterations < limit && len(components) < target && work.EdgeCount() > 0 {
		top := TopNEdges(EdgeBetweenness(work), 1)
		if len(top) == 0 || top[0].Score <= 0 {
			break
		}
		e := top[0].Edge
		for range work.RemoveEdge(e.From, e.To) {
			res.Removed = append(res.Removed, e)
		}
		if opts.Policy == RemoveReciprocal {
			for range work.RemoveEdge(e.To, e.From) {
				res.Removed = append(res.Removed, e.Reverse())
			}
		}
		res.Iterations++
		components = scc.Components(work)
		hooks.OnEdgeRemoved(res.Iterations, e.From, e.To, top[0].Score, len(components))
	}

	res.Components = components
	res.EdgesRemoved = len(res.Removed)
	res.Modularity = Modularity(g, components)
	hooks.OnCommunitiesComplete(res.Iterations, res.EdgesRemoved, len(components), time.Since(start))
	return res, nil
}
