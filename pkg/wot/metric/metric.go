// Package metric computes distance-based trust metrics over a signature
// graph.
//
// The mean shortest distance (MSD) of a peer is the average hop count from
// that peer to everything it can reach. Low values mean the peer sits close
// to the rest of the network; sock-puppet clusters typically show a low MSD
// among themselves and a high MSD once the single link into the honest core
// is taken away, which is what [DMSD] measures.
package metric

import (
	"cmp"
	"slices"

	"github.com/matzehuels/wotscan/pkg/errors"
	"github.com/matzehuels/wotscan/pkg/wot"
	"github.com/matzehuels/wotscan/pkg/wot/scc"
	"github.com/matzehuels/wotscan/pkg/wot/traverse"
)

// MSD returns the mean shortest distance from label to every vertex it
// reaches, the source itself included at distance 0. A peer that reaches
// nobody has an MSD of 0.
func MSD(g wot.Digraph, label int) (float64, error) {
	tree, err := traverse.BreadthFirst(g, label)
	if err != nil {
		return 0, err
	}
	sum := 0
	for _, v := range tree.Vertices {
		sum += v.Discovered
	}
	return float64(sum) / float64(tree.Len()), nil
}

// AMSD returns the arithmetic mean of [MSD] over labels.
// Returns ErrCodeEmptySet if labels is empty.
func AMSD(g wot.Digraph, labels []int) (float64, error) {
	if len(labels) == 0 {
		return 0, errors.New(errors.ErrCodeEmptySet, "average MSD over an empty set")
	}
	var sum float64
	for _, l := range labels {
		m, err := MSD(g, l)
		if err != nil {
			return 0, err
		}
		sum += m
	}
	return sum / float64(len(labels)), nil
}

// DMSD returns the dearticulated mean shortest distance of label.
//
// The label is disconnected, the strong set of the remaining graph is chosen
// with sel, and distances are measured from label on the original graph but
// averaged only over reached members of that strong set. Vertices whose only
// route to the core runs through label therefore stop counting.
//
// Returns ErrCodeEmptySet if no reached vertex belongs to the strong set.
func DMSD(g wot.Digraph, label int, sel scc.Selector) (float64, error) {
	view, err := wot.Without(g, label)
	if err != nil {
		return 0, err
	}
	strong, err := scc.StrongSet(scc.Components(view), sel)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeEmptySet, err, "dearticulated MSD of peer %d", label)
	}

	tree, err := traverse.BreadthFirst(g, label)
	if err != nil {
		return 0, err
	}
	sum, n := 0, 0
	for _, l := range strong {
		if d := tree.Distance(l); d >= 0 {
			sum += d
			n++
		}
	}
	if n == 0 {
		return 0, errors.New(errors.ErrCodeEmptySet, "peer %d reaches no member of the %s strong set", label, sel)
	}
	return float64(sum) / float64(n), nil
}

// Score pairs a peer with its MSD.
type Score struct {
	Label int
	MSD   float64
}

// Ranking computes the MSD of every label and orders the results from the
// most central peer to the least, ties broken by label.
func Ranking(g wot.Digraph, labels []int) ([]Score, error) {
	scores := make([]Score, 0, len(labels))
	for _, l := range labels {
		m, err := MSD(g, l)
		if err != nil {
			return nil, err
		}
		scores = append(scores, Score{Label: l, MSD: m})
	}
	slices.SortFunc(scores, func(a, b Score) int {
		if c := cmp.Compare(a.MSD, b.MSD); c != 0 {
			return c
		}
		return cmp.Compare(a.Label, b.Label)
	})
	return scores, nil
}
