// Package sybil finds the peers a given identity depends on to stay inside
// the trusted strong set.
//
// A sock-puppet cluster controlled by one attacker typically reaches the
// honest core through very few reciprocal signatures. While there is exactly
// one such link, the honest peer on the other end is a cutpoint: removing it
// drops every sock identity out of the strong set. [ArticulationPoints]
// finds these cutpoints by brute force, one strongly connected component
// decomposition per vertex.
package sybil

import (
	"slices"
	"time"

	"github.com/matzehuels/wotscan/pkg/observability"
	"github.com/matzehuels/wotscan/pkg/wot"
	"github.com/matzehuels/wotscan/pkg/wot/scc"
)

// ArticulationPoints returns, in ascending order, every vertex v != label
// whose removal leaves label outside the strong set chosen by sel.
//
// Each trial works on a masked view of g (see [wot.Without]) rather than a
// copy, so g is never modified. A trial in which sel matches no component
// counts as label having left the strong set. A nil sel means
// [scc.Largest].
//
// Returns ErrCodeInvalidIndex if label is out of range.
func ArticulationPoints(g wot.Digraph, label int, sel scc.Selector) ([]int, error) {
	if err := wot.Check(g, label); err != nil {
		return nil, err
	}

	hooks := observability.Analysis()
	hooks.OnScanStart(label, g.Len())
	start := time.Now()

	points := []int{}
	for v := range g.Len() {
		if v == label {
			continue
		}
		view, err := wot.Without(g, v)
		if err != nil {
			return nil, err
		}
		if !inStrongSet(view, label, sel) {
			points = append(points, v)
		}
	}

	hooks.OnScanComplete(label, points, time.Since(start))
	return points, nil
}

func inStrongSet(g wot.Digraph, label int, sel scc.Selector) bool {
	strong, err := scc.StrongSet(scc.Components(g), sel)
	if err != nil {
		return false
	}
	return slices.Contains(strong, label)
}

// Report summarizes the articulation analysis of one peer.
type Report struct {
	// Peer is the analysed label.
	Peer int

	// Selector names the strong-set selector used.
	Selector string

	// StrongSet is the strong set of the intact graph.
	StrongSet []int

	// InStrongSet reports whether Peer belongs to StrongSet.
	InStrongSet bool

	// Points are the articulation points of Peer, ascending.
	Points []int
}

// Analyze computes the strong set of g and the articulation points of label.
// A nil sel means [scc.Largest].
func Analyze(g wot.Digraph, label int, sel scc.Selector) (*Report, error) {
	if sel == nil {
		sel = scc.Largest()
	}
	points, err := ArticulationPoints(g, label, sel)
	if err != nil {
		return nil, err
	}
	strong, err := scc.StrongSet(scc.Components(g), sel)
	if err != nil {
		return nil, err
	}
	return &Report{
		Peer:        label,
		Selector:    sel.String(),
		StrongSet:   strong,
		InStrongSet: slices.Contains(strong, label),
		Points:      points,
	}, nil
}

// Sybil reports whether the peer holds its place in the strong set only
// through cutpoints, the signature of a sock-puppet cluster with one link
// into the honest core.
func (r *Report) Sybil() bool {
	return r.InStrongSet && len(r.Points) > 0
}

// Isolated reports whether the peer is outside the strong set altogether.
func (r *Report) Isolated() bool {
	return !r.InStrongSet
}
