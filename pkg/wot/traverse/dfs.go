package traverse

import (
	"github.com/matzehuels/wotscan/pkg/errors"
	"github.com/matzehuels/wotscan/pkg/wot"
)

// Color is the visit state of a vertex during a traversal.
type Color uint8

const (
	// White vertices have not been discovered yet.
	White Color = iota
	// Gray vertices are discovered but their out-edges are not exhausted.
	Gray
	// Black vertices are finished.
	Black
)

func (c Color) String() string {
	switch c {
	case White:
		return "undiscovered"
	case Gray:
		return "discovered"
	case Black:
		return "finished"
	}
	return "unknown"
}

// NoPred marks a vertex without a predecessor: a traversal root, or a vertex
// that was never reached.
const NoPred = -1

// VertexProperty is the per-vertex record produced by a traversal.
//
// Pred is an index into the same traversal's property slice, never a label
// from another call. Records are created fresh by every call.
type VertexProperty struct {
	Label      int
	Discovered int // discovery timestamp (DFS) or hop distance (BFS)
	Finished   int // finish timestamp
	Color      Color
	Pred       int // index of the predecessor record, or NoPred
}

// IsRoot reports whether the vertex has no predecessor.
func (p VertexProperty) IsRoot() bool { return p.Pred == NoPred }

// DepthFirst runs a white/gray/black depth-first search over every vertex of
// g and returns one record per vertex, indexed by label.
//
// Roots are tried in the given order, or ascending label order when order is
// empty; every still-undiscovered root starts a new DFS tree. Out-edges are
// followed in signing order. Timestamps start at 1 and share one clock for
// discovery and finish events, so the intervals nest like parentheses.
//
// A non-empty order must be a permutation of the labels: out-of-range
// entries return ErrCodeInvalidIndex, other mismatches ErrCodeInvalidInput.
func DepthFirst(g wot.Digraph, order ...int) ([]VertexProperty, error) {
	n := g.Len()
	if len(order) == 0 {
		order = make([]int, n)
		for i := range order {
			order[i] = i
		}
	} else if err := errors.ValidatePermutation(order, n); err != nil {
		return nil, err
	}

	props := make([]VertexProperty, n)
	for i := range props {
		props[i] = VertexProperty{Label: i, Pred: NoPred}
	}

	clock := 0
	var visit func(u int)
	visit = func(u int) {
		clock++
		props[u].Discovered = clock
		props[u].Color = Gray
		for v := range g.Neighbors(u) {
			if props[v].Color == White {
				props[v].Pred = u
				visit(v)
			}
		}
		props[u].Color = Black
		clock++
		props[u].Finished = clock
	}

	for _, root := range order {
		if props[root].Color == White {
			visit(root)
		}
	}
	return props, nil
}

// Transpose returns a new graph with every edge of g reversed. Peer IDs are
// kept when g is a *wot.Graph. The reversed lists are ordered by source
// label. Runs in O(V+E).
func Transpose(g wot.Digraph) *wot.Graph {
	n := g.Len()
	t := wot.New(n)
	if src, ok := g.(*wot.Graph); ok {
		for i := range n {
			t.Peer(i).ID = src.Peer(i).ID
		}
	}
	for v := range n {
		for w := range g.Neighbors(v) {
			t.Peer(w).Sign(v)
		}
	}
	return t
}
