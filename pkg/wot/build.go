package wot

import (
	"iter"
	"math/rand/v2"
	"slices"

	"github.com/matzehuels/wotscan/pkg/errors"
)

// Random builds a network of n peers with reciprocal signatures.
//
// For each peer in label order, a signature count is drawn uniformly from
// [sigMin, sigMax]; for each draw a partner is picked uniformly from all
// peers, and the pair signs each other unless the partner is the peer itself
// or the pair is already linked. Skipped draws are not retried, so a peer may
// end with fewer signatures than drawn (and more, since partners sign back).
//
// The result depends only on rng, so a seeded source reproduces the graph.
// Returns ErrCodeInvalidInput for a negative n or an invalid range.
func Random(n, sigMin, sigMax int, rng *rand.Rand) (*Graph, error) {
	if err := errors.ValidateSigRange(n, sigMin, sigMax); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "random source is required")
	}

	g := New(n)
	for _, p := range g.peers {
		count := sigMin + rng.IntN(sigMax-sigMin+1)
		for range count {
			buddy := rng.IntN(n)
			if buddy == p.Label || g.peers[buddy].HasSigned(p.Label) {
				continue
			}
			g.peers[buddy].Sign(p.Label)
			p.Sign(buddy)
		}
	}
	return g, nil
}

// Concat returns a new graph holding the peers of g1 followed by the peers of
// g2. Every g2 label, both the peer's own and each signature target, is
// shifted by g1.Len(). No edges are added between the two parts and neither
// input is modified.
func Concat(g1, g2 *Graph) *Graph {
	offset := g1.Len()
	out := g1.Clone()
	for _, p := range g2.peers {
		c := p.clone()
		c.Label += offset
		for i := range c.Signed {
			c.Signed[i] += offset
		}
		out.peers = append(out.peers, c)
	}
	return out
}

// Disconnect returns an independent copy of g in which label has no outgoing
// edges and no peer signs label. The vertex itself stays in place so labels
// are unchanged. g is never modified.
//
// Returns ErrCodeInvalidIndex if label is out of range.
func Disconnect(g *Graph, label int) (*Graph, error) {
	if err := g.Check(label); err != nil {
		return nil, err
	}
	out := g.Clone()
	out.peers[label].Signed = nil
	for _, p := range out.peers {
		p.Signed = slices.DeleteFunc(p.Signed, func(t int) bool { return t == label })
	}
	return out, nil
}

// Without returns a read-only view of g in which label is disconnected.
// The view is observably identical to [Disconnect] but shares g's storage,
// so it costs nothing to create; it reflects later changes to g.
//
// Returns ErrCodeInvalidIndex if label is out of range.
func Without(g Digraph, label int) (Digraph, error) {
	if err := Check(g, label); err != nil {
		return nil, err
	}
	return masked{g: g, cut: label}, nil
}

type masked struct {
	g   Digraph
	cut int
}

func (m masked) Len() int { return m.g.Len() }

func (m masked) Neighbors(label int) iter.Seq[int] {
	return func(yield func(int) bool) {
		if label == m.cut {
			return
		}
		for w := range m.g.Neighbors(label) {
			if w == m.cut {
				continue
			}
			if !yield(w) {
				return
			}
		}
	}
}
