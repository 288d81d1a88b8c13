package wot

import (
	"iter"
	"slices"

	"github.com/google/uuid"

	"github.com/matzehuels/wotscan/pkg/errors"
)

// Digraph is the read-only view of a trust network consumed by the analysis
// packages. Vertices are the labels 0..Len()-1.
//
// Neighbors yields the targets of a vertex's outgoing edges in signing order.
// Implementations must tolerate any label in range; behavior for out-of-range
// labels is undefined, so callers validate with [Check] first.
type Digraph interface {
	Len() int
	Neighbors(label int) iter.Seq[int]
}

// Peer is a vertex in the trust network: a public key that has signed the
// keys listed in Signed.
//
// Label is the peer's index in its graph and is the only identity the
// algorithms use. ID is an opaque random identifier carried for display.
type Peer struct {
	Label  int
	ID     uuid.UUID
	Signed []int // outgoing edge targets, in signing order
}

// NewPeer creates a peer with the given label, a fresh random ID and no
// signatures.
func NewPeer(label int) *Peer {
	return &Peer{Label: label, ID: uuid.New()}
}

// Sign appends an edge from p to target. No duplicate check is performed;
// callers that need one use [Peer.HasSigned] or [Graph.SignMutual].
func (p *Peer) Sign(target int) {
	p.Signed = append(p.Signed, target)
}

// HasSigned reports whether p has an outgoing edge to target.
func (p *Peer) HasSigned(target int) bool {
	return slices.Contains(p.Signed, target)
}

func (p *Peer) clone() *Peer {
	return &Peer{Label: p.Label, ID: p.ID, Signed: slices.Clone(p.Signed)}
}

// Edge is a directed signature From -> To.
type Edge struct {
	From int
	To   int
}

// Reverse returns the edge pointing the other way.
func (e Edge) Reverse() Edge { return Edge{From: e.To, To: e.From} }

// Graph is a directed trust network: an ordered sequence of peers addressed
// by label. Graph implements [Digraph].
//
// The zero value is an empty graph ready to use.
// Graph is not safe for concurrent use without external synchronization.
type Graph struct {
	peers []*Peer
}

// New creates a graph of n unconnected peers labelled 0..n-1.
func New(n int) *Graph {
	g := &Graph{peers: make([]*Peer, n)}
	for i := range g.peers {
		g.peers[i] = NewPeer(i)
	}
	return g
}

// FromPeers builds a graph from existing peers. Each peer's Label must equal
// its position and every signature must target a peer in the slice; the
// peers are adopted, not copied.
func FromPeers(peers ...*Peer) (*Graph, error) {
	g := &Graph{peers: peers}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// Len returns the number of peers.
func (g *Graph) Len() int { return len(g.peers) }

// Neighbors yields the labels signed by label, in signing order.
func (g *Graph) Neighbors(label int) iter.Seq[int] {
	return slices.Values(g.peers[label].Signed)
}

// Out returns the outgoing edge targets of label. The returned slice is a
// read-only view; use [Graph.Sign] and [Graph.RemoveEdge] to modify edges.
// Returns nil for an out-of-range label.
func (g *Graph) Out(label int) []int {
	if label < 0 || label >= len(g.peers) {
		return nil
	}
	return g.peers[label].Signed
}

// Peer returns the peer with the given label, or nil if out of range.
// The pointer refers to the peer inside the graph, so [Peer.Sign] on it
// mutates the graph.
func (g *Graph) Peer(label int) *Peer {
	if label < 0 || label >= len(g.peers) {
		return nil
	}
	return g.peers[label]
}

// Peers returns the peers in label order. The slice is a copy but the peers
// are shared with the graph.
func (g *Graph) Peers() []*Peer { return slices.Clone(g.peers) }

// AddPeer appends a new unconnected peer and returns its label.
func (g *Graph) AddPeer() int {
	l := len(g.peers)
	g.peers = append(g.peers, NewPeer(l))
	return l
}

// Check returns an ErrCodeInvalidIndex error if label is not a vertex of g.
func (g *Graph) Check(label int) error {
	return errors.ValidateLabel(label, len(g.peers))
}

// Sign adds the edge from -> to after checking both labels. Like
// [Peer.Sign] it does not reject duplicates.
func (g *Graph) Sign(from, to int) error {
	if err := g.Check(from); err != nil {
		return err
	}
	if err := g.Check(to); err != nil {
		return err
	}
	g.peers[from].Sign(to)
	return nil
}

// SignMutual adds the reciprocal pair a -> b and b -> a, skipping whichever
// direction already exists. Self-signatures are rejected.
func (g *Graph) SignMutual(a, b int) error {
	if err := g.Check(a); err != nil {
		return err
	}
	if err := g.Check(b); err != nil {
		return err
	}
	if a == b {
		return errors.New(errors.ErrCodeInvalidInput, "peer %d cannot sign itself", a)
	}
	if !g.peers[a].HasSigned(b) {
		g.peers[a].Sign(b)
	}
	if !g.peers[b].HasSigned(a) {
		g.peers[b].Sign(a)
	}
	return nil
}

// HasEdge reports whether the edge from -> to exists.
func (g *Graph) HasEdge(from, to int) bool {
	p := g.Peer(from)
	return p != nil && p.HasSigned(to)
}

// RemoveEdge deletes every from -> to edge and returns how many were
// deleted. Duplicate signatures count once each.
func (g *Graph) RemoveEdge(from, to int) int {
	p := g.Peer(from)
	if p == nil {
		return 0
	}
	n := len(p.Signed)
	p.Signed = slices.DeleteFunc(p.Signed, func(t int) bool { return t == to })
	return n - len(p.Signed)
}

// EdgeCount returns the number of directed edges.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, p := range g.peers {
		n += len(p.Signed)
	}
	return n
}

// Edges returns every edge ordered by source label, then signing order.
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, 0, g.EdgeCount())
	for _, p := range g.peers {
		for _, t := range p.Signed {
			edges = append(edges, Edge{From: p.Label, To: t})
		}
	}
	return edges
}

// Clone returns a deep copy of g. Peer IDs are preserved.
func (g *Graph) Clone() *Graph {
	c := &Graph{peers: make([]*Peer, len(g.peers))}
	for i, p := range g.peers {
		c.peers[i] = p.clone()
	}
	return c
}

// Equal reports whether g and o have the same vertex count and identical
// outgoing lists, in order. Peer IDs are ignored.
func (g *Graph) Equal(o *Graph) bool {
	if len(g.peers) != len(o.peers) {
		return false
	}
	for i, p := range g.peers {
		if p.Label != o.peers[i].Label || !slices.Equal(p.Signed, o.peers[i].Signed) {
			return false
		}
	}
	return true
}

// Validate checks graph integrity and returns nil if valid.
// It verifies that every peer's label matches its position and that every
// outgoing list references existing peers without duplicates. Failures are
// reported as ErrCodeInvalidGraph.
func (g *Graph) Validate() error {
	for i, p := range g.peers {
		if p == nil {
			return errors.New(errors.ErrCodeInvalidGraph, "peer %d is nil", i)
		}
		if p.Label != i {
			return errors.New(errors.ErrCodeInvalidGraph, "peer at position %d has label %d", i, p.Label)
		}
		seen := make(map[int]bool, len(p.Signed))
		for _, t := range p.Signed {
			if err := g.Check(t); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidGraph, err, "peer %d", i)
			}
			if seen[t] {
				return errors.New(errors.ErrCodeInvalidGraph, "peer %d signs %d more than once", i, t)
			}
			seen[t] = true
		}
	}
	return nil
}

// Check returns an ErrCodeInvalidIndex error if label is not a vertex of g.
// It is the [Digraph] counterpart of [Graph.Check].
func Check(g Digraph, label int) error {
	return errors.ValidateLabel(label, g.Len())
}

// Materialize copies any Digraph into a new Graph. Peer IDs are preserved
// when g is a *Graph.
func Materialize(g Digraph) *Graph {
	if src, ok := g.(*Graph); ok {
		return src.Clone()
	}
	out := New(g.Len())
	for v := range g.Len() {
		for w := range g.Neighbors(v) {
			out.peers[v].Sign(w)
		}
	}
	return out
}
