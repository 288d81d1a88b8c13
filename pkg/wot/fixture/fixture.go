// Package fixture provides small deterministic trust networks with known
// structure, used by the tests of the analysis packages and by the CLI's
// reference mode.
package fixture

import "github.com/matzehuels/wotscan/pkg/wot"

// Reference vertex labels of [Reference].
const (
	A = iota
	B
	C
	D
	E
	F
)

// Reference returns the six-vertex community-detection example network:
//
//	A -> B, D      B -> A, C, E      C -> B, F
//	D -> A, E      E -> D, B, F      F -> C, E
//
// Every edge is reciprocated. The square {A, B, E, D} and the pair {C, F}
// are joined through B <-> C and E <-> F.
func Reference() *wot.Graph {
	g := wot.New(6)
	sign := func(from int, to ...int) {
		for _, t := range to {
			g.Peer(from).Sign(t)
		}
	}
	sign(A, B, D)
	sign(B, A, C, E)
	sign(C, B, F)
	sign(D, A, E)
	sign(E, D, B, F)
	sign(F, C, E)
	return g
}

// Sizes of the two halves of [Sybil].
const (
	HonestPeers = 10
	SockPeers   = 20
)

// Link is a reciprocal signature between a sock identity and an honest peer.
type Link struct {
	Attacker int
	Legit    int
}

// Sybil returns a 30-peer network: honest peers 0..9 and sock identities
// 10..29 controlled by one attacker, then applies links as reciprocal
// signatures.
//
// Each half is a reciprocal ring with reciprocal chords, so both halves stay
// strongly connected after removing any single vertex. Without links the
// halves are disconnected.
func Sybil(links ...Link) *wot.Graph {
	honest := ring(HonestPeers, 3)
	socks := ring(SockPeers, 5)
	g := wot.Concat(honest, socks)
	for _, l := range links {
		if err := g.SignMutual(l.Attacker, l.Legit); err != nil {
			panic(err)
		}
	}
	return g
}

// HonestLabels returns the labels of the honest half of [Sybil].
func HonestLabels() []int {
	labels := make([]int, HonestPeers)
	for i := range labels {
		labels[i] = i
	}
	return labels
}

func ring(n, chord int) *wot.Graph {
	g := wot.New(n)
	for i := range n {
		_ = g.SignMutual(i, (i+1)%n)
		_ = g.SignMutual(i, (i+chord)%n)
	}
	return g
}
