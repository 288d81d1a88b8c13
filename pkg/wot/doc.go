// Package wot models a web-of-trust network as a directed graph.
//
// # Overview
//
// Every peer is a public key; an edge A -> B means A has signed B's key,
// i.e. A vouches for B. Signatures are normally exchanged in reciprocal
// pairs, but the graph is directed and nothing requires that.
//
// Peers are addressed by their label, which is always their index in the
// graph. Each peer also carries a random [uuid.UUID] for display; the
// analysis code never looks at it.
//
// # Basic Usage
//
// Create a graph with [New] and add signatures with [Graph.Sign],
// [Graph.SignMutual] or directly through [Peer.Sign]:
//
//	g := wot.New(3)
//	g.SignMutual(0, 1)
//	g.Peer(1).Sign(2)
//
// Use [Random] to build a reciprocal random network from an explicit
// *rand.Rand, and [Concat] to place two networks side by side.
//
// # Copy Semantics
//
// [Disconnect] isolates a vertex and always returns an independent copy; the
// input graph is never modified, which the analysis packages rely on when
// they probe many vertices of the same snapshot. [Without] provides the same
// result as a zero-copy read-only [Digraph] view.
//
// # Related Packages
//
//   - [traverse]: depth-first and breadth-first search, transpose
//   - [scc]: strongly connected components and strong-set selection
//   - [metric]: mean shortest distance metrics
//   - [sybil]: articulation points relative to the strong set
//   - [community]: edge betweenness and Girvan-Newman
//
// [traverse]: github.com/matzehuels/wotscan/pkg/wot/traverse
// [scc]: github.com/matzehuels/wotscan/pkg/wot/scc
// [metric]: github.com/matzehuels/wotscan/pkg/wot/metric
// [sybil]: github.com/matzehuels/wotscan/pkg/wot/sybil
// [community]: github.com/matzehuels/wotscan/pkg/wot/community
package wot
