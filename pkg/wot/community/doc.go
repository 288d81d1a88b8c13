// Package community detects community structure in a trust network.
//
// [EdgeBetweenness] scores every edge by the shortest-path traffic it
// carries, summed over all sources. [GirvanNewman] repeatedly removes the
// highest-scoring edge until the network falls apart into the requested
// number of strongly connected components, and [Modularity] rates the
// resulting partition.
//
// Edges joining two densely signed groups carry most of the traffic between
// them, so they are removed first. In a Sybil setting these are usually the
// few reciprocal signatures an attacker obtained from honest peers.
package community
