// Package traverse implements the graph traversals the trust metrics are
// built on.
//
// [DepthFirst] is the classic white/gray/black search with discovery and
// finish timestamps and an optional root order, as needed by Kosaraju's
// strongly connected components. [BreadthFirst] computes the shortest-path
// tree from one source together with the number of shortest paths to every
// reached vertex, the input of the distance metrics and of edge betweenness.
// [Transpose] reverses every edge.
//
// Traversal records are returned as plain slices of [VertexProperty];
// predecessor links are indices into the same slice, so the trees they form
// carry no pointers and are discarded with the slice.
package traverse
