// Package pkg provides the core libraries of wotscan, a toolkit for analysing
// web-of-trust signature graphs.
//
// # Overview
//
// A trust network is a directed graph of peers (public keys) where an edge
// a -> b means a has signed b's key. The libraries answer two questions about
// such a network: who sits in the well-connected core, and which parts of it
// hang on a single point of trust.
//
// # Architecture
//
// The typical data flow:
//
//	random / scenario / JSON network
//	         ↓
//	    [wot] package (graph model and builders)
//	         ↓
//	    [wot/traverse] package (DFS, BFS with path counts)
//	         ↓
//	    [wot/scc], [wot/metric], [wot/sybil], [wot/community]
//	         ↓
//	    [render/nodelink] package (DOT, SVG, PDF, PNG)
//
// # Quick Start
//
// Rank the strong set of a network by mean shortest distance:
//
//	g := fixture.Sybil(fixture.Link{Attacker: 17, Legit: 2})
//	strong, _ := scc.StrongSet(scc.Components(g), scc.Anchored(fixture.HonestLabels()...))
//	ranking, _ := metric.Ranking(g, strong)
//
// Find the peers a sock identity depends on:
//
//	points, _ := sybil.ArticulationPoints(g, 17, scc.Anchored(fixture.HonestLabels()...))
//
// # Main Packages
//
//   - [wot]: graph model, random generation, concatenation, masked views
//   - [wot/traverse]: timestamped DFS, BFS path trees, transpose
//   - [wot/scc]: Kosaraju components and strong-set selectors
//   - [wot/metric]: MSD, AMSD and dearticulated MSD
//   - [wot/sybil]: strong-set articulation points
//   - [wot/community]: edge betweenness, modularity and Girvan-Newman
//   - [scenario]: TOML-configured Sybil attack simulations
//   - [io]: JSON import and export
//   - [render/nodelink]: Graphviz diagrams
//   - [errors]: coded errors shared by every package
//   - [observability]: hooks for progress reporting
//
// [wot]: https://pkg.go.dev/github.com/matzehuels/wotscan/pkg/wot
// [wot/traverse]: https://pkg.go.dev/github.com/matzehuels/wotscan/pkg/wot/traverse
// [wot/scc]: https://pkg.go.dev/github.com/matzehuels/wotscan/pkg/wot/scc
// [wot/metric]: https://pkg.go.dev/github.com/matzehuels/wotscan/pkg/wot/metric
// [wot/sybil]: https://pkg.go.dev/github.com/matzehuels/wotscan/pkg/wot/sybil
// [wot/community]: https://pkg.go.dev/github.com/matzehuels/wotscan/pkg/wot/community
// [scenario]: https://pkg.go.dev/github.com/matzehuels/wotscan/pkg/scenario
// [io]: https://pkg.go.dev/github.com/matzehuels/wotscan/pkg/io
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/wotscan/pkg/render/nodelink
// [errors]: https://pkg.go.dev/github.com/matzehuels/wotscan/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/wotscan/pkg/observability
package pkg
