package community

import (
	"cmp"
	"slices"

	"github.com/matzehuels/wotscan/pkg/wot"
	"github.com/matzehuels/wotscan/pkg/wot/traverse"
)

// EdgeScoreMap holds accumulated edge scores keyed by source label, then by
// target label. Edges that lie on no shortest path are absent.
type EdgeScoreMap map[int]map[int]float64

// Score returns the score of from -> to, or 0 if the edge was never scored.
func (m EdgeScoreMap) Score(from, to int) float64 {
	return m[from][to]
}

// Len returns the number of scored edges.
func (m EdgeScoreMap) Len() int {
	n := 0
	for _, targets := range m {
		n += len(targets)
	}
	return n
}

func (m EdgeScoreMap) add(from, to int, score float64) {
	targets, ok := m[from]
	if !ok {
		targets = make(map[int]float64)
		m[from] = targets
	}
	targets[to] += score
}

// EdgeScore is one flattened entry of an [EdgeScoreMap].
type EdgeScore struct {
	Edge  wot.Edge
	Score float64
}

// EdgeBetweenness returns the shortest-path edge betweenness of every edge
// of g, summed over all source vertices.
//
// For each source the vertices of its breadth-first tree are processed from
// the deepest layer back to the source. A vertex v is a leaf when none of its
// out-edges leads one layer deeper. Every edge u -> v with u one layer above
// v then scores
//
//	(count(u) if v is a leaf, else 1) + Σ score(v -> w) over deeper w
//	----------------------------------------------------------------
//	                          count(v)
//
// where count is the number of shortest paths from the source. Predecessors
// are found through the transpose of g, built once per call.
func EdgeBetweenness(g wot.Digraph) EdgeScoreMap {
	total := make(EdgeScoreMap)
	reverse := traverse.Transpose(g)

	for s := range g.Len() {
		tree, _ := traverse.BreadthFirst(g, s)
		dist := tree.Distances()
		local := make(EdgeScoreMap)

		for i := tree.Len() - 1; i >= 0; i-- {
			v := tree.Vertices[i].Label
			leaf := true
			flow := 0.0
			for w := range g.Neighbors(v) {
				if dist[w] > dist[v] {
					leaf = false
					flow += local.Score(v, w)
				}
			}
			for _, u := range reverse.Out(v) {
				if dist[u] < 0 || dist[u] >= dist[v] {
					continue
				}
				base := 1.0
				if leaf {
					base = tree.Count(u)
				}
				// Assign rather than add: duplicated signatures score once.
				if local[u] == nil {
					local[u] = make(map[int]float64)
				}
				local[u][v] = (base + flow) / tree.Count(v)
			}
		}

		for from, targets := range local {
			for to, score := range targets {
				total.add(from, to, score)
			}
		}
	}
	return total
}

// TopNEdges returns the n highest-scoring edges. Equal scores keep ascending
// (from, to) order. A non-positive n yields no edges; an n beyond the number
// of scored edges yields all of them.
func TopNEdges(scores EdgeScoreMap, n int) []EdgeScore {
	if n <= 0 {
		return nil
	}
	flat := make([]EdgeScore, 0, scores.Len())
	for from, targets := range scores {
		for to, score := range targets {
			flat = append(flat, EdgeScore{Edge: wot.Edge{From: from, To: to}, Score: score})
		}
	}
	slices.SortFunc(flat, func(a, b EdgeScore) int {
		if c := cmp.Compare(a.Edge.From, b.Edge.From); c != 0 {
			return c
		}
		return cmp.Compare(a.Edge.To, b.Edge.To)
	})
	slices.SortStableFunc(flat, func(a, b EdgeScore) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return flat[:min(n, len(flat))]
}
