package traverse

import (
	"math"

	"github.com/matzehuels/wotscan/pkg/wot"
)

// PathTree is the result of a breadth-first search: the shortest-path tree
// of the vertices reachable from Source.
//
// Vertices lists the reached vertices in discovery order, so the source is
// first and distances never decrease along the slice. Each record's
// Discovered field holds its hop distance from the source and Pred indexes
// into Vertices. Counts is parallel to Vertices and holds the number of
// shortest paths from the source to each vertex.
type PathTree struct {
	Source   int
	Vertices []VertexProperty
	Counts   []float64

	pos []int // label -> index in Vertices, or -1
}

// Pos returns the index of label in Vertices and whether it was reached.
func (t *PathTree) Pos(label int) (int, bool) {
	if label < 0 || label >= len(t.pos) || t.pos[label] < 0 {
		return 0, false
	}
	return t.pos[label], true
}

// Reached reports whether label is reachable from the source.
func (t *PathTree) Reached(label int) bool {
	_, ok := t.Pos(label)
	return ok
}

// Distance returns the hop distance of label from the source, or -1 if it
// was not reached.
func (t *PathTree) Distance(label int) int {
	i, ok := t.Pos(label)
	if !ok {
		return -1
	}
	return t.Vertices[i].Discovered
}

// Count returns the number of shortest paths from the source to label, or 0
// if it was not reached.
func (t *PathTree) Count(label int) float64 {
	i, ok := t.Pos(label)
	if !ok {
		return 0
	}
	return t.Counts[i]
}

// Distances returns the hop distance of every vertex of the searched graph,
// indexed by label, with -1 for unreached vertices.
func (t *PathTree) Distances() []int {
	d := make([]int, len(t.pos))
	for l := range d {
		d[l] = t.Distance(l)
	}
	return d
}

// Labels returns the reached labels in discovery order.
func (t *PathTree) Labels() []int {
	labels := make([]int, len(t.Vertices))
	for i, v := range t.Vertices {
		labels[i] = v.Label
	}
	return labels
}

// Len returns the number of reached vertices, source included.
func (t *PathTree) Len() int { return len(t.Vertices) }

// BreadthFirst runs an unweighted shortest-path search from source using a
// FIFO frontier and returns the tree of reached vertices.
//
// Shortest-path counts follow the usual recurrence. When relaxing u -> v:
// if d(v) > d(u)+1 the vertex is discovered at a shorter distance and takes
// count(u); if d(v) == d(u)+1 it accumulates count(u). All of u's out-edges
// are relaxed, in signing order, before u is finished. A duplicated edge is
// relaxed twice and therefore counted twice.
//
// Returns ErrCodeInvalidIndex if source is out of range.
func BreadthFirst(g wot.Digraph, source int) (*PathTree, error) {
	if err := wot.Check(g, source); err != nil {
		return nil, err
	}

	n := g.Len()
	dist := make([]int, n)
	count := make([]float64, n)
	pred := make([]int, n)
	color := make([]Color, n)
	finished := make([]int, n)
	for i := range dist {
		dist[i] = math.MaxInt
		pred[i] = NoPred
	}

	dist[source] = 0
	count[source] = 1
	color[source] = Gray
	order := []int{source}
	queue := []int{source}
	clock := 0

	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for v := range g.Neighbors(u) {
			switch {
			case dist[v] > dist[u]+1:
				dist[v] = dist[u] + 1
				count[v] = count[u]
				pred[v] = u
				if color[v] == White {
					color[v] = Gray
					order = append(order, v)
					queue = append(queue, v)
				}
			case dist[v] == dist[u]+1:
				count[v] += count[u]
			}
		}
		color[u] = Black
		clock++
		finished[u] = clock
	}

	t := &PathTree{
		Source:   source,
		Vertices: make([]VertexProperty, len(order)),
		Counts:   make([]float64, len(order)),
		pos:      make([]int, n),
	}
	for i := range t.pos {
		t.pos[i] = -1
	}
	for i, l := range order {
		t.pos[l] = i
	}
	for i, l := range order {
		p := NoPred
		if pred[l] != NoPred {
			p = t.pos[pred[l]]
		}
		t.Vertices[i] = VertexProperty{
			Label:      l,
			Discovered: dist[l],
			Finished:   finished[l],
			Color:      color[l],
			Pred:       p,
		}
		t.Counts[i] = count[l]
	}
	return t, nil
}
