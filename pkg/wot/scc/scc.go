// Package scc decomposes a trust network into strongly connected components
// and selects the component treated as the trusted "strong set".
//
// [Components] implements Kosaraju's algorithm on top of
// [traverse.DepthFirst] and [traverse.Transpose] in O(V+E).
//
// The order of the returned components follows DFS finishing times and says
// nothing about trust, so callers pick the strong set explicitly with a
// [Selector]: [Largest], [Containing] a known seed, [Anchored] on a set of
// known-honest peers, or [First] for the positional convention.
package scc

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/matzehuels/wotscan/pkg/errors"
	"github.com/matzehuels/wotscan/pkg/wot"
	"github.com/matzehuels/wotscan/pkg/wot/traverse"
)

// Components returns the strongly connected components of g as disjoint
// label lists covering every vertex exactly once.
//
// A first search over g records finishing times; a second search over the
// transpose tries roots in descending order of those times, and each tree of
// that forest is one component. The second forest is then read in
// descending finish order: every root opens a new list and every other vertex
// joins the most recently opened one, so each list starts with its root.
func Components(g wot.Digraph) [][]int {
	n := g.Len()
	if n == 0 {
		return nil
	}

	// Both orders below are permutations of the labels, so DepthFirst cannot fail.
	pass1, _ := traverse.DepthFirst(g)
	order := byFinishDesc(pass1)

	pass2, _ := traverse.DepthFirst(traverse.Transpose(g), labels(order)...)
	forest := byFinishDesc(pass2)

	var components [][]int
	for _, p := range forest {
		if p.IsRoot() {
			components = append(components, []int{p.Label})
			continue
		}
		last := len(components) - 1
		components[last] = append(components[last], p.Label)
	}
	return components
}

func byFinishDesc(props []traverse.VertexProperty) []traverse.VertexProperty {
	sorted := slices.Clone(props)
	slices.SortFunc(sorted, func(a, b traverse.VertexProperty) int {
		return cmp.Compare(b.Finished, a.Finished)
	})
	return sorted
}

func labels(props []traverse.VertexProperty) []int {
	out := make([]int, len(props))
	for i, p := range props {
		out[i] = p.Label
	}
	return out
}

// Membership maps every label to the index of its component.
// Labels absent from components map to -1.
func Membership(components [][]int, n int) []int {
	m := make([]int, n)
	for i := range m {
		m[i] = -1
	}
	for ci, c := range components {
		for _, l := range c {
			if l >= 0 && l < n {
				m[l] = ci
			}
		}
	}
	return m
}

// Selector chooses the strong set among a list of components.
// Select returns the index of the chosen component, or -1 if none applies.
type Selector interface {
	Select(components [][]int) int
	fmt.Stringer
}

// StrongSet applies sel to components and returns the chosen component.
// A nil sel means [Largest]. Returns ErrCodeEmptySet if there are no
// components or the selector matches none.
func StrongSet(components [][]int, sel Selector) ([]int, error) {
	if sel == nil {
		sel = Largest()
	}
	if len(components) == 0 {
		return nil, errors.New(errors.ErrCodeEmptySet, "graph has no components")
	}
	i := sel.Select(components)
	if i < 0 || i >= len(components) {
		return nil, errors.New(errors.ErrCodeEmptySet, "no component matches selector %s", sel)
	}
	return components[i], nil
}

type first struct{}

// First selects the component at position 0.
func First() Selector { return first{} }

func (first) Select(components [][]int) int {
	if len(components) == 0 {
		return -1
	}
	return 0
}

func (first) String() string { return "first" }

type largest struct{}

// Largest selects the component with the most members; ties go to the
// lower position.
func Largest() Selector { return largest{} }

func (largest) Select(components [][]int) int {
	best := -1
	for i, c := range components {
		if best < 0 || len(c) > len(components[best]) {
			best = i
		}
	}
	return best
}

func (largest) String() string { return "largest" }

type containing struct{ seed int }

// Containing selects the component that holds seed.
func Containing(seed int) Selector { return containing{seed: seed} }

func (s containing) Select(components [][]int) int {
	for i, c := range components {
		if slices.Contains(c, s.seed) {
			return i
		}
	}
	return -1
}

func (s containing) String() string { return fmt.Sprintf("containing(%d)", s.seed) }

type anchored struct{ anchors []int }

// Anchored selects the component holding the most anchor labels, typically
// peers known to be honest. Ties go to the larger component, then to the
// lower position. With no anchors it behaves like [Largest].
func Anchored(anchors ...int) Selector {
	return anchored{anchors: slices.Clone(anchors)}
}

func (s anchored) Select(components [][]int) int {
	best, bestHits := -1, -1
	for i, c := range components {
		hits := 0
		for _, a := range s.anchors {
			if slices.Contains(c, a) {
				hits++
			}
		}
		switch {
		case hits > bestHits:
		case hits == bestHits && len(c) > len(components[best]):
		default:
			continue
		}
		best, bestHits = i, hits
	}
	return best
}

func (s anchored) String() string { return fmt.Sprintf("anchored(%d peers)", len(s.anchors)) }

// ParseSelector maps a selector name to a Selector. "anchored" uses the
// given anchors and "containing" uses the first of them.
func ParseSelector(name string, anchors ...int) (Selector, error) {
	switch name {
	case "", "largest":
		return Largest(), nil
	case "first":
		return First(), nil
	case "anchored":
		return Anchored(anchors...), nil
	case "containing":
		if len(anchors) == 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "selector %q needs a seed peer", name)
		}
		return Containing(anchors[0]), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "unknown strong-set selector %q (want largest, first, anchored or containing)", name)
}
