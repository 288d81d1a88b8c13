package scc

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/matzehuels/wotscan/pkg/errors"
	"github.com/matzehuels/wotscan/pkg/wot"
	"github.com/matzehuels/wotscan/pkg/wot/fixture"
)

// assertPartition checks that components cover 0..n-1 exactly once.
func assertPartition(t *testing.T, components [][]int, n int) {
	t.Helper()
	seen := make([]bool, n)
	total := 0
	for _, c := range components {
		if len(c) == 0 {
			t.Error("empty component")
		}
		for _, l := range c {
			if l < 0 || l >= n {
				t.Fatalf("label %d out of range", l)
			}
			if seen[l] {
				t.Errorf("label %d appears twice", l)
			}
			seen[l] = true
			total++
		}
	}
	if total != n {
		t.Errorf("components cover %d labels, want %d", total, n)
	}
}

// sortedSets normalizes components for order-insensitive comparison.
func sortedSets(components [][]int) [][]int {
	out := make([][]int, len(components))
	for i, c := range components {
		out[i] = slices.Sorted(slices.Values(c))
	}
	slices.SortFunc(out, func(a, b []int) int { return a[0] - b[0] })
	return out
}

func TestComponentsPartition(t *testing.T) {
	for seed := uint64(1); seed <= 25; seed++ {
		rng := rand.New(rand.NewPCG(seed, 0))
		g, err := wot.Random(25, 0, 2, rng)
		if err != nil {
			t.Fatal(err)
		}
		// Break reciprocity so components are non-trivial.
		for _, e := range g.Edges() {
			if rng.IntN(3) == 0 {
				g.RemoveEdge(e.From, e.To)
			}
		}
		assertPartition(t, Components(g), g.Len())
	}
}

func TestComponentsKnownGraphs(t *testing.T) {
	tests := []struct {
		name  string
		build func() *wot.Graph
		want  [][]int
	}{
		{
			name:  "empty",
			build: func() *wot.Graph { return wot.New(0) },
			want:  nil,
		},
		{
			name: "chain is all singletons",
			build: func() *wot.Graph {
				g := wot.New(3)
				g.Peer(0).Sign(1)
				g.Peer(1).Sign(2)
				return g
			},
			want: [][]int{{0}, {1}, {2}},
		},
		{
			name: "two cycles joined one way",
			build: func() *wot.Graph {
				g := wot.New(5)
				g.Peer(0).Sign(1)
				g.Peer(1).Sign(2)
				g.Peer(2).Sign(0)
				g.Peer(2).Sign(3)
				g.Peer(3).Sign(4)
				g.Peer(4).Sign(3)
				return g
			},
			want: [][]int{{0, 1, 2}, {3, 4}},
		},
		{
			name:  "reference graph",
			build: fixture.Reference,
			want:  [][]int{{0, 1, 2, 3, 4, 5}},
		},
		{
			name:  "unlinked sybil halves",
			build: func() *wot.Graph { return fixture.Sybil() },
			want:  [][]int{fixture.HonestLabels(), sockLabels()},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := tt.build()
			got := Components(g)
			assertPartition(t, got, g.Len())
			if g.Len() == 0 {
				if got != nil {
					t.Errorf("Components(empty) = %v, want nil", got)
				}
				return
			}
			if !slices.EqualFunc(sortedSets(got), tt.want, slices.Equal[[]int]) {
				t.Errorf("Components() = %v, want %v", sortedSets(got), tt.want)
			}
		})
	}
}

func sockLabels() []int {
	labels := make([]int, fixture.SockPeers)
	for i := range labels {
		labels[i] = fixture.HonestPeers + i
	}
	return labels
}

func TestComponentsDeterministic(t *testing.T) {
	g := fixture.Sybil()
	a, b := Components(g), Components(g)
	if !slices.EqualFunc(a, b, slices.Equal[[]int]) {
		t.Errorf("Components() not deterministic: %v vs %v", a, b)
	}
}

func TestComponentsOnView(t *testing.T) {
	g := fixture.Sybil(fixture.Link{Attacker: 17, Legit: 2})
	if n := len(Components(g)); n != 1 {
		t.Fatalf("linked network has %d components, want 1", n)
	}
	view, err := wot.Without(g, 2)
	if err != nil {
		t.Fatal(err)
	}
	got := sortedSets(Components(view))
	if len(got) != 3 {
		t.Fatalf("Components(Without(g, 2)) has %d components, want 3: %v", len(got), got)
	}
}

func TestMembership(t *testing.T) {
	m := Membership([][]int{{2, 0}, {1}}, 4)
	if want := []int{0, 1, 0, -1}; !slices.Equal(m, want) {
		t.Errorf("Membership() = %v, want %v", m, want)
	}
}

func TestSelectors(t *testing.T) {
	components := [][]int{{5}, {0, 1, 2}, {3, 4, 6}, {7, 8}}

	tests := []struct {
		name string
		sel  Selector
		want int
	}{
		{"first", First(), 0},
		{"largest ties to lower position", Largest(), 1},
		{"containing", Containing(8), 3},
		{"containing missing", Containing(42), -1},
		{"anchored majority", Anchored(3, 4, 0), 2},
		{"anchored tie goes to larger", Anchored(5, 7), 3},
		{"anchored tie same size goes to lower", Anchored(0, 3), 1},
		{"anchored without anchors", Anchored(), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sel.Select(components); got != tt.want {
				t.Errorf("%s.Select() = %d, want %d", tt.sel, got, tt.want)
			}
		})
	}

	if got := First().Select(nil); got != -1 {
		t.Errorf("First().Select(nil) = %d, want -1", got)
	}
	if got := Largest().Select(nil); got != -1 {
		t.Errorf("Largest().Select(nil) = %d, want -1", got)
	}
}

func TestStrongSet(t *testing.T) {
	components := [][]int{{0}, {1, 2}}

	set, err := StrongSet(components, nil)
	if err != nil {
		t.Fatalf("StrongSet: %v", err)
	}
	if !slices.Equal(set, []int{1, 2}) {
		t.Errorf("StrongSet(nil selector) = %v, want [1 2]", set)
	}

	if _, err := StrongSet(components, Containing(9)); !errors.Is(err, errors.ErrCodeEmptySet) {
		t.Errorf("StrongSet(Containing(9)) error = %v, want %s", err, errors.ErrCodeEmptySet)
	}
	if _, err := StrongSet(nil, First()); !errors.Is(err, errors.ErrCodeEmptySet) {
		t.Errorf("StrongSet(nil) error = %v, want %s", err, errors.ErrCodeEmptySet)
	}
}

func TestParseSelector(t *testing.T) {
	tests := []struct {
		name    string
		anchors []int
		want    string
		wantErr bool
	}{
		{name: "", want: "largest"},
		{name: "largest", want: "largest"},
		{name: "first", want: "first"},
		{name: "anchored", anchors: []int{1, 2}, want: "anchored(2 peers)"},
		{name: "containing", anchors: []int{4}, want: "containing(4)"},
		{name: "containing", wantErr: true},
		{name: "biggest", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel, err := ParseSelector(tt.name, tt.anchors...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSelector(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if err == nil && sel.String() != tt.want {
				t.Errorf("ParseSelector(%q) = %s, want %s", tt.name, sel, tt.want)
			}
		})
	}
}
