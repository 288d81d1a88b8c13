package wot

import (
	"math"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/wotscan/pkg/errors"
)

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func TestRandomReproducible(t *testing.T) {
	a, err := Random(30, 1, 4, seeded(7))
	if err != nil {
		t.Fatalf("Random: %v", err)
	}
	b, err := Random(30, 1, 4, seeded(7))
	if err != nil {
		t.Fatalf("Random: %v", err)
	}
	if diff := cmp.Diff(a.Edges(), b.Edges()); diff != "" {
		t.Errorf("same seed produced different graphs (-first +second):\n%s", diff)
	}
}

func TestRandomIsReciprocalAndSimple(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		g, err := Random(15, 1, 5, seeded(seed))
		if err != nil {
			t.Fatalf("Random: %v", err)
		}
		if err := g.Validate(); err != nil {
			t.Fatalf("seed %d: Validate() = %v", seed, err)
		}
		for _, e := range g.Edges() {
			if e.From == e.To {
				t.Errorf("seed %d: self-loop on %d", seed, e.From)
			}
			if !g.HasEdge(e.To, e.From) {
				t.Errorf("seed %d: edge %d -> %d has no reciprocal", seed, e.From, e.To)
			}
		}
	}
}

func TestRandomEdgeCases(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		min     int
		max     int
		rng     *rand.Rand
		code    errors.Code
		wantLen int
	}{
		{name: "empty", n: 0, min: 1, max: 3, rng: seeded(1)},
		{name: "single peer", n: 1, min: 1, max: 3, rng: seeded(1), wantLen: 1},
		{name: "no signatures", n: 5, min: 0, max: 0, rng: seeded(1), wantLen: 5},
		{name: "negative n", n: -1, min: 1, max: 3, rng: seeded(1), code: errors.ErrCodeInvalidInput},
		{name: "inverted range", n: 5, min: 3, max: 1, rng: seeded(1), code: errors.ErrCodeInvalidInput},
		{name: "nil source", n: 5, min: 1, max: 3, code: errors.ErrCodeInvalidInput},
		{name: "max int range", n: 3, min: 0, max: math.MaxInt, rng: seeded(1), code: errors.ErrCodeInvalidInput},
		{name: "draws over limit", n: 3, min: 0, max: errors.MaxSignatureDraws + 1, rng: seeded(1), code: errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Random(tt.n, tt.min, tt.max, tt.rng)
			if got := errors.GetCode(err); got != tt.code {
				t.Fatalf("Random() code = %q, want %q (err %v)", got, tt.code, err)
			}
			if err != nil {
				return
			}
			if g.Len() != tt.wantLen {
				t.Errorf("Len() = %d, want %d", g.Len(), tt.wantLen)
			}
			if tt.max == 0 && g.EdgeCount() != 0 {
				t.Errorf("EdgeCount() = %d, want 0", g.EdgeCount())
			}
		})
	}
}

func TestConcat(t *testing.T) {
	g1 := New(2)
	_ = g1.SignMutual(0, 1)
	g2 := New(3)
	_ = g2.SignMutual(0, 2)
	g2.Peer(1).Sign(2)

	before1, before2 := g1.Edges(), g2.Edges()
	g := Concat(g1, g2)

	if g.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", g.Len())
	}
	for i, p := range g.Peers() {
		if p.Label != i {
			t.Errorf("peer at %d has label %d", i, p.Label)
		}
	}
	want := []Edge{{0, 1}, {1, 0}, {2, 4}, {3, 4}, {4, 2}}
	if diff := cmp.Diff(want, g.Edges()); diff != "" {
		t.Errorf("Concat edges mismatch (-want +got):\n%s", diff)
	}
	if g.Peer(2).ID != g2.Peer(0).ID {
		t.Error("Concat should carry peer IDs over")
	}

	if diff := cmp.Diff(before1, g1.Edges()); diff != "" {
		t.Errorf("Concat modified g1:\n%s", diff)
	}
	if diff := cmp.Diff(before2, g2.Edges()); diff != "" {
		t.Errorf("Concat modified g2:\n%s", diff)
	}
	if err := g.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestDisconnect(t *testing.T) {
	g := New(4)
	_ = g.SignMutual(0, 1)
	_ = g.SignMutual(1, 2)
	_ = g.SignMutual(2, 3)
	_ = g.SignMutual(3, 1)
	before := g.Clone()

	d, err := Disconnect(g, 1)
	if err != nil {
		t.Fatalf("Disconnect: %v", err)
	}

	if len(d.Out(1)) != 0 {
		t.Errorf("Out(1) = %v, want empty", d.Out(1))
	}
	for _, e := range d.Edges() {
		if e.To == 1 {
			t.Errorf("edge %d -> 1 survived Disconnect", e.From)
		}
	}
	want := []Edge{{2, 3}, {3, 2}}
	if diff := cmp.Diff(want, d.Edges()); diff != "" {
		t.Errorf("Disconnect edges mismatch (-want +got):\n%s", diff)
	}
	if !g.Equal(before) {
		t.Errorf("Disconnect mutated its input:\n%s", cmp.Diff(before.Edges(), g.Edges()))
	}

	d.Peer(0).Sign(3)
	if g.HasEdge(0, 3) {
		t.Error("mutating the Disconnect result leaked into the input")
	}
}

func TestDisconnectInvalidIndex(t *testing.T) {
	g := New(2)
	for _, l := range []int{-1, 2} {
		if _, err := Disconnect(g, l); !errors.Is(err, errors.ErrCodeInvalidIndex) {
			t.Errorf("Disconnect(g, %d) error = %v, want %s", l, err, errors.ErrCodeInvalidIndex)
		}
		if _, err := Without(g, l); !errors.Is(err, errors.ErrCodeInvalidIndex) {
			t.Errorf("Without(g, %d) error = %v, want %s", l, err, errors.ErrCodeInvalidIndex)
		}
	}
}

func TestWithoutMatchesDisconnect(t *testing.T) {
	g, err := Random(20, 2, 5, seeded(3))
	if err != nil {
		t.Fatal(err)
	}
	for l := range g.Len() {
		d, err := Disconnect(g, l)
		if err != nil {
			t.Fatal(err)
		}
		view, err := Without(g, l)
		if err != nil {
			t.Fatal(err)
		}
		if view.Len() != d.Len() {
			t.Fatalf("view Len() = %d, want %d", view.Len(), d.Len())
		}
		for v := range g.Len() {
			got := slices.Collect(view.Neighbors(v))
			if want := d.Out(v); !slices.Equal(got, want) {
				t.Errorf("Without(g, %d).Neighbors(%d) = %v, want %v", l, v, got, want)
			}
		}
	}
}
