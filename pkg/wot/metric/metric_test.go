package metric

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/wotscan/pkg/errors"
	"github.com/matzehuels/wotscan/pkg/wot"
	"github.com/matzehuels/wotscan/pkg/wot/fixture"
	"github.com/matzehuels/wotscan/pkg/wot/scc"
	"github.com/matzehuels/wotscan/pkg/wot/traverse"
)

const eps = 1e-9

func approx(a, b float64) bool { return math.Abs(a-b) < eps }

func TestMSDReference(t *testing.T) {
	g := fixture.Reference()
	want := map[int]float64{
		fixture.A: 9.0 / 6,
		fixture.B: 7.0 / 6,
		fixture.C: 9.0 / 6,
		fixture.D: 9.0 / 6,
		fixture.E: 7.0 / 6,
		fixture.F: 9.0 / 6,
	}
	for l, w := range want {
		got, err := MSD(g, l)
		if err != nil {
			t.Fatalf("MSD(%d): %v", l, err)
		}
		if !approx(got, w) {
			t.Errorf("MSD(%d) = %v, want %v", l, got, w)
		}
	}
}

func TestMSDEdgeCases(t *testing.T) {
	tests := []struct {
		name  string
		g     *wot.Graph
		label int
		want  float64
	}{
		{"single vertex", wot.New(1), 0, 0},
		{"sink", wot.New(3), 1, 0},
		{"chain head", chain(3), 0, 1},
		{"chain tail", chain(3), 2, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MSD(tt.g, tt.label)
			if err != nil {
				t.Fatal(err)
			}
			if !approx(got, tt.want) {
				t.Errorf("MSD = %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := MSD(chain(2), 5); !errors.Is(err, errors.ErrCodeInvalidIndex) {
		t.Errorf("MSD(out of range) error = %v, want %s", err, errors.ErrCodeInvalidIndex)
	}
}

func chain(n int) *wot.Graph {
	g := wot.New(n)
	for i := 0; i+1 < n; i++ {
		g.Peer(i).Sign(i + 1)
	}
	return g
}

// MSD lies in [0, diameter] and is zero only when nothing else is reachable.
func TestMSDBounds(t *testing.T) {
	for seed := uint64(1); seed <= 10; seed++ {
		g, err := wot.Random(20, 0, 2, rand.New(rand.NewPCG(seed, seed)))
		if err != nil {
			t.Fatal(err)
		}
		diameter := 0
		trees := make([]*traverse.PathTree, g.Len())
		for l := range g.Len() {
			trees[l], _ = traverse.BreadthFirst(g, l)
			for _, d := range trees[l].Distances() {
				diameter = max(diameter, d)
			}
		}
		for l := range g.Len() {
			m, err := MSD(g, l)
			if err != nil {
				t.Fatal(err)
			}
			if m < 0 || m > float64(diameter) {
				t.Errorf("seed %d: MSD(%d) = %v outside [0, %d]", seed, l, m, diameter)
			}
			if (m == 0) != (trees[l].Len() == 1) {
				t.Errorf("seed %d: MSD(%d) = %v with %d reached vertices", seed, l, m, trees[l].Len())
			}
		}
	}
}

func TestAMSD(t *testing.T) {
	g := fixture.Reference()

	got, err := AMSD(g, []int{fixture.B, fixture.E})
	if err != nil {
		t.Fatal(err)
	}
	if !approx(got, 7.0/6) {
		t.Errorf("AMSD(B, E) = %v, want %v", got, 7.0/6)
	}

	got, err = AMSD(g, []int{0, 1, 2, 3, 4, 5})
	if err != nil {
		t.Fatal(err)
	}
	if want := (4*9.0/6 + 2*7.0/6) / 6; !approx(got, want) {
		t.Errorf("AMSD(all) = %v, want %v", got, want)
	}

	if _, err := AMSD(g, nil); !errors.Is(err, errors.ErrCodeEmptySet) {
		t.Errorf("AMSD(nil) error = %v, want %s", err, errors.ErrCodeEmptySet)
	}
	if _, err := AMSD(g, []int{0, 6}); !errors.Is(err, errors.ErrCodeInvalidIndex) {
		t.Errorf("AMSD(out of range) error = %v, want %s", err, errors.ErrCodeInvalidIndex)
	}
}

func TestDMSDSybil(t *testing.T) {
	g := fixture.Sybil(fixture.Link{Attacker: 17, Legit: 2})
	before := g.Clone()

	// From 17 the honest ring is entered through 2 only: 2 at distance 1,
	// its four neighbours at 2, four more at 3 and peer 7 at 4.
	got, err := DMSD(g, 17, scc.Anchored(fixture.HonestLabels()...))
	if err != nil {
		t.Fatalf("DMSD: %v", err)
	}
	if !approx(got, 2.5) {
		t.Errorf("DMSD(17) = %v, want 2.5", got)
	}
	if !g.Equal(before) {
		t.Error("DMSD mutated its input")
	}
}

func TestDMSDEmptySet(t *testing.T) {
	g := wot.New(2)

	if _, err := DMSD(g, 0, scc.Containing(1)); !errors.Is(err, errors.ErrCodeEmptySet) {
		t.Errorf("DMSD(unreachable strong set) error = %v, want %s", err, errors.ErrCodeEmptySet)
	}
	if _, err := DMSD(g, 0, scc.Containing(9)); !errors.Is(err, errors.ErrCodeEmptySet) {
		t.Errorf("DMSD(no strong set) error = %v, want %s", err, errors.ErrCodeEmptySet)
	}
	if _, err := DMSD(g, 3, nil); !errors.Is(err, errors.ErrCodeInvalidIndex) {
		t.Errorf("DMSD(out of range) error = %v, want %s", err, errors.ErrCodeInvalidIndex)
	}
}

func TestRanking(t *testing.T) {
	g := fixture.Reference()
	got, err := Ranking(g, []int{5, 4, 3, 2, 1, 0})
	if err != nil {
		t.Fatal(err)
	}
	want := []Score{
		{fixture.B, 7.0 / 6},
		{fixture.E, 7.0 / 6},
		{fixture.A, 9.0 / 6},
		{fixture.C, 9.0 / 6},
		{fixture.D, 9.0 / 6},
		{fixture.F, 9.0 / 6},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Ranking mismatch (-want +got):\n%s", diff)
	}
}
