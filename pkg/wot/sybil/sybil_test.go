package sybil

import (
	"slices"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/wotscan/pkg/errors"
	"github.com/matzehuels/wotscan/pkg/observability"
	"github.com/matzehuels/wotscan/pkg/wot"
	"github.com/matzehuels/wotscan/pkg/wot/fixture"
	"github.com/matzehuels/wotscan/pkg/wot/scc"
)

func honest() scc.Selector { return scc.Anchored(fixture.HonestLabels()...) }

func TestArticulationPointsSingleLink(t *testing.T) {
	g := fixture.Sybil(fixture.Link{Attacker: 17, Legit: 2})
	before := g.Clone()

	points, err := ArticulationPoints(g, 17, honest())
	if err != nil {
		t.Fatalf("ArticulationPoints: %v", err)
	}
	if len(points) == 0 {
		t.Fatal("single reciprocal link should expose an articulation point")
	}
	if diff := cmp.Diff([]int{2}, points); diff != "" {
		t.Errorf("points mismatch (-want +got):\n%s", diff)
	}
	if !g.Equal(before) {
		t.Error("ArticulationPoints mutated its input")
	}
}

func TestArticulationPointsTwoLinks(t *testing.T) {
	g := fixture.Sybil(
		fixture.Link{Attacker: 17, Legit: 2},
		fixture.Link{Attacker: 29, Legit: 4},
	)
	points, err := ArticulationPoints(g, 17, honest())
	if err != nil {
		t.Fatalf("ArticulationPoints: %v", err)
	}
	if len(points) != 0 {
		t.Errorf("two independent links should leave no articulation point, got %v", points)
	}
}

func TestArticulationPointsEverySockShareTheCutpoint(t *testing.T) {
	g := fixture.Sybil(fixture.Link{Attacker: 17, Legit: 2})
	for sock := fixture.HonestPeers; sock < g.Len(); sock++ {
		points, err := ArticulationPoints(g, sock, honest())
		if err != nil {
			t.Fatal(err)
		}
		if !slices.Contains(points, 2) {
			t.Errorf("sock %d: points %v do not contain 2", sock, points)
		}
	}
}

func TestArticulationPointsOutsideStrongSet(t *testing.T) {
	// Without links the socks never join the honest strong set, so every
	// trial leaves them outside it.
	g := fixture.Sybil()
	points, err := ArticulationPoints(g, 17, honest())
	if err != nil {
		t.Fatal(err)
	}
	if len(points) != g.Len()-1 {
		t.Errorf("got %d points, want %d", len(points), g.Len()-1)
	}
	if slices.Contains(points, 17) {
		t.Error("peer must not be its own articulation point")
	}
}

func TestArticulationPointsInvalidIndex(t *testing.T) {
	g := fixture.Reference()
	for _, l := range []int{-1, g.Len()} {
		if _, err := ArticulationPoints(g, l, nil); !errors.Is(err, errors.ErrCodeInvalidIndex) {
			t.Errorf("ArticulationPoints(%d) error = %v, want %s", l, err, errors.ErrCodeInvalidIndex)
		}
	}
}

func TestArticulationPointsPendant(t *testing.T) {
	// 0 <-> 1 hangs off the reciprocal square 1, 2, 3, 4.
	g := wot.New(5)
	for _, e := range [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 4}, {4, 1}} {
		if err := g.SignMutual(e[0], e[1]); err != nil {
			t.Fatal(err)
		}
	}

	points, err := ArticulationPoints(g, 0, scc.Largest())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int{1}, points); diff != "" {
		t.Errorf("points mismatch (-want +got):\n%s", diff)
	}
}

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name         string
		links        []fixture.Link
		wantSybil    bool
		wantIsolated bool
	}{
		{"unlinked", nil, false, true},
		{"one link", []fixture.Link{{Attacker: 17, Legit: 2}}, true, false},
		{"two links", []fixture.Link{{Attacker: 17, Legit: 2}, {Attacker: 29, Legit: 4}}, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Analyze(fixture.Sybil(tt.links...), 17, honest())
			if err != nil {
				t.Fatal(err)
			}
			if r.Sybil() != tt.wantSybil {
				t.Errorf("Sybil() = %v, want %v (points %v)", r.Sybil(), tt.wantSybil, r.Points)
			}
			if r.Isolated() != tt.wantIsolated {
				t.Errorf("Isolated() = %v, want %v", r.Isolated(), tt.wantIsolated)
			}
			if r.Peer != 17 || r.Selector != "anchored(10 peers)" {
				t.Errorf("report header = (%d, %q)", r.Peer, r.Selector)
			}
		})
	}
}

type recordingHooks struct {
	observability.NoopAnalysisHooks
	started, completed int
	points             []int
}

func (h *recordingHooks) OnScanStart(int, int) { h.started++ }

func (h *recordingHooks) OnScanComplete(_ int, points []int, _ time.Duration) {
	h.completed++
	h.points = points
}

func TestArticulationPointsHooks(t *testing.T) {
	h := &recordingHooks{}
	observability.SetAnalysisHooks(h)
	defer observability.Reset()

	g := fixture.Sybil(fixture.Link{Attacker: 17, Legit: 2})
	if _, err := ArticulationPoints(g, 17, honest()); err != nil {
		t.Fatal(err)
	}
	if h.started != 1 || h.completed != 1 {
		t.Errorf("hooks called %d/%d times, want 1/1", h.started, h.completed)
	}
	if !slices.Equal(h.points, []int{2}) {
		t.Errorf("hook saw points %v, want [2]", h.points)
	}
}
