package cli

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/wotscan/pkg/scenario"
	"github.com/matzehuels/wotscan/pkg/wot/metric"
	"github.com/matzehuels/wotscan/pkg/wot/sybil"
)

func TestMemberRows(t *testing.T) {
	step := &scenario.Step{
		Ranking: []metric.Score{{Label: 3, MSD: 1.5}, {Label: 1, MSD: 2}},
		Reports: []*sybil.Report{
			{Peer: 1, InStrongSet: true, Points: []int{4, 7}},
			{Peer: 3, InStrongSet: true},
		},
	}
	want := [][]string{
		{"3", "1.500", "none"},
		{"1", "2.000", "4, 7"},
	}
	if diff := cmp.Diff(want, memberRows(step)); diff != "" {
		t.Errorf("memberRows mismatch (-want +got):\n%s", diff)
	}
}

func TestSimulateAll(t *testing.T) {
	if err := execute(t, "simulate", "--all"); err != nil {
		t.Fatalf("simulate --all: %v", err)
	}
	if err := execute(t, "simulate", "--top", "3"); err != nil {
		t.Fatalf("simulate: %v", err)
	}
}
