package io

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/wotscan/pkg/errors"
	"github.com/matzehuels/wotscan/pkg/wot"
	"github.com/matzehuels/wotscan/pkg/wot/fixture"
)

func TestRoundTrip(t *testing.T) {
	g := fixture.Reference()

	var buf bytes.Buffer
	if err := WriteJSON(g, &buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	back, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}

	if !g.Equal(back) {
		t.Error("round trip changed the edge set")
	}
	if diff := cmp.Diff(g.Edges(), back.Edges()); diff != "" {
		t.Errorf("signing order mismatch (-want +got):\n%s", diff)
	}
	for i, p := range g.Peers() {
		if back.Peer(i).ID != p.ID {
			t.Errorf("peer %d ID = %s, want %s", i, back.Peer(i).ID, p.ID)
		}
	}
}

func TestExportImportFile(t *testing.T) {
	g := fixture.Sybil(fixture.Link{Attacker: 17, Legit: 2})
	path := filepath.Join(t.TempDir(), "sybil.json")

	if err := ExportJSON(g, path); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	back, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}
	if !g.Equal(back) {
		t.Error("file round trip changed the graph")
	}
}

func TestReadJSONMissingIDs(t *testing.T) {
	doc := `{"nodes": [{"label": 0}, {"label": 1}], "edges": [{"from": 0, "to": 1}]}`
	g, err := ReadJSON(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if !g.HasEdge(0, 1) || g.EdgeCount() != 1 {
		t.Errorf("edges = %v, want [{0 1}]", g.Edges())
	}
	if g.Peer(0).ID == g.Peer(1).ID {
		t.Error("missing IDs should be replaced by distinct fresh IDs")
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		code errors.Code
	}{
		{"malformed", `{"nodes": [`, errors.ErrCodeInvalidFormat},
		{"bad id", `{"nodes": [{"label": 0, "id": "nope"}], "edges": []}`, errors.ErrCodeInvalidFormat},
		{"misnumbered", `{"nodes": [{"label": 1}], "edges": []}`, errors.ErrCodeInvalidFormat},
		{"unknown source", `{"nodes": [{"label": 0}], "edges": [{"from": 3, "to": 0}]}`, errors.ErrCodeInvalidGraph},
		{"unknown target", `{"nodes": [{"label": 0}], "edges": [{"from": 0, "to": 3}]}`, errors.ErrCodeInvalidGraph},
		{"repeated signature", `{"nodes": [{"label": 0}, {"label": 1}], "edges": [{"from": 0, "to": 1}, {"from": 0, "to": 1}]}`, errors.ErrCodeInvalidGraph},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadJSON(strings.NewReader(tt.doc)); !errors.Is(err, tt.code) {
				t.Errorf("ReadJSON error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestImportJSONMissingFile(t *testing.T) {
	_, err := ImportJSON(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("ImportJSON error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
}

func TestWriteJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(wot.New(0), &buf); err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(strings.Fields(buf.String()), ""); got != `{"nodes":[],"edges":[]}` {
		t.Errorf("WriteJSON(empty) = %s", got)
	}
}
