package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/matzehuels/wotscan/pkg/errors"
	"github.com/matzehuels/wotscan/pkg/wot"
)

// ReadJSON decodes a JSON trust network from r.
//
// Node i of the document must carry label i. Nodes without an id get a
// fresh one. Edges are applied in document order, so the signing order of
// each peer follows the document.
//
// ReadJSON returns an ErrCodeInvalidFormat error for malformed JSON or
// misnumbered nodes, and an ErrCodeInvalidGraph error if an edge names an
// unknown label or repeats a signature. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*wot.Graph, error) {
	var data graph
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode graph")
	}

	peers := make([]*wot.Peer, len(data.Nodes))
	for i, n := range data.Nodes {
		if n.Label != i {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "node %d has label %d; nodes must be listed in label order", i, n.Label)
		}
		p := wot.NewPeer(i)
		if n.ID != uuid.Nil {
			p.ID = n.ID
		}
		peers[i] = p
	}
	for _, e := range data.Edges {
		if err := errors.ValidateLabel(e.From, len(peers)); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidGraph, err, "edge %d -> %d", e.From, e.To)
		}
		peers[e.From].Sign(e.To)
	}

	return wot.FromPeers(peers...)
}

// ImportJSON reads the JSON file at path and returns the decoded graph.
func ImportJSON(path string) (*wot.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()

	g, err := ReadJSON(f)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "%s", path)
	}
	return g, nil
}
