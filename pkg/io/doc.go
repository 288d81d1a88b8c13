// Package io provides JSON import and export for trust networks.
//
// # JSON Format
//
// The format has two top-level arrays:
//
//	{
//	  "nodes": [
//	    {"label": 0, "id": "1b4e28ba-2fa1-11d2-883f-0016d3cca427"},
//	    {"label": 1},
//	    {"label": 2}
//	  ],
//	  "edges": [
//	    {"from": 0, "to": 1},
//	    {"from": 1, "to": 0},
//	    {"from": 1, "to": 2}
//	  ]
//	}
//
// Nodes must be listed in label order starting at 0. The id is optional; a
// missing id is replaced by a fresh random one on import. Edges are
// signatures, and the order of edges sharing a source is the signing order,
// which the traversals observe.
//
// # Import
//
// Use [ImportJSON] to read a graph from a file path, or [ReadJSON] to read
// from any io.Reader. Both reject malformed documents with
// errors.ErrCodeInvalidFormat and structurally invalid graphs (edges to
// unknown labels, repeated signatures) with errors.ErrCodeInvalidGraph.
//
// # Export
//
// Use [ExportJSON] to write a graph to a file, or [WriteJSON] to write to any
// io.Writer. Export preserves labels, IDs and signing order, so an exported
// graph re-imports identically.
package io
