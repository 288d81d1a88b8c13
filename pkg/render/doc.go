// Package render provides visualization rendering for trust networks.
//
// # Overview
//
// This package holds the format conversion shared by the renderers:
//
//   - Node-link diagrams (in [nodelink] subpackage)
//   - Generic format conversion (SVG to PDF/PNG)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	svg, err := nodelink.RenderSVG(dot)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// # Node-Link Diagrams
//
// The [nodelink] subpackage renders the signature graph with Graphviz.
// Peers appear as circles coloured by community, reciprocal signatures as
// double-headed arrows.
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Partition: components})
//	svg, err := nodelink.RenderSVG(dot)
//
// [nodelink]: github.com/matzehuels/wotscan/pkg/render/nodelink
package render
