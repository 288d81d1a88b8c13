// Package nodelink renders trust networks as node-link diagrams.
//
// # Overview
//
// This package produces directed graph visualizations using Graphviz, where
// peers appear as circles and signatures as arrows. A pair of reciprocal
// signatures is drawn as one double-headed arrow.
//
// # Usage
//
// Convert a graph to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Partition: scc.Components(g)})
//	svg, err := nodelink.RenderSVG(dot)
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := nodelink.RenderPDF(dot)
//	png, err := nodelink.RenderPNG(dot, 2.0)  // 2x scale
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Partition: fill colour per component or community
//   - Highlight: peers outlined in red, such as articulation points
//   - Removed: edges drawn dashed, such as Girvan-Newman removals
//   - Detailed: adds the short peer ID below each label
//
// # DOT Format
//
// The [ToDOT] function produces Graphviz DOT source that can be:
//
//   - Rendered directly via [RenderSVG]
//   - Saved and processed with external Graphviz tools
//   - Customized before rendering
//
// The generated DOT uses a left-to-right layout (rankdir=LR) with filled
// circle nodes and one subgraph-free node list, so external tools can
// re-layout it with neato or fdp unchanged.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
