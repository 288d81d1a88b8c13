package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/wotscan/pkg/errors"
	"github.com/matzehuels/wotscan/pkg/render"
	"github.com/matzehuels/wotscan/pkg/wot"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Partition assigns one fill colour per group, typically the strongly
	// connected components or the communities of a Girvan-Newman run.
	// Singleton groups and unassigned peers stay white.
	Partition [][]int

	// Highlight lists peers drawn with a thick red outline.
	Highlight []int

	// Removed lists edges drawn dashed and grey. Removed edges missing from
	// the graph are drawn as well.
	Removed []wot.Edge

	// Detailed adds the first eight hex digits of each peer ID to its label.
	Detailed bool
}

// palette holds the community fill colours, cycled when exhausted.
var palette = []string{
	"#8dd3c7", "#ffffb3", "#bebada", "#fb8072", "#80b1d3",
	"#fdb462", "#b3de69", "#fccde5", "#bc80bd", "#ccebc5",
}

// ToDOT converts a trust graph to Graphviz DOT format for node-link visualization.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
//
// A signature and its reverse with the same removed status are merged into
// one edge with dir=both.
func ToDOT(g *wot.Graph, opts Options) string {
	fill := fillColours(g.Len(), opts.Partition)
	highlight := make(map[int]bool, len(opts.Highlight))
	for _, l := range opts.Highlight {
		highlight[l] = true
	}
	removed := make(map[wot.Edge]bool, len(opts.Removed))
	for _, e := range opts.Removed {
		removed[e] = true
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=14];\n")
	buf.WriteString("  edge [arrowsize=0.6];\n")
	buf.WriteString("\n")

	for _, p := range g.Peers() {
		attrs := []string{fmt.Sprintf("label=%q", fmtLabel(p, opts.Detailed))}
		if c := fill[p.Label]; c != "" {
			attrs = append(attrs, fmt.Sprintf("fillcolor=%q", c))
		}
		if highlight[p.Label] {
			attrs = append(attrs, "color=red", "penwidth=3")
		}
		fmt.Fprintf(&buf, "  %s [%s];\n", nodeID(p.Label), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	drawn := make(map[wot.Edge]bool)
	draw := func(e wot.Edge, both bool) {
		var attrs []string
		if both {
			attrs = append(attrs, "dir=both")
		}
		if removed[e] {
			attrs = append(attrs, "style=dashed", "color=grey")
		}
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %s -> %s;\n", nodeID(e.From), nodeID(e.To))
		} else {
			fmt.Fprintf(&buf, "  %s -> %s [%s];\n", nodeID(e.From), nodeID(e.To), strings.Join(attrs, ", "))
		}
		drawn[e] = true
		if both {
			drawn[e.Reverse()] = true
		}
	}

	for _, e := range g.Edges() {
		if drawn[e] {
			continue
		}
		r := e.Reverse()
		draw(e, !drawn[r] && g.HasEdge(r.From, r.To) && removed[e] == removed[r])
	}
	for _, e := range opts.Removed {
		if drawn[e] || g.Check(e.From) != nil || g.Check(e.To) != nil {
			continue
		}
		draw(e, false)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(label int) string {
	return "p" + strconv.Itoa(label)
}

func fmtLabel(p *wot.Peer, detailed bool) string {
	label := strconv.Itoa(p.Label)
	if !detailed {
		return label
	}
	return label + "\n" + p.ID.String()[:8]
}

func fillColours(n int, partition [][]int) []string {
	fill := make([]string, n)
	colour := 0
	for _, group := range partition {
		if len(group) < 2 {
			continue
		}
		c := palette[colour%len(palette)]
		colour++
		for _, l := range group {
			if l >= 0 && l < n {
				fill[l] = c
			}
		}
	}
	return fill
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPDF].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPNG].
//
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
