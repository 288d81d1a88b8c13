package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wotscan/pkg/errors"
	graphio "github.com/matzehuels/wotscan/pkg/io"
	"github.com/matzehuels/wotscan/pkg/render/nodelink"
	"github.com/matzehuels/wotscan/pkg/wot/community"
	"github.com/matzehuels/wotscan/pkg/wot/scc"
	"github.com/matzehuels/wotscan/pkg/wot/sybil"
)

const (
	formatDOT  = "dot"
	formatJSON = "json"
	formatSVG  = "svg"
	formatPDF  = "pdf"
	formatPNG  = "png"

	defaultPNGScale = 2.0
)

// validFormats is the set of supported output formats.
var validFormats = map[string]bool{formatDOT: true, formatJSON: true, formatSVG: true, formatPDF: true, formatPNG: true}

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	source      sourceOpts
	output      string // output file; stdout when empty
	format      string // dot, json, svg, pdf or png; derived from output when empty
	communities bool   // colour Girvan-Newman communities instead of components
	target      int    // Girvan-Newman target component count
	policy      string // Girvan-Newman removal policy
	highlight   int    // peer whose articulation points are outlined; -1 for none
	detailed    bool   // add peer IDs to labels
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{highlight: -1}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Draw a trust network as a node-link diagram",
		Long: `Draw a trust network with Graphviz. Peers are coloured by strongly connected
component, or by Girvan-Newman community with --communities, in which case the
removed signatures are drawn dashed. --highlight-peer outlines the strong-set
articulation points of one peer.

The format follows --format, then the extension of --output, then defaults to
svg. PDF and PNG output need rsvg-convert on the PATH. The json format writes
the network itself, readable again with --graph.

Examples:
  wotscan render --reference --communities -o reference.svg
  wotscan render --sybil --link 17:2 --highlight-peer 17 -o sybil.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)
			return c.runRender(ctx, &opts)
		},
	}

	opts.source.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: svg (default), dot, json, pdf, png")
	cmd.Flags().BoolVar(&opts.communities, "communities", false, "colour Girvan-Newman communities")
	cmd.Flags().IntVarP(&opts.target, "target", "k", 0, "Girvan-Newman target components (0: one more than initially)")
	cmd.Flags().StringVar(&opts.policy, "policy", community.RemoveReciprocal.String(), "Girvan-Newman removal policy: reciprocal, single")
	cmd.Flags().IntVar(&opts.highlight, "highlight-peer", opts.highlight, "outline the articulation points of this peer")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "add peer IDs to labels")

	return cmd
}

// resolveFormat picks the output format from the flag or the output path.
func resolveFormat(format, output string) (string, error) {
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(output)), ".")
		if !validFormats[format] {
			format = formatSVG
		}
	}
	if !validFormats[format] {
		return "", errors.New(errors.ErrCodeInvalidInput, "invalid format %q (want dot, json, svg, pdf or png)", format)
	}
	return format, nil
}

func (c *CLI) runRender(ctx context.Context, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	format, err := resolveFormat(opts.format, opts.output)
	if err != nil {
		return err
	}
	src, err := opts.source.load(ctx)
	if err != nil {
		return err
	}
	g := src.Graph
	logger.Infof("Loaded %s: %d peers, %d signatures", src.Description, g.Len(), g.EdgeCount())

	var data []byte
	if format == formatJSON {
		var buf bytes.Buffer
		if err := graphio.WriteJSON(g, &buf); err != nil {
			return err
		}
		data = buf.Bytes()
	} else {
		dotOpts, err := opts.diagram(ctx, src)
		if err != nil {
			return err
		}
		if data, err = encodeDiagram(nodelink.ToDOT(g, dotOpts), format); err != nil {
			return err
		}
	}
	logger.Debugf("Generated %s: %d bytes", format, len(data))

	out, err := openOutput(opts.output)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "open output")
	}
	defer out.Close()
	if _, err := out.Write(data); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", format)
	}

	if opts.output != "" {
		printSuccess("Rendered %s", src.Description)
		printFile(opts.output)
	}
	return nil
}

// diagram computes the partition, removed edges and highlights for src.
func (o *renderOpts) diagram(ctx context.Context, src *source) (nodelink.Options, error) {
	logger := loggerFromContext(ctx)
	g := src.Graph
	dotOpts := nodelink.Options{Detailed: o.detailed}

	if o.communities {
		policy, err := community.ParseRemovalPolicy(o.policy)
		if err != nil {
			return dotOpts, err
		}
		res, err := community.GirvanNewman(g, community.Options{TargetComponents: o.target, Policy: policy})
		if err != nil {
			return dotOpts, err
		}
		logger.Infof("Girvan-Newman: %d communities, %d signatures removed, modularity %.4f",
			len(res.Components), res.EdgesRemoved, res.Modularity)
		dotOpts.Partition = res.Components
		dotOpts.Removed = res.Removed
	} else {
		dotOpts.Partition = scc.Components(g)
	}

	if o.highlight >= 0 {
		sel, err := o.source.strongSet(src)
		if err != nil {
			return dotOpts, err
		}
		points, err := sybil.ArticulationPoints(g, o.highlight, sel)
		if err != nil {
			return dotOpts, err
		}
		logger.Infof("Peer %d has %d articulation point(s)", o.highlight, len(points))
		dotOpts.Highlight = points
	}
	return dotOpts, nil
}

// encodeDiagram renders dot in the given format.
func encodeDiagram(dot, format string) ([]byte, error) {
	switch format {
	case formatDOT:
		return []byte(dot), nil
	case formatSVG:
		return nodelink.RenderSVG(dot)
	case formatPDF:
		return nodelink.RenderPDF(dot)
	case formatPNG:
		return nodelink.RenderPNG(dot, defaultPNGScale)
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "invalid format %q", format)
}

// nopCloser wraps an io.Writer with a no-op Close method.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
