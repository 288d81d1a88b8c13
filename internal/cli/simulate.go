package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	graphio "github.com/matzehuels/wotscan/pkg/io"
	"github.com/matzehuels/wotscan/pkg/scenario"
)

// simulateOpts holds the command-line flags for the simulate command.
type simulateOpts struct {
	config      string // scenario TOML file; defaults apply when empty
	seed        uint64 // overrides the configured seed when set
	printConfig bool   // print the effective configuration and exit
	export      string // JSON file receiving the final network
	top         int    // rows in the final MSD ranking
	all         bool   // report every strong-set member at every step
}

// simulateCommand creates the simulate command.
func (c *CLI) simulateCommand() *cobra.Command {
	opts := simulateOpts{top: defaultTop}

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a Sybil attack scenario step by step",
		Long: `Grow a random honest network, append an attacker-controlled subnetwork and
link the two one reciprocal signature at a time. After every step the strong
set, its AMSD and the articulation points of the watched sock identities are
reported. With --all every strong-set member is listed at every step with its
MSD and articulation points.

Without --config the built-in scenario is used; --print-config shows it as
TOML, ready to be edited.

Examples:
  wotscan simulate
  wotscan simulate --print-config > scenario.toml
  wotscan simulate -c scenario.toml --seed 7
  wotscan simulate --all
  wotscan simulate --export final.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)
			return c.runSimulate(ctx, &opts, cmd.Flags().Changed("seed"))
		},
	}

	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "scenario TOML file (default: built-in scenario)")
	cmd.Flags().Uint64Var(&opts.seed, "seed", scenario.DefaultSeed, "override the scenario seed")
	cmd.Flags().BoolVar(&opts.printConfig, "print-config", false, "print the effective scenario as TOML and exit")
	cmd.Flags().StringVar(&opts.export, "export", "", "write the final network as JSON to this file")
	cmd.Flags().IntVar(&opts.top, "top", opts.top, "number of peers in the final MSD ranking")
	cmd.Flags().BoolVar(&opts.all, "all", false, "report MSD and articulation points of every strong-set peer at every step")

	return cmd
}

func (c *CLI) runSimulate(ctx context.Context, opts *simulateOpts, seedSet bool) error {
	cfg, err := loadScenario(opts.config)
	if err != nil {
		return err
	}
	if seedSet {
		cfg.Seed = opts.seed
	}
	if opts.all {
		cfg.WatchStrongSet = true
	}
	if opts.printConfig {
		return cfg.Encode(os.Stdout)
	}

	c.Logger.Debug("scenario", "config", cfg.String())
	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, "Running scenario...")
	spinner.Start()
	res, err := scenario.NewRunner(c.Logger).Run(ctx, cfg)
	spinner.Stop()
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Ran %d step(s)", len(res.Steps)))

	for _, step := range res.Steps {
		printStep(&step, cfg.WatchStrongSet)
	}

	final := res.Final()
	if !cfg.WatchStrongSet {
		rows := make([][]string, 0, opts.top)
		for _, s := range final.Ranking[:min(max(opts.top, 0), len(final.Ranking))] {
			rows = append(rows, []string{fmt.Sprint(s.Label), fmt.Sprintf("%.3f", s.MSD)})
		}
		if len(rows) > 0 {
			printTable([]string{"Peer", "MSD"}, rows)
		}
	}

	if opts.export != "" {
		if err := graphio.ExportJSON(final.Graph, opts.export); err != nil {
			return err
		}
		printSuccess("Exported the final network")
		printFile(opts.export)
		printNextStep("Analyse it", fmt.Sprintf("%s analyze -g %s", appName, opts.export))
		return nil
	}
	if opts.config == "" {
		printNextStep("Save and edit the scenario", appName+" simulate --print-config > scenario.toml")
	} else {
		printNextStep("Render the final network", fmt.Sprintf("%s render -c %s -o network.svg", appName, opts.config))
	}
	return nil
}

// loadScenario reads path, or returns the built-in scenario for an empty path.
func loadScenario(path string) (scenario.Config, error) {
	if path == "" {
		return scenario.Default(), nil
	}
	return scenario.Load(path)
}

// printStep prints the summary of one scenario step. With members set the
// reports cover the whole strong set and are printed as one table.
func printStep(s *scenario.Step, members bool) {
	fmt.Println(StyleTitle.Render(fmt.Sprintf("Step %d: %s", s.Index, s.Name)))
	printStats(s.Graph.Len(), s.Graph.EdgeCount(), len(s.Components))
	printKeyValue("strong set", fmt.Sprintf("%d peers", len(s.StrongSet)))
	printKeyValue("AMSD", fmt.Sprintf("%.3f", s.AMSD))
	if members {
		printTable([]string{"Peer", "MSD", "Articulation points"}, memberRows(s))
	} else {
		for _, r := range s.Reports {
			printReport(r)
		}
	}
	printNewline()
}

// memberRows pairs each ranked strong-set peer with its articulation points.
func memberRows(s *scenario.Step) [][]string {
	points := make(map[int][]int, len(s.Reports))
	for _, r := range s.Reports {
		points[r.Peer] = r.Points
	}
	rows := make([][]string, 0, len(s.Ranking))
	for _, r := range s.Ranking {
		rows = append(rows, []string{fmt.Sprint(r.Label), fmt.Sprintf("%.3f", r.MSD), formatLabels(points[r.Label])})
	}
	return rows
}
