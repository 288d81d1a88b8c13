package scenario

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wotscan/pkg/errors"
	"github.com/matzehuels/wotscan/pkg/observability"
	"github.com/matzehuels/wotscan/pkg/wot"
	"github.com/matzehuels/wotscan/pkg/wot/metric"
	"github.com/matzehuels/wotscan/pkg/wot/scc"
	"github.com/matzehuels/wotscan/pkg/wot/sybil"
)

// Step is the state of the network after one scenario step.
type Step struct {
	// Index counts steps from 1.
	Index int

	// Name describes what the step changed.
	Name string

	// Graph is a snapshot; later steps work on copies.
	Graph *wot.Graph

	// Components are the strongly connected components of Graph.
	Components [][]int

	// StrongSet is the component chosen by the scenario's selector.
	StrongSet []int

	// AMSD is the average mean shortest distance over StrongSet.
	AMSD float64

	// Ranking orders the StrongSet members by MSD.
	Ranking []metric.Score

	// Reports holds the articulation analysis of every watched peer present
	// in Graph, or of every StrongSet member in Ranking order when the
	// config sets WatchStrongSet.
	Reports []*sybil.Report

	// Duration is the time spent building and analysing the step.
	Duration time.Duration
}

// Result is the outcome of a scenario run.
type Result struct {
	Config Config
	Steps  []Step
}

// Final returns the last step, or nil for an empty result.
func (r *Result) Final() *Step {
	if len(r.Steps) == 0 {
		return nil
	}
	return &r.Steps[len(r.Steps)-1]
}

// stage builds the graph of one step from the previous one.
type stage struct {
	name  string
	apply func() error
}

// Runner executes scenarios.
//
// The Runner holds no run state, so one Runner may serve several goroutines
// with different configs.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner that logs to logger.
// If logger is nil, log.Default() is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Run validates cfg and executes its steps: the base network, the attacker
// subnetwork appended to it, and one step per link. The run stops between
// steps once ctx is cancelled.
func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	sel, _ := cfg.selector()
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
	watched := cfg.Watched()

	res := &Result{Config: cfg}
	var g *wot.Graph

	steps := []stage{
		{"base network", func() (err error) {
			g, err = wot.Random(cfg.Base.Peers, cfg.Base.SigMin, cfg.Base.SigMax, rng)
			return err
		}},
		{"attacker subnetwork", func() error {
			socks, err := wot.Random(cfg.Attacker.Peers, cfg.Attacker.SigMin, cfg.Attacker.SigMax, rng)
			if err != nil {
				return err
			}
			g = wot.Concat(g, socks)
			return nil
		}},
	}
	for _, l := range cfg.Links {
		steps = append(steps, stage{fmt.Sprintf("link %d <-> %d", l.Attacker, l.Legit), func() error {
			g = g.Clone()
			return g.SignMutual(l.Attacker, l.Legit)
		}})
	}

	hooks := observability.Scenario()
	for i, s := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		index := i + 1
		hooks.OnStepStart(ctx, index, s.name)
		start := time.Now()

		err := s.apply()
		var step *Step
		if err == nil {
			if cfg.WatchStrongSet {
				step, err = analyze(g, sel, nil)
				if err == nil {
					err = step.watch(g, sel, step.rankedLabels())
				}
			} else {
				step, err = analyze(g, sel, watched)
			}
		}
		if err != nil {
			hooks.OnStepComplete(ctx, index, s.name, 0, time.Since(start), err)
			code := errors.GetCode(err)
			if code == "" {
				code = errors.ErrCodeInternal
			}
			return nil, errors.Wrap(code, err, "step %d (%s)", index, s.name)
		}

		step.Index = index
		step.Name = s.name
		step.Duration = time.Since(start)
		hooks.OnStepComplete(ctx, index, s.name, g.Len(), step.Duration, nil)
		r.Logger.Debug("scenario step",
			"step", index,
			"name", s.name,
			"peers", g.Len(),
			"edges", g.EdgeCount(),
			"components", len(step.Components),
			"strong_set", len(step.StrongSet),
			"duration", step.Duration)
		res.Steps = append(res.Steps, *step)
	}
	return res, nil
}

// analyze computes the per-step report of g.
func analyze(g *wot.Graph, sel scc.Selector, watched []int) (*Step, error) {
	components := scc.Components(g)
	strong, err := scc.StrongSet(components, sel)
	if err != nil {
		return nil, err
	}
	amsd, err := metric.AMSD(g, strong)
	if err != nil {
		return nil, err
	}
	ranking, err := metric.Ranking(g, strong)
	if err != nil {
		return nil, err
	}

	step := &Step{
		Graph:      g,
		Components: components,
		StrongSet:  strong,
		AMSD:       amsd,
		Ranking:    ranking,
	}
	if err := step.watch(g, sel, watched); err != nil {
		return nil, err
	}
	return step, nil
}

// watch appends the articulation report of every label present in g.
func (s *Step) watch(g *wot.Graph, sel scc.Selector, labels []int) error {
	for _, l := range labels {
		if l >= g.Len() {
			continue
		}
		report, err := sybil.Analyze(g, l, sel)
		if err != nil {
			return err
		}
		s.Reports = append(s.Reports, report)
	}
	return nil
}

// rankedLabels returns the strong-set members in MSD order.
func (s *Step) rankedLabels() []int {
	labels := make([]int, len(s.Ranking))
	for i, r := range s.Ranking {
		labels[i] = r.Label
	}
	return labels
}
