// Package cli implements the wotscan command-line interface.
//
// This package provides commands for simulating Sybil attacks on a trust
// network, analysing random or reference networks, detecting communities and
// rendering diagrams. The CLI is built using cobra and supports verbose
// logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - simulate: Run a step-by-step Sybil attack scenario
//   - analyze: Components, MSD ranking and articulation points of a network
//   - communities: Edge betweenness and Girvan-Newman community detection
//   - render: Generate DOT, SVG, PDF, or PNG diagrams
//   - explore: Browse strong-set peers interactively
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking, and
// the analysis engine reports through logging observability hooks.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Scanned 30 peers (12ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// ctxKey is the type for context keys used in this package.
type ctxKey int

// loggerKey is the context key for storing a logger.
const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx.
// If no logger is attached, it returns log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// =============================================================================
// Observability Hooks
// =============================================================================

// logHooks reports engine and scenario events at debug level.
type logHooks struct {
	logger *log.Logger
}

func (h *logHooks) OnScanStart(peer, trials int) {
	h.logger.Debug("articulation scan", "peer", peer, "trials", trials)
}

func (h *logHooks) OnScanComplete(peer int, points []int, d time.Duration) {
	h.logger.Debug("articulation scan done", "peer", peer, "points", len(points), "duration", d.Round(time.Microsecond))
}

func (h *logHooks) OnEdgeRemoved(iteration, from, to int, score float64, components int) {
	h.logger.Debug("edge removed",
		"iteration", iteration,
		"edge", edgeString(from, to),
		"score", score,
		"components", components)
}

func (h *logHooks) OnCommunitiesComplete(iterations, removed, components int, d time.Duration) {
	h.logger.Debug("girvan-newman done",
		"iterations", iterations,
		"removed", removed,
		"components", components,
		"duration", d.Round(time.Microsecond))
}

func (h *logHooks) OnStepStart(_ context.Context, step int, name string) {
	h.logger.Debug("step start", "step", step, "name", name)
}

func (h *logHooks) OnStepComplete(_ context.Context, step int, name string, peers int, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("step failed", "step", step, "name", name, "err", err)
		return
	}
	h.logger.Debug("step done", "step", step, "name", name, "peers", peers, "duration", d.Round(time.Microsecond))
}
