// Package observability provides hooks for progress reporting and metrics.
//
// The analysis engine stays free of any logging or metrics backend. Instead,
// the long-running operations (articulation scans, Girvan-Newman runs and
// scenario steps) emit events to hooks registered at startup; the CLI
// registers an implementation that logs them.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetAnalysisHooks(&myAnalysisHooks{})
//	    observability.SetScenarioHooks(&myScenarioHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Analysis().OnScanStart(peer, trials)
//	// ... scan ...
//	observability.Analysis().OnScanComplete(peer, points, time.Since(start))
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Analysis Hooks
// =============================================================================

// AnalysisHooks receives events from the graph analyses. The engine is
// synchronous and carries no context, so neither do these events.
type AnalysisHooks interface {
	// Articulation scan events
	OnScanStart(peer, trials int)
	OnScanComplete(peer int, points []int, duration time.Duration)

	// Girvan-Newman events
	OnEdgeRemoved(iteration, from, to int, score float64, components int)
	OnCommunitiesComplete(iterations, edgesRemoved, components int, duration time.Duration)
}

// =============================================================================
// Scenario Hooks
// =============================================================================

// ScenarioHooks receives events from scenario runs.
type ScenarioHooks interface {
	// OnStepStart records the start of a scenario step.
	OnStepStart(ctx context.Context, step int, name string)

	// OnStepComplete records the end of a scenario step.
	OnStepComplete(ctx context.Context, step int, name string, peers int, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopAnalysisHooks is a no-op implementation of AnalysisHooks.
type NoopAnalysisHooks struct{}

func (NoopAnalysisHooks) OnScanStart(int, int)                               {}
func (NoopAnalysisHooks) OnScanComplete(int, []int, time.Duration)           {}
func (NoopAnalysisHooks) OnEdgeRemoved(int, int, int, float64, int)          {}
func (NoopAnalysisHooks) OnCommunitiesComplete(int, int, int, time.Duration) {}

// NoopScenarioHooks is a no-op implementation of ScenarioHooks.
type NoopScenarioHooks struct{}

func (NoopScenarioHooks) OnStepStart(context.Context, int, string) {}
func (NoopScenarioHooks) OnStepComplete(context.Context, int, string, int, time.Duration, error) {
}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	analysisHooks AnalysisHooks = NoopAnalysisHooks{}
	scenarioHooks ScenarioHooks = NoopScenarioHooks{}
	hooksMu       sync.RWMutex
)

// SetAnalysisHooks registers custom analysis hooks.
// This should be called once at application startup before any analysis runs.
func SetAnalysisHooks(h AnalysisHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		analysisHooks = h
	}
}

// SetScenarioHooks registers custom scenario hooks.
// This should be called once at application startup before any scenario runs.
func SetScenarioHooks(h ScenarioHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		scenarioHooks = h
	}
}

// Analysis returns the registered analysis hooks.
func Analysis() AnalysisHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return analysisHooks
}

// Scenario returns the registered scenario hooks.
func Scenario() ScenarioHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return scenarioHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	analysisHooks = NoopAnalysisHooks{}
	scenarioHooks = NoopScenarioHooks{}
}
