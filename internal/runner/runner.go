// Package runner executes capability evaluators in a fixed order and
// aggregates their summaries into an overall report.
package runner

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/stellarlinkco/capeval/internal/evaluator"
	"github.com/stellarlinkco/capeval/internal/evaluator/business"
	"github.com/stellarlinkco/capeval/internal/evaluator/entity"
	"github.com/stellarlinkco/capeval/internal/evaluator/intent"
	"github.com/stellarlinkco/capeval/internal/evaluator/sentiment"
	"github.com/stellarlinkco/capeval/internal/llm"
)

// Config tunes a run.
type Config struct {
	// ModelName labels reports. Informational only.
	ModelName string
	// PassThreshold overrides evaluator.DefaultPassThreshold when
	// set; an explicit zero is honored.
	PassThreshold *float64
	// Progress, when set, receives per-case and per-evaluator lines.
	Progress io.Writer
}

// Runner drives a generation backend through evaluator catalogs,
// strictly sequentially.
type Runner struct {
	backend evaluator.Generator
	genCfg  llm.GenerationConfig
	cfg     Config
	evals   []evaluator.CapabilityEvaluator
}

// DefaultEvaluators returns the standard evaluators in their fixed
// order: business, intent, sentiment, entity.
func DefaultEvaluators() []evaluator.CapabilityEvaluator {
	return []evaluator.CapabilityEvaluator{
		business.New(), intent.New(), sentiment.New(), entity.New(),
	}
}

// New returns a runner over the standard evaluators.
func New(backend evaluator.Generator, genCfg llm.GenerationConfig, cfg Config) *Runner {
	return NewWithEvaluators(backend, genCfg, cfg, DefaultEvaluators()...)
}

// NewWithEvaluators returns a runner over an explicit evaluator list,
// preserving the given order.
func NewWithEvaluators(backend evaluator.Generator, genCfg llm.GenerationConfig, cfg Config, evals ...evaluator.CapabilityEvaluator) *Runner {
	return &Runner{backend: backend, genCfg: genCfg, cfg: cfg, evals: evals}
}

// Evaluators returns the registered evaluator names in run order.
func (r *Runner) Evaluators() []string {
	names := make([]string, 0, len(r.evals))
	for _, e := range r.evals {
		names = append(names, e.Name())
	}
	return names
}

// Run executes a single evaluator by name.
func (r *Runner) Run(ctx context.Context, name string) (*evaluator.Summary, error) {
	e, err := r.lookup(name)
	if err != nil {
		return nil, err
	}
	return evaluator.Run(ctx, e, r.backend, r.genCfg, r.runOptions())
}

// RunAll executes the selected evaluators in registration order and
// aggregates the results. An empty selection means all evaluators.
// Unknown names and invalid evaluator setups are rejected before any
// test executes.
func (r *Runner) RunAll(ctx context.Context, selection []string) (*OverallReport, error) {
	selected, err := r.resolve(selection)
	if err != nil {
		return nil, err
	}
	for _, e := range selected {
		if err := e.Weights().Validate(); err != nil {
			return nil, fmt.Errorf("runner: %s: %w", e.Name(), err)
		}
		if len(e.TestCases()) == 0 {
			return nil, fmt.Errorf("runner: %s has no test cases", e.Name())
		}
	}

	report := &OverallReport{
		ModelName: r.cfg.ModelName,
		Timestamp: time.Now().UTC(),
	}
	for _, e := range selected {
		if r.cfg.Progress != nil {
			fmt.Fprintf(r.cfg.Progress, "=== %s ===\n", e.Name())
		}
		summary, err := evaluator.Run(ctx, e, r.backend, r.genCfg, r.runOptions())
		if err != nil {
			return nil, fmt.Errorf("runner: %s: %w", e.Name(), err)
		}
		report.Summaries = append(report.Summaries, summary)
		if r.cfg.Progress != nil {
			fmt.Fprintf(r.cfg.Progress, "%s: %d/%d passed, avg %.3f\n",
				e.Name(), summary.PassedTests, summary.TotalTests, summary.AverageScore)
		}
	}

	report.Metrics = aggregate(report.Summaries)
	report.Recommendations = recommend(report, r.passThreshold())
	return report, nil
}

func (r *Runner) runOptions() evaluator.Options {
	return evaluator.Options{
		ModelName:     r.cfg.ModelName,
		PassThreshold: r.cfg.PassThreshold,
		Progress:      r.cfg.Progress,
	}
}

func (r *Runner) passThreshold() float64 {
	if r.cfg.PassThreshold != nil {
		return *r.cfg.PassThreshold
	}
	return evaluator.DefaultPassThreshold
}

func (r *Runner) lookup(name string) (evaluator.CapabilityEvaluator, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, e := range r.evals {
		if e.Name() == key {
			return e, nil
		}
	}
	return nil, fmt.Errorf("runner: unknown evaluator %q (have %s)", name, strings.Join(r.Evaluators(), ", "))
}

// resolve maps a selection to evaluators in registration order. Every
// selected name must exist; duplicates are an error.
func (r *Runner) resolve(selection []string) ([]evaluator.CapabilityEvaluator, error) {
	if len(r.evals) == 0 {
		return nil, fmt.Errorf("runner: no evaluators registered")
	}
	if len(selection) == 0 {
		return r.evals, nil
	}
	wanted := make(map[string]bool, len(selection))
	for _, name := range selection {
		key := strings.ToLower(strings.TrimSpace(name))
		if _, err := r.lookup(key); err != nil {
			return nil, err
		}
		if wanted[key] {
			return nil, fmt.Errorf("runner: evaluator %q selected twice", name)
		}
		wanted[key] = true
	}
	selected := make([]evaluator.CapabilityEvaluator, 0, len(wanted))
	for _, e := range r.evals {
		if wanted[e.Name()] {
			selected = append(selected, e)
		}
	}
	return selected, nil
}

func aggregate(summaries []*evaluator.Summary) OverallMetrics {
	var m OverallMetrics
	scoreSum := 0.0
	for _, s := range summaries {
		m.TotalTests += s.TotalTests
		m.TotalPassed += s.PassedTests
		m.TotalFailed += s.FailedTests
		m.TotalExecutionTime += s.TotalExecutionTime
		scoreSum += s.AverageScore
	}
	if len(summaries) > 0 {
		m.OverallScore = scoreSum / float64(len(summaries))
	}
	if m.TotalTests > 0 {
		m.OverallPassRate = 100 * float64(m.TotalPassed) / float64(m.TotalTests)
	}
	return m
}
