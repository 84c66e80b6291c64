// Package evaluator defines the capability evaluation engine: test case
// catalogs, metric weight tables, and the shared run loop that drives a
// generation backend through a catalog and scores its outputs.
package evaluator

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/stellarlinkco/capeval/internal/llm"
)

// DefaultPassThreshold is the score at or above which a test passes.
const DefaultPassThreshold = 0.70

// CapabilityEvaluator scores model outputs for one capability. Score is
// a pure function of its arguments: same output and hint, same result.
type CapabilityEvaluator interface {
	// Name returns the capability name, e.g. "business".
	Name() string

	// Weights returns the capability's metric weight table.
	Weights() Weights

	// TestCases returns the capability's catalog. The returned slice
	// must not be mutated by callers.
	TestCases() []TestCase

	// Score rates output against hint, returning the weighted scalar
	// in [0, 1] and the per-metric breakdown.
	Score(output string, hint *Hint) (float64, MetricScore)
}

// Generator is the slice of llm.Provider the run loop needs.
type Generator interface {
	Generate(ctx context.Context, prompt string, cfg llm.GenerationConfig) (string, error)
}

// Options tunes a single evaluator run.
type Options struct {
	// ModelName labels the summary. Informational only.
	ModelName string
	// PassThreshold overrides DefaultPassThreshold when set; an
	// explicit zero means every completed case passes.
	PassThreshold *float64
	// Progress, when set, receives a line per completed test case.
	Progress io.Writer
}

// Run drives gen through e's catalog sequentially and scores each
// output. A failed backend call or a panicking scorer marks that case
// failed with score zero; the run always continues to the next case.
func Run(ctx context.Context, e CapabilityEvaluator, gen Generator, genCfg llm.GenerationConfig, opts Options) (*Summary, error) {
	if e == nil {
		return nil, fmt.Errorf("evaluator: evaluator is nil")
	}
	if gen == nil {
		return nil, fmt.Errorf("evaluator: generator is nil")
	}
	if err := e.Weights().Validate(); err != nil {
		return nil, fmt.Errorf("evaluator: %s: %w", e.Name(), err)
	}
	cases := e.TestCases()
	if len(cases) == 0 {
		return nil, fmt.Errorf("evaluator: %s has no test cases", e.Name())
	}
	seen := make(map[string]struct{}, len(cases))
	for _, tc := range cases {
		if tc.Name == "" {
			return nil, fmt.Errorf("evaluator: %s has a test case with no name", e.Name())
		}
		if _, dup := seen[tc.Name]; dup {
			return nil, fmt.Errorf("evaluator: %s has duplicate test case %q", e.Name(), tc.Name)
		}
		seen[tc.Name] = struct{}{}
	}
	threshold := DefaultPassThreshold
	if opts.PassThreshold != nil {
		threshold = *opts.PassThreshold
	}
	if threshold < 0 || threshold > 1 {
		return nil, fmt.Errorf("evaluator: pass threshold %v out of range", threshold)
	}

	results := make([]Result, 0, len(cases))
	for i, tc := range cases {
		res := runCase(ctx, e, gen, genCfg, tc, threshold)
		results = append(results, res)
		if opts.Progress != nil {
			status := "PASS"
			if !res.Passed {
				status = "FAIL"
			}
			fmt.Fprintf(opts.Progress, "[%d/%d] %s %s score=%.3f (%.2fs)\n",
				i+1, len(cases), status, tc.Name, res.Score, res.ExecutionTime.Seconds())
		}
	}
	return Summarize(e.Name(), opts.ModelName, results), nil
}

func runCase(ctx context.Context, e CapabilityEvaluator, gen Generator, genCfg llm.GenerationConfig, tc TestCase, threshold float64) Result {
	res := Result{TestName: tc.Name, Prompt: tc.Prompt}
	start := time.Now()
	output, err := gen.Generate(ctx, tc.Prompt, genCfg)
	if err != nil {
		res.ExecutionTime = time.Since(start)
		res.Err = fmt.Errorf("evaluator: %s: %w", tc.Name, err)
		return res
	}
	res.ActualOutput = output
	score, metrics, err := safeScore(e, output, tc.Expected)
	res.ExecutionTime = time.Since(start)
	if err != nil {
		res.Err = err
		return res
	}
	res.Score = clamp01(score)
	res.Metrics = metrics
	res.Passed = res.Score >= threshold
	return res
}

// safeScore converts a panicking scorer into a per-case failure.
func safeScore(e CapabilityEvaluator, output string, hint *Hint) (score float64, metrics MetricScore, err error) {
	defer func() {
		if r := recover(); r != nil {
			score, metrics = 0, nil
			err = fmt.Errorf("evaluator: %s score panicked: %v", e.Name(), r)
		}
	}()
	score, metrics = e.Score(output, hint)
	return score, metrics, nil
}

// Summarize reduces a result list into a Summary. Failed cases count
// toward the average with their zero score.
func Summarize(evaluatorName, modelName string, results []Result) *Summary {
	s := &Summary{
		Evaluator:  evaluatorName,
		ModelName:  modelName,
		Timestamp:  time.Now().UTC(),
		TotalTests: len(results),
		Results:    results,
	}
	total := 0.0
	for _, r := range results {
		total += r.Score
		s.TotalExecutionTime += r.ExecutionTime
		if r.Passed {
			s.PassedTests++
		} else {
			s.FailedTests++
		}
	}
	if len(results) > 0 {
		s.AverageScore = total / float64(len(results))
	}
	return s
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
