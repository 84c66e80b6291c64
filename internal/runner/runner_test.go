package runner

import (
	"context"
	"strings"
	"testing"

	"github.com/stellarlinkco/capeval/internal/evaluator"
	"github.com/stellarlinkco/capeval/internal/llm"
)

type fixedEvaluator struct {
	name  string
	score float64
	cases int
}

func (f *fixedEvaluator) Name() string { return f.name }

func (f *fixedEvaluator) Weights() evaluator.Weights {
	return evaluator.Weights{"m": 1.0}
}

func (f *fixedEvaluator) TestCases() []evaluator.TestCase {
	cases := make([]evaluator.TestCase, 0, f.cases)
	for i := 0; i < f.cases; i++ {
		cases = append(cases, evaluator.TestCase{
			Name:   f.name + "_case_" + string(rune('a'+i)),
			Prompt: "prompt",
		})
	}
	return cases
}

func (f *fixedEvaluator) Score(string, *evaluator.Hint) (float64, evaluator.MetricScore) {
	return f.score, evaluator.MetricScore{"m": f.score}
}

type okGenerator struct{}

func (okGenerator) Generate(context.Context, string, llm.GenerationConfig) (string, error) {
	return "output", nil
}

func TestDefaultRegistrationOrder(t *testing.T) {
	t.Parallel()

	r := New(okGenerator{}, llm.GenerationConfig{}, Config{})
	got := r.Evaluators()
	want := []string{"business", "intent", "sentiment", "entity"}
	if len(got) != len(want) {
		t.Fatalf("Evaluators = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Evaluators = %v, want %v", got, want)
		}
	}
}

func TestRunAllMeanOfMeans(t *testing.T) {
	t.Parallel()

	// Different catalog sizes: the overall score must still be the
	// unweighted mean of the per-evaluator averages.
	r := NewWithEvaluators(okGenerator{}, llm.GenerationConfig{}, Config{ModelName: "m"},
		&fixedEvaluator{name: "high", score: 0.9, cases: 2},
		&fixedEvaluator{name: "low", score: 0.5, cases: 10},
	)

	report, err := r.RunAll(context.Background(), nil)
	if err != nil {
		t.Fatalf("RunAll: %v", err)
	}
	if want := 0.7; !approx(report.Metrics.OverallScore, want) {
		t.Fatalf("OverallScore = %v, want %v", report.Metrics.OverallScore, want)
	}
	if report.Metrics.TotalTests != 12 {
		t.Fatalf("TotalTests = %d, want 12", report.Metrics.TotalTests)
	}
	// high (0.9) passes its 2 cases, low (0.5) fails its 10.
	if report.Metrics.TotalPassed != 2 || report.Metrics.TotalFailed != 10 {
		t.Fatalf("passed/failed = %d/%d, want 2/10", report.Metrics.TotalPassed, report.Metrics.TotalFailed)
	}
	if want := 100.0 * 2 / 12; !approx(report.Metrics.OverallPassRate, want) {
		t.Fatalf("OverallPassRate = %v, want %v", report.Metrics.OverallPassRate, want)
	}
	if report.ModelName != "m" {
		t.Fatalf("ModelName = %q", report.ModelName)
	}
}

func TestRunAllPassRateIsPercentage(t *testing.T) {
	t.Parallel()

	r := NewWithEvaluators(okGenerator{}, llm.GenerationConfig{}, Config{},
		&fixedEvaluator{name: "pass", score: 0.9, cases: 1},
		&fixedEvaluator{name: "fail", score: 0.1, cases: 1},
	)

	report, err := r.RunAll(context.Background(), nil)
	if err != nil {
		t.Fatalf("RunAll: %v", err)
	}
	// 1 of 2 tests passed: the rate is 50, not 0.5.
	if want := 50.0; !approx(report.Metrics.OverallPassRate, want) {
		t.Fatalf("OverallPassRate = %v, want %v", report.Metrics.OverallPassRate, want)
	}
}

func TestRunAllZeroThreshold(t *testing.T) {
	t.Parallel()

	zero := 0.0
	r := NewWithEvaluators(okGenerator{}, llm.GenerationConfig{}, Config{PassThreshold: &zero},
		&fixedEvaluator{name: "a", score: 0.1, cases: 2},
	)

	report, err := r.RunAll(context.Background(), nil)
	if err != nil {
		t.Fatalf("RunAll: %v", err)
	}
	if report.Metrics.TotalPassed != 2 {
		t.Fatalf("TotalPassed = %d, want 2 under a zero threshold", report.Metrics.TotalPassed)
	}
}

func TestRunAllSelection(t *testing.T) {
	t.Parallel()

	r := NewWithEvaluators(okGenerator{}, llm.GenerationConfig{}, Config{},
		&fixedEvaluator{name: "a", score: 1, cases: 1},
		&fixedEvaluator{name: "b", score: 1, cases: 1},
		&fixedEvaluator{name: "c", score: 1, cases: 1},
	)

	// Selection runs in registration order, not selection order.
	report, err := r.RunAll(context.Background(), []string{"c", "a"})
	if err != nil {
		t.Fatalf("RunAll: %v", err)
	}
	if len(report.Summaries) != 2 {
		t.Fatalf("got %d summaries, want 2", len(report.Summaries))
	}
	if report.Summaries[0].Evaluator != "a" || report.Summaries[1].Evaluator != "c" {
		t.Fatalf("order = %s, %s; want a, c", report.Summaries[0].Evaluator, report.Summaries[1].Evaluator)
	}
}

func TestRunAllUnknownSelection(t *testing.T) {
	t.Parallel()

	calls := 0
	gen := &countingGenerator{calls: &calls}
	r := NewWithEvaluators(gen, llm.GenerationConfig{}, Config{},
		&fixedEvaluator{name: "a", score: 1, cases: 3},
	)

	if _, err := r.RunAll(context.Background(), []string{"a", "mystery"}); err == nil {
		t.Fatalf("expected error for unknown evaluator")
	}
	if calls != 0 {
		t.Fatalf("backend called %d times before validation failure, want 0", calls)
	}

	if _, err := r.RunAll(context.Background(), []string{"a", "a"}); err == nil {
		t.Fatalf("expected error for duplicate selection")
	}
}

type countingGenerator struct{ calls *int }

func (g *countingGenerator) Generate(context.Context, string, llm.GenerationConfig) (string, error) {
	*g.calls++
	return "output", nil
}

func TestRunSingle(t *testing.T) {
	t.Parallel()

	r := NewWithEvaluators(okGenerator{}, llm.GenerationConfig{}, Config{},
		&fixedEvaluator{name: "a", score: 0.8, cases: 2},
	)

	s, err := r.Run(context.Background(), "A")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if s.Evaluator != "a" || s.TotalTests != 2 {
		t.Fatalf("summary = %+v", s)
	}

	if _, err := r.Run(context.Background(), "nope"); err == nil {
		t.Fatalf("expected error for unknown evaluator")
	}
}

func TestRecommendations(t *testing.T) {
	t.Parallel()

	r := NewWithEvaluators(okGenerator{}, llm.GenerationConfig{}, Config{},
		&fixedEvaluator{name: "weak", score: 0.60, cases: 2},
		&fixedEvaluator{name: "weaker", score: 0.60, cases: 2},
	)

	report, err := r.RunAll(context.Background(), nil)
	if err != nil {
		t.Fatalf("RunAll: %v", err)
	}

	recs := strings.Join(report.Recommendations, "\n")
	if !strings.Contains(recs, "needs improvement") {
		t.Fatalf("missing headline recommendation in %q", recs)
	}
	if !strings.Contains(recs, "weak average score") || !strings.Contains(recs, "weaker average score") {
		t.Fatalf("missing per-evaluator recommendations in %q", recs)
	}
}

func TestNeedsImprovementNamesLowest(t *testing.T) {
	t.Parallel()

	r := NewWithEvaluators(okGenerator{}, llm.GenerationConfig{}, Config{},
		&fixedEvaluator{name: "middling", score: 0.60, cases: 1},
		&fixedEvaluator{name: "floor", score: 0.30, cases: 1},
	)

	report, err := r.RunAll(context.Background(), nil)
	if err != nil {
		t.Fatalf("RunAll: %v", err)
	}

	headline := report.Recommendations[0]
	if !strings.Contains(headline, "needs improvement") {
		t.Fatalf("headline = %q", headline)
	}
	if !strings.Contains(headline, "floor") {
		t.Fatalf("headline %q does not name the lowest evaluator", headline)
	}
	if strings.Contains(headline, "middling") {
		t.Fatalf("headline %q names a non-lowest evaluator", headline)
	}

	// Tied lowest evaluators are all named.
	r = NewWithEvaluators(okGenerator{}, llm.GenerationConfig{}, Config{},
		&fixedEvaluator{name: "tied_a", score: 0.30, cases: 1},
		&fixedEvaluator{name: "tied_b", score: 0.30, cases: 1},
	)
	report, err = r.RunAll(context.Background(), nil)
	if err != nil {
		t.Fatalf("RunAll: %v", err)
	}
	headline = report.Recommendations[0]
	if !strings.Contains(headline, "tied_a") || !strings.Contains(headline, "tied_b") {
		t.Fatalf("headline %q does not name both tied evaluators", headline)
	}
}

func TestRecommendationTiers(t *testing.T) {
	t.Parallel()

	run := func(score float64) []string {
		r := NewWithEvaluators(okGenerator{}, llm.GenerationConfig{}, Config{},
			&fixedEvaluator{name: "e", score: score, cases: 1})
		report, err := r.RunAll(context.Background(), nil)
		if err != nil {
			t.Fatalf("RunAll: %v", err)
		}
		return report.Recommendations
	}

	if recs := run(0.90); !strings.Contains(recs[0], "strong") {
		t.Fatalf("0.90 headline = %q", recs[0])
	}
	if recs := run(0.75); !strings.Contains(recs[0], "good") {
		t.Fatalf("0.75 headline = %q", recs[0])
	}
	if recs := run(0.50); !strings.Contains(recs[0], "needs improvement") {
		t.Fatalf("0.50 headline = %q", recs[0])
	}
	// Boundary scores land in the upper tier.
	if recs := run(0.85); !strings.Contains(recs[0], "strong") {
		t.Fatalf("0.85 headline = %q", recs[0])
	}
	if recs := run(0.70); !strings.Contains(recs[0], "good") {
		t.Fatalf("0.70 headline = %q", recs[0])
	}
}

func approx(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}
