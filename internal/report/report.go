// Package report renders run results into their stable JSON form and
// writes timestamped report files. Field names here are a contract;
// downstream tooling parses them.
package report

import (
	"time"

	"github.com/stellarlinkco/capeval/internal/evaluator"
	"github.com/stellarlinkco/capeval/internal/runner"
)

// CaseResult is the JSON form of one test case outcome. ExecutionTime
// is in seconds.
type CaseResult struct {
	TestName      string             `json:"test_name"`
	Prompt        string             `json:"prompt"`
	ActualOutput  string             `json:"actual_output,omitempty"`
	Score         float64            `json:"score"`
	Metrics       map[string]float64 `json:"metrics,omitempty"`
	ExecutionTime float64            `json:"execution_time"`
	Passed        bool               `json:"passed"`
	Error         string             `json:"error,omitempty"`
}

// Stats is the JSON form of an evaluator's aggregate numbers.
type Stats struct {
	TotalTests         int     `json:"total_tests"`
	PassedTests        int     `json:"passed_tests"`
	FailedTests        int     `json:"failed_tests"`
	AverageScore       float64 `json:"average_score"`
	TotalExecutionTime float64 `json:"total_execution_time"`
}

// EvaluatorReport is the JSON form of a single-evaluator run.
type EvaluatorReport struct {
	Evaluator string       `json:"evaluator"`
	ModelName string       `json:"model_name"`
	Timestamp string       `json:"timestamp"`
	Summary   Stats        `json:"summary"`
	Results   []CaseResult `json:"results"`
}

// OverallMetrics is the JSON form of cross-evaluator aggregates.
type OverallMetrics struct {
	TotalTests         int     `json:"total_tests"`
	TotalPassed        int     `json:"total_passed"`
	TotalFailed        int     `json:"total_failed"`
	OverallScore       float64 `json:"overall_score"`
	OverallPassRate    float64 `json:"overall_pass_rate"`
	TotalExecutionTime float64 `json:"total_execution_time"`
}

// Overall is the JSON form of a full run. Evaluators is keyed by
// evaluator name; run order lives in the runner's report, not here.
type Overall struct {
	ModelName       string                     `json:"model_name"`
	Timestamp       string                     `json:"timestamp"`
	Evaluators      map[string]EvaluatorReport `json:"evaluators"`
	OverallMetrics  OverallMetrics             `json:"overall_metrics"`
	Recommendations []string                   `json:"recommendations"`
}

// FromSummary converts an evaluator summary to its JSON form.
func FromSummary(s *evaluator.Summary) EvaluatorReport {
	r := EvaluatorReport{
		Evaluator: s.Evaluator,
		ModelName: s.ModelName,
		Timestamp: s.Timestamp.Format(time.RFC3339),
		Summary: Stats{
			TotalTests:         s.TotalTests,
			PassedTests:        s.PassedTests,
			FailedTests:        s.FailedTests,
			AverageScore:       s.AverageScore,
			TotalExecutionTime: s.TotalExecutionTime.Seconds(),
		},
		Results: make([]CaseResult, 0, len(s.Results)),
	}
	for _, res := range s.Results {
		cr := CaseResult{
			TestName:      res.TestName,
			Prompt:        res.Prompt,
			ActualOutput:  res.ActualOutput,
			Score:         res.Score,
			Metrics:       res.Metrics,
			ExecutionTime: res.ExecutionTime.Seconds(),
			Passed:        res.Passed,
		}
		if res.Err != nil {
			cr.Error = res.Err.Error()
		}
		r.Results = append(r.Results, cr)
	}
	return r
}

// FromOverall converts a full run report to its JSON form.
func FromOverall(rep *runner.OverallReport) Overall {
	o := Overall{
		ModelName: rep.ModelName,
		Timestamp: rep.Timestamp.Format(time.RFC3339),
		OverallMetrics: OverallMetrics{
			TotalTests:         rep.Metrics.TotalTests,
			TotalPassed:        rep.Metrics.TotalPassed,
			TotalFailed:        rep.Metrics.TotalFailed,
			OverallScore:       rep.Metrics.OverallScore,
			OverallPassRate:    rep.Metrics.OverallPassRate,
			TotalExecutionTime: rep.Metrics.TotalExecutionTime.Seconds(),
		},
		Recommendations: rep.Recommendations,
	}
	o.Evaluators = make(map[string]EvaluatorReport, len(rep.Summaries))
	for _, s := range rep.Summaries {
		o.Evaluators[s.Evaluator] = FromSummary(s)
	}
	return o
}
