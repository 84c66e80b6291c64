package runner

import (
	"time"

	"github.com/stellarlinkco/capeval/internal/evaluator"
)

// OverallMetrics aggregates across evaluators. OverallScore is the
// unweighted mean of the evaluators' average scores, so a small catalog
// counts as much as a large one. OverallPassRate is a percentage,
// 100 * TotalPassed / TotalTests.
type OverallMetrics struct {
	TotalTests         int           `json:"total_tests"`
	TotalPassed        int           `json:"total_passed"`
	TotalFailed        int           `json:"total_failed"`
	OverallScore       float64       `json:"overall_score"`
	OverallPassRate    float64       `json:"overall_pass_rate"`
	TotalExecutionTime time.Duration `json:"total_execution_time"`
}

// OverallReport is the result of a full run across the selected
// evaluators.
type OverallReport struct {
	ModelName       string               `json:"model_name"`
	Timestamp       time.Time            `json:"timestamp"`
	Summaries       []*evaluator.Summary `json:"summaries"`
	Metrics         OverallMetrics       `json:"overall_metrics"`
	Recommendations []string             `json:"recommendations"`
}
