package runner

import (
	"fmt"
	"strings"

	"github.com/stellarlinkco/capeval/internal/evaluator"
)

// Recommendation tiers on the overall score.
const (
	strongScore = 0.85
	goodScore   = 0.70
)

// recommend derives guidance from a finished report. Every rule whose
// condition holds contributes a line; the headline reflects the overall
// score tier.
func recommend(report *OverallReport, passThreshold float64) []string {
	var recs []string

	overall := report.Metrics.OverallScore
	switch {
	case overall >= strongScore:
		recs = append(recs, "Overall performance is strong. Consider tightening pass thresholds or adding harder test cases.")
	case overall >= goodScore:
		recs = append(recs, "Overall performance is good. Review the weakest metrics below the surface averages for targeted gains.")
	default:
		if names, low := lowestEvaluators(report.Summaries); len(names) > 0 {
			recs = append(recs, fmt.Sprintf("Overall performance needs improvement; %s scored lowest (%.2f). Consider prompt tuning or a different generation configuration.",
				strings.Join(names, ", "), low))
		} else {
			recs = append(recs, "Overall performance needs improvement. Consider prompt tuning or a different generation configuration.")
		}
	}

	for _, s := range report.Summaries {
		if s.AverageScore < passThreshold {
			recs = append(recs, fmt.Sprintf("%s average score %.2f is below the %.2f pass threshold; focus improvement there.",
				s.Evaluator, s.AverageScore, passThreshold))
		}
		if s.TotalTests > 0 && s.FailedTests == s.TotalTests {
			recs = append(recs, fmt.Sprintf("%s failed every test case; check backend connectivity and output format.", s.Evaluator))
		}
	}

	if report.Metrics.TotalTests > 0 && report.Metrics.OverallPassRate < 50 {
		recs = append(recs, fmt.Sprintf("Fewer than half of all tests passed (%.0f%%); re-run after addressing the lowest scoring evaluators.",
			report.Metrics.OverallPassRate))
	}

	return recs
}

// lowestEvaluators returns the names sharing the lowest average score,
// in summary order.
func lowestEvaluators(summaries []*evaluator.Summary) ([]string, float64) {
	if len(summaries) == 0 {
		return nil, 0
	}
	low := summaries[0].AverageScore
	for _, s := range summaries[1:] {
		if s.AverageScore < low {
			low = s.AverageScore
		}
	}
	var names []string
	for _, s := range summaries {
		if s.AverageScore == low {
			names = append(names, s.Evaluator)
		}
	}
	return names, low
}
