package store

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/stellarlinkco/capeval/internal/runner"
)

// NewID returns a unique identifier for runs and summaries.
func NewID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("id-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}

// SaveReport persists a full run report: one run row plus one summary
// row per evaluator. Returns the run id.
func SaveReport(ctx context.Context, st Store, rep *runner.OverallReport, startedAt time.Time) (string, error) {
	if st == nil {
		return "", fmt.Errorf("store: nil store")
	}
	if rep == nil {
		return "", fmt.Errorf("store: nil report")
	}

	modelName := rep.ModelName
	if modelName == "" {
		modelName = "unknown"
	}
	runID := NewID()
	run := &RunRecord{
		ID:              runID,
		ModelName:       modelName,
		StartedAt:       startedAt,
		FinishedAt:      rep.Timestamp,
		TotalTests:      rep.Metrics.TotalTests,
		PassedTests:     rep.Metrics.TotalPassed,
		FailedTests:     rep.Metrics.TotalFailed,
		OverallScore:    rep.Metrics.OverallScore,
		OverallPassRate: rep.Metrics.OverallPassRate,
		Recommendations: rep.Recommendations,
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = run.FinishedAt
	}
	if err := st.SaveRun(ctx, run); err != nil {
		return "", err
	}

	for _, s := range rep.Summaries {
		rec := &SummaryRecord{
			ID:               NewID(),
			RunID:            runID,
			Evaluator:        s.Evaluator,
			ModelName:        modelName,
			TotalTests:       s.TotalTests,
			PassedTests:      s.PassedTests,
			FailedTests:      s.FailedTests,
			AverageScore:     s.AverageScore,
			PassRate:         s.PassRate(),
			TotalExecutionMs: s.TotalExecutionTime.Milliseconds(),
			CreatedAt:        s.Timestamp,
			Cases:            make([]CaseRecord, 0, len(s.Results)),
		}
		for _, res := range s.Results {
			cr := CaseRecord{
				TestName:    res.TestName,
				Passed:      res.Passed,
				Score:       res.Score,
				ExecutionMs: res.ExecutionTime.Milliseconds(),
			}
			if res.Err != nil {
				cr.Error = res.Err.Error()
			}
			rec.Cases = append(rec.Cases, cr)
		}
		if err := st.SaveSummary(ctx, rec); err != nil {
			return "", err
		}
	}
	return runID, nil
}
