package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stellarlinkco/capeval/internal/config"
	"github.com/stellarlinkco/capeval/internal/evaluator"
	"github.com/stellarlinkco/capeval/internal/runner"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	st, err := NewSQLiteStore(filepath.Join(t.TempDir(), "capeval.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func sampleRun(id, model string, score float64, at time.Time) *RunRecord {
	return &RunRecord{
		ID:              id,
		ModelName:       model,
		StartedAt:       at,
		FinishedAt:      at.Add(time.Minute),
		TotalTests:      40,
		PassedTests:     30,
		FailedTests:     10,
		OverallScore:    score,
		OverallPassRate: 75,
		Recommendations: []string{"Overall performance is good."},
	}
}

func TestSaveAndGetRun(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	ctx := context.Background()
	at := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)

	if err := st.SaveRun(ctx, sampleRun("run-1", "test-model", 0.8, at)); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	got, err := st.GetRun(ctx, "run-1")
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if got.ModelName != "test-model" || got.OverallScore != 0.8 {
		t.Fatalf("got %+v", got)
	}
	if !got.StartedAt.Equal(at) {
		t.Fatalf("StartedAt = %v, want %v", got.StartedAt, at)
	}
	if len(got.Recommendations) != 1 {
		t.Fatalf("Recommendations = %v", got.Recommendations)
	}

	if _, err := st.GetRun(ctx, "missing"); err == nil {
		t.Fatalf("expected error for missing run")
	}
}

func TestSaveRunValidation(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	ctx := context.Background()

	if err := st.SaveRun(ctx, nil); err == nil {
		t.Fatalf("expected error for nil run")
	}
	if err := st.SaveRun(ctx, &RunRecord{ModelName: "m"}); err == nil {
		t.Fatalf("expected error for empty id")
	}
	if err := st.SaveRun(ctx, &RunRecord{ID: "x", ModelName: "m"}); err == nil {
		t.Fatalf("expected error for missing timestamps")
	}
}

func TestListRuns(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	for i, model := range []string{"model-a", "model-b", "model-a"} {
		run := sampleRun("run-"+string(rune('1'+i)), model, 0.5+float64(i)*0.1, base.Add(time.Duration(i)*time.Hour))
		if err := st.SaveRun(ctx, run); err != nil {
			t.Fatalf("SaveRun: %v", err)
		}
	}

	all, err := st.ListRuns(ctx, RunFilter{})
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d runs, want 3", len(all))
	}
	// Newest first.
	if all[0].ID != "run-3" {
		t.Fatalf("first run = %q, want run-3", all[0].ID)
	}

	filtered, err := st.ListRuns(ctx, RunFilter{ModelName: "model-a"})
	if err != nil {
		t.Fatalf("ListRuns filtered: %v", err)
	}
	if len(filtered) != 2 {
		t.Fatalf("got %d model-a runs, want 2", len(filtered))
	}

	since, err := st.ListRuns(ctx, RunFilter{Since: base.Add(90 * time.Minute)})
	if err != nil {
		t.Fatalf("ListRuns since: %v", err)
	}
	if len(since) != 1 || since[0].ID != "run-3" {
		t.Fatalf("since filter = %v", since)
	}
}

func TestSaveReportRoundTrip(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	ctx := context.Background()
	started := time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)

	rep := &runner.OverallReport{
		ModelName: "test-model",
		Timestamp: started.Add(2 * time.Minute),
		Summaries: []*evaluator.Summary{
			{
				Evaluator:          "business",
				ModelName:          "test-model",
				Timestamp:          started.Add(time.Minute),
				TotalTests:         2,
				PassedTests:        1,
				FailedTests:        1,
				AverageScore:       0.55,
				TotalExecutionTime: 90 * time.Second,
				Results: []evaluator.Result{
					{TestName: "a", Score: 0.9, Passed: true, ExecutionTime: 60 * time.Second},
					{TestName: "b", Score: 0.2, ExecutionTime: 30 * time.Second},
				},
			},
			{
				Evaluator:    "intent",
				ModelName:    "test-model",
				Timestamp:    started.Add(2 * time.Minute),
				TotalTests:   1,
				PassedTests:  1,
				AverageScore: 0.9,
				Results: []evaluator.Result{
					{TestName: "c", Score: 0.9, Passed: true},
				},
			},
		},
		Metrics: runner.OverallMetrics{
			TotalTests:   3,
			TotalPassed:  2,
			TotalFailed:  1,
			OverallScore: 0.725,
		},
		Recommendations: []string{"Overall performance is good."},
	}

	runID, err := SaveReport(ctx, st, rep, started)
	if err != nil {
		t.Fatalf("SaveReport: %v", err)
	}

	run, err := st.GetRun(ctx, runID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if run.TotalTests != 3 || run.OverallScore != 0.725 {
		t.Fatalf("run = %+v", run)
	}

	summaries, err := st.GetSummaries(ctx, runID)
	if err != nil {
		t.Fatalf("GetSummaries: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("got %d summaries, want 2", len(summaries))
	}
	if summaries[0].Evaluator != "business" {
		t.Fatalf("first summary = %q, want business (created_at order)", summaries[0].Evaluator)
	}
	if len(summaries[0].Cases) != 2 || summaries[0].Cases[0].TestName != "a" {
		t.Fatalf("cases = %+v", summaries[0].Cases)
	}
	if summaries[0].TotalExecutionMs != 90000 {
		t.Fatalf("TotalExecutionMs = %d, want 90000", summaries[0].TotalExecutionMs)
	}
}

func TestEvaluatorHistory(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		run := sampleRun("run-"+string(rune('1'+i)), "m", 0.7, base.Add(time.Duration(i)*time.Hour))
		if err := st.SaveRun(ctx, run); err != nil {
			t.Fatalf("SaveRun: %v", err)
		}
		rec := &SummaryRecord{
			ID:           NewID(),
			RunID:        run.ID,
			Evaluator:    "sentiment",
			ModelName:    "m",
			TotalTests:   10,
			PassedTests:  5 + i,
			AverageScore: 0.6 + float64(i)*0.1,
			CreatedAt:    run.StartedAt,
		}
		if err := st.SaveSummary(ctx, rec); err != nil {
			t.Fatalf("SaveSummary: %v", err)
		}
	}

	history, err := st.EvaluatorHistory(ctx, "sentiment", 2)
	if err != nil {
		t.Fatalf("EvaluatorHistory: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("got %d entries, want 2 (limit)", len(history))
	}
	// Newest first.
	if history[0].RunID != "run-3" {
		t.Fatalf("first entry run = %q, want run-3", history[0].RunID)
	}

	if _, err := st.EvaluatorHistory(ctx, "", 5); err == nil {
		t.Fatalf("expected error for empty evaluator name")
	}
}

func TestLeaderboard(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	runs := []struct {
		id    string
		model string
		score float64
	}{
		{"r1", "model-a", 0.6},
		{"r2", "model-a", 0.8},
		{"r3", "model-b", 0.7},
	}
	for i, r := range runs {
		if err := st.SaveRun(ctx, sampleRun(r.id, r.model, r.score, base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("SaveRun: %v", err)
		}
	}

	entries, err := st.Leaderboard(ctx, 10)
	if err != nil {
		t.Fatalf("Leaderboard: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].ModelName != "model-a" || entries[0].BestScore != 0.8 || entries[0].Runs != 2 {
		t.Fatalf("top entry = %+v", entries[0])
	}
	if !approx(entries[0].AvgScore, 0.7) {
		t.Fatalf("AvgScore = %v, want 0.7", entries[0].AvgScore)
	}
	if entries[1].ModelName != "model-b" {
		t.Fatalf("second entry = %+v", entries[1])
	}
}

func TestOpen(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Storage.Type = "memory"
	st, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	_ = st.Close()

	cfg.Storage.Type = "postgres"
	if _, err := Open(cfg); err == nil {
		t.Fatalf("expected error for unsupported storage type")
	}

	if _, err := Open(nil); err == nil {
		t.Fatalf("expected error for nil config")
	}
}

func TestNewID(t *testing.T) {
	t.Parallel()

	a, b := NewID(), NewID()
	if a == "" || a == b {
		t.Fatalf("NewID not unique: %q %q", a, b)
	}
}

func approx(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}
