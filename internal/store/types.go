package store

import (
	"context"
	"time"
)

// RunWriter defines persistence for run and evaluator summaries.
type RunWriter interface {
	SaveRun(ctx context.Context, run *RunRecord) error
	SaveSummary(ctx context.Context, summary *SummaryRecord) error
}

// RunReader defines read access to stored runs.
type RunReader interface {
	GetRun(ctx context.Context, id string) (*RunRecord, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]*RunRecord, error)
	GetSummaries(ctx context.Context, runID string) ([]*SummaryRecord, error)
}

// Analytics defines query helpers over run history.
type Analytics interface {
	// EvaluatorHistory returns recent summaries for one evaluator,
	// newest first.
	EvaluatorHistory(ctx context.Context, evaluator string, limit int) ([]*SummaryRecord, error)
	// Leaderboard ranks models by their best overall score.
	Leaderboard(ctx context.Context, limit int) ([]*LeaderboardEntry, error)
}

// Store defines persistence for evaluation runs.
type Store interface {
	RunWriter
	RunReader
	Analytics
	Close() error
}

// RunRecord stores one full run.
type RunRecord struct {
	ID              string
	ModelName       string
	StartedAt       time.Time
	FinishedAt      time.Time
	TotalTests      int
	PassedTests     int
	FailedTests     int
	OverallScore    float64
	OverallPassRate float64  // percentage, 0-100
	Recommendations []string // JSON serialized
}

// SummaryRecord stores one evaluator's results within a run.
type SummaryRecord struct {
	ID               string
	RunID            string
	Evaluator        string
	ModelName        string
	TotalTests       int
	PassedTests      int
	FailedTests      int
	AverageScore     float64
	PassRate         float64
	TotalExecutionMs int64
	CreatedAt        time.Time
	Cases            []CaseRecord // JSON serialized
}

// CaseRecord stores a single test case result.
type CaseRecord struct {
	TestName    string
	Passed      bool
	Score       float64
	ExecutionMs int64
	Error       string
}

// RunFilter filters run listings.
type RunFilter struct {
	ModelName string
	Since     time.Time
	Until     time.Time
	Limit     int
}

// LeaderboardEntry aggregates a model's runs.
type LeaderboardEntry struct {
	ModelName string
	Runs      int
	BestScore float64
	AvgScore  float64
	LastRun   time.Time
}
