package api

import (
	"context"

	"github.com/stellarlinkco/capeval/internal/llm"
	"github.com/stellarlinkco/capeval/internal/store"
)

type fakeStore struct {
	SaveRunFunc          func(ctx context.Context, run *store.RunRecord) error
	SaveSummaryFunc      func(ctx context.Context, summary *store.SummaryRecord) error
	GetRunFunc           func(ctx context.Context, id string) (*store.RunRecord, error)
	ListRunsFunc         func(ctx context.Context, filter store.RunFilter) ([]*store.RunRecord, error)
	GetSummariesFunc     func(ctx context.Context, runID string) ([]*store.SummaryRecord, error)
	EvaluatorHistoryFunc func(ctx context.Context, evaluator string, limit int) ([]*store.SummaryRecord, error)
	LeaderboardFunc      func(ctx context.Context, limit int) ([]*store.LeaderboardEntry, error)
	CloseFunc            func() error
}

func (s *fakeStore) SaveRun(ctx context.Context, run *store.RunRecord) error {
	if s.SaveRunFunc != nil {
		return s.SaveRunFunc(ctx, run)
	}
	return nil
}

func (s *fakeStore) SaveSummary(ctx context.Context, summary *store.SummaryRecord) error {
	if s.SaveSummaryFunc != nil {
		return s.SaveSummaryFunc(ctx, summary)
	}
	return nil
}

func (s *fakeStore) GetRun(ctx context.Context, id string) (*store.RunRecord, error) {
	if s.GetRunFunc != nil {
		return s.GetRunFunc(ctx, id)
	}
	return nil, nil
}

func (s *fakeStore) ListRuns(ctx context.Context, filter store.RunFilter) ([]*store.RunRecord, error) {
	if s.ListRunsFunc != nil {
		return s.ListRunsFunc(ctx, filter)
	}
	return nil, nil
}

func (s *fakeStore) GetSummaries(ctx context.Context, runID string) ([]*store.SummaryRecord, error) {
	if s.GetSummariesFunc != nil {
		return s.GetSummariesFunc(ctx, runID)
	}
	return nil, nil
}

func (s *fakeStore) EvaluatorHistory(ctx context.Context, evaluator string, limit int) ([]*store.SummaryRecord, error) {
	if s.EvaluatorHistoryFunc != nil {
		return s.EvaluatorHistoryFunc(ctx, evaluator, limit)
	}
	return nil, nil
}

func (s *fakeStore) Leaderboard(ctx context.Context, limit int) ([]*store.LeaderboardEntry, error) {
	if s.LeaderboardFunc != nil {
		return s.LeaderboardFunc(ctx, limit)
	}
	return nil, nil
}

func (s *fakeStore) Close() error {
	if s.CloseFunc != nil {
		return s.CloseFunc()
	}
	return nil
}

type fakeProvider struct {
	GenerateFunc func(ctx context.Context, prompt string, cfg llm.GenerationConfig) (string, error)
}

func (p *fakeProvider) Name() string { return "fake" }

func (p *fakeProvider) Generate(ctx context.Context, prompt string, cfg llm.GenerationConfig) (string, error) {
	if p.GenerateFunc != nil {
		return p.GenerateFunc(ctx, prompt, cfg)
	}
	return "ok", nil
}

func (p *fakeProvider) GenerateMany(ctx context.Context, prompts []string, cfg llm.GenerationConfig) ([]string, error) {
	out := make([]string, 0, len(prompts))
	for _, prompt := range prompts {
		text, err := p.Generate(ctx, prompt, cfg)
		if err != nil {
			return nil, err
		}
		out = append(out, text)
	}
	return out, nil
}

func (p *fakeProvider) Chat(ctx context.Context, messages []llm.Message, cfg llm.GenerationConfig) (string, error) {
	var last string
	for _, m := range messages {
		if m.Role == llm.RoleUser {
			last = m.Content
		}
	}
	return p.Generate(ctx, last, cfg)
}
