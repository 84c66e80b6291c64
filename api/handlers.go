package api

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stellarlinkco/capeval/internal/llm"
	"github.com/stellarlinkco/capeval/internal/report"
	"github.com/stellarlinkco/capeval/internal/runner"
	"github.com/stellarlinkco/capeval/internal/store"
)

type runRequest struct {
	Model       string   `json:"model,omitempty"`
	Evaluators  []string `json:"evaluators,omitempty"`
	Threshold   *float64 `json:"threshold,omitempty"`
	MaxTokens   *int     `json:"max_tokens,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
	TopP        *float64 `json:"top_p,omitempty"`
}

type evaluatorInfo struct {
	Name      string             `json:"name"`
	TestCount int                `json:"test_count"`
	Weights   map[string]float64 `json:"weights"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleListEvaluators(c *gin.Context) {
	evals := runner.DefaultEvaluators()
	out := make([]evaluatorInfo, 0, len(evals))
	for _, e := range evals {
		weights := make(map[string]float64, len(e.Weights()))
		for metric, w := range e.Weights() {
			weights[metric] = w
		}
		out = append(out, evaluatorInfo{
			Name:      e.Name(),
			TestCount: len(e.TestCases()),
			Weights:   weights,
		})
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleStartRun(c *gin.Context) {
	if s == nil || s.store == nil || s.provider == nil || s.config == nil {
		respondError(c, http.StatusInternalServerError, errors.New("server not initialized"))
		return
	}

	var req runRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	threshold := s.config.Evaluation.PassThreshold
	if req.Threshold != nil {
		threshold = *req.Threshold
	}
	if threshold < 0 || threshold > 1 {
		respondError(c, http.StatusBadRequest, fmt.Errorf("threshold must be between 0 and 1 (got %v)", threshold))
		return
	}

	genCfg := llm.GenerationFromConfig(s.config)
	if req.MaxTokens != nil {
		if *req.MaxTokens <= 0 {
			respondError(c, http.StatusBadRequest, fmt.Errorf("max_tokens must be > 0 (got %d)", *req.MaxTokens))
			return
		}
		genCfg.MaxTokens = *req.MaxTokens
	}
	if req.Temperature != nil {
		genCfg.Temperature = *req.Temperature
	}
	if req.TopP != nil {
		genCfg.TopP = *req.TopP
	}

	modelName := strings.TrimSpace(req.Model)
	if modelName == "" {
		modelName = s.provider.Name()
	}

	selection := make([]string, 0, len(req.Evaluators))
	for _, name := range req.Evaluators {
		name = strings.TrimSpace(name)
		if name == "" {
			respondError(c, http.StatusBadRequest, errors.New("empty evaluator name"))
			return
		}
		selection = append(selection, name)
	}

	r := runner.New(s.provider, genCfg, runner.Config{
		ModelName:     modelName,
		PassThreshold: &threshold,
	})

	ctx := c.Request.Context()
	startedAt := time.Now().UTC()

	rep, err := r.RunAll(ctx, selection)
	if err != nil {
		if isSelectionError(err) {
			respondError(c, http.StatusBadRequest, err)
			return
		}
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	runID, err := store.SaveReport(ctx, s.store, rep, startedAt)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"run_id": runID,
		"report": report.FromOverall(rep),
	})
}

func (s *Server) handleListRuns(c *gin.Context) {
	if s == nil || s.store == nil {
		respondError(c, http.StatusInternalServerError, errors.New("server not initialized"))
		return
	}

	limit, err := parseLimitParam(c.Query("limit"), 20)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	since, err := parseTimeParam(c.Query("since"))
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	until, err := parseTimeParam(c.Query("until"))
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	filter := store.RunFilter{
		ModelName: strings.TrimSpace(c.Query("model")),
		Since:     since,
		Until:     until,
		Limit:     limit,
	}

	runs, err := s.store.ListRuns(c.Request.Context(), filter)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, runs)
}

func (s *Server) handleGetRun(c *gin.Context) {
	if s == nil || s.store == nil {
		respondError(c, http.StatusInternalServerError, errors.New("server not initialized"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		respondError(c, http.StatusBadRequest, errors.New("missing run id"))
		return
	}

	run, err := s.store.GetRun(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(c, http.StatusNotFound, fmt.Errorf("run %q not found", id))
			return
		}
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, run)
}

func (s *Server) handleGetRunSummaries(c *gin.Context) {
	if s == nil || s.store == nil {
		respondError(c, http.StatusInternalServerError, errors.New("server not initialized"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		respondError(c, http.StatusBadRequest, errors.New("missing run id"))
		return
	}

	if _, err := s.store.GetRun(c.Request.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(c, http.StatusNotFound, fmt.Errorf("run %q not found", id))
			return
		}
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	summaries, err := s.store.GetSummaries(c.Request.Context(), id)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Evaluator < summaries[j].Evaluator
	})

	c.JSON(http.StatusOK, summaries)
}

func (s *Server) handleGetEvaluatorHistory(c *gin.Context) {
	if s == nil || s.store == nil {
		respondError(c, http.StatusInternalServerError, errors.New("server not initialized"))
		return
	}

	name := strings.TrimSpace(c.Param("evaluator"))
	if name == "" {
		respondError(c, http.StatusBadRequest, errors.New("missing evaluator name"))
		return
	}

	limit, err := parseLimitParam(c.Query("limit"), 20)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	entries, err := s.store.EvaluatorHistory(c.Request.Context(), name, limit)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

func (s *Server) handleGetLeaderboard(c *gin.Context) {
	if s == nil || s.store == nil {
		respondError(c, http.StatusInternalServerError, errors.New("server not initialized"))
		return
	}

	limit := 20
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			respondError(c, http.StatusBadRequest, errors.New("invalid limit"))
			return
		}
		if n > 100 {
			n = 100
		}
		limit = n
	}

	entries, err := s.store.Leaderboard(c.Request.Context(), limit)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

// isSelectionError distinguishes bad request input from backend
// failures. The runner rejects unknown or duplicated evaluator names
// before any generation happens.
func isSelectionError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "unknown evaluator") || strings.Contains(msg, "selected twice")
}

func respondError(c *gin.Context, status int, err error) {
	if err == nil {
		c.Status(status)
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func parseLimitParam(raw string, fallback int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid limit %q", raw)
	}
	if v <= 0 {
		return 0, fmt.Errorf("limit must be > 0")
	}
	return v, nil
}

func parseTimeParam(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	layouts := []string{time.RFC3339, "2006-01-02"}
	for _, layout := range layouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q (expected RFC3339 or YYYY-MM-DD)", raw)
}
