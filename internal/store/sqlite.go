package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const defaultHistoryLimit = 50

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB

	insertRunStmt     *sql.Stmt
	insertSummaryStmt *sql.Stmt
	getRunStmt        *sql.Stmt
	summariesByRun    *sql.Stmt
	historyStmt       *sql.Stmt
	leaderboardStmt   *sql.Stmt
}

// NewSQLiteStore opens or creates a SQLite store at the given path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("store: empty sqlite path")
	}
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("store: create sqlite dir: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite: %w", err)
	}
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: ping sqlite: %w", err)
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	st := &SQLiteStore{db: db}
	if err := st.prepareStatements(); err != nil {
		_ = st.Close()
		return nil, err
	}
	return st, nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`PRAGMA foreign_keys = ON`,
		`PRAGMA journal_mode = WAL`,
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			model_name TEXT NOT NULL,
			started_at INTEGER NOT NULL,
			finished_at INTEGER NOT NULL,
			total_tests INTEGER NOT NULL,
			passed_tests INTEGER NOT NULL,
			failed_tests INTEGER NOT NULL,
			overall_score REAL NOT NULL,
			overall_pass_rate REAL NOT NULL,
			recommendations TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS evaluator_summaries (
			id TEXT PRIMARY KEY,
			run_id TEXT NOT NULL,
			evaluator TEXT NOT NULL,
			model_name TEXT NOT NULL,
			total_tests INTEGER NOT NULL,
			passed_tests INTEGER NOT NULL,
			failed_tests INTEGER NOT NULL,
			average_score REAL NOT NULL,
			pass_rate REAL NOT NULL,
			total_execution_ms INTEGER NOT NULL,
			created_at INTEGER NOT NULL,
			case_results BLOB NOT NULL,
			FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_summaries_run_id ON evaluator_summaries(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_summaries_evaluator ON evaluator_summaries(evaluator, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_model ON runs(model_name, started_at)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("store: init schema: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStore) prepareStatements() error {
	if s == nil || s.db == nil {
		return errors.New("store: nil sqlite store")
	}

	ctx := context.Background()
	type stmtSpec struct {
		dst    **sql.Stmt
		query  string
		errFmt string
	}

	specs := []stmtSpec{
		{
			dst: &s.insertRunStmt,
			query: `
				INSERT INTO runs (
					id, model_name, started_at, finished_at, total_tests, passed_tests,
					failed_tests, overall_score, overall_pass_rate, recommendations
				) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			`,
			errFmt: "store: prepare insert run: %w",
		},
		{
			dst: &s.insertSummaryStmt,
			query: `
				INSERT INTO evaluator_summaries (
					id, run_id, evaluator, model_name, total_tests, passed_tests, failed_tests,
					average_score, pass_rate, total_execution_ms, created_at, case_results
				) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			`,
			errFmt: "store: prepare insert summary: %w",
		},
		{
			dst: &s.getRunStmt,
			query: `
				SELECT id, model_name, started_at, finished_at, total_tests, passed_tests,
					failed_tests, overall_score, overall_pass_rate, recommendations
				FROM runs WHERE id = ?
			`,
			errFmt: "store: prepare get run: %w",
		},
		{
			dst: &s.summariesByRun,
			query: `
				SELECT id, run_id, evaluator, model_name, total_tests, passed_tests, failed_tests,
					average_score, pass_rate, total_execution_ms, created_at, case_results
				FROM evaluator_summaries
				WHERE run_id = ?
				ORDER BY created_at ASC, evaluator ASC
			`,
			errFmt: "store: prepare get summaries: %w",
		},
		{
			dst: &s.historyStmt,
			query: `
				SELECT id, run_id, evaluator, model_name, total_tests, passed_tests, failed_tests,
					average_score, pass_rate, total_execution_ms, created_at, case_results
				FROM evaluator_summaries
				WHERE evaluator = ?
				ORDER BY created_at DESC
				LIMIT ?
			`,
			errFmt: "store: prepare evaluator history: %w",
		},
		{
			dst: &s.leaderboardStmt,
			query: `
				SELECT model_name, COUNT(*), MAX(overall_score), AVG(overall_score), MAX(finished_at)
				FROM runs
				GROUP BY model_name
				ORDER BY MAX(overall_score) DESC, model_name ASC
				LIMIT ?
			`,
			errFmt: "store: prepare leaderboard: %w",
		},
	}

	for _, spec := range specs {
		stmt, err := s.db.PrepareContext(ctx, spec.query)
		if err != nil {
			return fmt.Errorf(spec.errFmt, err)
		}
		*spec.dst = stmt
	}
	return nil
}

// Close releases database resources.
func (s *SQLiteStore) Close() error {
	if s == nil {
		return nil
	}
	stmts := []*sql.Stmt{
		s.insertRunStmt,
		s.insertSummaryStmt,
		s.getRunStmt,
		s.summariesByRun,
		s.historyStmt,
		s.leaderboardStmt,
	}
	for _, stmt := range stmts {
		if stmt != nil {
			_ = stmt.Close()
		}
	}
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun persists a run summary.
func (s *SQLiteStore) SaveRun(ctx context.Context, run *RunRecord) error {
	if s == nil {
		return errors.New("store: nil sqlite store")
	}
	if ctx == nil {
		return errors.New("store: nil context")
	}
	if run == nil {
		return errors.New("store: nil run")
	}
	id := strings.TrimSpace(run.ID)
	if id == "" {
		return errors.New("store: empty run id")
	}
	if strings.TrimSpace(run.ModelName) == "" {
		return errors.New("store: empty model name")
	}
	if run.StartedAt.IsZero() || run.FinishedAt.IsZero() {
		return errors.New("store: missing run timestamps")
	}

	recsJSON, err := json.Marshal(run.Recommendations)
	if err != nil {
		return fmt.Errorf("store: marshal recommendations: %w", err)
	}

	_, err = s.insertRunStmt.ExecContext(
		ctx,
		id,
		run.ModelName,
		run.StartedAt.UTC().UnixMilli(),
		run.FinishedAt.UTC().UnixMilli(),
		run.TotalTests,
		run.PassedTests,
		run.FailedTests,
		run.OverallScore,
		run.OverallPassRate,
		string(recsJSON),
	)
	if err != nil {
		return fmt.Errorf("store: insert run: %w", err)
	}
	return nil
}

// SaveSummary persists one evaluator's summary.
func (s *SQLiteStore) SaveSummary(ctx context.Context, summary *SummaryRecord) error {
	if s == nil {
		return errors.New("store: nil sqlite store")
	}
	if ctx == nil {
		return errors.New("store: nil context")
	}
	if summary == nil {
		return errors.New("store: nil summary")
	}
	if strings.TrimSpace(summary.ID) == "" || strings.TrimSpace(summary.RunID) == "" {
		return errors.New("store: missing summary id")
	}
	if strings.TrimSpace(summary.Evaluator) == "" {
		return errors.New("store: missing evaluator name")
	}

	createdAt := summary.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	caseJSON, err := json.Marshal(summary.Cases)
	if err != nil {
		return fmt.Errorf("store: marshal case results: %w", err)
	}

	_, err = s.insertSummaryStmt.ExecContext(
		ctx,
		summary.ID,
		summary.RunID,
		summary.Evaluator,
		summary.ModelName,
		summary.TotalTests,
		summary.PassedTests,
		summary.FailedTests,
		summary.AverageScore,
		summary.PassRate,
		summary.TotalExecutionMs,
		createdAt.UTC().UnixMilli(),
		caseJSON,
	)
	if err != nil {
		return fmt.Errorf("store: insert summary: %w", err)
	}
	return nil
}

// GetRun loads a run by id.
func (s *SQLiteStore) GetRun(ctx context.Context, id string) (*RunRecord, error) {
	if s == nil {
		return nil, errors.New("store: nil sqlite store")
	}
	if ctx == nil {
		return nil, errors.New("store: nil context")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.New("store: empty run id")
	}

	run, err := scanRun(s.getRunStmt.QueryRowContext(ctx, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("store: get run: %w", err)
	}
	return run, nil
}

// ListRuns returns runs matching the filter, newest first.
func (s *SQLiteStore) ListRuns(ctx context.Context, filter RunFilter) ([]*RunRecord, error) {
	if s == nil {
		return nil, errors.New("store: nil sqlite store")
	}
	if ctx == nil {
		return nil, errors.New("store: nil context")
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	var sb strings.Builder
	sb.WriteString(`SELECT id, model_name, started_at, finished_at, total_tests, passed_tests,
		failed_tests, overall_score, overall_pass_rate, recommendations FROM runs WHERE 1=1`)

	var args []any
	if name := strings.TrimSpace(filter.ModelName); name != "" {
		sb.WriteString(` AND model_name = ?`)
		args = append(args, name)
	}
	if !filter.Since.IsZero() {
		sb.WriteString(` AND started_at >= ?`)
		args = append(args, filter.Since.UTC().UnixMilli())
	}
	if !filter.Until.IsZero() {
		sb.WriteString(` AND started_at <= ?`)
		args = append(args, filter.Until.UTC().UnixMilli())
	}
	sb.WriteString(` ORDER BY started_at DESC LIMIT ?`)
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("store: list runs: %w", err)
	}
	defer rows.Close()

	var out []*RunRecord
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("store: scan run: %w", err)
		}
		out = append(out, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: list runs: %w", err)
	}
	return out, nil
}

// GetSummaries lists evaluator summaries for a run.
func (s *SQLiteStore) GetSummaries(ctx context.Context, runID string) ([]*SummaryRecord, error) {
	if s == nil {
		return nil, errors.New("store: nil sqlite store")
	}
	if ctx == nil {
		return nil, errors.New("store: nil context")
	}
	runID = strings.TrimSpace(runID)
	if runID == "" {
		return nil, errors.New("store: empty run id")
	}

	rows, err := s.summariesByRun.QueryContext(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("store: get summaries: %w", err)
	}
	defer rows.Close()
	return scanSummaryRows(rows)
}

// EvaluatorHistory returns recent summaries for one evaluator.
func (s *SQLiteStore) EvaluatorHistory(ctx context.Context, evaluator string, limit int) ([]*SummaryRecord, error) {
	if s == nil {
		return nil, errors.New("store: nil sqlite store")
	}
	if ctx == nil {
		return nil, errors.New("store: nil context")
	}
	evaluator = strings.TrimSpace(evaluator)
	if evaluator == "" {
		return nil, errors.New("store: empty evaluator name")
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	rows, err := s.historyStmt.QueryContext(ctx, evaluator, limit)
	if err != nil {
		return nil, fmt.Errorf("store: evaluator history: %w", err)
	}
	defer rows.Close()
	return scanSummaryRows(rows)
}

// Leaderboard ranks models by their best overall score.
func (s *SQLiteStore) Leaderboard(ctx context.Context, limit int) ([]*LeaderboardEntry, error) {
	if s == nil {
		return nil, errors.New("store: nil sqlite store")
	}
	if ctx == nil {
		return nil, errors.New("store: nil context")
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	rows, err := s.leaderboardStmt.QueryContext(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("store: leaderboard: %w", err)
	}
	defer rows.Close()

	var out []*LeaderboardEntry
	for rows.Next() {
		var (
			entry     LeaderboardEntry
			lastRunMS int64
		)
		if err := rows.Scan(&entry.ModelName, &entry.Runs, &entry.BestScore, &entry.AvgScore, &lastRunMS); err != nil {
			return nil, fmt.Errorf("store: scan leaderboard: %w", err)
		}
		entry.LastRun = time.UnixMilli(lastRunMS).UTC()
		out = append(out, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: leaderboard: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*RunRecord, error) {
	var (
		run          RunRecord
		startedAtMS  int64
		finishedAtMS int64
		recsJSON     sql.NullString
	)
	if err := row.Scan(
		&run.ID,
		&run.ModelName,
		&startedAtMS,
		&finishedAtMS,
		&run.TotalTests,
		&run.PassedTests,
		&run.FailedTests,
		&run.OverallScore,
		&run.OverallPassRate,
		&recsJSON,
	); err != nil {
		return nil, err
	}
	run.StartedAt = time.UnixMilli(startedAtMS).UTC()
	run.FinishedAt = time.UnixMilli(finishedAtMS).UTC()
	if recsJSON.Valid && recsJSON.String != "" && recsJSON.String != "null" {
		if err := json.Unmarshal([]byte(recsJSON.String), &run.Recommendations); err != nil {
			return nil, fmt.Errorf("decode recommendations: %w", err)
		}
	}
	return &run, nil
}

func scanSummaryRows(rows *sql.Rows) ([]*SummaryRecord, error) {
	var out []*SummaryRecord
	for rows.Next() {
		var (
			rec         SummaryRecord
			createdAtMS int64
			caseJSON    []byte
		)
		if err := rows.Scan(
			&rec.ID,
			&rec.RunID,
			&rec.Evaluator,
			&rec.ModelName,
			&rec.TotalTests,
			&rec.PassedTests,
			&rec.FailedTests,
			&rec.AverageScore,
			&rec.PassRate,
			&rec.TotalExecutionMs,
			&createdAtMS,
			&caseJSON,
		); err != nil {
			return nil, fmt.Errorf("store: scan summary: %w", err)
		}
		rec.CreatedAt = time.UnixMilli(createdAtMS).UTC()
		if len(caseJSON) > 0 {
			if err := json.Unmarshal(caseJSON, &rec.Cases); err != nil {
				return nil, fmt.Errorf("store: decode case results: %w", err)
			}
		}
		out = append(out, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: scan summaries: %w", err)
	}
	return out, nil
}
