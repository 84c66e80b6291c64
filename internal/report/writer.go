package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/stellarlinkco/capeval/internal/evaluator"
	"github.com/stellarlinkco/capeval/internal/runner"
)

const fileTimestamp = "20060102_150405"

// Writer saves reports under Dir, creating it on first use. File names
// carry a timestamp so repeated runs never overwrite each other.
type Writer struct {
	Dir string

	// now is swappable for tests.
	now func() time.Time
}

// NewWriter returns a Writer targeting dir.
func NewWriter(dir string) *Writer {
	return &Writer{Dir: dir, now: time.Now}
}

// WriteSummary writes a single-evaluator report as
// <evaluator>_results_<timestamp>.json and returns the file path.
func (w *Writer) WriteSummary(s *evaluator.Summary) (string, error) {
	if s == nil {
		return "", fmt.Errorf("report: summary is nil")
	}
	name := fmt.Sprintf("%s_results_%s.json", s.Evaluator, w.timestamp())
	return w.write(name, FromSummary(s))
}

// WriteOverall writes a full-run report as
// overall_summary_<timestamp>.json and returns the file path.
func (w *Writer) WriteOverall(rep *runner.OverallReport) (string, error) {
	if rep == nil {
		return "", fmt.Errorf("report: report is nil")
	}
	name := fmt.Sprintf("overall_summary_%s.json", w.timestamp())
	return w.write(name, FromOverall(rep))
}

func (w *Writer) write(name string, v any) (string, error) {
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return "", fmt.Errorf("report: create %q: %w", w.Dir, err)
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("report: marshal %q: %w", name, err)
	}
	path := filepath.Join(w.Dir, name)
	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("report: write %q: %w", path, err)
	}
	return path, nil
}

func (w *Writer) timestamp() string {
	now := w.now
	if now == nil {
		now = time.Now
	}
	return now().UTC().Format(fileTimestamp)
}
