package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/stellarlinkco/capeval/internal/report"
	"github.com/stellarlinkco/capeval/internal/runner"
)

type OutputFormat string

const (
	FormatTable OutputFormat = "table"
	FormatJSON  OutputFormat = "json"
)

func parseOutputFormat(s string) OutputFormat {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "table":
		return FormatTable
	case "json", "jsonl":
		return FormatJSON
	default:
		return ""
	}
}

func resolveOutputFormat(flagValue, configValue string) (OutputFormat, error) {
	if strings.TrimSpace(flagValue) != "" {
		out := parseOutputFormat(flagValue)
		if out == "" {
			return "", fmt.Errorf("invalid --output %q (expected table|json)", flagValue)
		}
		return out, nil
	}
	if out := parseOutputFormat(configValue); out != "" {
		return out, nil
	}
	return FormatTable, nil
}

func printOverallTable(out io.Writer, rep *runner.OverallReport) error {
	if rep == nil {
		return fmt.Errorf("output: nil report")
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "EVALUATOR\tTESTS\tPASSED\tFAILED\tAVG_SCORE\tTIME(s)")
	for _, s := range rep.Summaries {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%.3f\t%.1f\n",
			s.Evaluator,
			s.TotalTests,
			s.PassedTests,
			s.FailedTests,
			s.AverageScore,
			s.TotalExecutionTime.Seconds(),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	m := rep.Metrics
	fmt.Fprintf(out, "\nOverall: score=%.3f pass_rate=%.1f%% (%d/%d tests, %.1fs)\n",
		m.OverallScore,
		m.OverallPassRate,
		m.TotalPassed,
		m.TotalTests,
		m.TotalExecutionTime.Seconds(),
	)

	for _, rec := range rep.Recommendations {
		fmt.Fprintf(out, "- %s\n", rec)
	}
	return nil
}

func printOverallJSON(out io.Writer, rep *runner.OverallReport) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(report.FromOverall(rep))
}

func formatTime(ts time.Time) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.UTC().Format(time.RFC3339)
}

func statusLabel(passed bool) string {
	if passed {
		return "PASS"
	}
	return "FAIL"
}
