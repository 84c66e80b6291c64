package main

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/stellarlinkco/capeval/internal/config"
	"github.com/stellarlinkco/capeval/internal/store"
)

type historyOptions struct {
	model string
	limit int
	since string
}

func newHistoryCmd(st *cliState) *cobra.Command {
	var opts historyOptions

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show evaluation run history",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(st.configPath)
			if err != nil {
				return err
			}
			st.cfg = cfg
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryList(cmd, st, &opts)
		},
	}

	cmd.Flags().StringVar(&opts.model, "model", "", "model name to filter")
	cmd.Flags().IntVar(&opts.limit, "limit", 20, "max runs to list")
	cmd.Flags().StringVar(&opts.since, "since", "", "only runs since date (YYYY-MM-DD or RFC3339)")

	cmd.AddCommand(newHistoryShowCmd(st))
	return cmd
}

func newHistoryShowCmd(st *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show details for a run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryShow(cmd, st, args[0])
		},
	}
}

func runHistoryList(cmd *cobra.Command, st *cliState, opts *historyOptions) error {
	if st == nil || st.cfg == nil {
		return fmt.Errorf("history: missing config (internal error)")
	}
	if opts == nil {
		return fmt.Errorf("history: nil options")
	}

	since, err := parseSince(opts.since)
	if err != nil {
		return err
	}

	stor, err := openStore(st.cfg)
	if err != nil {
		return err
	}
	defer stor.Close()

	filter := store.RunFilter{
		ModelName: strings.TrimSpace(opts.model),
		Since:     since,
		Limit:     opts.limit,
	}
	runs, err := stor.ListRuns(cmd.Context(), filter)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		_, _ = fmt.Fprintln(out, "No runs found.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN_ID\tMODEL\tSTARTED\tSCORE\tPASS_RATE\tTESTS")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.3f\t%.1f%%\t%d\n",
			r.ID,
			r.ModelName,
			formatTime(r.StartedAt),
			r.OverallScore,
			r.OverallPassRate,
			r.TotalTests,
		)
	}
	return tw.Flush()
}

func runHistoryShow(cmd *cobra.Command, st *cliState, runID string) error {
	if st == nil || st.cfg == nil {
		return fmt.Errorf("history: missing config (internal error)")
	}

	runID = strings.TrimSpace(runID)
	if runID == "" {
		return fmt.Errorf("history: missing run id")
	}

	stor, err := openStore(st.cfg)
	if err != nil {
		return err
	}
	defer stor.Close()

	run, err := stor.GetRun(cmd.Context(), runID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("history: run %q not found", runID)
		}
		return err
	}

	summaries, err := stor.GetSummaries(cmd.Context(), runID)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Run: %s\n", run.ID)
	_, _ = fmt.Fprintf(out, "Model: %s\n", run.ModelName)
	_, _ = fmt.Fprintf(out, "Started: %s\n", formatTime(run.StartedAt))
	_, _ = fmt.Fprintf(out, "Finished: %s\n", formatTime(run.FinishedAt))
	_, _ = fmt.Fprintf(out, "Tests: %d passed=%d failed=%d score=%.3f\n",
		run.TotalTests, run.PassedTests, run.FailedTests, run.OverallScore)
	for _, rec := range run.Recommendations {
		_, _ = fmt.Fprintf(out, "- %s\n", rec)
	}

	for _, s := range summaries {
		_, _ = fmt.Fprintf(out, "\nEvaluator: %s\n", s.Evaluator)
		_, _ = fmt.Fprintf(out, "Cases: %d passed=%d failed=%d avg_score=%.3f pass_rate=%.1f%%\n",
			s.TotalTests, s.PassedTests, s.FailedTests, s.AverageScore, s.PassRate*100)

		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "CASE\tRESULT\tSCORE\tTIME(ms)\tERROR")
		for _, cr := range s.Cases {
			fmt.Fprintf(tw, "%s\t%s\t%.3f\t%d\t%s\n",
				cr.TestName,
				statusLabel(cr.Passed),
				cr.Score,
				cr.ExecutionMs,
				cr.Error,
			)
		}
		_ = tw.Flush()
	}

	return nil
}

func parseSince(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	layouts := []string{time.RFC3339, "2006-01-02"}
	for _, layout := range layouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("history: invalid --since %q (expected YYYY-MM-DD or RFC3339)", s)
}
