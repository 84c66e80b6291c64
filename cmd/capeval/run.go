package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/stellarlinkco/capeval/internal/config"
	"github.com/stellarlinkco/capeval/internal/llm"
	"github.com/stellarlinkco/capeval/internal/report"
	"github.com/stellarlinkco/capeval/internal/runner"
	"github.com/stellarlinkco/capeval/internal/store"
)

type runOptions struct {
	evaluators  []string
	model       string
	threshold   float64
	maxTokens   int
	temperature float64
	topP        float64
	output      string
	outputDir   string
	noSave      bool
}

func newRunCmd(st *cliState) *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run capability evaluations",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(st.configPath)
			if err != nil {
				return err
			}
			st.cfg = cfg
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEvaluations(cmd, st, &opts)
		},
	}

	cmd.Flags().StringSliceVar(&opts.evaluators, "evaluator", nil, "evaluator to run (repeatable; default all)")
	cmd.Flags().StringVar(&opts.model, "model", "", "model label for reports (default: provider name)")
	cmd.Flags().Float64Var(&opts.threshold, "threshold", -1, "pass threshold between 0 and 1 (overrides config)")
	cmd.Flags().IntVar(&opts.maxTokens, "max-tokens", -1, "max tokens per generation (overrides config)")
	cmd.Flags().Float64Var(&opts.temperature, "temperature", -1, "sampling temperature (overrides config)")
	cmd.Flags().Float64Var(&opts.topP, "top-p", -1, "nucleus sampling parameter (overrides config)")
	cmd.Flags().StringVar(&opts.output, "output", "", "output format: table|json (overrides config)")
	cmd.Flags().StringVar(&opts.outputDir, "output-dir", "", "directory for result files (overrides config)")
	cmd.Flags().BoolVar(&opts.noSave, "no-save", false, "skip persisting the run to storage")

	return cmd
}

func runEvaluations(cmd *cobra.Command, st *cliState, opts *runOptions) error {
	if st == nil {
		return fmt.Errorf("run: nil state")
	}
	if opts == nil {
		return fmt.Errorf("run: nil options")
	}
	if st.cfg == nil {
		return fmt.Errorf("run: missing config (internal error)")
	}

	output, err := resolveOutputFormat(opts.output, st.cfg.Evaluation.OutputFormat)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	threshold := st.cfg.Evaluation.PassThreshold
	if opts.threshold >= 0 {
		threshold = opts.threshold
	}
	if threshold < 0 || threshold > 1 {
		return fmt.Errorf("run: threshold must be between 0 and 1 (got %v)", threshold)
	}

	genCfg := llm.GenerationFromConfig(st.cfg)
	if opts.maxTokens >= 0 {
		if opts.maxTokens == 0 {
			return fmt.Errorf("run: max-tokens must be > 0")
		}
		genCfg.MaxTokens = opts.maxTokens
	}
	if opts.temperature >= 0 {
		genCfg.Temperature = opts.temperature
	}
	if opts.topP >= 0 {
		genCfg.TopP = opts.topP
	}

	provider, err := defaultProviderFromConfig(st.cfg)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	modelName := strings.TrimSpace(opts.model)
	if modelName == "" {
		modelName = provider.Name()
	}

	out := cmd.OutOrStdout()
	runCfg := runner.Config{
		ModelName:     modelName,
		PassThreshold: &threshold,
	}
	if output == FormatTable {
		runCfg.Progress = out
	}

	outputDir := strings.TrimSpace(opts.outputDir)
	if outputDir == "" {
		outputDir = st.cfg.Evaluation.OutputDir
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	startedAt := time.Now().UTC()
	r := runner.New(provider, genCfg, runCfg)
	rep, err := r.RunAll(ctx, opts.evaluators)
	if err != nil {
		return err
	}

	writer := report.NewWriter(outputDir)
	for _, summary := range rep.Summaries {
		if _, err := writer.WriteSummary(summary); err != nil {
			return err
		}
	}
	overallPath, err := writer.WriteOverall(rep)
	if err != nil {
		return err
	}

	if !opts.noSave {
		stor, err := openStore(st.cfg)
		if err != nil {
			return err
		}
		runID, err := store.SaveReport(ctx, stor, rep, startedAt)
		closeErr := stor.Close()
		if err != nil {
			return err
		}
		if closeErr != nil {
			return closeErr
		}
		if output == FormatTable {
			fmt.Fprintf(out, "Run saved as %s\n", runID)
		}
	}

	switch output {
	case FormatJSON:
		return printOverallJSON(out, rep)
	default:
		if err := printOverallTable(out, rep); err != nil {
			return err
		}
		fmt.Fprintf(out, "Results written to %s\n", overallPath)
		return nil
	}
}
