package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/stellarlinkco/wordbench/internal/bench"
	"github.com/stellarlinkco/wordbench/internal/ci"
	"github.com/stellarlinkco/wordbench/internal/config"
	"github.com/stellarlinkco/wordbench/internal/llm"
	"github.com/stellarlinkco/wordbench/internal/promptset"
	"github.com/stellarlinkco/wordbench/internal/store"
	"github.com/stellarlinkco/wordbench/internal/task"
)

type runOptions struct {
	taskName    string
	promptsFile string
	models      []string
	provider    string
	targetWord  string
	wordForms   []string
	output      string
}

func newRunCmd(st *cliState) *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a word-usage task against one or more models",
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
			return runRun(cmd, st, &opts)
		},
	}

	cmd.Flags().StringVar(&opts.taskName, "task", "", "task name: word-usage|word-usage-original")
	cmd.Flags().StringVar(&opts.promptsFile, "prompts-file", "", "YAML file defining a custom prompt set")
	cmd.Flags().StringSliceVar(&opts.models, "model", nil, "model name(s), comma-separated for comparative runs")
	cmd.Flags().StringVar(&opts.provider, "provider", "", "provider name (overrides config)")
	cmd.Flags().StringVar(&opts.targetWord, "target-word", "", "word to test for (default \"delve\")")
	cmd.Flags().StringSliceVar(&opts.wordForms, "word-forms", nil, "explicit surface forms to match (overrides inflection rules)")
	cmd.Flags().StringVar(&opts.output, "output", "", "output format: table|json")

	cmd.MarkFlagsOneRequired("task", "prompts-file")
	cmd.MarkFlagsMutuallyExclusive("task", "prompts-file")

	return cmd
}

func runRun(cmd *cobra.Command, st *cliState, opts *runOptions) error {
	if st == nil || st.cfg == nil {
		return fmt.Errorf("run: missing config (internal error)")
	}
	if opts == nil {
		return fmt.Errorf("run: nil options")
	}

	var t *task.Task
	switch {
	case strings.TrimSpace(opts.promptsFile) != "":
		set, err := promptset.LoadFromFile(opts.promptsFile)
		if err != nil {
			return fmt.Errorf("run: %w", err)
		}
		t = set.Task()
		if strings.TrimSpace(opts.targetWord) == "" {
			opts.targetWord = set.TargetWord
		}
		if len(opts.wordForms) == 0 {
			opts.wordForms = set.WordForms
		}
	default:
		var ok bool
		t, ok = task.DefaultRegistry().Get(opts.taskName)
		if !ok {
			return fmt.Errorf("run: unknown task %q (expected word-usage|word-usage-original)", opts.taskName)
		}
	}

	output, err := resolveOutputFormat(opts.output)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	models := compactModels(opts.models)
	if len(models) == 0 {
		models = []string{""}
	}

	// Resolve every provider up front so a missing credential fails
	// before any prompt is dispatched.
	type target struct {
		provider llm.Provider
		model    string
	}
	targets := make([]target, 0, len(models))
	for _, m := range models {
		provider, modelName, err := llm.ProviderFor(st.cfg, opts.provider, m)
		if err != nil {
			return fmt.Errorf("run: %w", err)
		}
		targets = append(targets, target{provider: provider, model: modelName})
	}

	db, err := store.Open(st.cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	taskOpts := task.Options{
		TargetWord: strings.TrimSpace(opts.targetWord),
		WordForms:  opts.wordForms,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	out := cmd.OutOrStdout()

	for _, tgt := range targets {
		r := &bench.Runner{
			Provider:    tgt.provider,
			MaxTokens:   st.cfg.Bench.MaxTokens,
			Temperature: st.cfg.Bench.Temperature,
			Timeout:     st.cfg.Bench.Timeout,
		}

		res, runErr := r.Run(ctx, t, taskOpts)
		if res == nil {
			return runErr
		}
		if runErr != nil {
			return runErr
		}
		res.Model = tgt.model

		run := &store.Run{
			Model:      tgt.model,
			Provider:   tgt.provider.Name(),
			Task:       res.Task,
			TargetWord: res.TargetWord,
			UsageRate:  res.UsageRate,
			Hits:       res.Hits,
			Samples:    len(res.Samples),
			Latency:    res.TotalTime.Milliseconds(),
			Tokens:     res.TotalTokens,
			EvalDate:   time.Now().UTC(),
		}
		if err := db.SaveRun(cmd.Context(), run, transcriptsFromResult(res)); err != nil {
			return err
		}

		if ci.DetectCI() {
			ci.SetOutput("usage_rate", fmt.Sprintf("%.4f", res.UsageRate))
			if err := ci.SetJobSummary(ci.RunSummary(run.ID, res)); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: job summary: %v\n", err)
			}
		}

		_, _ = fmt.Fprint(out, FormatTaskResult(res, run.ID, output))
	}

	return nil
}

func compactModels(in []string) []string {
	out := make([]string, 0, len(in))
	for _, m := range in {
		m = strings.TrimSpace(m)
		if m == "" {
			continue
		}
		out = append(out, m)
	}
	return out
}

func transcriptsFromResult(res *bench.TaskResult) []store.Transcript {
	if res == nil {
		return nil
	}
	out := make([]store.Transcript, 0, len(res.Samples))
	for _, s := range res.Samples {
		out = append(out, store.Transcript{
			SampleID:    s.ID,
			Prompt:      s.Prompt,
			Response:    s.Response,
			Score:       s.Score,
			MatchedForm: s.MatchedForm,
			Error:       s.Error,
		})
	}
	return out
}
