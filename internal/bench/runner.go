package bench

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/stellarlinkco/wordbench/internal/llm"
	"github.com/stellarlinkco/wordbench/internal/scorer"
	"github.com/stellarlinkco/wordbench/internal/task"
)

// Runner executes one task's samples against a provider and scores each
// response for target-word usage.
type Runner struct {
	Provider    llm.Provider
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// TaskResult aggregates one model's run over a task.
type TaskResult struct {
	Model       string
	Task        string
	TargetWord  string
	UsageRate   float64
	Hits        int
	TotalTime   time.Duration
	TotalTokens int
	Samples     []SampleResult
}

// SampleResult records one prompt/response/score triple.
type SampleResult struct {
	ID          string
	Prompt      string
	Response    string
	Score       float64
	Found       bool
	MatchedForm string
	Latency     time.Duration
	Tokens      int
	Error       string
}

func (r *Runner) Run(ctx context.Context, t *task.Task, opts task.Options) (*TaskResult, error) {
	if r == nil {
		return nil, errors.New("bench: nil runner")
	}
	if ctx == nil {
		return nil, errors.New("bench: nil context")
	}
	if r.Provider == nil {
		return nil, errors.New("bench: nil provider")
	}
	if t == nil {
		return nil, errors.New("bench: nil task")
	}
	if t.Samples == nil {
		return nil, errors.New("bench: task has no sample source")
	}

	start := time.Now()

	samples := t.Samples(opts)
	if len(samples) == 0 {
		return nil, errors.New("bench: empty task")
	}

	sc := scorer.WordUsage{Forms: opts.WordForms}
	target := opts.TargetOrDefault()

	out := &TaskResult{
		Model:      strings.TrimSpace(r.Provider.Name()),
		Task:       strings.TrimSpace(t.Name),
		TargetWord: target,
		Samples:    make([]SampleResult, 0, len(samples)),
	}

	maxTokens := r.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	hits := 0
	totalTokens := 0

	for _, s := range samples {
		if err := ctx.Err(); err != nil {
			out.TotalTime = time.Since(start)
			out.TotalTokens = totalTokens
			out.Hits = hits
			out.UsageRate = safeRate(hits, len(out.Samples))
			return out, err
		}

		req := &llm.Request{
			Messages:    []llm.Message{{Role: "user", Content: s.Input}},
			MaxTokens:   maxTokens,
			Temperature: r.Temperature,
		}

		sampleCtx := ctx
		var cancel context.CancelFunc
		if r.Timeout > 0 {
			sampleCtx, cancel = context.WithTimeout(ctx, r.Timeout)
		}
		res, callErr := r.Provider.Complete(sampleCtx, req)
		if cancel != nil {
			cancel()
		}

		sr := SampleResult{
			ID:     strings.TrimSpace(s.ID),
			Prompt: s.Input,
		}

		if res != nil {
			sr.Response = res.Text
			sr.Latency = time.Duration(res.LatencyMs) * time.Millisecond
			sr.Tokens = res.InputTokens + res.OutputTokens
			totalTokens += sr.Tokens
		}
		if callErr != nil {
			sr.Error = callErr.Error()
			out.Samples = append(out.Samples, sr)
			continue
		}

		ev := sc.Evaluate(sr.Response, s.Target)
		sr.Score = ev.Score
		sr.Found = ev.Found
		sr.MatchedForm = ev.MatchedForm
		if ev.Found {
			hits++
		}

		out.Samples = append(out.Samples, sr)
	}

	out.TotalTime = time.Since(start)
	out.TotalTokens = totalTokens
	out.Hits = hits
	out.UsageRate = safeRate(hits, len(out.Samples))
	return out, nil
}

func safeRate(hits int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(hits) / float64(n)
}
