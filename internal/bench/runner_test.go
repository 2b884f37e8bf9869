package bench

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stellarlinkco/wordbench/internal/llm"
	"github.com/stellarlinkco/wordbench/internal/task"
)

type fakeProvider struct {
	name      string
	responses map[string]string
	fallback  string
	errOn     map[string]error
	calls     int
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Complete(ctx context.Context, req *llm.Request) (*llm.Completion, error) {
	f.calls++
	if len(req.Messages) == 0 {
		return nil, errors.New("fake: no messages")
	}
	prompt := req.Messages[0].Content
	if err, ok := f.errOn[prompt]; ok {
		return nil, err
	}
	text, ok := f.responses[prompt]
	if !ok {
		text = f.fallback
	}
	return &llm.Completion{
		Text:         text,
		InputTokens:  10,
		OutputTokens: 20,
		LatencyMs:    5,
	}, nil
}

func fixedTask(prompts ...string) *task.Task {
	return &task.Task{
		Name:        "fixed",
		Description: "test task",
		Samples: func(opts task.Options) []task.Sample {
			target := opts.TargetOrDefault()
			out := make([]task.Sample, 0, len(prompts))
			for i, p := range prompts {
				out = append(out, task.Sample{
					ID:     strings.ToLower(target) + "-" + string(rune('a'+i)),
					Input:  p,
					Target: target,
				})
			}
			return out
		},
	}
}

func TestRunner_Run_UsageRate(t *testing.T) {
	p := &fakeProvider{
		name: "fake",
		responses: map[string]string{
			"q1": "Let's delve into this.",
			"q2": "This dives into the topic.",
			"q3": "Delving deeper every day.",
			"q4": "Nothing to see here.",
		},
	}

	r := &Runner{Provider: p}
	res, err := r.Run(context.Background(), fixedTask("q1", "q2", "q3", "q4"), task.Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if res.UsageRate != 0.5 {
		t.Fatalf("UsageRate: got %v want %v", res.UsageRate, 0.5)
	}
	if res.Hits != 2 {
		t.Fatalf("Hits: got %d want 2", res.Hits)
	}
	if res.TargetWord != "delve" {
		t.Fatalf("TargetWord: got %q want %q", res.TargetWord, "delve")
	}
	if res.TotalTokens != 4*30 {
		t.Fatalf("TotalTokens: got %d want %d", res.TotalTokens, 120)
	}
	if len(res.Samples) != 4 {
		t.Fatalf("Samples: got %d want 4", len(res.Samples))
	}
	if !res.Samples[0].Found || res.Samples[0].MatchedForm != "delve" {
		t.Fatalf("sample 0: got %+v", res.Samples[0])
	}
	if res.Samples[2].MatchedForm != "delving" {
		t.Fatalf("sample 2 form: got %q want %q", res.Samples[2].MatchedForm, "delving")
	}
}

func TestRunner_Run_ProviderErrorRecorded(t *testing.T) {
	p := &fakeProvider{
		name:     "fake",
		fallback: "We delve here.",
		errOn:    map[string]error{"bad": errors.New("rate limited")},
	}

	r := &Runner{Provider: p}
	res, err := r.Run(context.Background(), fixedTask("ok", "bad"), task.Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(res.Samples) != 2 {
		t.Fatalf("Samples: got %d want 2", len(res.Samples))
	}
	if res.Samples[1].Error == "" {
		t.Fatalf("expected recorded error on failed sample")
	}
	if res.Samples[1].Found {
		t.Fatalf("failed sample must not count as a hit")
	}
	if res.UsageRate != 0.5 {
		t.Fatalf("UsageRate: got %v want 0.5", res.UsageRate)
	}
}

func TestRunner_Run_TargetOverride(t *testing.T) {
	p := &fakeProvider{
		name:     "fake",
		fallback: "We will be analyzing the data.",
	}

	r := &Runner{Provider: p}
	res, err := r.Run(context.Background(), fixedTask("q1"), task.Options{TargetWord: "analyze"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.UsageRate != 1.0 {
		t.Fatalf("UsageRate: got %v want 1.0", res.UsageRate)
	}
	if res.Samples[0].MatchedForm != "analyzing" {
		t.Fatalf("MatchedForm: got %q want %q", res.Samples[0].MatchedForm, "analyzing")
	}
}

func TestRunner_Run_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := &fakeProvider{name: "fake", fallback: "delve"}
	r := &Runner{Provider: p}

	res, err := r.Run(ctx, fixedTask("q1", "q2"), task.Options{})
	if err == nil {
		t.Fatalf("expected context error")
	}
	if res == nil {
		t.Fatalf("expected partial result on cancellation")
	}
	if p.calls != 0 {
		t.Fatalf("provider calls after cancel: got %d want 0", p.calls)
	}
}

func TestRunner_Run_NilGuards(t *testing.T) {
	if _, err := (*Runner)(nil).Run(context.Background(), fixedTask("q"), task.Options{}); err == nil {
		t.Fatalf("nil runner: expected error")
	}

	r := &Runner{}
	if _, err := r.Run(context.Background(), fixedTask("q"), task.Options{}); err == nil {
		t.Fatalf("nil provider: expected error")
	}

	r = &Runner{Provider: &fakeProvider{name: "fake"}}
	if _, err := r.Run(context.Background(), nil, task.Options{}); err == nil {
		t.Fatalf("nil task: expected error")
	}
	if _, err := r.Run(context.Background(), fixedTask(), task.Options{}); err == nil {
		t.Fatalf("empty task: expected error")
	}
}
