package task

import (
	"fmt"
	"sort"
	"strings"
)

// DefaultTargetWord is the word under test when none is configured.
const DefaultTargetWord = "delve"

// Sample is one prompt to send to a model, with the word being tested.
type Sample struct {
	ID     string
	Input  string
	Target string
}

// Options parameterize a task for one run. The target word is fixed for
// the duration of a run.
type Options struct {
	TargetWord string
	WordForms  []string
}

// TargetOrDefault returns the configured target word or the default.
func (o Options) TargetOrDefault() string {
	if w := strings.TrimSpace(o.TargetWord); w != "" {
		return w
	}
	return DefaultTargetWord
}

// Task is a named bundle of prompts scored against a target word.
type Task struct {
	Name        string
	Description string
	Samples     func(opts Options) []Sample
}

// Registry stores tasks by name.
type Registry struct {
	tasks map[string]*Task
}

// NewRegistry creates an empty task registry.
func NewRegistry() *Registry {
	return &Registry{tasks: make(map[string]*Task)}
}

// Register adds a task to the registry.
func (r *Registry) Register(t *Task) {
	if r == nil {
		panic("task: register on nil registry")
	}
	if t == nil {
		panic("task: register nil task")
	}
	name := strings.TrimSpace(t.Name)
	if name == "" {
		panic("task: task has empty name")
	}
	if r.tasks == nil {
		r.tasks = make(map[string]*Task)
	}
	r.tasks[name] = t
}

// Get returns a named task if present.
func (r *Registry) Get(name string) (*Task, bool) {
	if r == nil || r.tasks == nil {
		return nil, false
	}
	t, ok := r.tasks[strings.TrimSpace(name)]
	return t, ok
}

// List returns all registered tasks sorted by name.
func (r *Registry) List() []*Task {
	if r == nil || r.tasks == nil {
		return nil
	}
	out := make([]*Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// DefaultRegistry returns a registry with both word-usage tasks.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(WordUsageTask())
	r.Register(WordUsageOriginalTask())
	return r
}

// WordUsageTask presents varied analytical and writing prompts likely to
// elicit the target word.
func WordUsageTask() *Task {
	return &Task{
		Name:        "word-usage",
		Description: "Varied prompts testing whether a model uses the target word",
		Samples: func(opts Options) []Sample {
			target := opts.TargetOrDefault()
			prompts := VariedPrompts()
			out := make([]Sample, 0, len(prompts))
			for i, p := range prompts {
				out = append(out, Sample{
					ID:     fmt.Sprintf("%s-%02d", target, i+1),
					Input:  p,
					Target: target,
				})
			}
			return out
		},
	}
}

// WordUsageOriginalTask repeats the original Manifold Markets prompt ten
// times, matching that study's fixed trial count.
func WordUsageOriginalTask() *Task {
	return &Task{
		Name:        "word-usage-original",
		Description: "Original Manifold Markets prompt repeated 10 times",
		Samples: func(opts Options) []Sample {
			target := opts.TargetOrDefault()
			out := make([]Sample, 0, originalTrials)
			for i := 0; i < originalTrials; i++ {
				out = append(out, Sample{
					ID:     fmt.Sprintf("original-%s-%02d", target, i+1),
					Input:  OriginalPrompt,
					Target: target,
				})
			}
			return out
		},
	}
}
