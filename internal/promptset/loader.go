package promptset

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/stellarlinkco/wordbench/internal/task"
)

// LoadFromFile loads and validates a prompt set from a YAML file.
func LoadFromFile(path string) (*PromptSet, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("promptset: read %q: %w", path, err)
	}

	var s PromptSet
	if err := yaml.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("promptset: parse %q: %w", path, err)
	}
	if err := Validate(&s); err != nil {
		return nil, fmt.Errorf("promptset: validate %q: %w", path, err)
	}

	return &s, nil
}

// LoadFromDir loads and validates all prompt sets from a directory.
func LoadFromDir(dir string) ([]*PromptSet, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("promptset: read dir %q: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)

	out := make([]*PromptSet, 0, len(paths))
	for _, path := range paths {
		s, err := LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// Validate checks a prompt set for consistency.
func Validate(s *PromptSet) error {
	if s == nil {
		return fmt.Errorf("nil prompt set")
	}
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("set: missing name")
	}
	if len(s.Prompts) == 0 {
		return fmt.Errorf("set: no prompts")
	}
	for i, f := range s.WordForms {
		if strings.TrimSpace(f) == "" {
			return fmt.Errorf("word_forms[%d]: empty string", i)
		}
	}

	seenIDs := make(map[string]struct{}, len(s.Prompts))
	for i, p := range s.Prompts {
		id := strings.TrimSpace(p.ID)
		if id == "" {
			return fmt.Errorf("prompts[%d]: missing id", i)
		}
		if _, ok := seenIDs[id]; ok {
			return fmt.Errorf("prompts[%d] (%s): duplicate id", i, id)
		}
		seenIDs[id] = struct{}{}

		if strings.TrimSpace(p.Input) == "" {
			return fmt.Errorf("prompts[%d] (%s): missing input", i, id)
		}
		if p.Trials < 0 {
			return fmt.Errorf("prompts[%d] (%s): trials must be >= 0", i, id)
		}
	}
	return nil
}

// Task converts the set into a runnable task. Each prompt expands to one
// sample per trial, with trial-numbered IDs when trials > 1.
func (s *PromptSet) Task() *task.Task {
	return &task.Task{
		Name:        strings.TrimSpace(s.Name),
		Description: s.Description,
		Samples: func(opts task.Options) []task.Sample {
			target := opts.TargetOrDefault()
			out := make([]task.Sample, 0, len(s.Prompts))
			for _, p := range s.Prompts {
				trials := p.Trials
				if trials <= 0 {
					trials = 1
				}
				for t := 1; t <= trials; t++ {
					id := strings.TrimSpace(p.ID)
					if trials > 1 {
						id = fmt.Sprintf("%s-%02d", id, t)
					}
					out = append(out, task.Sample{
						ID:     id,
						Input:  p.Input,
						Target: target,
					})
				}
			}
			return out
		},
	}
}
