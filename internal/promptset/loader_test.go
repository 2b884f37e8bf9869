package promptset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stellarlinkco/wordbench/internal/task"
)

func TestLoadFromFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "set.yaml")

	const in = `
name: jargon-check
description: Prompts prone to consulting jargon
target_word: leverage
word_forms:
  - leverage
  - leverages
  - leveraged
  - leveraging
prompts:
  - id: strategy
    input: Outline a go-to-market strategy for a new SaaS product.
  - id: pitch
    input: Write an investor pitch for a logistics startup.
    trials: 3
`
	if err := os.WriteFile(path, []byte(in), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	s, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if s.Name != "jargon-check" {
		t.Fatalf("Name: got %q want %q", s.Name, "jargon-check")
	}
	if s.TargetWord != "leverage" {
		t.Fatalf("TargetWord: got %q want %q", s.TargetWord, "leverage")
	}
	if len(s.WordForms) != 4 {
		t.Fatalf("len(WordForms): got %d want %d", len(s.WordForms), 4)
	}
	if len(s.Prompts) != 2 {
		t.Fatalf("len(Prompts): got %d want %d", len(s.Prompts), 2)
	}
	if got := s.Prompts[1].Trials; got != 3 {
		t.Fatalf("Prompts[1].Trials: got %d want %d", got, 3)
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	t.Parallel()

	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatalf("LoadFromFile: expected error")
	}
}

func TestLoadFromFile_BadYAML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte(":\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	_, err := LoadFromFile(path)
	if err == nil {
		t.Fatalf("LoadFromFile: expected error")
	}
}

func TestLoadFromDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	write := func(name, body string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("WriteFile(%s): %v", name, err)
		}
	}

	write("b.yaml", "name: b\nprompts:\n  - id: b1\n    input: prompt b\n")
	write("a.yml", "name: a\nprompts:\n  - id: a1\n    input: prompt a\n")
	write("ignored.txt", "nope\n")

	ss, err := LoadFromDir(dir)
	if err != nil {
		t.Fatalf("LoadFromDir: %v", err)
	}
	if len(ss) != 2 {
		t.Fatalf("len: got %d want %d", len(ss), 2)
	}
	if ss[0].Name != "a" || ss[1].Name != "b" {
		t.Fatalf("order: got %q, %q", ss[0].Name, ss[1].Name)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		set       *PromptSet
		wantError string
	}{
		{
			name:      "nil",
			set:       nil,
			wantError: "nil prompt set",
		},
		{
			name:      "missing name",
			set:       &PromptSet{Prompts: []Prompt{{ID: "p1", Input: "x"}}},
			wantError: "missing name",
		},
		{
			name:      "no prompts",
			set:       &PromptSet{Name: "s"},
			wantError: "no prompts",
		},
		{
			name:      "empty word form",
			set:       &PromptSet{Name: "s", WordForms: []string{" "}, Prompts: []Prompt{{ID: "p1", Input: "x"}}},
			wantError: "word_forms[0]: empty string",
		},
		{
			name:      "missing id",
			set:       &PromptSet{Name: "s", Prompts: []Prompt{{ID: " ", Input: "x"}}},
			wantError: "missing id",
		},
		{
			name:      "duplicate id",
			set:       &PromptSet{Name: "s", Prompts: []Prompt{{ID: "p1", Input: "x"}, {ID: "p1", Input: "y"}}},
			wantError: "duplicate id",
		},
		{
			name:      "missing input",
			set:       &PromptSet{Name: "s", Prompts: []Prompt{{ID: "p1", Input: " "}}},
			wantError: "missing input",
		},
		{
			name:      "negative trials",
			set:       &PromptSet{Name: "s", Prompts: []Prompt{{ID: "p1", Input: "x", Trials: -1}}},
			wantError: "trials must be >= 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := Validate(tt.set)
			if err == nil {
				t.Fatalf("Validate: expected error")
			}
			if !strings.Contains(err.Error(), tt.wantError) {
				t.Fatalf("Validate: got %v want substring %q", err, tt.wantError)
			}
		})
	}
}

func TestTask_ExpandsTrials(t *testing.T) {
	t.Parallel()

	set := &PromptSet{
		Name: "custom",
		Prompts: []Prompt{
			{ID: "one", Input: "first prompt"},
			{ID: "two", Input: "second prompt", Trials: 2},
		},
	}

	tk := set.Task()
	if tk.Name != "custom" {
		t.Fatalf("Name: got %q want %q", tk.Name, "custom")
	}

	samples := tk.Samples(task.Options{TargetWord: "probe"})
	if len(samples) != 3 {
		t.Fatalf("len(samples): got %d want %d", len(samples), 3)
	}
	if samples[0].ID != "one" {
		t.Fatalf("samples[0].ID: got %q want %q", samples[0].ID, "one")
	}
	if samples[1].ID != "two-01" || samples[2].ID != "two-02" {
		t.Fatalf("trial ids: got %q, %q", samples[1].ID, samples[2].ID)
	}
	for _, s := range samples {
		if s.Target != "probe" {
			t.Fatalf("Target: got %q want %q", s.Target, "probe")
		}
	}
}
