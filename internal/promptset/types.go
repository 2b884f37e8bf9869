package promptset

// PromptSet is a user-supplied collection of prompts forming a custom
// word-usage task.
type PromptSet struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	TargetWord  string   `yaml:"target_word,omitempty"`
	WordForms   []string `yaml:"word_forms,omitempty"`
	Prompts     []Prompt `yaml:"prompts"`
}

// Prompt is a single entry in a prompt set.
type Prompt struct {
	ID     string `yaml:"id"`
	Input  string `yaml:"input"`
	Trials int    `yaml:"trials,omitempty"` // Repeat count, default 1
}
