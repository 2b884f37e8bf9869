package ci

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/stellarlinkco/wordbench/internal/bench"
)

// DetectCI returns true if running in GitHub Actions.
func DetectCI() bool {
	return strings.EqualFold(strings.TrimSpace(os.Getenv("GITHUB_ACTIONS")), "true")
}

// SetOutput sets a GitHub Actions output variable.
func SetOutput(name, value string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	if path := strings.TrimSpace(os.Getenv("GITHUB_OUTPUT")); path != "" {
		_ = appendGitHubCommandFile(path, fmt.Sprintf("%s<<EOF\n%s\nEOF\n", name, value))
		return
	}
	fmt.Printf("::set-output name=%s::%s\n", name, escapeCommandValue(value))
}

// SetJobSummary writes markdown to the job summary.
func SetJobSummary(markdown string) error {
	path := strings.TrimSpace(os.Getenv("GITHUB_STEP_SUMMARY"))
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if !strings.HasSuffix(markdown, "\n") {
		markdown += "\n"
	}
	return appendGitHubCommandFile(path, markdown)
}

// RunSummary renders a benchmark run as a markdown job summary.
func RunSummary(runID int64, res *bench.TaskResult) string {
	if res == nil {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## Word usage run %d\n\n", runID)
	fmt.Fprintf(&b, "- **Model**: %s\n", res.Model)
	fmt.Fprintf(&b, "- **Task**: %s\n", res.Task)
	fmt.Fprintf(&b, "- **Target word**: %s\n", res.TargetWord)
	fmt.Fprintf(&b, "- **Usage rate**: %.4f (%d/%d)\n\n", res.UsageRate, res.Hits, len(res.Samples))

	b.WriteString("| Sample | Found | Form |\n")
	b.WriteString("|--------|-------|------|\n")
	for _, s := range res.Samples {
		found := "no"
		if s.Found {
			found = "yes"
		}
		form := s.MatchedForm
		if form == "" {
			form = "-"
		}
		fmt.Fprintf(&b, "| %s | %s | %s |\n", s.ID, found, form)
	}
	return b.String()
}

func appendGitHubCommandFile(path, content string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteString(content)
	return err
}

func escapeCommandValue(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	s = strings.ReplaceAll(s, "\n", "%0A")
	return s
}
