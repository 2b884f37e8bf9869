package scorer

import (
	"regexp"
	"strings"

	"github.com/stellarlinkco/wordbench/internal/wordform"
)

// WordUsage scores responses on whether a target word appears as a whole
// word, in any of its common inflected forms, case-insensitively. The zero
// value is ready to use. Safe for concurrent use; Score compiles a fresh
// pattern per call and holds no state.
type WordUsage struct {
	// Forms overrides the generated inflection set when non-empty,
	// matching the given surface forms literally.
	Forms []string
}

// Result reports a single scoring decision.
type Result struct {
	Score       float64
	Found       bool
	MatchedForm string
}

// Score returns 1.0 if any form of targetWord occurs in response as a
// whole word, 0.0 otherwise. It never fails: an empty or malformed target
// simply scores 0.0.
func (s WordUsage) Score(response, targetWord string) float64 {
	return s.Evaluate(response, targetWord).Score
}

// Match reports which form of targetWord occurs in response, if any.
func (s WordUsage) Match(response, targetWord string) (string, bool) {
	r := s.Evaluate(response, targetWord)
	return r.MatchedForm, r.Found
}

// Evaluate scores the response and reports which form matched.
func (s WordUsage) Evaluate(response, targetWord string) Result {
	forms := s.forms(targetWord)
	if len(forms) == 0 || strings.TrimSpace(response) == "" {
		return Result{}
	}

	re, err := compileForms(forms)
	if err != nil {
		return Result{}
	}

	m := re.FindString(response)
	if m == "" {
		return Result{}
	}
	return Result{
		Score:       1.0,
		Found:       true,
		MatchedForm: strings.ToLower(m),
	}
}

func (s WordUsage) forms(targetWord string) []string {
	if len(s.Forms) > 0 {
		out := make([]string, 0, len(s.Forms))
		for _, f := range s.Forms {
			f = strings.ToLower(strings.TrimSpace(f))
			if f == "" {
				continue
			}
			out = append(out, f)
		}
		return out
	}
	return wordform.Forms(targetWord)
}

func compileForms(forms []string) (*regexp.Regexp, error) {
	quoted := make([]string, 0, len(forms))
	for _, f := range forms {
		quoted = append(quoted, regexp.QuoteMeta(f))
	}
	return regexp.Compile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
}
