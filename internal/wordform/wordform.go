package wordform

import "strings"

// Forms returns the base word plus its common "-s", "-ed", and "-ing"
// suffixed variants, lowercased. Words ending in "e" drop it before "ed"
// and "ing" (delve -> delved, delving). This is a small suffix heuristic,
// not a morphological analyzer; irregular verbs come out wrong on purpose.
func Forms(base string) []string {
	base = strings.ToLower(strings.TrimSpace(base))
	if base == "" {
		return nil
	}
	if !isAlphabetic(base) {
		// Punctuation or multi-word targets are matched literally only.
		return []string{base}
	}

	if strings.HasSuffix(base, "e") {
		root := base[:len(base)-1]
		return []string{
			base,
			base + "s",
			root + "ed",
			root + "ing",
		}
	}

	return []string{
		base,
		base + "s",
		base + "ed",
		base + "ing",
	}
}

func isAlphabetic(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return len(s) > 0
}
