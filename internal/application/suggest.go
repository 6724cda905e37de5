package application

import (
	"github.com/sahilm/fuzzy"

	"locus/internal/alias"
)

const maxSuggestions = 3

// Suggest returns up to three alias keys that fuzzily match input, best
// first
func Suggest(input string, keys []string) []string {
	key := alias.Normalize(input)
	if key == "" || len(keys) == 0 {
		return nil
	}
	matches := fuzzy.Find(key, keys)
	out := make([]string, 0, min(len(matches), maxSuggestions))
	for _, m := range matches {
		if len(out) == maxSuggestions {
			break
		}
		out = append(out, m.Str)
	}
	return out
}
