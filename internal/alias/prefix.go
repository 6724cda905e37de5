// Package alias normalizes alias text and resolves shortest-unique-prefix
// matches over sorted alias keys.
package alias

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Outcome is the kind of result Resolve produced
type Outcome int

const (
	None Outcome = iota
	Single
	Ambiguous
)

func (o Outcome) String() string {
	switch o {
	case Single:
		return "single"
	case Ambiguous:
		return "ambiguous"
	default:
		return "none"
	}
}

// Match is the result of Resolve. Key is set for Single, Candidates for
// Ambiguous.
type Match struct {
	Outcome    Outcome
	Key        string
	Candidates []string
}

// Normalize folds alias text to its lookup key: diacritics stripped,
// hyphens and surrounding space removed, lowercased. "Café", "CAFE" and
// "ca-fe" share the key "cafe".
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	folded = strings.ReplaceAll(folded, "-", "")
	return strings.ToLower(strings.TrimSpace(folded))
}

// ShortestUniquePrefix returns the shortest prefix of target that no other
// key in sortedKeys starts with. sortedKeys must be sorted ascending. If
// target is absent the full target is returned.
func ShortestUniquePrefix(target string, sortedKeys []string) string {
	i := sort.SearchStrings(sortedKeys, target)
	if i >= len(sortedKeys) || sortedKeys[i] != target {
		return target
	}

	longest := 0
	if i > 0 {
		longest = commonPrefixLen(target, sortedKeys[i-1])
	}
	if i+1 < len(sortedKeys) {
		longest = max(longest, commonPrefixLen(target, sortedKeys[i+1]))
	}

	if longest >= len(target) {
		// target is a prefix of its neighbour; only the full key is exact
		return target
	}
	_, size := utf8.DecodeRuneInString(target[longest:])
	return target[:longest+size]
}

// Resolve matches input against priority first and all second. At each tier
// an exact key wins; otherwise a single startsWith match wins. Several
// startsWith matches make the result Ambiguous; the candidates then cover
// every matching key of both tiers so the caller can offer the full choice.
// No match at either tier gives None.
func Resolve(input string, priority, all []string) Match {
	key := Normalize(input)
	if key == "" {
		return Match{Outcome: None}
	}
	m := resolveTier(key, priority)
	switch m.Outcome {
	case Single:
		return m
	case Ambiguous:
		if rest := resolveTier(key, all); rest.Outcome == Ambiguous {
			m.Candidates = union(m.Candidates, rest.Candidates)
		}
		return m
	}
	return resolveTier(key, all)
}

func resolveTier(key string, keys []string) Match {
	var matches []string
	for _, k := range keys {
		if k == key {
			return Match{Outcome: Single, Key: k}
		}
		if strings.HasPrefix(k, key) {
			matches = append(matches, k)
		}
	}
	switch len(matches) {
	case 0:
		return Match{Outcome: None}
	case 1:
		return Match{Outcome: Single, Key: matches[0]}
	default:
		sort.Strings(matches)
		return Match{Outcome: Ambiguous, Candidates: matches}
	}
}

// commonPrefixLen is the byte length of the longest common prefix of a and
// b that ends on a rune boundary
func commonPrefixLen(a, b string) int {
	for i, r := range a {
		if i >= len(b) {
			return i
		}
		if rb, _ := utf8.DecodeRuneInString(b[i:]); rb != r {
			return i
		}
	}
	return len(a)
}

// union merges two sorted key lists without duplicates
func union(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		var next string
		switch {
		case j >= len(b) || (i < len(a) && a[i] < b[j]):
			next = a[i]
			i++
		case i >= len(a) || b[j] < a[i]:
			next = b[j]
			j++
		default:
			next = a[i]
			i++
			j++
		}
		out = append(out, next)
	}
	return out
}
