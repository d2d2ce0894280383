package matcher

import (
	"regexp"
	"strings"
)

var (
	// descSeparators splits free-text bank descriptions into tokens.
	descSeparators = regexp.MustCompile(`[\s\-_,.:;]+`)
	// labelSeparators splits account labels like "Marketing & Advertising".
	labelSeparators = regexp.MustCompile(`[\s&-]+`)
)

// tokenize lowercases s, splits it on the given separator set, and drops
// tokens of length <= minLen.
func tokenize(re *regexp.Regexp, s string, minLen int) []string {
	var tokens []string
	for _, tok := range re.Split(strings.ToLower(s), -1) {
		if len(tok) > minLen {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// fuzzyContains reports whether either lowercase string contains the other.
func fuzzyContains(a, b string) bool {
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// wordsOverlap reports whether any word of a is a substring of, or contains,
// any word of b. Words of length <= minLen are ignored on both sides.
func wordsOverlap(a, b string, minLen int) bool {
	aWords := tokenize(descSeparators, a, minLen)
	bWords := tokenize(descSeparators, b, minLen)
	for _, aw := range aWords {
		for _, bw := range bWords {
			if fuzzyContains(aw, bw) {
				return true
			}
		}
	}
	return false
}

// containsAny reports whether s contains any of the given substrings.
func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
