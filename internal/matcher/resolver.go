package matcher

import (
	"sort"
	"strings"

	"github.com/veldbooks/veldbooks/internal/model"
)

// resolveAccount finds the real chart account for a rule's account hint.
// Strategies run strictly in order from exact to loosest; the first account
// found wins. Returns nil when no strategy resolves, which the caller treats
// as no-match for that rule.
func (m *Matcher) resolveAccount(hint string, chart []model.ChartAccount) *model.ChartAccount {
	hintLower := strings.ToLower(hint)

	// Exact name match.
	for i := range chart {
		if strings.EqualFold(chart[i].Name, hint) {
			return &chart[i]
		}
	}

	// Substring containment in either direction.
	for i := range chart {
		if fuzzyContains(strings.ToLower(chart[i].Name), hintLower) {
			return &chart[i]
		}
	}

	// Word-level overlap on words longer than 2 characters.
	for i := range chart {
		if wordsOverlap(hint, chart[i].Name, 2) {
			return &chart[i]
		}
	}

	// Keyword overlap: hint keywords against the full account name.
	keywords := tokenize(labelSeparators, hint, 2)
	for i := range chart {
		nameLower := strings.ToLower(chart[i].Name)
		for _, kw := range keywords {
			if strings.Contains(nameLower, kw) {
				return &chart[i]
			}
		}
	}

	if account := m.resolveBySynonym(hintLower, chart); account != nil {
		return account
	}

	// Last resort: any shared word at all, ignoring short filler words.
	for _, hw := range tokenize(labelSeparators, hint, 3) {
		for i := range chart {
			for _, nw := range tokenize(descSeparators, chart[i].Name, 0) {
				if fuzzyContains(hw, nw) {
					return &chart[i]
				}
			}
		}
	}

	return nil
}

// resolveBySynonym consults the synonym table: if the hint textually relates
// to a canonical category, any account carrying one of that category's
// synonyms (or a fragment of the canonical name itself) resolves.
func (m *Matcher) resolveBySynonym(hintLower string, chart []model.ChartAccount) *model.ChartAccount {
	// Sorted keys keep resolution deterministic across calls.
	canonicals := make([]string, 0, len(m.synonyms))
	for canonical := range m.synonyms {
		canonicals = append(canonicals, canonical)
	}
	sort.Strings(canonicals)

	for _, canonical := range canonicals {
		if !fuzzyContains(hintLower, canonical) && !wordsOverlap(hintLower, canonical, 2) {
			continue
		}

		needles := append([]string{}, m.synonyms[canonical]...)
		needles = append(needles, tokenize(descSeparators, canonical, 2)...)

		for i := range chart {
			nameLower := strings.ToLower(chart[i].Name)
			for _, needle := range needles {
				if strings.Contains(nameLower, needle) {
					return &chart[i]
				}
			}
		}
	}

	return nil
}
