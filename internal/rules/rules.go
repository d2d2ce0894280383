// Package rules holds the built-in classification rule tables: curated
// description patterns mapped to ledger accounts and VAT treatments for
// South African small businesses.
package rules

import "fmt"

// Rule maps a set of lowercase description patterns to a target ledger
// account and VAT treatment. AccountName is a hint, not a guarantee; it is
// resolved against the company's real chart of accounts at match time.
type Rule struct {
	AccountName string
	VATType     string
	Reasoning   string
	Patterns    []string
	VATRate     float64
	Confidence  float64
}

// Validate checks that a rule is well formed: at least one non-empty
// pattern, a target account hint, a reasoning string, and a confidence
// in [0, 1].
func (r Rule) Validate() error {
	if len(r.Patterns) == 0 {
		return fmt.Errorf("rule %q has no patterns", r.AccountName)
	}
	for _, p := range r.Patterns {
		if p == "" {
			return fmt.Errorf("rule %q has an empty pattern", r.AccountName)
		}
	}
	if r.AccountName == "" {
		return fmt.Errorf("rule has no target account")
	}
	if r.Reasoning == "" {
		return fmt.Errorf("rule %q has no reasoning", r.AccountName)
	}
	if r.Confidence < 0 || r.Confidence > 1 {
		return fmt.Errorf("rule %q confidence %.2f outside [0, 1]", r.AccountName, r.Confidence)
	}
	if r.VATType == "" {
		return fmt.Errorf("rule %q has no VAT type", r.AccountName)
	}
	return nil
}

// ValidateAll validates every rule in a table.
func ValidateAll(table []Rule) error {
	for i, r := range table {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("rule at index %d: %w", i, err)
		}
	}
	return nil
}
