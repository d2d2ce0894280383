// Package matcher implements the transaction classifier: given a batch of
// unclassified transactions and a company's chart of accounts, it suggests
// the most likely ledger account and VAT treatment for each transaction.
//
// Matching is a pure, per-transaction computation. Nothing is cached across
// calls, so a single Matcher is safe to share across companies.
package matcher

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/veldbooks/veldbooks/internal/model"
	"github.com/veldbooks/veldbooks/internal/rules"
)

// Fixed confidences for the heuristic stages that sit outside the rule tables.
const (
	directMatchConfidence    = 0.85
	incomeFallbackConfidence = 0.75
	defaultConfidence        = 0.50
)

// Match pairs an input transaction with its suggested ledger assignment.
// Suggestion is nil when the transaction could not be classified at all;
// callers must surface that differently from a low-confidence suggestion.
type Match struct {
	Suggestion  *model.Suggestion
	Transaction model.Transaction
}

// Matcher classifies transactions against a chart of accounts using layered
// heuristics: direct keyword match, curated rule tables, then generic
// fallback accounts.
type Matcher struct {
	observer     Observer
	synonyms     map[string][]string
	expenseRules []rules.Rule
	incomeRules  []rules.Rule
	workers      int
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithObserver installs a diagnostic observer. The default is a no-op.
func WithObserver(o Observer) Option {
	return func(m *Matcher) { m.observer = o }
}

// WithWorkers sets how many transactions are matched concurrently within a
// batch. Output order is preserved regardless.
func WithWorkers(n int) Option {
	return func(m *Matcher) {
		if n > 0 {
			m.workers = n
		}
	}
}

// WithRules replaces the built-in rule tables, e.g. with company-specific
// overrides layered on the defaults.
func WithRules(expense, income []rules.Rule) Option {
	return func(m *Matcher) {
		m.expenseRules = expense
		m.incomeRules = income
	}
}

// New creates a Matcher with the built-in rule and synonym tables.
func New(opts ...Option) *Matcher {
	m := &Matcher{
		expenseRules: rules.ExpenseRules(),
		incomeRules:  rules.IncomeRules(),
		synonyms:     rules.Synonyms(),
		observer:     nopObserver{},
		workers:      1,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// MatchTransactions classifies every transaction in the batch. The result
// has exactly one entry per input, in input order. A transaction that cannot
// be classified gets a nil Suggestion; one transaction never fails the batch.
// The only errors are context cancellation and malformed input, both of which
// reject the whole batch before any matching happens.
func (m *Matcher) MatchTransactions(ctx context.Context, transactions []model.Transaction, chart []model.ChartAccount) ([]Match, error) {
	if err := validateInput(transactions, chart); err != nil {
		return nil, err
	}

	m.observer.BatchStarted(len(transactions), chart)

	results := make([]Match, len(transactions))
	if m.workers <= 1 {
		for i, txn := range transactions {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
			results[i] = m.matchOne(txn, chart)
		}
		return results, nil
	}

	indexes := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < m.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				results[i] = m.matchOne(transactions[i], chart)
			}
		}()
	}

	var ctxErr error
dispatch:
	for i := range transactions {
		select {
		case <-ctx.Done():
			ctxErr = ctx.Err()
			break dispatch
		case indexes <- i:
		}
	}
	close(indexes)
	wg.Wait()

	if ctxErr != nil {
		return nil, ctxErr
	}
	return results, nil
}

func (m *Matcher) matchOne(txn model.Transaction, chart []model.ChartAccount) Match {
	suggestion := m.findBestMatch(txn, chart)
	if suggestion != nil {
		m.observer.Matched(txn, suggestion)
	} else {
		m.observer.Unmatched(txn)
	}
	return Match{Transaction: txn, Suggestion: suggestion}
}

// findBestMatch runs the heuristic stages in strict precedence order; each
// stage short-circuits on success.
func (m *Matcher) findBestMatch(txn model.Transaction, chart []model.ChartAccount) *model.Suggestion {
	if s := m.matchDirect(txn, chart); s != nil {
		return s
	}
	if s := m.matchRules(txn, chart); s != nil {
		return s
	}
	if txn.Type == model.DirectionIncome {
		if s := m.matchIncomeFallback(txn, chart); s != nil {
			return s
		}
	}
	return m.matchDefaultAccount(txn, chart)
}

// matchDirect tokenizes the description and scans the chart for the first
// account whose name contains a token. A company's own account naming beats
// the generic rule tables, so this stage runs first and skips them entirely.
func (m *Matcher) matchDirect(txn model.Transaction, chart []model.ChartAccount) *model.Suggestion {
	for _, token := range tokenize(descSeparators, txn.Description, 2) {
		for i := range chart {
			if strings.Contains(strings.ToLower(chart[i].Name), token) {
				return &model.Suggestion{
					TransactionID: txn.ID,
					AccountID:     chart[i].ID,
					AccountName:   chart[i].Name,
					VATRate:       rules.StandardVATRate,
					VATType:       rules.VATTypeStandard,
					Confidence:    directMatchConfidence,
					Reasoning:     fmt.Sprintf("Description keyword %q matches account %q", token, chart[i].Name),
				}
			}
		}
	}
	return nil
}

// matchRules walks the direction's rule table in full. Every rule that both
// matches the description and resolves to a real account competes; the
// highest static confidence wins, and on equal confidence the earlier rule
// in table order keeps the slot (strict > comparison).
func (m *Matcher) matchRules(txn model.Transaction, chart []model.ChartAccount) *model.Suggestion {
	table := m.expenseRules
	if txn.Type == model.DirectionIncome {
		table = m.incomeRules
	}

	descLower := strings.ToLower(txn.Description)

	var best *model.Suggestion
	for _, rule := range table {
		if !ruleMatches(descLower, rule) {
			continue
		}

		account := m.resolveAccount(rule.AccountName, chart)
		if account == nil {
			// Textual match with no resolvable account is a no-match for
			// this rule; later rules still get their chance.
			continue
		}

		if best == nil || rule.Confidence > best.Confidence {
			best = &model.Suggestion{
				TransactionID: txn.ID,
				AccountID:     account.ID,
				AccountName:   account.Name,
				VATRate:       rule.VATRate,
				VATType:       rule.VATType,
				Confidence:    rule.Confidence,
				Reasoning:     rule.Reasoning,
			}
		}
	}
	return best
}

// ruleMatches tests a rule against the lowercased description: substring
// containment of any pattern first, then word-level overlap to catch partial
// and compound forms ("salaries" vs "salary").
func ruleMatches(descLower string, rule rules.Rule) bool {
	for _, pattern := range rule.Patterns {
		if strings.Contains(descLower, pattern) {
			return true
		}
	}
	for _, pattern := range rule.Patterns {
		if wordsOverlap(pattern, descLower, 2) {
			return true
		}
	}
	return false
}

// matchIncomeFallback routes unmatched income to any revenue-like account.
func (m *Matcher) matchIncomeFallback(txn model.Transaction, chart []model.ChartAccount) *model.Suggestion {
	for i := range chart {
		nameLower := strings.ToLower(chart[i].Name)
		if containsAny(nameLower, "revenue", "income", "sales", "fees received") {
			return &model.Suggestion{
				TransactionID: txn.ID,
				AccountID:     chart[i].ID,
				AccountName:   chart[i].Name,
				VATRate:       rules.StandardVATRate,
				VATType:       rules.VATTypeStandard,
				Confidence:    incomeFallbackConfidence,
				Reasoning:     "Default income account - please review",
			}
		}
	}
	return nil
}

// matchDefaultAccount is the last resort: any account whose name or type
// loosely indicates the transaction's direction. Returns nil when the chart
// has no such account, which leaves the transaction unclassified.
func (m *Matcher) matchDefaultAccount(txn model.Transaction, chart []model.ChartAccount) *model.Suggestion {
	for i := range chart {
		nameLower := strings.ToLower(chart[i].Name)
		typeLower := strings.ToLower(chart[i].Type)

		var ok bool
		switch txn.Type {
		case model.DirectionExpense:
			ok = containsAny(nameLower, "general expense", "other expense", "miscellaneous", "expense") ||
				strings.Contains(typeLower, "expense")
		case model.DirectionIncome:
			ok = containsAny(nameLower, "sales", "revenue", "income", "other income") ||
				containsAny(typeLower, "income", "revenue")
		}
		if !ok {
			continue
		}

		return &model.Suggestion{
			TransactionID: txn.ID,
			AccountID:     chart[i].ID,
			AccountName:   chart[i].Name,
			VATRate:       rules.StandardVATRate,
			VATType:       rules.VATTypeStandard,
			Confidence:    defaultConfidence,
			Reasoning:     fmt.Sprintf("Fallback to default %s account", txn.Type),
		}
	}
	return nil
}

// validateInput rejects malformed batches up front so matching never trips
// over missing fields mid-string-operation.
func validateInput(transactions []model.Transaction, chart []model.ChartAccount) error {
	for i, txn := range transactions {
		if txn.ID == "" {
			return fmt.Errorf("transaction at index %d: missing ID", i)
		}
		if !txn.Type.Valid() {
			return fmt.Errorf("transaction %s: unknown direction %q", txn.ID, txn.Type)
		}
	}
	for i, account := range chart {
		if account.ID == "" {
			return fmt.Errorf("chart account at index %d: missing ID", i)
		}
		if account.Name == "" {
			return fmt.Errorf("chart account %s: missing name", account.ID)
		}
	}
	return nil
}
