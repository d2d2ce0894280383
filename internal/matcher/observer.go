package matcher

import (
	"log/slog"

	"github.com/veldbooks/veldbooks/internal/model"
)

// Observer receives diagnostic events from the matcher. The matcher itself
// never logs; callers that want a match trace install an observer.
type Observer interface {
	// BatchStarted fires once per MatchTransactions call, before any matching.
	BatchStarted(total int, chart []model.ChartAccount)
	// Matched fires for every transaction that resolved to a suggestion.
	Matched(txn model.Transaction, suggestion *model.Suggestion)
	// Unmatched fires for every transaction left unclassified.
	Unmatched(txn model.Transaction)
}

type nopObserver struct{}

func (nopObserver) BatchStarted(int, []model.ChartAccount) {}

func (nopObserver) Matched(model.Transaction, *model.Suggestion) {}

func (nopObserver) Unmatched(model.Transaction) {}

// SlogObserver traces matching through the default slog logger.
type SlogObserver struct{}

// BatchStarted logs the batch size and a sample of the chart being matched
// against.
func (SlogObserver) BatchStarted(total int, chart []model.ChartAccount) {
	sample := make([]string, 0, 3)
	for i, account := range chart {
		if i >= 3 {
			break
		}
		sample = append(sample, account.Name)
	}
	slog.Debug("matching transactions",
		"transactions", total,
		"accounts", len(chart),
		"account_sample", sample)
}

// Matched logs a per-transaction match trace.
func (SlogObserver) Matched(txn model.Transaction, suggestion *model.Suggestion) {
	slog.Debug("matched transaction",
		"transaction_id", txn.ID,
		"description", txn.Description,
		"account", suggestion.AccountName,
		"confidence", suggestion.Confidence)
}

// Unmatched logs transactions no rule or fallback could place.
func (SlogObserver) Unmatched(txn model.Transaction) {
	slog.Debug("no match for transaction",
		"transaction_id", txn.ID,
		"description", txn.Description)
}
