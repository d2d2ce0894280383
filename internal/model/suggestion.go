package model

import "time"

// SuggestionStatus indicates where a suggestion sits in the review flow.
type SuggestionStatus string

// Suggestion status constants.
const (
	StatusPending  SuggestionStatus = "PENDING"
	StatusAccepted SuggestionStatus = "ACCEPTED"
	StatusRejected SuggestionStatus = "REJECTED"
)

// Suggestion is a proposed ledger assignment for a single transaction.
// AccountID always references an account from the chart the classifier was
// given; the classifier never invents account IDs.
type Suggestion struct {
	CreatedAt     time.Time
	TransactionID string
	AccountID     string
	AccountName   string
	VATType       string
	Reasoning     string
	Status        SuggestionStatus
	VATRate       float64
	Confidence    float64 // Always in [0, 1]
}
