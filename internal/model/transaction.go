package model

import (
	"crypto/sha256"
	"fmt"
	"time"
)

// TransactionDirection indicates whether money flowed into or out of the business.
type TransactionDirection string

const (
	// DirectionIncome represents money received by the business.
	DirectionIncome TransactionDirection = "income"
	// DirectionExpense represents money paid out by the business.
	DirectionExpense TransactionDirection = "expense"
)

// Valid reports whether the direction is one of the known values.
func (d TransactionDirection) Valid() bool {
	return d == DirectionIncome || d == DirectionExpense
}

// Transaction represents a single financial transaction from any source
// (bank feed import or manual bulk capture).
type Transaction struct {
	Date        time.Time
	ID          string
	CompanyID   string
	Description string // Raw description as captured from the source
	Source      string // Where the transaction came from (e.g. "ofx", "csv")
	Hash        string
	Type        TransactionDirection
	Amount      float64 // Sign is informational only; Type carries the direction
}

// GenerateHash creates a unique hash for duplicate detection.
func (t *Transaction) GenerateHash() string {
	data := fmt.Sprintf("%s:%s:%.2f:%s:%s",
		t.CompanyID,
		t.Date.Format("2006-01-02"),
		t.Amount,
		t.Description,
		t.Type)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}
