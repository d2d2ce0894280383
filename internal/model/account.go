// Package model defines the core data structures for the veldbooks platform.
package model

import "time"

// ChartAccount represents a single account in a company's chart of accounts.
// The set is tenant-specific; the classifier receives it fresh on every call
// and must never hold onto it across companies.
type ChartAccount struct {
	CreatedAt time.Time
	ID        string
	CompanyID string
	Name      string // Free-text label, e.g. "Office Supplies"
	Type      string // Coarse category, e.g. "Expense", "Income", "Asset"
	IsActive  bool
}
