package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/veldbooks/veldbooks/internal/model"
)

// SaveSuggestions persists suggestions for later review. A transaction holds
// at most one suggestion; re-matching replaces the previous one.
func (s *SQLiteStorage) SaveSuggestions(ctx context.Context, companyID string, suggestions []model.Suggestion) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(companyID, "companyID"); err != nil {
		return err
	}
	if len(suggestions) == 0 {
		return fmt.Errorf("%w: suggestions", ErrEmptySlice)
	}

	for i := range suggestions {
		if err := validateSuggestion(&suggestions[i]); err != nil {
			return fmt.Errorf("suggestion at index %d: %w", i, err)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO suggestions
			(transaction_id, company_id, account_id, account_name, vat_rate, vat_type, confidence, reasoning, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, suggestion := range suggestions {
		status := suggestion.Status
		if status == "" {
			status = model.StatusPending
		}
		if _, err := stmt.ExecContext(ctx,
			suggestion.TransactionID, companyID, suggestion.AccountID,
			suggestion.AccountName, suggestion.VATRate, suggestion.VATType,
			suggestion.Confidence, suggestion.Reasoning, string(status)); err != nil {
			return fmt.Errorf("failed to save suggestion for transaction %s: %w", suggestion.TransactionID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit suggestions: %w", err)
	}

	slog.Info("Saved suggestions", "company_id", companyID, "count", len(suggestions))
	return nil
}

// GetPendingSuggestions returns a company's suggestions awaiting review.
func (s *SQLiteStorage) GetPendingSuggestions(ctx context.Context, companyID string) ([]model.Suggestion, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(companyID, "companyID"); err != nil {
		return nil, err
	}

	query := `
		SELECT transaction_id, account_id, account_name, vat_rate, vat_type, confidence, reasoning, status, created_at
		FROM suggestions
		WHERE company_id = ? AND status = ?
		ORDER BY created_at`

	rows, err := s.db.QueryContext(ctx, query, companyID, string(model.StatusPending))
	if err != nil {
		return nil, fmt.Errorf("failed to query suggestions: %w", err)
	}
	defer rows.Close()

	var suggestions []model.Suggestion
	for rows.Next() {
		var suggestion model.Suggestion
		var status string
		if err := rows.Scan(&suggestion.TransactionID, &suggestion.AccountID,
			&suggestion.AccountName, &suggestion.VATRate, &suggestion.VATType,
			&suggestion.Confidence, &suggestion.Reasoning, &status, &suggestion.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan suggestion: %w", err)
		}
		suggestion.Status = model.SuggestionStatus(status)
		suggestions = append(suggestions, suggestion)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating suggestions: %w", err)
	}

	return suggestions, nil
}
