package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/veldbooks/veldbooks/internal/model"
)

// SaveTransactions persists imported transactions. Duplicates (by content
// hash) are skipped silently so re-importing the same statement is safe.
func (s *SQLiteStorage) SaveTransactions(ctx context.Context, transactions []model.Transaction) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateTransactions(transactions); err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO transactions (id, company_id, hash, date, description, amount, direction, source)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	saved := 0
	for i := range transactions {
		txn := transactions[i]
		if txn.Hash == "" {
			txn.Hash = txn.GenerateHash()
		}

		result, err := stmt.ExecContext(ctx,
			txn.ID, txn.CompanyID, txn.Hash, txn.Date, txn.Description,
			txn.Amount, string(txn.Type), txn.Source)
		if err != nil {
			return 0, fmt.Errorf("failed to save transaction %s: %w", txn.ID, err)
		}
		n, _ := result.RowsAffected()
		saved += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transactions: %w", err)
	}

	slog.Info("Saved transactions",
		"total", len(transactions),
		"saved", saved,
		"duplicates", len(transactions)-saved)
	return saved, nil
}

// GetTransactionsToMatch returns a company's transactions that have no
// suggestion yet, oldest first.
func (s *SQLiteStorage) GetTransactionsToMatch(ctx context.Context, companyID string) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(companyID, "companyID"); err != nil {
		return nil, err
	}

	query := `
		SELECT t.id, t.company_id, t.date, t.description, t.amount, t.direction, t.source, t.hash
		FROM transactions t
		LEFT JOIN suggestions s ON s.transaction_id = t.id
		WHERE t.company_id = ? AND s.transaction_id IS NULL
		ORDER BY t.date, t.id`

	rows, err := s.db.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []model.Transaction
	for rows.Next() {
		var txn model.Transaction
		var direction string
		if err := rows.Scan(&txn.ID, &txn.CompanyID, &txn.Date, &txn.Description,
			&txn.Amount, &direction, &txn.Source, &txn.Hash); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txn.Type = model.TransactionDirection(direction)
		transactions = append(transactions, txn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	slog.Debug("retrieved transactions to match",
		"company_id", companyID,
		"count", len(transactions))
	return transactions, nil
}
