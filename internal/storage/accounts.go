package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/veldbooks/veldbooks/internal/model"
)

// GetAccounts returns a company's active chart of accounts. Every query in
// this layer filters on company_id; one tenant never sees another's rows.
func (s *SQLiteStorage) GetAccounts(ctx context.Context, companyID string) ([]model.ChartAccount, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(companyID, "companyID"); err != nil {
		return nil, err
	}

	query := `
		SELECT id, company_id, name, type, is_active, created_at
		FROM accounts
		WHERE company_id = ? AND is_active = 1
		ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []model.ChartAccount
	for rows.Next() {
		var account model.ChartAccount
		var id int64
		if err := rows.Scan(&id, &account.CompanyID, &account.Name, &account.Type, &account.IsActive, &account.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		account.ID = strconv.FormatInt(id, 10)
		accounts = append(accounts, account)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating accounts: %w", err)
	}

	slog.Debug("retrieved accounts", "company_id", companyID, "count", len(accounts))
	return accounts, nil
}

// CreateAccount adds an account to a company's chart and returns it with its
// assigned ID.
func (s *SQLiteStorage) CreateAccount(ctx context.Context, companyID, name, accountType string) (*model.ChartAccount, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(companyID, "companyID"); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}
	if err := validateString(accountType, "accountType"); err != nil {
		return nil, err
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO accounts (company_id, name, type) VALUES (?, ?, ?)`,
		companyID, name, accountType)
	if err != nil {
		return nil, fmt.Errorf("failed to create account %q: %w", name, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get account ID: %w", err)
	}

	return &model.ChartAccount{
		ID:        strconv.FormatInt(id, 10),
		CompanyID: companyID,
		Name:      name,
		Type:      accountType,
		IsActive:  true,
	}, nil
}

// GetAccountByName returns a company's account by name, or nil if absent.
func (s *SQLiteStorage) GetAccountByName(ctx context.Context, companyID, name string) (*model.ChartAccount, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	query := `
		SELECT id, company_id, name, type, is_active, created_at
		FROM accounts
		WHERE company_id = ? AND name = ? AND is_active = 1`

	var account model.ChartAccount
	var id int64
	err := s.db.QueryRowContext(ctx, query, companyID, name).Scan(
		&id, &account.CompanyID, &account.Name, &account.Type, &account.IsActive, &account.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil // Account not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query account: %w", err)
	}

	account.ID = strconv.FormatInt(id, 10)
	return &account, nil
}

// SeedDefaultChart creates the standard small-business chart of accounts for
// a company that doesn't have one yet. Existing accounts are left alone.
func (s *SQLiteStorage) SeedDefaultChart(ctx context.Context, companyID string) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateString(companyID, "companyID"); err != nil {
		return 0, err
	}

	defaults := []struct {
		name        string
		accountType string
	}{
		{"Sales Revenue", "Income"},
		{"Interest Received", "Income"},
		{"Other Income", "Income"},
		{"Employee Costs", "Expense"},
		{"Bank Charges", "Expense"},
		{"Rent Expense", "Expense"},
		{"Utilities", "Expense"},
		{"Telephone & Internet", "Expense"},
		{"Transport & Travel", "Expense"},
		{"Insurance", "Expense"},
		{"Professional Fees", "Expense"},
		{"Marketing & Advertising", "Expense"},
		{"Office Supplies", "Expense"},
		{"Equipment & Furniture", "Expense"},
		{"Repairs & Maintenance", "Expense"},
		{"Software & Technology", "Expense"},
		{"General Expenses", "Expense"},
	}

	created := 0
	for _, d := range defaults {
		result, err := s.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO accounts (company_id, name, type) VALUES (?, ?, ?)`,
			companyID, d.name, d.accountType)
		if err != nil {
			return created, fmt.Errorf("failed to seed account %q: %w", d.name, err)
		}
		n, _ := result.RowsAffected()
		created += int(n)
	}

	slog.Info("Seeded default chart of accounts", "company_id", companyID, "created", created)
	return created, nil
}
