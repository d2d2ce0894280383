// Package bulkcsv reads manually captured transactions from CSV files with
// the columns date,description,amount,type.
package bulkcsv

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/veldbooks/veldbooks/internal/model"
)

const dateLayout = "2006-01-02"

// Read parses a bulk-capture CSV into transactions for the given company.
// Lines that cannot be parsed are skipped with a debug log rather than
// failing the whole file; an empty or header-only file is an error.
func Read(reader io.Reader, companyID string) ([]model.Transaction, error) {
	r := csv.NewReader(reader)
	r.FieldsPerRecord = -1 // validate column counts manually

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv is empty")
	}

	// Skip the header row if present
	start := 0
	if len(records[0]) >= 4 && strings.EqualFold(strings.TrimSpace(records[0][0]), "date") {
		start = 1
	}

	transactions := make([]model.Transaction, 0, len(records)-start)
	for i := start; i < len(records); i++ {
		record := records[i]
		if len(record) < 4 {
			slog.Debug("csv line has fewer than 4 fields, skipping", "line", i+1)
			continue
		}

		date, err := time.Parse(dateLayout, strings.TrimSpace(record[0]))
		if err != nil {
			slog.Debug("invalid date, skipping", "line", i+1, "error", err)
			continue
		}

		description := strings.TrimSpace(record[1])
		if description == "" {
			slog.Debug("empty description, skipping", "line", i+1)
			continue
		}

		amountStr := strings.ReplaceAll(strings.TrimSpace(record[2]), ",", ".")
		amount, err := strconv.ParseFloat(amountStr, 64)
		if err != nil {
			slog.Debug("invalid amount, skipping", "line", i+1, "error", err)
			continue
		}

		direction := model.TransactionDirection(strings.ToLower(strings.TrimSpace(record[3])))
		if !direction.Valid() {
			slog.Debug("unknown transaction type, skipping", "line", i+1, "type", record[3])
			continue
		}

		txn := model.Transaction{
			ID:          uuid.NewString(),
			CompanyID:   companyID,
			Date:        date,
			Description: description,
			Amount:      amount,
			Type:        direction,
			Source:      "csv",
		}
		txn.Hash = txn.GenerateHash()
		transactions = append(transactions, txn)
	}

	if len(transactions) == 0 {
		return nil, fmt.Errorf("csv contained no parseable transactions")
	}

	return transactions, nil
}
