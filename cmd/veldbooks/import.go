package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/veldbooks/veldbooks/internal/bulkcsv"
	"github.com/veldbooks/veldbooks/internal/cli"
	"github.com/veldbooks/veldbooks/internal/model"
	"github.com/veldbooks/veldbooks/internal/ofx"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [files...]",
		Short: "Import transactions from OFX/QFX bank statements or bulk-capture CSV files",
		Long: `Import financial transactions for a company. The format is detected from
the file extension: .ofx and .qfx files are parsed as bank statements,
.csv files as manual bulk capture (date,description,amount,type).

Examples:
  veldbooks import --company acme ~/Downloads/fnb_jan.ofx
  veldbooks import --company acme statements/*.qfx
  veldbooks import --company acme captured_expenses.csv`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImport,
	}

	cmd.Flags().BoolP("dry-run", "d", false, "Preview import without saving")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	company, err := requireCompany()
	if err != nil {
		return err
	}

	// Expand globs and collect all files
	var allFiles []string
	for _, pattern := range args {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			// If no glob matches, check if it's a direct file
			if _, err := os.Stat(pattern); err == nil {
				allFiles = append(allFiles, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
			continue
		}
		allFiles = append(allFiles, matches...)
	}
	if len(allFiles) == 0 {
		return fmt.Errorf("no files to import")
	}

	var transactions []model.Transaction
	for _, path := range allFiles {
		txns, err := parseFile(cmd, path, company)
		if err != nil {
			return fmt.Errorf("failed to import %s: %w", path, err)
		}
		slog.Info("Parsed file", "file", path, "transactions", len(txns))
		transactions = append(transactions, txns...)
	}

	if dryRun {
		cmd.Println(cli.TitleStyle.Render(fmt.Sprintf("Dry run: %d transactions parsed, nothing saved", len(transactions))))
		for _, txn := range transactions {
			cmd.Printf("  %s  %-8s  %10.2f  %s\n",
				txn.Date.Format("2006-01-02"), txn.Type, txn.Amount, txn.Description)
		}
		return nil
	}

	db, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("Failed to close database", "error", closeErr)
		}
	}()

	saved, err := db.SaveTransactions(ctx, transactions)
	if err != nil {
		return fmt.Errorf("failed to save transactions: %w", err)
	}

	cmd.Println(cli.SuccessStyle.Render(fmt.Sprintf(
		"Imported %d transactions for %s (%d duplicates skipped)",
		saved, company, len(transactions)-saved)))
	return nil
}

func parseFile(cmd *cobra.Command, path, company string) ([]model.Transaction, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".ofx", ".qfx":
		return ofx.NewParser().ParseFile(cmd.Context(), file, company)
	case ".csv":
		return bulkcsv.Read(file, company)
	default:
		return nil, fmt.Errorf("unsupported file extension %q", filepath.Ext(path))
	}
}
