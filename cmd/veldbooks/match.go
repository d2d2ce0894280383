package main

import (
	"fmt"
	"log/slog"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/veldbooks/veldbooks/internal/cli"
	"github.com/veldbooks/veldbooks/internal/common"
	"github.com/veldbooks/veldbooks/internal/matcher"
	"github.com/veldbooks/veldbooks/internal/model"
)

func matchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Suggest ledger accounts for unmatched transactions",
		Long: `Run the classifier over every imported transaction that has no
suggestion yet, and print the proposed account, VAT treatment, and
confidence for each. Suggestions are only persisted with --save, and even
then they stay pending until a human accepts them.

Examples:
  veldbooks match --company acme
  veldbooks match --company acme --save
  veldbooks match --company acme --workers 8`,
		RunE: runMatch,
	}

	cmd.Flags().Bool("save", false, "Persist suggestions for review")
	cmd.Flags().Int("workers", 1, "Transactions matched concurrently")

	_ = viper.BindPFlag("match.save", cmd.Flags().Lookup("save"))
	_ = viper.BindPFlag("match.workers", cmd.Flags().Lookup("workers"))

	return cmd
}

func runMatch(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	save := viper.GetBool("match.save")
	workers := viper.GetInt("match.workers")

	company, err := requireCompany()
	if err != nil {
		return err
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

	chart, err := db.GetAccounts(ctx, company)
	if err != nil {
		return fmt.Errorf("failed to load chart of accounts: %w", err)
	}
	if len(chart) == 0 {
		return common.NewUserError(
			fmt.Sprintf("company %s has no chart of accounts; run 'veldbooks accounts seed' first", company),
			common.ErrNoAccounts)
	}

	transactions, err := db.GetTransactionsToMatch(ctx, company)
	if err != nil {
		return fmt.Errorf("failed to load transactions: %w", err)
	}
	if len(transactions) == 0 {
		cmd.Println(cli.SuccessStyle.Render("Nothing to match; all transactions have suggestions"))
		return nil
	}

	bar := progressbar.Default(int64(len(transactions)), "matching")
	m := matcher.New(
		matcher.WithObserver(progressObserver{bar: bar}),
		matcher.WithWorkers(workers),
	)

	results, err := m.MatchTransactions(ctx, transactions, chart)
	if err != nil {
		return fmt.Errorf("matching failed: %w", err)
	}
	_ = bar.Finish()

	printResults(cmd, results)

	if save {
		var suggestions []model.Suggestion
		for _, result := range results {
			if result.Suggestion != nil {
				suggestions = append(suggestions, *result.Suggestion)
			}
		}
		if len(suggestions) > 0 {
			if err := db.SaveSuggestions(ctx, company, suggestions); err != nil {
				return fmt.Errorf("failed to save suggestions: %w", err)
			}
		}
		cmd.Println(cli.SuccessStyle.Render(fmt.Sprintf("Saved %d suggestions for review", len(suggestions))))
	}

	return nil
}

// printResults renders one line per transaction. Unclassified transactions
// get a distinct marker so reviewers see them before low-confidence guesses.
func printResults(cmd *cobra.Command, results []matcher.Match) {
	matched := 0
	for _, result := range results {
		txn := result.Transaction
		if result.Suggestion == nil {
			cmd.Printf("%s  %s  %s\n",
				cli.WarningStyle.Render("UNCLASSIFIED"),
				txn.Date.Format("2006-01-02"),
				txn.Description)
			continue
		}
		matched++
		s := result.Suggestion
		cmd.Printf("%s  %s  %-40s -> %s  %s\n",
			cli.SuccessStyle.Render(fmt.Sprintf("%3.0f%%", s.Confidence*100)),
			txn.Date.Format("2006-01-02"),
			truncate(txn.Description, 40),
			cli.BoldStyle.Render(s.AccountName),
			cli.SubtleStyle.Render(fmt.Sprintf("VAT %.0f%% %s - %s", s.VATRate, s.VATType, s.Reasoning)))
	}

	cmd.Println(cli.TitleStyle.Render(fmt.Sprintf(
		"Matched %d of %d transactions", matched, len(results))))
}

// truncate shortens s to at most n display characters. Counting runes rather
// than bytes keeps descriptions with accented or non-Latin characters intact.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

// progressObserver advances the progress bar as transactions are matched and
// keeps the slog trace from the default observer.
type progressObserver struct {
	bar *progressbar.ProgressBar
}

func (progressObserver) BatchStarted(total int, chart []model.ChartAccount) {
	matcher.SlogObserver{}.BatchStarted(total, chart)
}

func (o progressObserver) Matched(txn model.Transaction, suggestion *model.Suggestion) {
	matcher.SlogObserver{}.Matched(txn, suggestion)
	_ = o.bar.Add(1)
}

func (o progressObserver) Unmatched(txn model.Transaction) {
	matcher.SlogObserver{}.Unmatched(txn)
	_ = o.bar.Add(1)
}
