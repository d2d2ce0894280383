package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/veldbooks/veldbooks/internal/cli"
)

func suggestionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "suggestions",
		Short: "List suggestions awaiting review",
		Long: `Show every saved suggestion that has not been accepted or rejected
yet, oldest first. Suggestions are created by 'veldbooks match --save'.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

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

			suggestions, err := db.GetPendingSuggestions(ctx, company)
			if err != nil {
				return fmt.Errorf("failed to load suggestions: %w", err)
			}

			if len(suggestions) == 0 {
				cmd.Println(cli.SuccessStyle.Render("No suggestions pending review"))
				return nil
			}

			cmd.Println(cli.TitleStyle.Render(fmt.Sprintf(
				"%d suggestions pending review for %s", len(suggestions), company)))
			for _, s := range suggestions {
				cmd.Printf("%s  %-12s -> %-30s %s\n",
					cli.SuccessStyle.Render(fmt.Sprintf("%3.0f%%", s.Confidence*100)),
					s.TransactionID,
					cli.BoldStyle.Render(s.AccountName),
					cli.SubtleStyle.Render(fmt.Sprintf("VAT %.0f%% %s - %s", s.VATRate, s.VATType, s.Reasoning)))
			}
			return nil
		},
	}
}
