package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/veldbooks/veldbooks/internal/cli"
)

func accountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Manage a company's chart of accounts",
	}

	cmd.AddCommand(accountsListCmd())
	cmd.AddCommand(accountsAddCmd())
	cmd.AddCommand(accountsSeedCmd())

	return cmd
}

func accountsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the company's active accounts",
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

			accounts, err := db.GetAccounts(ctx, company)
			if err != nil {
				return fmt.Errorf("failed to load accounts: %w", err)
			}

			if len(accounts) == 0 {
				cmd.Println(cli.WarningStyle.Render(
					"No accounts found; run 'veldbooks accounts seed' to create the default chart"))
				return nil
			}

			cmd.Println(cli.TitleStyle.Render(fmt.Sprintf("Chart of accounts for %s", company)))
			for _, account := range accounts {
				cmd.Printf("  %-4s  %-30s  %s\n", account.ID, account.Name, cli.SubtleStyle.Render(account.Type))
			}
			return nil
		},
	}
}

func accountsAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add [name] [type]",
		Short: "Add an account (type: Income, Expense, Asset, Liability)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			account, err := db.CreateAccount(ctx, company, args[0], args[1])
			if err != nil {
				return fmt.Errorf("failed to create account: %w", err)
			}

			cmd.Println(cli.SuccessStyle.Render(
				fmt.Sprintf("Created account %s: %s (%s)", account.ID, account.Name, account.Type)))
			return nil
		},
	}
}

func accountsSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the default small-business chart of accounts",
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

			created, err := db.SeedDefaultChart(ctx, company)
			if err != nil {
				return fmt.Errorf("failed to seed chart: %w", err)
			}

			cmd.Println(cli.SuccessStyle.Render(
				fmt.Sprintf("Seeded %d accounts for %s", created, company)))
			return nil
		},
	}
}
