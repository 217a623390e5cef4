package main

import (
	"fmt"
	"math"
	"strconv"

	"github.com/amoghbhat/spence/internal/cli"
	"github.com/amoghbhat/spence/internal/nlp"
	"github.com/spf13/cobra"
)

func budgetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Manage monthly budgets",
		Long: `Set, inspect and delete monthly spending budgets. Months are
keyed as YYYY-MM; omitting --month targets the current month.`,
	}

	cmd.PersistentFlags().String("month", "", "Target month (YYYY-MM, default current)")

	cmd.AddCommand(setBudgetCmd())
	cmd.AddCommand(budgetStatusCmd())
	cmd.AddCommand(deleteBudgetCmd())
	cmd.AddCommand(budgetMonthsCmd())
	cmd.AddCommand(compareBudgetCmd())

	return cmd
}

func setBudgetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <amount>",
		Short: "Set the budget for a month",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			amount, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[0], err)
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			_, tracker := buildAssistant(store)
			month, _ := cmd.Flags().GetString("month")
			if !tracker.Set(ctx, amount, month) {
				return fmt.Errorf("failed to set budget (amount must be positive)")
			}

			status := tracker.Status(ctx, month)
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Budget set to ₹%.2f for %s", amount, nlp.MonthKeyName(status.Month))))
			fmt.Printf("Current spending: ₹%.2f\nRemaining: ₹%.2f\n", status.TotalSpent, status.Remaining)
			return nil
		},
	}
}

func budgetStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show spending against the budget",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			_, tracker := buildAssistant(store)
			month, _ := cmd.Flags().GetString("month")
			status := tracker.Status(ctx, month)
			if status.Budget == nil {
				fmt.Println(cli.InfoStyle.Render(fmt.Sprintf(
					"No budget set for %s. Use 'spence budget set <amount>'.", nlp.MonthKeyName(status.Month))))
				return nil
			}

			remainingLine := cli.FormatSuccess(fmt.Sprintf("Remaining: ₹%.2f", status.Remaining))
			if status.IsOverBudget {
				remainingLine = cli.FormatWarning(fmt.Sprintf("Over budget by ₹%.2f", math.Abs(status.Remaining)))
			}

			fmt.Println(cli.FormatTitle("Budget Status for " + nlp.MonthKeyName(status.Month)))
			fmt.Printf("Budget: ₹%.2f\n", status.Budget.Amount)
			fmt.Printf("Spent:  ₹%.2f (%.1f%%)\n", status.TotalSpent, status.PercentUsed)
			fmt.Println(remainingLine)
			return nil
		},
	}
}

func deleteBudgetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete",
		Short: "Delete the budget for a month",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			_, tracker := buildAssistant(store)
			month, _ := cmd.Flags().GetString("month")
			if !tracker.Delete(ctx, month) {
				fmt.Println(cli.InfoStyle.Render("No budget exists to delete."))
				return nil
			}

			fmt.Println(cli.FormatSuccess("Budget deleted"))
			return nil
		},
	}
}

func budgetMonthsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "months",
		Short: "List months with a budget",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			_, tracker := buildAssistant(store)
			months := tracker.Months(ctx)
			if len(months) == 0 {
				fmt.Println(cli.InfoStyle.Render("No budgets set yet."))
				return nil
			}
			for _, month := range months {
				fmt.Printf("%s  (%s)\n", month, nlp.MonthKeyName(month))
			}
			return nil
		},
	}
}

func compareBudgetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compare",
		Short: "Compare a month's spending with the previous month",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			_, tracker := buildAssistant(store)
			month, _ := cmd.Flags().GetString("month")
			comparison := tracker.MonthlyComparison(ctx, month)

			fmt.Println(cli.FormatTitle("Monthly Comparison"))
			fmt.Printf("%s: ₹%.2f\n", nlp.MonthKeyName(comparison.CurrentMonth.Month), comparison.CurrentMonth.TotalSpent)
			fmt.Printf("%s: ₹%.2f\n", nlp.MonthKeyName(comparison.PreviousMonth.Month), comparison.PreviousMonth.TotalSpent)

			switch {
			case comparison.SpendingChange > 0:
				fmt.Println(cli.FormatWarning(fmt.Sprintf(
					"Spending increased by ₹%.2f (%.1f%%)", comparison.SpendingChange, comparison.PercentChange)))
			case comparison.SpendingChange < 0:
				fmt.Println(cli.FormatSuccess(fmt.Sprintf(
					"Spending decreased by ₹%.2f (%.1f%%)", math.Abs(comparison.SpendingChange), math.Abs(comparison.PercentChange))))
			default:
				fmt.Println(cli.InfoStyle.Render("Spending is unchanged."))
			}
			return nil
		},
	}
}
