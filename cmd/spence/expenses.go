package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/amoghbhat/spence/internal/cli"
	"github.com/amoghbhat/spence/internal/model"
	"github.com/amoghbhat/spence/internal/nlp"
	"github.com/spf13/cobra"
)

func expensesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expenses",
		Short: "List and manage recorded expenses",
	}

	cmd.AddCommand(listExpensesCmd())
	cmd.AddCommand(addExpenseCmd())
	cmd.AddCommand(deleteExpenseCmd())

	return cmd
}

func listExpensesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List expenses",
		Long: `List stored expenses, optionally filtered by category or by a
natural-language date phrase ("today", "last week", "5 march").`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			category, _ := cmd.Flags().GetString("category")
			when, _ := cmd.Flags().GetString("when")

			var expenses []model.Expense
			switch {
			case when != "":
				rng, ok := nlp.NewDateResolver().Resolve(when)
				if !ok {
					return fmt.Errorf("could not understand date %q", when)
				}
				expenses, err = store.ExpensesByDateRange(ctx, rng.StartMillis, rng.EndMillis)
			case category != "":
				expenses, err = store.ExpensesByCategory(ctx, category)
			default:
				expenses, err = store.ListExpenses(ctx)
			}
			if err != nil {
				return fmt.Errorf("failed to list expenses: %w", err)
			}

			if len(expenses) == 0 {
				fmt.Println(cli.InfoStyle.Render("No expenses found."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				cli.TableHeaderStyle.Render("ID"),
				cli.TableHeaderStyle.Render("Date"),
				cli.TableHeaderStyle.Render("Amount"),
				cli.TableHeaderStyle.Render("Description"),
				cli.TableHeaderStyle.Render("Category"))

			var total float64
			for _, expense := range expenses {
				total += expense.Amount
				fmt.Fprintf(w, "%d\t%s\t₹%.2f\t%s\t%s\n",
					expense.ID,
					expense.Date.Format("Jan 02, 2006"),
					expense.Amount,
					expense.Description,
					expense.Category)
			}
			fmt.Fprintf(w, "\t\t%s\t%s\t\n",
				cli.BoldStyle.Render(fmt.Sprintf("₹%.2f", total)),
				cli.SubtleStyle.Render(fmt.Sprintf("%d transactions", len(expenses))))
			return nil
		},
	}

	cmd.Flags().String("category", "", "Only show expenses in this category")
	cmd.Flags().String("when", "", "Only show expenses matching a date phrase")

	return cmd
}

func addExpenseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add [text...]",
		Short: "Add an expense from a natural-language sentence",
		Long: `Parse a sentence like "spent 200 on groceries" and store the
extracted expense. Shorthand for 'spence ask' restricted to adding.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			asst, _ := buildAssistant(store)
			result := asst.Process(ctx, strings.Join(args, " "))
			if result.Kind != model.ResultExpenseAdded {
				fmt.Println(cli.RenderResult(result))
				return fmt.Errorf("input was not recognized as an expense")
			}

			fmt.Println(cli.RenderResult(result))
			return nil
		},
	}
}

func deleteExpenseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an expense by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid expense id %q: %w", args[0], err)
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.DeleteExpense(ctx, id); err != nil {
				return fmt.Errorf("failed to delete expense %d: %w", id, err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted expense %d", id)))
			return nil
		},
	}
}
