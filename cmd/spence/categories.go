package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/amoghbhat/spence/internal/assistant"
	"github.com/amoghbhat/spence/internal/cli"
	"github.com/amoghbhat/spence/internal/model"
	"github.com/spf13/cobra"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage expense categories",
		Long:  `List, add, and delete the categories used to classify expenses.`,
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())
	cmd.AddCommand(keywordsCmd())
	cmd.AddCommand(findCategoryCmd())
	cmd.AddCommand(deleteCategoryCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			categories, err := store.Categories(ctx)
			if err != nil {
				return fmt.Errorf("failed to get categories: %w", err)
			}

			if len(categories) == 0 {
				fmt.Println(cli.InfoStyle.Render("No categories found. Use 'spence categories add' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\n",
				cli.TableHeaderStyle.Render("Name"),
				cli.TableHeaderStyle.Render("Keywords"),
				cli.TableHeaderStyle.Render("Default"))

			for _, category := range categories {
				marker := ""
				if category.IsDefault {
					marker = cli.SuccessIcon
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n",
					category.Name,
					strings.Join(category.Keywords, ", "),
					marker)
			}
			return nil
		},
	}
}

func addCategoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new category",
		Long: `Create a category. Matching keywords default to variants of the
name; pass --keywords to set them explicitly.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			keywords, _ := cmd.Flags().GetStringSlice("keywords")
			if len(keywords) == 0 {
				keywords = assistant.GenerateCategoryKeywords(args[0])
			}

			category := model.Category{Name: args[0], Keywords: keywords}
			if err := store.AddCategory(ctx, category); err != nil {
				return fmt.Errorf("failed to add category: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added category %q with keywords [%s]",
				args[0], strings.Join(keywords, ", "))))
			return nil
		},
	}

	cmd.Flags().StringSlice("keywords", nil, "Comma-separated matching keywords")

	return cmd
}

func keywordsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keywords <name> <keyword>...",
		Short: "Replace a category's matching keywords",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.UpdateCategoryKeywords(ctx, args[0], args[1:]); err != nil {
				return fmt.Errorf("failed to update keywords: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Updated keywords for %q", args[0])))
			return nil
		},
	}
}

func findCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "find <keyword>",
		Short: "Find categories matching a keyword",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			matches, err := store.SearchCategoriesByKeyword(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to search categories: %w", err)
			}

			if len(matches) == 0 {
				fmt.Println(cli.InfoStyle.Render(fmt.Sprintf("No categories match %q.", args[0])))
				return nil
			}
			for _, category := range matches {
				fmt.Printf("%s %s\n", cli.FolderIcon, category.Name)
			}
			return nil
		},
	}
}

func deleteCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a user-created category",
		Long:  `Delete a category. Seeded default categories cannot be removed.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.DeleteCategory(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to delete category %q: %w", args[0], err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted category %q", args[0])))
			return nil
		},
	}
}
