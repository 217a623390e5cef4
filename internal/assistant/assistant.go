// Package assistant implements the natural-language front end: a
// deterministic intent router over the expense, category and budget
// stores, plus the query engine that answers analytic questions.
package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/amoghbhat/spence/internal/budget"
	"github.com/amoghbhat/spence/internal/model"
	"github.com/amoghbhat/spence/internal/nlp"
	"github.com/amoghbhat/spence/internal/service"
)

// Assistant routes free-form text to the add-expense, add-category or
// query pipelines. Classification is a priority chain: budget/query
// detection outranks category addition, which outranks expense
// detection, with query handling as the final fallback. A sentence
// readable as both a query and an expense ("how much did I spend on
// food") therefore resolves to query.
type Assistant struct {
	expenses   service.ExpenseStore
	categories service.CategoryStore
	tracker    *budget.Tracker
	engine     *QueryEngine
	resolver   *nlp.DateResolver
	now        func() time.Time
}

// New creates an assistant over the given stores.
func New(store service.Storage, tracker *budget.Tracker, resolver *nlp.DateResolver) *Assistant {
	reporter := NewReporter(store, resolver)
	return &Assistant{
		expenses:   store,
		categories: store,
		tracker:    tracker,
		engine:     NewQueryEngine(reporter, tracker, resolver),
		resolver:   resolver,
		now:        time.Now,
	}
}

// budgetQueryKeywords route text to the query pipeline. Several entries
// are regexes ("set.*budget") to survive words in between.
var budgetQueryKeywords = []*regexp.Regexp{
	regexp.MustCompile(`budget`), regexp.MustCompile(`limit`),
	regexp.MustCompile(`goal`), regexp.MustCompile(`target`),
	regexp.MustCompile(`set.*budget`), regexp.MustCompile(`my budget`),
	regexp.MustCompile(`budget.*status`), regexp.MustCompile(`update.*budget`),
	regexp.MustCompile(`change.*budget`), regexp.MustCompile(`modify.*budget`),
	regexp.MustCompile(`delete.*budget`), regexp.MustCompile(`remove.*budget`),
	regexp.MustCompile(`clear.*budget`), regexp.MustCompile(`how much`),
	regexp.MustCompile(`total`), regexp.MustCompile(`spent`),
	regexp.MustCompile(`spending`), regexp.MustCompile(`statistics`),
	regexp.MustCompile(`stats`), regexp.MustCompile(`insights`),
	regexp.MustCompile(`summary`), regexp.MustCompile(`overview`),
	regexp.MustCompile(`analysis`), regexp.MustCompile(`report`),
	regexp.MustCompile(`average`), regexp.MustCompile(`count`),
	regexp.MustCompile(`transactions`), regexp.MustCompile(`compare`),
	regexp.MustCompile(`comparison`), regexp.MustCompile(`trend`),
	regexp.MustCompile(`pattern`), regexp.MustCompile(`breakdown`),
}

// dateQueryPhrases mark sentences that scope spending to a date.
var dateQueryPhrases = []string{
	"expenses on", "expense on", "transactions on", "spending on",
	"expenses of", "expense of", "transactions of", "spending of",
	"expenses for", "expense for", "transactions for", "spending for",
	"insights on", "insights of", "breakdown on", "breakdown of",
	"insights for", "breakdown for", "analysis for", "analysis of",
	"spent on", "spent of", "paid on", "paid of", "bought on", "bought of",
}

var timePeriodPhrases = []string{
	"this week", "this month", "last week", "last month",
	"current week", "current month", "previous month",
}

var addCategoryPatterns = []*regexp.Regexp{
	regexp.MustCompile(`add.*to.*category`),
	regexp.MustCompile(`add.*category`),
	regexp.MustCompile(`create.*category`),
	regexp.MustCompile(`new category`),
}

// categoryNamePatterns extract the category word from an add request.
var categoryNamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)add\s+(\w+)\s+to\s+the?\s+category`),
	regexp.MustCompile(`(?i)add\s+(\w+)\s+category`),
	regexp.MustCompile(`(?i)create\s+(\w+)\s+category`),
	regexp.MustCompile(`(?i)new\s+category\s+(\w+)`),
}

// Process classifies one utterance and executes the matching pipeline.
func (a *Assistant) Process(ctx context.Context, input string) model.ProcessingResult {
	normalized := strings.ToLower(strings.TrimSpace(input))
	slog.Debug("processing input", "input", input)

	switch {
	case a.isBudgetOrQueryRequest(normalized):
		slog.Debug("classified as budget/query request")
		return a.handleQuery(ctx, input)

	case isAddCategoryRequest(normalized):
		slog.Debug("classified as category addition")
		return a.handleAddCategory(ctx, input)

	case nlp.IsExpenseInput(normalized):
		slog.Debug("classified as expense input")
		return a.handleAddExpense(ctx, input)

	default:
		slog.Debug("defaulting to query handling")
		return a.handleQuery(ctx, input)
	}
}

func (a *Assistant) isBudgetOrQueryRequest(input string) bool {
	for _, pattern := range budgetQueryKeywords {
		if pattern.MatchString(input) {
			return true
		}
	}
	for _, phrase := range dateQueryPhrases {
		if strings.Contains(input, phrase) {
			return true
		}
	}
	for _, phrase := range timePeriodPhrases {
		if strings.Contains(input, phrase) {
			return true
		}
	}
	return nlp.HasExplicitDate(input)
}

func isAddCategoryRequest(input string) bool {
	for _, pattern := range addCategoryPatterns {
		if pattern.MatchString(input) {
			return true
		}
	}
	return false
}

func (a *Assistant) handleAddExpense(ctx context.Context, input string) model.ProcessingResult {
	amount, ok := nlp.ExtractAmount(input)
	if !ok {
		return model.InvalidInputResult()
	}

	description := nlp.ExtractDescription(input)
	if description == "" {
		return model.InvalidInputResult()
	}

	categories, err := a.categories.Categories(ctx)
	if err != nil {
		slog.Error("failed to load categories", "error", err)
		return model.ErrorResult(fmt.Sprintf("Failed to process expense: %v", err))
	}

	expense := &model.Expense{
		Amount:      amount,
		Description: description,
		Category:    nlp.MatchCategory(description, categories),
		Date:        a.now(),
		CreatedAt:   a.now(),
	}

	id, err := a.expenses.InsertExpense(ctx, expense)
	if err != nil {
		slog.Error("failed to insert expense", "error", err)
		return model.ErrorResult(fmt.Sprintf("Failed to process expense: %v", err))
	}
	expense.ID = id

	slog.Debug("added expense", "description", expense.Description, "amount", expense.Amount, "category", expense.Category)
	return model.ExpenseAddedResult(expense)
}

func (a *Assistant) handleAddCategory(ctx context.Context, input string) model.ProcessingResult {
	name := ExtractCategoryName(input)
	if name == "" {
		return model.ErrorResult("Failed to add category. Please try again.")
	}

	category := model.Category{
		Name:     name,
		Keywords: GenerateCategoryKeywords(name),
	}
	if err := a.categories.AddCategory(ctx, category); err != nil {
		slog.Error("failed to add category", "name", name, "error", err)
		return model.ErrorResult(fmt.Sprintf("Failed to add category: %v", err))
	}

	return model.CategoryAddedResult(name)
}

func (a *Assistant) handleQuery(ctx context.Context, input string) model.ProcessingResult {
	result := a.engine.Answer(ctx, input)
	return model.QueryAnswerResult(result)
}

// ExtractCategoryName pulls the category word out of an add-category
// request and capitalizes it. Returns "" when no pattern matches.
func ExtractCategoryName(input string) string {
	for _, pattern := range categoryNamePatterns {
		if match := pattern.FindStringSubmatch(input); match != nil {
			return capitalize(match[1])
		}
	}
	return ""
}

// GenerateCategoryKeywords derives a starter keyword set from a new
// category's name: the name itself, a plural form, and a short prefix.
func GenerateCategoryKeywords(name string) []string {
	base := strings.ToLower(name)
	keywords := []string{base, base + "s"}
	if len(base) > 4 {
		keywords = append(keywords, base[:4])
	}
	return keywords
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
