package model

// QueryResult is the transient answer envelope produced by the query
// engine: rendered text plus the expenses that back it. Never persisted.
type QueryResult struct {
	Answer   string
	Expenses []Expense
}

// ResultKind tags the outcome of processing one user utterance.
type ResultKind string

const (
	// ResultExpenseAdded means the input was stored as a new expense.
	ResultExpenseAdded ResultKind = "expense_added"
	// ResultCategoryAdded means a new category was created.
	ResultCategoryAdded ResultKind = "category_added"
	// ResultQueryAnswer carries a rendered analytic answer.
	ResultQueryAnswer ResultKind = "query_answer"
	// ResultError carries a user-facing failure message.
	ResultError ResultKind = "error"
	// ResultInvalidInput means the input could not be parsed at all.
	ResultInvalidInput ResultKind = "invalid_input"
)

// ProcessingResult is the tagged union returned by the assistant. Exactly
// one of the payload fields is meaningful for a given Kind.
type ProcessingResult struct {
	Expense      *Expense
	Kind         ResultKind
	CategoryName string
	Answer       string
	Message      string
	Expenses     []Expense
}

// ExpenseAddedResult builds the add-expense success envelope.
func ExpenseAddedResult(e *Expense) ProcessingResult {
	return ProcessingResult{Kind: ResultExpenseAdded, Expense: e}
}

// CategoryAddedResult builds the add-category success envelope.
func CategoryAddedResult(name string) ProcessingResult {
	return ProcessingResult{Kind: ResultCategoryAdded, CategoryName: name}
}

// QueryAnswerResult wraps a query engine answer.
func QueryAnswerResult(r QueryResult) ProcessingResult {
	return ProcessingResult{Kind: ResultQueryAnswer, Answer: r.Answer, Expenses: r.Expenses}
}

// ErrorResult builds a user-facing failure envelope.
func ErrorResult(msg string) ProcessingResult {
	return ProcessingResult{Kind: ResultError, Message: msg}
}

// InvalidInputResult marks input that parsed to nothing actionable.
func InvalidInputResult() ProcessingResult {
	return ProcessingResult{Kind: ResultInvalidInput}
}
