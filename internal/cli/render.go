package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/amoghbhat/spence/internal/model"
)

// expenseDateLayout matches the chat transcript format, e.g.
// "Sep 01, 2026 at 14:05".
const expenseDateLayout = "Jan 02, 2006 at 15:04"

// WelcomeMessage greets the user at the start of an interactive session.
const WelcomeMessage = "Hi! I'm your AI expense assistant. You can:\n\n" +
	"💰 Add expenses: \"I bought coffee for 50 rupees\"\n" +
	"📂 Add categories: \"Add fitness to the category\"\n" +
	"📊 Ask questions: \"How much did I spend this month?\"\n\n" +
	"How can I help you today?"

// RenderResult renders one assistant result as chat-style terminal text.
func RenderResult(result model.ProcessingResult) string {
	switch result.Kind {
	case model.ResultExpenseAdded:
		return renderExpenseAdded(result.Expense)
	case model.ResultCategoryAdded:
		return SuccessStyle.Render(fmt.Sprintf(
			"📂 Category %q added successfully!\n\nYou can now use this category for your expenses.",
			result.CategoryName))
	case model.ResultQueryAnswer:
		return result.Answer
	case model.ResultError:
		return ErrorStyle.Render("❌ " + result.Message)
	case model.ResultInvalidInput:
		return WarningStyle.Render("🤔 I couldn't understand that. Could you please rephrase?\n\n" +
			"Try saying something like:\n" +
			"• \"I bought lunch for 150 rupees\"\n" +
			"• \"How much did I spend on food?\"\n" +
			"• \"Add gym to the category\"")
	default:
		return ErrorStyle.Render("Sorry, something went wrong. Please try again.")
	}
}

func renderExpenseAdded(expense *model.Expense) string {
	if expense == nil {
		return ErrorStyle.Render("Sorry, something went wrong. Please try again.")
	}
	var b strings.Builder
	b.WriteString("✅ Expense Added Successfully!\n\n")
	fmt.Fprintf(&b, "💰 Amount: ₹%.2f\n", expense.Amount)
	fmt.Fprintf(&b, "📝 Description: %s\n", expense.Description)
	fmt.Fprintf(&b, "📂 Category: %s\n", expense.Category)
	fmt.Fprintf(&b, "📅 Date: %s", formatExpenseDate(expense.Date))
	return SuccessStyle.Render(b.String())
}

func formatExpenseDate(t time.Time) string {
	return t.Format(expenseDateLayout)
}

// RenderExpenseRow formats one expense for list output.
func RenderExpenseRow(expense model.Expense) string {
	return fmt.Sprintf("• ₹%.2f  %s  %s  %s",
		expense.Amount,
		expense.Description,
		SubtleStyle.Render(expense.Category),
		SubtleStyle.Render(expense.Date.Format("Jan 02")))
}
