package advisor

import (
	"fmt"
	"sort"
	"strings"

	"butcem/internal/core"
)

// CategoryPrompt builds the single-word category suggestion prompt around
// the fixed ten-label set.
func CategoryPrompt(description string) string {
	return fmt.Sprintf(
		"Suggest the single most suitable expense category for the description %q. "+
			"Category options: %s. Reply with only the category name, nothing else.",
		description, strings.Join(core.SuggestedCategories, ", "))
}

// AnalysisPrompt builds the monthly financial analysis prompt. Per-category
// sums are aggregated here from the expense list; the storage layer is not
// consulted.
func AnalysisPrompt(expenses []core.Expense, totalIncome, totalExpense core.Money) string {
	byCategory := make(map[string]int64)
	var order []string
	for _, e := range expenses {
		if _, seen := byCategory[e.Category]; !seen {
			order = append(order, e.Category)
		}
		byCategory[e.Category] += e.Amount.Cents
	}
	sort.SliceStable(order, func(i, j int) bool {
		return byCategory[order[i]] > byCategory[order[j]]
	})

	var breakdown strings.Builder
	for _, cat := range order {
		fmt.Fprintf(&breakdown, "%s: %s TL\n", cat, core.Money{Cents: byCategory[cat]}.Lira())
	}
	categoryBreakdown := strings.TrimRight(breakdown.String(), "\n")
	if categoryBreakdown == "" {
		categoryBreakdown = "No expenses yet"
	}

	balance := core.Money{Cents: totalIncome.Cents - totalExpense.Cents}

	return fmt.Sprintf(`You are a professional personal finance advisor.

My income: %s TL
My total spending: %s TL
Remaining balance: %s TL

Spending by category:
%s

Number of expenses: %d

Please analyze this data with the following sections:
1. OVERVIEW - assess the income/spending balance
2. SAVING TIPS - give at least 3 suggestions
3. WATCH OUT - critique the spending habits
4. MONTH-END PROJECTION - what happens by month end at this pace

Keep the tone friendly, clear and motivating.`,
		totalIncome.Lira(), totalExpense.Lira(), balance.Lira(),
		categoryBreakdown, len(expenses))
}
