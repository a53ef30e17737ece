// Package advisor defines the outbound ports for the generative-AI advisory
// service and the prompt construction shared by its implementations.
package advisor

import (
	"context"

	"butcem/internal/core"
)

// Ports for the external advisory collaborator. Both operations are
// single-shot request/response: no retry, no streaming, no fallback content.
type (
	// CategorySuggester proposes a category label for a free-text expense
	// description. The label is expected to come from
	// core.SuggestedCategories but is not validated against it by either
	// side.
	CategorySuggester interface {
		SuggestCategory(ctx context.Context, description string) (string, error)
	}

	// AnalysisGenerator produces a narrative monthly report from the
	// month's expenses and the two totals.
	AnalysisGenerator interface {
		GenerateAnalysis(ctx context.Context, expenses []core.Expense, totalIncome, totalExpense core.Money) (string, error)
	}
)
