// Package memory provides a canned advisory client for tests and for
// running without a Gemini API key.
package memory

import (
	"context"
	"strings"

	"butcem/internal/advisor"
	"butcem/internal/core"
)

type Advisor struct{}

var (
	_ advisor.CategorySuggester = (*Advisor)(nil)
	_ advisor.AnalysisGenerator = (*Advisor)(nil)
)

func New() *Advisor {
	return &Advisor{}
}

// SuggestCategory picks a label from the fixed set by keyword, defaulting to
// the catch-all last entry.
func (a *Advisor) SuggestCategory(ctx context.Context, description string) (string, error) {
	d := strings.ToLower(description)
	switch {
	case strings.Contains(d, "market"), strings.Contains(d, "restoran"), strings.Contains(d, "cafe"):
		return core.SuggestedCategories[0], nil // Yiyecek & İçecek
	case strings.Contains(d, "taksi"), strings.Contains(d, "otobüs"), strings.Contains(d, "metro"):
		return core.SuggestedCategories[1], nil // Ulaşım
	case strings.Contains(d, "fatura"), strings.Contains(d, "elektrik"), strings.Contains(d, "su"):
		return core.SuggestedCategories[3], nil // Faturalar
	default:
		return core.SuggestedCategories[len(core.SuggestedCategories)-1], nil // Diğer
	}
}

// GenerateAnalysis returns a fixed-shape report built from the same prompt
// inputs a real model would see.
func (a *Advisor) GenerateAnalysis(ctx context.Context, expenses []core.Expense, totalIncome, totalExpense core.Money) (string, error) {
	balance := core.Money{Cents: totalIncome.Cents - totalExpense.Cents}
	var sb strings.Builder
	sb.WriteString("OVERVIEW\n")
	sb.WriteString("Income " + totalIncome.Lira() + " TL, spending " + totalExpense.Lira() + " TL, balance " + balance.Lira() + " TL.\n")
	sb.WriteString("SAVING TIPS\nTrack daily purchases, set a weekly ceiling, review the largest category.\n")
	sb.WriteString("MONTH-END PROJECTION\nAt this pace the balance stays near " + balance.Lira() + " TL.")
	return sb.String(), nil
}
