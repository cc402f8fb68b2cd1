package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var ErrInsightsUnavailable = errors.New("insight generator is not configured")

// InsightGenerator turns a prompt into free text. The output is opaque.
type InsightGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// InsightFacts are the numbers handed to the insight generator alongside the text.
type InsightFacts struct {
	TotalExpenses        decimal.Decimal `json:"totalExpenses"`
	CurrentMonthExpenses decimal.Decimal `json:"currentMonthExpenses"`
	CurrentMonthBudget   decimal.Decimal `json:"currentMonthBudget"`
	NumTransactions      int             `json:"numTransactions"`
	Categories           int             `json:"categories"`
	BudgetsSet           int             `json:"budgetsSet"`
}

// Insight is the generated text and the facts it was generated from.
type Insight struct {
	Text    string        `json:"insights"`
	Summary *InsightFacts `json:"summary,omitempty"`
}
