package domain

import "github.com/shopspring/decimal"

// MonthAmount is one point of a monthly spending trend.
type MonthAmount struct {
	Month  string          `json:"month"`
	Amount decimal.Decimal `json:"amount"`
}

// CategoryAmount is a category with a spend amount.
type CategoryAmount struct {
	Category CategoryRef     `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// BudgetComparison is one budget-vs-actual row. Budget is zero for categories that
// have spend but no recurring budget.
type BudgetComparison struct {
	Category CategoryRef     `json:"category"`
	Budget   decimal.Decimal `json:"budget"`
	Actual   decimal.Decimal `json:"actual"`
}

// CategoryBreakdownRow is one slice of a spending breakdown.
type CategoryBreakdownRow struct {
	Category CategoryRef     `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Color    string          `json:"color"`
}

// DefaultTrendMonths is the default length of the monthly trend
const DefaultTrendMonths = 6

// AnalyticsSummary contains cross-period spending statistics
type AnalyticsSummary struct {
	Period              Period                 `json:"period"`
	AverageMonthlySpend decimal.Decimal        `json:"averageMonthlySpend"`
	TopCategory         *CategoryAmount        `json:"topCategory"`
	CategoryBreakdown   []CategoryBreakdownRow `json:"categoryBreakdown"`
	MonthlyTrend        []MonthAmount          `json:"monthlyTrend"`
	BudgetVsActual      []BudgetComparison     `json:"budgetVsActual"`
	TotalCategories     int                    `json:"totalCategories"`
	TotalTransactions   int                    `json:"totalTransactions"`
}
