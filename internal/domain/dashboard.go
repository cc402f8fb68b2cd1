package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryRef is the display identity of a category carried by derived views.
type CategoryRef struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Color string    `json:"color"`
	Icon  string    `json:"icon"`
}

// RefOf returns the display identity of a category.
func RefOf(c *Category) CategoryRef {
	return CategoryRef{ID: c.ID, Name: c.Name, Color: c.Color, Icon: c.Icon}
}

// UnknownCategoryRef is used when a derived view references a category that is not in
// the snapshot.
func UnknownCategoryRef(id uuid.UUID) CategoryRef {
	return CategoryRef{ID: id, Name: UnknownCategoryName, Color: DefaultCategoryColor, Icon: DefaultCategoryIcon}
}

// CategoryBudgetStatus is the utilization of one recurring budget in a month.
// When Budget is zero and Spent is positive the utilization is Unbounded and
// Percentage stays zero.
type CategoryBudgetStatus struct {
	BudgetID     uuid.UUID       `json:"budgetId"`
	CategoryID   uuid.UUID       `json:"categoryId"`
	Budget       decimal.Decimal `json:"budget"`
	Spent        decimal.Decimal `json:"spent"`
	Remaining    decimal.Decimal `json:"remaining"`
	Percentage   decimal.Decimal `json:"percentage"`
	Unbounded    bool            `json:"unbounded"`
	IsOverBudget bool            `json:"isOverBudget"`
}

// OverallBudgetStatus compares all spending in a month against the sum of every
// recurring budget. TotalSpent includes categories without a budget.
type OverallBudgetStatus struct {
	TotalBudget    decimal.Decimal `json:"totalBudget"`
	TotalSpent     decimal.Decimal `json:"totalSpent"`
	Remaining      decimal.Decimal `json:"remaining"`
	UtilizationPct decimal.Decimal `json:"utilizationPct"`
}

// BudgetStatusView is a CategoryBudgetStatus with its category's display identity.
type BudgetStatusView struct {
	CategoryBudgetStatus
	Category CategoryRef `json:"category"`
}

// RecentExpense is an expense with its category's display identity.
type RecentExpense struct {
	Expense  *Expense    `json:"expense"`
	Category CategoryRef `json:"category"`
}

// DefaultRecentTransactions is the number of recent expenses on the dashboard
const DefaultRecentTransactions = 5

// DashboardSummary contains the current month dashboard metrics
type DashboardSummary struct {
	Period           Period              `json:"period"`
	Label            string              `json:"label"`
	Total            decimal.Decimal     `json:"total"`
	TransactionCount int                 `json:"transactionCount"`
	BudgetStatus     []BudgetStatusView  `json:"budgetStatus"`
	Overall          OverallBudgetStatus `json:"overall"`
	Recent           []RecentExpense     `json:"recent"`
}
