package analytics

import (
	"github.com/dafibh/spendboard/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Evaluate computes the utilization of every recurring budget against agg. Categories
// without a budget are not part of the result.
func Evaluate(budgets []*domain.RecurringBudget, agg domain.MonthlyAggregate) []domain.CategoryBudgetStatus {
	statuses := make([]domain.CategoryBudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		if b == nil {
			continue
		}
		spent := agg.CategoryTotalFor(b.CategoryID)
		percentage, unbounded := utilization(spent, b.Amount)

		statuses = append(statuses, domain.CategoryBudgetStatus{
			BudgetID:     b.ID,
			CategoryID:   b.CategoryID,
			Budget:       b.Amount,
			Spent:        spent,
			Remaining:    b.Amount.Sub(spent),
			Percentage:   percentage,
			Unbounded:    unbounded,
			IsOverBudget: spent.GreaterThan(b.Amount),
		})
	}
	return statuses
}

// EvaluateOverall compares the month's total spending, including categories that have
// no budget, with the sum of all recurring budgets.
func EvaluateOverall(budgets []*domain.RecurringBudget, agg domain.MonthlyAggregate) domain.OverallBudgetStatus {
	totalBudget := decimal.Zero
	for _, b := range budgets {
		if b != nil {
			totalBudget = totalBudget.Add(b.Amount)
		}
	}

	utilizationPct := decimal.Zero
	if totalBudget.IsPositive() {
		utilizationPct = agg.Total.Div(totalBudget).Mul(hundred)
	}

	return domain.OverallBudgetStatus{
		TotalBudget:    totalBudget,
		TotalSpent:     agg.Total,
		Remaining:      totalBudget.Sub(agg.Total),
		UtilizationPct: utilizationPct,
	}
}

// utilization returns spent as a percentage of ceiling. A zero ceiling with positive
// spend is unbounded.
func utilization(spent, ceiling decimal.Decimal) (decimal.Decimal, bool) {
	if ceiling.IsPositive() {
		return spent.Div(ceiling).Mul(hundred), false
	}
	if spent.IsPositive() {
		return decimal.Zero, true
	}
	return decimal.Zero, false
}
