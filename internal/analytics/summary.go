package analytics

import (
	"sort"
	"strings"
	"time"

	"github.com/dafibh/spendboard/internal/domain"
	"github.com/dafibh/spendboard/internal/util"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MonthlyTrend returns exactly n monthly totals, oldest first, for the contiguous
// months ending with the month containing ref. Months without expenses are zero.
func MonthlyTrend(expenses []*domain.Expense, n int, ref time.Time) []domain.MonthAmount {
	if n <= 0 {
		return []domain.MonthAmount{}
	}

	current := util.ResolveMonth(ref)
	trend := make([]domain.MonthAmount, n)
	for i := 0; i < n; i++ {
		p := util.ShiftMonth(current, i-(n-1))
		trend[i] = domain.MonthAmount{
			Month:  p.Key,
			Amount: Aggregate(expenses, p).Total,
		}
	}
	return trend
}

// AverageMonthlySpend is the arithmetic mean of the trend amounts.
func AverageMonthlySpend(trend []domain.MonthAmount) decimal.Decimal {
	if len(trend) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, m := range trend {
		sum = sum.Add(m.Amount)
	}
	return sum.Div(decimal.NewFromInt(int64(len(trend))))
}

// TopCategory returns the category with the largest total in agg, ties broken by the
// lower id. It returns nil when agg has no spend.
func TopCategory(agg domain.MonthlyAggregate, categories []*domain.Category) *domain.CategoryAmount {
	if len(agg.ByCategory) == 0 {
		return nil
	}

	var (
		bestID    uuid.UUID
		bestTotal decimal.Decimal
		found     bool
	)
	for id, ct := range agg.ByCategory {
		if !found ||
			ct.Total.GreaterThan(bestTotal) ||
			(ct.Total.Equal(bestTotal) && compareIDs(id, bestID) < 0) {
			bestID, bestTotal, found = id, ct.Total, true
		}
	}

	return &domain.CategoryAmount{
		Category: IndexCategories(categories).Ref(bestID),
		Amount:   bestTotal,
	}
}

// BudgetVsActual returns one row per category that has a recurring budget or spend in
// agg, ordered by category name.
func BudgetVsActual(budgets []*domain.RecurringBudget, agg domain.MonthlyAggregate, categories []*domain.Category) []domain.BudgetComparison {
	refs := IndexCategories(categories)
	rows := make(map[uuid.UUID]*domain.BudgetComparison)

	row := func(id uuid.UUID) *domain.BudgetComparison {
		r, ok := rows[id]
		if !ok {
			r = &domain.BudgetComparison{
				Category: refs.Ref(id),
				Budget:   decimal.Zero,
				Actual:   agg.CategoryTotalFor(id),
			}
			rows[id] = r
		}
		return r
	}

	for _, b := range budgets {
		if b != nil {
			row(b.CategoryID).Budget = b.Amount
		}
	}
	for id := range agg.ByCategory {
		row(id)
	}

	result := make([]domain.BudgetComparison, 0, len(rows))
	for _, r := range rows {
		result = append(result, *r)
	}
	sort.Slice(result, func(i, j int) bool {
		return byName(result[i].Category, result[j].Category)
	})
	return result
}

// CategoryBreakdown returns the non-zero category totals of agg, largest first.
func CategoryBreakdown(agg domain.MonthlyAggregate, categories []*domain.Category) []domain.CategoryBreakdownRow {
	refs := IndexCategories(categories)
	rows := make([]domain.CategoryBreakdownRow, 0, len(agg.ByCategory))
	for id, ct := range agg.ByCategory {
		if ct.Total.IsZero() {
			continue
		}
		ref := refs.Ref(id)
		rows = append(rows, domain.CategoryBreakdownRow{
			Category: ref,
			Amount:   ct.Total,
			Color:    ref.Color,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].Amount.Equal(rows[j].Amount) {
			return rows[i].Amount.GreaterThan(rows[j].Amount)
		}
		return compareIDs(rows[i].Category.ID, rows[j].Category.ID) < 0
	})
	return rows
}

// SortBudgetsByCategoryName orders budgets by their category's name so that
// evaluation output is stable for display.
func SortBudgetsByCategoryName(budgets []*domain.RecurringBudget, categories []*domain.Category) []*domain.RecurringBudget {
	refs := IndexCategories(categories)
	sorted := make([]*domain.RecurringBudget, len(budgets))
	copy(sorted, budgets)
	sort.SliceStable(sorted, func(i, j int) bool {
		return byName(refs.Ref(sorted[i].CategoryID), refs.Ref(sorted[j].CategoryID))
	})
	return sorted
}

// CategoryIndex resolves category ids to display identities.
type CategoryIndex map[uuid.UUID]*domain.Category

// IndexCategories builds a CategoryIndex over categories.
func IndexCategories(categories []*domain.Category) CategoryIndex {
	m := make(CategoryIndex, len(categories))
	for _, c := range categories {
		if c != nil {
			m[c.ID] = c
		}
	}
	return m
}

// Ref returns the display identity of id, or the Unknown identity when id is not indexed.
func (l CategoryIndex) Ref(id uuid.UUID) domain.CategoryRef {
	if c, ok := l[id]; ok {
		return domain.RefOf(c)
	}
	return domain.UnknownCategoryRef(id)
}

func byName(a, b domain.CategoryRef) bool {
	an, bn := strings.ToLower(a.Name), strings.ToLower(b.Name)
	if an != bn {
		return an < bn
	}
	return compareIDs(a.ID, b.ID) < 0
}
