package service

import (
	"context"
	"time"

	"github.com/dafibh/spendboard/internal/analytics"
	"github.com/dafibh/spendboard/internal/domain"
	"github.com/dafibh/spendboard/internal/util"
)

// DashboardService builds the monthly dashboard
type DashboardService struct {
	loader      snapshotLoader
	recentCount int
}

// NewDashboardService creates a new DashboardService. recentCount <= 0 selects
// domain.DefaultRecentTransactions.
func NewDashboardService(
	categoryRepo domain.CategoryRepository,
	expenseRepo domain.ExpenseRepository,
	budgetRepo domain.RecurringBudgetRepository,
	recentCount int,
) *DashboardService {
	if recentCount <= 0 {
		recentCount = domain.DefaultRecentTransactions
	}
	return &DashboardService{
		loader: snapshotLoader{
			categoryRepo: categoryRepo,
			expenseRepo:  expenseRepo,
			budgetRepo:   budgetRepo,
		},
		recentCount: recentCount,
	}
}

// GetSummary returns the dashboard for the calendar month containing ref
func (s *DashboardService) GetSummary(ctx context.Context, ref time.Time) (*domain.DashboardSummary, error) {
	snap, err := s.loader.load(ctx)
	if err != nil {
		return nil, err
	}
	return buildDashboard(snap, ref, s.recentCount), nil
}

func buildDashboard(snap *snapshot, ref time.Time, recentCount int) *domain.DashboardSummary {
	period := util.ResolveMonth(ref)
	agg := analytics.Aggregate(snap.expenses, period)
	refs := analytics.IndexCategories(snap.categories)

	budgets := analytics.SortBudgetsByCategoryName(snap.budgets, snap.categories)
	statuses := analytics.Evaluate(budgets, agg)
	views := make([]domain.BudgetStatusView, len(statuses))
	for i, status := range statuses {
		views[i] = domain.BudgetStatusView{
			CategoryBudgetStatus: status,
			Category:             refs.Ref(status.CategoryID),
		}
	}

	recent := analytics.Recent(snap.expenses, recentCount)
	recentViews := make([]domain.RecentExpense, len(recent))
	for i, e := range recent {
		recentViews[i] = domain.RecentExpense{
			Expense:  e,
			Category: refs.Ref(e.CategoryID),
		}
	}

	return &domain.DashboardSummary{
		Period:           period,
		Label:            util.FormatMonthLabel(period),
		Total:            agg.Total,
		TransactionCount: agg.TransactionCount,
		BudgetStatus:     views,
		Overall:          analytics.EvaluateOverall(snap.budgets, agg),
		Recent:           recentViews,
	}
}
