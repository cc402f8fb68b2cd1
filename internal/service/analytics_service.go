package service

import (
	"context"
	"time"

	"github.com/dafibh/spendboard/internal/analytics"
	"github.com/dafibh/spendboard/internal/domain"
	"github.com/dafibh/spendboard/internal/util"
)

// AnalyticsService builds cross-period spending statistics
type AnalyticsService struct {
	loader      snapshotLoader
	trendMonths int
}

// NewAnalyticsService creates a new AnalyticsService. trendMonths <= 0 selects
// domain.DefaultTrendMonths.
func NewAnalyticsService(
	categoryRepo domain.CategoryRepository,
	expenseRepo domain.ExpenseRepository,
	budgetRepo domain.RecurringBudgetRepository,
	trendMonths int,
) *AnalyticsService {
	if trendMonths <= 0 {
		trendMonths = domain.DefaultTrendMonths
	}
	return &AnalyticsService{
		loader: snapshotLoader{
			categoryRepo: categoryRepo,
			expenseRepo:  expenseRepo,
			budgetRepo:   budgetRepo,
		},
		trendMonths: trendMonths,
	}
}

// DefaultMonths returns the trend length used when the caller does not pick one
func (s *AnalyticsService) DefaultMonths() int {
	return s.trendMonths
}

// GetSummary returns analytics for the month containing ref over a trend of
// nMonths months ending with it. nMonths == 0 selects the service default.
func (s *AnalyticsService) GetSummary(ctx context.Context, ref time.Time, nMonths int) (*domain.AnalyticsSummary, error) {
	if nMonths == 0 {
		nMonths = s.trendMonths
	}
	if nMonths < domain.MinTrendMonths || nMonths > domain.MaxTrendMonths {
		return nil, domain.ErrInvalidTrendMonths
	}

	snap, err := s.loader.load(ctx)
	if err != nil {
		return nil, err
	}
	return buildAnalytics(snap, ref, nMonths), nil
}

func buildAnalytics(snap *snapshot, ref time.Time, nMonths int) *domain.AnalyticsSummary {
	period := util.ResolveMonth(ref)
	agg := analytics.Aggregate(snap.expenses, period)
	trend := analytics.MonthlyTrend(snap.expenses, nMonths, ref)

	return &domain.AnalyticsSummary{
		Period:              period,
		AverageMonthlySpend: analytics.AverageMonthlySpend(trend),
		TopCategory:         analytics.TopCategory(agg, snap.categories),
		CategoryBreakdown:   analytics.CategoryBreakdown(agg, snap.categories),
		MonthlyTrend:        trend,
		BudgetVsActual:      analytics.BudgetVsActual(snap.budgets, agg, snap.categories),
		TotalCategories:     len(snap.categories),
		TotalTransactions:   len(snap.expenses),
	}
}
