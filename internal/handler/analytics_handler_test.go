package handler

import (
	"net/http"
	"testing"

	"github.com/dafibh/spendboard/internal/service"
)

func TestAnalyticsGetSummary_Success(t *testing.T) {
	f := newViewFixture()
	food := f.categories.AddCategory("Food")
	rent := f.categories.AddCategory("Rent")
	f.budgets.AddBudget(food.ID, "200")
	f.expenses.AddExpense(food.ID, "50", day(2024, 3, 2))
	f.expenses.AddExpense(rent.ID, "900", day(2024, 3, 1))
	f.expenses.AddExpense(food.ID, "40", day(2024, 2, 10))

	handler := NewAnalyticsHandler(service.NewAnalyticsService(f.categories, f.expenses, f.budgets, 0))
	c, rec := newTestContext(http.MethodGet, "/api/v1/analytics/summary?date=2024-03-15&months=3", "")

	if err := handler.GetSummary(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	expectStatus(t, rec, http.StatusOK)

	var response AnalyticsSummaryResponse
	decodeResponse(t, rec, &response)

	if len(response.MonthlyTrend) != 3 {
		t.Fatalf("Expected 3 trend points, got %d", len(response.MonthlyTrend))
	}
	if response.MonthlyTrend[0].Month != "2024-01" || response.MonthlyTrend[2].Month != "2024-03" {
		t.Errorf("Expected oldest month first, got %+v", response.MonthlyTrend)
	}
	if response.MonthlyTrend[2].Amount != "950.00" {
		t.Errorf("Expected March total '950.00', got %s", response.MonthlyTrend[2].Amount)
	}
	if response.TopCategory == nil || response.TopCategory.Category.Name != "Rent" {
		t.Errorf("Expected Rent as top category, got %+v", response.TopCategory)
	}
	if response.TotalCategories != 2 || response.TotalTransactions != 3 {
		t.Errorf("Unexpected totals %d categories, %d transactions", response.TotalCategories, response.TotalTransactions)
	}
}

func TestAnalyticsGetSummary_InvalidMonths(t *testing.T) {
	f := newViewFixture()
	handler := NewAnalyticsHandler(service.NewAnalyticsService(f.categories, f.expenses, f.budgets, 0))

	for _, months := range []string{"abc", "0", "37", "-1"} {
		t.Run(months, func(t *testing.T) {
			c, rec := newTestContext(http.MethodGet, "/api/v1/analytics/summary?months="+months, "")

			if err := handler.GetSummary(c); err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			expectStatus(t, rec, http.StatusBadRequest)

			problem := decodeProblem(t, rec)
			if len(problem.Errors) != 1 || problem.Errors[0].Field != "months" {
				t.Errorf("Expected a 'months' field error, got %+v", problem.Errors)
			}
		})
	}
}

func TestAnalyticsGetSummary_DefaultMonths(t *testing.T) {
	f := newViewFixture()
	handler := NewAnalyticsHandler(service.NewAnalyticsService(f.categories, f.expenses, f.budgets, 4))
	c, rec := newTestContext(http.MethodGet, "/api/v1/analytics/summary?date=2024-03-15", "")

	if err := handler.GetSummary(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	expectStatus(t, rec, http.StatusOK)

	var response AnalyticsSummaryResponse
	decodeResponse(t, rec, &response)
	if len(response.MonthlyTrend) != 4 {
		t.Errorf("Expected configured 4 trend points, got %d", len(response.MonthlyTrend))
	}
	if response.TopCategory != nil {
		t.Errorf("Expected no top category, got %+v", response.TopCategory)
	}
}
