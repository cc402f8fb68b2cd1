package handler

import (
	"net/http"

	"github.com/dafibh/spendboard/internal/domain"
	"github.com/dafibh/spendboard/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// DashboardHandler handles dashboard-related HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// BudgetStatusResponse represents one category's budget utilization
type BudgetStatusResponse struct {
	BudgetID     string              `json:"budgetId"`
	Category     CategoryRefResponse `json:"category"`
	Budget       string              `json:"budget"`
	Spent        string              `json:"spent"`
	Remaining    string              `json:"remaining"`
	Percentage   string              `json:"percentage"`
	Unbounded    bool                `json:"unbounded"`
	IsOverBudget bool                `json:"isOverBudget"`
}

// OverallStatusResponse represents total spend against the sum of all budgets
type OverallStatusResponse struct {
	TotalBudget    string `json:"totalBudget"`
	TotalSpent     string `json:"totalSpent"`
	Remaining      string `json:"remaining"`
	UtilizationPct string `json:"utilizationPct"`
}

// RecentExpenseResponse represents an expense with its category
type RecentExpenseResponse struct {
	ExpenseResponse
	Category CategoryRefResponse `json:"category"`
}

// DashboardSummaryResponse represents the dashboard summary API response
type DashboardSummaryResponse struct {
	Period           PeriodResponse          `json:"period"`
	Label            string                  `json:"label"`
	Total            string                  `json:"total"`
	TransactionCount int                     `json:"transactionCount"`
	BudgetStatus     []BudgetStatusResponse  `json:"budgetStatus"`
	Overall          OverallStatusResponse   `json:"overall"`
	Recent           []RecentExpenseResponse `json:"recent"`
}

// GetSummary godoc
// @Summary Monthly dashboard
// @Description Totals, budget status and recent expenses for the month containing date
// @Tags dashboard
// @Produce json
// @Param date query string false "Reference date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} DashboardSummaryResponse
// @Failure 400 {object} ProblemDetails
// @Router /dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c echo.Context) error {
	ref, err := parseRefDate(c)
	if err != nil {
		return NewDomainError(c, err)
	}

	summary, err := h.dashboardService.GetSummary(c.Request().Context(), ref)
	if err != nil {
		log.Error().Err(err).Time("date", ref).Msg("Failed to get dashboard summary")
		return NewInternalError(c, "Failed to get dashboard summary")
	}

	return c.JSON(http.StatusOK, toDashboardSummaryResponse(summary))
}

func toDashboardSummaryResponse(summary *domain.DashboardSummary) DashboardSummaryResponse {
	statuses := make([]BudgetStatusResponse, len(summary.BudgetStatus))
	for i, s := range summary.BudgetStatus {
		statuses[i] = BudgetStatusResponse{
			BudgetID:     s.BudgetID.String(),
			Category:     toCategoryRefResponse(s.Category),
			Budget:       s.Budget.StringFixed(2),
			Spent:        s.Spent.StringFixed(2),
			Remaining:    s.Remaining.StringFixed(2),
			Percentage:   s.Percentage.StringFixed(2),
			Unbounded:    s.Unbounded,
			IsOverBudget: s.IsOverBudget,
		}
	}

	recent := make([]RecentExpenseResponse, len(summary.Recent))
	for i, r := range summary.Recent {
		recent[i] = RecentExpenseResponse{
			ExpenseResponse: toExpenseResponse(r.Expense),
			Category:        toCategoryRefResponse(r.Category),
		}
	}

	return DashboardSummaryResponse{
		Period:           toPeriodResponse(summary.Period),
		Label:            summary.Label,
		Total:            summary.Total.StringFixed(2),
		TransactionCount: summary.TransactionCount,
		BudgetStatus:     statuses,
		Overall: OverallStatusResponse{
			TotalBudget:    summary.Overall.TotalBudget.StringFixed(2),
			TotalSpent:     summary.Overall.TotalSpent.StringFixed(2),
			Remaining:      summary.Overall.Remaining.StringFixed(2),
			UtilizationPct: summary.Overall.UtilizationPct.StringFixed(2),
		},
		Recent: recent,
	}
}
