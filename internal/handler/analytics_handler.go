package handler

import (
	"net/http"
	"strconv"

	"github.com/dafibh/spendboard/internal/domain"
	"github.com/dafibh/spendboard/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// AnalyticsHandler handles analytics HTTP requests
type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(analyticsService *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// CategoryAmountResponse represents a category with an amount
type CategoryAmountResponse struct {
	Category CategoryRefResponse `json:"category"`
	Amount   string              `json:"amount"`
}

// BreakdownResponse represents one slice of the category breakdown
type BreakdownResponse struct {
	Category CategoryRefResponse `json:"category"`
	Amount   string              `json:"amount"`
	Color    string              `json:"color"`
}

// TrendPointResponse represents one month of the spending trend
type TrendPointResponse struct {
	Month  string `json:"month"`
	Amount string `json:"amount"`
}

// BudgetVsActualResponse represents one budget-vs-actual row
type BudgetVsActualResponse struct {
	Category CategoryRefResponse `json:"category"`
	Budget   string              `json:"budget"`
	Actual   string              `json:"actual"`
}

// AnalyticsSummaryResponse represents the analytics summary API response
type AnalyticsSummaryResponse struct {
	Period              PeriodResponse           `json:"period"`
	AverageMonthlySpend string                   `json:"averageMonthlySpend"`
	TopCategory         *CategoryAmountResponse  `json:"topCategory"`
	CategoryBreakdown   []BreakdownResponse      `json:"categoryBreakdown"`
	MonthlyTrend        []TrendPointResponse     `json:"monthlyTrend"`
	BudgetVsActual      []BudgetVsActualResponse `json:"budgetVsActual"`
	TotalCategories     int                      `json:"totalCategories"`
	TotalTransactions   int                      `json:"totalTransactions"`
}

// GetSummary godoc
// @Summary Spending analytics
// @Description Trend, breakdown and budget-vs-actual for the month containing date
// @Tags analytics
// @Produce json
// @Param date query string false "Reference date (YYYY-MM-DD), defaults to today"
// @Param months query int false "Trend length in months (1-36)" default(6)
// @Success 200 {object} AnalyticsSummaryResponse
// @Failure 400 {object} ProblemDetails
// @Router /analytics/summary [get]
func (h *AnalyticsHandler) GetSummary(c echo.Context) error {
	ref, err := parseRefDate(c)
	if err != nil {
		return NewDomainError(c, err)
	}

	months := h.analyticsService.DefaultMonths()
	if raw := c.QueryParam("months"); raw != "" {
		months, err = strconv.Atoi(raw)
		if err != nil {
			return NewValidationError(c, "Invalid months format", []ValidationError{
				{Field: "months", Message: "Must be a valid integer"},
			})
		}
		if months == 0 {
			return NewDomainError(c, domain.ErrInvalidTrendMonths)
		}
	}

	summary, err := h.analyticsService.GetSummary(c.Request().Context(), ref, months)
	if err != nil {
		if handled(err) {
			return NewDomainError(c, err)
		}
		log.Error().Err(err).Time("date", ref).Int("months", months).Msg("Failed to get analytics summary")
		return NewInternalError(c, "Failed to get analytics summary")
	}

	return c.JSON(http.StatusOK, toAnalyticsSummaryResponse(summary))
}

func toAnalyticsSummaryResponse(summary *domain.AnalyticsSummary) AnalyticsSummaryResponse {
	var top *CategoryAmountResponse
	if summary.TopCategory != nil {
		top = &CategoryAmountResponse{
			Category: toCategoryRefResponse(summary.TopCategory.Category),
			Amount:   summary.TopCategory.Amount.StringFixed(2),
		}
	}

	breakdown := make([]BreakdownResponse, len(summary.CategoryBreakdown))
	for i, row := range summary.CategoryBreakdown {
		breakdown[i] = BreakdownResponse{
			Category: toCategoryRefResponse(row.Category),
			Amount:   row.Amount.StringFixed(2),
			Color:    row.Color,
		}
	}

	trend := make([]TrendPointResponse, len(summary.MonthlyTrend))
	for i, point := range summary.MonthlyTrend {
		trend[i] = TrendPointResponse{Month: point.Month, Amount: point.Amount.StringFixed(2)}
	}

	comparison := make([]BudgetVsActualResponse, len(summary.BudgetVsActual))
	for i, row := range summary.BudgetVsActual {
		comparison[i] = BudgetVsActualResponse{
			Category: toCategoryRefResponse(row.Category),
			Budget:   row.Budget.StringFixed(2),
			Actual:   row.Actual.StringFixed(2),
		}
	}

	return AnalyticsSummaryResponse{
		Period:              toPeriodResponse(summary.Period),
		AverageMonthlySpend: summary.AverageMonthlySpend.StringFixed(2),
		TopCategory:         top,
		CategoryBreakdown:   breakdown,
		MonthlyTrend:        trend,
		BudgetVsActual:      comparison,
		TotalCategories:     summary.TotalCategories,
		TotalTransactions:   summary.TotalTransactions,
	}
}
