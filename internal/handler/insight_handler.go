package handler

import (
	"errors"
	"net/http"

	"github.com/dafibh/spendboard/internal/domain"
	"github.com/dafibh/spendboard/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// InsightHandler handles insight HTTP requests
type InsightHandler struct {
	insightService *service.InsightService
}

// NewInsightHandler creates a new InsightHandler
func NewInsightHandler(insightService *service.InsightService) *InsightHandler {
	return &InsightHandler{insightService: insightService}
}

// InsightFactsResponse represents the numbers the insights were generated from
type InsightFactsResponse struct {
	TotalExpenses        string `json:"totalExpenses"`
	CurrentMonthExpenses string `json:"currentMonthExpenses"`
	CurrentMonthBudget   string `json:"currentMonthBudget"`
	NumTransactions      int    `json:"numTransactions"`
	Categories           int    `json:"categories"`
	BudgetsSet           int    `json:"budgetsSet"`
}

// InsightResponse represents generated insights
type InsightResponse struct {
	Insights string                `json:"insights"`
	Summary  *InsightFactsResponse `json:"summary"`
}

// GetInsights godoc
// @Summary Generated spending insights
// @Tags insights
// @Produce json
// @Param date query string false "Reference date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} InsightResponse
// @Failure 400 {object} ProblemDetails
// @Failure 502 {object} ProblemDetails
// @Failure 503 {object} ProblemDetails
// @Router /insights [get]
func (h *InsightHandler) GetInsights(c echo.Context) error {
	ref, err := parseRefDate(c)
	if err != nil {
		return NewDomainError(c, err)
	}

	insight, err := h.insightService.Generate(c.Request().Context(), ref)
	if err != nil {
		if errors.Is(err, domain.ErrInsightsUnavailable) {
			return NewServiceUnavailableError(c, "Insights are not configured")
		}
		log.Error().Err(err).Time("date", ref).Msg("Failed to generate insights")
		return c.JSON(http.StatusBadGateway, ProblemDetails{
			Type:     ErrorTypeUnavailable,
			Title:    "Bad Gateway",
			Status:   http.StatusBadGateway,
			Detail:   "Insight generator failed",
			Instance: c.Request().URL.Path,
		})
	}

	response := InsightResponse{Insights: insight.Text}
	if f := insight.Summary; f != nil {
		response.Summary = &InsightFactsResponse{
			TotalExpenses:        f.TotalExpenses.StringFixed(2),
			CurrentMonthExpenses: f.CurrentMonthExpenses.StringFixed(2),
			CurrentMonthBudget:   f.CurrentMonthBudget.StringFixed(2),
			NumTransactions:      f.NumTransactions,
			Categories:           f.Categories,
			BudgetsSet:           f.BudgetsSet,
		}
	}
	return c.JSON(http.StatusOK, response)
}
