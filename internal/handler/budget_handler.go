package handler

import (
	"net/http"

	"github.com/dafibh/spendboard/internal/domain"
	"github.com/dafibh/spendboard/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// BudgetHandler handles recurring budget HTTP requests
type BudgetHandler struct {
	budgetService *service.RecurringBudgetService
}

// NewBudgetHandler creates a new BudgetHandler
func NewBudgetHandler(budgetService *service.RecurringBudgetService) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// BudgetRequest represents the create and update budget request body
type BudgetRequest struct {
	CategoryID string           `json:"categoryId"`
	Amount     *decimal.Decimal `json:"amount" swaggertype:"string"`
}

// BudgetResponse represents a recurring budget in API responses
type BudgetResponse struct {
	ID         string `json:"id"`
	CategoryID string `json:"categoryId"`
	Amount     string `json:"amount"`
	CreatedAt  string `json:"createdAt"`
	UpdatedAt  string `json:"updatedAt"`
}

// CreateBudget godoc
// @Summary Set a recurring monthly budget
// @Description At most one budget may exist per category.
// @Tags budgets
// @Accept json
// @Produce json
// @Param request body BudgetRequest true "Budget"
// @Success 201 {object} BudgetResponse
// @Failure 400 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Failure 422 {object} ProblemDetails
// @Router /budgets [post]
func (h *BudgetHandler) CreateBudget(c echo.Context) error {
	categoryID, amount, err := bindBudget(c)
	if err != nil {
		return NewBindError(c, err)
	}

	budget, err := h.budgetService.CreateBudget(categoryID, amount)
	if err != nil {
		if handled(err) {
			return NewDomainError(c, err)
		}
		log.Error().Err(err).Str("category_id", categoryID.String()).Msg("Failed to create budget")
		return NewInternalError(c, "Failed to create budget")
	}

	log.Info().
		Str("budget_id", budget.ID.String()).
		Str("category_id", budget.CategoryID.String()).
		Str("amount", budget.Amount.StringFixed(2)).
		Msg("Budget created")
	return c.JSON(http.StatusCreated, toBudgetResponse(budget))
}

// GetBudgets godoc
// @Summary List recurring budgets
// @Tags budgets
// @Produce json
// @Success 200 {array} BudgetResponse
// @Router /budgets [get]
func (h *BudgetHandler) GetBudgets(c echo.Context) error {
	budgets, err := h.budgetService.GetBudgets()
	if err != nil {
		log.Error().Err(err).Msg("Failed to get budgets")
		return NewInternalError(c, "Failed to get budgets")
	}

	response := make([]BudgetResponse, len(budgets))
	for i, budget := range budgets {
		response[i] = toBudgetResponse(budget)
	}
	return c.JSON(http.StatusOK, response)
}

// GetBudget godoc
// @Summary Get a recurring budget
// @Tags budgets
// @Produce json
// @Param id path string true "Budget ID"
// @Success 200 {object} BudgetResponse
// @Failure 404 {object} ProblemDetails
// @Router /budgets/{id} [get]
func (h *BudgetHandler) GetBudget(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return NewValidationError(c, "Invalid budget ID", nil)
	}

	budget, err := h.budgetService.GetBudgetByID(id)
	if err != nil {
		if handled(err) {
			return NewDomainError(c, err)
		}
		log.Error().Err(err).Str("budget_id", id.String()).Msg("Failed to get budget")
		return NewInternalError(c, "Failed to get budget")
	}
	return c.JSON(http.StatusOK, toBudgetResponse(budget))
}

// UpdateBudget godoc
// @Summary Update a recurring budget
// @Tags budgets
// @Accept json
// @Produce json
// @Param id path string true "Budget ID"
// @Param request body BudgetRequest true "Budget"
// @Success 200 {object} BudgetResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Failure 422 {object} ProblemDetails
// @Router /budgets/{id} [put]
func (h *BudgetHandler) UpdateBudget(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return NewValidationError(c, "Invalid budget ID", nil)
	}

	categoryID, amount, err := bindBudget(c)
	if err != nil {
		return NewBindError(c, err)
	}

	budget, err := h.budgetService.UpdateBudget(id, categoryID, amount)
	if err != nil {
		if handled(err) {
			return NewDomainError(c, err)
		}
		log.Error().Err(err).Str("budget_id", id.String()).Msg("Failed to update budget")
		return NewInternalError(c, "Failed to update budget")
	}

	log.Info().Str("budget_id", budget.ID.String()).Str("amount", budget.Amount.StringFixed(2)).Msg("Budget updated")
	return c.JSON(http.StatusOK, toBudgetResponse(budget))
}

// DeleteBudget godoc
// @Summary Delete a recurring budget
// @Tags budgets
// @Param id path string true "Budget ID"
// @Success 204
// @Failure 404 {object} ProblemDetails
// @Router /budgets/{id} [delete]
func (h *BudgetHandler) DeleteBudget(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return NewValidationError(c, "Invalid budget ID", nil)
	}

	if err := h.budgetService.DeleteBudget(id); err != nil {
		if handled(err) {
			return NewDomainError(c, err)
		}
		log.Error().Err(err).Str("budget_id", id.String()).Msg("Failed to delete budget")
		return NewInternalError(c, "Failed to delete budget")
	}

	log.Info().Str("budget_id", id.String()).Msg("Budget deleted")
	return c.NoContent(http.StatusNoContent)
}

func bindBudget(c echo.Context) (uuid.UUID, *decimal.Decimal, error) {
	var req BudgetRequest
	if err := c.Bind(&req); err != nil {
		return uuid.Nil, nil, errInvalidBody
	}
	if req.CategoryID == "" {
		return uuid.Nil, req.Amount, nil
	}
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return uuid.Nil, nil, errInvalidCategoryID
	}
	return categoryID, req.Amount, nil
}

func toBudgetResponse(budget *domain.RecurringBudget) BudgetResponse {
	return BudgetResponse{
		ID:         budget.ID.String(),
		CategoryID: budget.CategoryID.String(),
		Amount:     budget.Amount.StringFixed(2),
		CreatedAt:  formatTimestamp(budget.CreatedAt),
		UpdatedAt:  formatTimestamp(budget.UpdatedAt),
	}
}
