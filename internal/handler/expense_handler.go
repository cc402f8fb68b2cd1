package handler

import (
	"net/http"

	"github.com/dafibh/spendboard/internal/domain"
	"github.com/dafibh/spendboard/internal/service"
	"github.com/dafibh/spendboard/internal/util"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ExpenseHandler handles expense HTTP requests
type ExpenseHandler struct {
	expenseService *service.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenseService *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// ExpenseRequest represents the create and update expense request body.
// Amount accepts a JSON number or a decimal string.
type ExpenseRequest struct {
	Amount      *decimal.Decimal `json:"amount" swaggertype:"string"`
	CategoryID  string           `json:"categoryId"`
	Description string           `json:"description"`
	Date        string           `json:"date"`
}

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID          string `json:"id"`
	Amount      string `json:"amount"`
	CategoryID  string `json:"categoryId"`
	Description string `json:"description"`
	Date        string `json:"date"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// CreateExpense godoc
// @Summary Record an expense
// @Tags expenses
// @Accept json
// @Produce json
// @Param request body ExpenseRequest true "Expense"
// @Success 201 {object} ExpenseResponse
// @Failure 400 {object} ProblemDetails
// @Failure 422 {object} ProblemDetails
// @Router /expenses [post]
func (h *ExpenseHandler) CreateExpense(c echo.Context) error {
	input, err := bindExpense(c)
	if err != nil {
		return NewBindError(c, err)
	}

	expense, err := h.expenseService.CreateExpense(input)
	if err != nil {
		if handled(err) {
			return NewDomainError(c, err)
		}
		log.Error().Err(err).Str("category_id", input.CategoryID.String()).Msg("Failed to create expense")
		return NewInternalError(c, "Failed to create expense")
	}

	log.Info().
		Str("expense_id", expense.ID.String()).
		Str("category_id", expense.CategoryID.String()).
		Str("amount", expense.Amount.StringFixed(2)).
		Msg("Expense created")
	return c.JSON(http.StatusCreated, toExpenseResponse(expense))
}

// GetExpenses godoc
// @Summary List expenses
// @Description Newest first. month cannot be combined with from/to.
// @Tags expenses
// @Produce json
// @Param month query string false "Calendar month (YYYY-MM)"
// @Param categoryId query string false "Filter by category ID"
// @Param from query string false "Start date, inclusive (YYYY-MM-DD)"
// @Param to query string false "End date, inclusive (YYYY-MM-DD)"
// @Success 200 {array} ExpenseResponse
// @Failure 400 {object} ProblemDetails
// @Router /expenses [get]
func (h *ExpenseHandler) GetExpenses(c echo.Context) error {
	filters := &domain.ExpenseFilters{}

	if raw := c.QueryParam("categoryId"); raw != "" {
		categoryID, err := uuid.Parse(raw)
		if err != nil {
			return NewValidationError(c, "Invalid category ID", []ValidationError{
				{Field: "categoryId", Message: "Must be a valid UUID"},
			})
		}
		filters.CategoryID = &categoryID
	}

	month, from, to := c.QueryParam("month"), c.QueryParam("from"), c.QueryParam("to")
	if month != "" && (from != "" || to != "") {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "month", Message: "Cannot be combined with from or to"},
		})
	}

	if month != "" {
		period, err := util.ParseMonthKey(month)
		if err != nil {
			return NewDomainError(c, err)
		}
		filters.StartDate, filters.EndDate = &period.First, &period.Last
	}
	if from != "" {
		start, err := util.ParseDate(from)
		if err != nil {
			return NewValidationError(c, "Validation failed", []ValidationError{{Field: "from", Message: errorMessage(err)}})
		}
		filters.StartDate = &start
	}
	if to != "" {
		end, err := util.ParseDate(to)
		if err != nil {
			return NewValidationError(c, "Validation failed", []ValidationError{{Field: "to", Message: errorMessage(err)}})
		}
		filters.EndDate = &end
	}

	expenses, err := h.expenseService.GetExpenses(filters)
	if err != nil {
		log.Error().Err(err).Msg("Failed to get expenses")
		return NewInternalError(c, "Failed to get expenses")
	}

	response := make([]ExpenseResponse, len(expenses))
	for i, expense := range expenses {
		response[i] = toExpenseResponse(expense)
	}
	return c.JSON(http.StatusOK, response)
}

// GetExpense godoc
// @Summary Get an expense
// @Tags expenses
// @Produce json
// @Param id path string true "Expense ID"
// @Success 200 {object} ExpenseResponse
// @Failure 404 {object} ProblemDetails
// @Router /expenses/{id} [get]
func (h *ExpenseHandler) GetExpense(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return NewValidationError(c, "Invalid expense ID", nil)
	}

	expense, err := h.expenseService.GetExpenseByID(id)
	if err != nil {
		if handled(err) {
			return NewDomainError(c, err)
		}
		log.Error().Err(err).Str("expense_id", id.String()).Msg("Failed to get expense")
		return NewInternalError(c, "Failed to get expense")
	}
	return c.JSON(http.StatusOK, toExpenseResponse(expense))
}

// UpdateExpense godoc
// @Summary Update an expense
// @Tags expenses
// @Accept json
// @Produce json
// @Param id path string true "Expense ID"
// @Param request body ExpenseRequest true "Expense"
// @Success 200 {object} ExpenseResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Failure 422 {object} ProblemDetails
// @Router /expenses/{id} [put]
func (h *ExpenseHandler) UpdateExpense(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return NewValidationError(c, "Invalid expense ID", nil)
	}

	input, err := bindExpense(c)
	if err != nil {
		return NewBindError(c, err)
	}

	expense, err := h.expenseService.UpdateExpense(id, input)
	if err != nil {
		if handled(err) {
			return NewDomainError(c, err)
		}
		log.Error().Err(err).Str("expense_id", id.String()).Msg("Failed to update expense")
		return NewInternalError(c, "Failed to update expense")
	}

	log.Info().Str("expense_id", expense.ID.String()).Msg("Expense updated")
	return c.JSON(http.StatusOK, toExpenseResponse(expense))
}

// DeleteExpense godoc
// @Summary Delete an expense
// @Tags expenses
// @Param id path string true "Expense ID"
// @Success 204
// @Failure 404 {object} ProblemDetails
// @Router /expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return NewValidationError(c, "Invalid expense ID", nil)
	}

	if err := h.expenseService.DeleteExpense(id); err != nil {
		if handled(err) {
			return NewDomainError(c, err)
		}
		log.Error().Err(err).Str("expense_id", id.String()).Msg("Failed to delete expense")
		return NewInternalError(c, "Failed to delete expense")
	}

	log.Info().Str("expense_id", id.String()).Msg("Expense deleted")
	return c.NoContent(http.StatusNoContent)
}

// bindExpense decodes the request body into service input
func bindExpense(c echo.Context) (service.ExpenseInput, error) {
	var req ExpenseRequest
	if err := c.Bind(&req); err != nil {
		return service.ExpenseInput{}, errInvalidBody
	}

	input := service.ExpenseInput{
		Amount:      req.Amount,
		Description: req.Description,
	}
	if req.CategoryID != "" {
		categoryID, err := uuid.Parse(req.CategoryID)
		if err != nil {
			return input, errInvalidCategoryID
		}
		input.CategoryID = categoryID
	}
	if req.Date != "" {
		date, err := util.ParseDate(req.Date)
		if err != nil {
			return input, err
		}
		input.Date = &date
	}
	return input, nil
}

func toExpenseResponse(expense *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          expense.ID.String(),
		Amount:      expense.Amount.StringFixed(2),
		CategoryID:  expense.CategoryID.String(),
		Description: expense.Description,
		Date:        util.FormatDate(expense.Date),
		CreatedAt:   formatTimestamp(expense.CreatedAt),
		UpdatedAt:   formatTimestamp(expense.UpdatedAt),
	}
}
