package service

import (
	"strings"
	"time"

	"github.com/dafibh/spendboard/internal/domain"
	"github.com/dafibh/spendboard/internal/util"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseInput carries the editable fields of an expense. Nil pointers mean the field
// was not supplied.
type ExpenseInput struct {
	Amount      *decimal.Decimal
	CategoryID  uuid.UUID
	Description string
	Date        *time.Time
}

// ExpenseService handles expense business logic
type ExpenseService struct {
	expenseRepo domain.ExpenseRepository
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(expenseRepo domain.ExpenseRepository) *ExpenseService {
	return &ExpenseService{expenseRepo: expenseRepo}
}

// CreateExpense records a new expense. The category must exist at the time of the write.
func (s *ExpenseService) CreateExpense(input ExpenseInput) (*domain.Expense, error) {
	expense, err := normalizeExpense(input)
	if err != nil {
		return nil, err
	}
	return s.expenseRepo.Create(expense)
}

// GetExpenses retrieves expenses matching filters, newest first
func (s *ExpenseService) GetExpenses(filters *domain.ExpenseFilters) ([]*domain.Expense, error) {
	return s.expenseRepo.GetAll(filters)
}

// GetExpensesForMonth retrieves the expenses of one calendar month
func (s *ExpenseService) GetExpensesForMonth(p domain.Period, categoryID *uuid.UUID) ([]*domain.Expense, error) {
	first, last := p.First, p.Last
	return s.expenseRepo.GetAll(&domain.ExpenseFilters{
		CategoryID: categoryID,
		StartDate:  &first,
		EndDate:    &last,
	})
}

// GetExpenseByID retrieves an expense by ID
func (s *ExpenseService) GetExpenseByID(id uuid.UUID) (*domain.Expense, error) {
	return s.expenseRepo.GetByID(id)
}

// UpdateExpense replaces an expense's fields
func (s *ExpenseService) UpdateExpense(id uuid.UUID, input ExpenseInput) (*domain.Expense, error) {
	expense, err := normalizeExpense(input)
	if err != nil {
		return nil, err
	}
	expense.ID = id
	return s.expenseRepo.Update(expense)
}

// DeleteExpense deletes an expense
func (s *ExpenseService) DeleteExpense(id uuid.UUID) error {
	return s.expenseRepo.Delete(id)
}

func normalizeExpense(input ExpenseInput) (*domain.Expense, error) {
	amount, err := validateAmount(input.Amount)
	if err != nil {
		return nil, err
	}
	if input.CategoryID == uuid.Nil {
		return nil, domain.ErrCategoryRequired
	}
	if input.Date == nil || input.Date.IsZero() {
		return nil, domain.ErrDateRequired
	}

	description := strings.TrimSpace(input.Description)
	if len([]rune(description)) > domain.MaxDescriptionLength {
		return nil, domain.ErrDescriptionTooLong
	}

	return &domain.Expense{
		Amount:      amount,
		CategoryID:  input.CategoryID,
		Description: description,
		Date:        util.TruncateToDate(*input.Date),
	}, nil
}

// validateAmount requires a non-negative amount and rounds it to cents
func validateAmount(amount *decimal.Decimal) (decimal.Decimal, error) {
	if amount == nil {
		return decimal.Zero, domain.ErrAmountRequired
	}
	if amount.IsNegative() {
		return decimal.Zero, domain.ErrInvalidAmount
	}
	return amount.Round(2), nil
}
