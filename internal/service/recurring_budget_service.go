package service

import (
	"github.com/dafibh/spendboard/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecurringBudgetService handles recurring budget business logic
type RecurringBudgetService struct {
	budgetRepo domain.RecurringBudgetRepository
}

// NewRecurringBudgetService creates a new RecurringBudgetService
func NewRecurringBudgetService(budgetRepo domain.RecurringBudgetRepository) *RecurringBudgetService {
	return &RecurringBudgetService{budgetRepo: budgetRepo}
}

// CreateBudget sets a monthly ceiling for a category
func (s *RecurringBudgetService) CreateBudget(categoryID uuid.UUID, amount *decimal.Decimal) (*domain.RecurringBudget, error) {
	budget, err := normalizeBudget(categoryID, amount)
	if err != nil {
		return nil, err
	}
	return s.budgetRepo.Create(budget)
}

// GetBudgets retrieves all recurring budgets
func (s *RecurringBudgetService) GetBudgets() ([]*domain.RecurringBudget, error) {
	return s.budgetRepo.GetAll()
}

// GetBudgetByID retrieves a recurring budget by ID
func (s *RecurringBudgetService) GetBudgetByID(id uuid.UUID) (*domain.RecurringBudget, error) {
	return s.budgetRepo.GetByID(id)
}

// UpdateBudget replaces a budget's category and amount
func (s *RecurringBudgetService) UpdateBudget(id, categoryID uuid.UUID, amount *decimal.Decimal) (*domain.RecurringBudget, error) {
	budget, err := normalizeBudget(categoryID, amount)
	if err != nil {
		return nil, err
	}
	budget.ID = id
	return s.budgetRepo.Update(budget)
}

// DeleteBudget deletes a recurring budget
func (s *RecurringBudgetService) DeleteBudget(id uuid.UUID) error {
	return s.budgetRepo.Delete(id)
}

func normalizeBudget(categoryID uuid.UUID, amount *decimal.Decimal) (*domain.RecurringBudget, error) {
	value, err := validateAmount(amount)
	if err != nil {
		return nil, err
	}
	if categoryID == uuid.Nil {
		return nil, domain.ErrCategoryRequired
	}
	return &domain.RecurringBudget{CategoryID: categoryID, Amount: value}, nil
}
