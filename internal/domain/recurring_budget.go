package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecurringBudget is a standing monthly ceiling for one category. It applies
// identically to every calendar month.
type RecurringBudget struct {
	ID         uuid.UUID       `json:"id"`
	CategoryID uuid.UUID       `json:"categoryId"`
	Amount     decimal.Decimal `json:"amount"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// RecurringBudgetRepository stores recurring budgets. At most one budget may exist per
// category: Create and Update return ErrBudgetAlreadyExists otherwise, and
// ErrUnknownCategory for a dangling category reference.
type RecurringBudgetRepository interface {
	Create(budget *RecurringBudget) (*RecurringBudget, error)
	GetByID(id uuid.UUID) (*RecurringBudget, error)
	GetAll() ([]*RecurringBudget, error)
	Update(budget *RecurringBudget) (*RecurringBudget, error)
	Delete(id uuid.UUID) error
}
