package memory

import (
	"bytes"
	"sort"

	"github.com/dafibh/spendboard/internal/domain"
	"github.com/google/uuid"
)

// ExpenseRepository implements domain.ExpenseRepository
type ExpenseRepository struct {
	store *Store
}

// Create stores a new expense
func (r *ExpenseRepository) Create(expense *domain.Expense) (*domain.Expense, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[expense.CategoryID]; !ok {
		return nil, domain.ErrUnknownCategory
	}

	created := *expense
	created.ID = uuid.New()
	created.CreatedAt = s.now()
	created.UpdatedAt = created.CreatedAt
	s.expenses[created.ID] = &created

	out := created
	return &out, nil
}

// GetByID retrieves an expense by its ID
func (r *ExpenseRepository) GetByID(id uuid.UUID) (*domain.Expense, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.expenses[id]
	if !ok {
		return nil, domain.ErrExpenseNotFound
	}
	out := *e
	return &out, nil
}

// GetAll retrieves the expenses matching filters, newest first
func (r *ExpenseRepository) GetAll(filters *domain.ExpenseFilters) ([]*domain.Expense, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Expense, 0, len(s.expenses))
	for _, e := range s.expenses {
		if !filters.Matches(e) {
			continue
		}
		out := *e
		result = append(result, &out)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.After(result[j].Date)
		}
		return bytes.Compare(result[i].ID[:], result[j].ID[:]) > 0
	})
	return result, nil
}

// Update replaces an expense's fields
func (r *ExpenseRepository) Update(expense *domain.Expense) (*domain.Expense, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.expenses[expense.ID]
	if !ok {
		return nil, domain.ErrExpenseNotFound
	}
	if _, ok := s.categories[expense.CategoryID]; !ok {
		return nil, domain.ErrUnknownCategory
	}

	updated := *existing
	updated.Amount = expense.Amount
	updated.CategoryID = expense.CategoryID
	updated.Description = expense.Description
	updated.Date = expense.Date
	updated.UpdatedAt = s.now()
	s.expenses[updated.ID] = &updated

	out := updated
	return &out, nil
}

// Delete removes an expense
func (r *ExpenseRepository) Delete(id uuid.UUID) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.expenses[id]; !ok {
		return domain.ErrExpenseNotFound
	}
	delete(s.expenses, id)
	return nil
}
