package memory

import (
	"sort"

	"github.com/dafibh/spendboard/internal/domain"
	"github.com/google/uuid"
)

// RecurringBudgetRepository implements domain.RecurringBudgetRepository
type RecurringBudgetRepository struct {
	store *Store
}

// Create stores a new recurring budget
func (r *RecurringBudgetRepository) Create(budget *domain.RecurringBudget) (*domain.RecurringBudget, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[budget.CategoryID]; !ok {
		return nil, domain.ErrUnknownCategory
	}
	if s.budgetForCategory(budget.CategoryID) != nil {
		return nil, domain.ErrBudgetAlreadyExists
	}

	created := *budget
	created.ID = uuid.New()
	created.CreatedAt = s.now()
	created.UpdatedAt = created.CreatedAt
	s.budgets[created.ID] = &created

	out := created
	return &out, nil
}

// GetByID retrieves a recurring budget by its ID
func (r *RecurringBudgetRepository) GetByID(id uuid.UUID) (*domain.RecurringBudget, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.budgets[id]
	if !ok {
		return nil, domain.ErrBudgetNotFound
	}
	out := *b
	return &out, nil
}

// GetAll retrieves all recurring budgets ordered by creation time
func (r *RecurringBudgetRepository) GetAll() ([]*domain.RecurringBudget, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.RecurringBudget, 0, len(s.budgets))
	for _, b := range s.budgets {
		out := *b
		result = append(result, &out)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID.String() < result[j].ID.String()
	})
	return result, nil
}

// Update replaces a recurring budget's category and amount
func (r *RecurringBudgetRepository) Update(budget *domain.RecurringBudget) (*domain.RecurringBudget, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.budgets[budget.ID]
	if !ok {
		return nil, domain.ErrBudgetNotFound
	}
	if _, ok := s.categories[budget.CategoryID]; !ok {
		return nil, domain.ErrUnknownCategory
	}
	if other := s.budgetForCategory(budget.CategoryID); other != nil && other.ID != budget.ID {
		return nil, domain.ErrBudgetAlreadyExists
	}

	updated := *existing
	updated.CategoryID = budget.CategoryID
	updated.Amount = budget.Amount
	updated.UpdatedAt = s.now()
	s.budgets[updated.ID] = &updated

	out := updated
	return &out, nil
}

// Delete removes a recurring budget
func (r *RecurringBudgetRepository) Delete(id uuid.UUID) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.budgets[id]; !ok {
		return domain.ErrBudgetNotFound
	}
	delete(s.budgets, id)
	return nil
}
