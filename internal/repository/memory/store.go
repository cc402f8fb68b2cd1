// Package memory is an in-process Domain Store. All three collections share one lock
// so that reference checks and the writes they guard are atomic.
package memory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dafibh/spendboard/internal/domain"
	"github.com/google/uuid"
)

// Store holds categories, expenses and recurring budgets.
type Store struct {
	mu         sync.RWMutex
	categories map[uuid.UUID]*domain.Category
	expenses   map[uuid.UUID]*domain.Expense
	budgets    map[uuid.UUID]*domain.RecurringBudget
	now        func() time.Time
}

// NewStore creates an empty Store
func NewStore() *Store {
	return &Store{
		categories: make(map[uuid.UUID]*domain.Category),
		expenses:   make(map[uuid.UUID]*domain.Expense),
		budgets:    make(map[uuid.UUID]*domain.RecurringBudget),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Categories returns the category repository view of the store
func (s *Store) Categories() *CategoryRepository {
	return &CategoryRepository{store: s}
}

// Expenses returns the expense repository view of the store
func (s *Store) Expenses() *ExpenseRepository {
	return &ExpenseRepository{store: s}
}

// RecurringBudgets returns the recurring budget repository view of the store
func (s *Store) RecurringBudgets() *RecurringBudgetRepository {
	return &RecurringBudgetRepository{store: s}
}

// budgetForCategory returns the budget of a category. Callers hold the lock.
func (s *Store) budgetForCategory(categoryID uuid.UUID) *domain.RecurringBudget {
	for _, b := range s.budgets {
		if b.CategoryID == categoryID {
			return b
		}
	}
	return nil
}

// CategoryRepository implements domain.CategoryRepository
type CategoryRepository struct {
	store *Store
}

// Create stores a new category
func (r *CategoryRepository) Create(category *domain.Category) (*domain.Category, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.nameTaken(category.Name, uuid.Nil) {
		return nil, domain.ErrCategoryNameExists
	}

	created := *category
	created.ID = uuid.New()
	created.CreatedAt = s.now()
	created.UpdatedAt = created.CreatedAt
	s.categories[created.ID] = &created

	out := created
	return &out, nil
}

// GetByID retrieves a category by its ID
func (r *CategoryRepository) GetByID(id uuid.UUID) (*domain.Category, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.categories[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	out := *c
	return &out, nil
}

// GetAll retrieves all categories ordered by name
func (r *CategoryRepository) GetAll() ([]*domain.Category, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out := *c
		result = append(result, &out)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].ID.String() < result[j].ID.String()
	})
	return result, nil
}

// Update replaces a category's name, color and icon
func (r *CategoryRepository) Update(category *domain.Category) (*domain.Category, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.categories[category.ID]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	if s.nameTaken(category.Name, category.ID) {
		return nil, domain.ErrCategoryNameExists
	}

	updated := *existing
	updated.Name = category.Name
	updated.Color = category.Color
	updated.Icon = category.Icon
	updated.UpdatedAt = s.now()
	s.categories[updated.ID] = &updated

	out := updated
	return &out, nil
}

// Delete removes a category and its recurring budget. It fails while expenses
// reference the category.
func (r *CategoryRepository) Delete(id uuid.UUID) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[id]; !ok {
		return domain.ErrCategoryNotFound
	}
	for _, e := range s.expenses {
		if e.CategoryID == id {
			return domain.ErrCategoryInUse
		}
	}

	if b := s.budgetForCategory(id); b != nil {
		delete(s.budgets, b.ID)
	}
	delete(s.categories, id)
	return nil
}

// CountExpenses returns the number of expenses referencing a category
func (r *CategoryRepository) CountExpenses(id uuid.UUID) (int64, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.categories[id]; !ok {
		return 0, domain.ErrCategoryNotFound
	}
	var count int64
	for _, e := range s.expenses {
		if e.CategoryID == id {
			count++
		}
	}
	return count, nil
}

// nameTaken reports whether another category already uses name. Callers hold the lock.
func (s *Store) nameTaken(name string, except uuid.UUID) bool {
	for _, c := range s.categories {
		if c.ID != except && strings.EqualFold(c.Name, name) {
			return true
		}
	}
	return false
}
