package memory

import (
	"sync"
	"testing"
	"time"

	"github.com/dafibh/spendboard/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCategory(t *testing.T, s *Store, name string) *domain.Category {
	t.Helper()
	c, err := s.Categories().Create(&domain.Category{Name: name, Color: "#111111", Icon: "x"})
	require.NoError(t, err)
	return c
}

func newExpense(t *testing.T, s *Store, categoryID uuid.UUID, amount int64, d time.Time) *domain.Expense {
	t.Helper()
	e, err := s.Expenses().Create(&domain.Expense{
		CategoryID: categoryID,
		Amount:     decimal.NewFromInt(amount),
		Date:       d,
	})
	require.NoError(t, err)
	return e
}

func TestCategoryRepository_CreateAssignsIDAndTimestamps(t *testing.T) {
	s := NewStore()

	c := newCategory(t, s, "Food")

	assert.NotEqual(t, uuid.Nil, c.ID)
	assert.False(t, c.CreatedAt.IsZero())

	got, err := s.Categories().GetByID(c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Food", got.Name)
}

func TestCategoryRepository_DuplicateNameIsCaseInsensitive(t *testing.T) {
	s := NewStore()
	newCategory(t, s, "Food")

	_, err := s.Categories().Create(&domain.Category{Name: "food"})

	assert.ErrorIs(t, err, domain.ErrCategoryNameExists)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCategoryRepository_UpdateKeepsOwnName(t *testing.T) {
	s := NewStore()
	c := newCategory(t, s, "Food")

	updated, err := s.Categories().Update(&domain.Category{ID: c.ID, Name: "FOOD", Color: "#222222", Icon: "y"})

	require.NoError(t, err)
	assert.Equal(t, "FOOD", updated.Name)
	assert.Equal(t, c.CreatedAt, updated.CreatedAt)
}

func TestCategoryRepository_UpdateUnknown(t *testing.T) {
	s := NewStore()

	_, err := s.Categories().Update(&domain.Category{ID: uuid.New(), Name: "Food"})

	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func TestCategoryRepository_ReturnedValuesAreCopies(t *testing.T) {
	s := NewStore()
	c := newCategory(t, s, "Food")

	c.Name = "Mutated"

	got, err := s.Categories().GetByID(c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Food", got.Name)
}

func TestCategoryRepository_DeleteRejectedWhileExpensesExist(t *testing.T) {
	s := NewStore()
	c := newCategory(t, s, "Food")
	newExpense(t, s, c.ID, 10, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC))

	err := s.Categories().Delete(c.ID)

	assert.ErrorIs(t, err, domain.ErrCategoryInUse)
	assert.ErrorIs(t, err, domain.ErrConflict)
	_, err = s.Categories().GetByID(c.ID)
	assert.NoError(t, err)
}

func TestCategoryRepository_DeleteRemovesBudget(t *testing.T) {
	s := NewStore()
	c := newCategory(t, s, "Food")
	b, err := s.RecurringBudgets().Create(&domain.RecurringBudget{CategoryID: c.ID, Amount: decimal.NewFromInt(100)})
	require.NoError(t, err)

	require.NoError(t, s.Categories().Delete(c.ID))

	_, err = s.RecurringBudgets().GetByID(b.ID)
	assert.ErrorIs(t, err, domain.ErrBudgetNotFound)
	_, err = s.Categories().GetByID(c.ID)
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func TestCategoryRepository_CountExpenses(t *testing.T) {
	s := NewStore()
	c := newCategory(t, s, "Food")
	other := newCategory(t, s, "Other")
	d := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	newExpense(t, s, c.ID, 1, d)
	newExpense(t, s, c.ID, 2, d)
	newExpense(t, s, other.ID, 3, d)

	count, err := s.Categories().CountExpenses(c.ID)

	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestExpenseRepository_CreateRequiresCategory(t *testing.T) {
	s := NewStore()

	_, err := s.Expenses().Create(&domain.Expense{CategoryID: uuid.New(), Amount: decimal.NewFromInt(1)})

	assert.ErrorIs(t, err, domain.ErrUnknownCategory)
	assert.ErrorIs(t, err, domain.ErrReference)
	all, _ := s.Expenses().GetAll(nil)
	assert.Empty(t, all)
}

func TestExpenseRepository_UpdateRequiresCategory(t *testing.T) {
	s := NewStore()
	c := newCategory(t, s, "Food")
	e := newExpense(t, s, c.ID, 10, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC))

	e.CategoryID = uuid.New()
	_, err := s.Expenses().Update(e)

	assert.ErrorIs(t, err, domain.ErrUnknownCategory)
	got, _ := s.Expenses().GetByID(e.ID)
	assert.Equal(t, c.ID, got.CategoryID)
}

func TestExpenseRepository_GetAllFiltersAndOrders(t *testing.T) {
	s := NewStore()
	food := newCategory(t, s, "Food")
	rent := newCategory(t, s, "Rent")
	newExpense(t, s, food.ID, 1, time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC))
	newExpense(t, s, food.ID, 2, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
	newExpense(t, s, rent.ID, 3, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))

	all, err := s.Expenses().GetAll(nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.True(t, all[0].Amount.Equal(decimal.NewFromInt(2)))
	assert.True(t, all[2].Amount.Equal(decimal.NewFromInt(1)))

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	march, err := s.Expenses().GetAll(&domain.ExpenseFilters{StartDate: &start, EndDate: &end})
	require.NoError(t, err)
	assert.Len(t, march, 2)

	foodOnly, err := s.Expenses().GetAll(&domain.ExpenseFilters{CategoryID: &food.ID})
	require.NoError(t, err)
	assert.Len(t, foodOnly, 2)
}

func TestExpenseRepository_DeleteUnknown(t *testing.T) {
	s := NewStore()

	assert.ErrorIs(t, s.Expenses().Delete(uuid.New()), domain.ErrExpenseNotFound)
}

func TestRecurringBudgetRepository_OnePerCategory(t *testing.T) {
	s := NewStore()
	c := newCategory(t, s, "Food")
	_, err := s.RecurringBudgets().Create(&domain.RecurringBudget{CategoryID: c.ID, Amount: decimal.NewFromInt(100)})
	require.NoError(t, err)

	_, err = s.RecurringBudgets().Create(&domain.RecurringBudget{CategoryID: c.ID, Amount: decimal.NewFromInt(50)})

	assert.ErrorIs(t, err, domain.ErrBudgetAlreadyExists)
	all, _ := s.RecurringBudgets().GetAll()
	assert.Len(t, all, 1)
}

func TestRecurringBudgetRepository_UpdateCannotMoveOntoBudgetedCategory(t *testing.T) {
	s := NewStore()
	food := newCategory(t, s, "Food")
	rent := newCategory(t, s, "Rent")
	foodBudget, err := s.RecurringBudgets().Create(&domain.RecurringBudget{CategoryID: food.ID, Amount: decimal.NewFromInt(100)})
	require.NoError(t, err)
	_, err = s.RecurringBudgets().Create(&domain.RecurringBudget{CategoryID: rent.ID, Amount: decimal.NewFromInt(900)})
	require.NoError(t, err)

	_, err = s.RecurringBudgets().Update(&domain.RecurringBudget{ID: foodBudget.ID, CategoryID: rent.ID, Amount: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrBudgetAlreadyExists)

	updated, err := s.RecurringBudgets().Update(&domain.RecurringBudget{ID: foodBudget.ID, CategoryID: food.ID, Amount: decimal.NewFromInt(150)})
	require.NoError(t, err)
	assert.True(t, updated.Amount.Equal(decimal.NewFromInt(150)))
}

func TestRecurringBudgetRepository_CreateRequiresCategory(t *testing.T) {
	s := NewStore()

	_, err := s.RecurringBudgets().Create(&domain.RecurringBudget{CategoryID: uuid.New(), Amount: decimal.NewFromInt(1)})

	assert.ErrorIs(t, err, domain.ErrUnknownCategory)
}

func TestStore_DeleteAndCreateNeverLeaveDanglingReference(t *testing.T) {
	for i := 0; i < 50; i++ {
		s := NewStore()
		c := newCategory(t, s, "Food")

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = s.Categories().Delete(c.ID)
		}()
		go func() {
			defer wg.Done()
			_, _ = s.Expenses().Create(&domain.Expense{CategoryID: c.ID, Amount: decimal.NewFromInt(1), Date: time.Now()})
		}()
		wg.Wait()

		expenses, err := s.Expenses().GetAll(nil)
		require.NoError(t, err)
		for _, e := range expenses {
			_, err := s.Categories().GetByID(e.CategoryID)
			assert.NoError(t, err, "expense %s references a deleted category", e.ID)
		}
	}
}
