package service

import (
	"strings"
	"testing"
	"time"

	"github.com/dafibh/spendboard/internal/domain"
	"github.com/dafibh/spendboard/internal/testutil"
	"github.com/dafibh/spendboard/internal/util"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func amountPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func datePtr(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

func newExpenseFixture() (*testutil.MockCategoryRepository, *testutil.MockExpenseRepository, *ExpenseService) {
	categoryRepo := testutil.NewMockCategoryRepository()
	expenseRepo := testutil.NewMockExpenseRepository(categoryRepo)
	return categoryRepo, expenseRepo, NewExpenseService(expenseRepo)
}

func TestCreateExpense_Success(t *testing.T) {
	categoryRepo, _, svc := newExpenseFixture()
	food := categoryRepo.AddCategory("Food")

	when := time.Date(2024, 3, 10, 18, 45, 0, 0, time.UTC)
	expense, err := svc.CreateExpense(ExpenseInput{
		Amount:      amountPtr("12.345"),
		CategoryID:  food.ID,
		Description: "  lunch ",
		Date:        &when,
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, expense.ID)
	assert.Equal(t, "12.35", expense.Amount.StringFixed(2))
	assert.Equal(t, "lunch", expense.Description)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), expense.Date)
	assert.Equal(t, int64(1), categoryRepo.ExpenseCounts[food.ID])
}

func TestCreateExpense_ZeroAmountAllowed(t *testing.T) {
	categoryRepo, _, svc := newExpenseFixture()
	food := categoryRepo.AddCategory("Food")

	expense, err := svc.CreateExpense(ExpenseInput{
		Amount:     amountPtr("0"),
		CategoryID: food.ID,
		Date:       datePtr(2024, 3, 1),
	})

	require.NoError(t, err)
	assert.True(t, expense.Amount.IsZero())
}

func TestCreateExpense_Validation(t *testing.T) {
	categoryRepo, _, svc := newExpenseFixture()
	food := categoryRepo.AddCategory("Food")

	tests := []struct {
		name    string
		input   ExpenseInput
		wantErr error
	}{
		{
			name:    "missing amount",
			input:   ExpenseInput{CategoryID: food.ID, Date: datePtr(2024, 3, 1)},
			wantErr: domain.ErrAmountRequired,
		},
		{
			name:    "negative amount",
			input:   ExpenseInput{Amount: amountPtr("-1"), CategoryID: food.ID, Date: datePtr(2024, 3, 1)},
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name:    "missing category",
			input:   ExpenseInput{Amount: amountPtr("1"), Date: datePtr(2024, 3, 1)},
			wantErr: domain.ErrCategoryRequired,
		},
		{
			name:    "missing date",
			input:   ExpenseInput{Amount: amountPtr("1"), CategoryID: food.ID},
			wantErr: domain.ErrDateRequired,
		},
		{
			name: "description too long",
			input: ExpenseInput{
				Amount:      amountPtr("1"),
				CategoryID:  food.ID,
				Date:        datePtr(2024, 3, 1),
				Description: strings.Repeat("x", domain.MaxDescriptionLength+1),
			},
			wantErr: domain.ErrDescriptionTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateExpense(tt.input)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, "validation", domain.Kind(err))
		})
	}
}

func TestCreateExpense_UnknownCategory(t *testing.T) {
	_, expenseRepo, svc := newExpenseFixture()

	_, err := svc.CreateExpense(ExpenseInput{
		Amount:     amountPtr("5"),
		CategoryID: uuid.New(),
		Date:       datePtr(2024, 3, 1),
	})

	assert.ErrorIs(t, err, domain.ErrUnknownCategory)
	assert.Equal(t, "reference", domain.Kind(err))
	assert.Empty(t, expenseRepo.Expenses)
}

func TestUpdateExpense_MovesBetweenCategories(t *testing.T) {
	categoryRepo, expenseRepo, svc := newExpenseFixture()
	food := categoryRepo.AddCategory("Food")
	travel := categoryRepo.AddCategory("Travel")
	existing := expenseRepo.AddExpense(food.ID, "10", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))

	updated, err := svc.UpdateExpense(existing.ID, ExpenseInput{
		Amount:     amountPtr("15"),
		CategoryID: travel.ID,
		Date:       datePtr(2024, 3, 2),
	})

	require.NoError(t, err)
	assert.Equal(t, existing.ID, updated.ID)
	assert.Equal(t, travel.ID, updated.CategoryID)
	assert.Equal(t, int64(0), categoryRepo.ExpenseCounts[food.ID])
	assert.Equal(t, int64(1), categoryRepo.ExpenseCounts[travel.ID])
}

func TestUpdateExpense_NotFound(t *testing.T) {
	categoryRepo, _, svc := newExpenseFixture()
	food := categoryRepo.AddCategory("Food")

	_, err := svc.UpdateExpense(uuid.New(), ExpenseInput{
		Amount:     amountPtr("15"),
		CategoryID: food.ID,
		Date:       datePtr(2024, 3, 2),
	})

	assert.ErrorIs(t, err, domain.ErrExpenseNotFound)
}

func TestDeleteExpense(t *testing.T) {
	categoryRepo, expenseRepo, svc := newExpenseFixture()
	food := categoryRepo.AddCategory("Food")
	existing := expenseRepo.AddExpense(food.ID, "10", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))

	require.NoError(t, svc.DeleteExpense(existing.ID))
	assert.ErrorIs(t, svc.DeleteExpense(existing.ID), domain.ErrExpenseNotFound)
}

func TestGetExpensesForMonth_UsesInclusiveBounds(t *testing.T) {
	categoryRepo, expenseRepo, svc := newExpenseFixture()
	food := categoryRepo.AddCategory("Food")
	expenseRepo.AddExpense(food.ID, "1", time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC))
	first := expenseRepo.AddExpense(food.ID, "2", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	last := expenseRepo.AddExpense(food.ID, "3", time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC))
	expenseRepo.AddExpense(food.ID, "4", time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))

	expenses, err := svc.GetExpensesForMonth(util.MonthPeriod(2024, time.March), nil)

	require.NoError(t, err)
	require.Len(t, expenses, 2)
	assert.Equal(t, last.ID, expenses[0].ID)
	assert.Equal(t, first.ID, expenses[1].ID)
}
