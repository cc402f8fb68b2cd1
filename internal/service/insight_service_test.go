package service

import (
	"context"
	"errors"
	"testing"

	"github.com/dafibh/spendboard/internal/domain"
	"github.com/dafibh/spendboard/internal/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsightService_NotConfigured(t *testing.T) {
	f := newFixture()
	svc := NewInsightService(f.categories, f.expenses, f.budgets, nil, "₹", zerolog.Nop())

	assert.False(t, svc.IsEnabled())
	_, err := svc.Generate(context.Background(), day(2024, 3, 1))
	assert.ErrorIs(t, err, domain.ErrInsightsUnavailable)
}

func TestInsightService_NoExpensesSkipsGenerator(t *testing.T) {
	f := newFixture()
	generator := &testutil.MockInsightGenerator{Response: "unused"}
	svc := NewInsightService(f.categories, f.expenses, f.budgets, generator, "₹", zerolog.Nop())

	insight, err := svc.Generate(context.Background(), day(2024, 3, 1))

	require.NoError(t, err)
	assert.Equal(t, NoExpensesInsight, insight.Text)
	assert.Nil(t, insight.Summary)
	assert.Empty(t, generator.Prompts)
}

func TestInsightService_Generate(t *testing.T) {
	f := newFixture()
	food := f.categories.AddCategory("Food")
	rent := f.categories.AddCategory("Rent")
	f.budgets.AddBudget(food.ID, "100")
	f.expenses.AddExpense(food.ID, "80", day(2024, 3, 3))
	f.expenses.AddExpense(rent.ID, "500", day(2024, 2, 1))

	generator := &testutil.MockInsightGenerator{Response: "Spend less on rent."}
	svc := NewInsightService(f.categories, f.expenses, f.budgets, generator, "$", zerolog.Nop())

	insight, err := svc.Generate(context.Background(), day(2024, 3, 15))

	require.NoError(t, err)
	assert.Equal(t, "Spend less on rent.", insight.Text)
	require.NotNil(t, insight.Summary)
	assert.Equal(t, "580.00", insight.Summary.TotalExpenses.StringFixed(2))
	assert.Equal(t, "80.00", insight.Summary.CurrentMonthExpenses.StringFixed(2))
	assert.Equal(t, "100.00", insight.Summary.CurrentMonthBudget.StringFixed(2))
	assert.Equal(t, 2, insight.Summary.NumTransactions)
	assert.Equal(t, 2, insight.Summary.Categories)
	assert.Equal(t, 1, insight.Summary.BudgetsSet)

	require.Len(t, generator.Prompts, 1)
	prompt := generator.Prompts[0]
	assert.Contains(t, prompt, "Current Month (2024-03)")
	assert.Contains(t, prompt, "- Expenses: $80.00")
	assert.Contains(t, prompt, "- Rent: $500.00")
	assert.Contains(t, prompt, "- Food: Budget $100.00, Current Month Spent $80.00")
}

func TestInsightService_GeneratorError(t *testing.T) {
	f := newFixture()
	food := f.categories.AddCategory("Food")
	f.expenses.AddExpense(food.ID, "1", day(2024, 3, 3))
	genErr := errors.New("upstream 500")
	generator := &testutil.MockInsightGenerator{Err: genErr}
	svc := NewInsightService(f.categories, f.expenses, f.budgets, generator, "₹", zerolog.Nop())

	_, err := svc.Generate(context.Background(), day(2024, 3, 3))

	assert.ErrorIs(t, err, genErr)
}
