package service

import (
	"context"

	"github.com/dafibh/spendboard/internal/domain"
	"golang.org/x/sync/errgroup"
)

// snapshot is one read of every collection a query derives from
type snapshot struct {
	categories []*domain.Category
	expenses   []*domain.Expense
	budgets    []*domain.RecurringBudget
}

// snapshotLoader reads the three collections concurrently
type snapshotLoader struct {
	categoryRepo domain.CategoryRepository
	expenseRepo  domain.ExpenseRepository
	budgetRepo   domain.RecurringBudgetRepository
}

func (l snapshotLoader) load(ctx context.Context) (*snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		snap snapshot
		g    errgroup.Group
	)

	g.Go(func() error {
		categories, err := l.categoryRepo.GetAll()
		snap.categories = categories
		return err
	})
	g.Go(func() error {
		expenses, err := l.expenseRepo.GetAll(nil)
		snap.expenses = expenses
		return err
	})
	g.Go(func() error {
		budgets, err := l.budgetRepo.GetAll()
		snap.budgets = budgets
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &snap, nil
}
