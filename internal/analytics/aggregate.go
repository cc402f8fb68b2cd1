// Package analytics holds the pure budget-accounting and aggregation functions. Every
// function works on a snapshot passed in by the caller and never fails: empty or
// degenerate input produces zero values.
package analytics

import (
	"bytes"
	"sort"

	"github.com/dafibh/spendboard/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate sums the expenses whose date lies within p, overall and per category.
func Aggregate(expenses []*domain.Expense, p domain.Period) domain.MonthlyAggregate {
	agg := domain.MonthlyAggregate{
		Period:     p,
		Total:      decimal.Zero,
		ByCategory: make(map[uuid.UUID]domain.CategoryTotal),
	}

	for _, e := range expenses {
		if e == nil || !p.Contains(e.Date) {
			continue
		}
		ct := agg.ByCategory[e.CategoryID]
		ct.Total = ct.Total.Add(e.Amount)
		ct.Count++
		agg.ByCategory[e.CategoryID] = ct

		agg.Total = agg.Total.Add(e.Amount)
		agg.TransactionCount++
	}

	return agg
}

// Recent returns the n most recent expenses, newest first. Expenses on the same date
// are ordered by id descending.
func Recent(expenses []*domain.Expense, n int) []*domain.Expense {
	if n <= 0 {
		return []*domain.Expense{}
	}

	sorted := make([]*domain.Expense, 0, len(expenses))
	for _, e := range expenses {
		if e != nil {
			sorted = append(sorted, e)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return newerFirst(sorted[i], sorted[j])
	})

	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func newerFirst(a, b *domain.Expense) bool {
	if !a.Date.Equal(b.Date) {
		return a.Date.After(b.Date)
	}
	return compareIDs(a.ID, b.ID) > 0
}

func compareIDs(a, b uuid.UUID) int {
	return bytes.Compare(a[:], b[:])
}
