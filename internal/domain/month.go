package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Period is a calendar month used as the aggregation window. First and Last are
// inclusive dates at UTC midnight.
type Period struct {
	Key   string     `json:"key"`
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	First time.Time  `json:"first"`
	Last  time.Time  `json:"last"`
}

// Contains reports whether date falls on or between First and Last.
func (p Period) Contains(date time.Time) bool {
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return !d.Before(p.First) && !d.After(p.Last)
}

// CategoryTotal is the summed spend and transaction count for one category.
type CategoryTotal struct {
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

// MonthlyAggregate is a derived summary of the expenses inside a Period.
type MonthlyAggregate struct {
	Period           Period                      `json:"period"`
	Total            decimal.Decimal             `json:"total"`
	ByCategory       map[uuid.UUID]CategoryTotal `json:"byCategory"`
	TransactionCount int                         `json:"transactionCount"`
}

// CategoryTotalFor returns the total for a category, zero when it has no spend.
func (a MonthlyAggregate) CategoryTotalFor(id uuid.UUID) decimal.Decimal {
	if ct, ok := a.ByCategory[id]; ok {
		return ct.Total
	}
	return decimal.Zero
}
