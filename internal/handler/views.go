package handler

import (
	"github.com/dafibh/spendboard/internal/domain"
	"github.com/dafibh/spendboard/internal/util"
)

// PeriodResponse represents a calendar month in API responses
type PeriodResponse struct {
	Key   string `json:"key"`
	Year  int    `json:"year"`
	Month int    `json:"month"`
	First string `json:"first"`
	Last  string `json:"last"`
}

// CategoryRefResponse is the display identity of a category in derived views
type CategoryRefResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

func toPeriodResponse(p domain.Period) PeriodResponse {
	return PeriodResponse{
		Key:   p.Key,
		Year:  p.Year,
		Month: int(p.Month),
		First: util.FormatDate(p.First),
		Last:  util.FormatDate(p.Last),
	}
}

func toCategoryRefResponse(ref domain.CategoryRef) CategoryRefResponse {
	return CategoryRefResponse{
		ID:    ref.ID.String(),
		Name:  ref.Name,
		Color: ref.Color,
		Icon:  ref.Icon,
	}
}
