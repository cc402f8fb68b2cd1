package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by a command wraps exactly one of these.
var (
	ErrValidation = errors.New("validation error")
	ErrReference  = errors.New("reference error")
	ErrConflict   = errors.New("conflict")
	ErrNotFound   = errors.New("resource not found")
)

// Domain errors
var (
	ErrNameRequired        = kindError(ErrValidation, "name is required")
	ErrNameTooLong         = kindError(ErrValidation, "name exceeds maximum length")
	ErrInvalidAmount       = kindError(ErrValidation, "amount must be a non-negative number")
	ErrAmountRequired      = kindError(ErrValidation, "amount is required")
	ErrDateRequired        = kindError(ErrValidation, "date is required")
	ErrDescriptionTooLong  = kindError(ErrValidation, "description exceeds maximum length")
	ErrInvalidMonthFormat  = kindError(ErrValidation, "month must be in YYYY-MM format")
	ErrInvalidDateFormat   = kindError(ErrValidation, "date must be in YYYY-MM-DD format")
	ErrInvalidTrendMonths  = kindError(ErrValidation, "months must be between 1 and 36")
	ErrCategoryRequired    = kindError(ErrValidation, "category is required")
	ErrUnknownCategory     = kindError(ErrReference, "category does not exist")
	ErrCategoryNameExists  = kindError(ErrConflict, "category with this name already exists")
	ErrCategoryInUse       = kindError(ErrConflict, "category has expenses")
	ErrBudgetAlreadyExists = kindError(ErrConflict, "budget already exists for this category")
	ErrCategoryNotFound    = kindError(ErrNotFound, "category not found")
	ErrExpenseNotFound     = kindError(ErrNotFound, "expense not found")
	ErrBudgetNotFound      = kindError(ErrNotFound, "budget not found")
)

// Validation constants
const (
	MaxCategoryNameLength = 100
	MaxDescriptionLength  = 500
	DefaultCategoryColor  = "#3b82f6"
	DefaultCategoryIcon   = "💰"
	UnknownCategoryName   = "Unknown"
	MinTrendMonths        = 1
	MaxTrendMonths        = 36
)

func kindError(kind error, msg string) error {
	return fmt.Errorf("%w: %s", kind, msg)
}

// Kind returns the stable error kind reported to callers.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrReference):
		return "reference"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "internal"
	}
}
