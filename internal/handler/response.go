package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dafibh/spendboard/internal/domain"
	"github.com/dafibh/spendboard/internal/util"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ProblemDetails represents an RFC 7807 Problem Details response
type ProblemDetails struct {
	Type     string            `json:"type"`
	Title    string            `json:"title"`
	Status   int               `json:"status"`
	Detail   string            `json:"detail,omitempty"`
	Instance string            `json:"instance,omitempty"`
	Errors   []ValidationError `json:"errors,omitempty"`
}

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error types
const (
	ErrorTypeValidation  = "https://spendboard.app/errors/validation"
	ErrorTypeReference   = "https://spendboard.app/errors/reference"
	ErrorTypeNotFound    = "https://spendboard.app/errors/not-found"
	ErrorTypeConflict    = "https://spendboard.app/errors/conflict"
	ErrorTypeUnavailable = "https://spendboard.app/errors/unavailable"
	ErrorTypeInternal    = "https://spendboard.app/errors/internal"
)

// NewValidationError creates a validation error response
func NewValidationError(c echo.Context, detail string, errors []ValidationError) error {
	return c.JSON(http.StatusBadRequest, ProblemDetails{
		Type:     ErrorTypeValidation,
		Title:    "Validation Error",
		Status:   http.StatusBadRequest,
		Detail:   detail,
		Instance: c.Request().URL.Path,
		Errors:   errors,
	})
}

// NewReferenceError creates a response for writes that reference a missing entity
func NewReferenceError(c echo.Context, detail string, errors []ValidationError) error {
	return c.JSON(http.StatusUnprocessableEntity, ProblemDetails{
		Type:     ErrorTypeReference,
		Title:    "Unknown Reference",
		Status:   http.StatusUnprocessableEntity,
		Detail:   detail,
		Instance: c.Request().URL.Path,
		Errors:   errors,
	})
}

// NewNotFoundError creates a not found error response
func NewNotFoundError(c echo.Context, detail string) error {
	return c.JSON(http.StatusNotFound, ProblemDetails{
		Type:     ErrorTypeNotFound,
		Title:    "Not Found",
		Status:   http.StatusNotFound,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewConflictError creates a conflict error response
func NewConflictError(c echo.Context, detail string) error {
	return c.JSON(http.StatusConflict, ProblemDetails{
		Type:     ErrorTypeConflict,
		Title:    "Conflict",
		Status:   http.StatusConflict,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewServiceUnavailableError creates a response for features that are not configured
func NewServiceUnavailableError(c echo.Context, detail string) error {
	return c.JSON(http.StatusServiceUnavailable, ProblemDetails{
		Type:     ErrorTypeUnavailable,
		Title:    "Service Unavailable",
		Status:   http.StatusServiceUnavailable,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewInternalError creates an internal error response
func NewInternalError(c echo.Context, detail string) error {
	return c.JSON(http.StatusInternalServerError, ProblemDetails{
		Type:     ErrorTypeInternal,
		Title:    "Internal Server Error",
		Status:   http.StatusInternalServerError,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// Request decoding errors
var (
	errInvalidBody       = errors.New("invalid request body")
	errInvalidCategoryID = fmt.Errorf("%w: categoryId must be a valid UUID", domain.ErrValidation)
)

// errorFields maps domain errors to the request field they concern
var errorFields = []struct {
	err   error
	field string
}{
	{domain.ErrNameRequired, "name"},
	{domain.ErrNameTooLong, "name"},
	{domain.ErrAmountRequired, "amount"},
	{domain.ErrInvalidAmount, "amount"},
	{domain.ErrDateRequired, "date"},
	{domain.ErrInvalidDateFormat, "date"},
	{domain.ErrDescriptionTooLong, "description"},
	{domain.ErrCategoryRequired, "categoryId"},
	{domain.ErrUnknownCategory, "categoryId"},
	{errInvalidCategoryID, "categoryId"},
	{domain.ErrInvalidMonthFormat, "month"},
	{domain.ErrInvalidTrendMonths, "months"},
}

// errorMessage returns the message of a domain error without its kind prefix
func errorMessage(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, ": "); i >= 0 {
		return msg[i+2:]
	}
	return msg
}

func fieldErrors(err error) []ValidationError {
	for _, f := range errorFields {
		if errors.Is(err, f.err) {
			return []ValidationError{{Field: f.field, Message: errorMessage(err)}}
		}
	}
	return nil
}

// handled reports whether err has a kind that maps to a client-facing response
func handled(err error) bool {
	return domain.Kind(err) != "internal"
}

// NewDomainError writes the problem response for a domain error of a known kind.
// Callers check handled first and log anything else as an internal error.
func NewDomainError(c echo.Context, err error) error {
	switch domain.Kind(err) {
	case "validation":
		return NewValidationError(c, "Validation failed", fieldErrors(err))
	case "reference":
		return NewReferenceError(c, errorMessage(err), fieldErrors(err))
	case "conflict":
		return NewConflictError(c, errorMessage(err))
	case "not_found":
		return NewNotFoundError(c, errorMessage(err))
	}
	return NewInternalError(c, "Unexpected error")
}

// NewBindError writes the problem response for a request that could not be decoded
func NewBindError(c echo.Context, err error) error {
	if handled(err) {
		return NewDomainError(c, err)
	}
	return NewValidationError(c, "Invalid request body", nil)
}

// parseID parses a uuid path parameter
func parseID(c echo.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// parseRefDate reads the optional "date" query parameter, defaulting to today
func parseRefDate(c echo.Context) (time.Time, error) {
	raw := c.QueryParam("date")
	if raw == "" {
		return util.TruncateToDate(time.Now()), nil
	}
	return util.ParseDate(raw)
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
