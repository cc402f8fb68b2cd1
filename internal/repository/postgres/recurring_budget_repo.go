package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/dafibh/spendboard/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const budgetColumns = `id, category_id, amount, created_at, updated_at`

// RecurringBudgetRepository implements domain.RecurringBudgetRepository using PostgreSQL
type RecurringBudgetRepository struct {
	pool *pgxpool.Pool
}

// NewRecurringBudgetRepository creates a new RecurringBudgetRepository
func NewRecurringBudgetRepository(pool *pgxpool.Pool) *RecurringBudgetRepository {
	return &RecurringBudgetRepository{pool: pool}
}

// Create creates a new recurring budget
func (r *RecurringBudgetRepository) Create(budget *domain.RecurringBudget) (*domain.RecurringBudget, error) {
	ctx := context.Background()

	amount, err := decimalToPgNumeric(budget.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO recurring_budgets (id, category_id, amount)
		VALUES ($1, $2, $3)
		RETURNING `+budgetColumns,
		toPgUUID(uuid.New()), toPgUUID(budget.CategoryID), amount)

	created, err := scanBudget(row)
	if err != nil {
		return nil, mapBudgetWriteError(err)
	}
	return created, nil
}

// GetByID retrieves a recurring budget by its ID
func (r *RecurringBudgetRepository) GetByID(id uuid.UUID) (*domain.RecurringBudget, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `SELECT `+budgetColumns+` FROM recurring_budgets WHERE id = $1`, toPgUUID(id))

	budget, err := scanBudget(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBudgetNotFound
		}
		return nil, err
	}
	return budget, nil
}

// GetAll retrieves all recurring budgets ordered by creation time
func (r *RecurringBudgetRepository) GetAll() ([]*domain.RecurringBudget, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `SELECT `+budgetColumns+` FROM recurring_budgets ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	budgets := []*domain.RecurringBudget{}
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, b)
	}
	return budgets, rows.Err()
}

// Update updates a recurring budget's category and amount
func (r *RecurringBudgetRepository) Update(budget *domain.RecurringBudget) (*domain.RecurringBudget, error) {
	ctx := context.Background()

	amount, err := decimalToPgNumeric(budget.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		UPDATE recurring_budgets
		SET category_id = $2, amount = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING `+budgetColumns,
		toPgUUID(budget.ID), toPgUUID(budget.CategoryID), amount)

	updated, err := scanBudget(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBudgetNotFound
		}
		return nil, mapBudgetWriteError(err)
	}
	return updated, nil
}

// Delete removes a recurring budget
func (r *RecurringBudgetRepository) Delete(id uuid.UUID) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM recurring_budgets WHERE id = $1`, toPgUUID(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBudgetNotFound
	}
	return nil
}

func mapBudgetWriteError(err error) error {
	switch pgErrorCode(err) {
	case pgForeignKeyViolation:
		return domain.ErrUnknownCategory
	case pgUniqueViolation:
		return domain.ErrBudgetAlreadyExists
	}
	return err
}

func scanBudget(row pgx.Row) (*domain.RecurringBudget, error) {
	var (
		id, categoryID pgtype.UUID
		amount         pgtype.Numeric
		createdAt      pgtype.Timestamptz
		updatedAt      pgtype.Timestamptz
	)
	if err := row.Scan(&id, &categoryID, &amount, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	return &domain.RecurringBudget{
		ID:         fromPgUUID(id),
		CategoryID: fromPgUUID(categoryID),
		Amount:     pgNumericToDecimal(amount),
		CreatedAt:  createdAt.Time,
		UpdatedAt:  updatedAt.Time,
	}, nil
}
