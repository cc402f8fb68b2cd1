package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dafibh/spendboard/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const expenseColumns = `id, category_id, amount, description, expense_date, created_at, updated_at`

// ExpenseRepository implements domain.ExpenseRepository using PostgreSQL
type ExpenseRepository struct {
	pool *pgxpool.Pool
}

// NewExpenseRepository creates a new ExpenseRepository
func NewExpenseRepository(pool *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{pool: pool}
}

// Create creates a new expense
func (r *ExpenseRepository) Create(expense *domain.Expense) (*domain.Expense, error) {
	ctx := context.Background()

	amount, err := decimalToPgNumeric(expense.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO expenses (id, category_id, amount, description, expense_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+expenseColumns,
		toPgUUID(uuid.New()), toPgUUID(expense.CategoryID), amount, expense.Description, toPgDate(expense.Date))

	created, err := scanExpense(row)
	if err != nil {
		if pgErrorCode(err) == pgForeignKeyViolation {
			return nil, domain.ErrUnknownCategory
		}
		return nil, err
	}
	return created, nil
}

// GetByID retrieves an expense by its ID
func (r *ExpenseRepository) GetByID(id uuid.UUID) (*domain.Expense, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE id = $1`, toPgUUID(id))

	expense, err := scanExpense(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrExpenseNotFound
		}
		return nil, err
	}
	return expense, nil
}

// GetAll retrieves expenses matching filters, newest first
func (r *ExpenseRepository) GetAll(filters *domain.ExpenseFilters) ([]*domain.Expense, error) {
	ctx := context.Background()

	var (
		conditions []string
		args       []any
	)
	if filters != nil {
		if filters.CategoryID != nil {
			args = append(args, toPgUUID(*filters.CategoryID))
			conditions = append(conditions, fmt.Sprintf("category_id = $%d", len(args)))
		}
		if filters.StartDate != nil {
			args = append(args, toPgDate(*filters.StartDate))
			conditions = append(conditions, fmt.Sprintf("expense_date >= $%d", len(args)))
		}
		if filters.EndDate != nil {
			args = append(args, toPgDate(*filters.EndDate))
			conditions = append(conditions, fmt.Sprintf("expense_date <= $%d", len(args)))
		}
	}

	query := `SELECT ` + expenseColumns + ` FROM expenses`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY expense_date DESC, id DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expenses := []*domain.Expense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

// Update updates an expense's fields
func (r *ExpenseRepository) Update(expense *domain.Expense) (*domain.Expense, error) {
	ctx := context.Background()

	amount, err := decimalToPgNumeric(expense.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		UPDATE expenses
		SET category_id = $2, amount = $3, description = $4, expense_date = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING `+expenseColumns,
		toPgUUID(expense.ID), toPgUUID(expense.CategoryID), amount, expense.Description, toPgDate(expense.Date))

	updated, err := scanExpense(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrExpenseNotFound
		}
		if pgErrorCode(err) == pgForeignKeyViolation {
			return nil, domain.ErrUnknownCategory
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes an expense
func (r *ExpenseRepository) Delete(id uuid.UUID) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, toPgUUID(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrExpenseNotFound
	}
	return nil
}

func scanExpense(row pgx.Row) (*domain.Expense, error) {
	var (
		id, categoryID pgtype.UUID
		amount         pgtype.Numeric
		expenseDate    pgtype.Date
		createdAt      pgtype.Timestamptz
		updatedAt      pgtype.Timestamptz
		e              domain.Expense
	)
	if err := row.Scan(&id, &categoryID, &amount, &e.Description, &expenseDate, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	e.ID = fromPgUUID(id)
	e.CategoryID = fromPgUUID(categoryID)
	e.Amount = pgNumericToDecimal(amount)
	e.Date = fromPgDate(expenseDate)
	e.CreatedAt = createdAt.Time
	e.UpdatedAt = updatedAt.Time
	return &e, nil
}
