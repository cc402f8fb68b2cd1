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

const categoryColumns = `id, name, color, icon, created_at, updated_at`

// CategoryRepository implements domain.CategoryRepository using PostgreSQL
type CategoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

// Create creates a new category
func (r *CategoryRepository) Create(category *domain.Category) (*domain.Category, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO categories (id, name, color, icon)
		VALUES ($1, $2, $3, $4)
		RETURNING `+categoryColumns,
		toPgUUID(uuid.New()), category.Name, category.Color, category.Icon)

	created, err := scanCategory(row)
	if err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return nil, domain.ErrCategoryNameExists
		}
		return nil, err
	}
	return created, nil
}

// GetByID retrieves a category by its ID
func (r *CategoryRepository) GetByID(id uuid.UUID) (*domain.Category, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, toPgUUID(id))

	category, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

// GetAll retrieves all categories ordered by name
func (r *CategoryRepository) GetAll() ([]*domain.Category, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY name, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []*domain.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// Update updates a category's name, color and icon
func (r *CategoryRepository) Update(category *domain.Category) (*domain.Category, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		UPDATE categories
		SET name = $2, color = $3, icon = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING `+categoryColumns,
		toPgUUID(category.ID), category.Name, category.Color, category.Icon)

	updated, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		if pgErrorCode(err) == pgUniqueViolation {
			return nil, domain.ErrCategoryNameExists
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes a category; its recurring budget goes with it through ON DELETE
// CASCADE. Expenses reference categories with ON DELETE RESTRICT, so a concurrent
// expense insert can never leave a dangling reference.
func (r *CategoryRepository) Delete(id uuid.UUID) error {
	ctx := context.Background()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var locked pgtype.UUID
	err = tx.QueryRow(ctx, `SELECT id FROM categories WHERE id = $1 FOR UPDATE`, toPgUUID(id)).Scan(&locked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrCategoryNotFound
		}
		return err
	}

	var inUse bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM expenses WHERE category_id = $1)`, toPgUUID(id)).Scan(&inUse); err != nil {
		return err
	}
	if inUse {
		return domain.ErrCategoryInUse
	}

	if _, err := tx.Exec(ctx, `DELETE FROM categories WHERE id = $1`, toPgUUID(id)); err != nil {
		if pgErrorCode(err) == pgForeignKeyViolation {
			return domain.ErrCategoryInUse
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit category delete: %w", err)
	}
	return nil
}

// CountExpenses returns the number of expenses referencing a category
func (r *CategoryRepository) CountExpenses(id uuid.UUID) (int64, error) {
	ctx := context.Background()
	var count int64
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(e.id)
		FROM categories c
		LEFT JOIN expenses e ON e.category_id = c.id
		WHERE c.id = $1
		GROUP BY c.id`, toPgUUID(id)).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrCategoryNotFound
		}
		return 0, err
	}
	return count, nil
}

func scanCategory(row pgx.Row) (*domain.Category, error) {
	var (
		id        pgtype.UUID
		c         domain.Category
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)
	if err := row.Scan(&id, &c.Name, &c.Color, &c.Icon, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	c.ID = fromPgUUID(id)
	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time
	return &c, nil
}
