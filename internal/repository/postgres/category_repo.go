package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kasorg/kasor/kasor-backend/internal/domain"
)

// CategoryRepository implements domain.CategoryRepository using PostgreSQL
type CategoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

const categoryColumns = `id, name, type, description, is_active, created_at, updated_at`

// List returns categories filtered by type and active flag, newest first.
func (r *CategoryRepository) List(filters *domain.CategoryFilters) ([]*domain.Category, error) {
	ctx := context.Background()

	query := `SELECT ` + categoryColumns + ` FROM categories WHERE 1=1`
	var args []any

	if filters != nil {
		if filters.Type != nil {
			args = append(args, *filters.Type)
			query += fmt.Sprintf(" AND type = $%d", len(args))
		}
		if filters.IsActive != nil {
			args = append(args, *filters.IsActive)
			query += fmt.Sprintf(" AND is_active = $%d", len(args))
		}
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var categories []*domain.Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, mapError(err)
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

// GetByID retrieves a category by its ID.
func (r *CategoryRepository) GetByID(id int32) (*domain.Category, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
	category, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, mapError(err)
	}
	return category, nil
}

// GetWithSummary retrieves a category joined with its transaction aggregates.
func (r *CategoryRepository) GetWithSummary(id int32) (*domain.CategoryWithSummary, error) {
	ctx := context.Background()

	var (
		result      domain.CategoryWithSummary
		description pgtype.Text
		income      pgtype.Numeric
		expense     pgtype.Numeric
	)
	err := r.pool.QueryRow(ctx, `
		SELECT
			c.id, c.name, c.type, c.description, c.is_active, c.created_at, c.updated_at,
			COUNT(t.id) AS transaction_count,
			COALESCE(SUM(CASE WHEN t.trx_type = 'income' THEN t.amount ELSE 0 END), 0) AS total_income,
			COALESCE(SUM(CASE WHEN t.trx_type = 'expense' THEN t.amount ELSE 0 END), 0) AS total_expense
		FROM categories c
		LEFT JOIN transactions t ON c.id = t.category_id
		WHERE c.id = $1
		GROUP BY c.id`, id,
	).Scan(
		&result.ID, &result.Name, &result.Type, &description, &result.IsActive,
		&result.CreatedAt, &result.UpdatedAt,
		&result.TransactionCount, &income, &expense,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, mapError(err)
	}

	result.Description = textPtr(description)
	result.TotalIncome = pgNumericToDecimal(income)
	result.TotalExpense = pgNumericToDecimal(expense)
	return &result, nil
}

// Create inserts a new category and returns the generated id.
func (r *CategoryRepository) Create(category *domain.Category) (int32, error) {
	ctx := context.Background()

	var id int32
	err := r.pool.QueryRow(ctx,
		`INSERT INTO categories (name, type, description, is_active)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		category.Name, category.Type, ptrText(category.Description), category.IsActive,
	).Scan(&id)
	if err != nil {
		return 0, mapError(err)
	}
	return id, nil
}

// Update replaces a category's mutable fields by id.
func (r *CategoryRepository) Update(id int32, category *domain.Category) error {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx,
		`UPDATE categories
		 SET name = $1, type = $2, description = $3, is_active = $4, updated_at = NOW()
		 WHERE id = $5`,
		category.Name, category.Type, ptrText(category.Description), category.IsActive, id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

// Delete removes a category by id. The transactions foreign key blocks
// deletion of a category that is still referenced.
func (r *CategoryRepository) Delete(id int32) error {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

func scanCategory(row pgx.Row) (*domain.Category, error) {
	var (
		category    domain.Category
		description pgtype.Text
	)
	err := row.Scan(
		&category.ID, &category.Name, &category.Type, &description,
		&category.IsActive, &category.CreatedAt, &category.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	category.Description = textPtr(description)
	return &category, nil
}
