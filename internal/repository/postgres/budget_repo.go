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

// BudgetRepository implements domain.BudgetRepository using PostgreSQL
type BudgetRepository struct {
	pool *pgxpool.Pool
}

// NewBudgetRepository creates a new BudgetRepository
func NewBudgetRepository(pool *pgxpool.Pool) *BudgetRepository {
	return &BudgetRepository{pool: pool}
}

const budgetColumns = `id, name, description, planned_amount, start_date, end_date, is_active, created_at, updated_at`

// List returns budgets, optionally filtered by active flag, newest first.
func (r *BudgetRepository) List(filters *domain.BudgetFilters) ([]*domain.Budget, error) {
	ctx := context.Background()

	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE 1=1`
	var args []any

	if filters != nil && filters.IsActive != nil {
		args = append(args, *filters.IsActive)
		query += fmt.Sprintf(" AND is_active = $%d", len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var budgets []*domain.Budget
	for rows.Next() {
		budget, err := scanBudget(rows)
		if err != nil {
			return nil, mapError(err)
		}
		budgets = append(budgets, budget)
	}
	return budgets, rows.Err()
}

// GetByID retrieves a budget by its ID.
func (r *BudgetRepository) GetByID(id int32) (*domain.Budget, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx, `SELECT `+budgetColumns+` FROM budgets WHERE id = $1`, id)
	budget, err := scanBudget(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBudgetNotFound
		}
		return nil, mapError(err)
	}
	return budget, nil
}

// GetWithSummary retrieves a budget joined with its transaction aggregates.
func (r *BudgetRepository) GetWithSummary(id int32) (*domain.BudgetWithSummary, error) {
	ctx := context.Background()

	var (
		result        domain.BudgetWithSummary
		description   pgtype.Text
		plannedAmount pgtype.Numeric
		income        pgtype.Numeric
		expense       pgtype.Numeric
		balance       pgtype.Numeric
	)
	err := r.pool.QueryRow(ctx, `
		SELECT
			b.id, b.name, b.description, b.planned_amount, b.start_date, b.end_date,
			b.is_active, b.created_at, b.updated_at,
			COUNT(t.id) AS transaction_count,
			COALESCE(SUM(CASE WHEN t.trx_type = 'income' THEN t.amount ELSE 0 END), 0) AS total_income,
			COALESCE(SUM(CASE WHEN t.trx_type = 'expense' THEN t.amount ELSE 0 END), 0) AS total_expense,
			COALESCE(SUM(CASE WHEN t.trx_type = 'income' THEN t.amount ELSE 0 END), 0) -
			COALESCE(SUM(CASE WHEN t.trx_type = 'expense' THEN t.amount ELSE 0 END), 0) AS balance
		FROM budgets b
		LEFT JOIN transactions t ON b.id = t.budget_id
		WHERE b.id = $1
		GROUP BY b.id`, id,
	).Scan(
		&result.ID, &result.Name, &description, &plannedAmount, &result.StartDate, &result.EndDate,
		&result.IsActive, &result.CreatedAt, &result.UpdatedAt,
		&result.TransactionCount, &income, &expense, &balance,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBudgetNotFound
		}
		return nil, mapError(err)
	}

	result.Description = textPtr(description)
	result.PlannedAmount = pgNumericToDecimal(plannedAmount)
	result.TotalIncome = pgNumericToDecimal(income)
	result.TotalExpense = pgNumericToDecimal(expense)
	result.Balance = pgNumericToDecimal(balance)
	return &result, nil
}

// Create inserts a new budget and returns the generated id.
func (r *BudgetRepository) Create(budget *domain.Budget) (int32, error) {
	ctx := context.Background()

	plannedAmount, err := decimalToPgNumeric(budget.PlannedAmount)
	if err != nil {
		return 0, fmt.Errorf("invalid planned amount: %w", err)
	}

	var id int32
	err = r.pool.QueryRow(ctx,
		`INSERT INTO budgets (name, description, planned_amount, start_date, end_date, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		budget.Name, ptrText(budget.Description), plannedAmount,
		budget.StartDate, budget.EndDate, budget.IsActive,
	).Scan(&id)
	if err != nil {
		return 0, mapError(err)
	}
	return id, nil
}

// Update replaces a budget's mutable fields by id.
func (r *BudgetRepository) Update(id int32, budget *domain.Budget) error {
	ctx := context.Background()

	plannedAmount, err := decimalToPgNumeric(budget.PlannedAmount)
	if err != nil {
		return fmt.Errorf("invalid planned amount: %w", err)
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE budgets
		 SET name = $1, description = $2, planned_amount = $3, start_date = $4,
		     end_date = $5, is_active = $6, updated_at = NOW()
		 WHERE id = $7`,
		budget.Name, ptrText(budget.Description), plannedAmount,
		budget.StartDate, budget.EndDate, budget.IsActive, id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBudgetNotFound
	}
	return nil
}

// Delete removes a budget by id. The transactions foreign key blocks
// deletion of a budget that is still referenced.
func (r *BudgetRepository) Delete(id int32) error {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx, `DELETE FROM budgets WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBudgetNotFound
	}
	return nil
}

func scanBudget(row pgx.Row) (*domain.Budget, error) {
	var (
		budget        domain.Budget
		description   pgtype.Text
		plannedAmount pgtype.Numeric
	)
	err := row.Scan(
		&budget.ID, &budget.Name, &description, &plannedAmount,
		&budget.StartDate, &budget.EndDate, &budget.IsActive,
		&budget.CreatedAt, &budget.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	budget.Description = textPtr(description)
	budget.PlannedAmount = pgNumericToDecimal(plannedAmount)
	return &budget, nil
}
