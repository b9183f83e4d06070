package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kasorg/kasor/kasor-backend/internal/domain"
)

// SummaryRepository implements domain.SummaryRepository using PostgreSQL.
// Every aggregate uses COALESCE so an empty group reports zero, never null.
type SummaryRepository struct {
	pool *pgxpool.Pool
}

// NewSummaryRepository creates a new SummaryRepository
func NewSummaryRepository(pool *pgxpool.Pool) *SummaryRepository {
	return &SummaryRepository{pool: pool}
}

// Overall returns workspace-wide income/expense totals.
func (r *SummaryRepository) Overall() (*domain.OverallTotals, error) {
	ctx := context.Background()

	var (
		totals  domain.OverallTotals
		income  pgtype.Numeric
		expense pgtype.Numeric
		balance pgtype.Numeric
	)
	err := r.pool.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(CASE WHEN trx_type = 'income' THEN amount ELSE 0 END), 0) AS total_income,
			COALESCE(SUM(CASE WHEN trx_type = 'expense' THEN amount ELSE 0 END), 0) AS total_expense,
			COALESCE(SUM(CASE WHEN trx_type = 'income' THEN amount ELSE 0 END), 0) -
			COALESCE(SUM(CASE WHEN trx_type = 'expense' THEN amount ELSE 0 END), 0) AS balance,
			COUNT(*) AS transaction_count
		FROM transactions`,
	).Scan(&income, &expense, &balance, &totals.TransactionCount)
	if err != nil {
		return nil, mapError(err)
	}

	totals.TotalIncome = pgNumericToDecimal(income)
	totals.TotalExpense = pgNumericToDecimal(expense)
	totals.Balance = pgNumericToDecimal(balance)
	return &totals, nil
}

// ByBudget returns income/expense aggregates grouped by budget.
func (r *SummaryRepository) ByBudget() ([]*domain.BudgetSummaryRow, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx, `
		SELECT
			b.id AS budget_id,
			b.name AS budget_name,
			b.planned_amount,
			b.start_date,
			b.end_date,
			COALESCE(SUM(CASE WHEN t.trx_type = 'income' THEN t.amount ELSE 0 END), 0) AS income,
			COALESCE(SUM(CASE WHEN t.trx_type = 'expense' THEN t.amount ELSE 0 END), 0) AS expense,
			COALESCE(SUM(CASE WHEN t.trx_type = 'income' THEN t.amount ELSE 0 END), 0) -
			COALESCE(SUM(CASE WHEN t.trx_type = 'expense' THEN t.amount ELSE 0 END), 0) AS balance,
			COUNT(t.id) AS transaction_count
		FROM budgets b
		LEFT JOIN transactions t ON b.id = t.budget_id
		GROUP BY b.id, b.name, b.planned_amount, b.start_date, b.end_date, b.created_at
		ORDER BY b.created_at DESC`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	summaries := []*domain.BudgetSummaryRow{}
	for rows.Next() {
		var (
			row           domain.BudgetSummaryRow
			plannedAmount pgtype.Numeric
			income        pgtype.Numeric
			expense       pgtype.Numeric
			balance       pgtype.Numeric
		)
		err := rows.Scan(
			&row.BudgetID, &row.BudgetName, &plannedAmount, &row.StartDate, &row.EndDate,
			&income, &expense, &balance, &row.TransactionCount,
		)
		if err != nil {
			return nil, mapError(err)
		}
		row.PlannedAmount = pgNumericToDecimal(plannedAmount)
		row.Income = pgNumericToDecimal(income)
		row.Expense = pgNumericToDecimal(expense)
		row.Balance = pgNumericToDecimal(balance)
		summaries = append(summaries, &row)
	}
	return summaries, rows.Err()
}

// ByCategory returns income/expense aggregates grouped by category.
func (r *SummaryRepository) ByCategory() ([]*domain.CategorySummaryRow, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx, `
		SELECT
			c.id AS category_id,
			c.name AS category_name,
			c.type AS category_type,
			COALESCE(SUM(CASE WHEN t.trx_type = 'income' THEN t.amount ELSE 0 END), 0) AS income,
			COALESCE(SUM(CASE WHEN t.trx_type = 'expense' THEN t.amount ELSE 0 END), 0) AS expense,
			COALESCE(SUM(CASE WHEN t.trx_type = 'income' THEN t.amount ELSE 0 END), 0) -
			COALESCE(SUM(CASE WHEN t.trx_type = 'expense' THEN t.amount ELSE 0 END), 0) AS balance,
			COUNT(t.id) AS transaction_count
		FROM categories c
		LEFT JOIN transactions t ON c.id = t.category_id
		GROUP BY c.id, c.name, c.type, c.created_at
		ORDER BY c.created_at DESC`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	summaries := []*domain.CategorySummaryRow{}
	for rows.Next() {
		var (
			row     domain.CategorySummaryRow
			income  pgtype.Numeric
			expense pgtype.Numeric
			balance pgtype.Numeric
		)
		err := rows.Scan(
			&row.CategoryID, &row.CategoryName, &row.CategoryType,
			&income, &expense, &balance, &row.TransactionCount,
		)
		if err != nil {
			return nil, mapError(err)
		}
		row.Income = pgNumericToDecimal(income)
		row.Expense = pgNumericToDecimal(expense)
		row.Balance = pgNumericToDecimal(balance)
		summaries = append(summaries, &row)
	}
	return summaries, rows.Err()
}

// ByDate returns income/expense aggregates grouped by calendar date within
// the inclusive [from, to] range.
func (r *SummaryRepository) ByDate(from, to time.Time) ([]*domain.DateSummaryRow, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx, `
		SELECT
			trx_date AS date,
			COALESCE(SUM(CASE WHEN trx_type = 'income' THEN amount ELSE 0 END), 0) AS income,
			COALESCE(SUM(CASE WHEN trx_type = 'expense' THEN amount ELSE 0 END), 0) AS expense,
			COUNT(*) AS transaction_count
		FROM transactions
		WHERE trx_date BETWEEN $1 AND $2
		GROUP BY trx_date
		ORDER BY trx_date DESC`, from, to)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	summaries := []*domain.DateSummaryRow{}
	for rows.Next() {
		var (
			row     domain.DateSummaryRow
			income  pgtype.Numeric
			expense pgtype.Numeric
		)
		if err := rows.Scan(&row.Date, &income, &expense, &row.TransactionCount); err != nil {
			return nil, mapError(err)
		}
		row.Income = pgNumericToDecimal(income)
		row.Expense = pgNumericToDecimal(expense)
		summaries = append(summaries, &row)
	}
	return summaries, rows.Err()
}
