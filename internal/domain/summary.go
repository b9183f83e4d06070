package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OverallTotals holds the workspace-wide income/expense aggregates.
// All sums are null-safe: an empty transactions table yields zeroes.
type OverallTotals struct {
	TotalIncome      decimal.Decimal
	TotalExpense     decimal.Decimal
	Balance          decimal.Decimal
	TransactionCount int64
}

// BudgetSummaryRow is one row of the per-budget aggregate report.
type BudgetSummaryRow struct {
	BudgetID         int32
	BudgetName       string
	PlannedAmount    decimal.Decimal
	StartDate        time.Time
	EndDate          time.Time
	Income           decimal.Decimal
	Expense          decimal.Decimal
	Balance          decimal.Decimal
	TransactionCount int64
}

// Utilization returns expense as a percentage of the planned amount,
// rounded to two places. Zero planned amount yields zero.
func (r *BudgetSummaryRow) Utilization() decimal.Decimal {
	if r.PlannedAmount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return r.Expense.Div(r.PlannedAmount).Mul(decimal.NewFromInt(100)).Round(2)
}

// CategorySummaryRow is one row of the per-category aggregate report.
type CategorySummaryRow struct {
	CategoryID       int32
	CategoryName     string
	CategoryType     CategoryType
	Income           decimal.Decimal
	Expense          decimal.Decimal
	Balance          decimal.Decimal
	TransactionCount int64
}

// DateSummaryRow is one row of the per-calendar-date aggregate report.
type DateSummaryRow struct {
	Date             time.Time
	Income           decimal.Decimal
	Expense          decimal.Decimal
	TransactionCount int64
}

type SummaryRepository interface {
	Overall() (*OverallTotals, error)
	ByBudget() ([]*BudgetSummaryRow, error)
	ByCategory() ([]*CategorySummaryRow, error)
	ByDate(from, to time.Time) ([]*DateSummaryRow, error)
}
