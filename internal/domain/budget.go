package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Budget struct {
	ID            int32           `json:"id"`
	Name          string          `json:"name"`
	Description   *string         `json:"description,omitempty"`
	PlannedAmount decimal.Decimal `json:"planned_amount"`
	StartDate     time.Time       `json:"start_date"`
	EndDate       time.Time       `json:"end_date"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// BudgetWithSummary is a budget joined with its transaction aggregates.
// Sums are null-safe: a budget with no transactions reports zeroes.
type BudgetWithSummary struct {
	Budget
	TransactionCount int64           `json:"transaction_count"`
	TotalIncome      decimal.Decimal `json:"total_income"`
	TotalExpense     decimal.Decimal `json:"total_expense"`
	Balance          decimal.Decimal `json:"balance"`
}

type BudgetFilters struct {
	IsActive *bool
}

type BudgetRepository interface {
	List(filters *BudgetFilters) ([]*Budget, error)
	GetByID(id int32) (*Budget, error)
	GetWithSummary(id int32) (*BudgetWithSummary, error)
	Create(budget *Budget) (int32, error)
	Update(id int32, budget *Budget) error
	Delete(id int32) error
}
