package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
	CategoryTypeBoth    CategoryType = "both"
)

type Category struct {
	ID          int32        `json:"id"`
	Name        string       `json:"name"`
	Type        CategoryType `json:"type"`
	Description *string      `json:"description,omitempty"`
	IsActive    bool         `json:"is_active"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Accepts reports whether a transaction of type t may use this category.
// A "both" category accepts either transaction type.
func (c *Category) Accepts(t TransactionType) bool {
	switch c.Type {
	case CategoryTypeBoth:
		return true
	case CategoryTypeIncome:
		return t == TransactionTypeIncome
	case CategoryTypeExpense:
		return t == TransactionTypeExpense
	}
	return false
}

type CategoryWithSummary struct {
	Category
	TransactionCount int64           `json:"transaction_count"`
	TotalIncome      decimal.Decimal `json:"total_income"`
	TotalExpense     decimal.Decimal `json:"total_expense"`
}

type CategoryFilters struct {
	Type     *CategoryType
	IsActive *bool
}

type CategoryRepository interface {
	List(filters *CategoryFilters) ([]*Category, error)
	GetByID(id int32) (*Category, error)
	GetWithSummary(id int32) (*CategoryWithSummary, error)
	Create(category *Category) (int32, error)
	Update(id int32, category *Category) error
	Delete(id int32) error
}
