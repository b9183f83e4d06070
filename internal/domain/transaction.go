package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodTransfer PaymentMethod = "transfer"
	PaymentMethodEwallet  PaymentMethod = "ewallet"
)

type Transaction struct {
	ID            int32           `json:"id"`
	BudgetID      int32           `json:"budget_id"`
	CategoryID    int32           `json:"category_id"`
	Type          TransactionType `json:"trx_type"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"trx_date"`
	Note          *string         `json:"note,omitempty"`
	PaymentMethod *PaymentMethod  `json:"payment_method,omitempty"`
	Meta          json.RawMessage `json:"meta,omitempty"`
	CreatedBy     int32           `json:"created_by"`

	// Soft delete request fields. A pending request records who asked
	// and when, without removing the row.
	DeleteRequestedBy *int32     `json:"delete_requested_by,omitempty"`
	DeleteRequestedAt *time.Time `json:"delete_requested_at,omitempty"`
	DeleteRequestNote *string    `json:"delete_request_note,omitempty"`

	// Display names joined from related rows on reads.
	BudgetName    *string       `json:"budget_name,omitempty"`
	CategoryName  *string       `json:"category_name,omitempty"`
	CategoryType  *CategoryType `json:"category_type,omitempty"`
	CreatedByName *string       `json:"created_by_name,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type TransactionFilters struct {
	BudgetID      *int32
	CategoryID    *int32
	Type          *TransactionType
	PaymentMethod *PaymentMethod
	DateFrom      *time.Time
	DateTo        *time.Time
	Page          int32
	Limit         int32
}

type PaginatedTransactions struct {
	Transactions []*Transaction `json:"transactions"`
	Pagination   Pagination     `json:"pagination"`
}

type TransactionRepository interface {
	List(filters *TransactionFilters) (*PaginatedTransactions, error)
	GetByID(id int32) (*Transaction, error)
	Create(transaction *Transaction) (int32, error)
	Update(id int32, transaction *Transaction) error
	Delete(id int32) error
	RequestDelete(id int32, userID int32, note *string) error
	Latest(limit int32) ([]*Transaction, error)
}
