package handler

import (
	"encoding/json"
	"time"

	"github.com/kasorg/kasor/kasor-backend/internal/domain"
)

// Response DTOs render money as decimal strings and calendar dates as
// YYYY-MM-DD, keeping amounts exact on the wire.

const dateLayout = "2006-01-02"

type userResponse struct {
	ID        int32       `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

func newUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type budgetResponse struct {
	ID            int32     `json:"id"`
	Name          string    `json:"name"`
	Description   *string   `json:"description,omitempty"`
	PlannedAmount string    `json:"planned_amount"`
	StartDate     string    `json:"start_date"`
	EndDate       string    `json:"end_date"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func newBudgetResponse(b *domain.Budget) budgetResponse {
	return budgetResponse{
		ID:            b.ID,
		Name:          b.Name,
		Description:   b.Description,
		PlannedAmount: b.PlannedAmount.String(),
		StartDate:     b.StartDate.Format(dateLayout),
		EndDate:       b.EndDate.Format(dateLayout),
		IsActive:      b.IsActive,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

type budgetSummaryResponse struct {
	budgetResponse
	TransactionCount int64  `json:"transaction_count"`
	TotalIncome      string `json:"total_income"`
	TotalExpense     string `json:"total_expense"`
	Balance          string `json:"balance"`
}

func newBudgetSummaryResponse(b *domain.BudgetWithSummary) budgetSummaryResponse {
	return budgetSummaryResponse{
		budgetResponse:   newBudgetResponse(&b.Budget),
		TransactionCount: b.TransactionCount,
		TotalIncome:      b.TotalIncome.String(),
		TotalExpense:     b.TotalExpense.String(),
		Balance:          b.Balance.String(),
	}
}

type categoryResponse struct {
	ID          int32               `json:"id"`
	Name        string              `json:"name"`
	Type        domain.CategoryType `json:"type"`
	Description *string             `json:"description,omitempty"`
	IsActive    bool                `json:"is_active"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

func newCategoryResponse(c *domain.Category) categoryResponse {
	return categoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Type:        c.Type,
		Description: c.Description,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

type categorySummaryResponse struct {
	categoryResponse
	TransactionCount int64  `json:"transaction_count"`
	TotalIncome      string `json:"total_income"`
	TotalExpense     string `json:"total_expense"`
}

func newCategorySummaryResponse(c *domain.CategoryWithSummary) categorySummaryResponse {
	return categorySummaryResponse{
		categoryResponse: newCategoryResponse(&c.Category),
		TransactionCount: c.TransactionCount,
		TotalIncome:      c.TotalIncome.String(),
		TotalExpense:     c.TotalExpense.String(),
	}
}

type transactionResponse struct {
	ID            int32                  `json:"id"`
	BudgetID      int32                  `json:"budget_id"`
	CategoryID    int32                  `json:"category_id"`
	Type          domain.TransactionType `json:"trx_type"`
	Amount        string                 `json:"amount"`
	Date          string                 `json:"trx_date"`
	Note          *string                `json:"note,omitempty"`
	PaymentMethod *domain.PaymentMethod  `json:"payment_method,omitempty"`
	Meta          json.RawMessage        `json:"meta,omitempty"`
	CreatedBy     int32                  `json:"created_by"`

	DeleteRequestedBy *int32     `json:"delete_requested_by,omitempty"`
	DeleteRequestedAt *time.Time `json:"delete_requested_at,omitempty"`
	DeleteRequestNote *string    `json:"delete_request_note,omitempty"`

	BudgetName    *string              `json:"budget_name,omitempty"`
	CategoryName  *string              `json:"category_name,omitempty"`
	CategoryType  *domain.CategoryType `json:"category_type,omitempty"`
	CreatedByName *string              `json:"created_by_name,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newTransactionResponse(t *domain.Transaction) transactionResponse {
	return transactionResponse{
		ID:                t.ID,
		BudgetID:          t.BudgetID,
		CategoryID:        t.CategoryID,
		Type:              t.Type,
		Amount:            t.Amount.String(),
		Date:              t.Date.Format(dateLayout),
		Note:              t.Note,
		PaymentMethod:     t.PaymentMethod,
		Meta:              t.Meta,
		CreatedBy:         t.CreatedBy,
		DeleteRequestedBy: t.DeleteRequestedBy,
		DeleteRequestedAt: t.DeleteRequestedAt,
		DeleteRequestNote: t.DeleteRequestNote,
		BudgetName:        t.BudgetName,
		CategoryName:      t.CategoryName,
		CategoryType:      t.CategoryType,
		CreatedByName:     t.CreatedByName,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
}

func newTransactionResponses(transactions []*domain.Transaction) []transactionResponse {
	out := make([]transactionResponse, 0, len(transactions))
	for _, t := range transactions {
		out = append(out, newTransactionResponse(t))
	}
	return out
}
