package handler

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/kasorg/kasor/kasor-backend/internal/domain"
	"github.com/kasorg/kasor/kasor-backend/internal/middleware"
	"github.com/kasorg/kasor/kasor-backend/internal/service"
	"github.com/kasorg/kasor/kasor-backend/internal/validation"
)

// TransactionHandler serves the transaction endpoints, including the
// member-facing delete request flow.
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// List handles GET /api/transactions
func (h *TransactionHandler) List(c echo.Context) error {
	filters, err := transactionFilters(c)
	if err != nil {
		return BadRequest(c, err.Error())
	}

	page, err := h.transactionService.List(filters)
	if err != nil {
		return DomainError(c, err)
	}

	return OK(c, "Transactions retrieved successfully", echo.Map{
		"transactions": newTransactionResponses(page.Transactions),
		"pagination":   page.Pagination,
	})
}

// Get handles GET /api/transactions/:id
func (h *TransactionHandler) Get(c echo.Context) error {
	input := middleware.BoundInput(c)

	transaction, err := h.transactionService.Get(input.Int32("id"))
	if err != nil {
		return DomainError(c, err)
	}

	return OK(c, "Transaction retrieved successfully", echo.Map{"transaction": newTransactionResponse(transaction)})
}

// Create handles POST /api/transactions
func (h *TransactionHandler) Create(c echo.Context) error {
	identity, ok := middleware.CurrentUser(c)
	if !ok {
		return Unauthorized(c, "User not authenticated")
	}
	input := middleware.BoundInput(c)

	transaction, err := h.transactionService.Create(identity, transactionInput(input))
	if err != nil {
		return DomainError(c, err)
	}

	return Created(c, "Transaction created successfully", echo.Map{"transaction": newTransactionResponse(transaction)})
}

// Update handles PUT /api/transactions/:id
func (h *TransactionHandler) Update(c echo.Context) error {
	input := middleware.BoundInput(c)

	transaction, err := h.transactionService.Update(input.Int32("id"), transactionInput(input))
	if err != nil {
		return DomainError(c, err)
	}

	return OK(c, "Transaction updated successfully", echo.Map{"transaction": newTransactionResponse(transaction)})
}

// Delete handles DELETE /api/transactions/:id
func (h *TransactionHandler) Delete(c echo.Context) error {
	input := middleware.BoundInput(c)

	if err := h.transactionService.Delete(input.Int32("id")); err != nil {
		return DomainError(c, err)
	}

	return OK(c, "Transaction deleted successfully", nil)
}

// RequestDelete handles POST /api/transactions/:id/request-delete
func (h *TransactionHandler) RequestDelete(c echo.Context) error {
	identity, ok := middleware.CurrentUser(c)
	if !ok {
		return Unauthorized(c, "User not authenticated")
	}
	input := middleware.BoundInput(c)

	transaction, err := h.transactionService.RequestDelete(identity, input.Int32("id"), input.StringPtr("note"))
	if err != nil {
		return DomainError(c, err)
	}

	return Accepted(c, "Delete request submitted", echo.Map{"transaction": newTransactionResponse(transaction)})
}

func transactionInput(input validation.Input) service.TransactionInput {
	var paymentMethod *domain.PaymentMethod
	if input.Has("payment_method") {
		pm := domain.PaymentMethod(input.String("payment_method"))
		paymentMethod = &pm
	}
	return service.TransactionInput{
		BudgetID:      input.Int32("budget_id"),
		CategoryID:    input.Int32("category_id"),
		Type:          domain.TransactionType(input.String("trx_type")),
		Amount:        decimal.NewFromFloat(input.Number("amount")),
		Date:          input.Date("trx_date"),
		Note:          input.StringPtr("note"),
		PaymentMethod: paymentMethod,
		Meta:          input.JSON("meta"),
	}
}

// transactionFilters parses the list query parameters. Invalid values
// are rejected rather than silently ignored.
func transactionFilters(c echo.Context) (*domain.TransactionFilters, error) {
	filters := &domain.TransactionFilters{}

	if raw := c.QueryParam("budget_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return nil, errBadFilter("budget_id must be a number")
		}
		v := int32(id)
		filters.BudgetID = &v
	}
	if raw := c.QueryParam("category_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return nil, errBadFilter("category_id must be a number")
		}
		v := int32(id)
		filters.CategoryID = &v
	}
	if raw := c.QueryParam("trx_type"); raw != "" {
		t := domain.TransactionType(raw)
		if t != domain.TransactionTypeIncome && t != domain.TransactionTypeExpense {
			return nil, errBadFilter("trx_type must be one of: income, expense")
		}
		filters.Type = &t
	}
	if raw := c.QueryParam("payment_method"); raw != "" {
		pm := domain.PaymentMethod(raw)
		if pm != domain.PaymentMethodCash && pm != domain.PaymentMethodTransfer && pm != domain.PaymentMethodEwallet {
			return nil, errBadFilter("payment_method must be one of: cash, transfer, ewallet")
		}
		filters.PaymentMethod = &pm
	}
	if raw := c.QueryParam("date_from"); raw != "" {
		from, err := time.Parse(dateLayout, raw)
		if err != nil {
			return nil, errBadFilter("date_from must be a valid date (YYYY-MM-DD)")
		}
		filters.DateFrom = &from
	}
	if raw := c.QueryParam("date_to"); raw != "" {
		to, err := time.Parse(dateLayout, raw)
		if err != nil {
			return nil, errBadFilter("date_to must be a valid date (YYYY-MM-DD)")
		}
		filters.DateTo = &to
	}
	if raw := c.QueryParam("page"); raw != "" {
		page, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return nil, errBadFilter("page must be a number")
		}
		filters.Page = int32(page)
	}
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return nil, errBadFilter("limit must be a number")
		}
		filters.Limit = int32(limit)
	}

	return filters, nil
}

type errBadFilter string

func (e errBadFilter) Error() string { return string(e) }
