package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/kasorg/kasor/kasor-backend/internal/domain"
	"github.com/kasorg/kasor/kasor-backend/internal/middleware"
	"github.com/kasorg/kasor/kasor-backend/internal/service"
	"github.com/kasorg/kasor/kasor-backend/internal/validation"
)

// BudgetHandler serves the budget CRUD endpoints.
type BudgetHandler struct {
	budgetService *service.BudgetService
}

// NewBudgetHandler creates a new BudgetHandler
func NewBudgetHandler(budgetService *service.BudgetService) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// List handles GET /api/budgets
func (h *BudgetHandler) List(c echo.Context) error {
	filters := &domain.BudgetFilters{}
	if raw := c.QueryParam("is_active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			return BadRequest(c, "is_active must be a boolean")
		}
		filters.IsActive = &active
	}

	budgets, err := h.budgetService.List(filters)
	if err != nil {
		return DomainError(c, err)
	}

	out := make([]budgetResponse, 0, len(budgets))
	for _, b := range budgets {
		out = append(out, newBudgetResponse(b))
	}
	return OK(c, "Budgets retrieved successfully", echo.Map{"budgets": out})
}

// Get handles GET /api/budgets/:id
func (h *BudgetHandler) Get(c echo.Context) error {
	input := middleware.BoundInput(c)

	budget, err := h.budgetService.Get(input.Int32("id"))
	if err != nil {
		return DomainError(c, err)
	}

	return OK(c, "Budget retrieved successfully", echo.Map{"budget": newBudgetSummaryResponse(budget)})
}

// Create handles POST /api/budgets
func (h *BudgetHandler) Create(c echo.Context) error {
	input := middleware.BoundInput(c)

	budget, err := h.budgetService.Create(budgetInput(input))
	if err != nil {
		return DomainError(c, err)
	}

	return Created(c, "Budget created successfully", echo.Map{"budget": newBudgetResponse(budget)})
}

// Update handles PUT /api/budgets/:id
func (h *BudgetHandler) Update(c echo.Context) error {
	input := middleware.BoundInput(c)

	budget, err := h.budgetService.Update(input.Int32("id"), budgetInput(input))
	if err != nil {
		return DomainError(c, err)
	}

	return OK(c, "Budget updated successfully", echo.Map{"budget": newBudgetResponse(budget)})
}

// Delete handles DELETE /api/budgets/:id
func (h *BudgetHandler) Delete(c echo.Context) error {
	input := middleware.BoundInput(c)

	if err := h.budgetService.Delete(input.Int32("id")); err != nil {
		return DomainError(c, err)
	}

	return OK(c, "Budget deleted successfully", nil)
}

// budgetInput maps validated request input to the service input. A
// missing is_active defaults to true.
func budgetInput(input validation.Input) service.BudgetInput {
	active := true
	if input.Has("is_active") {
		active = input.Bool("is_active")
	}
	return service.BudgetInput{
		Name:          input.String("name"),
		Description:   input.StringPtr("description"),
		PlannedAmount: decimal.NewFromFloat(input.Number("planned_amount")),
		StartDate:     input.Date("start_date"),
		EndDate:       input.Date("end_date"),
		IsActive:      active,
	}
}
