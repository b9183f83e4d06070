package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/kasorg/kasor/kasor-backend/internal/domain"
	"github.com/kasorg/kasor/kasor-backend/internal/middleware"
	"github.com/kasorg/kasor/kasor-backend/internal/service"
	"github.com/kasorg/kasor/kasor-backend/internal/validation"
)

// CategoryHandler serves the category CRUD endpoints.
type CategoryHandler struct {
	categoryService *service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// List handles GET /api/categories
func (h *CategoryHandler) List(c echo.Context) error {
	filters := &domain.CategoryFilters{}
	if raw := c.QueryParam("type"); raw != "" {
		t := domain.CategoryType(raw)
		if t != domain.CategoryTypeIncome && t != domain.CategoryTypeExpense && t != domain.CategoryTypeBoth {
			return BadRequest(c, "type must be one of: income, expense, both")
		}
		filters.Type = &t
	}
	if raw := c.QueryParam("is_active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			return BadRequest(c, "is_active must be a boolean")
		}
		filters.IsActive = &active
	}

	categories, err := h.categoryService.List(filters)
	if err != nil {
		return DomainError(c, err)
	}

	out := make([]categoryResponse, 0, len(categories))
	for _, cat := range categories {
		out = append(out, newCategoryResponse(cat))
	}
	return OK(c, "Categories retrieved successfully", echo.Map{"categories": out})
}

// Get handles GET /api/categories/:id
func (h *CategoryHandler) Get(c echo.Context) error {
	input := middleware.BoundInput(c)

	category, err := h.categoryService.Get(input.Int32("id"))
	if err != nil {
		return DomainError(c, err)
	}

	return OK(c, "Category retrieved successfully", echo.Map{"category": newCategorySummaryResponse(category)})
}

// Create handles POST /api/categories
func (h *CategoryHandler) Create(c echo.Context) error {
	input := middleware.BoundInput(c)

	category, err := h.categoryService.Create(categoryInput(input))
	if err != nil {
		return DomainError(c, err)
	}

	return Created(c, "Category created successfully", echo.Map{"category": newCategoryResponse(category)})
}

// Update handles PUT /api/categories/:id
func (h *CategoryHandler) Update(c echo.Context) error {
	input := middleware.BoundInput(c)

	category, err := h.categoryService.Update(input.Int32("id"), categoryInput(input))
	if err != nil {
		return DomainError(c, err)
	}

	return OK(c, "Category updated successfully", echo.Map{"category": newCategoryResponse(category)})
}

// Delete handles DELETE /api/categories/:id
func (h *CategoryHandler) Delete(c echo.Context) error {
	input := middleware.BoundInput(c)

	if err := h.categoryService.Delete(input.Int32("id")); err != nil {
		return DomainError(c, err)
	}

	return OK(c, "Category deleted successfully", nil)
}

func categoryInput(input validation.Input) service.CategoryInput {
	active := true
	if input.Has("is_active") {
		active = input.Bool("is_active")
	}
	return service.CategoryInput{
		Name:        input.String("name"),
		Type:        domain.CategoryType(input.String("type")),
		Description: input.StringPtr("description"),
		IsActive:    active,
	}
}
