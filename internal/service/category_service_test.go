package service

import (
	"errors"
	"testing"

	"github.com/kasorg/kasor/kasor-backend/internal/domain"
	"github.com/kasorg/kasor/kasor-backend/internal/testutil"
)

func TestCreateCategory_Success(t *testing.T) {
	categoryService := NewCategoryService(testutil.NewMockCategoryRepository())

	category, err := categoryService.Create(CategoryInput{
		Name:     "Supplies",
		Type:     domain.CategoryTypeExpense,
		IsActive: true,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if category.Name != "Supplies" {
		t.Errorf("Expected name 'Supplies', got %s", category.Name)
	}
	if category.Type != domain.CategoryTypeExpense {
		t.Errorf("Expected type expense, got %s", category.Type)
	}
}

func TestListCategories_TypeFilter(t *testing.T) {
	categoryRepo := testutil.NewMockCategoryRepository()
	categoryService := NewCategoryService(categoryRepo)

	inputs := []CategoryInput{
		{Name: "Dues", Type: domain.CategoryTypeIncome, IsActive: true},
		{Name: "Supplies", Type: domain.CategoryTypeExpense, IsActive: true},
		{Name: "Misc", Type: domain.CategoryTypeBoth, IsActive: true},
	}
	for _, input := range inputs {
		if _, err := categoryService.Create(input); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	}

	income := domain.CategoryTypeIncome
	categories, err := categoryService.List(&domain.CategoryFilters{Type: &income})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(categories) != 1 {
		t.Fatalf("Expected 1 category, got %d", len(categories))
	}
	if categories[0].Name != "Dues" {
		t.Errorf("Expected 'Dues', got %s", categories[0].Name)
	}
}

func TestUpdateCategory_NotFound(t *testing.T) {
	categoryService := NewCategoryService(testutil.NewMockCategoryRepository())

	_, err := categoryService.Update(5, CategoryInput{Name: "X", Type: domain.CategoryTypeBoth})
	if !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Errorf("Expected ErrCategoryNotFound, got %v", err)
	}
}

func TestDeleteCategory_NotFound(t *testing.T) {
	categoryService := NewCategoryService(testutil.NewMockCategoryRepository())

	if err := categoryService.Delete(5); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Errorf("Expected ErrCategoryNotFound, got %v", err)
	}
}
