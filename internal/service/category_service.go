package service

import (
	"github.com/kasorg/kasor/kasor-backend/internal/domain"
)

// CategoryService handles category-related business logic
type CategoryService struct {
	categoryRepo domain.CategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo domain.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// CategoryInput holds the input for creating or replacing a category
type CategoryInput struct {
	Name        string
	Type        domain.CategoryType
	Description *string
	IsActive    bool
}

// List returns categories matching the filters.
func (s *CategoryService) List(filters *domain.CategoryFilters) ([]*domain.Category, error) {
	return s.categoryRepo.List(filters)
}

// Get returns a category together with its transaction aggregates.
func (s *CategoryService) Get(id int32) (*domain.CategoryWithSummary, error) {
	return s.categoryRepo.GetWithSummary(id)
}

// Create inserts a category, returning the stored row.
func (s *CategoryService) Create(input CategoryInput) (*domain.Category, error) {
	id, err := s.categoryRepo.Create(&domain.Category{
		Name:        input.Name,
		Type:        input.Type,
		Description: input.Description,
		IsActive:    input.IsActive,
	})
	if err != nil {
		return nil, err
	}
	return s.categoryRepo.GetByID(id)
}

// Update replaces a category, returning the stored row.
func (s *CategoryService) Update(id int32, input CategoryInput) (*domain.Category, error) {
	if _, err := s.categoryRepo.GetByID(id); err != nil {
		return nil, err
	}

	err := s.categoryRepo.Update(id, &domain.Category{
		Name:        input.Name,
		Type:        input.Type,
		Description: input.Description,
		IsActive:    input.IsActive,
	})
	if err != nil {
		return nil, err
	}
	return s.categoryRepo.GetByID(id)
}

// Delete removes a category. The foreign key from transactions surfaces as
// domain.ErrForeignKey when the category is still referenced.
func (s *CategoryService) Delete(id int32) error {
	if _, err := s.categoryRepo.GetByID(id); err != nil {
		return err
	}
	return s.categoryRepo.Delete(id)
}
