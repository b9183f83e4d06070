package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kasorg/kasor/kasor-backend/internal/domain"
)

// BudgetService handles budget-related business logic
type BudgetService struct {
	budgetRepo domain.BudgetRepository
}

// NewBudgetService creates a new BudgetService
func NewBudgetService(budgetRepo domain.BudgetRepository) *BudgetService {
	return &BudgetService{budgetRepo: budgetRepo}
}

// BudgetInput holds the input for creating or replacing a budget
type BudgetInput struct {
	Name          string
	Description   *string
	PlannedAmount decimal.Decimal
	StartDate     time.Time
	EndDate       time.Time
	IsActive      bool
}

func (in *BudgetInput) check() error {
	if in.PlannedAmount.IsNegative() {
		return domain.ErrNegativePlannedAmount
	}
	if in.StartDate.After(in.EndDate) {
		return domain.ErrInvalidDateRange
	}
	return nil
}

// List returns budgets matching the filters.
func (s *BudgetService) List(filters *domain.BudgetFilters) ([]*domain.Budget, error) {
	return s.budgetRepo.List(filters)
}

// Get returns a budget together with its transaction aggregates.
func (s *BudgetService) Get(id int32) (*domain.BudgetWithSummary, error) {
	return s.budgetRepo.GetWithSummary(id)
}

// Create validates and inserts a budget, returning the stored row.
func (s *BudgetService) Create(input BudgetInput) (*domain.Budget, error) {
	if err := input.check(); err != nil {
		return nil, err
	}

	id, err := s.budgetRepo.Create(&domain.Budget{
		Name:          input.Name,
		Description:   input.Description,
		PlannedAmount: input.PlannedAmount,
		StartDate:     input.StartDate,
		EndDate:       input.EndDate,
		IsActive:      input.IsActive,
	})
	if err != nil {
		return nil, err
	}
	return s.budgetRepo.GetByID(id)
}

// Update validates and replaces a budget, returning the stored row.
func (s *BudgetService) Update(id int32, input BudgetInput) (*domain.Budget, error) {
	if _, err := s.budgetRepo.GetByID(id); err != nil {
		return nil, err
	}
	if err := input.check(); err != nil {
		return nil, err
	}

	err := s.budgetRepo.Update(id, &domain.Budget{
		Name:          input.Name,
		Description:   input.Description,
		PlannedAmount: input.PlannedAmount,
		StartDate:     input.StartDate,
		EndDate:       input.EndDate,
		IsActive:      input.IsActive,
	})
	if err != nil {
		return nil, err
	}
	return s.budgetRepo.GetByID(id)
}

// Delete removes a budget. The foreign key from transactions surfaces as
// domain.ErrForeignKey when the budget is still referenced.
func (s *BudgetService) Delete(id int32) error {
	if _, err := s.budgetRepo.GetByID(id); err != nil {
		return err
	}
	return s.budgetRepo.Delete(id)
}
