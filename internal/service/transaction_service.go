package service

import (
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/kasorg/kasor/kasor-backend/internal/auth"
	"github.com/kasorg/kasor/kasor-backend/internal/domain"
)

// TransactionService handles transaction-related business logic
type TransactionService struct {
	transactionRepo domain.TransactionRepository
	budgetRepo      domain.BudgetRepository
	categoryRepo    domain.CategoryRepository
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(transactionRepo domain.TransactionRepository, budgetRepo domain.BudgetRepository, categoryRepo domain.CategoryRepository) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		budgetRepo:      budgetRepo,
		categoryRepo:    categoryRepo,
	}
}

// TransactionInput holds the input for creating or replacing a transaction
type TransactionInput struct {
	BudgetID      int32
	CategoryID    int32
	Type          domain.TransactionType
	Amount        decimal.Decimal
	Date          time.Time
	Note          *string
	PaymentMethod *domain.PaymentMethod
	Meta          json.RawMessage
}

// checkReferences enforces the cross-entity rules shared by create and
// update: amount > 0, budget and category exist, and the category's type
// admits the transaction type.
//
// The lookups and the subsequent insert/update are not wrapped in one
// database transaction; a concurrent delete of the budget or category in
// this window is caught by the foreign key at write time and surfaces as
// domain.ErrForeignKey.
func (s *TransactionService) checkReferences(input TransactionInput) error {
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return domain.ErrInvalidAmount
	}

	if _, err := s.budgetRepo.GetByID(input.BudgetID); err != nil {
		return err
	}

	category, err := s.categoryRepo.GetByID(input.CategoryID)
	if err != nil {
		return err
	}
	if !category.Accepts(input.Type) {
		return domain.ErrCategoryTypeMismatch
	}
	return nil
}

// List returns transactions matching filters, paginated.
func (s *TransactionService) List(filters *domain.TransactionFilters) (*domain.PaginatedTransactions, error) {
	return s.transactionRepo.List(filters)
}

// Get returns a transaction by id with joined display names.
func (s *TransactionService) Get(id int32) (*domain.Transaction, error) {
	return s.transactionRepo.GetByID(id)
}

// Create validates and inserts a transaction authored by creator.
func (s *TransactionService) Create(creator auth.Identity, input TransactionInput) (*domain.Transaction, error) {
	if err := s.checkReferences(input); err != nil {
		return nil, err
	}

	id, err := s.transactionRepo.Create(&domain.Transaction{
		BudgetID:      input.BudgetID,
		CategoryID:    input.CategoryID,
		Type:          input.Type,
		Amount:        input.Amount,
		Date:          input.Date,
		Note:          input.Note,
		PaymentMethod: input.PaymentMethod,
		Meta:          input.Meta,
		CreatedBy:     creator.ID,
	})
	if err != nil {
		return nil, err
	}

	log.Info().Int32("transaction_id", id).Int32("user_id", creator.ID).Msg("Transaction created")
	return s.transactionRepo.GetByID(id)
}

// Update validates and replaces a transaction.
func (s *TransactionService) Update(id int32, input TransactionInput) (*domain.Transaction, error) {
	if _, err := s.transactionRepo.GetByID(id); err != nil {
		return nil, err
	}
	if err := s.checkReferences(input); err != nil {
		return nil, err
	}

	err := s.transactionRepo.Update(id, &domain.Transaction{
		BudgetID:      input.BudgetID,
		CategoryID:    input.CategoryID,
		Type:          input.Type,
		Amount:        input.Amount,
		Date:          input.Date,
		Note:          input.Note,
		PaymentMethod: input.PaymentMethod,
		Meta:          input.Meta,
	})
	if err != nil {
		return nil, err
	}
	return s.transactionRepo.GetByID(id)
}

// Delete removes a transaction.
func (s *TransactionService) Delete(id int32) error {
	if _, err := s.transactionRepo.GetByID(id); err != nil {
		return err
	}
	return s.transactionRepo.Delete(id)
}

// RequestDelete records a pending delete request by a non-admin caller.
// Admins are rejected (they hold direct delete authority), and a
// transaction carries at most one outstanding request: a second request
// while one is pending is rejected, not queued.
func (s *TransactionService) RequestDelete(requester auth.Identity, id int32, note *string) (*domain.Transaction, error) {
	transaction, err := s.transactionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if requester.Role == domain.RoleAdmin {
		return nil, domain.ErrAdminDeleteRequest
	}
	if transaction.DeleteRequestedAt != nil {
		return nil, domain.ErrDeleteAlreadyRequested
	}

	if err := s.transactionRepo.RequestDelete(id, requester.ID, note); err != nil {
		return nil, err
	}

	log.Info().Int32("transaction_id", id).Int32("user_id", requester.ID).Msg("Transaction delete requested")
	return s.transactionRepo.GetByID(id)
}
