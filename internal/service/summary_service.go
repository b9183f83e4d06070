package service

import (
	"time"

	"github.com/kasorg/kasor/kasor-backend/internal/domain"
)

// latestTransactionCount is how many recent transactions the overall
// summary embeds.
const latestTransactionCount = 10

// SummaryService assembles the aggregate reports
type SummaryService struct {
	summaryRepo     domain.SummaryRepository
	transactionRepo domain.TransactionRepository
}

// NewSummaryService creates a new SummaryService
func NewSummaryService(summaryRepo domain.SummaryRepository, transactionRepo domain.TransactionRepository) *SummaryService {
	return &SummaryService{
		summaryRepo:     summaryRepo,
		transactionRepo: transactionRepo,
	}
}

// OverallSummary is the workspace-wide report with the latest transactions.
type OverallSummary struct {
	Totals           *domain.OverallTotals
	LastTransactions []*domain.Transaction
}

// Overall returns totals plus the most recent transactions.
func (s *SummaryService) Overall() (*OverallSummary, error) {
	totals, err := s.summaryRepo.Overall()
	if err != nil {
		return nil, err
	}

	latest, err := s.transactionRepo.Latest(latestTransactionCount)
	if err != nil {
		return nil, err
	}

	return &OverallSummary{
		Totals:           totals,
		LastTransactions: latest,
	}, nil
}

// ByBudget returns per-budget aggregates.
func (s *SummaryService) ByBudget() ([]*domain.BudgetSummaryRow, error) {
	return s.summaryRepo.ByBudget()
}

// ByCategory returns per-category aggregates.
func (s *SummaryService) ByCategory() ([]*domain.CategorySummaryRow, error) {
	return s.summaryRepo.ByCategory()
}

// ByDate returns per-date aggregates within the inclusive range.
func (s *SummaryService) ByDate(from, to time.Time) ([]*domain.DateSummaryRow, error) {
	return s.summaryRepo.ByDate(from, to)
}
