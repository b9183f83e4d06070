package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/kasorg/kasor/kasor-backend/internal/domain"
	"github.com/kasorg/kasor/kasor-backend/internal/middleware"
	"github.com/kasorg/kasor/kasor-backend/internal/service"
)

// SummaryHandler serves the aggregate report endpoints.
type SummaryHandler struct {
	summaryService *service.SummaryService
}

// NewSummaryHandler creates a new SummaryHandler
func NewSummaryHandler(summaryService *service.SummaryService) *SummaryHandler {
	return &SummaryHandler{summaryService: summaryService}
}

type overallSummaryResponse struct {
	TotalIncome      string                `json:"totalIncome"`
	TotalExpense     string                `json:"totalExpense"`
	Balance          string                `json:"balance"`
	TransactionCount int64                 `json:"transactionCount"`
	LastTransactions []transactionResponse `json:"lastTransactions"`
}

// Overall handles GET /api/summary
func (h *SummaryHandler) Overall(c echo.Context) error {
	summary, err := h.summaryService.Overall()
	if err != nil {
		return DomainError(c, err)
	}

	return OK(c, "Summary retrieved successfully", overallSummaryResponse{
		TotalIncome:      summary.Totals.TotalIncome.String(),
		TotalExpense:     summary.Totals.TotalExpense.String(),
		Balance:          summary.Totals.Balance.String(),
		TransactionCount: summary.Totals.TransactionCount,
		LastTransactions: newTransactionResponses(summary.LastTransactions),
	})
}

type budgetSummaryRowResponse struct {
	BudgetID              int32  `json:"budget_id"`
	BudgetName            string `json:"budget_name"`
	PlannedAmount         string `json:"planned_amount"`
	StartDate             string `json:"start_date"`
	EndDate               string `json:"end_date"`
	Income                string `json:"income"`
	Expense               string `json:"expense"`
	Balance               string `json:"balance"`
	TransactionCount      int64  `json:"transaction_count"`
	UtilizationPercentage string `json:"utilization_percentage"`
}

// ByBudget handles GET /api/summary/by-budget
func (h *SummaryHandler) ByBudget(c echo.Context) error {
	rows, err := h.summaryService.ByBudget()
	if err != nil {
		return DomainError(c, err)
	}

	out := make([]budgetSummaryRowResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, budgetSummaryRowResponse{
			BudgetID:              row.BudgetID,
			BudgetName:            row.BudgetName,
			PlannedAmount:         row.PlannedAmount.String(),
			StartDate:             row.StartDate.Format(dateLayout),
			EndDate:               row.EndDate.Format(dateLayout),
			Income:                row.Income.String(),
			Expense:               row.Expense.String(),
			Balance:               row.Balance.String(),
			TransactionCount:      row.TransactionCount,
			UtilizationPercentage: row.Utilization().String(),
		})
	}
	return OK(c, "Budget summary retrieved successfully", echo.Map{"budgets": out})
}

type categorySummaryRowResponse struct {
	CategoryID       int32               `json:"category_id"`
	CategoryName     string              `json:"category_name"`
	CategoryType     domain.CategoryType `json:"category_type"`
	Income           string              `json:"income"`
	Expense          string              `json:"expense"`
	Balance          string              `json:"balance"`
	TransactionCount int64               `json:"transaction_count"`
}

// ByCategory handles GET /api/summary/by-category
func (h *SummaryHandler) ByCategory(c echo.Context) error {
	rows, err := h.summaryService.ByCategory()
	if err != nil {
		return DomainError(c, err)
	}

	out := make([]categorySummaryRowResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, categorySummaryRowResponse{
			CategoryID:       row.CategoryID,
			CategoryName:     row.CategoryName,
			CategoryType:     row.CategoryType,
			Income:           row.Income.String(),
			Expense:          row.Expense.String(),
			Balance:          row.Balance.String(),
			TransactionCount: row.TransactionCount,
		})
	}
	return OK(c, "Category summary retrieved successfully", echo.Map{"categories": out})
}

type dateSummaryRowResponse struct {
	Date             string `json:"date"`
	Income           string `json:"income"`
	Expense          string `json:"expense"`
	Balance          string `json:"balance"`
	TransactionCount int64  `json:"transaction_count"`
}

// ByDate handles GET /api/summary/by-date
func (h *SummaryHandler) ByDate(c echo.Context) error {
	input := middleware.BoundInput(c)
	from := input.Date("date_from")
	to := input.Date("date_to")
	if from.After(to) {
		return BadRequest(c, "date_from must be before or equal to date_to")
	}

	rows, err := h.summaryService.ByDate(from, to)
	if err != nil {
		return DomainError(c, err)
	}

	out := make([]dateSummaryRowResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, dateSummaryRowResponse{
			Date:             row.Date.Format(dateLayout),
			Income:           row.Income.String(),
			Expense:          row.Expense.String(),
			Balance:          row.Income.Sub(row.Expense).String(),
			TransactionCount: row.TransactionCount,
		})
	}
	return OK(c, "Date summary retrieved successfully", echo.Map{
		"date_from": from.Format(dateLayout),
		"date_to":   to.Format(dateLayout),
		"summary":   out,
	})
}
