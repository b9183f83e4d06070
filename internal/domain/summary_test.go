package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestBudgetSummaryRow_Utilization(t *testing.T) {
	row := &BudgetSummaryRow{
		PlannedAmount: decimal.NewFromInt(3000),
		Expense:       decimal.NewFromInt(1000),
	}

	got := row.Utilization()
	if got.String() != "33.33" {
		t.Errorf("Expected utilization 33.33, got %s", got)
	}
}

func TestBudgetSummaryRow_UtilizationOverspend(t *testing.T) {
	row := &BudgetSummaryRow{
		PlannedAmount: decimal.NewFromInt(100),
		Expense:       decimal.NewFromInt(150),
	}

	got := row.Utilization()
	if got.String() != "150" {
		t.Errorf("Expected utilization 150, got %s", got)
	}
}

func TestBudgetSummaryRow_UtilizationZeroPlanned(t *testing.T) {
	row := &BudgetSummaryRow{
		PlannedAmount: decimal.Zero,
		Expense:       decimal.NewFromInt(50),
	}

	if !row.Utilization().IsZero() {
		t.Errorf("Expected zero utilization for zero planned amount, got %s", row.Utilization())
	}
}
