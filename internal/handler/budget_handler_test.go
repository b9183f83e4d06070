package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/kasorg/kasor/kasor-backend/internal/domain"
	"github.com/kasorg/kasor/kasor-backend/internal/middleware"
	"github.com/kasorg/kasor/kasor-backend/internal/service"
	"github.com/kasorg/kasor/kasor-backend/internal/testutil"
)

func newBudgetHandler() (*BudgetHandler, *testutil.MockBudgetRepository) {
	budgetRepo := testutil.NewMockBudgetRepository()
	return NewBudgetHandler(service.NewBudgetService(budgetRepo)), budgetRepo
}

func TestCreateBudgetEndpoint_Success(t *testing.T) {
	e := echo.New()
	handler, _ := newBudgetHandler()

	body := `{"name":"Q1 Operations","planned_amount":"5000","start_date":"2025-01-01","end_date":"2025-03-31"}`
	req := httptest.NewRequest(http.MethodPost, "/api/budgets", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := middleware.Validate(budgetSchema)(handler.Create)(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", rec.Code, rec.Body)
	}

	data := decodeEnvelope(t, rec).Data.(map[string]any)
	budget := data["budget"].(map[string]any)
	if budget["planned_amount"] != "5000" {
		t.Errorf("Expected planned_amount '5000', got %v", budget["planned_amount"])
	}
	if budget["is_active"] != true {
		t.Error("Expected is_active to default to true")
	}
}

func TestCreateBudgetEndpoint_InvalidDateRange(t *testing.T) {
	e := echo.New()
	handler, _ := newBudgetHandler()

	body := `{"name":"Backwards","planned_amount":100,"start_date":"2025-03-31","end_date":"2025-01-01"}`
	req := httptest.NewRequest(http.MethodPost, "/api/budgets", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := middleware.Validate(budgetSchema)(handler.Create)(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Message != "Start date must be before or equal to end date" {
		t.Errorf("Unexpected message: %s", env.Message)
	}
}

func TestGetBudgetEndpoint_WithSummary(t *testing.T) {
	e := echo.New()
	handler, budgetRepo := newBudgetHandler()

	id, err := budgetRepo.Create(&domain.Budget{Name: "Ops", PlannedAmount: decimal.NewFromInt(1000), IsActive: true})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	budgetRepo.Summaries[id] = &domain.BudgetWithSummary{
		Budget:           *budgetRepo.Budgets[id],
		TransactionCount: 4,
		TotalIncome:      decimal.NewFromInt(700),
		TotalExpense:     decimal.NewFromInt(300),
		Balance:          decimal.NewFromInt(400),
	}

	req := httptest.NewRequest(http.MethodGet, "/api/budgets/1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := middleware.Validate(idSchema)(handler.Get)(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	data := decodeEnvelope(t, rec).Data.(map[string]any)
	budget := data["budget"].(map[string]any)
	if budget["transaction_count"] != float64(4) {
		t.Errorf("Expected transaction_count 4, got %v", budget["transaction_count"])
	}
	if budget["balance"] != "400" {
		t.Errorf("Expected balance '400', got %v", budget["balance"])
	}
}

func TestListBudgetsEndpoint_InvalidActiveFilter(t *testing.T) {
	e := echo.New()
	handler, _ := newBudgetHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/budgets?is_active=maybe", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.List(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestDeleteBudgetEndpoint_NotFound(t *testing.T) {
	e := echo.New()
	handler, _ := newBudgetHandler()

	req := httptest.NewRequest(http.MethodDelete, "/api/budgets/9", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("9")

	if err := middleware.Validate(idSchema)(handler.Delete)(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}
