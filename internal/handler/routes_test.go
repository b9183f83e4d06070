package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kasorg/kasor/kasor-backend/internal/auth"
	"github.com/kasorg/kasor/kasor-backend/internal/middleware"
	"github.com/kasorg/kasor/kasor-backend/internal/service"
	"github.com/kasorg/kasor/kasor-backend/internal/testutil"
)

func registerAllRoutes(t *testing.T) *echo.Echo {
	t.Helper()
	e := echo.New()

	userRepo := testutil.NewMockUserRepository()
	budgetRepo := testutil.NewMockBudgetRepository()
	catRepo := testutil.NewMockCategoryRepository()
	trxRepo := testutil.NewMockTransactionRepository()
	summaryRepo := testutil.NewMockSummaryRepository()

	tokens := auth.NewTokenManager("test-secret", time.Hour)
	rl := middleware.NewRateLimiterWithConfig(100, 10)
	t.Cleanup(rl.Stop)

	trxService := service.NewTransactionService(trxRepo, budgetRepo, catRepo)
	handlers := Handlers{
		Auth:        NewAuthHandler(service.NewAuthService(userRepo, tokens)),
		Budget:      NewBudgetHandler(service.NewBudgetService(budgetRepo)),
		Category:    NewCategoryHandler(service.NewCategoryService(catRepo)),
		Transaction: NewTransactionHandler(trxService),
		Summary:     NewSummaryHandler(service.NewSummaryService(summaryRepo, trxRepo)),
	}

	RegisterRoutes(e, handlers, tokens, rl)
	return e
}

// TestRegisterRoutes_Surface pins the public method/path table so a route
// cannot silently move or disappear.
func TestRegisterRoutes_Surface(t *testing.T) {
	e := registerAllRoutes(t)

	registered := make(map[string]bool)
	for _, route := range e.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	expected := []string{
		http.MethodPost + " /api/auth/register",
		http.MethodPost + " /api/auth/login",
		http.MethodGet + " /api/auth/me",

		http.MethodGet + " /api/budgets",
		http.MethodGet + " /api/budgets/:id",
		http.MethodPost + " /api/budgets",
		http.MethodPut + " /api/budgets/:id",
		http.MethodDelete + " /api/budgets/:id",

		http.MethodGet + " /api/categories",
		http.MethodGet + " /api/categories/:id",
		http.MethodPost + " /api/categories",
		http.MethodPut + " /api/categories/:id",
		http.MethodDelete + " /api/categories/:id",

		http.MethodGet + " /api/transactions",
		http.MethodGet + " /api/transactions/:id",
		http.MethodPost + " /api/transactions",
		http.MethodPut + " /api/transactions/:id",
		http.MethodDelete + " /api/transactions/:id",
		http.MethodPost + " /api/transactions/:id/request-delete",

		http.MethodGet + " /api/summary",
		http.MethodGet + " /api/summary/by-budget",
		http.MethodGet + " /api/summary/by-category",
		http.MethodGet + " /api/summary/by-date",
	}

	for _, want := range expected {
		if !registered[want] {
			t.Errorf("Expected route %q to be registered", want)
		}
	}
}

func TestRegisterRoutes_NoStaleSummaryPaths(t *testing.T) {
	e := registerAllRoutes(t)

	for _, route := range e.Routes() {
		if route.Path == "/api/summary/budgets" || route.Path == "/api/summary/categories" {
			t.Errorf("Unexpected route %s %s", route.Method, route.Path)
		}
	}
}
