package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/kasorg/kasor/kasor-backend/internal/auth"
	"github.com/kasorg/kasor/kasor-backend/internal/domain"
	"github.com/kasorg/kasor/kasor-backend/internal/middleware"
	"github.com/kasorg/kasor/kasor-backend/internal/validation"
)

// Request schemas. Declared once per route shape; the validation
// middleware merges body, query and path params before applying them.
var (
	registerSchema = validation.Schema{
		"name":     {Required: true, Type: validation.String, MinLen: 2, MaxLen: 100},
		"email":    {Required: true, Type: validation.String, Email: true},
		"password": {Required: true, Type: validation.String, MinLen: 6, MaxLen: 72},
		"role":     {Type: validation.String, Enum: []any{"admin", "member"}},
	}

	loginSchema = validation.Schema{
		"email":    {Required: true, Type: validation.String, Email: true},
		"password": {Required: true, Type: validation.String},
	}

	idSchema = validation.Schema{
		"id": {Required: true, Type: validation.Number, Min: validation.Float(1)},
	}

	budgetSchema = validation.Schema{
		"name":           {Required: true, Type: validation.String, MinLen: 2, MaxLen: 100},
		"description":    {Type: validation.String, MaxLen: 500},
		"planned_amount": {Required: true, Type: validation.Number, Min: validation.Float(0)},
		"start_date":     {Required: true, Type: validation.String, Date: true},
		"end_date":       {Required: true, Type: validation.String, Date: true},
		"is_active":      {Type: validation.Boolean},
	}

	budgetUpdateSchema = mergeSchemas(idSchema, budgetSchema)

	categorySchema = validation.Schema{
		"name":        {Required: true, Type: validation.String, MinLen: 2, MaxLen: 100},
		"type":        {Required: true, Type: validation.String, Enum: []any{"income", "expense", "both"}},
		"description": {Type: validation.String, MaxLen: 500},
		"is_active":   {Type: validation.Boolean},
	}

	categoryUpdateSchema = mergeSchemas(idSchema, categorySchema)

	transactionSchema = validation.Schema{
		"budget_id":      {Required: true, Type: validation.Number, Min: validation.Float(1)},
		"category_id":    {Required: true, Type: validation.Number, Min: validation.Float(1)},
		"trx_type":       {Required: true, Type: validation.String, Enum: []any{"income", "expense"}},
		"amount":         {Required: true, Type: validation.Number},
		"trx_date":       {Required: true, Type: validation.String, Date: true},
		"note":           {Type: validation.String, MaxLen: 500},
		"payment_method": {Type: validation.String, Enum: []any{"cash", "transfer", "ewallet"}},
		"meta":           {JSON: true},
	}

	transactionUpdateSchema = mergeSchemas(idSchema, transactionSchema)

	requestDeleteSchema = mergeSchemas(idSchema, validation.Schema{
		"note": {Type: validation.String, MaxLen: 500},
	})

	byDateSchema = validation.Schema{
		"date_from": {Required: true, Type: validation.String, Date: true},
		"date_to":   {Required: true, Type: validation.String, Date: true},
	}
)

func mergeSchemas(schemas ...validation.Schema) validation.Schema {
	merged := validation.Schema{}
	for _, schema := range schemas {
		for field, rules := range schema {
			merged[field] = rules
		}
	}
	return merged
}

// Handlers groups every route handler for registration.
type Handlers struct {
	Auth        *AuthHandler
	Budget      *BudgetHandler
	Category    *CategoryHandler
	Transaction *TransactionHandler
	Summary     *SummaryHandler
}

// RegisterRoutes wires the API surface onto e. Everything except
// register and login sits behind authentication; mutations on budgets,
// categories and transactions additionally require the admin role.
func RegisterRoutes(e *echo.Echo, h Handlers, tokens *auth.TokenManager, rl *middleware.RateLimiter) {
	api := e.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", h.Auth.Register, middleware.Validate(registerSchema))
	authGroup.POST("/login", h.Auth.Login, middleware.Validate(loginSchema))

	protected := api.Group("", middleware.Authenticate(tokens), middleware.RateLimit(rl))
	adminOnly := middleware.RequireRoles(domain.RoleAdmin)

	protected.GET("/auth/me", h.Auth.Me)

	budgets := protected.Group("/budgets")
	budgets.GET("", h.Budget.List)
	budgets.GET("/:id", h.Budget.Get, middleware.Validate(idSchema))
	budgets.POST("", h.Budget.Create, adminOnly, middleware.Validate(budgetSchema))
	budgets.PUT("/:id", h.Budget.Update, adminOnly, middleware.Validate(budgetUpdateSchema))
	budgets.DELETE("/:id", h.Budget.Delete, adminOnly, middleware.Validate(idSchema))

	categories := protected.Group("/categories")
	categories.GET("", h.Category.List)
	categories.GET("/:id", h.Category.Get, middleware.Validate(idSchema))
	categories.POST("", h.Category.Create, adminOnly, middleware.Validate(categorySchema))
	categories.PUT("/:id", h.Category.Update, adminOnly, middleware.Validate(categoryUpdateSchema))
	categories.DELETE("/:id", h.Category.Delete, adminOnly, middleware.Validate(idSchema))

	transactions := protected.Group("/transactions")
	transactions.GET("", h.Transaction.List)
	transactions.GET("/:id", h.Transaction.Get, middleware.Validate(idSchema))
	transactions.POST("", h.Transaction.Create, middleware.Validate(transactionSchema))
	transactions.PUT("/:id", h.Transaction.Update, adminOnly, middleware.Validate(transactionUpdateSchema))
	transactions.DELETE("/:id", h.Transaction.Delete, adminOnly, middleware.Validate(idSchema))
	transactions.POST("/:id/request-delete", h.Transaction.RequestDelete, middleware.Validate(requestDeleteSchema))

	summary := protected.Group("/summary")
	summary.GET("", h.Summary.Overall)
	summary.GET("/by-budget", h.Summary.ByBudget)
	summary.GET("/by-category", h.Summary.ByCategory)
	summary.GET("/by-date", h.Summary.ByDate, middleware.Validate(byDateSchema))
}
