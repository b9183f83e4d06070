package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/kasorg/kasor/kasor-backend/internal/domain"
)

// Envelope is the fixed JSON wrapper every endpoint responds with.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Details any    `json:"details,omitempty"`
}

// exposeDetails controls whether 500 responses carry the underlying error
// message. Enabled in development only.
var exposeDetails bool

// SetDebug toggles error detail exposure on server faults.
func SetDebug(enabled bool) {
	exposeDetails = enabled
}

// OK responds 200 with a success envelope.
func OK(c echo.Context, message string, data any) error {
	return c.JSON(http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

// Created responds 201 with a success envelope.
func Created(c echo.Context, message string, data any) error {
	return c.JSON(http.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

// Accepted responds 202 with a success envelope.
func Accepted(c echo.Context, message string, data any) error {
	return c.JSON(http.StatusAccepted, Envelope{Success: true, Message: message, Data: data})
}

// Fail responds with a failure envelope and the given status.
func Fail(c echo.Context, status int, message string, details any) error {
	return c.JSON(status, Envelope{Success: false, Message: message, Details: details})
}

// BadRequest responds 400 with a failure envelope.
func BadRequest(c echo.Context, message string) error {
	return Fail(c, http.StatusBadRequest, message, nil)
}

// Unauthorized responds 401 with a failure envelope.
func Unauthorized(c echo.Context, message string) error {
	return Fail(c, http.StatusUnauthorized, message, nil)
}

// errorStatus maps every domain error to its status code and user-facing
// message. This is the single boundary between the error taxonomy and
// HTTP; no other call site picks status codes for domain errors.
var errorStatus = []struct {
	err     error
	status  int
	message string
}{
	{domain.ErrUserNotFound, http.StatusNotFound, "User not found"},
	{domain.ErrBudgetNotFound, http.StatusNotFound, "Budget not found"},
	{domain.ErrCategoryNotFound, http.StatusNotFound, "Category not found"},
	{domain.ErrTransactionNotFound, http.StatusNotFound, "Transaction not found"},
	{domain.ErrNotFound, http.StatusNotFound, "Resource not found"},
	{domain.ErrEmailTaken, http.StatusConflict, "Email already registered"},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid email or password"},
	{domain.ErrInvalidAmount, http.StatusBadRequest, "Amount must be greater than 0"},
	{domain.ErrNegativePlannedAmount, http.StatusBadRequest, "Planned amount must be >= 0"},
	{domain.ErrInvalidDateRange, http.StatusBadRequest, "Start date must be before or equal to end date"},
	{domain.ErrCategoryTypeMismatch, http.StatusBadRequest, "Category cannot be used for this transaction type"},
	{domain.ErrAdminDeleteRequest, http.StatusForbidden, "Admins should use DELETE to remove transactions"},
	{domain.ErrDeleteAlreadyRequested, http.StatusConflict, "Delete already requested for this transaction"},
	{domain.ErrDuplicate, http.StatusConflict, "Duplicate entry. Record already exists"},
	{domain.ErrForeignKey, http.StatusBadRequest, "Operation violates a reference to another record"},
}

// DomainError maps err through the taxonomy and responds accordingly.
// Unclassified errors become a 500 with detail suppressed outside
// development mode.
func DomainError(c echo.Context, err error) error {
	for _, entry := range errorStatus {
		if errors.Is(err, entry.err) {
			return Fail(c, entry.status, entry.message, nil)
		}
	}

	log.Error().Err(err).Str("path", c.Request().URL.Path).Msg("Unhandled error")
	var details any
	if exposeDetails {
		details = err.Error()
	}
	return Fail(c, http.StatusInternalServerError, "Internal server error", details)
}
