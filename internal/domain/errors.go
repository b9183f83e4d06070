package domain

import "errors"

// Domain errors
var (
	ErrNotFound               = errors.New("resource not found")
	ErrDuplicate              = errors.New("duplicate entry")
	ErrForeignKey             = errors.New("foreign key constraint violated")
	ErrUserNotFound           = errors.New("user not found")
	ErrBudgetNotFound         = errors.New("budget not found")
	ErrCategoryNotFound       = errors.New("category not found")
	ErrTransactionNotFound    = errors.New("transaction not found")
	ErrEmailTaken             = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid email or password")
	ErrInvalidAmount          = errors.New("amount must be greater than 0")
	ErrNegativePlannedAmount  = errors.New("planned amount must be >= 0")
	ErrInvalidDateRange       = errors.New("start date must be before or equal to end date")
	ErrCategoryTypeMismatch   = errors.New("category type does not allow this transaction type")
	ErrAdminDeleteRequest     = errors.New("admins should use delete to remove transactions")
	ErrDeleteAlreadyRequested = errors.New("delete already requested for this transaction")
)
