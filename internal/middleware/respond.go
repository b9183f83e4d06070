package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// envelope mirrors the handler package's response wrapper. Middleware keeps
// its own copy to avoid an import cycle with internal/handler.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Details any    `json:"details,omitempty"`
}

func unauthorized(c echo.Context, message string) error {
	return c.JSON(http.StatusUnauthorized, envelope{Success: false, Message: message})
}

func forbidden(c echo.Context, message string) error {
	return c.JSON(http.StatusForbidden, envelope{Success: false, Message: message})
}

func validationFailed(c echo.Context, details []string) error {
	return c.JSON(http.StatusBadRequest, envelope{Success: false, Message: "Validation failed", Details: details})
}
