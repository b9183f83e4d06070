package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/kasorg/kasor/kasor-backend/internal/auth"
	"github.com/kasorg/kasor/kasor-backend/internal/domain"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	// identityKey is the context key for the authenticated caller
	identityKey contextKey = "identity"
)

// Authenticate returns an Echo middleware that verifies the bearer token
// and injects the caller's identity into the request context. Each
// verification failure class maps to its own 401 message.
func Authenticate(tokens *auth.TokenManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return unauthorized(c, "No token provided")
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return unauthorized(c, "Invalid token format. Use: Bearer <token>")
			}

			claims, err := tokens.Parse(parts[1])
			if err != nil {
				log.Debug().Err(err).Msg("Token verification failed")
				switch {
				case errors.Is(err, auth.ErrTokenExpired):
					return unauthorized(c, "Token expired")
				case errors.Is(err, auth.ErrTokenMalformed), errors.Is(err, auth.ErrTokenInvalid):
					return unauthorized(c, "Invalid token")
				default:
					return unauthorized(c, "Authentication failed")
				}
			}

			ctx := context.WithValue(c.Request().Context(), identityKey, claims.Identity())
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// RequireRoles returns a middleware that allow-lists the caller's role.
// A missing identity is a pipeline-ordering defect but still fails safe
// with 401 rather than crashing.
func RequireRoles(roles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := CurrentUser(c)
			if !ok {
				return unauthorized(c, "User not authenticated")
			}

			for _, role := range roles {
				if identity.Role == role {
					return next(c)
				}
			}

			names := make([]string, len(roles))
			for i, role := range roles {
				names[i] = string(role)
			}
			return forbidden(c, "Access denied. Required role: "+strings.Join(names, " or "))
		}
	}
}

// CurrentUser extracts the authenticated identity from the request context.
func CurrentUser(c echo.Context) (auth.Identity, bool) {
	identity, ok := c.Request().Context().Value(identityKey).(auth.Identity)
	return identity, ok
}

// WithIdentity stores an identity on the request context. Exported for
// handler tests that bypass the Authenticate middleware.
func WithIdentity(c echo.Context, identity auth.Identity) {
	ctx := context.WithValue(c.Request().Context(), identityKey, identity)
	c.SetRequest(c.Request().WithContext(ctx))
}
