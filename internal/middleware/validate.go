package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/kasorg/kasor/kasor-backend/internal/validation"
)

const (
	// inputKey is the context key for the validated, coerced input
	inputKey contextKey = "input"
)

// Validate returns an Echo middleware that checks the merged request input
// (JSON body, then query parameters, then path parameters) against schema.
// On violation it responds 400 with the full violation list; on success the
// coerced input is stored in the request context for the handler.
func Validate(schema validation.Schema) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			input := validation.Input{}

			req := c.Request()
			if req.Body != nil {
				raw, err := io.ReadAll(req.Body)
				if err != nil {
					return validationFailed(c, []string{"Request body could not be read"})
				}
				req.Body = io.NopCloser(bytes.NewReader(raw))

				if len(bytes.TrimSpace(raw)) > 0 && isJSONRequest(c) {
					var body map[string]any
					if err := json.Unmarshal(raw, &body); err != nil {
						return validationFailed(c, []string{"Request body must be a valid JSON object"})
					}
					for k, v := range body {
						input[k] = v
					}
				}
			}

			for k, vs := range c.QueryParams() {
				if len(vs) > 0 {
					input[k] = vs[0]
				}
			}

			// Path parameters win over body and query on key collision.
			names := c.ParamNames()
			values := c.ParamValues()
			for i, name := range names {
				if i < len(values) {
					input[name] = values[i]
				}
			}

			coerced, violations := validation.Validate(schema, input)
			if len(violations) > 0 {
				return validationFailed(c, violations)
			}

			ctx := context.WithValue(req.Context(), inputKey, coerced)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// BoundInput returns the validated input stored by the Validate middleware.
func BoundInput(c echo.Context) validation.Input {
	if input, ok := c.Request().Context().Value(inputKey).(validation.Input); ok {
		return input
	}
	return validation.Input{}
}

// WithInput stores a pre-validated input on the request context. Exported
// for handler tests that bypass the Validate middleware.
func WithInput(c echo.Context, input validation.Input) {
	ctx := context.WithValue(c.Request().Context(), inputKey, input)
	c.SetRequest(c.Request().WithContext(ctx))
}

func isJSONRequest(c echo.Context) bool {
	contentType := c.Request().Header.Get(echo.HeaderContentType)
	return contentType == "" || strings.HasPrefix(contentType, echo.MIMEApplicationJSON)
}
