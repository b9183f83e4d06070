package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kasorg/kasor/kasor-backend/internal/validation"
)

func validateContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestValidate_RejectsWithAllViolations(t *testing.T) {
	schema := validation.Schema{
		"name":  {Required: true, Type: validation.String},
		"email": {Required: true, Type: validation.String, Email: true},
	}

	c, rec := validateContext(t, http.MethodPost, "/api/auth/register", `{"email":"bad"}`)

	err := Validate(schema)(func(c echo.Context) error {
		t.Fatal("handler must not run on validation failure")
		return nil
	})(c)
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Validation failed", body.Message)
	details, ok := body.Details.([]any)
	require.True(t, ok)
	assert.Len(t, details, 2)
}

func TestValidate_CoercesAndStoresInput(t *testing.T) {
	schema := validation.Schema{
		"amount": {Required: true, Type: validation.Number},
	}

	c, rec := validateContext(t, http.MethodPost, "/api/transactions", `{"amount":"99.50"}`)

	var bound validation.Input
	err := Validate(schema)(func(c echo.Context) error {
		bound = BoundInput(c)
		return c.NoContent(http.StatusOK)
	})(c)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 99.50, bound.Number("amount"))
}

func TestValidate_MergesQueryAndPathParams(t *testing.T) {
	schema := validation.Schema{
		"id":   {Required: true, Type: validation.Number, Min: validation.Float(1)},
		"note": {Type: validation.String},
	}

	c, rec := validateContext(t, http.MethodGet, "/api/transactions/5?note=hello", "")
	c.SetParamNames("id")
	c.SetParamValues("5")

	var bound validation.Input
	err := Validate(schema)(func(c echo.Context) error {
		bound = BoundInput(c)
		return c.NoContent(http.StatusOK)
	})(c)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int32(5), bound.Int32("id"))
	assert.Equal(t, "hello", bound.String("note"))
}

func TestValidate_PathParamWinsOverBody(t *testing.T) {
	schema := validation.Schema{
		"id": {Required: true, Type: validation.Number},
	}

	c, rec := validateContext(t, http.MethodPut, "/api/budgets/3", `{"id": 99}`)
	c.SetParamNames("id")
	c.SetParamValues("3")

	var bound validation.Input
	err := Validate(schema)(func(c echo.Context) error {
		bound = BoundInput(c)
		return c.NoContent(http.StatusOK)
	})(c)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int32(3), bound.Int32("id"))
}

func TestValidate_MalformedBody(t *testing.T) {
	schema := validation.Schema{}

	c, rec := validateContext(t, http.MethodPost, "/api/budgets", `{"name":`)

	err := Validate(schema)(okHandler)(c)
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestValidate_BodyStaysReadable(t *testing.T) {
	schema := validation.Schema{
		"name": {Required: true, Type: validation.String},
	}

	c, rec := validateContext(t, http.MethodPost, "/api/categories", `{"name":"Ops"}`)

	err := Validate(schema)(func(c echo.Context) error {
		raw, err := io.ReadAll(c.Request().Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"Ops"}`, string(raw))
		return c.NoContent(http.StatusOK)
	})(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}
