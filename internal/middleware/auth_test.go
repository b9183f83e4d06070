package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kasorg/kasor/kasor-backend/internal/auth"
	"github.com/kasorg/kasor/kasor-backend/internal/domain"
)

func okHandler(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func authRequest(t *testing.T, header string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/budgets", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Message
}

func TestAuthenticate_NoToken(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Hour)
	c, rec := authRequest(t, "")

	err := Authenticate(tokens)(okHandler)(c)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "No token provided", decodeMessage(t, rec))
}

func TestAuthenticate_BadFormat(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Hour)
	c, rec := authRequest(t, "Basic abc123")

	err := Authenticate(tokens)(okHandler)(c)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid token format. Use: Bearer <token>", decodeMessage(t, rec))
}

func TestAuthenticate_Expired(t *testing.T) {
	tokens := auth.NewTokenManager("secret", -time.Minute)
	token, err := tokens.Issue(&domain.User{ID: 1, Email: "a@b.co", Role: domain.RoleMember})
	require.NoError(t, err)

	c, rec := authRequest(t, "Bearer "+token)

	require.NoError(t, Authenticate(tokens)(okHandler)(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Token expired", decodeMessage(t, rec))
}

func TestAuthenticate_BadSignature(t *testing.T) {
	issuer := auth.NewTokenManager("other-secret", time.Hour)
	token, err := issuer.Issue(&domain.User{ID: 1, Email: "a@b.co", Role: domain.RoleMember})
	require.NoError(t, err)

	tokens := auth.NewTokenManager("secret", time.Hour)
	c, rec := authRequest(t, "Bearer "+token)

	require.NoError(t, Authenticate(tokens)(okHandler)(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid token", decodeMessage(t, rec))
}

func TestAuthenticate_InjectsIdentity(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Hour)
	token, err := tokens.Issue(&domain.User{ID: 42, Email: "member@example.com", Role: domain.RoleMember})
	require.NoError(t, err)

	c, rec := authRequest(t, "Bearer "+token)

	var got auth.Identity
	handler := func(c echo.Context) error {
		identity, ok := CurrentUser(c)
		require.True(t, ok)
		got = identity
		return c.NoContent(http.StatusOK)
	}

	require.NoError(t, Authenticate(tokens)(handler)(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int32(42), got.ID)
	assert.Equal(t, "member@example.com", got.Email)
	assert.Equal(t, domain.RoleMember, got.Role)
}

func TestRequireRoles_Allows(t *testing.T) {
	c, rec := authRequest(t, "")
	WithIdentity(c, auth.Identity{ID: 1, Role: domain.RoleAdmin})

	require.NoError(t, RequireRoles(domain.RoleAdmin)(okHandler)(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRoles_Denies(t *testing.T) {
	c, rec := authRequest(t, "")
	WithIdentity(c, auth.Identity{ID: 1, Role: domain.RoleMember})

	require.NoError(t, RequireRoles(domain.RoleAdmin)(okHandler)(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Access denied. Required role: admin", decodeMessage(t, rec))
}

func TestRequireRoles_MultipleRoles(t *testing.T) {
	c, rec := authRequest(t, "")
	WithIdentity(c, auth.Identity{ID: 1, Role: domain.RoleMember})

	require.NoError(t, RequireRoles(domain.RoleAdmin, domain.RoleMember)(okHandler)(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRoles_MissingIdentityFailsSafe(t *testing.T) {
	c, rec := authRequest(t, "")

	require.NoError(t, RequireRoles(domain.RoleAdmin)(okHandler)(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "User not authenticated", decodeMessage(t, rec))
}
