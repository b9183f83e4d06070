package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kasorg/kasor/kasor-backend/internal/auth"
	"github.com/kasorg/kasor/kasor-backend/internal/domain"
)

func TestRateLimiter_AllowsWithinBurst(t *testing.T) {
	rl := NewRateLimiterWithConfig(60, 5)
	defer rl.Stop()

	for i := 0; i < 5; i++ {
		assert.True(t, rl.Allow(1), "request %d should be allowed", i+1)
	}
	assert.False(t, rl.Allow(1), "request beyond burst should be rejected")
}

func TestRateLimiter_SeparatePerUser(t *testing.T) {
	rl := NewRateLimiterWithConfig(60, 1)
	defer rl.Stop()

	assert.True(t, rl.Allow(1))
	assert.False(t, rl.Allow(1))
	assert.True(t, rl.Allow(2), "another user has their own limiter")
}

func TestRateLimit_Responds429(t *testing.T) {
	rl := NewRateLimiterWithConfig(60, 1)
	defer rl.Stop()

	e := echo.New()
	mw := RateLimit(rl)

	for i, wantCode := range []int{http.StatusOK, http.StatusTooManyRequests} {
		req := httptest.NewRequest(http.MethodGet, "/api/budgets", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		WithIdentity(c, auth.Identity{ID: 9, Role: domain.RoleMember})

		require.NoError(t, mw(okHandler)(c))
		assert.Equal(t, wantCode, rec.Code, "request %d", i+1)
	}
}

func TestRateLimit_SkipsUnauthenticated(t *testing.T) {
	rl := NewRateLimiterWithConfig(60, 1)
	defer rl.Stop()

	e := echo.New()
	mw := RateLimit(rl)

	// No identity on the context: both requests pass through.
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		require.NoError(t, mw(okHandler)(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}
