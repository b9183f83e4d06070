package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/kasorg/kasor/kasor-backend/internal/domain"
	"github.com/kasorg/kasor/kasor-backend/internal/middleware"
	"github.com/kasorg/kasor/kasor-backend/internal/service"
)

// AuthHandler serves registration, login and the current-user profile.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c echo.Context) error {
	input := middleware.BoundInput(c)

	role := domain.RoleMember
	if input.Has("role") {
		role = domain.Role(input.String("role"))
	}

	user, err := h.authService.Register(service.RegisterInput{
		Name:     input.String("name"),
		Email:    input.String("email"),
		Password: input.String("password"),
		Role:     role,
	})
	if err != nil {
		return DomainError(c, err)
	}

	return Created(c, "User registered successfully", echo.Map{"user": newUserResponse(user)})
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	input := middleware.BoundInput(c)

	token, user, err := h.authService.Login(input.String("email"), input.String("password"))
	if err != nil {
		return DomainError(c, err)
	}

	return OK(c, "Login successful", echo.Map{
		"token": token,
		"user":  newUserResponse(user),
	})
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(c echo.Context) error {
	identity, ok := middleware.CurrentUser(c)
	if !ok {
		return Unauthorized(c, "User not authenticated")
	}

	user, err := h.authService.Profile(identity.ID)
	if err != nil {
		return DomainError(c, err)
	}

	return OK(c, "Profile retrieved successfully", echo.Map{"user": newUserResponse(user)})
}
