package service

import (
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/kasorg/kasor/kasor-backend/internal/auth"
	"github.com/kasorg/kasor/kasor-backend/internal/domain"
	"github.com/kasorg/kasor/kasor-backend/internal/testutil"
)

func newAuthService() (*AuthService, *testutil.MockUserRepository) {
	userRepo := testutil.NewMockUserRepository()
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	return NewAuthService(userRepo, tokens), userRepo
}

func TestRegister_Success(t *testing.T) {
	authService, userRepo := newAuthService()

	user, err := authService.Register(RegisterInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if user.Name != "Alice" {
		t.Errorf("Expected name 'Alice', got %s", user.Name)
	}
	if user.Role != domain.RoleMember {
		t.Errorf("Expected role to default to member, got %s", user.Role)
	}

	stored := userRepo.Users[user.ID]
	if stored.PasswordHash == "secret123" {
		t.Error("Expected password to be hashed, got plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret123")); err != nil {
		t.Errorf("Stored hash does not match password: %v", err)
	}
}

func TestRegister_AdminRole(t *testing.T) {
	authService, _ := newAuthService()

	user, err := authService.Register(RegisterInput{
		Name:     "Root",
		Email:    "root@example.com",
		Password: "secret123",
		Role:     domain.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if user.Role != domain.RoleAdmin {
		t.Errorf("Expected role admin, got %s", user.Role)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	authService, _ := newAuthService()

	input := RegisterInput{Name: "Alice", Email: "alice@example.com", Password: "secret123"}
	if _, err := authService.Register(input); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	_, err := authService.Register(input)
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Errorf("Expected ErrEmailTaken, got %v", err)
	}
}

func TestLogin_Success(t *testing.T) {
	authService, _ := newAuthService()

	if _, err := authService.Register(RegisterInput{Name: "Alice", Email: "alice@example.com", Password: "secret123"}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	token, user, err := authService.Login("alice@example.com", "secret123")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if token == "" {
		t.Error("Expected a token, got empty string")
	}
	if user.Email != "alice@example.com" {
		t.Errorf("Expected email 'alice@example.com', got %s", user.Email)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	authService, _ := newAuthService()

	if _, err := authService.Register(RegisterInput{Name: "Alice", Email: "alice@example.com", Password: "secret123"}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	_, _, err := authService.Login("alice@example.com", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	authService, _ := newAuthService()

	// Unknown email and wrong password must be indistinguishable.
	_, _, err := authService.Login("nobody@example.com", "whatever")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials, got %v", err)
	}
}

func TestProfile(t *testing.T) {
	authService, _ := newAuthService()

	user, err := authService.Register(RegisterInput{Name: "Alice", Email: "alice@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	profile, err := authService.Profile(user.ID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if profile.Email != "alice@example.com" {
		t.Errorf("Expected email 'alice@example.com', got %s", profile.Email)
	}

	if _, err := authService.Profile(999); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got %v", err)
	}
}
