package service

import (
	"errors"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/kasorg/kasor/kasor-backend/internal/auth"
	"github.com/kasorg/kasor/kasor-backend/internal/domain"
)

// AuthService handles registration, login and profile lookups
type AuthService struct {
	userRepo domain.UserRepository
	tokens   *auth.TokenManager
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo domain.UserRepository, tokens *auth.TokenManager) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// RegisterInput holds the input for registering a user
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// Register creates a new user with a bcrypt-hashed password. The role
// defaults to member when not provided.
func (s *AuthService) Register(input RegisterInput) (*domain.User, error) {
	if _, err := s.userRepo.GetByEmail(input.Email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = domain.RoleMember
	}

	id, err := s.userRepo.Create(&domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         role,
	})
	if err != nil {
		// Two concurrent registrations can both pass the email lookup;
		// the unique index decides the winner.
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}

	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	log.Info().Int32("user_id", user.ID).Str("email", user.Email).Msg("User registered")
	return user, nil
}

// Login verifies credentials and issues a bearer token. Both an unknown
// email and a wrong password yield ErrInvalidCredentials so the response
// never discloses which one failed.
func (s *AuthService) Login(email, password string) (string, *domain.User, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, err
	}

	log.Info().Int32("user_id", user.ID).Str("email", user.Email).Msg("User logged in")
	return token, user, nil
}

// Profile returns the user behind an authenticated identity.
func (s *AuthService) Profile(userID int32) (*domain.User, error) {
	return s.userRepo.GetByID(userID)
}
