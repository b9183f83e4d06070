package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kasorg/kasor/kasor-backend/internal/domain"
)

// UserRepository implements domain.UserRepository using PostgreSQL
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// GetByEmail retrieves a user by email, including the password hash.
func (r *UserRepository) GetByEmail(email string) (*domain.User, error) {
	ctx := context.Background()

	var user domain.User
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, email, password_hash, role, created_at, updated_at
		 FROM users WHERE email = $1`, email,
	).Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, mapError(err)
	}
	return &user, nil
}

// GetByID retrieves a user by ID without the password hash.
func (r *UserRepository) GetByID(id int32) (*domain.User, error) {
	ctx := context.Background()

	var user domain.User
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, email, role, created_at, updated_at
		 FROM users WHERE id = $1`, id,
	).Scan(&user.ID, &user.Name, &user.Email, &user.Role, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, mapError(err)
	}
	return &user, nil
}

// Create inserts a new user and returns the generated id.
func (r *UserRepository) Create(user *domain.User) (int32, error) {
	ctx := context.Background()

	var id int32
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (name, email, password_hash, role)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		user.Name, user.Email, user.PasswordHash, user.Role,
	).Scan(&id)
	if err != nil {
		return 0, mapError(err)
	}
	return id, nil
}
