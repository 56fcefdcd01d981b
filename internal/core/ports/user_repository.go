package ports

import (
	"context"

	"github.com/AmedoFerguson/backend/internal/core/domain"
)

// UserRepository defines the interface for account persistence.
type UserRepository interface {
	// Create persists a new user and returns it with the generated id.
	// Returns domain.ErrUserExists when the username is already taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	// Update overwrites the stored user identified by user.ID.
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
}
