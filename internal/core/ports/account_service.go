package ports

import (
	"context"

	"github.com/AmedoFerguson/backend/internal/core/domain"
)

// RegisterInput carries the registration payload. AvatarBytes, when
// non-nil, is uploaded to the image gateway and stored as the avatar URL.
type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	AvatarBytes []byte
	AvatarName  string
}

// UpdateProfileInput uses pointer fields for partial-update semantics.
// Password and staff status are deliberately absent: they are not mutable
// through the profile path.
type UpdateProfileInput struct {
	Username    *string
	Email       *string
	AvatarBytes []byte
	AvatarName  string
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	AccessToken  string
	RefreshToken string
	Username     string
	IsAdmin      bool
}

// AccountService defines registration, authentication and profile
// operations.
type AccountService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	// Refresh exchanges a valid refresh token for a new access token.
	Refresh(ctx context.Context, refreshToken string) (string, error)
	CurrentUser(ctx context.Context, userID int64) (*domain.User, error)
	UserByID(ctx context.Context, id int64) (*domain.User, error)
	UpdateProfile(ctx context.Context, targetID, requesterID int64, input UpdateProfileInput) (*domain.User, error)
}
