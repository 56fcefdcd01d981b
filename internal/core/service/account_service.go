package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/AmedoFerguson/backend/internal/core/domain"
	"github.com/AmedoFerguson/backend/internal/core/ports"
)

// AccountService implements registration, authentication and profile
// management. Passwords are bcrypt-hashed before storage and never echoed.
type AccountService struct {
	users    ports.UserRepository
	uploader ports.ImageUploader
	tokens   *TokenManager
	logger   zerolog.Logger
}

func NewAccountService(users ports.UserRepository, uploader ports.ImageUploader, tokens *TokenManager, logger zerolog.Logger) *AccountService {
	return &AccountService{users: users, uploader: uploader, tokens: tokens, logger: logger}
}

// Register creates a new account. The optional avatar is resolved through
// the image gateway before the user record is written.
func (s *AccountService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	fields := map[string]string{}
	requireField(fields, "username", input.Username)
	if input.Password == "" {
		fields["password"] = "password is required"
	}
	if len(fields) > 0 {
		return nil, domain.NewValidationError(fields)
	}

	avatarURL, err := resolveImage(ctx, s.uploader, s.logger, input.AvatarBytes, input.AvatarName)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     strings.TrimSpace(input.Username),
		Email:        strings.TrimSpace(input.Email),
		PasswordHash: string(hash),
		Avatar:       avatarURL,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		if !errors.Is(err, domain.ErrUserExists) {
			s.logger.Error().Err(err).Str("username", user.Username).Msg("failed to create user")
		}
		return nil, err
	}

	s.logger.Info().Int64("user_id", created.ID).Str("username", created.Username).Msg("user registered")
	return created, nil
}

// Login verifies credentials and issues an access/refresh token pair.
// Unknown usernames and wrong passwords fail identically so responses do
// not reveal which accounts exist.
func (s *AccountService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	access, err := s.tokens.IssueAccessToken(user)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.IssueRefreshToken(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("user logged in")
	return &ports.LoginResult{
		AccessToken:  access,
		RefreshToken: refresh,
		Username:     user.Username,
		IsAdmin:      user.IsStaff,
	}, nil
}

// Refresh exchanges a valid refresh token for a new access token. The user
// is re-read so the fresh token carries current profile data.
func (s *AccountService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	userID, err := s.tokens.DecodeRefresh(refreshToken)
	if err != nil {
		return "", err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidToken
		}
		return "", err
	}

	return s.tokens.IssueAccessToken(user)
}

// CurrentUser returns the profile of the authenticated requester.
func (s *AccountService) CurrentUser(ctx context.Context, userID int64) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

// UserByID returns a user's public profile.
func (s *AccountService) UserByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

// UpdateProfile applies a partial update to the requester's own profile.
// Editing another user's data fails with ErrForbidden; password and staff
// status are not mutable through this path.
func (s *AccountService) UpdateProfile(ctx context.Context, targetID, requesterID int64, input ports.UpdateProfileInput) (*domain.User, error) {
	if targetID != requesterID {
		return nil, domain.ErrForbidden
	}

	user, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if input.Username != nil {
		fields := map[string]string{}
		requireField(fields, "username", *input.Username)
		if len(fields) > 0 {
			return nil, domain.NewValidationError(fields)
		}
	}

	avatarURL, err := resolveImage(ctx, s.uploader, s.logger, input.AvatarBytes, input.AvatarName)
	if err != nil {
		return nil, err
	}

	if input.Username != nil {
		user.Username = strings.TrimSpace(*input.Username)
	}
	if input.Email != nil {
		user.Email = strings.TrimSpace(*input.Email)
	}
	if avatarURL != "" {
		user.Avatar = avatarURL
	}

	updated, err := s.users.Update(ctx, user)
	if err != nil {
		if !errors.Is(err, domain.ErrUserExists) {
			s.logger.Error().Err(err).Int64("user_id", targetID).Msg("failed to update user")
		}
		return nil, err
	}

	s.logger.Info().Int64("user_id", targetID).Msg("profile updated")
	return updated, nil
}
