package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/AmedoFerguson/backend/internal/core/domain"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// TokenManager issues and decodes the HS256 bearer tokens used by the API.
// Access tokens are short-lived; refresh tokens live longer and can only be
// exchanged for new access tokens, never used to authenticate requests.
type TokenManager struct {
	secret     string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenManager(secret string, accessTTL, refreshTTL time.Duration) *TokenManager {
	if accessTTL <= 0 {
		accessTTL = 30 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &TokenManager{secret: secret, accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// IssueAccessToken signs a short-lived token asserting the user's identity.
func (m *TokenManager) IssueAccessToken(user *domain.User) (string, error) {
	return m.sign(user, tokenTypeAccess, m.accessTTL)
}

// IssueRefreshToken signs a long-lived token usable only with Refresh.
func (m *TokenManager) IssueRefreshToken(user *domain.User) (string, error) {
	return m.sign(user, tokenTypeRefresh, m.refreshTTL)
}

func (m *TokenManager) sign(user *domain.User, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":    user.ID,
		"username":   user.Username,
		"is_staff":   user.IsStaff,
		"token_type": tokenType,
		"iat":        now.Unix(),
		"exp":        now.Add(ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(m.secret))
}

// DecodeRefresh validates a refresh token and returns the user id it was
// issued to. Expired, malformed or access-typed tokens all fail with
// domain.ErrInvalidToken.
func (m *TokenManager) DecodeRefresh(token string) (int64, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(m.secret), nil
	})
	if err != nil || !parsed.Valid {
		return 0, domain.ErrInvalidToken
	}

	if typ, _ := claims["token_type"].(string); typ != tokenTypeRefresh {
		return 0, domain.ErrInvalidToken
	}

	id, ok := claims["user_id"].(float64)
	if !ok {
		return 0, domain.ErrInvalidToken
	}
	return int64(id), nil
}
