package handler

import "github.com/AmedoFerguson/backend/internal/core/domain"

// --- Request / Response types ---

type registerRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Email    string `json:"email"    form:"email"    validate:"omitempty,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

// updateProfileRequest uses pointers for partial updates. Password and
// staff status are not accepted here.
type updateProfileRequest struct {
	Username *string `json:"username" form:"username"`
	Email    *string `json:"email"    form:"email"`
}

// loginResponse mirrors the token-pair contract: both tokens plus the
// identity hints the frontend needs.
type loginResponse struct {
	Access   string `json:"access"`
	Refresh  string `json:"refresh"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}

type refreshResponse struct {
	Access string `json:"access"`
}

// userResponse is the public account view. The password hash never leaves
// the domain type, and is_admin is only reported to the account itself.
type userResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Avatar   string `json:"avatar,omitempty"`
	IsAdmin  *bool  `json:"is_admin,omitempty"`
}

func toUserResponse(u *domain.User, includeAdmin bool) userResponse {
	resp := userResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Avatar:   u.Avatar,
	}
	if includeAdmin {
		isAdmin := u.IsStaff
		resp.IsAdmin = &isAdmin
	}
	return resp
}
