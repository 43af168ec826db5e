package dto

import (
	"time"

	"posadmin/internal/model"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=4"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// LogoutRequest intentionally has no validation tags beyond required:
// logout is idempotent and never reveals whether the token was valid.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// UserResponse is the user profile with the password hash stripped.
type UserResponse struct {
	ID         string     `json:"id"`
	BusinessID *string    `json:"business_id,omitempty"`
	Email      string     `json:"email"`
	Role       string     `json:"role"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	Active     bool       `json:"active"`
	LastLogin  *time.Time `json:"last_login,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

type LoginResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
	ExpiresIn    int          `json:"expires_in"` // seconds
}

type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}

// NewUserResponse maps a user model to its API shape.
func NewUserResponse(u *model.User) UserResponse {
	var businessID *string
	if u.BusinessID != nil {
		s := u.BusinessID.String()
		businessID = &s
	}
	return UserResponse{
		ID:         u.ID.String(),
		BusinessID: businessID,
		Email:      u.Email,
		Role:       u.Role,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Active:     u.Active,
		LastLogin:  u.LastLogin,
		CreatedAt:  u.CreatedAt,
	}
}
