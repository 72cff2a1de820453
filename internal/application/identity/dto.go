package identity

import (
	"time"

	"github.com/newsroom/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// SignUpRequest represents a self-service registration request
type SignUpRequest struct {
	Email           string `json:"email" binding:"required,email,max=200"`
	Name            string `json:"name" binding:"required,min=1,max=200"`
	Password        string `json:"password" binding:"required,min=8,max=128"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
	Role            string `json:"role" binding:"omitempty,oneof=WRITER READER"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest represents a token refresh request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UpdateNameRequest represents a display name change
type UpdateNameRequest struct {
	Name string `json:"name" binding:"required,min=1,max=200"`
}

// ChangeRoleRequest represents an administrative role change
type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=ADMIN EDITOR WRITER READER"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Bio       string    `json:"bio,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ProfileResponse is the public view of a user, optionally with writer details
type ProfileResponse struct {
	ID        uuid.UUID              `json:"id"`
	Username  string                 `json:"username"`
	Name      string                 `json:"name"`
	Role      string                 `json:"role"`
	Bio       string                 `json:"bio,omitempty"`
	AvatarURL string                 `json:"avatar_url,omitempty"`
	Writer    *WriterProfileResponse `json:"writer,omitempty"`
}

// WriterProfileResponse represents writer-specific profile data
type WriterProfileResponse struct {
	Specialty string `json:"specialty,omitempty"`
	Website   string `json:"website,omitempty"`
}

// AuthResponse carries the token pair and the authenticated user
type AuthResponse struct {
	AccessToken           string       `json:"access_token"`
	RefreshToken          string       `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time    `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time    `json:"refresh_token_expires_at"`
	TokenType             string       `json:"token_type"`
	User                  UserResponse `json:"user"`
}

// ToUserResponse converts a domain User to UserResponse
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		Name:      u.Name,
		Role:      string(u.Role),
		Bio:       u.Bio,
		AvatarURL: u.AvatarURL,
		CreatedAt: u.CreatedAt,
	}
}

// ToProfileResponse converts a domain User and optional writer profile to
// the public profile view
func ToProfileResponse(u *identity.User, wp *identity.WriterProfile) ProfileResponse {
	resp := ProfileResponse{
		ID:        u.ID,
		Username:  u.Username,
		Name:      u.Name,
		Role:      string(u.Role),
		Bio:       u.Bio,
		AvatarURL: u.AvatarURL,
	}
	if wp != nil {
		resp.Writer = &WriterProfileResponse{
			Specialty: wp.Specialty,
			Website:   wp.Website,
		}
	}
	return resp
}
