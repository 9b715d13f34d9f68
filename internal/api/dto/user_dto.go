package dto

import (
	"time"

	"github.com/spec-kit/survey-service/internal/domain"
)

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate reports every failing field at once.
func (r RegisterRequest) Validate() map[string]any {
	details := map[string]any{}
	if r.Name == "" {
		details["name"] = "required"
	}
	if r.Email == "" {
		details["email"] = "required"
	}
	if len(r.Password) < 8 {
		details["password"] = "must be at least 8 characters"
	}
	return details
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate reports every failing field at once.
func (r LoginRequest) Validate() map[string]any {
	details := map[string]any{}
	if r.Email == "" {
		details["email"] = "required"
	}
	if r.Password == "" {
		details["password"] = "required"
	}
	return details
}

// UserUpdateRequest payload for partial updates. Nil fields are left
// untouched.
type UserUpdateRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// Validate reports every failing field at once.
func (r UserUpdateRequest) Validate() map[string]any {
	details := map[string]any{}
	if r.Name != nil && *r.Name == "" {
		details["name"] = "must not be empty"
	}
	if r.Email != nil && *r.Email == "" {
		details["email"] = "must not be empty"
	}
	if r.Password != nil && len(*r.Password) < 8 {
		details["password"] = "must be at least 8 characters"
	}
	if r.Name == nil && r.Email == nil && r.Password == nil {
		details["body"] = "no fields to update"
	}
	return details
}

// UserResponse is the public shape of an account; the password hash never
// leaves the service.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUserResponse maps the domain model.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// AuthResponse standard response for login.
type AuthResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
}
