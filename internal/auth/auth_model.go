package auth

import (
	"github.com/pitchside/pitchside/internal/user"
)

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100" example:"Rohan Mehta"`
	Username string `json:"username" binding:"required,min=3,max=30" example:"rohan_m"`
	Email    string `json:"email" binding:"required,email" example:"rohan@example.com"`
	Password string `json:"password" binding:"required,min=8" example:"s3cretpass"`
	Role     string `json:"role" binding:"omitempty,oneof=admin scorer viewer" example:"scorer"`
}

type LoginRequest struct {
	LoginIdentifier string `json:"login_identifier" binding:"required" example:"rohan@example.com"` // Can be email or username
	Password        string `json:"password" binding:"required" example:"s3cretpass"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type LogoutRequest struct {
	RefreshToken          string `json:"refresh_token"`
	InvalidateAllSessions bool   `json:"invalidate_all_sessions"`
}

type UserResponse struct {
	ID       uint     `json:"id"`
	Name     string   `json:"name"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
}

type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

// FilterUserRecord strips sensitive fields before a user record leaves the API.
func FilterUserRecord(u *user.User) UserResponse {
	roles := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		roles = append(roles, r.Name)
	}
	return UserResponse{
		ID:       u.ID,
		Name:     u.Name,
		Username: u.Username,
		Email:    u.Email,
		Roles:    roles,
	}
}
