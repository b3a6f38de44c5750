package model

import "github.com/festy23/ideawaves/pkg/tags"

// RegisterRequest represents the sign-up payload.
type RegisterRequest struct {
	Name     string    `json:"name"     binding:"required,notblank,max=255"`
	Email    string    `json:"email"    binding:"required,email,max=255"`
	Password string    `json:"password" binding:"required,min=6"`
	Skills   tags.List `json:"skills"`
}

// LoginRequest represents the sign-in payload.
type LoginRequest struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest represents a partial profile update. Empty fields keep their value.
type UpdateProfileRequest struct {
	Name     string    `json:"name"     binding:"max=255"`
	Email    string    `json:"email"    binding:"omitempty,email,max=255"`
	Password string    `json:"password" binding:"omitempty,min=6"`
	Skills   tags.List `json:"skills"`
}

// AuthResponse is returned by register, login and profile update.
type AuthResponse struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	Skills []string `json:"skills"`
	Token  string   `json:"token"`
}

// ProfileResponse is the caller's own profile.
type ProfileResponse struct {
	User
	EngagementScore int `json:"engagementScore"`
}
