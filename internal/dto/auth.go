package dto

import (
	"time"

	"github.com/velotrack/velotrack_backend/internal/core/domain"
)

// LoginRequest is the password sign-in payload.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// GoogleLoginRequest carries either an authorization code from the frontend's
// code flow or an ID token from one-tap sign-in.
type GoogleLoginRequest struct {
	Code    string `json:"code" binding:"required_without=IDToken"`
	IDToken string `json:"idToken" binding:"required_without=Code"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// ChangePasswordRequest changes the caller's own password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8,nefield=CurrentPassword"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	UserID            string          `json:"userID"`
	Role              domain.UserRole `json:"role"`
	Name              string          `json:"name"`
	Username          string          `json:"username"`
	Email             *string         `json:"email,omitempty"`
	Phone             string          `json:"phone"`
	BankName          string          `json:"bankName"`
	BankAccountNumber string          `json:"bankAccountNumber"`
	BankAccountHolder string          `json:"bankAccountHolder"`
	IsActive          bool            `json:"isActive"`
	CreatedAt         time.Time       `json:"createdAt"`
}

// ToUserResponse converts a domain.User to UserResponse DTO
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:            u.UserID,
		Role:              u.Role,
		Name:              u.Name,
		Username:          u.Username,
		Email:             u.Email,
		Phone:             u.Phone,
		BankName:          u.BankName,
		BankAccountNumber: u.BankAccountNumber,
		BankAccountHolder: u.BankAccountHolder,
		IsActive:          u.IsActive,
		CreatedAt:         u.CreatedAt,
	}
}

// ToListUserResponse converts a slice of domain.User to UserResponse DTOs
func ToListUserResponse(users []domain.User) []UserResponse {
	res := make([]UserResponse, len(users))
	for i := range users {
		res[i] = ToUserResponse(&users[i])
	}
	return res
}
