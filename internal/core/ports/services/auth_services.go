package services

import (
	"context"
	"time"

	"github.com/velotrack/velotrack_backend/internal/core/domain"
	"github.com/velotrack/velotrack_backend/internal/dto"
)

// TokenSvcFacade issues access tokens.
type TokenSvcFacade interface {
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
}

// AuthSvcFacade signs users in.
type AuthSvcFacade interface {
	// Login authenticates with username and password.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	// LoginWithGoogle authenticates an existing, active account by its verified Google email.
	LoginWithGoogle(ctx context.Context, req dto.GoogleLoginRequest) (*dto.LoginResponse, error)
}
