package services

import (
	"context"

	"github.com/velotrack/velotrack_backend/internal/core/domain"
	"github.com/velotrack/velotrack_backend/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// GetOwner returns the single OWNER account.
	GetOwner(ctx context.Context) (*domain.User, error)

	// ListMitras retrieves a paginated list of partners.
	ListMitras(ctx context.Context, activeOnly bool, limit, offset int) ([]domain.User, error)

	// GetActiveMitra returns the partner or apperrors.ErrNotFound when it is missing, inactive or not a MITRA.
	GetActiveMitra(ctx context.Context, userID string) (*domain.User, error)
}

// UserWriterSvc defines write operations for partner accounts
type UserWriterSvc interface {
	CreateMitra(ctx context.Context, actor domain.Actor, req dto.CreateMitraRequest) (*domain.User, error)
	UpdateMitra(ctx context.Context, actor domain.Actor, userID string, req dto.UpdateMitraRequest) (*domain.User, error)
	SetMitraActive(ctx context.Context, actor domain.Actor, userID string, active bool) (*domain.User, error)
	ChangePassword(ctx context.Context, actor domain.Actor, req dto.ChangePasswordRequest) error
}

// UserBootstrapSvc guarantees the OWNER account exists.
type UserBootstrapSvc interface {
	// EnsureOwner finds the OWNER or creates it from the given credentials. Safe to call concurrently.
	EnsureOwner(ctx context.Context, username, password, name string) (*domain.User, error)
}

// UserAuthSvc defines operations for user authentication
type UserAuthSvc interface {
	// AuthenticateUser checks credentials of an active account.
	AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error)

	// FindActiveUserByEmail is used by Google sign-in.
	FindActiveUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserBootstrapSvc
	UserAuthSvc
}
