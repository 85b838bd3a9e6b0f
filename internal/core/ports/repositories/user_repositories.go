package repositories

import (
	"context"
	"time"

	"github.com/velotrack/velotrack_backend/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByUsername retrieves a user by the login username.
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// FindUserByEmail retrieves a user by email, used by Google sign-in.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindOwner retrieves the single OWNER account.
	FindOwner(ctx context.Context) (*domain.User, error)

	// ListUsersByRole retrieves a paginated list of users with the given role.
	ListUsersByRole(ctx context.Context, role domain.UserRole, activeOnly bool, limit int, offset int) ([]domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user. Unique violations are reported as apperrors.ErrDuplicate.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUser updates profile and bank details.
	UpdateUser(ctx context.Context, user domain.User) error

	// UpdatePassword replaces the password hash.
	UpdatePassword(ctx context.Context, userID string, passwordHash string, updatedAt time.Time, updatedBy string) error

	// SetUserActive activates or deactivates an account.
	SetUserActive(ctx context.Context, userID string, active bool, updatedAt time.Time, updatedBy string) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
