package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/velotrack/velotrack_backend/internal/apperrors"
	"github.com/velotrack/velotrack_backend/internal/core/domain"
	portsrepo "github.com/velotrack/velotrack_backend/internal/core/ports/repositories"
	"github.com/velotrack/velotrack_backend/internal/models"
	"github.com/velotrack/velotrack_backend/internal/utils/mapping"
)

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(db *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: db}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

const fullUserSelectQuery = `
SELECT
	user_id, role, name, username, email, password_hash, phone,
	bank_name, bank_account_number, bank_account_holder, is_active,
	created_at, created_by, last_updated_at, last_updated_by
FROM users
`

func (r *PgxUserRepository) findOne(ctx context.Context, filterQuery string, args ...any) (*domain.User, error) {
	rows, err := r.conn(ctx).Query(ctx, fullUserSelectQuery+filterQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	modelUser, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.User])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	domainUser := mapping.ToDomainUser(modelUser)
	return &domainUser, nil
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
        INSERT INTO users (
            user_id, role, name, username, email, password_hash, phone,
            bank_name, bank_account_number, bank_account_holder, is_active,
            created_at, created_by, last_updated_at, last_updated_by
        )
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
    `
	_, err := r.conn(ctx).Exec(ctx, query,
		m.UserID, m.Role, m.Name, m.Username, m.Email, m.PasswordHash, m.Phone,
		m.BankName, m.BankAccountNumber, m.BankAccountHolder, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err, "") {
			return fmt.Errorf("user %s: %w", user.Username, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findOne(ctx, "WHERE user_id = $1;", userID)
}

func (r *PgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, "WHERE username = $1;", username)
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, "WHERE lower(email) = lower($1);", email)
}

func (r *PgxUserRepository) FindOwner(ctx context.Context) (*domain.User, error) {
	return r.findOne(ctx, "WHERE role = $1;", string(domain.RoleOwner))
}

func (r *PgxUserRepository) ListUsersByRole(ctx context.Context, role domain.UserRole, activeOnly bool, limit int, offset int) ([]domain.User, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := fullUserSelectQuery + `
        WHERE role = $1 AND ($2 = false OR is_active)
        ORDER BY name ASC, user_id ASC
        LIMIT $3 OFFSET $4;
    `
	rows, err := r.conn(ctx).Query(ctx, query, string(role), activeOnly, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	modelUsers, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.User])
	if err != nil {
		return nil, fmt.Errorf("failed to collect user rows: %w", err)
	}
	return mapping.ToDomainUserSlice(modelUsers), nil
}

func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
        UPDATE users
        SET name = $1, email = $2, phone = $3, bank_name = $4, bank_account_number = $5,
            bank_account_holder = $6, last_updated_at = $7, last_updated_by = $8
        WHERE user_id = $9;
    `
	cmdTag, err := r.conn(ctx).Exec(ctx, query,
		m.Name, m.Email, m.Phone, m.BankName, m.BankAccountNumber,
		m.BankAccountHolder, m.LastUpdatedAt, m.LastUpdatedBy, m.UserID,
	)
	if err != nil {
		if isUniqueViolation(err, "") {
			return fmt.Errorf("user %s: %w", user.UserID, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to execute update user query: %w", err)
	}
	return expectOneRow(cmdTag, "user", user.UserID)
}

func (r *PgxUserRepository) UpdatePassword(ctx context.Context, userID string, passwordHash string, updatedAt time.Time, updatedBy string) error {
	query := `
        UPDATE users
        SET password_hash = $1, last_updated_at = $2, last_updated_by = $3
        WHERE user_id = $4;
    `
	cmdTag, err := r.conn(ctx).Exec(ctx, query, passwordHash, updatedAt, updatedBy, userID)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return expectOneRow(cmdTag, "user", userID)
}

func (r *PgxUserRepository) SetUserActive(ctx context.Context, userID string, active bool, updatedAt time.Time, updatedBy string) error {
	query := `
        UPDATE users
        SET is_active = $1, last_updated_at = $2, last_updated_by = $3
        WHERE user_id = $4;
    `
	cmdTag, err := r.conn(ctx).Exec(ctx, query, active, updatedAt, updatedBy, userID)
	if err != nil {
		return fmt.Errorf("failed to set user active flag: %w", err)
	}
	return expectOneRow(cmdTag, "user", userID)
}
