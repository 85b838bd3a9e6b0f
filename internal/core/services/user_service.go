package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/velotrack/velotrack_backend/internal/apperrors"
	"github.com/velotrack/velotrack_backend/internal/core/domain"
	portsrepo "github.com/velotrack/velotrack_backend/internal/core/ports/repositories"
	portssvc "github.com/velotrack/velotrack_backend/internal/core/ports/services"
	"github.com/velotrack/velotrack_backend/internal/dto"
	"github.com/velotrack/velotrack_backend/internal/utils"
)

type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates the owner/partner account service.
func NewUserService(tx portsrepo.TransactionManager, userRepo portsrepo.UserRepositoryFacade, auditRepo portsrepo.AuditRepositoryFacade, opts ...ServiceOption) portssvc.UserSvcFacade {
	return &userService{
		BaseService: newBaseService(tx, auditRepo, opts),
		userRepo:    userRepo,
	}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// findActiveMitra is shared by every service that assigns work to a partner.
func findActiveMitra(ctx context.Context, repo portsrepo.UserReader, userID string) (*domain.User, error) {
	user, err := repo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("mitra " + userID + " not found")
		}
		return nil, fmt.Errorf("failed to load mitra %s: %w", userID, err)
	}
	if user.Role != domain.RoleMitra || !user.IsActive {
		return nil, apperrors.NewNotFoundError("mitra " + userID + " not found or inactive")
	}
	return user, nil
}

// authorLabel is the name printed next to notes.
func authorLabel(ctx context.Context, repo portsrepo.UserReader, actor domain.Actor) string {
	if user, err := repo.FindUserByID(ctx, actor.UserID); err == nil && user != nil {
		return user.Name
	}
	return string(actor.Role)
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("user " + userID + " not found")
		}
		return nil, fmt.Errorf("failed to get user by ID in service: %w", err)
	}
	return user, nil
}

func (s *userService) GetOwner(ctx context.Context) (*domain.User, error) {
	owner, err := s.userRepo.FindOwner(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("owner account has not been bootstrapped")
		}
		return nil, fmt.Errorf("failed to find owner: %w", err)
	}
	return owner, nil
}

func (s *userService) GetActiveMitra(ctx context.Context, userID string) (*domain.User, error) {
	return findActiveMitra(ctx, s.userRepo, userID)
}

func (s *userService) ListMitras(ctx context.Context, activeOnly bool, limit, offset int) ([]domain.User, error) {
	users, err := s.userRepo.ListUsersByRole(ctx, domain.RoleMitra, activeOnly, clampLimit(limit), clampOffset(offset))
	if err != nil {
		s.LogError(ctx, err, "Failed to list mitras")
		return nil, fmt.Errorf("failed to list mitras: %w", err)
	}
	return users, nil
}

func (s *userService) EnsureOwner(ctx context.Context, username, password, name string) (*domain.User, error) {
	owner, err := s.userRepo.FindOwner(ctx)
	if err == nil {
		return owner, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up owner: %w", err)
	}

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apperrors.NewValidationFailedError("owner username and password are required to bootstrap the owner account")
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, apperrors.NewValidationFailedError(err.Error())
	}

	id := uuid.NewString()
	now := s.now()
	newOwner := domain.User{
		UserID:       id,
		Role:         domain.RoleOwner,
		Name:         strings.TrimSpace(name),
		Username:     username,
		PasswordHash: hash,
		IsActive:     true,
		AuditFields:  domain.NewAuditFields(id, now),
	}
	if newOwner.Name == "" {
		newOwner.Name = "Owner"
	}

	err = s.TxManager.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.userRepo.SaveUser(ctx, newOwner); err != nil {
			return err
		}
		return s.RecordAudit(ctx, domain.ActionOwnerBootstrapped, domain.EntityUser, id, "owner account "+username+" created", id)
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// another instance bootstrapped first
			s.LogInfo(ctx, "Owner created concurrently, re-reading")
			return s.GetOwner(ctx)
		}
		s.LogError(ctx, err, "Failed to bootstrap owner")
		return nil, fmt.Errorf("failed to bootstrap owner: %w", err)
	}

	s.LogInfo(ctx, "Owner account bootstrapped", slog.String("user_id", id), slog.String("username", username))
	return &newOwner, nil
}

func (s *userService) CreateMitra(ctx context.Context, actor domain.Actor, req dto.CreateMitraRequest) (*domain.User, error) {
	if err := s.RequireOwner(actor); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	username := strings.TrimSpace(req.Username)
	if name == "" || username == "" {
		return nil, apperrors.NewValidationFailedError("name and username are required")
	}
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.NewValidationFailedError(err.Error())
	}

	id := uuid.NewString()
	mitra := domain.User{
		UserID:            id,
		Role:              domain.RoleMitra,
		Name:              name,
		Username:          username,
		Email:             req.Email,
		PasswordHash:      hash,
		Phone:             utils.NormalizePhone(req.Phone),
		BankName:          req.BankName,
		BankAccountNumber: req.BankAccountNumber,
		BankAccountHolder: req.BankAccountHolder,
		IsActive:          true,
		AuditFields:       domain.NewAuditFields(actor.UserID, s.now()),
	}

	err = s.TxManager.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.userRepo.SaveUser(ctx, mitra); err != nil {
			return err
		}
		return s.RecordAudit(ctx, domain.ActionMitraCreated, domain.EntityUser, id, "mitra "+username+" created", actor.UserID)
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewConflictError("username or email is already in use")
		}
		s.LogError(ctx, err, "Failed to create mitra", slog.String("username", username))
		return nil, fmt.Errorf("failed to create mitra: %w", err)
	}
	return &mitra, nil
}

func (s *userService) findMitra(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role != domain.RoleMitra {
		return nil, apperrors.NewNotFoundError("mitra " + userID + " not found")
	}
	return user, nil
}

func (s *userService) UpdateMitra(ctx context.Context, actor domain.Actor, userID string, req dto.UpdateMitraRequest) (*domain.User, error) {
	if err := s.RequireOwner(actor); err != nil {
		return nil, err
	}
	mitra, err := s.findMitra(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.NewValidationFailedError("name cannot be empty")
		}
		mitra.Name = name
	}
	if req.Email != nil {
		mitra.Email = req.Email
		if *req.Email == "" {
			mitra.Email = nil
		}
	}
	if req.Phone != nil {
		mitra.Phone = utils.NormalizePhone(*req.Phone)
	}
	if req.BankName != nil {
		mitra.BankName = *req.BankName
	}
	if req.BankAccountNumber != nil {
		mitra.BankAccountNumber = *req.BankAccountNumber
	}
	if req.BankAccountHolder != nil {
		mitra.BankAccountHolder = *req.BankAccountHolder
	}
	mitra.Touch(actor.UserID, s.now())

	err = s.TxManager.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.userRepo.UpdateUser(ctx, *mitra); err != nil {
			return err
		}
		return s.RecordAudit(ctx, domain.ActionMitraUpdated, domain.EntityUser, userID, "mitra profile updated", actor.UserID)
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewConflictError("email is already in use")
		}
		return nil, fmt.Errorf("failed to update mitra %s: %w", userID, err)
	}
	return mitra, nil
}

func (s *userService) SetMitraActive(ctx context.Context, actor domain.Actor, userID string, active bool) (*domain.User, error) {
	if err := s.RequireOwner(actor); err != nil {
		return nil, err
	}
	mitra, err := s.findMitra(ctx, userID)
	if err != nil {
		return nil, err
	}
	action := domain.ActionMitraDeactivated
	if active {
		action = domain.ActionMitraActivated
	}
	now := s.now()

	err = s.TxManager.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.userRepo.SetUserActive(ctx, userID, active, now, actor.UserID); err != nil {
			return err
		}
		return s.RecordAudit(ctx, action, domain.EntityUser, userID, fmt.Sprintf("is_active %t -> %t", mitra.IsActive, active), actor.UserID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to change mitra %s active flag: %w", userID, err)
	}
	mitra.IsActive = active
	mitra.Touch(actor.UserID, now)
	return mitra, nil
}

func (s *userService) ChangePassword(ctx context.Context, actor domain.Actor, req dto.ChangePasswordRequest) error {
	user, err := s.GetUserByID(ctx, actor.UserID)
	if err != nil {
		return err
	}
	if !utils.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
		return apperrors.NewValidationFailedError("current password is incorrect")
	}
	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.NewValidationFailedError(err.Error())
	}

	return s.TxManager.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.userRepo.UpdatePassword(ctx, actor.UserID, hash, s.now(), actor.UserID); err != nil {
			return fmt.Errorf("failed to update password: %w", err)
		}
		return s.RecordAudit(ctx, domain.ActionPasswordChanged, domain.EntityUser, actor.UserID, "password changed", actor.UserID)
	})
}

func (s *userService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewUnauthorizedError("invalid username or password")
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user.PasswordHash == "" || !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.NewUnauthorizedError("invalid username or password")
	}
	if !user.IsActive {
		return nil, apperrors.NewUnauthorizedError("account is inactive")
	}
	return user, nil
}

func (s *userService) FindActiveUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewUnauthorizedError("no account is linked to " + email)
		}
		return nil, fmt.Errorf("failed to look up user by email: %w", err)
	}
	if !user.IsActive {
		return nil, apperrors.NewUnauthorizedError("account is inactive")
	}
	return user, nil
}
