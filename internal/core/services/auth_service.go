package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/velotrack/velotrack_backend/internal/apperrors"
	"github.com/velotrack/velotrack_backend/internal/core/domain"
	"github.com/velotrack/velotrack_backend/internal/core/ports/gateways"
	portssvc "github.com/velotrack/velotrack_backend/internal/core/ports/services"
	"github.com/velotrack/velotrack_backend/internal/dto"
	"github.com/velotrack/velotrack_backend/internal/platform/config"
	"github.com/velotrack/velotrack_backend/internal/utils"
)

// tokenService issues HS256 access tokens carrying the user's role.
type tokenService struct {
	cfg *config.Config
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg}
}

// GenerateAccessToken creates a new JWT access token for the given user.
func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	return utils.GenerateJWT(user.UserID, string(user.Role), s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
}

type authService struct {
	BaseService
	users  portssvc.UserSvcFacade
	tokens portssvc.TokenSvcFacade
	google gateways.GoogleIdentityProvider
}

// NewAuthService wires password and Google sign-in. google may be nil when not configured.
func NewAuthService(users portssvc.UserSvcFacade, tokens portssvc.TokenSvcFacade, google gateways.GoogleIdentityProvider) portssvc.AuthSvcFacade {
	return &authService{users: users, tokens: tokens, google: google, BaseService: BaseService{Clock: time.Now}}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.users.AuthenticateUser(ctx, req.Username, req.Password)
	if err != nil {
		s.GetLogger(ctx).Warn("Login failed", slog.String("username", req.Username), slog.String("error", err.Error()))
		return nil, err
	}
	return s.issue(ctx, user)
}

func (s *authService) LoginWithGoogle(ctx context.Context, req dto.GoogleLoginRequest) (*dto.LoginResponse, error) {
	if s.google == nil {
		return nil, apperrors.NewExternalServiceError("google sign-in is not configured", nil)
	}

	var (
		info *domain.GoogleUserInfo
		err  error
	)
	if req.IDToken != "" {
		info, err = s.google.VerifyIDToken(ctx, req.IDToken)
	} else {
		info, err = s.google.ExchangeCode(ctx, req.Code)
	}
	if err != nil {
		s.LogError(ctx, err, "Google sign-in failed")
		return nil, apperrors.NewUnauthorizedError("google sign-in failed")
	}
	if !info.VerifiedEmail || info.Email == "" {
		return nil, apperrors.NewUnauthorizedError("google account email is not verified")
	}

	user, err := s.users.FindActiveUserByEmail(ctx, info.Email)
	if err != nil {
		return nil, err
	}
	return s.issue(ctx, user)
}

func (s *authService) issue(ctx context.Context, user *domain.User) (*dto.LoginResponse, error) {
	token, expiresAt, err := s.tokens.GenerateAccessToken(ctx, user)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign JWT token", slog.String("user_id", user.UserID))
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &dto.LoginResponse{Token: token, ExpiresAt: expiresAt, User: dto.ToUserResponse(user)}, nil
}
