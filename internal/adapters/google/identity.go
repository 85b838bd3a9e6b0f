// Package google resolves Google sign-ins through the OAuth code flow or a client-side ID token.
package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/velotrack/velotrack_backend/internal/core/domain"
	"github.com/velotrack/velotrack_backend/internal/core/ports/gateways"
	"github.com/velotrack/velotrack_backend/internal/platform/config"
	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

const userInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// IdentityProvider implements gateways.GoogleIdentityProvider.
type IdentityProvider struct {
	clientID     string
	oauth2Config *oauth2.Config
	userInfoURL  string
}

var _ gateways.GoogleIdentityProvider = (*IdentityProvider)(nil)

// NewIdentityProvider returns nil when no client id is configured.
func NewIdentityProvider(cfg *config.Config) *IdentityProvider {
	if cfg.GoogleClientID == "" {
		return nil
	}
	return &IdentityProvider{
		clientID: cfg.GoogleClientID,
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
			Endpoint:     googleoauth.Endpoint,
		},
		userInfoURL: userInfoURL,
	}
}

// ExchangeCode trades the authorization code for a token and fetches the profile with it.
func (p *IdentityProvider) ExchangeCode(ctx context.Context, code string) (*domain.GoogleUserInfo, error) {
	if code == "" {
		return nil, errors.New("authorization code is empty")
	}
	token, err := p.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange oauth code for token: %w", err)
	}

	client := p.oauth2Config.Client(ctx, token)
	resp, err := client.Get(p.userInfoURL)
	if err != nil {
		return nil, fmt.Errorf("failed to get user info from google: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google api returned non-200 status for userinfo: %s", resp.Status)
	}

	var userInfo domain.GoogleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		return nil, fmt.Errorf("failed to decode user info from google: %w", err)
	}
	return &userInfo, nil
}

// VerifyIDToken validates the token audience against the configured client id.
func (p *IdentityProvider) VerifyIDToken(ctx context.Context, rawToken string) (*domain.GoogleUserInfo, error) {
	payload, err := idtoken.Validate(ctx, rawToken, p.clientID)
	if err != nil {
		return nil, fmt.Errorf("google ID token validation failed: %w", err)
	}
	return payloadToUserInfo(payload), nil
}

func payloadToUserInfo(payload *idtoken.Payload) *domain.GoogleUserInfo {
	info := &domain.GoogleUserInfo{ID: payload.Subject}
	if v, ok := payload.Claims["email"].(string); ok {
		info.Email = v
	}
	if v, ok := payload.Claims["email_verified"].(bool); ok {
		info.VerifiedEmail = v
	}
	if v, ok := payload.Claims["name"].(string); ok {
		info.Name = v
	}
	if v, ok := payload.Claims["picture"].(string); ok {
		info.Picture = v
	}
	return info
}
