// Package gateways declares the outbound integrations the services depend on.
package gateways

import (
	"context"
	"io"

	"github.com/velotrack/velotrack_backend/internal/core/domain"
)

// DocumentRenderer lays out a document as PDF.
type DocumentRenderer interface {
	Render(w io.Writer, payload domain.DocumentPayload) error
}

// FileStore persists generated files and returns their public URL.
type FileStore interface {
	Put(ctx context.Context, key string, contentType string, r io.Reader) (string, error)
}

// WhatsAppSender delivers WhatsApp messages. Vendor failures are reported in the result,
// never as Go errors.
type WhatsAppSender interface {
	Send(ctx context.Context, phone, message, fileURL, filename string) domain.SendResult
}

// GoogleIdentityProvider resolves a Google sign-in into a verified profile.
type GoogleIdentityProvider interface {
	// ExchangeCode trades an authorization code for the user's profile.
	ExchangeCode(ctx context.Context, code string) (*domain.GoogleUserInfo, error)
	// VerifyIDToken validates a Google ID token issued for this client.
	VerifyIDToken(ctx context.Context, idToken string) (*domain.GoogleUserInfo, error)
}
