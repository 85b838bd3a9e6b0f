// Package whatsapp sends messages through a Fonnte-compatible HTTP API.
package whatsapp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/velotrack/velotrack_backend/internal/core/domain"
	"github.com/velotrack/velotrack_backend/internal/core/ports/gateways"
	"github.com/velotrack/velotrack_backend/internal/middleware"
	"github.com/velotrack/velotrack_backend/internal/utils"
)

// Client implements gateways.WhatsAppSender.
type Client struct {
	apiURL     string
	token      string
	httpClient *http.Client
}

var _ gateways.WhatsAppSender = (*Client)(nil)

func NewClient(apiURL, token string, timeout time.Duration) *Client {
	return &Client{
		apiURL:     apiURL,
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// apiResponse is the vendor reply. Status is false with a reason on rejection.
type apiResponse struct {
	Status bool   `json:"status"`
	Reason string `json:"reason"`
	Detail string `json:"detail"`
}

// Send posts one message. Transport and vendor failures come back as an unsuccessful result.
func (c *Client) Send(ctx context.Context, phone, message, fileURL, filename string) domain.SendResult {
	logger := middleware.GetLoggerFromCtx(ctx)

	if c.token == "" {
		return domain.SendResult{Success: false, Message: "whatsapp api token is not configured"}
	}
	target := utils.NormalizePhone(phone)
	if !utils.IsValidPhone(target) {
		return domain.SendResult{Success: false, Message: "invalid phone number"}
	}

	form := url.Values{}
	form.Set("target", target)
	form.Set("message", message)
	form.Set("countryCode", "62")
	if fileURL != "" {
		form.Set("url", fileURL)
		if filename != "" {
			form.Set("filename", filename)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, strings.NewReader(form.Encode()))
	if err != nil {
		return domain.SendResult{Success: false, Message: fmt.Sprintf("failed to build request: %v", err)}
	}
	req.Header.Set("Authorization", c.token)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn("WhatsApp request failed", slog.String("target", target), slog.String("error", err.Error()))
		return domain.SendResult{Success: false, Message: fmt.Sprintf("whatsapp request failed: %v", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return domain.SendResult{Success: false, Message: fmt.Sprintf("failed to read whatsapp response: %v", err)}
	}
	var parsed apiResponse
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Warn("WhatsApp API returned an error status", slog.Int("status", resp.StatusCode))
		msg := fmt.Sprintf("whatsapp api returned %s", resp.Status)
		if json.Unmarshal(body, &parsed) == nil && parsed.Reason != "" {
			msg += ": " + parsed.Reason
		}
		return domain.SendResult{Success: false, Message: msg}
	}

	if err := json.Unmarshal(body, &parsed); err != nil {
		return domain.SendResult{Success: false, Message: "unexpected whatsapp api response"}
	}
	if !parsed.Status {
		reason := parsed.Reason
		if reason == "" {
			reason = "message rejected by whatsapp api"
		}
		return domain.SendResult{Success: false, Message: reason}
	}

	logger.Info("WhatsApp message sent", slog.String("target", target))
	msg := parsed.Detail
	if msg == "" {
		msg = "message sent"
	}
	return domain.SendResult{Success: true, Message: msg}
}
