package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/velotrack/velotrack_backend/internal/apperrors"
	"github.com/velotrack/velotrack_backend/internal/core/domain"
	"github.com/velotrack/velotrack_backend/internal/core/ports/gateways"
	portsrepo "github.com/velotrack/velotrack_backend/internal/core/ports/repositories"
	portssvc "github.com/velotrack/velotrack_backend/internal/core/ports/services"
	"github.com/velotrack/velotrack_backend/internal/dto"
	"github.com/velotrack/velotrack_backend/internal/utils"
)

type notificationService struct {
	BaseService
	documentRepo portsrepo.DocumentRepositoryFacade
	settingsRepo portsrepo.SettingsRepository
	sender       gateways.WhatsAppSender
}

// NewNotificationService creates the WhatsApp delivery service.
func NewNotificationService(
	tx portsrepo.TransactionManager,
	documentRepo portsrepo.DocumentRepositoryFacade,
	settingsRepo portsrepo.SettingsRepository,
	auditRepo portsrepo.AuditRepositoryFacade,
	sender gateways.WhatsAppSender,
	opts ...ServiceOption,
) portssvc.NotificationSvcFacade {
	return &notificationService{
		BaseService:  newBaseService(tx, auditRepo, opts),
		documentRepo: documentRepo,
		settingsRepo: settingsRepo,
		sender:       sender,
	}
}

var _ portssvc.NotificationSvcFacade = (*notificationService)(nil)

// DocumentMessage is the default WhatsApp text accompanying a document.
func DocumentMessage(doc domain.Document, companyName string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Halo %s,\n\n", doc.RecipientName)
	fmt.Fprintf(&b, "Berikut kami kirimkan %s nomor %s", strings.ToLower(doc.Type.Title()), doc.Number)
	if doc.Amount != nil && doc.Amount.IsPositive() {
		fmt.Fprintf(&b, " senilai %s", utils.FormatRupiah(*doc.Amount))
	}
	b.WriteString(".\n\nTerima kasih")
	if companyName != "" {
		fmt.Fprintf(&b, ",\n%s", companyName)
	}
	return b.String()
}

func (s *notificationService) SendDocument(ctx context.Context, actor domain.Actor, documentID string, req dto.SendDocumentRequest) (domain.SendResult, error) {
	if err := s.RequireOwner(actor); err != nil {
		return domain.SendResult{}, err
	}
	doc, err := s.documentRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		return domain.SendResult{}, documentLookupError(documentID, err)
	}
	if doc.FileURL == nil || *doc.FileURL == "" {
		return domain.SendResult{}, apperrors.NewInvalidStateError("document " + doc.Number + " has no generated file yet")
	}

	phone := req.Phone
	if phone == "" {
		phone = doc.RecipientPhone
	}
	if !utils.IsValidPhone(phone) {
		return domain.SendResult{}, apperrors.NewValidationFailedError("a valid recipient phone number is required")
	}
	phone = utils.NormalizePhone(phone)

	message := strings.TrimSpace(req.Message)
	if message == "" {
		company := ""
		if settings, err := s.settingsRepo.GetSettings(ctx); err == nil {
			company = settings.CompanyName
		}
		message = DocumentMessage(*doc, company)
	}

	result := s.sender.Send(ctx, phone, message, *doc.FileURL, doc.FileName())
	if !result.Success {
		s.GetLogger(ctx).Warn("WhatsApp delivery failed",
			slog.String("document_id", documentID),
			slog.String("reason", result.Message))
		if err := s.documentRepo.MarkDocumentSendFailed(ctx, documentID, result.Message); err != nil {
			s.LogError(ctx, err, "Failed to record send failure", slog.String("document_id", documentID))
		}
		return result, nil
	}

	err = s.TxManager.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.documentRepo.MarkDocumentSent(ctx, documentID, s.now()); err != nil {
			return err
		}
		return s.RecordAudit(ctx, domain.ActionDocumentSent, domain.EntityDocument, documentID,
			fmt.Sprintf("%s sent to %s", doc.Number, phone), actor.UserID)
	})
	if err != nil {
		return result, fmt.Errorf("message sent but delivery state of document %s was not saved: %w", documentID, err)
	}
	s.LogInfo(ctx, "Document sent", slog.String("document_id", documentID))
	return result, nil
}

func (s *notificationService) SendMessage(ctx context.Context, phone, message string) domain.SendResult {
	if !utils.IsValidPhone(phone) {
		return domain.SendResult{Success: false, Message: "invalid phone number"}
	}
	if strings.TrimSpace(message) == "" {
		return domain.SendResult{Success: false, Message: "message is empty"}
	}
	return s.sender.Send(ctx, utils.NormalizePhone(phone), message, "", "")
}

func documentLookupError(documentID string, err error) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return apperrors.NewNotFoundError("document " + documentID + " not found")
	}
	return fmt.Errorf("failed to load document %s: %w", documentID, err)
}
