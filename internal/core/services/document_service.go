package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/velotrack/velotrack_backend/internal/apperrors"
	"github.com/velotrack/velotrack_backend/internal/core/domain"
	"github.com/velotrack/velotrack_backend/internal/core/ports/gateways"
	portsrepo "github.com/velotrack/velotrack_backend/internal/core/ports/repositories"
	portssvc "github.com/velotrack/velotrack_backend/internal/core/ports/services"
	"github.com/velotrack/velotrack_backend/internal/utils"
)

const pdfContentType = "application/pdf"

type documentService struct {
	BaseService
	documentRepo portsrepo.DocumentRepositoryFacade
	leadRepo     portsrepo.LeadReader
	projectRepo  portsrepo.ProjectReader
	userRepo     portsrepo.UserReader
	reportRepo   portsrepo.ReportingRepository
	settingsRepo portsrepo.SettingsRepository
	renderer     gateways.DocumentRenderer
	store        gateways.FileStore
}

// DocumentDeps groups the collaborators of the document service.
type DocumentDeps struct {
	Documents portsrepo.DocumentRepositoryFacade
	Leads     portsrepo.LeadReader
	Projects  portsrepo.ProjectReader
	Users     portsrepo.UserReader
	Reports   portsrepo.ReportingRepository
	Settings  portsrepo.SettingsRepository
	Renderer  gateways.DocumentRenderer
	Store     gateways.FileStore
}

// NewDocumentService creates the document generator.
func NewDocumentService(tx portsrepo.TransactionManager, auditRepo portsrepo.AuditRepositoryFacade, deps DocumentDeps, opts ...ServiceOption) portssvc.DocumentSvcFacade {
	return &documentService{
		BaseService:  newBaseService(tx, auditRepo, opts),
		documentRepo: deps.Documents,
		leadRepo:     deps.Leads,
		projectRepo:  deps.Projects,
		userRepo:     deps.Users,
		reportRepo:   deps.Reports,
		settingsRepo: deps.Settings,
		renderer:     deps.Renderer,
		store:        deps.Store,
	}
}

var _ portssvc.DocumentSvcFacade = (*documentService)(nil)

func (s *documentService) GenerateDocument(ctx context.Context, actor domain.Actor, req domain.GenerateDocumentRequest) (*domain.Document, error) {
	if err := s.RequireOwner(actor); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	doc := domain.Document{
		DocumentID:     uuid.NewString(),
		Type:           req.Type,
		RecipientName:  strings.TrimSpace(req.RecipientName),
		RecipientPhone: utils.NormalizePhone(req.RecipientPhone),
		LeadID:         req.LeadID,
		ProjectID:      req.ProjectID,
		MitraID:        req.MitraID,
		Amount:         req.Amount,
		CreatedAt:      now,
		CreatedBy:      actor.UserID,
	}

	payload, err := s.resolvePayload(ctx, doc)
	if err != nil {
		return nil, err
	}
	if err := s.applyDefaults(ctx, &payload); err != nil {
		return nil, err
	}
	doc = payload.Document

	yearStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	err = s.TxManager.WithinTx(ctx, func(ctx context.Context) error {
		seq, err := s.documentRepo.NextDocumentSequence(ctx, doc.Type, yearStart)
		if err != nil {
			return err
		}
		doc.Number = domain.FormatDocumentNumber(doc.Type, now.Year(), seq)
		if err := s.documentRepo.SaveDocument(ctx, doc); err != nil {
			return err
		}
		return s.RecordAudit(ctx, domain.ActionDocumentCreated, domain.EntityDocument, doc.DocumentID,
			fmt.Sprintf("%s %s for %s", doc.Type, doc.Number, doc.RecipientName), actor.UserID)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create document", slog.String("type", string(doc.Type)))
		return nil, fmt.Errorf("failed to create document: %w", err)
	}
	s.LogInfo(ctx, "Document created", slog.String("document_id", doc.DocumentID), slog.String("number", doc.Number))

	payload.Document = doc
	url, err := s.publish(ctx, payload)
	if err != nil {
		s.LogError(ctx, err, "Failed to publish document PDF", slog.String("document_id", doc.DocumentID))
		return &doc, err
	}
	doc.FileURL = &url
	return &doc, nil
}

// publish renders the PDF, uploads it and stores the resulting URL on the document.
func (s *documentService) publish(ctx context.Context, payload domain.DocumentPayload) (string, error) {
	var buf bytes.Buffer
	if err := s.renderer.Render(&buf, payload); err != nil {
		return "", apperrors.NewExternalServiceError("failed to render document", err)
	}

	// Public object URLs must not be guessable.
	doc := payload.Document
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	key := fmt.Sprintf("documents/%d/%s-%s.pdf", doc.CreatedAt.Year(), strings.TrimSuffix(doc.FileName(), ".pdf"), suffix)

	url, err := s.store.Put(ctx, key, pdfContentType, &buf)
	if err != nil {
		return "", apperrors.NewExternalServiceError("failed to upload document", err)
	}
	if err := s.documentRepo.UpdateDocumentFileURL(ctx, doc.DocumentID, url); err != nil {
		return "", fmt.Errorf("failed to store file url of document %s: %w", doc.DocumentID, err)
	}
	return url, nil
}

// resolvePayload loads the subjects referenced by the document and the company settings.
func (s *documentService) resolvePayload(ctx context.Context, doc domain.Document) (domain.DocumentPayload, error) {
	payload := domain.DocumentPayload{Document: doc, IssuedAt: doc.CreatedAt}

	settings, err := s.settingsRepo.GetSettings(ctx)
	if err != nil {
		return payload, fmt.Errorf("failed to load settings: %w", err)
	}
	payload.Settings = *settings

	if doc.ProjectID != nil {
		p, err := s.projectRepo.FindProjectByID(ctx, *doc.ProjectID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return payload, apperrors.NewNotFoundError("project " + *doc.ProjectID + " not found")
			}
			return payload, fmt.Errorf("failed to load project %s: %w", *doc.ProjectID, err)
		}
		payload.Project = p
	}

	leadID := doc.LeadID
	if leadID == nil && payload.Project != nil {
		leadID = payload.Project.LeadID
	}
	if leadID != nil {
		lead, err := s.leadRepo.FindLeadByID(ctx, *leadID)
		switch {
		case err == nil:
			payload.Lead = lead
		case errors.Is(err, apperrors.ErrNotFound) && doc.LeadID != nil:
			return payload, apperrors.NewNotFoundError("lead " + *leadID + " not found")
		case !errors.Is(err, apperrors.ErrNotFound):
			return payload, fmt.Errorf("failed to load lead %s: %w", *leadID, err)
		}
	}

	if doc.MitraID != nil {
		mitra, err := s.userRepo.FindUserByID(ctx, *doc.MitraID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return payload, apperrors.NewNotFoundError("mitra " + *doc.MitraID + " not found")
			}
			return payload, fmt.Errorf("failed to load mitra %s: %w", *doc.MitraID, err)
		}
		if mitra.Role != domain.RoleMitra {
			return payload, apperrors.NewValidationFailedError("user " + *doc.MitraID + " is not a mitra")
		}
		payload.Mitra = mitra
	}
	return payload, nil
}

// applyDefaults fills recipient and amount from the subjects when the caller left them out.
func (s *documentService) applyDefaults(ctx context.Context, payload *domain.DocumentPayload) error {
	doc := &payload.Document

	if doc.RecipientName == "" {
		switch {
		case doc.Type == domain.DocAgreement && payload.Mitra != nil:
			doc.RecipientName = payload.Mitra.Name
		case payload.Project != nil:
			doc.RecipientName = payload.Project.ClientName
		case payload.Lead != nil:
			doc.RecipientName = payload.Lead.Name
		}
	}
	if doc.RecipientPhone == "" {
		switch {
		case doc.Type == domain.DocAgreement && payload.Mitra != nil:
			doc.RecipientPhone = utils.NormalizePhone(payload.Mitra.Phone)
		case payload.Lead != nil && utils.IsValidPhone(payload.Lead.Contact):
			doc.RecipientPhone = utils.NormalizePhone(payload.Lead.Contact)
		}
	}
	if doc.RecipientName == "" {
		return apperrors.NewValidationFailedError("recipient name is required")
	}

	if doc.Amount != nil || payload.Project == nil {
		return nil
	}
	p := payload.Project
	switch doc.Type {
	case domain.DocProposal:
		if p.Value.IsPositive() {
			v := p.Value
			doc.Amount = &v
		}
	case domain.DocInvoiceDP:
		v := p.Value.Mul(payload.Settings.DPPercentage).Div(decimal.NewFromInt(100)).Round(0)
		doc.Amount = &v
	case domain.DocInvoiceFinal:
		totals, err := s.reportRepo.ListProjectFinanceTotals(ctx, &p.ProjectID)
		if err != nil {
			return fmt.Errorf("failed to load finance of project %s: %w", p.ProjectID, err)
		}
		paid := decimal.Zero
		if len(totals) > 0 {
			paid = totals[0].Income
		}
		v := decimal.Max(p.Value.Sub(paid), decimal.Zero)
		doc.Amount = &v
	}
	return nil
}

func (s *documentService) GetDocument(ctx context.Context, documentID string) (*domain.Document, error) {
	doc, err := s.documentRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("document " + documentID + " not found")
		}
		return nil, fmt.Errorf("failed to load document %s: %w", documentID, err)
	}
	return doc, nil
}

func (s *documentService) ListDocuments(ctx context.Context, filter domain.DocumentFilter) ([]domain.Document, error) {
	filter.Limit = clampLimit(filter.Limit)
	filter.Offset = clampOffset(filter.Offset)
	docs, err := s.documentRepo.ListDocuments(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list documents")
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return docs, nil
}

func (s *documentService) RenderDocument(ctx context.Context, documentID string, w io.Writer) error {
	doc, err := s.GetDocument(ctx, documentID)
	if err != nil {
		return err
	}
	payload, err := s.resolvePayload(ctx, *doc)
	if err != nil {
		return err
	}
	if err := s.renderer.Render(w, payload); err != nil {
		return apperrors.NewExternalServiceError("failed to render document", err)
	}
	return nil
}
