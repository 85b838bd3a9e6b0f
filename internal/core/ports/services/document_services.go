package services

import (
	"context"
	"io"

	"github.com/velotrack/velotrack_backend/internal/core/domain"
	"github.com/velotrack/velotrack_backend/internal/dto"
)

// DocumentSvcFacade generates numbered documents and their PDFs.
type DocumentSvcFacade interface {
	// GenerateDocument commits the numbered record, then renders and uploads the PDF. When rendering
	// or upload fails the committed document is returned together with an apperrors.ErrExternalService error.
	GenerateDocument(ctx context.Context, actor domain.Actor, req domain.GenerateDocumentRequest) (*domain.Document, error)
	GetDocument(ctx context.Context, documentID string) (*domain.Document, error)
	ListDocuments(ctx context.Context, filter domain.DocumentFilter) ([]domain.Document, error)
	// RenderDocument writes the PDF of an existing document to w.
	RenderDocument(ctx context.Context, documentID string, w io.Writer) error
}

// NotificationSvcFacade delivers WhatsApp messages.
type NotificationSvcFacade interface {
	// SendDocument sends an existing document and records the delivery outcome on it.
	SendDocument(ctx context.Context, actor domain.Actor, documentID string, req dto.SendDocumentRequest) (domain.SendResult, error)
	SendMessage(ctx context.Context, phone, message string) domain.SendResult
}
