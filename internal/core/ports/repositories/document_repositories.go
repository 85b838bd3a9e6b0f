package repositories

import (
	"context"
	"time"

	"github.com/velotrack/velotrack_backend/internal/core/domain"
)

// DocumentReader defines read operations for documents.
type DocumentReader interface {
	FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error)
	ListDocuments(ctx context.Context, filter domain.DocumentFilter) ([]domain.Document, error)
}

// DocumentWriter defines write operations for documents.
type DocumentWriter interface {
	// NextDocumentSequence serializes numbering per type for the rest of the transaction and
	// returns count(type, created_at >= since) + 1. It must run inside TransactionManager.WithinTx.
	NextDocumentSequence(ctx context.Context, docType domain.DocumentType, since time.Time) (int, error)
	SaveDocument(ctx context.Context, doc domain.Document) error
	UpdateDocumentFileURL(ctx context.Context, documentID string, fileURL string) error
	MarkDocumentSent(ctx context.Context, documentID string, sentAt time.Time) error
	MarkDocumentSendFailed(ctx context.Context, documentID string, reason string) error
}

// DocumentRepositoryFacade combines all document-related repository interfaces
type DocumentRepositoryFacade interface {
	DocumentReader
	DocumentWriter
}
