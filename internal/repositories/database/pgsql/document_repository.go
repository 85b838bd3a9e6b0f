package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/velotrack/velotrack_backend/internal/apperrors"
	"github.com/velotrack/velotrack_backend/internal/core/domain"
	portsrepo "github.com/velotrack/velotrack_backend/internal/core/ports/repositories"
	"github.com/velotrack/velotrack_backend/internal/models"
	"github.com/velotrack/velotrack_backend/internal/utils/mapping"
)

type PgxDocumentRepository struct {
	BaseRepository
}

func newPgxDocumentRepository(pool *pgxpool.Pool) portsrepo.DocumentRepositoryFacade {
	return &PgxDocumentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.DocumentRepositoryFacade = (*PgxDocumentRepository)(nil)

const fullDocumentSelectQuery = `
SELECT
	document_id, number, type, recipient_name, recipient_phone, file_url,
	is_sent, sent_at, last_send_error, lead_id, project_id, mitra_id, amount,
	created_at, created_by
FROM documents
`

func (r *PgxDocumentRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	rows, err := r.conn(ctx).Query(ctx, fullDocumentSelectQuery+"WHERE document_id = $1;", documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query document %s: %w", documentID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Document])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan document %s: %w", documentID, err)
	}
	doc := mapping.ToDomainDocument(m)
	return &doc, nil
}

func (r *PgxDocumentRepository) ListDocuments(ctx context.Context, filter domain.DocumentFilter) ([]domain.Document, error) {
	var conditions []string
	var args []any
	if filter.Type != nil {
		args = append(args, string(*filter.Type))
		conditions = append(conditions, "type = $"+strconv.Itoa(len(args)))
	}
	if filter.ProjectID != nil {
		args = append(args, *filter.ProjectID)
		conditions = append(conditions, "project_id = $"+strconv.Itoa(len(args)))
	}
	if filter.LeadID != nil {
		args = append(args, *filter.LeadID)
		conditions = append(conditions, "lead_id = $"+strconv.Itoa(len(args)))
	}

	query := fullDocumentSelectQuery
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	args = append(args, filter.Limit, filter.Offset)
	query += fmt.Sprintf(" ORDER BY created_at DESC, document_id DESC LIMIT $%d OFFSET $%d;", len(args)-1, len(args))

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Document])
	if err != nil {
		return nil, fmt.Errorf("failed to collect document rows: %w", err)
	}
	return mapping.ToDomainDocumentSlice(ms), nil
}

// NextDocumentSequence takes a transaction-scoped advisory lock per document type, so concurrent
// generators of the same type are serialized until commit.
func (r *PgxDocumentRepository) NextDocumentSequence(ctx context.Context, docType domain.DocumentType, since time.Time) (int, error) {
	if _, ok := ctx.Value(txKey{}).(pgx.Tx); !ok {
		return 0, apperrors.NewAppError(500, "document numbering requires a transaction", nil)
	}
	db := r.conn(ctx)
	if _, err := db.Exec(ctx, "SELECT pg_advisory_xact_lock(hashtext('document:' || $1));", string(docType)); err != nil {
		return 0, fmt.Errorf("failed to lock document numbering: %w", err)
	}

	var count int
	query := `SELECT COUNT(*) FROM documents WHERE type = $1 AND created_at >= $2;`
	if err := db.QueryRow(ctx, query, string(docType), since).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}
	return count + 1, nil
}

func (r *PgxDocumentRepository) SaveDocument(ctx context.Context, doc domain.Document) error {
	m := mapping.ToModelDocument(doc)
	query := `
        INSERT INTO documents (
            document_id, number, type, recipient_name, recipient_phone, file_url,
            is_sent, sent_at, last_send_error, lead_id, project_id, mitra_id, amount,
            created_at, created_by
        )
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
    `
	_, err := r.conn(ctx).Exec(ctx, query,
		m.DocumentID, m.Number, m.Type, m.RecipientName, m.RecipientPhone, m.FileURL,
		m.IsSent, m.SentAt, m.LastSendError, m.LeadID, m.ProjectID, m.MitraID, m.Amount,
		m.CreatedAt, m.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err, "documents_number_key") {
			return fmt.Errorf("document number %s: %w", doc.Number, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save document: %w", err)
	}
	return nil
}

func (r *PgxDocumentRepository) UpdateDocumentFileURL(ctx context.Context, documentID string, fileURL string) error {
	cmdTag, err := r.conn(ctx).Exec(ctx, "UPDATE documents SET file_url = $1 WHERE document_id = $2;", fileURL, documentID)
	if err != nil {
		return fmt.Errorf("failed to update document file url: %w", err)
	}
	return expectOneRow(cmdTag, "document", documentID)
}

func (r *PgxDocumentRepository) MarkDocumentSent(ctx context.Context, documentID string, sentAt time.Time) error {
	query := `
        UPDATE documents
        SET is_sent = true, sent_at = $1, last_send_error = NULL
        WHERE document_id = $2;
    `
	cmdTag, err := r.conn(ctx).Exec(ctx, query, sentAt, documentID)
	if err != nil {
		return fmt.Errorf("failed to mark document sent: %w", err)
	}
	return expectOneRow(cmdTag, "document", documentID)
}

func (r *PgxDocumentRepository) MarkDocumentSendFailed(ctx context.Context, documentID string, reason string) error {
	cmdTag, err := r.conn(ctx).Exec(ctx, "UPDATE documents SET last_send_error = $1 WHERE document_id = $2;", reason, documentID)
	if err != nil {
		return fmt.Errorf("failed to record document send failure: %w", err)
	}
	return expectOneRow(cmdTag, "document", documentID)
}
