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

type PgxLeadRepository struct {
	BaseRepository
}

func newPgxLeadRepository(pool *pgxpool.Pool) portsrepo.LeadRepositoryFacade {
	return &PgxLeadRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LeadRepositoryFacade = (*PgxLeadRepository)(nil)

const fullLeadSelectQuery = `
SELECT
	l.lead_id, l.name, l.contact, l.source, l.status, l.mitra_id,
	l.created_at, l.created_by, l.last_updated_at, l.last_updated_by
FROM leads l
`

func (r *PgxLeadRepository) findLead(ctx context.Context, query string, leadID string) (*domain.Lead, error) {
	rows, err := r.conn(ctx).Query(ctx, query, leadID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lead %s: %w", leadID, err)
	}
	modelLead, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Lead])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan lead %s: %w", leadID, err)
	}
	lead := mapping.ToDomainLead(modelLead)
	return &lead, nil
}

func (r *PgxLeadRepository) FindLeadByID(ctx context.Context, leadID string) (*domain.Lead, error) {
	return r.findLead(ctx, fullLeadSelectQuery+"WHERE l.lead_id = $1;", leadID)
}

func (r *PgxLeadRepository) FindLeadByIDForUpdate(ctx context.Context, leadID string) (*domain.Lead, error) {
	return r.findLead(ctx, fullLeadSelectQuery+"WHERE l.lead_id = $1 FOR UPDATE;", leadID)
}

func (r *PgxLeadRepository) ListLeads(ctx context.Context, filter domain.LeadFilter) ([]domain.Lead, error) {
	var conditions []string
	var args []any

	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		conditions = append(conditions, "l.status = $"+strconv.Itoa(len(args)))
	}
	if filter.MitraID != nil {
		args = append(args, *filter.MitraID)
		conditions = append(conditions, "l.mitra_id = $"+strconv.Itoa(len(args)))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		args = append(args, "%"+search+"%")
		p := "$" + strconv.Itoa(len(args))
		conditions = append(conditions, "(l.name ILIKE "+p+" OR l.contact ILIKE "+p+")")
	}

	query := fullLeadSelectQuery
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	args = append(args, filter.Limit, filter.Offset)
	query += fmt.Sprintf(" ORDER BY l.created_at DESC, l.lead_id DESC LIMIT $%d OFFSET $%d;", len(args)-1, len(args))

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query leads: %w", err)
	}
	modelLeads, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Lead])
	if err != nil {
		return nil, fmt.Errorf("failed to collect lead rows: %w", err)
	}
	return mapping.ToDomainLeadSlice(modelLeads), nil
}

func (r *PgxLeadRepository) ListLeadNotes(ctx context.Context, leadID string) ([]domain.Note, error) {
	query := `
        SELECT note_id, lead_id AS parent_id, content, author, created_at
        FROM lead_notes
        WHERE lead_id = $1
        ORDER BY created_at DESC, note_id DESC;
    `
	rows, err := r.conn(ctx).Query(ctx, query, leadID)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes of lead %s: %w", leadID, err)
	}
	notes, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Note])
	if err != nil {
		return nil, fmt.Errorf("failed to collect lead notes: %w", err)
	}
	return mapping.ToDomainNoteSlice(notes), nil
}

func (r *PgxLeadRepository) SaveLead(ctx context.Context, lead domain.Lead) error {
	m := mapping.ToModelLead(lead)
	query := `
        INSERT INTO leads (
            lead_id, name, contact, source, status, mitra_id,
            created_at, created_by, last_updated_at, last_updated_by
        )
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
    `
	_, err := r.conn(ctx).Exec(ctx, query,
		m.LeadID, m.Name, m.Contact, m.Source, m.Status, m.MitraID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save lead: %w", err)
	}
	return nil
}

func (r *PgxLeadRepository) UpdateLead(ctx context.Context, lead domain.Lead) error {
	m := mapping.ToModelLead(lead)
	query := `
        UPDATE leads
        SET name = $1, contact = $2, source = $3, mitra_id = $4, last_updated_at = $5, last_updated_by = $6
        WHERE lead_id = $7;
    `
	cmdTag, err := r.conn(ctx).Exec(ctx, query,
		m.Name, m.Contact, m.Source, m.MitraID, m.LastUpdatedAt, m.LastUpdatedBy, m.LeadID,
	)
	if err != nil {
		return fmt.Errorf("failed to update lead: %w", err)
	}
	return expectOneRow(cmdTag, "lead", lead.LeadID)
}

func (r *PgxLeadRepository) UpdateLeadStatus(ctx context.Context, leadID string, status domain.LeadStatus, updatedAt time.Time, updatedBy string) error {
	query := `
        UPDATE leads
        SET status = $1, last_updated_at = $2, last_updated_by = $3
        WHERE lead_id = $4;
    `
	cmdTag, err := r.conn(ctx).Exec(ctx, query, string(status), updatedAt, updatedBy, leadID)
	if err != nil {
		return fmt.Errorf("failed to update lead status: %w", err)
	}
	return expectOneRow(cmdTag, "lead", leadID)
}

func (r *PgxLeadRepository) DeleteLead(ctx context.Context, leadID string) error {
	cmdTag, err := r.conn(ctx).Exec(ctx, "DELETE FROM leads WHERE lead_id = $1;", leadID)
	if err != nil {
		return fmt.Errorf("failed to delete lead: %w", err)
	}
	return expectOneRow(cmdTag, "lead", leadID)
}

func (r *PgxLeadRepository) SaveLeadNote(ctx context.Context, note domain.Note) error {
	m := mapping.ToModelNote(note)
	query := `
        INSERT INTO lead_notes (note_id, lead_id, content, author, created_at)
        VALUES ($1, $2, $3, $4, $5);
    `
	if _, err := r.conn(ctx).Exec(ctx, query, m.NoteID, m.ParentID, m.Content, m.Author, m.CreatedAt); err != nil {
		return fmt.Errorf("failed to save lead note: %w", err)
	}
	return nil
}

func (r *PgxLeadRepository) DeleteLeadNotes(ctx context.Context, leadID string) error {
	if _, err := r.conn(ctx).Exec(ctx, "DELETE FROM lead_notes WHERE lead_id = $1;", leadID); err != nil {
		return fmt.Errorf("failed to delete lead notes: %w", err)
	}
	return nil
}
