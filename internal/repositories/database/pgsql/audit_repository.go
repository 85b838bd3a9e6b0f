package pgsql

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/velotrack/velotrack_backend/internal/apperrors"
	"github.com/velotrack/velotrack_backend/internal/core/domain"
	portsrepo "github.com/velotrack/velotrack_backend/internal/core/ports/repositories"
	"github.com/velotrack/velotrack_backend/internal/models"
	"github.com/velotrack/velotrack_backend/internal/utils/mapping"
	"github.com/velotrack/velotrack_backend/internal/utils/pagination"
)

type PgxAuditRepository struct {
	BaseRepository
}

func newPgxAuditRepository(pool *pgxpool.Pool) portsrepo.AuditRepositoryFacade {
	return &PgxAuditRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AuditRepositoryFacade = (*PgxAuditRepository)(nil)

const fullAuditSelectQuery = `
SELECT audit_id, action, entity_type, entity_id, details, actor_id, created_at
FROM audit_logs
`

func (r *PgxAuditRepository) SaveAuditLog(ctx context.Context, entry domain.AuditLog) error {
	m := mapping.ToModelAuditLog(entry)
	query := `
        INSERT INTO audit_logs (audit_id, action, entity_type, entity_id, details, actor_id, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7);
    `
	_, err := r.conn(ctx).Exec(ctx, query, m.AuditID, m.Action, m.EntityType, m.EntityID, m.Details, m.ActorID, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save audit log: %w", err)
	}
	return nil
}

func (r *PgxAuditRepository) ListAuditLogsForEntity(ctx context.Context, entityType, entityID string) ([]domain.AuditLog, error) {
	query := fullAuditSelectQuery + `
        WHERE entity_type = $1 AND entity_id = $2
        ORDER BY created_at DESC, audit_id DESC;
    `
	rows, err := r.conn(ctx).Query(ctx, query, entityType, entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit logs: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.AuditLog])
	if err != nil {
		return nil, fmt.Errorf("failed to collect audit rows: %w", err)
	}
	return mapping.ToDomainAuditLogSlice(ms), nil
}

// ListAuditLogs pages through the log newest first. It fetches one extra row to know whether
// another page exists.
func (r *PgxAuditRepository) ListAuditLogs(ctx context.Context, filter domain.AuditFilter) ([]domain.AuditLog, *string, error) {
	var conditions []string
	var args []any
	if filter.EntityType != "" {
		args = append(args, filter.EntityType)
		conditions = append(conditions, "entity_type = $"+strconv.Itoa(len(args)))
	}
	if filter.EntityID != "" {
		args = append(args, filter.EntityID)
		conditions = append(conditions, "entity_id = $"+strconv.Itoa(len(args)))
	}
	if filter.NextToken != nil && *filter.NextToken != "" {
		lastCreatedAt, lastID, decodeErr := pagination.DecodeToken(*filter.NextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewValidationFailedError("invalid nextToken")
		}
		args = append(args, lastCreatedAt, lastID)
		conditions = append(conditions, fmt.Sprintf("(created_at, audit_id) < ($%d, $%d)", len(args)-1, len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	query := fullAuditSelectQuery
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	args = append(args, limit+1)
	query += " ORDER BY created_at DESC, audit_id DESC LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query audit logs: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.AuditLog])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to collect audit rows: %w", err)
	}

	var nextToken *string
	if len(ms) > limit {
		ms = ms[:limit]
		last := ms[len(ms)-1]
		token := pagination.EncodeToken(last.CreatedAt, last.AuditID)
		nextToken = &token
	}
	return mapping.ToDomainAuditLogSlice(ms), nextToken, nil
}
