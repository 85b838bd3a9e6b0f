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

type PgxProjectRepository struct {
	BaseRepository
}

func newPgxProjectRepository(pool *pgxpool.Pool) portsrepo.ProjectRepositoryFacade {
	return &PgxProjectRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ProjectRepositoryFacade = (*PgxProjectRepository)(nil)

const fullProjectSelectQuery = `
SELECT
	p.project_id, p.name, p.description, p.client_name, p.status, p.deadline,
	p.pic_id, p.lead_id, p.value,
	p.created_at, p.created_by, p.last_updated_at, p.last_updated_by
FROM projects p
`

// displayStatusExpr derives OVERDUE from the deadline. The placeholder is the current date.
const displayStatusExpr = `CASE
	WHEN p.status IN ('TODO', 'ON_PROGRESS', 'OVERDUE') AND p.deadline < %s::date THEN 'OVERDUE'
	WHEN p.status = 'OVERDUE' THEN 'ON_PROGRESS'
	ELSE p.status
END`

// partnerScopeExpr matches projects a partner is PIC of or brought in through a lead.
const partnerScopeExpr = `(p.pic_id = %[1]s OR EXISTS (
	SELECT 1 FROM leads l WHERE l.lead_id = p.lead_id AND l.mitra_id = %[1]s))`

func (r *PgxProjectRepository) findProject(ctx context.Context, filterQuery string, arg string) (*domain.Project, error) {
	rows, err := r.conn(ctx).Query(ctx, fullProjectSelectQuery+filterQuery, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query project: %w", err)
	}
	modelProject, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Project])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan project: %w", err)
	}
	project := mapping.ToDomainProject(modelProject)
	return &project, nil
}

func (r *PgxProjectRepository) FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	return r.findProject(ctx, "WHERE p.project_id = $1;", projectID)
}

func (r *PgxProjectRepository) FindProjectByIDForUpdate(ctx context.Context, projectID string) (*domain.Project, error) {
	return r.findProject(ctx, "WHERE p.project_id = $1 FOR UPDATE;", projectID)
}

func (r *PgxProjectRepository) FindProjectByLeadID(ctx context.Context, leadID string) (*domain.Project, error) {
	return r.findProject(ctx, "WHERE p.lead_id = $1;", leadID)
}

func (r *PgxProjectRepository) ListProjects(ctx context.Context, filter domain.ProjectFilter) ([]domain.Project, error) {
	var conditions []string
	var args []any
	next := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.Status != nil {
		today := next(domain.StartOfDay(filter.Today))
		status := next(string(*filter.Status))
		conditions = append(conditions, fmt.Sprintf(displayStatusExpr, today)+" = "+status)
	}
	if filter.PicID != nil {
		conditions = append(conditions, "p.pic_id = "+next(*filter.PicID))
	}
	if filter.ScopeUserID != nil {
		conditions = append(conditions, fmt.Sprintf(partnerScopeExpr, next(*filter.ScopeUserID)))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		p := next("%" + search + "%")
		conditions = append(conditions, "(p.name ILIKE "+p+" OR p.client_name ILIKE "+p+")")
	}

	query := fullProjectSelectQuery
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY p.deadline ASC, p.created_at DESC LIMIT " + next(filter.Limit) + " OFFSET " + next(filter.Offset) + ";"

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	modelProjects, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Project])
	if err != nil {
		return nil, fmt.Errorf("failed to collect project rows: %w", err)
	}
	return mapping.ToDomainProjectSlice(modelProjects), nil
}

func (r *PgxProjectRepository) ListProjectNotes(ctx context.Context, projectID string) ([]domain.Note, error) {
	query := `
        SELECT note_id, project_id AS parent_id, content, author, created_at
        FROM project_notes
        WHERE project_id = $1
        ORDER BY created_at DESC, note_id DESC;
    `
	rows, err := r.conn(ctx).Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes of project %s: %w", projectID, err)
	}
	notes, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Note])
	if err != nil {
		return nil, fmt.Errorf("failed to collect project notes: %w", err)
	}
	return mapping.ToDomainNoteSlice(notes), nil
}

func (r *PgxProjectRepository) SaveProject(ctx context.Context, project domain.Project) error {
	m := mapping.ToModelProject(project)
	query := `
        INSERT INTO projects (
            project_id, name, description, client_name, status, deadline, pic_id, lead_id, value,
            created_at, created_by, last_updated_at, last_updated_by
        )
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
    `
	_, err := r.conn(ctx).Exec(ctx, query,
		m.ProjectID, m.Name, m.Description, m.ClientName, m.Status, m.Deadline, m.PicID, m.LeadID, m.Value,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err, "projects_lead_id_key") {
			return fmt.Errorf("project for lead: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save project: %w", err)
	}
	return nil
}

func (r *PgxProjectRepository) UpdateProjectStatus(ctx context.Context, projectID string, status domain.ProjectStatus, updatedAt time.Time, updatedBy string) error {
	query := `
        UPDATE projects
        SET status = $1, last_updated_at = $2, last_updated_by = $3
        WHERE project_id = $4;
    `
	cmdTag, err := r.conn(ctx).Exec(ctx, query, string(status), updatedAt, updatedBy, projectID)
	if err != nil {
		return fmt.Errorf("failed to update project status: %w", err)
	}
	return expectOneRow(cmdTag, "project", projectID)
}

func (r *PgxProjectRepository) UpdateProjectPic(ctx context.Context, projectID string, picID *string, updatedAt time.Time, updatedBy string) error {
	query := `
        UPDATE projects
        SET pic_id = $1, last_updated_at = $2, last_updated_by = $3
        WHERE project_id = $4;
    `
	cmdTag, err := r.conn(ctx).Exec(ctx, query, picID, updatedAt, updatedBy, projectID)
	if err != nil {
		return fmt.Errorf("failed to update project pic: %w", err)
	}
	return expectOneRow(cmdTag, "project", projectID)
}

func (r *PgxProjectRepository) UpdateProjectDeadline(ctx context.Context, projectID string, deadline time.Time, updatedAt time.Time, updatedBy string) error {
	query := `
        UPDATE projects
        SET deadline = $1, last_updated_at = $2, last_updated_by = $3
        WHERE project_id = $4;
    `
	cmdTag, err := r.conn(ctx).Exec(ctx, query, deadline, updatedAt, updatedBy, projectID)
	if err != nil {
		return fmt.Errorf("failed to update project deadline: %w", err)
	}
	return expectOneRow(cmdTag, "project", projectID)
}

func (r *PgxProjectRepository) SaveProjectNote(ctx context.Context, note domain.Note) error {
	m := mapping.ToModelNote(note)
	query := `
        INSERT INTO project_notes (note_id, project_id, content, author, created_at)
        VALUES ($1, $2, $3, $4, $5);
    `
	if _, err := r.conn(ctx).Exec(ctx, query, m.NoteID, m.ParentID, m.Content, m.Author, m.CreatedAt); err != nil {
		return fmt.Errorf("failed to save project note: %w", err)
	}
	return nil
}
