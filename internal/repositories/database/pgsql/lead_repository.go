package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/SscSPs/builder_crm/internal/apperrors"
	"github.com/SscSPs/builder_crm/internal/core/domain"
	portsrepo "github.com/SscSPs/builder_crm/internal/core/ports/repositories"
	"github.com/SscSPs/builder_crm/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
)

type PgxLeadRepository struct {
	BaseRepository
}

var _ portsrepo.LeadRepositoryFacade = (*PgxLeadRepository)(nil)

const leadSelectQuery = `
SELECT
	l.lead_id, l.tenant_id, l.project_id, l.name, l.phone, l.budget, l.source, l.status, l.follow_up_date, l.notes,
	l.created_at, l.created_by, l.last_updated_at, l.last_updated_by
FROM leads l
`

func scanLead(row pgx.Row) (domain.Lead, error) {
	var (
		l      domain.Lead
		status string
	)
	err := row.Scan(
		&l.LeadID, &l.TenantID, &l.ProjectID, &l.Name, &l.Phone, &l.Budget, &l.Source, &status, &l.FollowUpDate, &l.Notes,
		&l.CreatedAt, &l.CreatedBy, &l.LastUpdatedAt, &l.LastUpdatedBy,
	)
	l.Status = domain.LeadStatus(status)
	if l.Notes == nil {
		l.Notes = []domain.LeadNote{}
	}
	return l, err
}

func getLeads(ctx context.Context, q Querier, filterQuery string, args ...any) ([]domain.Lead, error) {
	rows, err := q.Query(ctx, leadSelectQuery+filterQuery, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query leads", err)
	}
	leads, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Lead, error) {
		return scanLead(row)
	})
	if err != nil {
		return nil, apperrors.NewInternalError("failed to collect lead rows", err)
	}
	if leads == nil {
		leads = []domain.Lead{}
	}
	return leads, nil
}

func (r *PgxLeadRepository) SaveLead(ctx context.Context, lead domain.Lead) error {
	notes := lead.Notes
	if notes == nil {
		notes = []domain.LeadNote{}
	}
	query := `
		INSERT INTO leads (
			lead_id, tenant_id, project_id, name, phone, budget, source, status, follow_up_date, notes,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10::jsonb, $11, $12, $13, $14);
	`
	_, err := r.conn(ctx).Exec(ctx, query,
		lead.LeadID,
		lead.TenantID,
		lead.ProjectID,
		lead.Name,
		lead.Phone,
		lead.Budget,
		lead.Source,
		string(lead.Status),
		lead.FollowUpDate,
		notes,
		lead.CreatedAt,
		lead.CreatedBy,
		lead.LastUpdatedAt,
		lead.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflictError("lead " + lead.LeadID + " already exists")
		}
		return apperrors.NewInternalError("failed to insert lead", err)
	}
	return nil
}

func (r *PgxLeadRepository) FindLeadByID(ctx context.Context, tenantID, leadID string) (*domain.Lead, error) {
	lead, err := scanLead(r.conn(ctx).QueryRow(ctx, leadSelectQuery+`WHERE l.tenant_id = $1 AND l.lead_id = $2;`, tenantID, leadID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("lead not found")
		}
		return nil, apperrors.NewInternalError("failed to query lead", err)
	}
	return &lead, nil
}

// ListLeads pages newest first on (created_at, lead_id). One extra row is
// fetched to decide whether a next token is needed.
func (r *PgxLeadRepository) ListLeads(ctx context.Context, tenantID string, limit int, nextToken *string) ([]domain.Lead, *string, error) {
	var (
		leads []domain.Lead
		err   error
	)
	if nextToken != nil && *nextToken != "" {
		cursorAt, cursorID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewValidationFailedError(decodeErr.Error())
		}
		leads, err = getLeads(ctx, r.conn(ctx),
			`WHERE l.tenant_id = $1 AND (l.created_at, l.lead_id) < ($2, $3) ORDER BY l.created_at DESC, l.lead_id DESC LIMIT $4;`,
			tenantID, cursorAt, cursorID, limit+1)
	} else {
		leads, err = getLeads(ctx, r.conn(ctx),
			`WHERE l.tenant_id = $1 ORDER BY l.created_at DESC, l.lead_id DESC LIMIT $2;`,
			tenantID, limit+1)
	}
	if err != nil {
		return nil, nil, err
	}

	var next *string
	if len(leads) > limit {
		leads = leads[:limit]
		last := leads[len(leads)-1]
		token := pagination.EncodeToken(last.CreatedAt, last.LeadID)
		next = &token
	}
	return leads, next, nil
}

func (r *PgxLeadRepository) ListFollowupCandidates(ctx context.Context, tenantID string, until time.Time) ([]domain.Lead, error) {
	return getLeads(ctx, r.conn(ctx),
		`WHERE l.tenant_id = $1 AND l.follow_up_date IS NOT NULL AND l.follow_up_date <= $2 AND l.status <> 'Lost' ORDER BY l.follow_up_date, l.created_at, l.lead_id;`,
		tenantID, until)
}

func (r *PgxLeadRepository) UpdateLeadStatus(ctx context.Context, tenantID, leadID string, status domain.LeadStatus, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE leads SET status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE tenant_id = $1 AND lead_id = $2;
	`
	return r.updateLead(ctx, "failed to update lead status", query, tenantID, leadID, string(status), updatedAt, updatedBy)
}

func (r *PgxLeadRepository) UpdateLeadFollowUp(ctx context.Context, tenantID, leadID string, followUpDate *time.Time, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE leads SET follow_up_date = $3, last_updated_at = $4, last_updated_by = $5
		WHERE tenant_id = $1 AND lead_id = $2;
	`
	return r.updateLead(ctx, "failed to update lead follow-up date", query, tenantID, leadID, followUpDate, updatedAt, updatedBy)
}

// AppendLeadNote appends in a single statement so concurrent notes are never lost.
func (r *PgxLeadRepository) AppendLeadNote(ctx context.Context, tenantID, leadID string, note domain.LeadNote, updatedBy string) error {
	query := `
		UPDATE leads SET notes = notes || $3::jsonb, last_updated_at = $4, last_updated_by = $5
		WHERE tenant_id = $1 AND lead_id = $2;
	`
	return r.updateLead(ctx, "failed to append lead note", query, tenantID, leadID, []domain.LeadNote{note}, note.Date, updatedBy)
}

func (r *PgxLeadRepository) updateLead(ctx context.Context, failure, query string, args ...any) error {
	tag, err := r.conn(ctx).Exec(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError(failure, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("lead not found")
	}
	return nil
}
