package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/SscSPs/builder_crm/internal/apperrors"
	"github.com/SscSPs/builder_crm/internal/core/domain"
	portsrepo "github.com/SscSPs/builder_crm/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

type PgxUnitRepository struct {
	BaseRepository
}

var _ portsrepo.UnitRepositoryFacade = (*PgxUnitRepository)(nil)

const unitColumns = `
	u.unit_id, u.tenant_id, u.project_id, u.tower, u.floor, u.unit_number, u.type, u.area, u.base_price, u.status,
	u.created_at, u.created_by, u.last_updated_at, u.last_updated_by
`

const unitSelectQuery = `SELECT` + unitColumns + `FROM units u
`

func scanUnit(row pgx.Row) (domain.Unit, error) {
	var (
		u      domain.Unit
		status string
	)
	err := row.Scan(
		&u.UnitID, &u.TenantID, &u.ProjectID, &u.Tower, &u.Floor, &u.UnitNumber, &u.Type, &u.Area, &u.BasePrice, &status,
		&u.CreatedAt, &u.CreatedBy, &u.LastUpdatedAt, &u.LastUpdatedBy,
	)
	u.Status = domain.UnitStatus(status)
	return u, err
}

func getUnits(ctx context.Context, q Querier, filterQuery string, args ...any) ([]domain.Unit, error) {
	rows, err := q.Query(ctx, unitSelectQuery+filterQuery, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query units", err)
	}
	units, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Unit, error) {
		return scanUnit(row)
	})
	if err != nil {
		return nil, apperrors.NewInternalError("failed to collect unit rows", err)
	}
	if units == nil {
		units = []domain.Unit{}
	}
	return units, nil
}

func (r *PgxUnitRepository) SaveUnit(ctx context.Context, unit domain.Unit) error {
	query := `
		INSERT INTO units (
			unit_id, tenant_id, project_id, tower, floor, unit_number, type, area, base_price, status,
			created_at, created_by, last_updated_at, last_updated_by
		)
		SELECT $1::text, $2::text, $3::text, $4::text, $5::integer, $6::text, $7::text, $8::numeric, $9::numeric, $10::text,
			$11::timestamptz, $12::text, $13::timestamptz, $14::text
		WHERE EXISTS (SELECT 1 FROM projects WHERE tenant_id = $2 AND project_id = $3);
	`
	tag, err := r.conn(ctx).Exec(ctx, query,
		unit.UnitID,
		unit.TenantID,
		unit.ProjectID,
		unit.Tower,
		unit.Floor,
		unit.UnitNumber,
		unit.Type,
		unit.Area,
		unit.BasePrice,
		string(unit.Status),
		unit.CreatedAt,
		unit.CreatedBy,
		unit.LastUpdatedAt,
		unit.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflictError("unit number already exists in this project")
		}
		if isNumericOverflow(err) {
			return apperrors.NewValidationFailedError("unit area or price out of range")
		}
		return apperrors.NewInternalError("failed to insert unit", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("project not found")
	}
	return nil
}

func (r *PgxUnitRepository) FindUnitByID(ctx context.Context, tenantID, unitID string) (*domain.Unit, error) {
	unit, err := scanUnit(r.conn(ctx).QueryRow(ctx, unitSelectQuery+`WHERE u.tenant_id = $1 AND u.unit_id = $2;`, tenantID, unitID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("unit not found")
		}
		return nil, apperrors.NewInternalError("failed to query unit", err)
	}
	return &unit, nil
}

func (r *PgxUnitRepository) ListUnitsByProject(ctx context.Context, tenantID, projectID string) ([]domain.Unit, error) {
	return getUnits(ctx, r.conn(ctx), `WHERE u.tenant_id = $1 AND u.project_id = $2 ORDER BY u.created_at DESC, u.unit_id DESC;`, tenantID, projectID)
}

func (r *PgxUnitRepository) MarkUnitSold(ctx context.Context, tenantID, unitID, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE units SET status = 'Sold', last_updated_at = $3, last_updated_by = $4
		WHERE tenant_id = $1 AND unit_id = $2 AND status <> 'Sold';
	`
	tag, err := r.conn(ctx).Exec(ctx, query, tenantID, unitID, updatedAt, updatedBy)
	if err != nil {
		return apperrors.NewInternalError("failed to mark unit sold", err)
	}
	if tag.RowsAffected() == 0 {
		return r.statusMiss(ctx, tenantID, unitID, "unit is already sold")
	}
	return nil
}

func (r *PgxUnitRepository) ReleaseUnit(ctx context.Context, tenantID, unitID, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE units SET status = 'Available', last_updated_at = $3, last_updated_by = $4
		WHERE tenant_id = $1 AND unit_id = $2 AND status = 'Sold';
	`
	tag, err := r.conn(ctx).Exec(ctx, query, tenantID, unitID, updatedAt, updatedBy)
	if err != nil {
		return apperrors.NewInternalError("failed to release unit", err)
	}
	if tag.RowsAffected() == 0 {
		return r.statusMiss(ctx, tenantID, unitID, "unit is not sold")
	}
	return nil
}

func (r *PgxUnitRepository) SetUnitStatus(ctx context.Context, tenantID, unitID string, status domain.UnitStatus, updatedBy string, updatedAt time.Time) (*domain.Unit, error) {
	query := `
		UPDATE units u SET status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE u.tenant_id = $1 AND u.unit_id = $2 AND u.status <> 'Sold'
		RETURNING` + unitColumns + `;`
	unit, err := scanUnit(r.conn(ctx).QueryRow(ctx, query, tenantID, unitID, string(status), updatedAt, updatedBy))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.statusMiss(ctx, tenantID, unitID, "unit is sold and its status cannot be changed")
		}
		return nil, apperrors.NewInternalError("failed to update unit status", err)
	}
	return &unit, nil
}

// statusMiss explains a conditional update that touched no row: either the
// unit does not exist for the tenant or its status failed the guard.
func (r *PgxUnitRepository) statusMiss(ctx context.Context, tenantID, unitID, conflict string) error {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM units WHERE tenant_id = $1 AND unit_id = $2);`
	if err := r.conn(ctx).QueryRow(ctx, query, tenantID, unitID).Scan(&exists); err != nil {
		return apperrors.NewInternalError("failed to query unit", err)
	}
	if !exists {
		return apperrors.NewNotFoundError("unit not found")
	}
	return apperrors.NewConflictError(conflict)
}
