package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/builder_crm/internal/apperrors"
	"github.com/SscSPs/builder_crm/internal/core/domain"
	portsrepo "github.com/SscSPs/builder_crm/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

type PgxProjectRepository struct {
	BaseRepository
}

var _ portsrepo.ProjectRepositoryFacade = (*PgxProjectRepository)(nil)

const projectSelectQuery = `
SELECT
	p.project_id, p.tenant_id, p.name, p.location, p.total_units,
	p.created_at, p.created_by, p.last_updated_at, p.last_updated_by
FROM projects p
`

func scanProject(row pgx.Row) (domain.Project, error) {
	var p domain.Project
	err := row.Scan(
		&p.ProjectID, &p.TenantID, &p.Name, &p.Location, &p.TotalUnits,
		&p.CreatedAt, &p.CreatedBy, &p.LastUpdatedAt, &p.LastUpdatedBy,
	)
	return p, err
}

// getProjects runs the select query with the given filter and collects every row.
func getProjects(ctx context.Context, q Querier, filterQuery string, args ...any) ([]domain.Project, error) {
	rows, err := q.Query(ctx, projectSelectQuery+filterQuery, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query projects", err)
	}
	projects, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Project, error) {
		return scanProject(row)
	})
	if err != nil {
		return nil, apperrors.NewInternalError("failed to collect project rows", err)
	}
	if projects == nil {
		projects = []domain.Project{}
	}
	return projects, nil
}

func (r *PgxProjectRepository) SaveProject(ctx context.Context, project domain.Project) error {
	query := `
		INSERT INTO projects (
			project_id, tenant_id, name, location, total_units,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.conn(ctx).Exec(ctx, query,
		project.ProjectID,
		project.TenantID,
		project.Name,
		project.Location,
		project.TotalUnits,
		project.CreatedAt,
		project.CreatedBy,
		project.LastUpdatedAt,
		project.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflictError("project " + project.ProjectID + " already exists")
		}
		return apperrors.NewInternalError("failed to insert project", err)
	}
	return nil
}

func (r *PgxProjectRepository) FindProjectByID(ctx context.Context, tenantID, projectID string) (*domain.Project, error) {
	project, err := scanProject(r.conn(ctx).QueryRow(ctx, projectSelectQuery+`WHERE p.tenant_id = $1 AND p.project_id = $2;`, tenantID, projectID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("project not found")
		}
		return nil, apperrors.NewInternalError("failed to query project", err)
	}
	return &project, nil
}

func (r *PgxProjectRepository) ListProjects(ctx context.Context, tenantID string) ([]domain.Project, error) {
	return getProjects(ctx, r.conn(ctx), `WHERE p.tenant_id = $1 ORDER BY p.created_at DESC, p.project_id DESC;`, tenantID)
}

type PgxExpenseRepository struct {
	BaseRepository
}

var _ portsrepo.ExpenseRepositoryFacade = (*PgxExpenseRepository)(nil)

const expenseSelectQuery = `
SELECT
	e.expense_id, e.tenant_id, e.project_id, e.title, e.category, e.amount, e.expense_date, e.remarks,
	e.created_at, e.created_by, e.last_updated_at, e.last_updated_by
FROM expenses e
`

func getExpenses(ctx context.Context, q Querier, filterQuery string, args ...any) ([]domain.Expense, error) {
	rows, err := q.Query(ctx, expenseSelectQuery+filterQuery, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query expenses", err)
	}
	expenses, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Expense, error) {
		var e domain.Expense
		err := row.Scan(
			&e.ExpenseID, &e.TenantID, &e.ProjectID, &e.Title, &e.Category, &e.Amount, &e.ExpenseDate, &e.Remarks,
			&e.CreatedAt, &e.CreatedBy, &e.LastUpdatedAt, &e.LastUpdatedBy,
		)
		return e, err
	})
	if err != nil {
		return nil, apperrors.NewInternalError("failed to collect expense rows", err)
	}
	if expenses == nil {
		expenses = []domain.Expense{}
	}
	return expenses, nil
}

func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	query := `
		INSERT INTO expenses (
			expense_id, tenant_id, project_id, title, category, amount, expense_date, remarks,
			created_at, created_by, last_updated_at, last_updated_by
		)
		SELECT $1::text, $2::text, $3::text, $4::text, $5::text, $6::numeric, $7::timestamptz, $8::text,
			$9::timestamptz, $10::text, $11::timestamptz, $12::text
		WHERE EXISTS (SELECT 1 FROM projects WHERE tenant_id = $2 AND project_id = $3);
	`
	tag, err := r.conn(ctx).Exec(ctx, query,
		expense.ExpenseID,
		expense.TenantID,
		expense.ProjectID,
		expense.Title,
		expense.Category,
		expense.Amount,
		expense.ExpenseDate,
		expense.Remarks,
		expense.CreatedAt,
		expense.CreatedBy,
		expense.LastUpdatedAt,
		expense.LastUpdatedBy,
	)
	if err != nil {
		if isNumericOverflow(err) {
			return apperrors.NewValidationFailedError("expense amount out of range")
		}
		return apperrors.NewInternalError("failed to insert expense", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("project not found")
	}
	return nil
}

func (r *PgxExpenseRepository) ListExpensesByProject(ctx context.Context, tenantID, projectID string) ([]domain.Expense, error) {
	return getExpenses(ctx, r.conn(ctx), `WHERE e.tenant_id = $1 AND e.project_id = $2 ORDER BY e.created_at DESC, e.expense_id DESC;`, tenantID, projectID)
}
