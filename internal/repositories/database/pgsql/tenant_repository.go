package pgsql

import (
	"context"
	"errors"
	"strings"

	"github.com/SscSPs/builder_crm/internal/apperrors"
	"github.com/SscSPs/builder_crm/internal/core/domain"
	portsrepo "github.com/SscSPs/builder_crm/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

type PgxTenantRepository struct {
	BaseRepository
}

var _ portsrepo.TenantRepositoryFacade = (*PgxTenantRepository)(nil)

func (r *PgxTenantRepository) SaveTenant(ctx context.Context, tenant domain.Tenant) error {
	query := `
		INSERT INTO tenants (tenant_id, name, location, created_at)
		VALUES ($1, $2, $3, $4);
	`
	_, err := r.conn(ctx).Exec(ctx, query, tenant.TenantID, tenant.Name, tenant.Location, tenant.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflictError("tenant " + tenant.TenantID + " already exists")
		}
		return apperrors.NewInternalError("failed to insert tenant", err)
	}
	return nil
}

func (r *PgxTenantRepository) FindTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	query := `SELECT tenant_id, name, location, created_at FROM tenants WHERE tenant_id = $1;`
	var tenant domain.Tenant
	err := r.conn(ctx).QueryRow(ctx, query, tenantID).Scan(&tenant.TenantID, &tenant.Name, &tenant.Location, &tenant.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("tenant not found")
		}
		return nil, apperrors.NewInternalError("failed to query tenant", err)
	}
	return &tenant, nil
}

type PgxUserRepository struct {
	BaseRepository
}

var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

const userSelectQuery = `
SELECT
	u.user_id, u.tenant_id, u.name, u.email, u.password_hash, u.role,
	u.created_at, u.created_by, u.last_updated_at, u.last_updated_by
FROM users u
`

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		user domain.User
		role string
	)
	err := row.Scan(
		&user.UserID, &user.TenantID, &user.Name, &user.Email, &user.PasswordHash, &role,
		&user.CreatedAt, &user.CreatedBy, &user.LastUpdatedAt, &user.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	user.Role = domain.UserRole(role)
	return &user, nil
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	query := `
		INSERT INTO users (
			user_id, tenant_id, name, email, password_hash, role,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.conn(ctx).Exec(ctx, query,
		user.UserID,
		user.TenantID,
		user.Name,
		user.Email,
		user.PasswordHash,
		string(user.Role),
		user.CreatedAt,
		user.CreatedBy,
		user.LastUpdatedAt,
		user.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflictError("email " + user.Email + " is already registered")
		}
		return apperrors.NewInternalError("failed to insert user", err)
	}
	return nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, tenantID, userID string) (*domain.User, error) {
	user, err := scanUser(r.conn(ctx).QueryRow(ctx, userSelectQuery+`WHERE u.tenant_id = $1 AND u.user_id = $2;`, tenantID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("user not found")
		}
		return nil, apperrors.NewInternalError("failed to query user", err)
	}
	return user, nil
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := scanUser(r.conn(ctx).QueryRow(ctx, userSelectQuery+`WHERE lower(u.email) = $1;`, strings.ToLower(strings.TrimSpace(email))))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("user not found")
		}
		return nil, apperrors.NewInternalError("failed to query user by email", err)
	}
	return user, nil
}
