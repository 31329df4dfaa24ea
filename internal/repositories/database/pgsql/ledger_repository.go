package pgsql

import (
	"context"

	"github.com/SscSPs/builder_crm/internal/core/domain"
	portsrepo "github.com/SscSPs/builder_crm/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

type PgxLedgerRepository struct {
	BaseRepository
}

var _ portsrepo.LedgerRepository = (*PgxLedgerRepository)(nil)

// LoadLedger reads every table inside one REPEATABLE READ snapshot so the
// aggregates never mix a booking with payments from a later state.
func (r *PgxLedgerRepository) LoadLedger(ctx context.Context, tenantID string) (*domain.Ledger, error) {
	if _, ok := ctx.Value(txCtxKey{}).(pgx.Tx); ok {
		return r.load(ctx, r.conn(ctx), tenantID)
	}

	tx, err := r.Begin(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, err
	}
	ledger, err := r.load(ctx, tx, tenantID)
	if err != nil {
		_ = r.Rollback(context.WithoutCancel(ctx), tx)
		return nil, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return ledger, nil
}

func (r *PgxLedgerRepository) load(ctx context.Context, q Querier, tenantID string) (*domain.Ledger, error) {
	ledger := &domain.Ledger{TenantID: tenantID}
	var err error

	if ledger.Projects, err = getProjects(ctx, q, `WHERE p.tenant_id = $1;`, tenantID); err != nil {
		return nil, err
	}
	if ledger.Units, err = getUnits(ctx, q, `WHERE u.tenant_id = $1;`, tenantID); err != nil {
		return nil, err
	}
	if ledger.Leads, err = getLeads(ctx, q, `WHERE l.tenant_id = $1;`, tenantID); err != nil {
		return nil, err
	}
	if ledger.Bookings, err = getBookings(ctx, q, `WHERE b.tenant_id = $1;`, tenantID); err != nil {
		return nil, err
	}
	if ledger.Payments, err = getPayments(ctx, q, `WHERE p.tenant_id = $1;`, tenantID); err != nil {
		return nil, err
	}
	if ledger.Expenses, err = getExpenses(ctx, q, `WHERE e.tenant_id = $1;`, tenantID); err != nil {
		return nil, err
	}
	return ledger, nil
}
