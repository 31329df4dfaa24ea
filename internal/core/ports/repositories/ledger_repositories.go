package repositories

import (
	"context"

	"github.com/SscSPs/builder_crm/internal/core/domain"
)

// LedgerRepository loads the records the financial aggregates are derived from.
type LedgerRepository interface {
	// LoadLedger returns every project, unit, lead, booking, payment and expense
	// of a tenant as one consistent snapshot.
	LoadLedger(ctx context.Context, tenantID string) (*domain.Ledger, error)
}
