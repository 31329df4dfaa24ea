package memory

import (
	"context"

	"github.com/SscSPs/builder_crm/internal/core/domain"
)

// LoadLedger copies every record of the tenant while holding the read lock, so
// the snapshot is consistent.
func (s *Store) LoadLedger(ctx context.Context, tenantID string) (*domain.Ledger, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	ledger := &domain.Ledger{TenantID: tenantID}
	for _, p := range s.projects {
		if p.TenantID == tenantID {
			ledger.Projects = append(ledger.Projects, p)
		}
	}
	for _, u := range s.units {
		if u.TenantID == tenantID {
			ledger.Units = append(ledger.Units, u)
		}
	}
	for _, l := range s.leads {
		if l.TenantID == tenantID {
			ledger.Leads = append(ledger.Leads, copyLead(l))
		}
	}
	for _, b := range s.bookings {
		if b.TenantID == tenantID {
			ledger.Bookings = append(ledger.Bookings, b)
		}
	}
	for _, p := range s.payments {
		if p.TenantID == tenantID {
			ledger.Payments = append(ledger.Payments, p)
		}
	}
	for _, e := range s.expenses {
		if e.TenantID == tenantID {
			ledger.Expenses = append(ledger.Expenses, e)
		}
	}
	return ledger, nil
}
