package pgsql

import (
	portsrepo "github.com/SscSPs/builder_crm/internal/core/ports/repositories"
)

// NewRepositoryProvider creates and returns a struct containing all repository implementations
// backed by the given pool.
func NewRepositoryProvider(db DB) portsrepo.RepositoryProvider {
	base := BaseRepository{DB: db}
	return portsrepo.RepositoryProvider{
		TxManager:   newPgxTransactionManager(db),
		TenantRepo:  &PgxTenantRepository{BaseRepository: base},
		UserRepo:    &PgxUserRepository{BaseRepository: base},
		ProjectRepo: &PgxProjectRepository{BaseRepository: base},
		UnitRepo:    &PgxUnitRepository{BaseRepository: base},
		LeadRepo:    &PgxLeadRepository{BaseRepository: base},
		BookingRepo: &PgxBookingRepository{BaseRepository: base},
		PaymentRepo: &PgxPaymentRepository{BaseRepository: base},
		ExpenseRepo: &PgxExpenseRepository{BaseRepository: base},
		LedgerRepo:  &PgxLedgerRepository{BaseRepository: base},
	}
}
