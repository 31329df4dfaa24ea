package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	TxManager   TransactionManager
	TenantRepo  TenantRepositoryFacade
	UserRepo    UserRepositoryFacade
	ProjectRepo ProjectRepositoryFacade
	UnitRepo    UnitRepositoryFacade
	LeadRepo    LeadRepositoryFacade
	BookingRepo BookingRepositoryFacade
	PaymentRepo PaymentRepositoryFacade
	ExpenseRepo ExpenseRepositoryFacade
	LedgerRepo  LedgerRepository
}
