package services

import (
	portsrepo "github.com/SscSPs/builder_crm/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/builder_crm/internal/core/ports/services"
	"github.com/SscSPs/builder_crm/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	options := []ServiceOption{
		WithStoreTimeout(cfg.StoreTimeout),
		WithLocation(cfg.Location),
	}

	return &portssvc.ServiceContainer{
		Auth: NewAuthService(repos.TxManager, repos.TenantRepo, repos.UserRepo, TokenConfig{
			Secret: cfg.JWTSecret,
			Expiry: cfg.JWTExpiryDuration,
			Issuer: cfg.JWTIssuer,
		}, options...),
		Project:  NewProjectService(repos.ProjectRepo, options...),
		Unit:     NewUnitService(repos.UnitRepo, repos.ProjectRepo, options...),
		Lead:     NewLeadService(repos.LeadRepo, repos.ProjectRepo, options...),
		Booking:  NewBookingService(repos.TxManager, repos.BookingRepo, repos.UnitRepo, repos.LeadRepo, options...),
		Payment:  NewPaymentService(repos.PaymentRepo, repos.BookingRepo, options...),
		Expense:  NewExpenseService(repos.ExpenseRepo, repos.ProjectRepo, options...),
		Finance:  NewFinanceService(repos.LedgerRepo, repos.BookingRepo, repos.PaymentRepo, options...),
		Followup: NewFollowupService(repos.LeadRepo, options...),
	}
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.AuthSvcFacade    = (*authService)(nil)
	_ portssvc.ProjectSvcFacade = (*projectService)(nil)
	_ portssvc.UnitSvcFacade    = (*unitService)(nil)
	_ portssvc.LeadSvcFacade    = (*leadService)(nil)
	_ portssvc.BookingSvcFacade = (*bookingService)(nil)
	_ portssvc.PaymentSvcFacade = (*paymentService)(nil)
	_ portssvc.ExpenseSvcFacade = (*expenseService)(nil)
	_ portssvc.FinanceSvc       = (*financeService)(nil)
	_ portssvc.FollowupSvc      = (*followupService)(nil)
)
