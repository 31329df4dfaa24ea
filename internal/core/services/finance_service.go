package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/builder_crm/internal/core/domain"
	"github.com/SscSPs/builder_crm/internal/core/finance"
	portsrepo "github.com/SscSPs/builder_crm/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/builder_crm/internal/core/ports/services"
)

type financeService struct {
	BaseService
	ledgerRepo  portsrepo.LedgerRepository
	bookingRepo portsrepo.BookingReader
	paymentRepo portsrepo.PaymentReader
}

// NewFinanceService creates the financial aggregation service.
func NewFinanceService(
	ledgerRepo portsrepo.LedgerRepository,
	bookingRepo portsrepo.BookingReader,
	paymentRepo portsrepo.PaymentReader,
	options ...ServiceOption,
) portssvc.FinanceSvc {
	return &financeService{
		BaseService: newBaseService(options...),
		ledgerRepo:  ledgerRepo,
		bookingRepo: bookingRepo,
		paymentRepo: paymentRepo,
	}
}

func (s *financeService) BookingSettlement(ctx context.Context, identity domain.Identity, bookingID string) (*domain.BookingSettlement, error) {
	ctx, cancel, err := s.begin(ctx, identity)
	if err != nil {
		return nil, err
	}
	defer cancel()

	booking, err := s.bookingRepo.FindBookingByID(ctx, identity.TenantID, bookingID)
	if err != nil {
		return nil, s.storeError(ctx, err, "Failed to find booking for settlement", slog.String("booking_id", bookingID))
	}
	payments, err := s.paymentRepo.ListPaymentsByBooking(ctx, identity.TenantID, bookingID)
	if err != nil {
		return nil, s.storeError(ctx, err, "Failed to load payments for settlement", slog.String("booking_id", bookingID))
	}

	settlement := finance.Settle(*booking, payments)
	return &settlement, nil
}

func (s *financeService) TenantOverview(ctx context.Context, identity domain.Identity) (*domain.TenantOverview, error) {
	ledger, cancel, err := s.loadLedger(ctx, identity)
	if err != nil {
		return nil, err
	}
	defer cancel()

	overview := finance.Overview(*ledger, finance.RecentLimit)
	return &overview, nil
}

func (s *financeService) ProjectProfitSummary(ctx context.Context, identity domain.Identity) ([]domain.ProjectProfit, error) {
	ledger, cancel, err := s.loadLedger(ctx, identity)
	if err != nil {
		return nil, err
	}
	defer cancel()

	return finance.ProjectProfits(*ledger), nil
}

func (s *financeService) BookingSummaries(ctx context.Context, identity domain.Identity) ([]domain.BookingSummary, error) {
	ledger, cancel, err := s.loadLedger(ctx, identity)
	if err != nil {
		return nil, err
	}
	defer cancel()

	return finance.BookingSummaries(*ledger), nil
}

func (s *financeService) loadLedger(ctx context.Context, identity domain.Identity) (*domain.Ledger, context.CancelFunc, error) {
	ctx, cancel, err := s.begin(ctx, identity)
	if err != nil {
		return nil, nil, err
	}

	ledger, err := s.ledgerRepo.LoadLedger(ctx, identity.TenantID)
	if err != nil {
		cancel()
		return nil, nil, s.storeError(ctx, err, "Failed to load ledger")
	}
	s.LogDebug(ctx, "Ledger loaded",
		slog.Int("bookings", len(ledger.Bookings)),
		slog.Int("payments", len(ledger.Payments)),
		slog.Int("expenses", len(ledger.Expenses)))
	return ledger, cancel, nil
}
