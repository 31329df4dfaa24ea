package services

import (
	"context"

	"github.com/SscSPs/builder_crm/internal/core/domain"
	"github.com/SscSPs/builder_crm/internal/dto"
)

// BookingSvcFacade drives the unit sale lifecycle.
type BookingSvcFacade interface {
	// CreateBooking marks the unit Sold and persists the booking as one unit of work.
	// It fails with a conflict error if the unit is already sold.
	CreateBooking(ctx context.Context, identity domain.Identity, req dto.CreateBookingRequest) (*domain.Booking, error)

	// CancelBooking cancels an active booking and releases its unit.
	CancelBooking(ctx context.Context, identity domain.Identity, bookingID string) (*domain.Booking, error)

	GetBooking(ctx context.Context, identity domain.Identity, bookingID string) (*domain.Booking, error)
	ListBookings(ctx context.Context, identity domain.Identity) ([]domain.Booking, error)
}

// PaymentSvcFacade records and lists payments.
type PaymentSvcFacade interface {
	RecordPayment(ctx context.Context, identity domain.Identity, req dto.CreatePaymentRequest) (*domain.Payment, error)
	ListPayments(ctx context.Context, identity domain.Identity) ([]domain.Payment, error)
	ListPaymentsByBooking(ctx context.Context, identity domain.Identity, bookingID string) ([]domain.Payment, error)
}

// FinanceSvc derives financial aggregates. Nothing it returns is stored.
type FinanceSvc interface {
	BookingSettlement(ctx context.Context, identity domain.Identity, bookingID string) (*domain.BookingSettlement, error)
	TenantOverview(ctx context.Context, identity domain.Identity) (*domain.TenantOverview, error)
	ProjectProfitSummary(ctx context.Context, identity domain.Identity) ([]domain.ProjectProfit, error)
	BookingSummaries(ctx context.Context, identity domain.Identity) ([]domain.BookingSummary, error)
}
