package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/builder_crm/internal/apperrors"
	"github.com/SscSPs/builder_crm/internal/core/domain"
	portsrepo "github.com/SscSPs/builder_crm/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/builder_crm/internal/core/ports/services"
	"github.com/SscSPs/builder_crm/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type bookingService struct {
	BaseService
	txManager   portsrepo.TransactionManager
	bookingRepo portsrepo.BookingRepositoryFacade
	unitRepo    portsrepo.UnitRepositoryFacade
	leadRepo    portsrepo.LeadReader
}

// NewBookingService creates the booking service.
func NewBookingService(
	txManager portsrepo.TransactionManager,
	bookingRepo portsrepo.BookingRepositoryFacade,
	unitRepo portsrepo.UnitRepositoryFacade,
	leadRepo portsrepo.LeadReader,
	options ...ServiceOption,
) portssvc.BookingSvcFacade {
	return &bookingService{
		BaseService: newBaseService(options...),
		txManager:   txManager,
		bookingRepo: bookingRepo,
		unitRepo:    unitRepo,
		leadRepo:    leadRepo,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, identity domain.Identity, req dto.CreateBookingRequest) (*domain.Booking, error) {
	ctx, cancel, err := s.begin(ctx, identity)
	if err != nil {
		return nil, err
	}
	defer cancel()

	leadID, err := requireText("leadId", req.LeadID)
	if err != nil {
		return nil, err
	}
	unitID, err := requireText("unitId", req.UnitID)
	if err != nil {
		return nil, err
	}
	sellingPrice, err := requireNonNegative("sellingPrice", req.SellingPrice)
	if err != nil {
		return nil, err
	}
	bookingAmount := decimal.Zero
	if req.BookingAmount != nil {
		if bookingAmount, err = requireNonNegative("bookingAmount", req.BookingAmount); err != nil {
			return nil, err
		}
	}

	if _, err := s.leadRepo.FindLeadByID(ctx, identity.TenantID, leadID); err != nil {
		return nil, s.storeError(ctx, err, "Failed to resolve lead for booking", slog.String("lead_id", leadID))
	}
	unit, err := s.unitRepo.FindUnitByID(ctx, identity.TenantID, unitID)
	if err != nil {
		return nil, s.storeError(ctx, err, "Failed to resolve unit for booking", slog.String("unit_id", unitID))
	}
	if !unit.Status.IsBookable() {
		s.LogDebug(ctx, "Booking rejected, unit already sold", slog.String("unit_id", unitID))
		return nil, apperrors.NewConflictError("unit is already sold")
	}

	now := s.now()
	booking := domain.Booking{
		BookingID:     uuid.NewString(),
		TenantID:      identity.TenantID,
		LeadID:        leadID,
		UnitID:        unitID,
		SellingPrice:  sellingPrice,
		BookingAmount: bookingAmount,
		Status:        domain.BookingBooked,
		AuditFields:   domain.NewAuditFields(identity.UserID, now),
	}

	// The status flip is the concurrency guard: of two racing bookings only one
	// can move the unit out of Available/Hold.
	err = s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.unitRepo.MarkUnitSold(txCtx, identity.TenantID, unitID, identity.UserID, now); err != nil {
			return err
		}
		return s.bookingRepo.SaveBooking(txCtx, booking)
	})
	if err != nil {
		return nil, s.storeError(ctx, err, "Failed to create booking",
			slog.String("unit_id", unitID),
			slog.String("lead_id", leadID))
	}

	s.LogInfo(ctx, "Booking created",
		slog.String("booking_id", booking.BookingID),
		slog.String("unit_id", unitID),
		slog.String("selling_price", sellingPrice.String()))
	return &booking, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, identity domain.Identity, bookingID string) (*domain.Booking, error) {
	ctx, cancel, err := s.begin(ctx, identity)
	if err != nil {
		return nil, err
	}
	defer cancel()

	booking, err := s.bookingRepo.FindBookingByID(ctx, identity.TenantID, bookingID)
	if err != nil {
		return nil, s.storeError(ctx, err, "Failed to find booking", slog.String("booking_id", bookingID))
	}
	if booking.Status == domain.BookingCancelled {
		return nil, apperrors.NewConflictError("booking is already cancelled")
	}

	now := s.now()
	err = s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.bookingRepo.CancelBooking(txCtx, identity.TenantID, bookingID, identity.UserID, now); err != nil {
			return err
		}
		return s.unitRepo.ReleaseUnit(txCtx, identity.TenantID, booking.UnitID, identity.UserID, now)
	})
	if err != nil {
		return nil, s.storeError(ctx, err, "Failed to cancel booking", slog.String("booking_id", bookingID))
	}

	booking.Status = domain.BookingCancelled
	booking.LastUpdatedAt = now
	booking.LastUpdatedBy = identity.UserID
	s.LogInfo(ctx, "Booking cancelled", slog.String("booking_id", bookingID), slog.String("unit_id", booking.UnitID))
	return booking, nil
}

func (s *bookingService) GetBooking(ctx context.Context, identity domain.Identity, bookingID string) (*domain.Booking, error) {
	ctx, cancel, err := s.begin(ctx, identity)
	if err != nil {
		return nil, err
	}
	defer cancel()

	booking, err := s.bookingRepo.FindBookingByID(ctx, identity.TenantID, bookingID)
	if err != nil {
		return nil, s.storeError(ctx, err, "Failed to find booking", slog.String("booking_id", bookingID))
	}
	return booking, nil
}

func (s *bookingService) ListBookings(ctx context.Context, identity domain.Identity) ([]domain.Booking, error) {
	ctx, cancel, err := s.begin(ctx, identity)
	if err != nil {
		return nil, err
	}
	defer cancel()

	bookings, err := s.bookingRepo.ListBookings(ctx, identity.TenantID)
	if err != nil {
		return nil, s.storeError(ctx, err, "Failed to list bookings")
	}
	if bookings == nil {
		bookings = []domain.Booking{}
	}
	return bookings, nil
}

type paymentService struct {
	BaseService
	paymentRepo portsrepo.PaymentRepositoryFacade
	bookingRepo portsrepo.BookingReader
}

// NewPaymentService creates the payment service.
func NewPaymentService(paymentRepo portsrepo.PaymentRepositoryFacade, bookingRepo portsrepo.BookingReader, options ...ServiceOption) portssvc.PaymentSvcFacade {
	return &paymentService{BaseService: newBaseService(options...), paymentRepo: paymentRepo, bookingRepo: bookingRepo}
}

func (s *paymentService) RecordPayment(ctx context.Context, identity domain.Identity, req dto.CreatePaymentRequest) (*domain.Payment, error) {
	ctx, cancel, err := s.begin(ctx, identity)
	if err != nil {
		return nil, err
	}
	defer cancel()

	bookingID, err := requireText("bookingId", req.BookingID)
	if err != nil {
		return nil, err
	}
	amount, err := requirePositive("amount", req.Amount)
	if err != nil {
		return nil, err
	}
	method, err := domain.ParsePaymentMethod(req.Method)
	if err != nil {
		return nil, err
	}

	if _, err := s.bookingRepo.FindBookingByID(ctx, identity.TenantID, bookingID); err != nil {
		return nil, s.storeError(ctx, err, "Failed to resolve booking for payment", slog.String("booking_id", bookingID))
	}

	now := s.now()
	paymentDate := now
	if req.PaymentDate != nil {
		paymentDate = req.PaymentDate.In(s.Location)
	}

	payment := domain.Payment{
		PaymentID:   uuid.NewString(),
		TenantID:    identity.TenantID,
		BookingID:   bookingID,
		Amount:      amount,
		Method:      method,
		PaymentDate: paymentDate,
		Remarks:     req.Remarks,
		AuditFields: domain.NewAuditFields(identity.UserID, now),
	}
	if err := s.paymentRepo.SavePayment(ctx, payment); err != nil {
		return nil, s.storeError(ctx, err, "Failed to save payment", slog.String("booking_id", bookingID))
	}

	s.LogInfo(ctx, "Payment recorded",
		slog.String("payment_id", payment.PaymentID),
		slog.String("booking_id", bookingID),
		slog.String("amount", amount.String()))
	return &payment, nil
}

func (s *paymentService) ListPayments(ctx context.Context, identity domain.Identity) ([]domain.Payment, error) {
	ctx, cancel, err := s.begin(ctx, identity)
	if err != nil {
		return nil, err
	}
	defer cancel()

	payments, err := s.paymentRepo.ListPayments(ctx, identity.TenantID)
	if err != nil {
		return nil, s.storeError(ctx, err, "Failed to list payments")
	}
	if payments == nil {
		payments = []domain.Payment{}
	}
	return payments, nil
}

func (s *paymentService) ListPaymentsByBooking(ctx context.Context, identity domain.Identity, bookingID string) ([]domain.Payment, error) {
	ctx, cancel, err := s.begin(ctx, identity)
	if err != nil {
		return nil, err
	}
	defer cancel()

	if _, err := s.bookingRepo.FindBookingByID(ctx, identity.TenantID, bookingID); err != nil {
		return nil, s.storeError(ctx, err, "Failed to resolve booking", slog.String("booking_id", bookingID))
	}
	payments, err := s.paymentRepo.ListPaymentsByBooking(ctx, identity.TenantID, bookingID)
	if err != nil {
		return nil, s.storeError(ctx, err, "Failed to list payments of booking", slog.String("booking_id", bookingID))
	}
	if payments == nil {
		payments = []domain.Payment{}
	}
	return payments, nil
}
