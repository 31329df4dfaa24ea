package memory

import (
	"context"
	"time"

	"github.com/SscSPs/builder_crm/internal/apperrors"
	"github.com/SscSPs/builder_crm/internal/core/domain"
)

func (s *Store) SaveBooking(ctx context.Context, booking domain.Booking) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if unit, ok := s.units[booking.UnitID]; !ok || unit.TenantID != booking.TenantID {
		return apperrors.NewNotFoundError("unit not found")
	}
	if lead, ok := s.leads[booking.LeadID]; !ok || lead.TenantID != booking.TenantID {
		return apperrors.NewNotFoundError("lead not found")
	}
	if booking.Status == domain.BookingBooked {
		for _, existing := range s.bookings {
			if existing.UnitID == booking.UnitID && existing.Status == domain.BookingBooked {
				return apperrors.NewConflictError("unit already has an active booking")
			}
		}
	}
	s.bookings[booking.BookingID] = booking
	recordUndo(ctx, func() { delete(s.bookings, booking.BookingID) })
	return nil
}

func (s *Store) FindBookingByID(ctx context.Context, tenantID, bookingID string) (*domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	booking, ok := s.bookings[bookingID]
	if !ok || booking.TenantID != tenantID {
		return nil, apperrors.NewNotFoundError("booking not found")
	}
	return &booking, nil
}

func (s *Store) ListBookings(ctx context.Context, tenantID string) ([]domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []domain.Booking{}
	for _, b := range s.bookings {
		if b.TenantID == tenantID {
			out = append(out, b)
		}
	}
	newestFirst(out, func(b domain.Booking) time.Time { return b.CreatedAt }, func(b domain.Booking) string { return b.BookingID })
	return out, nil
}

func (s *Store) CancelBooking(ctx context.Context, tenantID, bookingID, updatedBy string, updatedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	booking, ok := s.bookings[bookingID]
	if !ok || booking.TenantID != tenantID {
		return apperrors.NewNotFoundError("booking not found")
	}
	if booking.Status != domain.BookingBooked {
		return apperrors.NewConflictError("booking is already cancelled")
	}
	previous := booking
	booking.Status = domain.BookingCancelled
	booking.LastUpdatedAt = updatedAt
	booking.LastUpdatedBy = updatedBy
	s.bookings[bookingID] = booking
	recordUndo(ctx, func() { s.bookings[bookingID] = previous })
	return nil
}

func (s *Store) SavePayment(ctx context.Context, payment domain.Payment) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if b, ok := s.bookings[payment.BookingID]; !ok || b.TenantID != payment.TenantID {
		return apperrors.NewNotFoundError("booking not found")
	}
	s.payments[payment.PaymentID] = payment
	recordUndo(ctx, func() { delete(s.payments, payment.PaymentID) })
	return nil
}

func (s *Store) ListPayments(ctx context.Context, tenantID string) ([]domain.Payment, error) {
	return s.listPayments(ctx, func(p domain.Payment) bool { return p.TenantID == tenantID })
}

func (s *Store) ListPaymentsByBooking(ctx context.Context, tenantID, bookingID string) ([]domain.Payment, error) {
	return s.listPayments(ctx, func(p domain.Payment) bool { return p.TenantID == tenantID && p.BookingID == bookingID })
}

func (s *Store) listPayments(ctx context.Context, match func(domain.Payment) bool) ([]domain.Payment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []domain.Payment{}
	for _, p := range s.payments {
		if match(p) {
			out = append(out, p)
		}
	}
	newestFirst(out, func(p domain.Payment) time.Time { return p.CreatedAt }, func(p domain.Payment) string { return p.PaymentID })
	return out, nil
}
