package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/builder_crm/internal/core/domain"
)

// BookingReader defines read operations for booking data
type BookingReader interface {
	// FindBookingByID retrieves a booking of the given tenant.
	FindBookingByID(ctx context.Context, tenantID, bookingID string) (*domain.Booking, error)

	// ListBookings retrieves all bookings of a tenant, newest first.
	ListBookings(ctx context.Context, tenantID string) ([]domain.Booking, error)
}

// BookingWriter defines write operations for booking data
type BookingWriter interface {
	// SaveBooking persists a new booking. A second active booking for the
	// same unit yields a conflict error.
	SaveBooking(ctx context.Context, booking domain.Booking) error

	// CancelBooking moves an active booking to Cancelled. It fails with a
	// conflict error if the booking is already cancelled.
	CancelBooking(ctx context.Context, tenantID, bookingID, updatedBy string, updatedAt time.Time) error
}

// BookingRepositoryFacade combines all booking-related repository interfaces
type BookingRepositoryFacade interface {
	BookingReader
	BookingWriter
}

// PaymentReader defines read operations for payment data
type PaymentReader interface {
	// ListPayments retrieves all payments of a tenant, newest first.
	ListPayments(ctx context.Context, tenantID string) ([]domain.Payment, error)

	// ListPaymentsByBooking retrieves the payments made against one booking, newest first.
	ListPaymentsByBooking(ctx context.Context, tenantID, bookingID string) ([]domain.Payment, error)
}

// PaymentWriter defines write operations for payment data
type PaymentWriter interface {
	// SavePayment persists a new payment.
	SavePayment(ctx context.Context, payment domain.Payment) error
}

// PaymentRepositoryFacade combines all payment-related repository interfaces
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
}

// ExpenseReader defines read operations for expense data
type ExpenseReader interface {
	// ListExpensesByProject retrieves the expenses of one project, newest first.
	ListExpensesByProject(ctx context.Context, tenantID, projectID string) ([]domain.Expense, error)
}

// ExpenseWriter defines write operations for expense data
type ExpenseWriter interface {
	// SaveExpense persists a new expense.
	SaveExpense(ctx context.Context, expense domain.Expense) error
}

// ExpenseRepositoryFacade combines all expense-related repository interfaces
type ExpenseRepositoryFacade interface {
	ExpenseReader
	ExpenseWriter
}
