package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/SscSPs/builder_crm/internal/apperrors"
	"github.com/SscSPs/builder_crm/internal/core/domain"
	portsrepo "github.com/SscSPs/builder_crm/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

type PgxBookingRepository struct {
	BaseRepository
}

var _ portsrepo.BookingRepositoryFacade = (*PgxBookingRepository)(nil)

const bookingSelectQuery = `
SELECT
	b.booking_id, b.tenant_id, b.lead_id, b.unit_id, b.selling_price, b.booking_amount, b.status,
	b.created_at, b.created_by, b.last_updated_at, b.last_updated_by
FROM bookings b
`

func scanBooking(row pgx.Row) (domain.Booking, error) {
	var (
		b      domain.Booking
		status string
	)
	err := row.Scan(
		&b.BookingID, &b.TenantID, &b.LeadID, &b.UnitID, &b.SellingPrice, &b.BookingAmount, &status,
		&b.CreatedAt, &b.CreatedBy, &b.LastUpdatedAt, &b.LastUpdatedBy,
	)
	b.Status = domain.BookingStatus(status)
	return b, err
}

func getBookings(ctx context.Context, q Querier, filterQuery string, args ...any) ([]domain.Booking, error) {
	rows, err := q.Query(ctx, bookingSelectQuery+filterQuery, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query bookings", err)
	}
	bookings, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Booking, error) {
		return scanBooking(row)
	})
	if err != nil {
		return nil, apperrors.NewInternalError("failed to collect booking rows", err)
	}
	if bookings == nil {
		bookings = []domain.Booking{}
	}
	return bookings, nil
}

// SaveBooking relies on the partial unique index over active bookings to
// reject a second booking of the same unit.
func (r *PgxBookingRepository) SaveBooking(ctx context.Context, booking domain.Booking) error {
	query := `
		INSERT INTO bookings (
			booking_id, tenant_id, lead_id, unit_id, selling_price, booking_amount, status,
			created_at, created_by, last_updated_at, last_updated_by
		)
		SELECT $1::text, $2::text, $3::text, $4::text, $5::numeric, $6::numeric, $7::text,
			$8::timestamptz, $9::text, $10::timestamptz, $11::text
		WHERE EXISTS (SELECT 1 FROM leads WHERE tenant_id = $2 AND lead_id = $3)
		  AND EXISTS (SELECT 1 FROM units WHERE tenant_id = $2 AND unit_id = $4);
	`
	tag, err := r.conn(ctx).Exec(ctx, query,
		booking.BookingID,
		booking.TenantID,
		booking.LeadID,
		booking.UnitID,
		booking.SellingPrice,
		booking.BookingAmount,
		string(booking.Status),
		booking.CreatedAt,
		booking.CreatedBy,
		booking.LastUpdatedAt,
		booking.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflictError("unit already has an active booking")
		}
		if isNumericOverflow(err) {
			return apperrors.NewValidationFailedError("booking amount out of range")
		}
		return apperrors.NewInternalError("failed to insert booking", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("lead or unit not found")
	}
	return nil
}

func (r *PgxBookingRepository) FindBookingByID(ctx context.Context, tenantID, bookingID string) (*domain.Booking, error) {
	booking, err := scanBooking(r.conn(ctx).QueryRow(ctx, bookingSelectQuery+`WHERE b.tenant_id = $1 AND b.booking_id = $2;`, tenantID, bookingID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("booking not found")
		}
		return nil, apperrors.NewInternalError("failed to query booking", err)
	}
	return &booking, nil
}

func (r *PgxBookingRepository) ListBookings(ctx context.Context, tenantID string) ([]domain.Booking, error) {
	return getBookings(ctx, r.conn(ctx), `WHERE b.tenant_id = $1 ORDER BY b.created_at DESC, b.booking_id DESC;`, tenantID)
}

func (r *PgxBookingRepository) CancelBooking(ctx context.Context, tenantID, bookingID, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE bookings SET status = 'Cancelled', last_updated_at = $3, last_updated_by = $4
		WHERE tenant_id = $1 AND booking_id = $2 AND status = 'Booked';
	`
	tag, err := r.conn(ctx).Exec(ctx, query, tenantID, bookingID, updatedAt, updatedBy)
	if err != nil {
		return apperrors.NewInternalError("failed to cancel booking", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	if err := r.conn(ctx).QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM bookings WHERE tenant_id = $1 AND booking_id = $2);`, tenantID, bookingID).Scan(&exists); err != nil {
		return apperrors.NewInternalError("failed to query booking", err)
	}
	if !exists {
		return apperrors.NewNotFoundError("booking not found")
	}
	return apperrors.NewConflictError("booking is already cancelled")
}

type PgxPaymentRepository struct {
	BaseRepository
}

var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

const paymentSelectQuery = `
SELECT
	p.payment_id, p.tenant_id, p.booking_id, p.amount, p.method, p.payment_date, p.remarks,
	p.created_at, p.created_by, p.last_updated_at, p.last_updated_by
FROM payments p
`

func getPayments(ctx context.Context, q Querier, filterQuery string, args ...any) ([]domain.Payment, error) {
	rows, err := q.Query(ctx, paymentSelectQuery+filterQuery, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query payments", err)
	}
	payments, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Payment, error) {
		var (
			p      domain.Payment
			method string
		)
		err := row.Scan(
			&p.PaymentID, &p.TenantID, &p.BookingID, &p.Amount, &method, &p.PaymentDate, &p.Remarks,
			&p.CreatedAt, &p.CreatedBy, &p.LastUpdatedAt, &p.LastUpdatedBy,
		)
		p.Method = domain.PaymentMethod(method)
		return p, err
	})
	if err != nil {
		return nil, apperrors.NewInternalError("failed to collect payment rows", err)
	}
	if payments == nil {
		payments = []domain.Payment{}
	}
	return payments, nil
}

func (r *PgxPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment) error {
	query := `
		INSERT INTO payments (
			payment_id, tenant_id, booking_id, amount, method, payment_date, remarks,
			created_at, created_by, last_updated_at, last_updated_by
		)
		SELECT $1::text, $2::text, $3::text, $4::numeric, $5::text, $6::timestamptz, $7::text,
			$8::timestamptz, $9::text, $10::timestamptz, $11::text
		WHERE EXISTS (SELECT 1 FROM bookings WHERE tenant_id = $2 AND booking_id = $3);
	`
	tag, err := r.conn(ctx).Exec(ctx, query,
		payment.PaymentID,
		payment.TenantID,
		payment.BookingID,
		payment.Amount,
		string(payment.Method),
		payment.PaymentDate,
		payment.Remarks,
		payment.CreatedAt,
		payment.CreatedBy,
		payment.LastUpdatedAt,
		payment.LastUpdatedBy,
	)
	if err != nil {
		if isNumericOverflow(err) {
			return apperrors.NewValidationFailedError("payment amount out of range")
		}
		return apperrors.NewInternalError("failed to insert payment", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("booking not found")
	}
	return nil
}

func (r *PgxPaymentRepository) ListPayments(ctx context.Context, tenantID string) ([]domain.Payment, error) {
	return getPayments(ctx, r.conn(ctx), `WHERE p.tenant_id = $1 ORDER BY p.created_at DESC, p.payment_id DESC;`, tenantID)
}

func (r *PgxPaymentRepository) ListPaymentsByBooking(ctx context.Context, tenantID, bookingID string) ([]domain.Payment, error) {
	return getPayments(ctx, r.conn(ctx), `WHERE p.tenant_id = $1 AND p.booking_id = $2 ORDER BY p.created_at DESC, p.payment_id DESC;`, tenantID, bookingID)
}
