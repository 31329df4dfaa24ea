package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/builder_crm/internal/apperrors"
	"github.com/shopspring/decimal"
)

// PaymentMethod is how a payment was received.
type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "Cash"
	PaymentUPI          PaymentMethod = "UPI"
	PaymentBankTransfer PaymentMethod = "Bank Transfer"
	PaymentCheque       PaymentMethod = "Cheque"
)

// ParsePaymentMethod converts user input into a PaymentMethod, defaulting to Cash.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(s) {
	case "":
		return PaymentCash, nil
	case PaymentCash, PaymentUPI, PaymentBankTransfer, PaymentCheque:
		return PaymentMethod(s), nil
	}
	return "", apperrors.NewValidationFailedError(fmt.Sprintf("invalid payment method %q", s))
}

// Payment is an append-only receipt against a Booking.
type Payment struct {
	PaymentID   string          `json:"paymentId"`
	TenantID    string          `json:"tenantId"`
	BookingID   string          `json:"bookingId"`
	Amount      decimal.Decimal `json:"amount"`
	Method      PaymentMethod   `json:"method"`
	PaymentDate time.Time       `json:"paymentDate"`
	Remarks     string          `json:"remarks"`
	AuditFields
}
