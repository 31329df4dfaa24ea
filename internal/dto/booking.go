package dto

import "github.com/shopspring/decimal"

// CreateBookingRequest sells a unit to a lead at an agreed price.
type CreateBookingRequest struct {
	LeadID        string           `json:"leadId" binding:"required"`
	UnitID        string           `json:"unitId" binding:"required"`
	SellingPrice  *decimal.Decimal `json:"sellingPrice" binding:"required"`
	BookingAmount *decimal.Decimal `json:"bookingAmount"`
}

// CreatePaymentRequest records money received against a booking.
type CreatePaymentRequest struct {
	BookingID   string           `json:"bookingId" binding:"required"`
	Amount      *decimal.Decimal `json:"amount" binding:"required"`
	Method      string           `json:"method" binding:"omitempty,payment_method"`
	PaymentDate *Date            `json:"paymentDate"`
	Remarks     string           `json:"remarks"`
}
