package domain

import "github.com/shopspring/decimal"

// BookingStatus indicates whether a booking is active.
type BookingStatus string

const (
	BookingBooked    BookingStatus = "Booked"
	BookingCancelled BookingStatus = "Cancelled"
)

// Booking records a Unit being sold to a Lead at an agreed price.
// SellingPrice is fixed at creation and is the ground truth for settlement.
type Booking struct {
	BookingID     string          `json:"bookingId"`
	TenantID      string          `json:"tenantId"`
	LeadID        string          `json:"leadId"`
	UnitID        string          `json:"unitId"`
	SellingPrice  decimal.Decimal `json:"sellingPrice"`
	BookingAmount decimal.Decimal `json:"bookingAmount"` // informational, not counted as received
	Status        BookingStatus   `json:"status"`
	AuditFields
}
