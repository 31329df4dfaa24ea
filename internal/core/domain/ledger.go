package domain

// Ledger is a point-in-time snapshot of one tenant's transactional records.
// Aggregates are always derived from a Ledger and never stored.
type Ledger struct {
	TenantID string
	Projects []Project
	Units    []Unit
	Leads    []Lead
	Bookings []Booking
	Payments []Payment
	Expenses []Expense
}
