// Package finance derives the financial and follow-up views of a tenant from
// its raw records. Every function here is pure: the same ledger always yields
// the same result, and nothing is ever persisted.
package finance

import (
	"sort"

	"github.com/SscSPs/builder_crm/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecentLimit is the number of entries in the overview's recent lists.
const RecentLimit = 5

// Settle computes received and due for one booking. Payments of other bookings
// or other tenants are ignored.
func Settle(booking domain.Booking, payments []domain.Payment) domain.BookingSettlement {
	received := decimal.Zero
	for _, p := range payments {
		if p.BookingID == booking.BookingID && p.TenantID == booking.TenantID {
			received = received.Add(p.Amount)
		}
	}
	return domain.BookingSettlement{
		BookingID:    booking.BookingID,
		SellingPrice: booking.SellingPrice,
		Received:     received,
		Due:          booking.SellingPrice.Sub(received),
	}
}

// Overview computes the tenant-wide dashboard figures.
//
// Cancelled bookings are counted in totalSales like any other booking.
func Overview(ledger domain.Ledger, recentLimit int) domain.TenantOverview {
	l := scoped(ledger)

	out := domain.TenantOverview{
		TotalProjects: len(l.Projects),
		TotalLeads:    len(l.Leads),
		TotalUnits:    len(l.Units),
		TotalSales:    decimal.Zero,
		TotalReceived: decimal.Zero,
		TotalExpense:  decimal.Zero,
	}
	for _, u := range l.Units {
		if u.Status == domain.UnitSold {
			out.SoldUnits++
		}
	}
	for _, b := range l.Bookings {
		out.TotalSales = out.TotalSales.Add(b.SellingPrice)
	}
	for _, p := range l.Payments {
		out.TotalReceived = out.TotalReceived.Add(p.Amount)
	}
	for _, e := range l.Expenses {
		out.TotalExpense = out.TotalExpense.Add(e.Amount)
	}
	out.Due = out.TotalSales.Sub(out.TotalReceived)
	out.Profit = out.TotalSales.Sub(out.TotalExpense)

	for _, lead := range l.Leads {
		out.StatusSummary.Add(lead.Status)
	}
	out.RecentLeads = recentLeads(l.Leads, recentLimit)
	out.RecentBookings = summarize(l, recentLimit)
	return out
}

// ProjectProfits computes one summary per project, ordered by project creation
// time and then by project id.
//
// A booking is attributed to the project of its unit (Booking -> Unit ->
// Unit.ProjectID). Bookings whose unit is not in the ledger belong to no
// project, and neither do their payments.
func ProjectProfits(ledger domain.Ledger) []domain.ProjectProfit {
	l := scoped(ledger)

	unitProject := make(map[string]string, len(l.Units))
	for _, u := range l.Units {
		unitProject[u.UnitID] = u.ProjectID
	}

	bookingProject := make(map[string]string, len(l.Bookings))
	sales := make(map[string]decimal.Decimal)
	for _, b := range l.Bookings {
		projectID, ok := unitProject[b.UnitID]
		if !ok {
			continue
		}
		bookingProject[b.BookingID] = projectID
		sales[projectID] = sales[projectID].Add(b.SellingPrice)
	}

	received := make(map[string]decimal.Decimal)
	for _, p := range l.Payments {
		projectID, ok := bookingProject[p.BookingID]
		if !ok {
			continue
		}
		received[projectID] = received[projectID].Add(p.Amount)
	}

	expense := make(map[string]decimal.Decimal)
	for _, e := range l.Expenses {
		expense[e.ProjectID] = expense[e.ProjectID].Add(e.Amount)
	}

	projects := append([]domain.Project(nil), l.Projects...)
	sort.SliceStable(projects, func(i, j int) bool {
		if !projects[i].CreatedAt.Equal(projects[j].CreatedAt) {
			return projects[i].CreatedAt.Before(projects[j].CreatedAt)
		}
		return projects[i].ProjectID < projects[j].ProjectID
	})

	out := make([]domain.ProjectProfit, 0, len(projects))
	for _, p := range projects {
		s, r, e := sales[p.ProjectID], received[p.ProjectID], expense[p.ProjectID]
		out = append(out, domain.ProjectProfit{
			ProjectID:     p.ProjectID,
			ProjectName:   p.Name,
			Location:      p.Location,
			TotalSales:    s,
			TotalReceived: r,
			TotalExpense:  e,
			Due:           s.Sub(r),
			Profit:        s.Sub(e),
		})
	}
	return out
}

// BookingSummaries lists every booking with its lead, unit and settlement,
// newest booking first.
func BookingSummaries(ledger domain.Ledger) []domain.BookingSummary {
	l := scoped(ledger)
	return summarize(l, len(l.Bookings))
}

// summarize builds summaries for the newest limit bookings of an already scoped ledger.
func summarize(l domain.Ledger, limit int) []domain.BookingSummary {
	leads := make(map[string]domain.Lead, len(l.Leads))
	for _, lead := range l.Leads {
		leads[lead.LeadID] = lead
	}
	units := make(map[string]domain.Unit, len(l.Units))
	for _, u := range l.Units {
		units[u.UnitID] = u
	}
	received := make(map[string]decimal.Decimal, len(l.Bookings))
	for _, p := range l.Payments {
		received[p.BookingID] = received[p.BookingID].Add(p.Amount)
	}

	bookings := recentBookings(l.Bookings, limit)
	out := make([]domain.BookingSummary, 0, len(bookings))
	for _, b := range bookings {
		lead, unit := leads[b.LeadID], units[b.UnitID]
		r := received[b.BookingID]
		out = append(out, domain.BookingSummary{
			BookingID:      b.BookingID,
			LeadName:       lead.Name,
			Phone:          lead.Phone,
			UnitNumber:     unit.UnitNumber,
			UnitType:       unit.Type,
			Status:         b.Status,
			SellingPrice:   b.SellingPrice,
			ReceivedAmount: r,
			DueAmount:      b.SellingPrice.Sub(r),
			BookedAt:       b.CreatedAt,
		})
	}
	return out
}

// scoped drops every record that does not belong to the ledger's tenant.
func scoped(l domain.Ledger) domain.Ledger {
	out := domain.Ledger{TenantID: l.TenantID}
	for _, p := range l.Projects {
		if p.TenantID == l.TenantID {
			out.Projects = append(out.Projects, p)
		}
	}
	for _, u := range l.Units {
		if u.TenantID == l.TenantID {
			out.Units = append(out.Units, u)
		}
	}
	for _, lead := range l.Leads {
		if lead.TenantID == l.TenantID {
			out.Leads = append(out.Leads, lead)
		}
	}
	for _, b := range l.Bookings {
		if b.TenantID == l.TenantID {
			out.Bookings = append(out.Bookings, b)
		}
	}
	for _, p := range l.Payments {
		if p.TenantID == l.TenantID {
			out.Payments = append(out.Payments, p)
		}
	}
	for _, e := range l.Expenses {
		if e.TenantID == l.TenantID {
			out.Expenses = append(out.Expenses, e)
		}
	}
	return out
}

func recentLeads(leads []domain.Lead, limit int) []domain.Lead {
	sorted := make([]domain.Lead, len(leads))
	copy(sorted, leads)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		}
		return sorted[i].LeadID < sorted[j].LeadID
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

func recentBookings(bookings []domain.Booking, limit int) []domain.Booking {
	sorted := make([]domain.Booking, len(bookings))
	copy(sorted, bookings)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		}
		return sorted[i].BookingID < sorted[j].BookingID
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}
