package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookingSettlement is the derived received/due state of a single booking.
type BookingSettlement struct {
	BookingID    string          `json:"bookingId"`
	SellingPrice decimal.Decimal `json:"sellingPrice"`
	Received     decimal.Decimal `json:"received"`
	Due          decimal.Decimal `json:"due"` // may be negative on overpayment
}

// BookingSummary is a settlement row enriched with lead and unit details for listing.
type BookingSummary struct {
	BookingID      string          `json:"bookingId"`
	LeadName       string          `json:"leadName"`
	Phone          string          `json:"phone"`
	UnitNumber     string          `json:"unitNumber"`
	UnitType       string          `json:"unitType"`
	Status         BookingStatus   `json:"status"`
	SellingPrice   decimal.Decimal `json:"sellingPrice"`
	ReceivedAmount decimal.Decimal `json:"receivedAmount"`
	DueAmount      decimal.Decimal `json:"dueAmount"`
	BookedAt       time.Time       `json:"bookedAt"`
}

// LeadStatusSummary counts a tenant's leads per funnel status.
type LeadStatusSummary struct {
	New       int `json:"new"`
	FollowUp  int `json:"followup"`
	SiteVisit int `json:"siteVisit"`
	Booked    int `json:"booked"`
	Lost      int `json:"lost"`
}

// Add increments the counter for status.
func (s *LeadStatusSummary) Add(status LeadStatus) {
	switch status {
	case LeadNew:
		s.New++
	case LeadFollowUp:
		s.FollowUp++
	case LeadSiteVisit:
		s.SiteVisit++
	case LeadBooked:
		s.Booked++
	case LeadLost:
		s.Lost++
	}
}

// TenantOverview is the company-wide dashboard aggregate.
type TenantOverview struct {
	TotalProjects  int               `json:"totalProjects"`
	TotalLeads     int               `json:"totalLeads"`
	TotalUnits     int               `json:"totalUnits"`
	SoldUnits      int               `json:"soldUnits"`
	TotalSales     decimal.Decimal   `json:"totalSales"`
	TotalReceived  decimal.Decimal   `json:"totalReceived"`
	TotalExpense   decimal.Decimal   `json:"totalExpense"`
	Due            decimal.Decimal   `json:"due"`
	Profit         decimal.Decimal   `json:"profit"`
	StatusSummary  LeadStatusSummary `json:"statusSummary"`
	RecentLeads    []Lead            `json:"recentLeads"`
	RecentBookings []BookingSummary  `json:"recentBookings"`
}

// ProjectProfit is the per-project financial summary.
type ProjectProfit struct {
	ProjectID     string          `json:"projectId"`
	ProjectName   string          `json:"projectName"`
	Location      string          `json:"location"`
	TotalSales    decimal.Decimal `json:"totalSales"`
	TotalReceived decimal.Decimal `json:"totalReceived"`
	TotalExpense  decimal.Decimal `json:"totalExpense"`
	Due           decimal.Decimal `json:"due"`
	Profit        decimal.Decimal `json:"profit"`
}

// FollowupAlerts classifies leads by follow-up urgency for a given day.
type FollowupAlerts struct {
	TodayCount       int    `json:"todayCount"`
	OverdueCount     int    `json:"overdueCount"`
	TodayFollowups   []Lead `json:"todayFollowups"`
	OverdueFollowups []Lead `json:"overdueFollowups"`
}
