package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/builder_crm/internal/apperrors"
)

// LeadStatus is the sales-funnel stage of a lead.
type LeadStatus string

const (
	LeadNew       LeadStatus = "New"
	LeadFollowUp  LeadStatus = "Follow-up"
	LeadSiteVisit LeadStatus = "Site Visit"
	LeadBooked    LeadStatus = "Booked"
	LeadLost      LeadStatus = "Lost" // terminal, suppresses follow-up alerts
)

// LeadStatuses lists every status in funnel order.
var LeadStatuses = []LeadStatus{LeadNew, LeadFollowUp, LeadSiteVisit, LeadBooked, LeadLost}

// ParseLeadStatus converts user input into a LeadStatus.
func ParseLeadStatus(s string) (LeadStatus, error) {
	for _, status := range LeadStatuses {
		if string(status) == s {
			return status, nil
		}
	}
	return "", apperrors.NewValidationFailedError(fmt.Sprintf("invalid lead status %q", s))
}

// LeadNote is a timestamped, append-only remark on a lead.
type LeadNote struct {
	Note string    `json:"note"`
	Date time.Time `json:"date"`
}

// Lead is a prospective customer tracked through the sales funnel.
type Lead struct {
	LeadID       string     `json:"leadId"`
	TenantID     string     `json:"tenantId"`
	ProjectID    *string    `json:"projectId,omitempty"`
	Name         string     `json:"name"`
	Phone        string     `json:"phone"`
	Budget       string     `json:"budget"` // free text
	Source       string     `json:"source"`
	Status       LeadStatus `json:"status"`
	FollowUpDate *time.Time `json:"followUpDate"`
	Notes        []LeadNote `json:"notes"`
	AuditFields
}

// NeedsFollowUp reports whether the lead can appear in follow-up alerts at all.
func (l Lead) NeedsFollowUp() bool {
	return l.FollowUpDate != nil && l.Status != LeadLost
}
