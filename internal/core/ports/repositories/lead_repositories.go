package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/builder_crm/internal/core/domain"
)

// LeadReader defines read operations for lead data
type LeadReader interface {
	// FindLeadByID retrieves a lead of the given tenant, including its notes.
	FindLeadByID(ctx context.Context, tenantID, leadID string) (*domain.Lead, error)

	// ListLeads retrieves a page of leads, newest first, using token-based pagination.
	// It returns the leads, a token for the next page, and an error.
	ListLeads(ctx context.Context, tenantID string, limit int, nextToken *string) ([]domain.Lead, *string, error)

	// ListFollowupCandidates retrieves non-Lost leads whose follow-up date is on or before until.
	ListFollowupCandidates(ctx context.Context, tenantID string, until time.Time) ([]domain.Lead, error)
}

// LeadWriter defines write operations for lead data
type LeadWriter interface {
	// SaveLead persists a new lead.
	SaveLead(ctx context.Context, lead domain.Lead) error

	// UpdateLeadStatus changes the funnel status of a lead.
	UpdateLeadStatus(ctx context.Context, tenantID, leadID string, status domain.LeadStatus, updatedBy string, updatedAt time.Time) error

	// UpdateLeadFollowUp sets or clears the follow-up date of a lead.
	UpdateLeadFollowUp(ctx context.Context, tenantID, leadID string, followUpDate *time.Time, updatedBy string, updatedAt time.Time) error

	// AppendLeadNote adds a note to the end of the lead's notes.
	AppendLeadNote(ctx context.Context, tenantID, leadID string, note domain.LeadNote, updatedBy string) error
}

// LeadRepositoryFacade combines all lead-related repository interfaces
type LeadRepositoryFacade interface {
	LeadReader
	LeadWriter
}
