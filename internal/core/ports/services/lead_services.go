package services

import (
	"context"
	"time"

	"github.com/SscSPs/builder_crm/internal/core/domain"
	"github.com/SscSPs/builder_crm/internal/dto"
)

// LeadReaderSvc defines read operations for lead data
type LeadReaderSvc interface {
	GetLead(ctx context.Context, identity domain.Identity, leadID string) (*domain.Lead, error)

	// ListLeads returns a page of leads, newest first, and the token for the next page.
	ListLeads(ctx context.Context, identity domain.Identity, params dto.ListLeadsParams) ([]domain.Lead, *string, error)
}

// LeadWriterSvc defines write operations for lead data
type LeadWriterSvc interface {
	CreateLead(ctx context.Context, identity domain.Identity, req dto.CreateLeadRequest) (*domain.Lead, error)
	UpdateLeadStatus(ctx context.Context, identity domain.Identity, leadID string, status domain.LeadStatus) (*domain.Lead, error)

	// UpdateFollowUpDate sets the follow-up date, or clears it when followUpDate is nil.
	UpdateFollowUpDate(ctx context.Context, identity domain.Identity, leadID string, followUpDate *time.Time) (*domain.Lead, error)

	// AddNote appends a timestamped note.
	AddNote(ctx context.Context, identity domain.Identity, leadID string, note string) (*domain.Lead, error)
}

// LeadSvcFacade combines all lead-related service interfaces
type LeadSvcFacade interface {
	LeadReaderSvc
	LeadWriterSvc
}

// FollowupSvc classifies leads by follow-up urgency.
type FollowupSvc interface {
	// FollowupAlerts is recomputed on every call from current lead data.
	FollowupAlerts(ctx context.Context, identity domain.Identity, now time.Time) (*domain.FollowupAlerts, error)

	// Location is the time zone calendar days are evaluated in.
	Location() *time.Location
}
