package dto

import "github.com/SscSPs/builder_crm/internal/core/domain"

// CreateLeadRequest defines the data needed to create a new lead.
type CreateLeadRequest struct {
	ProjectID    *string `json:"projectId"`
	Name         string  `json:"name" binding:"required"`
	Phone        string  `json:"phone" binding:"required"`
	Budget       string  `json:"budget"`
	Source       string  `json:"source"`
	Status       string  `json:"status" binding:"omitempty,lead_status"`
	FollowUpDate *Date   `json:"followUpDate"`
}

// UpdateLeadStatusRequest moves a lead along the funnel.
type UpdateLeadStatusRequest struct {
	Status string `json:"status" binding:"required,lead_status"`
}

// UpdateFollowUpRequest sets the follow-up date; null clears it.
type UpdateFollowUpRequest struct {
	FollowUpDate *Date `json:"followUpDate"`
}

// AddLeadNoteRequest appends a note to a lead.
type AddLeadNoteRequest struct {
	Note string `json:"note" binding:"required"`
}

// ListLeadsParams defines query parameters for listing leads.
type ListLeadsParams struct {
	Limit     int     `form:"limit,default=20" binding:"gte=1,lte=100"`
	NextToken *string `form:"nextToken"`
}

// ListLeadsResponse wraps a page of leads.
type ListLeadsResponse struct {
	Leads     []domain.Lead `json:"leads"`
	NextToken *string       `json:"nextToken,omitempty"`
}
