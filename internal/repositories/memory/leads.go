package memory

import (
	"context"
	"time"

	"github.com/SscSPs/builder_crm/internal/apperrors"
	"github.com/SscSPs/builder_crm/internal/core/domain"
	"github.com/SscSPs/builder_crm/internal/utils/pagination"
)

func (s *Store) SaveLead(ctx context.Context, lead domain.Lead) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.leads[lead.LeadID] = copyLead(lead)
	recordUndo(ctx, func() { delete(s.leads, lead.LeadID) })
	return nil
}

func (s *Store) FindLeadByID(ctx context.Context, tenantID, leadID string) (*domain.Lead, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	lead, ok := s.leads[leadID]
	if !ok || lead.TenantID != tenantID {
		return nil, apperrors.NewNotFoundError("lead not found")
	}
	lead = copyLead(lead)
	return &lead, nil
}

func (s *Store) ListLeads(ctx context.Context, tenantID string, limit int, nextToken *string) ([]domain.Lead, *string, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	var (
		hasCursor bool
		cursorAt  time.Time
		cursorID  string
	)
	if nextToken != nil && *nextToken != "" {
		var err error
		if cursorAt, cursorID, err = pagination.DecodeToken(*nextToken); err != nil {
			return nil, nil, apperrors.NewValidationFailedError(err.Error())
		}
		hasCursor = true
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	all := []domain.Lead{}
	for _, lead := range s.leads {
		if lead.TenantID != tenantID {
			continue
		}
		if hasCursor && !pagination.After(lead.CreatedAt, lead.LeadID, cursorAt, cursorID) {
			continue
		}
		all = append(all, lead)
	}
	newestFirst(all, func(l domain.Lead) time.Time { return l.CreatedAt }, func(l domain.Lead) string { return l.LeadID })

	var next *string
	if len(all) > limit {
		all = all[:limit]
		last := all[len(all)-1]
		token := pagination.EncodeToken(last.CreatedAt, last.LeadID)
		next = &token
	}
	out := make([]domain.Lead, len(all))
	for i, lead := range all {
		out[i] = copyLead(lead)
	}
	return out, next, nil
}

func (s *Store) ListFollowupCandidates(ctx context.Context, tenantID string, until time.Time) ([]domain.Lead, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []domain.Lead{}
	for _, lead := range s.leads {
		if lead.TenantID == tenantID && lead.NeedsFollowUp() && !lead.FollowUpDate.After(until) {
			out = append(out, copyLead(lead))
		}
	}
	return out, nil
}

func (s *Store) UpdateLeadStatus(ctx context.Context, tenantID, leadID string, status domain.LeadStatus, updatedBy string, updatedAt time.Time) error {
	return s.updateLead(ctx, tenantID, leadID, func(lead *domain.Lead) {
		lead.Status = status
		lead.LastUpdatedAt = updatedAt
		lead.LastUpdatedBy = updatedBy
	})
}

func (s *Store) UpdateLeadFollowUp(ctx context.Context, tenantID, leadID string, followUpDate *time.Time, updatedBy string, updatedAt time.Time) error {
	return s.updateLead(ctx, tenantID, leadID, func(lead *domain.Lead) {
		lead.FollowUpDate = nil
		if followUpDate != nil {
			at := *followUpDate
			lead.FollowUpDate = &at
		}
		lead.LastUpdatedAt = updatedAt
		lead.LastUpdatedBy = updatedBy
	})
}

func (s *Store) AppendLeadNote(ctx context.Context, tenantID, leadID string, note domain.LeadNote, updatedBy string) error {
	return s.updateLead(ctx, tenantID, leadID, func(lead *domain.Lead) {
		lead.Notes = append(lead.Notes, note)
		lead.LastUpdatedAt = note.Date
		lead.LastUpdatedBy = updatedBy
	})
}

func (s *Store) updateLead(ctx context.Context, tenantID, leadID string, mutate func(*domain.Lead)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	lead, ok := s.leads[leadID]
	if !ok || lead.TenantID != tenantID {
		return apperrors.NewNotFoundError("lead not found")
	}
	previous := lead
	updated := copyLead(lead)
	mutate(&updated)
	s.leads[leadID] = updated
	recordUndo(ctx, func() { s.leads[leadID] = previous })
	return nil
}
