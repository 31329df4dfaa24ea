package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/builder_crm/internal/apperrors"
	"github.com/SscSPs/builder_crm/internal/core/domain"
	"github.com/SscSPs/builder_crm/internal/core/finance"
	portsrepo "github.com/SscSPs/builder_crm/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/builder_crm/internal/core/ports/services"
	"github.com/SscSPs/builder_crm/internal/dto"
	"github.com/SscSPs/builder_crm/internal/utils/pagination"
	"github.com/google/uuid"
)

const (
	defaultLeadPageSize = 20
	maxLeadPageSize     = 100
)

type leadService struct {
	BaseService
	leadRepo    portsrepo.LeadRepositoryFacade
	projectRepo portsrepo.ProjectReader
}

// NewLeadService creates the lead service.
func NewLeadService(leadRepo portsrepo.LeadRepositoryFacade, projectRepo portsrepo.ProjectReader, options ...ServiceOption) portssvc.LeadSvcFacade {
	return &leadService{BaseService: newBaseService(options...), leadRepo: leadRepo, projectRepo: projectRepo}
}

func (s *leadService) CreateLead(ctx context.Context, identity domain.Identity, req dto.CreateLeadRequest) (*domain.Lead, error) {
	ctx, cancel, err := s.begin(ctx, identity)
	if err != nil {
		return nil, err
	}
	defer cancel()

	name, err := requireText("name", req.Name)
	if err != nil {
		return nil, err
	}
	phone, err := requireText("phone", req.Phone)
	if err != nil {
		return nil, err
	}
	status := domain.LeadNew
	if req.Status != "" {
		if status, err = domain.ParseLeadStatus(req.Status); err != nil {
			return nil, err
		}
	}

	var projectID *string
	if req.ProjectID != nil && *req.ProjectID != "" {
		if _, err := s.projectRepo.FindProjectByID(ctx, identity.TenantID, *req.ProjectID); err != nil {
			return nil, s.storeError(ctx, err, "Failed to resolve project for lead", slog.String("project_id", *req.ProjectID))
		}
		projectID = req.ProjectID
	}

	var followUp *time.Time
	if req.FollowUpDate != nil {
		at := req.FollowUpDate.In(s.Location)
		followUp = &at
	}

	lead := domain.Lead{
		LeadID:       uuid.NewString(),
		TenantID:     identity.TenantID,
		ProjectID:    projectID,
		Name:         name,
		Phone:        phone,
		Budget:       req.Budget,
		Source:       req.Source,
		Status:       status,
		FollowUpDate: followUp,
		Notes:        []domain.LeadNote{},
		AuditFields:  domain.NewAuditFields(identity.UserID, s.now()),
	}
	if err := s.leadRepo.SaveLead(ctx, lead); err != nil {
		return nil, s.storeError(ctx, err, "Failed to save lead")
	}

	s.LogInfo(ctx, "Lead created", slog.String("lead_id", lead.LeadID))
	return &lead, nil
}

func (s *leadService) GetLead(ctx context.Context, identity domain.Identity, leadID string) (*domain.Lead, error) {
	ctx, cancel, err := s.begin(ctx, identity)
	if err != nil {
		return nil, err
	}
	defer cancel()

	lead, err := s.leadRepo.FindLeadByID(ctx, identity.TenantID, leadID)
	if err != nil {
		return nil, s.storeError(ctx, err, "Failed to find lead", slog.String("lead_id", leadID))
	}
	return lead, nil
}

func (s *leadService) ListLeads(ctx context.Context, identity domain.Identity, params dto.ListLeadsParams) ([]domain.Lead, *string, error) {
	ctx, cancel, err := s.begin(ctx, identity)
	if err != nil {
		return nil, nil, err
	}
	defer cancel()

	limit := params.Limit
	if limit <= 0 {
		limit = defaultLeadPageSize
	}
	if limit > maxLeadPageSize {
		limit = maxLeadPageSize
	}
	if params.NextToken != nil && *params.NextToken != "" {
		if _, _, err := pagination.DecodeToken(*params.NextToken); err != nil {
			return nil, nil, apperrors.NewValidationFailedError(err.Error())
		}
	} else {
		params.NextToken = nil
	}

	leads, next, err := s.leadRepo.ListLeads(ctx, identity.TenantID, limit, params.NextToken)
	if err != nil {
		return nil, nil, s.storeError(ctx, err, "Failed to list leads", slog.Int("limit", limit))
	}
	if leads == nil {
		leads = []domain.Lead{}
	}
	return leads, next, nil
}

func (s *leadService) UpdateLeadStatus(ctx context.Context, identity domain.Identity, leadID string, status domain.LeadStatus) (*domain.Lead, error) {
	ctx, cancel, err := s.begin(ctx, identity)
	if err != nil {
		return nil, err
	}
	defer cancel()

	if _, err := domain.ParseLeadStatus(string(status)); err != nil {
		return nil, err
	}
	if err := s.leadRepo.UpdateLeadStatus(ctx, identity.TenantID, leadID, status, identity.UserID, s.now()); err != nil {
		return nil, s.storeError(ctx, err, "Failed to update lead status", slog.String("lead_id", leadID))
	}

	s.LogInfo(ctx, "Lead status updated", slog.String("lead_id", leadID), slog.String("status", string(status)))
	return s.reload(ctx, identity.TenantID, leadID)
}

func (s *leadService) UpdateFollowUpDate(ctx context.Context, identity domain.Identity, leadID string, followUpDate *time.Time) (*domain.Lead, error) {
	ctx, cancel, err := s.begin(ctx, identity)
	if err != nil {
		return nil, err
	}
	defer cancel()

	if err := s.leadRepo.UpdateLeadFollowUp(ctx, identity.TenantID, leadID, followUpDate, identity.UserID, s.now()); err != nil {
		return nil, s.storeError(ctx, err, "Failed to update follow-up date", slog.String("lead_id", leadID))
	}

	s.LogInfo(ctx, "Lead follow-up updated", slog.String("lead_id", leadID), slog.Bool("cleared", followUpDate == nil))
	return s.reload(ctx, identity.TenantID, leadID)
}

func (s *leadService) AddNote(ctx context.Context, identity domain.Identity, leadID string, note string) (*domain.Lead, error) {
	ctx, cancel, err := s.begin(ctx, identity)
	if err != nil {
		return nil, err
	}
	defer cancel()

	text, err := requireText("note", note)
	if err != nil {
		return nil, err
	}
	entry := domain.LeadNote{Note: text, Date: s.now()}
	if err := s.leadRepo.AppendLeadNote(ctx, identity.TenantID, leadID, entry, identity.UserID); err != nil {
		return nil, s.storeError(ctx, err, "Failed to append lead note", slog.String("lead_id", leadID))
	}

	s.LogDebug(ctx, "Lead note added", slog.String("lead_id", leadID))
	return s.reload(ctx, identity.TenantID, leadID)
}

func (s *leadService) reload(ctx context.Context, tenantID, leadID string) (*domain.Lead, error) {
	lead, err := s.leadRepo.FindLeadByID(ctx, tenantID, leadID)
	if err != nil {
		return nil, s.storeError(ctx, err, "Failed to reload lead", slog.String("lead_id", leadID))
	}
	return lead, nil
}

type followupService struct {
	BaseService
	leadRepo portsrepo.LeadReader
}

// NewFollowupService creates the follow-up alert service. Calendar days are
// evaluated in the location set with WithLocation.
func NewFollowupService(leadRepo portsrepo.LeadReader, options ...ServiceOption) portssvc.FollowupSvc {
	return &followupService{BaseService: newBaseService(options...), leadRepo: leadRepo}
}

func (s *followupService) Location() *time.Location {
	return s.BaseService.Location
}

func (s *followupService) FollowupAlerts(ctx context.Context, identity domain.Identity, now time.Time) (*domain.FollowupAlerts, error) {
	ctx, cancel, err := s.begin(ctx, identity)
	if err != nil {
		return nil, err
	}
	defer cancel()

	now = now.In(s.BaseService.Location)
	_, endOfDay := finance.DayWindow(now)

	leads, err := s.leadRepo.ListFollowupCandidates(ctx, identity.TenantID, endOfDay)
	if err != nil {
		return nil, s.storeError(ctx, err, "Failed to load follow-up candidates")
	}

	alerts := finance.FollowupAlerts(leads, now)
	s.LogDebug(ctx, "Follow-up alerts computed",
		slog.Int("today", alerts.TodayCount),
		slog.Int("overdue", alerts.OverdueCount))
	return &alerts, nil
}
