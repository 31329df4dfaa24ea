package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/builder_crm/internal/apperrors"
	"github.com/SscSPs/builder_crm/internal/core/domain"
	portsrepo "github.com/SscSPs/builder_crm/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/builder_crm/internal/core/ports/services"
	"github.com/SscSPs/builder_crm/internal/dto"
	"github.com/google/uuid"
)

type projectService struct {
	BaseService
	projectRepo portsrepo.ProjectRepositoryFacade
}

// NewProjectService creates the project service.
func NewProjectService(projectRepo portsrepo.ProjectRepositoryFacade, options ...ServiceOption) portssvc.ProjectSvcFacade {
	return &projectService{BaseService: newBaseService(options...), projectRepo: projectRepo}
}

func (s *projectService) CreateProject(ctx context.Context, identity domain.Identity, req dto.CreateProjectRequest) (*domain.Project, error) {
	ctx, cancel, err := s.begin(ctx, identity)
	if err != nil {
		return nil, err
	}
	defer cancel()

	name, err := requireText("name", req.Name)
	if err != nil {
		return nil, err
	}
	location, err := requireText("location", req.Location)
	if err != nil {
		return nil, err
	}
	if req.TotalUnits < 0 {
		return nil, apperrors.NewValidationFailedError("totalUnits must not be negative")
	}

	project := domain.Project{
		ProjectID:   uuid.NewString(),
		TenantID:    identity.TenantID,
		Name:        name,
		Location:    location,
		TotalUnits:  req.TotalUnits,
		AuditFields: domain.NewAuditFields(identity.UserID, s.now()),
	}
	if err := s.projectRepo.SaveProject(ctx, project); err != nil {
		return nil, s.storeError(ctx, err, "Failed to save project", slog.String("project_id", project.ProjectID))
	}

	s.LogInfo(ctx, "Project created", slog.String("project_id", project.ProjectID))
	return &project, nil
}

func (s *projectService) GetProject(ctx context.Context, identity domain.Identity, projectID string) (*domain.Project, error) {
	ctx, cancel, err := s.begin(ctx, identity)
	if err != nil {
		return nil, err
	}
	defer cancel()

	project, err := s.projectRepo.FindProjectByID(ctx, identity.TenantID, projectID)
	if err != nil {
		return nil, s.storeError(ctx, err, "Failed to find project", slog.String("project_id", projectID))
	}
	return project, nil
}

func (s *projectService) ListProjects(ctx context.Context, identity domain.Identity) ([]domain.Project, error) {
	ctx, cancel, err := s.begin(ctx, identity)
	if err != nil {
		return nil, err
	}
	defer cancel()

	projects, err := s.projectRepo.ListProjects(ctx, identity.TenantID)
	if err != nil {
		return nil, s.storeError(ctx, err, "Failed to list projects")
	}
	if projects == nil {
		projects = []domain.Project{}
	}
	return projects, nil
}

type unitService struct {
	BaseService
	unitRepo    portsrepo.UnitRepositoryFacade
	projectRepo portsrepo.ProjectReader
}

// NewUnitService creates the unit service.
func NewUnitService(unitRepo portsrepo.UnitRepositoryFacade, projectRepo portsrepo.ProjectReader, options ...ServiceOption) portssvc.UnitSvcFacade {
	return &unitService{BaseService: newBaseService(options...), unitRepo: unitRepo, projectRepo: projectRepo}
}

func (s *unitService) CreateUnit(ctx context.Context, identity domain.Identity, req dto.CreateUnitRequest) (*domain.Unit, error) {
	ctx, cancel, err := s.begin(ctx, identity)
	if err != nil {
		return nil, err
	}
	defer cancel()

	projectID, err := requireText("projectId", req.ProjectID)
	if err != nil {
		return nil, err
	}
	unitNumber, err := requireText("unitNumber", req.UnitNumber)
	if err != nil {
		return nil, err
	}
	area, err := optionalNonNegative("area", req.Area)
	if err != nil {
		return nil, err
	}
	basePrice, err := optionalNonNegative("basePrice", req.BasePrice)
	if err != nil {
		return nil, err
	}
	status := domain.UnitAvailable
	if req.Status != "" {
		if status, err = domain.ParseUnitStatus(req.Status); err != nil {
			return nil, err
		}
		// New units cannot start out Sold.
		if err := domain.UnitAvailable.ValidateManualTransition(status); err != nil {
			return nil, err
		}
	}

	if _, err := s.projectRepo.FindProjectByID(ctx, identity.TenantID, projectID); err != nil {
		return nil, s.storeError(ctx, err, "Failed to resolve project for unit", slog.String("project_id", projectID))
	}

	unit := domain.Unit{
		UnitID:      uuid.NewString(),
		TenantID:    identity.TenantID,
		ProjectID:   projectID,
		Tower:       req.Tower,
		Floor:       req.Floor,
		UnitNumber:  unitNumber,
		Type:        req.Type,
		Area:        area,
		BasePrice:   basePrice,
		Status:      status,
		AuditFields: domain.NewAuditFields(identity.UserID, s.now()),
	}
	if err := s.unitRepo.SaveUnit(ctx, unit); err != nil {
		return nil, s.storeError(ctx, err, "Failed to save unit", slog.String("unit_number", unitNumber))
	}

	s.LogInfo(ctx, "Unit created", slog.String("unit_id", unit.UnitID), slog.String("project_id", projectID))
	return &unit, nil
}

func (s *unitService) ListUnitsByProject(ctx context.Context, identity domain.Identity, projectID string) ([]domain.Unit, error) {
	ctx, cancel, err := s.begin(ctx, identity)
	if err != nil {
		return nil, err
	}
	defer cancel()

	if _, err := s.projectRepo.FindProjectByID(ctx, identity.TenantID, projectID); err != nil {
		return nil, s.storeError(ctx, err, "Failed to resolve project", slog.String("project_id", projectID))
	}
	units, err := s.unitRepo.ListUnitsByProject(ctx, identity.TenantID, projectID)
	if err != nil {
		return nil, s.storeError(ctx, err, "Failed to list units", slog.String("project_id", projectID))
	}
	if units == nil {
		units = []domain.Unit{}
	}
	return units, nil
}

func (s *unitService) UpdateUnitStatus(ctx context.Context, identity domain.Identity, unitID string, status domain.UnitStatus) (*domain.Unit, error) {
	ctx, cancel, err := s.begin(ctx, identity)
	if err != nil {
		return nil, err
	}
	defer cancel()

	current, err := s.unitRepo.FindUnitByID(ctx, identity.TenantID, unitID)
	if err != nil {
		return nil, s.storeError(ctx, err, "Failed to find unit", slog.String("unit_id", unitID))
	}
	if err := current.Status.ValidateManualTransition(status); err != nil {
		return nil, err
	}

	// The update re-checks the Sold guard atomically in case a booking won the race.
	unit, err := s.unitRepo.SetUnitStatus(ctx, identity.TenantID, unitID, status, identity.UserID, s.now())
	if err != nil {
		return nil, s.storeError(ctx, err, "Failed to update unit status", slog.String("unit_id", unitID))
	}

	s.LogInfo(ctx, "Unit status updated",
		slog.String("unit_id", unitID),
		slog.String("from", string(current.Status)),
		slog.String("to", string(status)))
	return unit, nil
}

type expenseService struct {
	BaseService
	expenseRepo portsrepo.ExpenseRepositoryFacade
	projectRepo portsrepo.ProjectReader
}

// NewExpenseService creates the expense service.
func NewExpenseService(expenseRepo portsrepo.ExpenseRepositoryFacade, projectRepo portsrepo.ProjectReader, options ...ServiceOption) portssvc.ExpenseSvcFacade {
	return &expenseService{BaseService: newBaseService(options...), expenseRepo: expenseRepo, projectRepo: projectRepo}
}

func (s *expenseService) RecordExpense(ctx context.Context, identity domain.Identity, req dto.CreateExpenseRequest) (*domain.Expense, error) {
	ctx, cancel, err := s.begin(ctx, identity)
	if err != nil {
		return nil, err
	}
	defer cancel()

	projectID, err := requireText("projectId", req.ProjectID)
	if err != nil {
		return nil, err
	}
	title, err := requireText("title", req.Title)
	if err != nil {
		return nil, err
	}
	amount, err := requirePositive("amount", req.Amount)
	if err != nil {
		return nil, err
	}

	if _, err := s.projectRepo.FindProjectByID(ctx, identity.TenantID, projectID); err != nil {
		return nil, s.storeError(ctx, err, "Failed to resolve project for expense", slog.String("project_id", projectID))
	}

	now := s.now()
	expenseDate := now
	if req.ExpenseDate != nil {
		expenseDate = req.ExpenseDate.In(s.Location)
	}

	expense := domain.Expense{
		ExpenseID:   uuid.NewString(),
		TenantID:    identity.TenantID,
		ProjectID:   projectID,
		Title:       title,
		Category:    req.Category,
		Amount:      amount,
		ExpenseDate: expenseDate,
		Remarks:     req.Remarks,
		AuditFields: domain.NewAuditFields(identity.UserID, now),
	}
	if err := s.expenseRepo.SaveExpense(ctx, expense); err != nil {
		return nil, s.storeError(ctx, err, "Failed to save expense", slog.String("project_id", projectID))
	}

	s.LogInfo(ctx, "Expense recorded", slog.String("expense_id", expense.ExpenseID), slog.String("amount", amount.String()))
	return &expense, nil
}

func (s *expenseService) ListExpensesByProject(ctx context.Context, identity domain.Identity, projectID string) ([]domain.Expense, error) {
	ctx, cancel, err := s.begin(ctx, identity)
	if err != nil {
		return nil, err
	}
	defer cancel()

	if _, err := s.projectRepo.FindProjectByID(ctx, identity.TenantID, projectID); err != nil {
		return nil, s.storeError(ctx, err, "Failed to resolve project", slog.String("project_id", projectID))
	}
	expenses, err := s.expenseRepo.ListExpensesByProject(ctx, identity.TenantID, projectID)
	if err != nil {
		return nil, s.storeError(ctx, err, fmt.Sprintf("Failed to list expenses of project %s", projectID))
	}
	if expenses == nil {
		expenses = []domain.Expense{}
	}
	return expenses, nil
}
