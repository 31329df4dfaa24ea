package services

import (
	"context"

	"github.com/SscSPs/builder_crm/internal/core/domain"
	"github.com/SscSPs/builder_crm/internal/dto"
)

// ProjectSvcFacade manages projects.
type ProjectSvcFacade interface {
	CreateProject(ctx context.Context, identity domain.Identity, req dto.CreateProjectRequest) (*domain.Project, error)
	GetProject(ctx context.Context, identity domain.Identity, projectID string) (*domain.Project, error)
	ListProjects(ctx context.Context, identity domain.Identity) ([]domain.Project, error)
}

// UnitSvcFacade manages inventory units and their manual status changes.
type UnitSvcFacade interface {
	// CreateUnit adds a unit to a project of the caller's tenant.
	CreateUnit(ctx context.Context, identity domain.Identity, req dto.CreateUnitRequest) (*domain.Unit, error)

	// ListUnitsByProject lists the units of one project, newest first.
	ListUnitsByProject(ctx context.Context, identity domain.Identity, projectID string) ([]domain.Unit, error)

	// UpdateUnitStatus applies a manual Available/Hold change. Sold units are rejected.
	UpdateUnitStatus(ctx context.Context, identity domain.Identity, unitID string, status domain.UnitStatus) (*domain.Unit, error)
}

// ExpenseSvcFacade records and lists project expenses.
type ExpenseSvcFacade interface {
	RecordExpense(ctx context.Context, identity domain.Identity, req dto.CreateExpenseRequest) (*domain.Expense, error)
	ListExpensesByProject(ctx context.Context, identity domain.Identity, projectID string) ([]domain.Expense, error)
}
