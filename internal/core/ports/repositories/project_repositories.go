package repositories

import (
	"context"

	"github.com/SscSPs/builder_crm/internal/core/domain"
)

// ProjectReader defines read operations for project data
type ProjectReader interface {
	// FindProjectByID retrieves a project of the given tenant.
	FindProjectByID(ctx context.Context, tenantID, projectID string) (*domain.Project, error)

	// ListProjects retrieves all projects of a tenant, newest first.
	ListProjects(ctx context.Context, tenantID string) ([]domain.Project, error)
}

// ProjectWriter defines write operations for project data
type ProjectWriter interface {
	// SaveProject persists a new project.
	SaveProject(ctx context.Context, project domain.Project) error
}

// ProjectRepositoryFacade combines all project-related repository interfaces
type ProjectRepositoryFacade interface {
	ProjectReader
	ProjectWriter
}
