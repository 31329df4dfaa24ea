package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/builder_crm/internal/core/domain"
)

// UnitReader defines read operations for unit data
type UnitReader interface {
	// FindUnitByID retrieves a unit of the given tenant.
	FindUnitByID(ctx context.Context, tenantID, unitID string) (*domain.Unit, error)

	// ListUnitsByProject retrieves all units of a project, newest first.
	ListUnitsByProject(ctx context.Context, tenantID, projectID string) ([]domain.Unit, error)
}

// UnitWriter defines write operations for unit data
type UnitWriter interface {
	// SaveUnit persists a new unit. A unit number already used in the same
	// project yields a conflict error.
	SaveUnit(ctx context.Context, unit domain.Unit) error
}

// UnitLifecycleManager defines the conditional status updates of a unit.
// Every method is a single atomic compare-and-set on the unit's status.
type UnitLifecycleManager interface {
	// MarkUnitSold moves a non-Sold unit to Sold. It fails with a conflict
	// error if the unit is already Sold and not-found if it does not exist.
	MarkUnitSold(ctx context.Context, tenantID, unitID, updatedBy string, updatedAt time.Time) error

	// ReleaseUnit moves a Sold unit back to Available.
	ReleaseUnit(ctx context.Context, tenantID, unitID, updatedBy string, updatedAt time.Time) error

	// SetUnitStatus applies a manual Available/Hold change to a non-Sold unit.
	SetUnitStatus(ctx context.Context, tenantID, unitID string, status domain.UnitStatus, updatedBy string, updatedAt time.Time) (*domain.Unit, error)
}

// UnitRepositoryFacade combines all unit-related repository interfaces
// This is a facade for clients that need access to all operations
type UnitRepositoryFacade interface {
	UnitReader
	UnitWriter
	UnitLifecycleManager
}
