package memory

import (
	"context"
	"time"

	"github.com/SscSPs/builder_crm/internal/apperrors"
	"github.com/SscSPs/builder_crm/internal/core/domain"
)

func (s *Store) SaveUnit(ctx context.Context, unit domain.Unit) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.projects[unit.ProjectID]; !ok || p.TenantID != unit.TenantID {
		return apperrors.NewNotFoundError("project not found")
	}
	for _, existing := range s.units {
		if existing.ProjectID == unit.ProjectID && existing.UnitNumber == unit.UnitNumber {
			return apperrors.NewConflictError("unit number already exists in this project")
		}
	}
	s.units[unit.UnitID] = unit
	recordUndo(ctx, func() { delete(s.units, unit.UnitID) })
	return nil
}

func (s *Store) FindUnitByID(ctx context.Context, tenantID, unitID string) (*domain.Unit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	unit, ok := s.units[unitID]
	if !ok || unit.TenantID != tenantID {
		return nil, apperrors.NewNotFoundError("unit not found")
	}
	return &unit, nil
}

func (s *Store) ListUnitsByProject(ctx context.Context, tenantID, projectID string) ([]domain.Unit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []domain.Unit{}
	for _, u := range s.units {
		if u.TenantID == tenantID && u.ProjectID == projectID {
			out = append(out, u)
		}
	}
	newestFirst(out, func(u domain.Unit) time.Time { return u.CreatedAt }, func(u domain.Unit) string { return u.UnitID })
	return out, nil
}

func (s *Store) MarkUnitSold(ctx context.Context, tenantID, unitID, updatedBy string, updatedAt time.Time) error {
	_, err := s.swapUnitStatus(ctx, tenantID, unitID, domain.UnitSold, updatedBy, updatedAt, func(current domain.UnitStatus) error {
		if current == domain.UnitSold {
			return apperrors.NewConflictError("unit is already sold")
		}
		return nil
	})
	return err
}

func (s *Store) ReleaseUnit(ctx context.Context, tenantID, unitID, updatedBy string, updatedAt time.Time) error {
	_, err := s.swapUnitStatus(ctx, tenantID, unitID, domain.UnitAvailable, updatedBy, updatedAt, func(current domain.UnitStatus) error {
		if current != domain.UnitSold {
			return apperrors.NewConflictError("unit is not sold")
		}
		return nil
	})
	return err
}

func (s *Store) SetUnitStatus(ctx context.Context, tenantID, unitID string, status domain.UnitStatus, updatedBy string, updatedAt time.Time) (*domain.Unit, error) {
	return s.swapUnitStatus(ctx, tenantID, unitID, status, updatedBy, updatedAt, func(current domain.UnitStatus) error {
		if current == domain.UnitSold {
			return apperrors.NewConflictError("unit is sold and its status cannot be changed")
		}
		return nil
	})
}

// swapUnitStatus is the compare-and-set behind every unit status change.
func (s *Store) swapUnitStatus(ctx context.Context, tenantID, unitID string, to domain.UnitStatus, updatedBy string, updatedAt time.Time, guard func(domain.UnitStatus) error) (*domain.Unit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	unit, ok := s.units[unitID]
	if !ok || unit.TenantID != tenantID {
		return nil, apperrors.NewNotFoundError("unit not found")
	}
	if err := guard(unit.Status); err != nil {
		return nil, err
	}

	previous := unit
	unit.Status = to
	unit.LastUpdatedAt = updatedAt
	unit.LastUpdatedBy = updatedBy
	s.units[unitID] = unit
	recordUndo(ctx, func() { s.units[unitID] = previous })
	return &unit, nil
}
