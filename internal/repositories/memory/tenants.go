package memory

import (
	"context"
	"strings"

	"github.com/SscSPs/builder_crm/internal/apperrors"
	"github.com/SscSPs/builder_crm/internal/core/domain"
)

func (s *Store) SaveTenant(ctx context.Context, tenant domain.Tenant) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tenants[tenant.TenantID]; exists {
		return apperrors.NewConflictError("tenant already exists")
	}
	s.tenants[tenant.TenantID] = tenant
	recordUndo(ctx, func() { delete(s.tenants, tenant.TenantID) })
	return nil
}

func (s *Store) FindTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	tenant, ok := s.tenants[tenantID]
	if !ok {
		return nil, apperrors.NewNotFoundError("tenant not found")
	}
	return &tenant, nil
}

func (s *Store) SaveUser(ctx context.Context, user domain.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return apperrors.NewConflictError("email already registered")
		}
	}
	s.users[user.UserID] = user
	recordUndo(ctx, func() { delete(s.users, user.UserID) })
	return nil
}

func (s *Store) FindUserByID(ctx context.Context, tenantID, userID string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[userID]
	if !ok || user.TenantID != tenantID {
		return nil, apperrors.NewNotFoundError("user not found")
	}
	return &user, nil
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if strings.EqualFold(user.Email, email) {
			return &user, nil
		}
	}
	return nil, apperrors.NewNotFoundError("user not found")
}
