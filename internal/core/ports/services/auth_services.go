package services

import (
	"context"

	"github.com/SscSPs/builder_crm/internal/core/domain"
	"github.com/SscSPs/builder_crm/internal/dto"
)

// AuthSvcFacade authenticates users and manages tenant membership.
type AuthSvcFacade interface {
	// Register creates a tenant and its first admin user in one unit of work.
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error)

	// Login verifies email/password credentials and issues a token.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)

	// CreateStaffUser adds a user to the caller's tenant. Admins only.
	CreateStaffUser(ctx context.Context, identity domain.Identity, req dto.CreateUserRequest) (*domain.User, error)
}
