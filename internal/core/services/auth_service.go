package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/builder_crm/internal/apperrors"
	"github.com/SscSPs/builder_crm/internal/core/domain"
	portsrepo "github.com/SscSPs/builder_crm/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/builder_crm/internal/core/ports/services"
	"github.com/SscSPs/builder_crm/internal/dto"
	"github.com/SscSPs/builder_crm/internal/utils"
	"github.com/google/uuid"
)

// TokenConfig controls the JWTs issued on register and login.
type TokenConfig struct {
	Secret string
	Expiry time.Duration
	Issuer string
}

type authService struct {
	BaseService
	txManager  portsrepo.TransactionManager
	tenantRepo portsrepo.TenantRepositoryFacade
	userRepo   portsrepo.UserRepositoryFacade
	tokens     TokenConfig
}

// NewAuthService creates the authentication service.
func NewAuthService(
	txManager portsrepo.TransactionManager,
	tenantRepo portsrepo.TenantRepositoryFacade,
	userRepo portsrepo.UserRepositoryFacade,
	tokens TokenConfig,
	options ...ServiceOption,
) portssvc.AuthSvcFacade {
	return &authService{
		BaseService: newBaseService(options...),
		txManager:   txManager,
		tenantRepo:  tenantRepo,
		userRepo:    userRepo,
		tokens:      tokens,
	}
}

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, s.StoreTimeout)
	defer cancel()

	name, err := requireText("name", req.Name)
	if err != nil {
		return nil, err
	}
	email, err := requireText("email", strings.ToLower(req.Email))
	if err != nil {
		return nil, err
	}
	companyName, err := requireText("companyName", req.CompanyName)
	if err != nil {
		return nil, err
	}
	if len(req.Password) < 6 {
		return nil, apperrors.NewValidationFailedError("password must be at least 6 characters")
	}

	if err := s.ensureEmailFree(ctx, email); err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to hash password", err)
	}

	now := s.now()
	tenant := domain.Tenant{
		TenantID:  uuid.NewString(),
		Name:      companyName,
		Location:  strings.TrimSpace(req.CompanyLocation),
		CreatedAt: now,
	}
	userID := uuid.NewString()
	user := domain.User{
		UserID:       userID,
		TenantID:     tenant.TenantID,
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		AuditFields:  domain.NewAuditFields(userID, now),
	}

	err = s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.tenantRepo.SaveTenant(txCtx, tenant); err != nil {
			return err
		}
		return s.userRepo.SaveUser(txCtx, user)
	})
	if err != nil {
		return nil, s.storeError(ctx, err, "Failed to register company")
	}

	token, err := s.issueToken(&user)
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Company registered", slog.String("tenant_id", tenant.TenantID), slog.String("user_id", user.UserID))
	return &dto.AuthResponse{
		Token:   token,
		User:    dto.ToUserResponse(&user),
		Company: dto.ToCompanyResponse(&tenant),
	}, nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, s.StoreTimeout)
	defer cancel()

	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, s.storeError(ctx, err, "Failed to look up user for login")
	}

	hash := ""
	if user != nil {
		hash = user.PasswordHash
	}
	if !utils.CheckPasswordHash(req.Password, hash) {
		s.LogInfo(ctx, "Login rejected")
		return nil, apperrors.NewUnauthorizedError("invalid email or password")
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	resp := &dto.AuthResponse{Token: token, User: dto.ToUserResponse(user)}
	if tenant, err := s.tenantRepo.FindTenantByID(ctx, user.TenantID); err == nil {
		resp.Company = dto.ToCompanyResponse(tenant)
	} else {
		s.LogError(ctx, err, "Failed to load company for login", slog.String("tenant_id", user.TenantID))
	}

	s.LogInfo(ctx, "User logged in", slog.String("user_id", user.UserID), slog.String("tenant_id", user.TenantID))
	return resp, nil
}

func (s *authService) CreateStaffUser(ctx context.Context, identity domain.Identity, req dto.CreateUserRequest) (*domain.User, error) {
	ctx, cancel, err := s.begin(ctx, identity)
	if err != nil {
		return nil, err
	}
	defer cancel()

	if !identity.IsAdmin() {
		return nil, apperrors.NewForbiddenError("only admins can add users")
	}

	name, err := requireText("name", req.Name)
	if err != nil {
		return nil, err
	}
	email, err := requireText("email", strings.ToLower(req.Email))
	if err != nil {
		return nil, err
	}
	if len(req.Password) < 6 {
		return nil, apperrors.NewValidationFailedError("password must be at least 6 characters")
	}
	role := req.Role
	if role == "" {
		role = domain.RoleStaff
	}
	if !role.IsValid() {
		return nil, apperrors.NewValidationFailedError("invalid role")
	}

	if err := s.ensureEmailFree(ctx, email); err != nil {
		return nil, err
	}
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to hash password", err)
	}

	user := domain.User{
		UserID:       uuid.NewString(),
		TenantID:     identity.TenantID,
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		AuditFields:  domain.NewAuditFields(identity.UserID, s.now()),
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, s.storeError(ctx, err, "Failed to save user")
	}

	s.LogInfo(ctx, "User created", slog.String("new_user_id", user.UserID), slog.String("role", string(role)))
	return &user, nil
}

func (s *authService) ensureEmailFree(ctx context.Context, email string) error {
	_, err := s.userRepo.FindUserByEmail(ctx, email)
	switch {
	case err == nil:
		return apperrors.NewConflictError("email already registered")
	case errors.Is(err, apperrors.ErrNotFound):
		return nil
	default:
		return s.storeError(ctx, err, "Failed to check email")
	}
}

func (s *authService) issueToken(user *domain.User) (string, error) {
	token, err := utils.GenerateJWT(user, s.tokens.Secret, s.tokens.Expiry, s.tokens.Issuer)
	if err != nil {
		return "", apperrors.NewInternalError("failed to sign token", err)
	}
	return token, nil
}
