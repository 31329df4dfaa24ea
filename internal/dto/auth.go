package dto

import "github.com/SscSPs/builder_crm/internal/core/domain"

// RegisterRequest creates a company (tenant) together with its first admin user.
type RegisterRequest struct {
	Name            string `json:"name" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=6"`
	CompanyName     string `json:"companyName" binding:"required"`
	CompanyLocation string `json:"companyLocation"`
}

// LoginRequest holds email/password credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// CreateUserRequest adds a staff member to the caller's tenant.
type CreateUserRequest struct {
	Name     string          `json:"name" binding:"required"`
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required,min=6"`
	Role     domain.UserRole `json:"role" binding:"omitempty,user_role"`
}

// UserResponse is the public view of a user.
type UserResponse struct {
	UserID   string          `json:"userId"`
	TenantID string          `json:"tenantId"`
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Role     domain.UserRole `json:"role"`
}

// CompanyResponse is the public view of a tenant.
type CompanyResponse struct {
	TenantID string `json:"tenantId"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token   string           `json:"token"`
	User    UserResponse     `json:"user"`
	Company *CompanyResponse `json:"company,omitempty"`
}

// ToUserResponse converts a domain.User to UserResponse DTO
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:   u.UserID,
		TenantID: u.TenantID,
		Name:     u.Name,
		Email:    u.Email,
		Role:     u.Role,
	}
}

// ToCompanyResponse converts a domain.Tenant to CompanyResponse DTO
func ToCompanyResponse(t *domain.Tenant) *CompanyResponse {
	return &CompanyResponse{TenantID: t.TenantID, Name: t.Name, Location: t.Location}
}
