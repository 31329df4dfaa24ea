package domain

import "github.com/SscSPs/builder_crm/internal/apperrors"

// Identity is the already-resolved caller identity handed to every core operation.
// The core never reads ambient session state; all scoping derives from this value.
type Identity struct {
	TenantID string   `json:"tenantId"`
	UserID   string   `json:"userId"`
	Role     UserRole `json:"role"`
}

// Validate fails with ErrUnauthorized when no tenant can be resolved.
func (i Identity) Validate() error {
	if i.TenantID == "" || i.UserID == "" {
		return apperrors.NewUnauthorizedError("no tenant identity on request")
	}
	return nil
}

// IsAdmin reports whether the caller is a tenant admin.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
