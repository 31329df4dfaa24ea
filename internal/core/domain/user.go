package domain

// UserRole is the role a user holds inside their tenant.
type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleStaff UserRole = "staff"
)

// IsValid reports whether r is a known role.
func (r UserRole) IsValid() bool {
	return r == RoleAdmin || r == RoleStaff
}

// User represents a staff member of a tenant.
type User struct {
	UserID       string   `json:"userId"` // Primary Key (UUID)
	TenantID     string   `json:"tenantId"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	PasswordHash string   `json:"-"`
	Role         UserRole `json:"role"`
	AuditFields
}
