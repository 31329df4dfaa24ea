package domain

import "time"

// Tenant is an isolated company account. Every other entity carries its TenantID.
type Tenant struct {
	TenantID  string    `json:"tenantId"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"createdAt"`
}
